package domain

import (
	"errors"
	"fmt"
)

// The services in this package report failures through four typed errors.
// Callers branch on the type, never on the message text.
//
// ValidationError: the input itself is malformed. Surfaced to the actor, never retried.
// DomainError: the operation is not valid in the record's current state.
// PolicyError: a business rule refuses the operation; the rule is cited.
// NotFoundError: an id does not resolve; deliberately vague about what exists.

type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

type DomainError struct {
	Reason string
	Status string
}

func (e *DomainError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("%s (current status: %s)", e.Reason, e.Status)
	}
	return e.Reason
}

type PolicyError struct {
	Rule string
}

func (e *PolicyError) Error() string {
	return e.Rule
}

type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsDomain(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

func IsPolicy(err error) bool {
	var pe *PolicyError
	return errors.As(err, &pe)
}

func IsNotFound(err error) bool {
	var ne *NotFoundError
	return errors.As(err, &ne)
}
