package domain

import (
	"github.com/shopspring/decimal"
)

const (
	// DefaultWorkerPercent is the revenue share of an unmentored worker.
	DefaultWorkerPercent = 70

	// MentoredWorkerPercent applies for as long as the worker is bound to a mentor.
	MentoredWorkerPercent = 60

	// MentorLockThreshold is the paid-claim count at which a mentorship
	// can no longer be dissolved, by either side.
	MentorLockThreshold = 3

	WalletAddressMinLength = 10
	WalletAddressMaxLength = 100
)

// MaxWithdrawal is the ceiling an admin may price a single claim at.
var MaxWithdrawal = decimal.NewFromFloat(10000.0)

// Event kinds published on state transitions. Payloads are JSON;
// delivery is fire-and-forget and never blocks or reverts a transition.
const (
	EventClaimSubmitted = "claim.submitted"
	EventClaimPriced    = "claim.priced"
	EventClaimRejected  = "claim.rejected"
	EventClaimPaid      = "claim.paid"
	EventMentorBound    = "mentor.bound"
	EventMentorUnbound  = "mentor.unbound"
)

// EventPublisher fans state-transition events out to the notification
// collaborators. Implementations must not return delivery errors to the
// domain layer; they log and move on.
type EventPublisher interface {
	Publish(eventKind string, payload any)
}

// NopPublisher drops every event. Used in tests and by tools that
// operate on the store without a broker.
type NopPublisher struct{}

func (NopPublisher) Publish(eventKind string, payload any) {}
