package domain

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/rudovey/workpay/internal/models"
	"github.com/rudovey/workpay/internal/repository"
)

// MentorService manages the mentorship ledger. A worker has at most one
// mentor; binding drops their percent to the mentored rate and unbinding
// restores the default. Once a mentee has accumulated enough paid claims
// the bond is locked and neither side can dissolve it.
type MentorService struct {
	DB     repository.Database
	Events EventPublisher
}

func NewMentorService(db repository.Database, events EventPublisher) *MentorService {
	return &MentorService{
		DB:     db,
		Events: events,
	}
}

type MentorEvent struct {
	MenteeID int64 `json:"mentee_id"`
	MentorID int64 `json:"mentor_id"`
}

// MentorAggregate summarises a mentor's book of mentees.
type MentorAggregate struct {
	MenteeCount   int             `json:"mentee_count"`
	TotalEarned   decimal.Decimal `json:"total_earned"`
	AverageEarned decimal.Decimal `json:"average_earned"`
}

// Bind attaches a mentee to a mentor and moves the mentee to the
// mentored percent, atomically.
func (s *MentorService) Bind(menteeID, mentorID int64) error {
	if menteeID == mentorID {
		return &ValidationError{Reason: "cannot choose yourself as mentor"}
	}

	mentee, found, err := s.DB.Worker().GetOne(menteeID)
	if err != nil {
		return err
	}
	if !found {
		return &NotFoundError{Resource: "worker"}
	}

	if mentee.MentorID.Valid {
		return &DomainError{Reason: "already mentored"}
	}

	mentor, found, err := s.DB.Worker().GetOne(mentorID)
	if err != nil {
		return err
	}
	if !found || !mentor.IsMentor {
		return &NotFoundError{Resource: "mentor"}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = s.DB.WithTx(ctx, func(tx *sqlx.Tx) error {
		err := s.DB.Worker().SetMentor(menteeID, sql.NullInt64{Int64: mentorID, Valid: true}, tx)
		if err != nil {
			return err
		}

		return s.DB.Worker().UpdatePercent(menteeID, MentoredWorkerPercent, tx)
	})
	if err != nil {
		return err
	}

	s.Events.Publish(EventMentorBound, &MentorEvent{MenteeID: menteeID, MentorID: mentorID})

	return nil
}

// Unbind dissolves the mentorship and restores the default percent.
// Only the mentee or their mentor may do it, and only before the bond
// locks.
func (s *MentorService) Unbind(requesterID, menteeID int64) error {
	mentee, found, err := s.DB.Worker().GetOne(menteeID)
	if err != nil {
		return err
	}
	if !found {
		return &NotFoundError{Resource: "worker"}
	}

	if !mentee.MentorID.Valid {
		return &DomainError{Reason: "no mentor bound"}
	}

	if requesterID != menteeID && requesterID != mentee.MentorID.Int64 {
		return &PolicyError{Rule: "only the mentee or their mentor can unbind"}
	}

	if mentee.PaidClaims >= MentorLockThreshold {
		return &PolicyError{Rule: "mentorship is locked after 3 paid claims"}
	}

	mentorID := mentee.MentorID.Int64

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = s.DB.WithTx(ctx, func(tx *sqlx.Tx) error {
		err := s.DB.Worker().SetMentor(menteeID, sql.NullInt64{}, tx)
		if err != nil {
			return err
		}

		return s.DB.Worker().UpdatePercent(menteeID, DefaultWorkerPercent, tx)
	})
	if err != nil {
		return err
	}

	s.Events.Publish(EventMentorUnbound, &MentorEvent{MenteeID: menteeID, MentorID: mentorID})

	return nil
}

func (s *MentorService) Mentees(mentorID int64) ([]models.Worker, error) {
	mentor, found, err := s.DB.Worker().GetOne(mentorID)
	if err != nil {
		return nil, err
	}
	if !found || !mentor.IsMentor {
		return nil, &NotFoundError{Resource: "mentor"}
	}

	return s.DB.Worker().Mentees(mentorID)
}

// Aggregate reports mentee count plus total and average mentee earnings
// for one mentor.
func (s *MentorService) Aggregate(mentorID int64) (*MentorAggregate, error) {
	mentor, found, err := s.DB.Worker().GetOne(mentorID)
	if err != nil {
		return nil, err
	}
	if !found || !mentor.IsMentor {
		return nil, &NotFoundError{Resource: "mentor"}
	}

	count, total, err := s.DB.Worker().MenteeAggregate(mentorID)
	if err != nil {
		return nil, err
	}

	aggregate := &MentorAggregate{
		MenteeCount: count,
		TotalEarned: total,
	}

	if count > 0 {
		aggregate.AverageEarned = total.Div(decimal.NewFromInt(int64(count))).Round(2)
	}

	return aggregate, nil
}
