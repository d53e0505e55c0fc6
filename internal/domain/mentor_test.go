package domain

import (
	"database/sql"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rudovey/workpay/internal/mocks"
	"github.com/rudovey/workpay/internal/models"
)

func TestBindSetsMentoredPercent(t *testing.T) {
	db := mocks.NewMockDatabase()
	service := NewMentorService(db, NopPublisher{})

	mentee := &models.Worker{ID: 1, Percent: DefaultWorkerPercent}
	mentor := &models.Worker{ID: 2, IsMentor: true}
	db.WorkerRepo.On("GetOne", int64(1)).Return(mentee, true, nil)
	db.WorkerRepo.On("GetOne", int64(2)).Return(mentor, true, nil)
	db.WorkerRepo.On("SetMentor", int64(1), sql.NullInt64{Int64: 2, Valid: true}, mock.Anything).Return(nil)
	db.WorkerRepo.On("UpdatePercent", int64(1), MentoredWorkerPercent, mock.Anything).Return(nil)

	err := service.Bind(1, 2)

	require.NoError(t, err)
	db.WorkerRepo.AssertExpectations(t)
}

func TestBindRefusesSelf(t *testing.T) {
	db := mocks.NewMockDatabase()
	service := NewMentorService(db, NopPublisher{})

	err := service.Bind(1, 1)
	require.True(t, IsValidation(err))
}

func TestBindRefusesSecondMentor(t *testing.T) {
	db := mocks.NewMockDatabase()
	service := NewMentorService(db, NopPublisher{})

	mentee := &models.Worker{ID: 1, MentorID: sql.NullInt64{Int64: 5, Valid: true}}
	db.WorkerRepo.On("GetOne", int64(1)).Return(mentee, true, nil)

	err := service.Bind(1, 2)
	require.True(t, IsDomain(err))
}

func TestBindRequiresDesignatedMentor(t *testing.T) {
	db := mocks.NewMockDatabase()
	service := NewMentorService(db, NopPublisher{})

	mentee := &models.Worker{ID: 1}
	notMentor := &models.Worker{ID: 2, IsMentor: false}
	db.WorkerRepo.On("GetOne", int64(1)).Return(mentee, true, nil)
	db.WorkerRepo.On("GetOne", int64(2)).Return(notMentor, true, nil)

	err := service.Bind(1, 2)
	require.True(t, IsNotFound(err))
}

func TestUnbindRestoresDefaultPercent(t *testing.T) {
	db := mocks.NewMockDatabase()
	service := NewMentorService(db, NopPublisher{})

	mentee := &models.Worker{
		ID:         1,
		MentorID:   sql.NullInt64{Int64: 2, Valid: true},
		Percent:    MentoredWorkerPercent,
		PaidClaims: 2,
	}
	db.WorkerRepo.On("GetOne", int64(1)).Return(mentee, true, nil)
	db.WorkerRepo.On("SetMentor", int64(1), sql.NullInt64{}, mock.Anything).Return(nil)
	db.WorkerRepo.On("UpdatePercent", int64(1), DefaultWorkerPercent, mock.Anything).Return(nil)

	err := service.Unbind(1, 1)

	require.NoError(t, err)
	db.WorkerRepo.AssertExpectations(t)
}

func TestUnbindAllowedForMentor(t *testing.T) {
	db := mocks.NewMockDatabase()
	service := NewMentorService(db, NopPublisher{})

	mentee := &models.Worker{ID: 1, MentorID: sql.NullInt64{Int64: 2, Valid: true}}
	db.WorkerRepo.On("GetOne", int64(1)).Return(mentee, true, nil)
	db.WorkerRepo.On("SetMentor", int64(1), sql.NullInt64{}, mock.Anything).Return(nil)
	db.WorkerRepo.On("UpdatePercent", int64(1), DefaultWorkerPercent, mock.Anything).Return(nil)

	err := service.Unbind(2, 1)
	require.NoError(t, err)
}

func TestUnbindRefusesThirdParties(t *testing.T) {
	db := mocks.NewMockDatabase()
	service := NewMentorService(db, NopPublisher{})

	mentee := &models.Worker{ID: 1, MentorID: sql.NullInt64{Int64: 2, Valid: true}}
	db.WorkerRepo.On("GetOne", int64(1)).Return(mentee, true, nil)

	err := service.Unbind(99, 1)
	require.True(t, IsPolicy(err))
}

func TestUnbindLockedAfterThreePaidClaims(t *testing.T) {
	db := mocks.NewMockDatabase()
	service := NewMentorService(db, NopPublisher{})

	mentee := &models.Worker{
		ID:         1,
		MentorID:   sql.NullInt64{Int64: 2, Valid: true},
		PaidClaims: MentorLockThreshold,
	}
	db.WorkerRepo.On("GetOne", int64(1)).Return(mentee, true, nil)

	// the lock refuses both sides
	err := service.Unbind(1, 1)
	require.True(t, IsPolicy(err))

	err = service.Unbind(2, 1)
	require.True(t, IsPolicy(err))
}

func TestUnbindWithoutMentor(t *testing.T) {
	db := mocks.NewMockDatabase()
	service := NewMentorService(db, NopPublisher{})

	mentee := &models.Worker{ID: 1}
	db.WorkerRepo.On("GetOne", int64(1)).Return(mentee, true, nil)

	err := service.Unbind(1, 1)
	require.True(t, IsDomain(err))
}

func TestMentorAggregate(t *testing.T) {
	db := mocks.NewMockDatabase()
	service := NewMentorService(db, NopPublisher{})

	mentor := &models.Worker{ID: 2, IsMentor: true}
	db.WorkerRepo.On("GetOne", int64(2)).Return(mentor, true, nil)
	db.WorkerRepo.On("MenteeAggregate", int64(2)).Return(3, decimal.NewFromInt(300), nil)

	aggregate, err := service.Aggregate(2)

	require.NoError(t, err)
	require.Equal(t, 3, aggregate.MenteeCount)
	require.True(t, aggregate.TotalEarned.Equal(decimal.NewFromInt(300)))
	require.True(t, aggregate.AverageEarned.Equal(decimal.NewFromInt(100)))
}
