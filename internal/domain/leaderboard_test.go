package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/rudovey/workpay/internal/mocks"
	"github.com/rudovey/workpay/internal/models"
)

func TestRankIsOnePlusOutearners(t *testing.T) {
	db := mocks.NewMockDatabase()
	service := NewLeaderboardService(db, nil, nil)

	// earnings of 0 in a field of {0, 10, 20} puts the worker third
	worker := &models.Worker{ID: 3, TotalEarned: decimal.Zero}
	db.WorkerRepo.On("GetOne", int64(3)).Return(worker, true, nil)
	db.WorkerRepo.On("CountOutearning", decimal.Zero).Return(2, nil)

	rank, err := service.Rank(3)

	require.NoError(t, err)
	require.Equal(t, 3, rank)
}

func TestRankOfLeader(t *testing.T) {
	db := mocks.NewMockDatabase()
	service := NewLeaderboardService(db, nil, nil)

	worker := &models.Worker{ID: 1, TotalEarned: decimal.NewFromInt(20)}
	db.WorkerRepo.On("GetOne", int64(1)).Return(worker, true, nil)
	db.WorkerRepo.On("CountOutearning", decimal.NewFromInt(20)).Return(0, nil)

	rank, err := service.Rank(1)

	require.NoError(t, err)
	require.Equal(t, 1, rank)
}

func TestRankUnknownWorker(t *testing.T) {
	db := mocks.NewMockDatabase()
	service := NewLeaderboardService(db, nil, nil)

	db.WorkerRepo.On("GetOne", int64(404)).Return(nil, false, nil)

	_, err := service.Rank(404)
	require.True(t, IsNotFound(err))
}

func TestTopWithoutCache(t *testing.T) {
	db := mocks.NewMockDatabase()
	service := NewLeaderboardService(db, nil, nil)

	workers := []models.Worker{
		{ID: 1, FirstName: "A", TotalEarned: decimal.NewFromInt(20)},
		{ID: 2, FirstName: "B", TotalEarned: decimal.NewFromInt(10)},
	}
	db.WorkerRepo.On("Top", 10).Return(workers, nil)

	top, err := service.Top(10)

	require.NoError(t, err)
	require.Len(t, top, 2)
	require.Equal(t, int64(1), top[0].ID)
}

func TestTopRejectsBadLimit(t *testing.T) {
	db := mocks.NewMockDatabase()
	service := NewLeaderboardService(db, nil, nil)

	_, err := service.Top(0)
	require.True(t, IsValidation(err))
}
