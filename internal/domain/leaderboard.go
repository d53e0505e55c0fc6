package domain

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/rudovey/workpay/internal/cache"
	"github.com/rudovey/workpay/internal/models"
	"github.com/rudovey/workpay/internal/repository"
)

// leaderboardTTL keeps the top list slightly stale rather than hitting
// the workers table on every read.
const leaderboardTTL = 30 * time.Second

// LeaderboardService ranks workers by lifetime earnings. Blocked and
// hidden workers are excluded from the public list, but a worker always
// sees their own rank, hidden or not.
type LeaderboardService struct {
	DB     repository.Database
	Cache  *cache.Cache
	Logger *slog.Logger
}

func NewLeaderboardService(db repository.Database, cache *cache.Cache, logger *slog.Logger) *LeaderboardService {
	return &LeaderboardService{
		DB:     db,
		Cache:  cache,
		Logger: logger,
	}
}

// Rank returns the worker's 1-based position: one more than the number
// of eligible workers who out-earn them. Workers on equal earnings share
// a rank.
func (s *LeaderboardService) Rank(workerID int64) (int, error) {
	worker, found, err := s.DB.Worker().GetOne(workerID)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, &NotFoundError{Resource: "worker"}
	}

	ahead, err := s.DB.Worker().CountOutearning(worker.TotalEarned)
	if err != nil {
		return 0, err
	}

	return ahead + 1, nil
}

// Top returns the highest-earning eligible workers, best first.
func (s *LeaderboardService) Top(limit int) ([]models.Worker, error) {
	if limit <= 0 {
		return nil, &ValidationError{Reason: "limit must be greater than zero"}
	}

	key := fmt.Sprintf("leaderboard:top:%d", limit)

	if s.Cache != nil {
		cached, err := s.Cache.Get(key)
		if err == nil {
			var workers []models.Worker
			if err := json.Unmarshal([]byte(cached), &workers); err == nil {
				return workers, nil
			}
		} else if !cache.IsMiss(err) && s.Logger != nil {
			s.Logger.Error("leaderboard cache read failed", "error", err)
		}
	}

	workers, err := s.DB.Worker().Top(limit)
	if err != nil {
		return nil, err
	}

	if s.Cache != nil {
		encoded, err := json.Marshal(workers)
		if err == nil {
			if err := s.Cache.Set(key, string(encoded), leaderboardTTL); err != nil && s.Logger != nil {
				s.Logger.Error("leaderboard cache write failed", "error", err)
			}
		}
	}

	return workers, nil
}
