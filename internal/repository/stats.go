package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/rudovey/workpay/internal/models"
)

type StatsRepository interface {
	Get() (*models.TeamStats, error)
	RecordPayout(amount decimal.Decimal, submittedAt time.Time, tx *sqlx.Tx) error
}

type StatsRepositoryImpl struct {
	db *sqlx.DB
}

func NewStatsRepository(db *sqlx.DB) StatsRepository {
	return &StatsRepositoryImpl{db: db}
}

func (repo *StatsRepositoryImpl) Get() (*models.TeamStats, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var stats models.TeamStats

	query := `SELECT * FROM team_stats LIMIT 1`

	err := repo.db.GetContext(ctx, &stats, query)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &models.TeamStats{}, nil
		}
		return nil, err
	}

	return &stats, nil
}

// RecordPayout folds a freshly paid withdrawal into the rollup row. It
// must run inside the transaction that marked the withdrawal as paid, so
// the direction rescan below already sees it.
func (repo *StatsRepositoryImpl) RecordPayout(amount decimal.Decimal, submittedAt time.Time, tx *sqlx.Tx) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	// roll the today window before adding to it
	query := `
		UPDATE team_stats
		SET today_amount = 0, today_profits = 0, today_date = CURRENT_DATE
		WHERE today_date <> CURRENT_DATE`

	_, err := tx.ExecContext(ctx, query)
	if err != nil {
		return err
	}

	query = `
		UPDATE team_stats
		SET total_amount = total_amount + $1,
		    total_profits = total_profits + 1,
		    updated_at = now()`

	_, err = tx.ExecContext(ctx, query, amount)
	if err != nil {
		return err
	}

	// the submission-day check uses the same database clock as the
	// window roll above, so the two can never disagree near midnight
	query = `
		UPDATE team_stats
		SET today_amount = today_amount + $1, today_profits = today_profits + 1
		WHERE $2::date = CURRENT_DATE`

	_, err = tx.ExecContext(ctx, query, amount, submittedAt)
	if err != nil {
		return err
	}

	// Full rescan of paid withdrawals. O(claims) per payment, fine at
	// this team's scale; ties land on whichever row the scan sees first.
	var direction sql.NullString

	query = `
		SELECT direction FROM withdrawals
		WHERE status = $1
		GROUP BY direction
		ORDER BY COUNT(*) DESC
		LIMIT 1`

	err = tx.GetContext(ctx, &direction, query, WithdrawalStatusPaid)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	var activeWorkers int

	query = `SELECT COUNT(*) FROM workers WHERE is_blocked = false`

	err = tx.GetContext(ctx, &activeWorkers, query)
	if err != nil {
		return err
	}

	query = `
		UPDATE team_stats
		SET most_common_direction = $1, active_workers = $2`

	_, err = tx.ExecContext(ctx, query, direction, activeWorkers)
	return err
}
