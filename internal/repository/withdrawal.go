package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/rudovey/workpay/internal/models"
)

// define possible withdrawal status
const (
	// WithdrawalStatusPending covers the whole admin queue: a freshly
	// submitted claim sits here with amount = 0, and stays here after
	// pricing (amount > 0) until it is paid or rejected.
	WithdrawalStatusPending = "pending"

	WithdrawalStatusRejected = "rejected"
	WithdrawalStatusPaid     = "paid"
)

type WithdrawalRepository interface {
	Insert(withdrawal *models.Withdrawal, tx *sqlx.Tx) (int64, error)
	GetOne(id int64) (*models.Withdrawal, bool, error)
	GetAllByWorkerID(workerID int64) ([]models.Withdrawal, error)
	Pending() ([]models.Withdrawal, error)
	SetAmount(id int64, amount, workerShare, adminShare decimal.Decimal, tx *sqlx.Tx) error
	SetStatus(id int64, status string, reason sql.NullString, tx *sqlx.Tx) error
	MostCommonDirection(workerID int64) (string, bool, error)
	GlobalMostCommonDirection(tx *sqlx.Tx) (string, bool, error)
	ProfitStats(workerID int64) (*models.ProfitStats, error)
}

type WithdrawalRepositoryImpl struct {
	db *sqlx.DB
}

func NewWithdrawalRepository(db *sqlx.DB) WithdrawalRepository {
	return &WithdrawalRepositoryImpl{db: db}
}

func (repo *WithdrawalRepositoryImpl) Insert(withdrawal *models.Withdrawal, tx *sqlx.Tx) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var id int64

	query := `
		INSERT INTO withdrawals
		(worker_id, wallet_address, wallet_type, direction, reference_link, percent)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	if tx != nil {
		err := tx.QueryRowContext(ctx, query,
			withdrawal.WorkerID,
			withdrawal.WalletAddress,
			withdrawal.WalletType,
			withdrawal.Direction,
			withdrawal.ReferenceLink,
			withdrawal.Percent,
		).Scan(&id)
		if err != nil {
			return 0, err
		}
	} else {
		err := repo.db.GetContext(ctx, &id, query,
			withdrawal.WorkerID,
			withdrawal.WalletAddress,
			withdrawal.WalletType,
			withdrawal.Direction,
			withdrawal.ReferenceLink,
			withdrawal.Percent,
		)
		if err != nil {
			return 0, err
		}
	}

	return id, nil
}

func (repo *WithdrawalRepositoryImpl) GetOne(id int64) (*models.Withdrawal, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var withdrawal models.Withdrawal

	query := `SELECT * FROM withdrawals WHERE id = $1`

	err := repo.db.GetContext(ctx, &withdrawal, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}

	return &withdrawal, true, nil
}

func (repo *WithdrawalRepositoryImpl) GetAllByWorkerID(workerID int64) ([]models.Withdrawal, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var withdrawals []models.Withdrawal

	query := `
		SELECT * FROM withdrawals
		WHERE worker_id = $1
		ORDER BY created_at DESC`

	err := repo.db.SelectContext(ctx, &withdrawals, query, workerID)
	if err != nil {
		return nil, err
	}

	return withdrawals, nil
}

func (repo *WithdrawalRepositoryImpl) Pending() ([]models.Withdrawal, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var withdrawals []models.Withdrawal

	query := `
		SELECT * FROM withdrawals
		WHERE status = $1
		ORDER BY created_at`

	err := repo.db.SelectContext(ctx, &withdrawals, query, WithdrawalStatusPending)
	if err != nil {
		return nil, err
	}

	return withdrawals, nil
}

func (repo *WithdrawalRepositoryImpl) SetAmount(id int64, amount, workerShare, adminShare decimal.Decimal, tx *sqlx.Tx) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	query := `
		UPDATE withdrawals
		SET amount = $1, worker_share = $2, admin_share = $3, updated_at = now()
		WHERE id = $4`

	if tx != nil {
		_, err := tx.ExecContext(ctx, query, amount, workerShare, adminShare, id)
		return err
	}

	_, err := repo.db.ExecContext(ctx, query, amount, workerShare, adminShare, id)
	return err
}

func (repo *WithdrawalRepositoryImpl) SetStatus(id int64, status string, reason sql.NullString, tx *sqlx.Tx) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	query := `
		UPDATE withdrawals
		SET status = $1, reject_reason = $2, updated_at = now()
		WHERE id = $3`

	if tx != nil {
		_, err := tx.ExecContext(ctx, query, status, reason, id)
		return err
	}

	_, err := repo.db.ExecContext(ctx, query, status, reason, id)
	return err
}

func (repo *WithdrawalRepositoryImpl) MostCommonDirection(workerID int64) (string, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var direction string

	query := `
		SELECT direction FROM withdrawals
		WHERE worker_id = $1 AND status = $2
		GROUP BY direction
		ORDER BY COUNT(*) DESC
		LIMIT 1`

	err := repo.db.GetContext(ctx, &direction, query, workerID, WithdrawalStatusPaid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}

	return direction, true, nil
}

// GlobalMostCommonDirection rescans all paid withdrawals. Ties fall to
// whichever direction the store returns first; the figure is display-only.
func (repo *WithdrawalRepositoryImpl) GlobalMostCommonDirection(tx *sqlx.Tx) (string, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var direction string

	query := `
		SELECT direction FROM withdrawals
		WHERE status = $1
		GROUP BY direction
		ORDER BY COUNT(*) DESC
		LIMIT 1`

	var err error
	if tx != nil {
		err = tx.GetContext(ctx, &direction, query, WithdrawalStatusPaid)
	} else {
		err = repo.db.GetContext(ctx, &direction, query, WithdrawalStatusPaid)
	}

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}

	return direction, true, nil
}

func (repo *WithdrawalRepositoryImpl) ProfitStats(workerID int64) (*models.ProfitStats, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var stats models.ProfitStats

	query := `
		SELECT
			COALESCE(SUM(amount), 0) AS total_amount,
			COUNT(*) AS total_count,
			COALESCE(MAX(amount), 0) AS max_amount,
			COALESCE(SUM(amount) FILTER (WHERE created_at >= now() - interval '7 days'), 0) AS week_amount,
			COALESCE(SUM(amount) FILTER (WHERE created_at >= now() - interval '30 days'), 0) AS month_amount,
			COALESCE(SUM(amount) FILTER (WHERE created_at >= now() - interval '180 days'), 0) AS half_year_amount
		FROM withdrawals
		WHERE worker_id = $1 AND status = $2`

	err := repo.db.GetContext(ctx, &stats, query, workerID, WithdrawalStatusPaid)
	if err != nil {
		return nil, err
	}

	return &stats, nil
}
