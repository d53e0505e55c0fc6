package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/rudovey/workpay/internal/models"
)

type WalletRepository interface {
	InsertActive(wallet *models.Wallet) (int64, error)
	GetOne(id int64) (*models.Wallet, bool, error)
	GetAllByWorkerID(workerID int64) ([]models.Wallet, error)
	GetActive(workerID int64) (*models.Wallet, bool, error)
	SetActive(workerID, walletID int64) (bool, error)
}

type WalletRepositoryImpl struct {
	db *sqlx.DB
}

func NewWalletRepository(db *sqlx.DB) WalletRepository {
	return &WalletRepositoryImpl{db: db}
}

// InsertActive deactivates every wallet the worker has and inserts the
// new one as the active one, in a single transaction. At most one wallet
// per worker is active at any point; wallets are never deleted.
func (repo *WalletRepositoryImpl) InsertActive(wallet *models.Wallet) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}

	defer tx.Rollback()

	query := `UPDATE wallets SET is_active = false WHERE worker_id = $1`

	_, err = tx.ExecContext(ctx, query, wallet.WorkerID)
	if err != nil {
		return 0, err
	}

	var id int64

	query = `
		INSERT INTO wallets (worker_id, address, type, is_active)
		VALUES ($1, $2, $3, true)
		RETURNING id`

	err = tx.QueryRowContext(ctx, query,
		wallet.WorkerID,
		wallet.Address,
		wallet.Type,
	).Scan(&id)
	if err != nil {
		return 0, err
	}

	err = tx.Commit()
	if err != nil {
		return 0, err
	}

	return id, nil
}

func (repo *WalletRepositoryImpl) GetOne(id int64) (*models.Wallet, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var wallet models.Wallet

	query := `SELECT * FROM wallets WHERE id = $1`

	err := repo.db.GetContext(ctx, &wallet, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}

	return &wallet, true, nil
}

func (repo *WalletRepositoryImpl) GetAllByWorkerID(workerID int64) ([]models.Wallet, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var wallets []models.Wallet

	query := `
		SELECT * FROM wallets
		WHERE worker_id = $1
		ORDER BY is_active DESC, created_at DESC`

	err := repo.db.SelectContext(ctx, &wallets, query, workerID)
	if err != nil {
		return nil, err
	}

	return wallets, nil
}

func (repo *WalletRepositoryImpl) GetActive(workerID int64) (*models.Wallet, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var wallet models.Wallet

	query := `
		SELECT * FROM wallets
		WHERE worker_id = $1 AND is_active = true
		LIMIT 1`

	err := repo.db.GetContext(ctx, &wallet, query, workerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}

	return &wallet, true, nil
}

// SetActive swaps activation to the named wallet. Returns false when the
// wallet does not exist under this worker; the swap is rolled back in
// that case so the previously active wallet stays active.
func (repo *WalletRepositoryImpl) SetActive(workerID, walletID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, err
	}

	defer tx.Rollback()

	query := `UPDATE wallets SET is_active = false WHERE worker_id = $1`

	_, err = tx.ExecContext(ctx, query, workerID)
	if err != nil {
		return false, err
	}

	query = `UPDATE wallets SET is_active = true WHERE worker_id = $1 AND id = $2`

	result, err := tx.ExecContext(ctx, query, workerID, walletID)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	if rows == 0 {
		return false, nil
	}

	err = tx.Commit()
	if err != nil {
		return false, err
	}

	return true, nil
}
