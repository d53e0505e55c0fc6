package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/rudovey/workpay/internal/models"
)

type AdminRepository interface {
	IsAdmin(workerID int64) (bool, error)
	Insert(admin *models.Admin) error
	Delete(workerID int64) (bool, error)
	GetOne(workerID int64) (*models.Admin, bool, error)
	GetAll() ([]models.Admin, error)
}

type AdminRepositoryImpl struct {
	db *sqlx.DB
}

func NewAdminRepository(db *sqlx.DB) AdminRepository {
	return &AdminRepositoryImpl{db: db}
}

func (repo *AdminRepositoryImpl) IsAdmin(workerID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var exists bool

	query := `SELECT EXISTS(SELECT 1 FROM admins WHERE worker_id = $1)`

	err := repo.db.GetContext(ctx, &exists, query, workerID)
	if err != nil {
		return false, err
	}

	return exists, nil
}

func (repo *AdminRepositoryImpl) Insert(admin *models.Admin) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	query := `
		INSERT INTO admins (worker_id, username, first_name, is_root)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (worker_id) DO NOTHING`

	_, err := repo.db.ExecContext(ctx, query,
		admin.WorkerID,
		admin.Username,
		admin.FirstName,
		admin.IsRoot,
	)
	return err
}

// Delete removes an admin registration. The root admin row is protected
// and never deleted.
func (repo *AdminRepositoryImpl) Delete(workerID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	query := `DELETE FROM admins WHERE worker_id = $1 AND is_root = false`

	result, err := repo.db.ExecContext(ctx, query, workerID)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}

func (repo *AdminRepositoryImpl) GetOne(workerID int64) (*models.Admin, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var admin models.Admin

	query := `SELECT * FROM admins WHERE worker_id = $1`

	err := repo.db.GetContext(ctx, &admin, query, workerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}

	return &admin, true, nil
}

func (repo *AdminRepositoryImpl) GetAll() ([]models.Admin, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var admins []models.Admin

	query := `SELECT * FROM admins ORDER BY added_at`

	err := repo.db.SelectContext(ctx, &admins, query)
	if err != nil {
		return nil, err
	}

	return admins, nil
}
