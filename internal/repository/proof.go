package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/rudovey/workpay/internal/models"
)

// define possible proof content kinds
const (
	ProofKindImage    = "image"
	ProofKindVideo    = "video"
	ProofKindDocument = "document"
	ProofKindText     = "text"
)

// Proof rows are append-only. Nothing updates or deletes them.
type ProofRepository interface {
	Insert(proof *models.Proof, tx *sqlx.Tx) (int64, error)
	GetAllByWithdrawalID(withdrawalID int64) ([]models.Proof, error)
}

type ProofRepositoryImpl struct {
	db *sqlx.DB
}

func NewProofRepository(db *sqlx.DB) ProofRepository {
	return &ProofRepositoryImpl{db: db}
}

func (repo *ProofRepositoryImpl) Insert(proof *models.Proof, tx *sqlx.Tx) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var id int64

	query := `
		INSERT INTO proofs (withdrawal_id, file_ref, kind)
		VALUES ($1, $2, $3)
		RETURNING id`

	if tx != nil {
		err := tx.QueryRowContext(ctx, query,
			proof.WithdrawalID,
			proof.FileRef,
			proof.Kind,
		).Scan(&id)
		if err != nil {
			return 0, err
		}
	} else {
		err := repo.db.GetContext(ctx, &id, query,
			proof.WithdrawalID,
			proof.FileRef,
			proof.Kind,
		)
		if err != nil {
			return 0, err
		}
	}

	return id, nil
}

func (repo *ProofRepositoryImpl) GetAllByWithdrawalID(withdrawalID int64) ([]models.Proof, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var proofs []models.Proof

	query := `
		SELECT * FROM proofs
		WHERE withdrawal_id = $1
		ORDER BY uploaded_at`

	err := repo.db.SelectContext(ctx, &proofs, query, withdrawalID)
	if err != nil {
		return nil, err
	}

	return proofs, nil
}
