// Logging is a critical part of the system
// Every action (synchronous or asynchronous) should be logged.
// This helps in audit and will also be used to trace activites.
// ...
// We used polymorphism to define entity and entity_id
// This allow our table to be used for different part of the application
package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/rudovey/workpay/internal/models"
)

type ActivityRepository interface {
	Insert(log *models.ActivityLog) (*models.ActivityLog, error)
}

const (
	// ActivityLogWithdrawalEntity is used in actions that has to do with withdrawal claims
	ActivityLogWithdrawalEntity = "withdrawal"

	// ActivityLogWalletEntity is used in activites that has to do with wallets
	ActivityLogWalletEntity = "wallet"

	// ActivityLogWorkerEntity is used in activites that has to do with worker accounts
	ActivityLogWorkerEntity = "worker"

	// ActivityLogMentorEntity is used in activites around mentorship binding
	ActivityLogMentorEntity = "mentor"
)

type ActivityRepositoryImpl struct {
	db *sqlx.DB
}

func NewActivityRepository(db *sqlx.DB) ActivityRepository {
	return &ActivityRepositoryImpl{db: db}
}

func (repo *ActivityRepositoryImpl) Insert(log *models.ActivityLog) (*models.ActivityLog, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var inserted models.ActivityLog

	query := `
		INSERT INTO activity_logs (worker_id, entity, entity_id, description)
		VALUES ($1, $2, $3, $4)
		RETURNING *`

	err := repo.db.GetContext(ctx, &inserted, query,
		log.WorkerID,
		log.Entity,
		log.EntityID,
		log.Description,
	)

	if err != nil {
		return nil, err
	}

	return &inserted, nil
}
