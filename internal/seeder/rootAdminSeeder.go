package seeders

import (
	"context"
	"log"

	"github.com/jmoiron/sqlx"
)

// seedRootAdmin makes sure the configured root admin exists and is
// registered in the admins table. The root admin can never be removed
// through the API, so this is the one place the row is created.
func (seeder *Seeder) seedRootAdmin() {
	if seeder.WorkerID == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	err := seeder.DB.WithTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO workers (id, first_name, email, hashed_password)
			VALUES ($1, 'Root', $2, '')
			ON CONFLICT (id) DO NOTHING`

		if _, err := tx.ExecContext(ctx, query, seeder.WorkerID, seeder.Email); err != nil {
			return err
		}

		query = `
			INSERT INTO admins (worker_id, first_name, is_root)
			VALUES ($1, 'Root', true)
			ON CONFLICT (worker_id) DO UPDATE SET is_root = true`

		_, err := tx.ExecContext(ctx, query, seeder.WorkerID)
		return err
	})
	if err != nil {
		log.Fatalf("Failed to seed root admin: %v", err)
	}
}
