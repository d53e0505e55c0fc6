package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/rudovey/workpay/internal/models"
)

type WorkerRepository interface {
	Insert(worker *models.Worker, tx *sqlx.Tx) (int64, error)
	GetOne(id int64) (*models.Worker, bool, error)
	GetByEmail(email string) (*models.Worker, bool, error)
	Touch(id int64) error
	UpdatePercent(id int64, percent int, tx *sqlx.Tx) error
	CreditEarnings(id int64, amount decimal.Decimal, tx *sqlx.Tx) error
	SetMentor(id int64, mentorID sql.NullInt64, tx *sqlx.Tx) error
	SetMentorRole(id int64, isMentor bool, note sql.NullString) error
	SetBlocked(id int64, blocked bool) error
	ToggleHideFromTop(id int64) (bool, error)
	LinkChat(id int64, chatID int64) error
	CountOutearning(earned decimal.Decimal) (int, error)
	Top(limit int) ([]models.Worker, error)
	Mentors() ([]models.Worker, error)
	Mentees(mentorID int64) ([]models.Worker, error)
	MenteeAggregate(mentorID int64) (int, decimal.Decimal, error)
	ActiveCount() (int, error)
}

type WorkerRepositoryImpl struct {
	db *sqlx.DB
}

func NewWorkerRepository(db *sqlx.DB) WorkerRepository {
	return &WorkerRepositoryImpl{db: db}
}

func (repo *WorkerRepositoryImpl) Insert(worker *models.Worker, tx *sqlx.Tx) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var id int64
	query := `
		INSERT INTO workers (username, first_name, last_name, email, hashed_password, percent)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	if tx != nil {
		err := tx.QueryRowContext(ctx, query,
			worker.Username,
			worker.FirstName,
			worker.LastName,
			worker.Email,
			worker.HashedPassword,
			worker.Percent,
		).Scan(&id)
		if err != nil {
			return 0, err
		}
	} else {
		err := repo.db.GetContext(ctx, &id, query,
			worker.Username,
			worker.FirstName,
			worker.LastName,
			worker.Email,
			worker.HashedPassword,
			worker.Percent,
		)
		if err != nil {
			return 0, err
		}
	}

	return id, nil
}

func (repo *WorkerRepositoryImpl) GetOne(id int64) (*models.Worker, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var worker models.Worker

	query := `SELECT * FROM workers WHERE id = $1`

	err := repo.db.GetContext(ctx, &worker, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}

	return &worker, true, err
}

func (repo *WorkerRepositoryImpl) GetByEmail(email string) (*models.Worker, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var worker models.Worker

	query := `SELECT * FROM workers WHERE email = $1`

	err := repo.db.GetContext(ctx, &worker, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}

	return &worker, true, err
}

func (repo *WorkerRepositoryImpl) Touch(id int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	query := `UPDATE workers SET last_active_at = now() WHERE id = $1`

	_, err := repo.db.ExecContext(ctx, query, id)
	return err
}

func (repo *WorkerRepositoryImpl) UpdatePercent(id int64, percent int, tx *sqlx.Tx) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	query := `UPDATE workers SET percent = $1 WHERE id = $2`

	if tx != nil {
		_, err := tx.ExecContext(ctx, query, percent, id)
		return err
	}

	_, err := repo.db.ExecContext(ctx, query, percent, id)
	return err
}

// CreditEarnings adds a paid claim's worker share to the lifetime total
// and bumps the paid-claim counter. The total only ever grows, and only
// through here.
func (repo *WorkerRepositoryImpl) CreditEarnings(id int64, amount decimal.Decimal, tx *sqlx.Tx) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	query := `
		UPDATE workers
		SET total_earned = total_earned + $1, paid_claims = paid_claims + 1
		WHERE id = $2`

	if tx != nil {
		_, err := tx.ExecContext(ctx, query, amount, id)
		return err
	}

	_, err := repo.db.ExecContext(ctx, query, amount, id)
	return err
}

func (repo *WorkerRepositoryImpl) SetMentor(id int64, mentorID sql.NullInt64, tx *sqlx.Tx) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	query := `UPDATE workers SET mentor_id = $1 WHERE id = $2`

	if tx != nil {
		_, err := tx.ExecContext(ctx, query, mentorID, id)
		return err
	}

	_, err := repo.db.ExecContext(ctx, query, mentorID, id)
	return err
}

func (repo *WorkerRepositoryImpl) SetMentorRole(id int64, isMentor bool, note sql.NullString) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	query := `UPDATE workers SET is_mentor = $1, mentor_note = $2 WHERE id = $3`

	_, err := repo.db.ExecContext(ctx, query, isMentor, note, id)
	return err
}

func (repo *WorkerRepositoryImpl) SetBlocked(id int64, blocked bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	query := `UPDATE workers SET is_blocked = $1 WHERE id = $2`

	_, err := repo.db.ExecContext(ctx, query, blocked, id)
	return err
}

func (repo *WorkerRepositoryImpl) ToggleHideFromTop(id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var hidden bool

	query := `
		UPDATE workers SET hide_from_top = NOT hide_from_top
		WHERE id = $1
		RETURNING hide_from_top`

	err := repo.db.GetContext(ctx, &hidden, query, id)
	if err != nil {
		return false, err
	}

	return hidden, nil
}

func (repo *WorkerRepositoryImpl) LinkChat(id int64, chatID int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	query := `UPDATE workers SET chat_id = $1 WHERE id = $2`

	_, err := repo.db.ExecContext(ctx, query, chatID, id)
	return err
}

// CountOutearning counts leaderboard-eligible workers whose lifetime
// earnings strictly exceed the given total. Rank = 1 + this count.
func (repo *WorkerRepositoryImpl) CountOutearning(earned decimal.Decimal) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var count int

	query := `
		SELECT COUNT(*) FROM workers
		WHERE total_earned > $1 AND hide_from_top = false AND is_blocked = false`

	err := repo.db.GetContext(ctx, &count, query, earned)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (repo *WorkerRepositoryImpl) Top(limit int) ([]models.Worker, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var workers []models.Worker

	// id ASC keeps ties stable in insertion order
	query := `
		SELECT * FROM workers
		WHERE hide_from_top = false AND is_blocked = false AND total_earned > 0
		ORDER BY total_earned DESC, id ASC
		LIMIT $1`

	err := repo.db.SelectContext(ctx, &workers, query, limit)
	if err != nil {
		return nil, err
	}

	return workers, nil
}

func (repo *WorkerRepositoryImpl) Mentors() ([]models.Worker, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var workers []models.Worker

	query := `
		SELECT * FROM workers
		WHERE is_mentor = true AND is_blocked = false
		ORDER BY first_name`

	err := repo.db.SelectContext(ctx, &workers, query)
	if err != nil {
		return nil, err
	}

	return workers, nil
}

func (repo *WorkerRepositoryImpl) Mentees(mentorID int64) ([]models.Worker, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var workers []models.Worker

	query := `
		SELECT * FROM workers
		WHERE mentor_id = $1 AND is_blocked = false
		ORDER BY first_name`

	err := repo.db.SelectContext(ctx, &workers, query, mentorID)
	if err != nil {
		return nil, err
	}

	return workers, nil
}

func (repo *WorkerRepositoryImpl) MenteeAggregate(mentorID int64) (int, decimal.Decimal, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var row struct {
		Count int             `db:"count"`
		Total decimal.Decimal `db:"total"`
	}

	query := `
		SELECT COUNT(*) AS count, COALESCE(SUM(total_earned), 0) AS total
		FROM workers WHERE mentor_id = $1`

	err := repo.db.GetContext(ctx, &row, query, mentorID)
	if err != nil {
		return 0, decimal.Zero, err
	}

	return row.Count, row.Total, nil
}

func (repo *WorkerRepositoryImpl) ActiveCount() (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var count int

	query := `SELECT COUNT(*) FROM workers WHERE is_blocked = false`

	err := repo.db.GetContext(ctx, &count, query)
	if err != nil {
		return 0, err
	}

	return count, nil
}
