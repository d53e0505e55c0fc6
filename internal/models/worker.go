package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

type Worker struct {
	ID             int64           `db:"id"`
	Username       sql.NullString  `db:"username"`
	FirstName      string          `db:"first_name"`
	LastName       sql.NullString  `db:"last_name"`
	Email          string          `db:"email"`
	HashedPassword string          `db:"hashed_password"`
	Percent        int             `db:"percent"`
	TotalEarned    decimal.Decimal `db:"total_earned"`
	PaidClaims     int             `db:"paid_claims"`
	MentorID       sql.NullInt64   `db:"mentor_id"`
	IsMentor       bool            `db:"is_mentor"`
	MentorNote     sql.NullString  `db:"mentor_note"`
	IsBlocked      bool            `db:"is_blocked"`
	HideFromTop    bool            `db:"hide_from_top"`
	ChatID         sql.NullInt64   `db:"chat_id"`
	CreatedAt      time.Time       `db:"created_at"`
	LastActiveAt   sql.NullTime    `db:"last_active_at"`
}

// DisplayName is what notification texts and leaderboard rows call the worker.
func (w *Worker) DisplayName() string {
	if w.Username.Valid && w.Username.String != "" {
		return "@" + w.Username.String
	}
	return w.FirstName
}
