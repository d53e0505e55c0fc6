package models

import (
	"database/sql"
	"time"
)

type Admin struct {
	WorkerID  int64          `db:"worker_id"`
	Username  sql.NullString `db:"username"`
	FirstName string         `db:"first_name"`
	IsRoot    bool           `db:"is_root"`
	AddedAt   time.Time      `db:"added_at"`
}
