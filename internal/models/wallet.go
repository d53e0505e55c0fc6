package models

import (
	"time"
)

type Wallet struct {
	ID        int64     `db:"id"`
	WorkerID  int64     `db:"worker_id"`
	Address   string    `db:"address"`
	Type      string    `db:"type"`
	IsActive  bool      `db:"is_active"`
	CreatedAt time.Time `db:"created_at"`
}
