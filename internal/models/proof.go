package models

import (
	"time"
)

type Proof struct {
	ID           int64     `db:"id"`
	WithdrawalID int64     `db:"withdrawal_id"`
	FileRef      string    `db:"file_ref"`
	Kind         string    `db:"kind"`
	UploadedAt   time.Time `db:"uploaded_at"`
}
