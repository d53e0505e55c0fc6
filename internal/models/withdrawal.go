package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

type Withdrawal struct {
	ID            int64           `db:"id"`
	WorkerID      int64           `db:"worker_id"`
	Amount        decimal.Decimal `db:"amount"`
	WalletAddress string          `db:"wallet_address"`
	WalletType    string          `db:"wallet_type"`
	Direction     string          `db:"direction"`
	ReferenceLink string          `db:"reference_link"`
	Percent       int             `db:"percent"`
	WorkerShare   decimal.Decimal `db:"worker_share"`
	AdminShare    decimal.Decimal `db:"admin_share"`
	Status        string          `db:"status"`
	RejectReason  sql.NullString  `db:"reject_reason"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     sql.NullTime    `db:"updated_at"`
}

// IsPriced reports whether an admin has already put a value on the claim.
// A priced claim stays in the pending status until it is paid or rejected.
func (w *Withdrawal) IsPriced() bool {
	return w.Amount.IsPositive()
}

// ProfitStats is the per-worker aggregate over paid withdrawals.
type ProfitStats struct {
	TotalAmount    decimal.Decimal `db:"total_amount"`
	TotalCount     int             `db:"total_count"`
	MaxAmount      decimal.Decimal `db:"max_amount"`
	WeekAmount     decimal.Decimal `db:"week_amount"`
	MonthAmount    decimal.Decimal `db:"month_amount"`
	HalfYearAmount decimal.Decimal `db:"half_year_amount"`
}

func (s *ProfitStats) Average() decimal.Decimal {
	if s.TotalCount == 0 {
		return decimal.Zero
	}
	return s.TotalAmount.Div(decimal.NewFromInt(int64(s.TotalCount))).Round(2)
}
