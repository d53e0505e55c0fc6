package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// TeamStats is a single-row rollup, maintained in the same transaction
// that marks a withdrawal as paid.
type TeamStats struct {
	ID                  int64           `db:"id"`
	TotalAmount         decimal.Decimal `db:"total_amount"`
	TotalProfits        int             `db:"total_profits"`
	TodayAmount         decimal.Decimal `db:"today_amount"`
	TodayProfits        int             `db:"today_profits"`
	TodayDate           time.Time       `db:"today_date"`
	MostCommonDirection sql.NullString  `db:"most_common_direction"`
	ActiveWorkers       int             `db:"active_workers"`
	UpdatedAt           sql.NullTime    `db:"updated_at"`
}
