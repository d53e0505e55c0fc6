package repository

import (
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestRecordPayoutUsesDatabaseClock(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewStatsRepository(db)

	amount := decimal.NewFromInt(100)
	submittedAt := time.Date(2026, 8, 29, 23, 50, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`SET today_amount = 0, today_profits = 0, today_date = CURRENT_DATE`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`SET total_amount = total_amount + $1`)).
		WithArgs(amount).
		WillReturnResult(sqlmock.NewResult(0, 1))

	// the submission-day bucket is decided by postgres in the statement
	// itself, against the same CURRENT_DATE the window roll used
	mock.ExpectExec(regexp.QuoteMeta(`WHERE $2::date = CURRENT_DATE`)).
		WithArgs(amount, submittedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT direction FROM withdrawals`)).
		WithArgs(WithdrawalStatusPaid).
		WillReturnRows(sqlmock.NewRows([]string{"direction"}).AddRow("crypto"))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM workers WHERE is_blocked = false`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))
	mock.ExpectExec(regexp.QuoteMeta(`SET most_common_direction = $1, active_workers = $2`)).
		WithArgs("crypto", 4).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.Beginx()
	require.NoError(t, err)

	require.NoError(t, repo.RecordPayout(amount, submittedAt, tx))
	require.NoError(t, tx.Commit())
	require.NoError(t, mock.ExpectationsWereMet())
}
