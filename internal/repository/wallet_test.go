package repository

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/rudovey/workpay/internal/models"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

func TestInsertActiveSwapsActivation(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewWalletRepository(db)

	deactivate := regexp.QuoteMeta(`UPDATE wallets SET is_active = false WHERE worker_id = $1`)
	insert := regexp.QuoteMeta(`INSERT INTO wallets`)

	// every add demotes the worker's whole wallet set and inserts the
	// newcomer as active inside one transaction, so after k adds exactly
	// one wallet is active and it is the k-th
	addresses := []string{"UQwallet-one-111", "UQwallet-two-222", "UQwallet-three-333"}
	for i, address := range addresses {
		mock.ExpectBegin()
		mock.ExpectExec(deactivate).
			WithArgs(int64(7)).
			WillReturnResult(sqlmock.NewResult(0, int64(i)))
		mock.ExpectQuery(insert).
			WithArgs(int64(7), address, "TON Wallet").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(i + 1)))
		mock.ExpectCommit()
	}

	for i, address := range addresses {
		id, err := repo.InsertActive(&models.Wallet{
			WorkerID: 7,
			Address:  address,
			Type:     "TON Wallet",
		})
		require.NoError(t, err)
		require.Equal(t, int64(i+1), id)
	}

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSetActiveSwapsInOneTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewWalletRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE wallets SET is_active = false WHERE worker_id = $1`)).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE wallets SET is_active = true WHERE worker_id = $1 AND id = $2`)).
		WithArgs(int64(7), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	ok, err := repo.SetActive(7, 3)

	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSetActiveUnknownWalletRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewWalletRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE wallets SET is_active = false WHERE worker_id = $1`)).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE wallets SET is_active = true WHERE worker_id = $1 AND id = $2`)).
		WithArgs(int64(7), int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	// the blanket deactivate must not survive a miss
	mock.ExpectRollback()

	ok, err := repo.SetActive(7, 99)

	require.NoError(t, err)
	require.False(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}
