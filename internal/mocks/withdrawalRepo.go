package mocks

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/rudovey/workpay/internal/models"
)

type MockWithdrawalRepo struct {
	mock.Mock
}

func (m *MockWithdrawalRepo) Insert(withdrawal *models.Withdrawal, tx *sqlx.Tx) (int64, error) {
	args := m.Called(withdrawal, tx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWithdrawalRepo) GetOne(id int64) (*models.Withdrawal, bool, error) {
	args := m.Called(id)
	withdrawal, _ := args.Get(0).(*models.Withdrawal)
	return withdrawal, args.Bool(1), args.Error(2)
}

func (m *MockWithdrawalRepo) GetAllByWorkerID(workerID int64) ([]models.Withdrawal, error) {
	args := m.Called(workerID)
	withdrawals, _ := args.Get(0).([]models.Withdrawal)
	return withdrawals, args.Error(1)
}

func (m *MockWithdrawalRepo) Pending() ([]models.Withdrawal, error) {
	args := m.Called()
	withdrawals, _ := args.Get(0).([]models.Withdrawal)
	return withdrawals, args.Error(1)
}

func (m *MockWithdrawalRepo) SetAmount(id int64, amount, workerShare, adminShare decimal.Decimal, tx *sqlx.Tx) error {
	args := m.Called(id, amount, workerShare, adminShare, tx)
	return args.Error(0)
}

func (m *MockWithdrawalRepo) SetStatus(id int64, status string, reason sql.NullString, tx *sqlx.Tx) error {
	args := m.Called(id, status, reason, tx)
	return args.Error(0)
}

func (m *MockWithdrawalRepo) MostCommonDirection(workerID int64) (string, bool, error) {
	return "", false, nil
}

func (m *MockWithdrawalRepo) GlobalMostCommonDirection(tx *sqlx.Tx) (string, bool, error) {
	return "", false, nil
}

func (m *MockWithdrawalRepo) ProfitStats(workerID int64) (*models.ProfitStats, error) {
	args := m.Called(workerID)
	stats, _ := args.Get(0).(*models.ProfitStats)
	return stats, args.Error(1)
}
