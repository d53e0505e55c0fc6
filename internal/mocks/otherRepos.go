package mocks

import (
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/rudovey/workpay/internal/models"
)

type MockWalletRepo struct {
	mock.Mock
}

func (m *MockWalletRepo) InsertActive(wallet *models.Wallet) (int64, error) {
	args := m.Called(wallet)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWalletRepo) GetOne(id int64) (*models.Wallet, bool, error) {
	args := m.Called(id)
	wallet, _ := args.Get(0).(*models.Wallet)
	return wallet, args.Bool(1), args.Error(2)
}

func (m *MockWalletRepo) GetAllByWorkerID(workerID int64) ([]models.Wallet, error) {
	args := m.Called(workerID)
	wallets, _ := args.Get(0).([]models.Wallet)
	return wallets, args.Error(1)
}

func (m *MockWalletRepo) GetActive(workerID int64) (*models.Wallet, bool, error) {
	args := m.Called(workerID)
	wallet, _ := args.Get(0).(*models.Wallet)
	return wallet, args.Bool(1), args.Error(2)
}

func (m *MockWalletRepo) SetActive(workerID, walletID int64) (bool, error) {
	args := m.Called(workerID, walletID)
	return args.Bool(0), args.Error(1)
}

type MockProofRepo struct {
	mock.Mock
}

func (m *MockProofRepo) Insert(proof *models.Proof, tx *sqlx.Tx) (int64, error) {
	args := m.Called(proof, tx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProofRepo) GetAllByWithdrawalID(withdrawalID int64) ([]models.Proof, error) {
	args := m.Called(withdrawalID)
	proofs, _ := args.Get(0).([]models.Proof)
	return proofs, args.Error(1)
}

type MockAdminRepo struct {
	mock.Mock
}

func (m *MockAdminRepo) IsAdmin(workerID int64) (bool, error) {
	args := m.Called(workerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAdminRepo) Insert(admin *models.Admin) error {
	args := m.Called(admin)
	return args.Error(0)
}

func (m *MockAdminRepo) Delete(workerID int64) (bool, error) {
	args := m.Called(workerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAdminRepo) GetOne(workerID int64) (*models.Admin, bool, error) {
	args := m.Called(workerID)
	admin, _ := args.Get(0).(*models.Admin)
	return admin, args.Bool(1), args.Error(2)
}

func (m *MockAdminRepo) GetAll() ([]models.Admin, error) {
	args := m.Called()
	admins, _ := args.Get(0).([]models.Admin)
	return admins, args.Error(1)
}

type MockStatsRepo struct {
	mock.Mock
}

func (m *MockStatsRepo) Get() (*models.TeamStats, error) {
	args := m.Called()
	stats, _ := args.Get(0).(*models.TeamStats)
	return stats, args.Error(1)
}

func (m *MockStatsRepo) RecordPayout(amount decimal.Decimal, submittedAt time.Time, tx *sqlx.Tx) error {
	args := m.Called(amount, submittedAt, tx)
	return args.Error(0)
}

type MockActivityRepo struct {
	mock.Mock
}

func (m *MockActivityRepo) Insert(log *models.ActivityLog) (*models.ActivityLog, error) {
	args := m.Called(log)
	inserted, _ := args.Get(0).(*models.ActivityLog)
	return inserted, args.Error(1)
}
