package mocks

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/rudovey/workpay/internal/repository"
)

// MockDatabase satisfies repository.Database with testify-backed repos.
// WithTx simply runs the function with a nil transaction; every repo
// method accepts that and falls through to its non-tx path.
type MockDatabase struct {
	WorkerRepo     *MockWorkerRepo
	WalletRepo     *MockWalletRepo
	WithdrawalRepo *MockWithdrawalRepo
	ProofRepo      *MockProofRepo
	AdminRepo      *MockAdminRepo
	StatsRepo      *MockStatsRepo
	ActivityRepo   *MockActivityRepo
}

func NewMockDatabase() *MockDatabase {
	return &MockDatabase{
		WorkerRepo:     new(MockWorkerRepo),
		WalletRepo:     new(MockWalletRepo),
		WithdrawalRepo: new(MockWithdrawalRepo),
		ProofRepo:      new(MockProofRepo),
		AdminRepo:      new(MockAdminRepo),
		StatsRepo:      new(MockStatsRepo),
		ActivityRepo:   new(MockActivityRepo),
	}
}

func (m *MockDatabase) Worker() repository.WorkerRepository         { return m.WorkerRepo }
func (m *MockDatabase) Wallet() repository.WalletRepository         { return m.WalletRepo }
func (m *MockDatabase) Withdrawal() repository.WithdrawalRepository { return m.WithdrawalRepo }
func (m *MockDatabase) Proof() repository.ProofRepository           { return m.ProofRepo }
func (m *MockDatabase) Admin() repository.AdminRepository           { return m.AdminRepo }
func (m *MockDatabase) Stats() repository.StatsRepository           { return m.StatsRepo }
func (m *MockDatabase) Activity() repository.ActivityRepository     { return m.ActivityRepo }

func (m *MockDatabase) Close() error { return nil }

func (m *MockDatabase) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error) {
	return nil, nil
}

func (m *MockDatabase) WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	return fn(nil)
}
