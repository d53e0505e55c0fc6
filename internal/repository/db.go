package repository

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/rudovey/workpay/assets"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"

	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/lib/pq"
)

const defaultTimeout = 3 * time.Second

// Database interface defines available repositories
type Database interface {
	Worker() WorkerRepository
	Wallet() WalletRepository
	Withdrawal() WithdrawalRepository
	Proof() ProofRepository
	Admin() AdminRepository
	Stats() StatsRepository
	Activity() ActivityRepository

	Close() error
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
	WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error
}

// DatabaseImpl implements the Database interface
type DatabaseImpl struct {
	db             *sqlx.DB
	workerRepo     WorkerRepository
	walletRepo     WalletRepository
	withdrawalRepo WithdrawalRepository
	proofRepo      ProofRepository
	adminRepo      AdminRepository
	statsRepo      StatsRepository
	activityRepo   ActivityRepository

	mu sync.Mutex
}

// New initializes a database connection and runs migrations if enabled
func New(dsn string, automigrate bool) (Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	db, err := sqlx.ConnectContext(ctx, "postgres", "postgres://"+dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(2 * time.Hour)

	// Run migrations if enabled
	if automigrate {
		iofsDriver, err := iofs.New(assets.EmbeddedFiles, "migrations")
		if err != nil {
			return nil, err
		}

		migrator, err := migrate.NewWithSourceInstance("iofs", iofsDriver, "postgres://"+dsn)
		if err != nil {
			return nil, err
		}

		if err := migrator.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return nil, err
		}
	}

	return &DatabaseImpl{db: db}, nil
}

func (d *DatabaseImpl) Close() error {
	return d.db.Close()
}

func (d *DatabaseImpl) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error) {
	tx, err := d.db.BeginTxx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// WithTx runs fn inside a single transaction. The compound mutations in
// this system (wallet activation swap, payment confirmation plus the
// stats rollup, mentor bind/unbind plus the percent change) must all go
// through here; none of them are naturally atomic.
func (d *DatabaseImpl) WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit()
}

func (d *DatabaseImpl) Worker() WorkerRepository {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.workerRepo == nil {
		d.workerRepo = NewWorkerRepository(d.db)
	}
	return d.workerRepo
}

func (d *DatabaseImpl) Wallet() WalletRepository {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.walletRepo == nil {
		d.walletRepo = NewWalletRepository(d.db)
	}
	return d.walletRepo
}

func (d *DatabaseImpl) Withdrawal() WithdrawalRepository {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.withdrawalRepo == nil {
		d.withdrawalRepo = NewWithdrawalRepository(d.db)
	}
	return d.withdrawalRepo
}

func (d *DatabaseImpl) Proof() ProofRepository {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.proofRepo == nil {
		d.proofRepo = NewProofRepository(d.db)
	}
	return d.proofRepo
}

func (d *DatabaseImpl) Admin() AdminRepository {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.adminRepo == nil {
		d.adminRepo = NewAdminRepository(d.db)
	}
	return d.adminRepo
}

func (d *DatabaseImpl) Stats() StatsRepository {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.statsRepo == nil {
		d.statsRepo = NewStatsRepository(d.db)
	}
	return d.statsRepo
}

func (d *DatabaseImpl) Activity() ActivityRepository {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.activityRepo == nil {
		d.activityRepo = NewActivityRepository(d.db)
	}
	return d.activityRepo
}
