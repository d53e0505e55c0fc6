package seeders

import (
	"time"

	"github.com/rudovey/workpay/internal/repository"
)

const defaultTimeout = 5 * time.Second

type Seeder struct {
	DB       repository.Database
	WorkerID int64
	Email    string
}

func New(db repository.Database, workerID int64, email string) *Seeder {
	return &Seeder{
		DB:       db,
		WorkerID: workerID,
		Email:    email,
	}
}

func (seeder *Seeder) Run() {
	seeder.seedRootAdmin()
}
