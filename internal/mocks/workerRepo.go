package mocks

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/rudovey/workpay/internal/models"
)

type MockWorkerRepo struct {
	mock.Mock
}

func (m *MockWorkerRepo) Insert(worker *models.Worker, tx *sqlx.Tx) (int64, error) {
	args := m.Called(worker, tx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWorkerRepo) GetOne(id int64) (*models.Worker, bool, error) {
	args := m.Called(id)
	worker, _ := args.Get(0).(*models.Worker)
	return worker, args.Bool(1), args.Error(2)
}

func (m *MockWorkerRepo) GetByEmail(email string) (*models.Worker, bool, error) {
	args := m.Called(email)
	worker, _ := args.Get(0).(*models.Worker)
	return worker, args.Bool(1), args.Error(2)
}

func (m *MockWorkerRepo) Touch(id int64) error {
	return nil
}

func (m *MockWorkerRepo) UpdatePercent(id int64, percent int, tx *sqlx.Tx) error {
	args := m.Called(id, percent, tx)
	return args.Error(0)
}

func (m *MockWorkerRepo) CreditEarnings(id int64, amount decimal.Decimal, tx *sqlx.Tx) error {
	args := m.Called(id, amount, tx)
	return args.Error(0)
}

func (m *MockWorkerRepo) SetMentor(id int64, mentorID sql.NullInt64, tx *sqlx.Tx) error {
	args := m.Called(id, mentorID, tx)
	return args.Error(0)
}

func (m *MockWorkerRepo) SetMentorRole(id int64, isMentor bool, note sql.NullString) error {
	args := m.Called(id, isMentor, note)
	return args.Error(0)
}

func (m *MockWorkerRepo) SetBlocked(id int64, blocked bool) error {
	args := m.Called(id, blocked)
	return args.Error(0)
}

func (m *MockWorkerRepo) ToggleHideFromTop(id int64) (bool, error) {
	args := m.Called(id)
	return args.Bool(0), args.Error(1)
}

func (m *MockWorkerRepo) LinkChat(id int64, chatID int64) error {
	return nil
}

func (m *MockWorkerRepo) CountOutearning(earned decimal.Decimal) (int, error) {
	args := m.Called(earned)
	return args.Int(0), args.Error(1)
}

func (m *MockWorkerRepo) Top(limit int) ([]models.Worker, error) {
	args := m.Called(limit)
	workers, _ := args.Get(0).([]models.Worker)
	return workers, args.Error(1)
}

func (m *MockWorkerRepo) Mentors() ([]models.Worker, error) {
	args := m.Called()
	workers, _ := args.Get(0).([]models.Worker)
	return workers, args.Error(1)
}

func (m *MockWorkerRepo) Mentees(mentorID int64) ([]models.Worker, error) {
	args := m.Called(mentorID)
	workers, _ := args.Get(0).([]models.Worker)
	return workers, args.Error(1)
}

func (m *MockWorkerRepo) MenteeAggregate(mentorID int64) (int, decimal.Decimal, error) {
	args := m.Called(mentorID)
	return args.Int(0), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockWorkerRepo) ActiveCount() (int, error) {
	return 0, nil
}
