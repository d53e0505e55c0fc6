package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rudovey/workpay/internal/mocks"
	"github.com/rudovey/workpay/internal/models"
	"github.com/rudovey/workpay/internal/repository"
)

func TestComputeShares(t *testing.T) {
	tests := []struct {
		name        string
		amount      string
		percent     int
		workerShare string
		adminShare  string
	}{
		{name: "default split", amount: "100", percent: 70, workerShare: "70", adminShare: "30"},
		{name: "mentored split", amount: "100", percent: 60, workerShare: "60", adminShare: "40"},
		{name: "rounding up", amount: "0.01", percent: 70, workerShare: "0.01", adminShare: "0"},
		{name: "odd amount", amount: "99.99", percent: 60, workerShare: "59.99", adminShare: "40"},
		{name: "full percent", amount: "55.55", percent: 100, workerShare: "55.55", adminShare: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount := decimal.RequireFromString(tt.amount)

			workerShare, adminShare := ComputeShares(amount, tt.percent)

			require.True(t, workerShare.Equal(decimal.RequireFromString(tt.workerShare)),
				"worker share %s", workerShare)
			require.True(t, adminShare.Equal(decimal.RequireFromString(tt.adminShare)),
				"admin share %s", adminShare)

			// the two shares must always reassemble the amount exactly
			require.True(t, workerShare.Add(adminShare).Equal(amount))
		})
	}
}

func TestSubmitFreezesPercent(t *testing.T) {
	db := mocks.NewMockDatabase()
	service := NewClaimService(db, NopPublisher{})

	worker := &models.Worker{ID: 7, Percent: 60}
	db.WorkerRepo.On("GetOne", int64(7)).Return(worker, true, nil)
	db.WithdrawalRepo.On("Insert", mock.Anything, mock.Anything).Return(int64(42), nil)
	db.ProofRepo.On("Insert", mock.Anything, mock.Anything).Return(int64(1), nil)

	claim, err := service.Submit(7, &SubmitClaimInput{
		WalletAddress: "UQabcdef123456",
		Direction:     "crypto",
		ReferenceLink: "https://t.me/c/123/456",
		Proofs:        []ProofInput{{FileRef: "https://cdn.example/p.png", Kind: repository.ProofKindImage}},
	})

	require.NoError(t, err)
	require.Equal(t, int64(42), claim.ID)
	require.Equal(t, 60, claim.Percent)
	require.Equal(t, repository.WithdrawalStatusPending, claim.Status)
	require.True(t, claim.Amount.IsZero())

	db.WithdrawalRepo.AssertExpectations(t)
	db.ProofRepo.AssertExpectations(t)
}

func TestSubmitRejectsBadInput(t *testing.T) {
	db := mocks.NewMockDatabase()
	service := NewClaimService(db, NopPublisher{})

	db.WorkerRepo.On("GetOne", int64(7)).Return(&models.Worker{ID: 7, Percent: 70}, true, nil)

	valid := func() *SubmitClaimInput {
		return &SubmitClaimInput{
			WalletAddress: "UQabcdef123456",
			Direction:     "crypto",
			ReferenceLink: "https://t.me/c/123/456",
			Proofs:        []ProofInput{{FileRef: "https://cdn.example/p.png", Kind: repository.ProofKindImage}},
		}
	}

	t.Run("no proofs", func(t *testing.T) {
		input := valid()
		input.Proofs = nil

		_, err := service.Submit(7, input)
		require.True(t, IsValidation(err))
	})

	t.Run("short wallet address", func(t *testing.T) {
		input := valid()
		input.WalletAddress = "short"

		_, err := service.Submit(7, input)
		require.True(t, IsValidation(err))
	})

	t.Run("wallet address charset", func(t *testing.T) {
		input := valid()
		input.WalletAddress = "has spaces in here"

		_, err := service.Submit(7, input)
		require.True(t, IsValidation(err))
	})

	t.Run("unknown proof kind", func(t *testing.T) {
		input := valid()
		input.Proofs = []ProofInput{{FileRef: "x", Kind: "hologram"}}

		_, err := service.Submit(7, input)
		require.True(t, IsValidation(err))
	})

	t.Run("missing direction", func(t *testing.T) {
		input := valid()
		input.Direction = ""

		_, err := service.Submit(7, input)
		require.True(t, IsValidation(err))
	})
}

func TestSubmitBlockedWorker(t *testing.T) {
	db := mocks.NewMockDatabase()
	service := NewClaimService(db, NopPublisher{})

	db.WorkerRepo.On("GetOne", int64(9)).Return(&models.Worker{ID: 9, IsBlocked: true}, true, nil)

	_, err := service.Submit(9, &SubmitClaimInput{})
	require.True(t, IsDomain(err))
}

func TestPriceComputesShares(t *testing.T) {
	db := mocks.NewMockDatabase()
	service := NewClaimService(db, NopPublisher{})

	pending := &models.Withdrawal{
		ID:       42,
		WorkerID: 7,
		Percent:  70,
		Status:   repository.WithdrawalStatusPending,
	}
	db.WithdrawalRepo.On("GetOne", int64(42)).Return(pending, true, nil)
	db.WithdrawalRepo.On("SetAmount", int64(42),
		decimal.NewFromInt(100), decimal.NewFromInt(100).Mul(decimal.NewFromInt(70)).Div(decimal.NewFromInt(100)).Round(2), mock.Anything, mock.Anything,
	).Return(nil)

	claim, err := service.Price(42, decimal.NewFromInt(100))

	require.NoError(t, err)
	require.True(t, claim.WorkerShare.Equal(decimal.NewFromInt(70)))
	require.True(t, claim.AdminShare.Equal(decimal.NewFromInt(30)))
}

func TestPriceBounds(t *testing.T) {
	db := mocks.NewMockDatabase()
	service := NewClaimService(db, NopPublisher{})

	pending := &models.Withdrawal{ID: 42, Percent: 70, Status: repository.WithdrawalStatusPending}
	db.WithdrawalRepo.On("GetOne", int64(42)).Return(pending, true, nil)

	_, err := service.Price(42, decimal.Zero)
	require.True(t, IsValidation(err))

	_, err = service.Price(42, decimal.NewFromInt(-5))
	require.True(t, IsValidation(err))

	_, err = service.Price(42, MaxWithdrawal.Add(decimal.NewFromFloat(0.01)))
	require.True(t, IsValidation(err))
}

func TestTerminalClaimsAreImmutable(t *testing.T) {
	db := mocks.NewMockDatabase()
	service := NewClaimService(db, NopPublisher{})

	paid := &models.Withdrawal{ID: 1, Status: repository.WithdrawalStatusPaid}
	rejected := &models.Withdrawal{ID: 2, Status: repository.WithdrawalStatusRejected}
	db.WithdrawalRepo.On("GetOne", int64(1)).Return(paid, true, nil)
	db.WithdrawalRepo.On("GetOne", int64(2)).Return(rejected, true, nil)

	_, err := service.Price(1, decimal.NewFromInt(10))
	require.True(t, IsDomain(err))

	_, err = service.Reject(1, "late")
	require.True(t, IsDomain(err))

	_, err = service.ConfirmPayment(2)
	require.True(t, IsDomain(err))
}

func TestConfirmPaymentSettlesAtomically(t *testing.T) {
	db := mocks.NewMockDatabase()
	service := NewClaimService(db, NopPublisher{})

	submittedAt := time.Now().Add(-time.Hour)
	priced := &models.Withdrawal{
		ID:          42,
		WorkerID:    7,
		Amount:      decimal.NewFromInt(100),
		WorkerShare: decimal.NewFromInt(70),
		AdminShare:  decimal.NewFromInt(30),
		Percent:     70,
		Status:      repository.WithdrawalStatusPending,
		CreatedAt:   submittedAt,
	}
	db.WithdrawalRepo.On("GetOne", int64(42)).Return(priced, true, nil)
	db.WithdrawalRepo.On("SetStatus", int64(42), repository.WithdrawalStatusPaid, mock.Anything, mock.Anything).Return(nil)
	db.WorkerRepo.On("CreditEarnings", int64(7), decimal.NewFromInt(70), mock.Anything).Return(nil)
	db.StatsRepo.On("RecordPayout", decimal.NewFromInt(100), submittedAt, mock.Anything).Return(nil)

	claim, err := service.ConfirmPayment(42)

	require.NoError(t, err)
	require.Equal(t, repository.WithdrawalStatusPaid, claim.Status)

	// the worker is credited exactly their share; the rollup takes the full amount
	db.WorkerRepo.AssertExpectations(t)
	db.StatsRepo.AssertExpectations(t)
	db.WithdrawalRepo.AssertExpectations(t)
}

func TestConfirmPaymentRequiresPricing(t *testing.T) {
	db := mocks.NewMockDatabase()
	service := NewClaimService(db, NopPublisher{})

	unpriced := &models.Withdrawal{ID: 5, Status: repository.WithdrawalStatusPending}
	db.WithdrawalRepo.On("GetOne", int64(5)).Return(unpriced, true, nil)

	_, err := service.ConfirmPayment(5)
	require.True(t, IsDomain(err))
}

func TestRejectRequiresReason(t *testing.T) {
	db := mocks.NewMockDatabase()
	service := NewClaimService(db, NopPublisher{})

	_, err := service.Reject(1, "")
	require.True(t, IsValidation(err))
}

func TestRejectPricedClaim(t *testing.T) {
	db := mocks.NewMockDatabase()
	service := NewClaimService(db, NopPublisher{})

	priced := &models.Withdrawal{
		ID:          42,
		Amount:      decimal.NewFromInt(50),
		WorkerShare: decimal.NewFromInt(35),
		Status:      repository.WithdrawalStatusPending,
	}
	db.WithdrawalRepo.On("GetOne", int64(42)).Return(priced, true, nil)
	db.WithdrawalRepo.On("SetStatus", int64(42), repository.WithdrawalStatusRejected, mock.Anything, mock.Anything).Return(nil)

	claim, err := service.Reject(42, "duplicate submission")

	require.NoError(t, err)
	require.Equal(t, repository.WithdrawalStatusRejected, claim.Status)
	require.Equal(t, "duplicate submission", claim.RejectReason.String)
}
