package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rudovey/workpay/internal/mocks"
	"github.com/rudovey/workpay/internal/models"
)

func TestValidateWalletAddress(t *testing.T) {
	tests := []struct {
		name    string
		address string
		valid   bool
	}{
		{name: "typical address", address: "UQabc_def-123.456", valid: true},
		{name: "minimum length", address: strings.Repeat("a", 10), valid: true},
		{name: "maximum length", address: strings.Repeat("a", 100), valid: true},
		{name: "too short", address: strings.Repeat("a", 9), valid: false},
		{name: "too long", address: strings.Repeat("a", 101), valid: false},
		{name: "spaces", address: "has a space in it", valid: false},
		{name: "unicode", address: "кошелёк-адрес-здесь", valid: false},
		{name: "empty", address: "", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWalletAddress(tt.address)
			if tt.valid {
				require.NoError(t, err)
			} else {
				require.True(t, IsValidation(err))
			}
		})
	}
}

func TestAddWalletActivatesIt(t *testing.T) {
	db := mocks.NewMockDatabase()
	service := NewWalletService(db)

	db.WorkerRepo.On("GetOne", int64(7)).Return(&models.Worker{ID: 7}, true, nil)
	db.WalletRepo.On("InsertActive", mock.Anything).Return(int64(3), nil)

	wallet, err := service.Add(7, "UQabcdef123456", "")

	require.NoError(t, err)
	require.Equal(t, int64(3), wallet.ID)
	require.True(t, wallet.IsActive)
	require.Equal(t, "TON Wallet", wallet.Type)
}

func TestAddWalletValidatesAddress(t *testing.T) {
	db := mocks.NewMockDatabase()
	service := NewWalletService(db)

	db.WorkerRepo.On("GetOne", int64(7)).Return(&models.Worker{ID: 7}, true, nil)

	_, err := service.Add(7, "bad", "")
	require.True(t, IsValidation(err))
}

func TestSetActiveUnknownWallet(t *testing.T) {
	db := mocks.NewMockDatabase()
	service := NewWalletService(db)

	db.WalletRepo.On("SetActive", int64(7), int64(99)).Return(false, nil)

	err := service.SetActive(7, 99)
	require.True(t, IsNotFound(err))
}

func TestSetActiveSwaps(t *testing.T) {
	db := mocks.NewMockDatabase()
	service := NewWalletService(db)

	db.WalletRepo.On("SetActive", int64(7), int64(3)).Return(true, nil)

	err := service.SetActive(7, 3)
	require.NoError(t, err)
}
