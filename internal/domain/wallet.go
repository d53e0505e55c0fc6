package domain

import (
	"github.com/rudovey/workpay/internal/models"
	"github.com/rudovey/workpay/internal/repository"
)

// WalletService manages a worker's payout wallets. A worker can hold
// any number of wallets but exactly one of them is active; adding a
// wallet makes the new one active and demotes the rest.
type WalletService struct {
	DB repository.Database
}

func NewWalletService(db repository.Database) *WalletService {
	return &WalletService{DB: db}
}

// Add registers a new wallet and activates it.
func (s *WalletService) Add(workerID int64, address, walletType string) (*models.Wallet, error) {
	_, found, err := s.DB.Worker().GetOne(workerID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, &NotFoundError{Resource: "worker"}
	}

	if err := ValidateWalletAddress(address); err != nil {
		return nil, err
	}

	if walletType == "" {
		walletType = "TON Wallet"
	}

	wallet := &models.Wallet{
		WorkerID: workerID,
		Address:  address,
		Type:     walletType,
		IsActive: true,
	}

	id, err := s.DB.Wallet().InsertActive(wallet)
	if err != nil {
		return nil, err
	}
	wallet.ID = id

	return wallet, nil
}

// SetActive switches the worker's active wallet. The target must belong
// to the worker; on any failure the previously active wallet stays
// active.
func (s *WalletService) SetActive(workerID, walletID int64) error {
	ok, err := s.DB.Wallet().SetActive(workerID, walletID)
	if err != nil {
		return err
	}
	if !ok {
		return &NotFoundError{Resource: "wallet"}
	}

	return nil
}

// List returns the worker's wallets, active one first.
func (s *WalletService) List(workerID int64) ([]models.Wallet, error) {
	_, found, err := s.DB.Worker().GetOne(workerID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, &NotFoundError{Resource: "worker"}
	}

	return s.DB.Wallet().GetAllByWorkerID(workerID)
}

// Active returns the worker's currently active wallet.
func (s *WalletService) Active(workerID int64) (*models.Wallet, error) {
	wallet, found, err := s.DB.Wallet().GetActive(workerID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, &NotFoundError{Resource: "wallet"}
	}

	return wallet, nil
}
