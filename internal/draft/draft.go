package draft

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/rudovey/workpay/internal/cache"
	"github.com/rudovey/workpay/internal/domain"
)

// A draft walks a worker through assembling a claim one field at a
// time: wallet, then direction, then reference link, then proofs. Steps
// are strictly forward; the only ways out are cancelling or completing.
// Drafts live in Redis and expire on their own if abandoned.
const (
	StepWallet    = "wallet"
	StepDirection = "direction"
	StepLink      = "link"
	StepProofs    = "proofs"
)

// draftTTL bounds how long an abandoned draft lingers.
const draftTTL = time.Hour

type Draft struct {
	WorkerID      int64               `json:"worker_id"`
	Step          string              `json:"step"`
	WalletAddress string              `json:"wallet_address"`
	WalletType    string              `json:"wallet_type"`
	Direction     string              `json:"direction"`
	ReferenceLink string              `json:"reference_link"`
	Proofs        []domain.ProofInput `json:"proofs"`
}

// Cacher is the slice of the cache the store needs. Satisfied by
// *cache.Cache.
type Cacher interface {
	Get(key string) (string, error)
	Set(key, value string, expiration time.Duration) error
	Delete(key string) error
}

type Store struct {
	cache Cacher
}

func NewStore(cache Cacher) *Store {
	return &Store{cache: cache}
}

func draftKey(workerID int64) string {
	return fmt.Sprintf("draft:claim:%d", workerID)
}

// Start opens a fresh draft at the wallet step, replacing any draft the
// worker had in flight.
func (s *Store) Start(workerID int64) (*Draft, error) {
	d := &Draft{
		WorkerID: workerID,
		Step:     StepWallet,
	}

	if err := s.save(d); err != nil {
		return nil, err
	}

	return d, nil
}

func (s *Store) Get(workerID int64) (*Draft, error) {
	raw, err := s.cache.Get(draftKey(workerID))
	if err != nil {
		if cache.IsMiss(err) {
			return nil, &domain.NotFoundError{Resource: "draft"}
		}
		return nil, err
	}

	var d Draft
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		return nil, err
	}

	return &d, nil
}

func (s *Store) SetWallet(workerID int64, address, walletType string) (*Draft, error) {
	d, err := s.at(workerID, StepWallet)
	if err != nil {
		return nil, err
	}

	if err := domain.ValidateWalletAddress(address); err != nil {
		return nil, err
	}

	if walletType == "" {
		walletType = "TON Wallet"
	}

	d.WalletAddress = address
	d.WalletType = walletType
	d.Step = StepDirection

	if err := s.save(d); err != nil {
		return nil, err
	}

	return d, nil
}

func (s *Store) SetDirection(workerID int64, direction string) (*Draft, error) {
	d, err := s.at(workerID, StepDirection)
	if err != nil {
		return nil, err
	}

	if direction == "" {
		return nil, &domain.ValidationError{Reason: "direction is required"}
	}

	d.Direction = direction
	d.Step = StepLink

	if err := s.save(d); err != nil {
		return nil, err
	}

	return d, nil
}

func (s *Store) SetLink(workerID int64, link string) (*Draft, error) {
	d, err := s.at(workerID, StepLink)
	if err != nil {
		return nil, err
	}

	if link == "" {
		return nil, &domain.ValidationError{Reason: "reference link is required"}
	}

	d.ReferenceLink = link
	d.Step = StepProofs

	if err := s.save(d); err != nil {
		return nil, err
	}

	return d, nil
}

// AddProof attaches a proof. The draft stays at the proofs step so the
// worker can keep attaching until they complete.
func (s *Store) AddProof(workerID int64, proof domain.ProofInput) (*Draft, error) {
	d, err := s.at(workerID, StepProofs)
	if err != nil {
		return nil, err
	}

	if proof.FileRef == "" {
		return nil, &domain.ValidationError{Reason: "proof file reference is required"}
	}

	d.Proofs = append(d.Proofs, proof)

	if err := s.save(d); err != nil {
		return nil, err
	}

	return d, nil
}

// Complete validates that the draft is finished and returns the
// assembled claim input. The draft must have reached the proofs step and
// carry at least one proof. The draft itself stays in place: it is only
// discarded once the claim built from it exists, so a refused submission
// loses nothing.
func (s *Store) Complete(workerID int64) (*domain.SubmitClaimInput, error) {
	d, err := s.at(workerID, StepProofs)
	if err != nil {
		return nil, err
	}

	if len(d.Proofs) == 0 {
		return nil, &domain.ValidationError{Reason: "at least one proof is required"}
	}

	return &domain.SubmitClaimInput{
		WalletAddress: d.WalletAddress,
		WalletType:    d.WalletType,
		Direction:     d.Direction,
		ReferenceLink: d.ReferenceLink,
		Proofs:        d.Proofs,
	}, nil
}

func (s *Store) Cancel(workerID int64) error {
	return s.cache.Delete(draftKey(workerID))
}

func (s *Store) at(workerID int64, step string) (*Draft, error) {
	d, err := s.Get(workerID)
	if err != nil {
		return nil, err
	}

	if d.Step != step {
		return nil, &domain.DomainError{Reason: "draft is not at the " + step + " step", Status: d.Step}
	}

	return d, nil
}

func (s *Store) save(d *Draft) error {
	encoded, err := json.Marshal(d)
	if err != nil {
		return err
	}

	return s.cache.Set(draftKey(d.WorkerID), string(encoded), draftTTL)
}
