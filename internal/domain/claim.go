package domain

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"

	"github.com/rudovey/workpay/internal/models"
	"github.com/rudovey/workpay/internal/repository"
	"github.com/rudovey/workpay/internal/validator"
)

// ClaimService owns the withdrawal claim lifecycle:
//
//	pending (amount = 0) -> pending (amount > 0) -> paid | rejected
//
// Workers create claims and attach proofs; every transition after that is
// admin-triggered. A claim carries the worker's percent as it was at
// submission time; later percent changes never touch existing claims.
type ClaimService struct {
	DB     repository.Database
	Events EventPublisher
}

func NewClaimService(db repository.Database, events EventPublisher) *ClaimService {
	return &ClaimService{
		DB:     db,
		Events: events,
	}
}

type ProofInput struct {
	FileRef string `json:"file_ref"`
	Kind    string `json:"kind"`
}

type SubmitClaimInput struct {
	WalletAddress string
	WalletType    string
	Direction     string
	ReferenceLink string
	Proofs        []ProofInput
}

// ClaimEvent is the payload published on claim transitions.
type ClaimEvent struct {
	ClaimID      int64           `json:"claim_id"`
	WorkerID     int64           `json:"worker_id"`
	Direction    string          `json:"direction"`
	Amount       decimal.Decimal `json:"amount"`
	WorkerShare  decimal.Decimal `json:"worker_share"`
	AdminShare   decimal.Decimal `json:"admin_share"`
	Percent      int             `json:"percent"`
	RejectReason string          `json:"reject_reason,omitempty"`
}

func claimEvent(wd *models.Withdrawal) *ClaimEvent {
	return &ClaimEvent{
		ClaimID:      wd.ID,
		WorkerID:     wd.WorkerID,
		Direction:    wd.Direction,
		Amount:       wd.Amount,
		WorkerShare:  wd.WorkerShare,
		AdminShare:   wd.AdminShare,
		Percent:      wd.Percent,
		RejectReason: wd.RejectReason.String,
	}
}

// ComputeShares splits a priced amount by the claim's frozen percent.
// The worker share is rounded to two decimal places (half away from
// zero); the admin share is the exact remainder, so the two always sum
// back to the amount.
func ComputeShares(amount decimal.Decimal, percent int) (workerShare, adminShare decimal.Decimal) {
	workerShare = amount.Mul(decimal.NewFromInt(int64(percent))).Div(decimal.NewFromInt(100)).Round(2)
	adminShare = amount.Sub(workerShare)
	return workerShare, adminShare
}

// ValidateWalletAddress enforces the payout address format: bounded
// length and a restricted charset.
func ValidateWalletAddress(address string) error {
	if len(address) < WalletAddressMinLength || len(address) > WalletAddressMaxLength {
		return &ValidationError{Reason: "wallet address must be between 10 and 100 characters"}
	}

	if !validator.RgxWalletAddress.MatchString(address) {
		return &ValidationError{Reason: "wallet address may only contain letters, digits, underscore, dash and dot"}
	}

	return nil
}

var proofKinds = []string{
	repository.ProofKindImage,
	repository.ProofKindVideo,
	repository.ProofKindDocument,
	repository.ProofKindText,
}

// Submit creates a claim in the unpriced pending state with the worker's
// current percent frozen onto it, together with its proofs.
func (s *ClaimService) Submit(workerID int64, input *SubmitClaimInput) (*models.Withdrawal, error) {
	worker, found, err := s.DB.Worker().GetOne(workerID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, &NotFoundError{Resource: "worker"}
	}

	if worker.IsBlocked {
		return nil, &DomainError{Reason: "account is blocked"}
	}

	if len(input.Proofs) == 0 {
		return nil, &ValidationError{Reason: "at least one proof is required"}
	}

	for _, proof := range input.Proofs {
		if !slices.Contains(proofKinds, proof.Kind) {
			return nil, &ValidationError{Reason: "unknown proof kind: " + proof.Kind}
		}
		if proof.FileRef == "" {
			return nil, &ValidationError{Reason: "proof file reference is required"}
		}
	}

	if err := ValidateWalletAddress(input.WalletAddress); err != nil {
		return nil, err
	}

	if input.Direction == "" {
		return nil, &ValidationError{Reason: "direction is required"}
	}

	if input.ReferenceLink == "" {
		return nil, &ValidationError{Reason: "reference link is required"}
	}

	walletType := input.WalletType
	if walletType == "" {
		walletType = "TON Wallet"
	}

	withdrawal := &models.Withdrawal{
		WorkerID:      workerID,
		WalletAddress: input.WalletAddress,
		WalletType:    walletType,
		Direction:     input.Direction,
		ReferenceLink: input.ReferenceLink,
		Percent:       worker.Percent,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = s.DB.WithTx(ctx, func(tx *sqlx.Tx) error {
		id, err := s.DB.Withdrawal().Insert(withdrawal, tx)
		if err != nil {
			return err
		}
		withdrawal.ID = id

		for _, proof := range input.Proofs {
			_, err := s.DB.Proof().Insert(&models.Proof{
				WithdrawalID: id,
				FileRef:      proof.FileRef,
				Kind:         proof.Kind,
			}, tx)
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	withdrawal.Status = repository.WithdrawalStatusPending
	withdrawal.Amount = decimal.Zero
	withdrawal.WorkerShare = decimal.Zero
	withdrawal.AdminShare = decimal.Zero

	s.Events.Publish(EventClaimSubmitted, claimEvent(withdrawal))

	return withdrawal, nil
}

// Price sets (or re-sets) the claim's value. Allowed any number of times
// while the claim is still pending; each call recomputes both shares
// from the frozen percent.
func (s *ClaimService) Price(claimID int64, amount decimal.Decimal) (*models.Withdrawal, error) {
	withdrawal, found, err := s.DB.Withdrawal().GetOne(claimID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, &NotFoundError{Resource: "claim"}
	}

	if withdrawal.Status != repository.WithdrawalStatusPending {
		return nil, &DomainError{Reason: "claim already resolved", Status: withdrawal.Status}
	}

	if !amount.IsPositive() {
		return nil, &ValidationError{Reason: "amount must be greater than zero"}
	}

	if amount.GreaterThan(MaxWithdrawal) {
		return nil, &ValidationError{Reason: "amount exceeds the withdrawal ceiling of " + MaxWithdrawal.StringFixed(2)}
	}

	workerShare, adminShare := ComputeShares(amount, withdrawal.Percent)

	err = s.DB.Withdrawal().SetAmount(claimID, amount, workerShare, adminShare, nil)
	if err != nil {
		return nil, err
	}

	withdrawal.Amount = amount
	withdrawal.WorkerShare = workerShare
	withdrawal.AdminShare = adminShare

	s.Events.Publish(EventClaimPriced, claimEvent(withdrawal))

	return withdrawal, nil
}

// Reject closes the claim from any non-terminal state. Terminal; nothing
// mutates the claim afterwards.
func (s *ClaimService) Reject(claimID int64, reason string) (*models.Withdrawal, error) {
	if reason == "" {
		return nil, &ValidationError{Reason: "rejection reason is required"}
	}

	withdrawal, found, err := s.DB.Withdrawal().GetOne(claimID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, &NotFoundError{Resource: "claim"}
	}

	if withdrawal.Status != repository.WithdrawalStatusPending {
		return nil, &DomainError{Reason: "claim already resolved", Status: withdrawal.Status}
	}

	rejectReason := sql.NullString{String: reason, Valid: true}

	err = s.DB.Withdrawal().SetStatus(claimID, repository.WithdrawalStatusRejected, rejectReason, nil)
	if err != nil {
		return nil, err
	}

	withdrawal.Status = repository.WithdrawalStatusRejected
	withdrawal.RejectReason = rejectReason

	s.Events.Publish(EventClaimRejected, claimEvent(withdrawal))

	return withdrawal, nil
}

// ConfirmPayment marks a priced claim as paid. In one transaction the
// claim flips to paid, the worker's lifetime earnings grow by exactly
// the worker share, the paid-claim counter goes up by one and the team
// rollup absorbs the full amount. The event publish happens after the
// commit; a failed publish never reverts any of it.
func (s *ClaimService) ConfirmPayment(claimID int64) (*models.Withdrawal, error) {
	withdrawal, found, err := s.DB.Withdrawal().GetOne(claimID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, &NotFoundError{Resource: "claim"}
	}

	if withdrawal.Status != repository.WithdrawalStatusPending {
		return nil, &DomainError{Reason: "claim already resolved", Status: withdrawal.Status}
	}

	if !withdrawal.IsPriced() {
		return nil, &DomainError{Reason: "claim has not been priced", Status: withdrawal.Status}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = s.DB.WithTx(ctx, func(tx *sqlx.Tx) error {
		err := s.DB.Withdrawal().SetStatus(claimID, repository.WithdrawalStatusPaid, sql.NullString{}, tx)
		if err != nil {
			return err
		}

		err = s.DB.Worker().CreditEarnings(withdrawal.WorkerID, withdrawal.WorkerShare, tx)
		if err != nil {
			return err
		}

		return s.DB.Stats().RecordPayout(withdrawal.Amount, withdrawal.CreatedAt, tx)
	})
	if err != nil {
		return nil, err
	}

	withdrawal.Status = repository.WithdrawalStatusPaid

	s.Events.Publish(EventClaimPaid, claimEvent(withdrawal))

	return withdrawal, nil
}
