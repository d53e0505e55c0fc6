package handler

import (
	"fmt"
	"log"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/rudovey/workpay/internal/context"
	"github.com/rudovey/workpay/internal/domain"
	"github.com/rudovey/workpay/internal/models"
	"github.com/rudovey/workpay/internal/repository"
	"github.com/rudovey/workpay/internal/request"
	"github.com/rudovey/workpay/internal/response"
)

const (
	ClaimActivityLogSubmittedDescription = "Withdrawal claim submitted"
	ClaimActivityLogPricedDescription    = "Withdrawal claim priced"
	ClaimActivityLogRejectedDescription  = "Withdrawal claim rejected"
	ClaimActivityLogPaidDescription      = "Withdrawal claim paid"
)

func (h *RouteHandler) HandleClaimSubmit(w http.ResponseWriter, r *http.Request) {
	worker := context.ContextGetAuthenticatedWorker(r)

	var input struct {
		WalletAddress string              `json:"wallet_address"`
		WalletType    string              `json:"wallet_type"`
		Direction     string              `json:"direction"`
		ReferenceLink string              `json:"reference_link"`
		Proofs        []domain.ProofInput `json:"proofs"`
	}

	err := request.DecodeJSON(w, r, &input)
	if err != nil {
		h.ErrHandler.BadRequest(w, r, err)
		return
	}

	claim, err := h.Claims.Submit(worker.ID, &domain.SubmitClaimInput{
		WalletAddress: input.WalletAddress,
		WalletType:    input.WalletType,
		Direction:     input.Direction,
		ReferenceLink: input.ReferenceLink,
		Proofs:        input.Proofs,
	})
	if err != nil {
		h.ErrHandler.DomainFailure(w, r, err)
		return
	}

	h.logClaimActivity(r, worker.ID, claim.ID, ClaimActivityLogSubmittedDescription)

	message := "Claim submitted successfully"

	err = response.JSONCreatedResponse(w, claim, message)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *RouteHandler) HandleClaimList(w http.ResponseWriter, r *http.Request) {
	worker := context.ContextGetAuthenticatedWorker(r)

	claims, err := h.DB.Withdrawal().GetAllByWorkerID(worker.ID)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	message := "Claims retrieved successfully"

	err = response.JSONOkResponse(w, claims, message, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

// HandleClaimDetail returns one claim with its proofs. Workers can only
// see their own claims; admins can see any.
func (h *RouteHandler) HandleClaimDetail(w http.ResponseWriter, r *http.Request) {
	worker := context.ContextGetAuthenticatedWorker(r)

	claimID, err := idPathValue(r)
	if err != nil {
		h.ErrHandler.BadRequest(w, r, err)
		return
	}

	claim, found, err := h.DB.Withdrawal().GetOne(claimID)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}
	if !found {
		h.ErrHandler.NotFound(w, r)
		return
	}

	if claim.WorkerID != worker.ID {
		isAdmin, err := h.DB.Admin().IsAdmin(worker.ID)
		if err != nil {
			h.ErrHandler.ServerError(w, r, err)
			return
		}
		if !isAdmin {
			h.ErrHandler.NotFound(w, r)
			return
		}
	}

	proofs, err := h.DB.Proof().GetAllByWithdrawalID(claimID)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	data := map[string]any{
		"claim":  claim,
		"proofs": proofs,
	}

	message := "Claim retrieved successfully"

	err = response.JSONOkResponse(w, data, message, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

// HandleMyProfits reports the worker's aggregates over paid claims plus
// their current leaderboard rank and favourite direction.
func (h *RouteHandler) HandleMyProfits(w http.ResponseWriter, r *http.Request) {
	worker := context.ContextGetAuthenticatedWorker(r)

	stats, err := h.DB.Withdrawal().ProfitStats(worker.ID)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	direction, _, err := h.DB.Withdrawal().MostCommonDirection(worker.ID)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	rank, err := h.Leaderboard.Rank(worker.ID)
	if err != nil {
		h.ErrHandler.DomainFailure(w, r, err)
		return
	}

	data := map[string]any{
		"total_earned":          worker.TotalEarned,
		"paid_claims":           worker.PaidClaims,
		"percent":               worker.Percent,
		"rank":                  rank,
		"most_common_direction": direction,
		"stats":                 stats,
		"average_amount":        stats.Average(),
	}

	message := "Profit stats retrieved successfully"

	err = response.JSONOkResponse(w, data, message, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

// Admin surface below.

func (h *RouteHandler) HandlePendingClaims(w http.ResponseWriter, r *http.Request) {
	claims, err := h.DB.Withdrawal().Pending()
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	message := "Pending claims retrieved successfully"

	err = response.JSONOkResponse(w, claims, message, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *RouteHandler) HandleClaimPrice(w http.ResponseWriter, r *http.Request) {
	admin := context.ContextGetAuthenticatedWorker(r)

	claimID, err := idPathValue(r)
	if err != nil {
		h.ErrHandler.BadRequest(w, r, err)
		return
	}

	var input struct {
		Amount decimal.Decimal `json:"amount"`
	}

	err = request.DecodeJSON(w, r, &input)
	if err != nil {
		h.ErrHandler.BadRequest(w, r, err)
		return
	}

	claim, err := h.Claims.Price(claimID, input.Amount)
	if err != nil {
		h.ErrHandler.DomainFailure(w, r, err)
		return
	}

	h.logClaimActivity(r, admin.ID, claim.ID, ClaimActivityLogPricedDescription)

	message := "Claim priced successfully"

	err = response.JSONOkResponse(w, claim, message, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *RouteHandler) HandleClaimReject(w http.ResponseWriter, r *http.Request) {
	admin := context.ContextGetAuthenticatedWorker(r)

	claimID, err := idPathValue(r)
	if err != nil {
		h.ErrHandler.BadRequest(w, r, err)
		return
	}

	var input struct {
		Reason string `json:"reason"`
	}

	err = request.DecodeJSON(w, r, &input)
	if err != nil {
		h.ErrHandler.BadRequest(w, r, err)
		return
	}

	claim, err := h.Claims.Reject(claimID, input.Reason)
	if err != nil {
		h.ErrHandler.DomainFailure(w, r, err)
		return
	}

	h.logClaimActivity(r, admin.ID, claim.ID, ClaimActivityLogRejectedDescription)

	message := "Claim rejected"

	err = response.JSONOkResponse(w, claim, message, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *RouteHandler) HandleClaimConfirmPayment(w http.ResponseWriter, r *http.Request) {
	admin := context.ContextGetAuthenticatedWorker(r)

	claimID, err := idPathValue(r)
	if err != nil {
		h.ErrHandler.BadRequest(w, r, err)
		return
	}

	claim, err := h.Claims.ConfirmPayment(claimID)
	if err != nil {
		h.ErrHandler.DomainFailure(w, r, err)
		return
	}

	h.logClaimActivity(r, admin.ID, claim.ID, ClaimActivityLogPaidDescription)

	message := "Payment confirmed"

	err = response.JSONOkResponse(w, claim, message, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *RouteHandler) logClaimActivity(r *http.Request, actorID, claimID int64, description string) {
	h.Helper.BackgroundTask(r, func() error {
		_, err := h.DB.Activity().Insert(&models.ActivityLog{
			WorkerID:    actorID,
			Entity:      repository.ActivityLogWithdrawalEntity,
			EntityID:    claimID,
			Description: description,
		})

		if err != nil {
			log.Printf("Error logging claim action: %v", err)
			return fmt.Errorf("log claim activity: %w", err)
		}

		return nil
	})
}
