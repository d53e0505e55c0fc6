package handler

import (
	"log"
	"net/http"

	"github.com/rudovey/workpay/internal/context"
	"github.com/rudovey/workpay/internal/models"
	"github.com/rudovey/workpay/internal/repository"
	"github.com/rudovey/workpay/internal/request"
	"github.com/rudovey/workpay/internal/response"
)

const (
	WalletActivityLogAddedDescription     = "Wallet added"
	WalletActivityLogActivatedDescription = "Wallet activated"
)

// Adding a wallet always makes it the active one; every other wallet of
// the worker gets demoted in the same transaction.
func (h *RouteHandler) HandleWalletAdd(w http.ResponseWriter, r *http.Request) {
	worker := context.ContextGetAuthenticatedWorker(r)

	var input struct {
		Address string `json:"address"`
		Type    string `json:"type"`
	}

	err := request.DecodeJSON(w, r, &input)
	if err != nil {
		h.ErrHandler.BadRequest(w, r, err)
		return
	}

	wallet, err := h.Wallets.Add(worker.ID, input.Address, input.Type)
	if err != nil {
		h.ErrHandler.DomainFailure(w, r, err)
		return
	}

	h.logWalletActivity(r, worker.ID, wallet.ID, WalletActivityLogAddedDescription)

	message := "Wallet added successfully"

	err = response.JSONCreatedResponse(w, wallet, message)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *RouteHandler) HandleWalletList(w http.ResponseWriter, r *http.Request) {
	worker := context.ContextGetAuthenticatedWorker(r)

	wallets, err := h.Wallets.List(worker.ID)
	if err != nil {
		h.ErrHandler.DomainFailure(w, r, err)
		return
	}

	message := "Wallets retrieved successfully"

	err = response.JSONOkResponse(w, wallets, message, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *RouteHandler) HandleWalletActivate(w http.ResponseWriter, r *http.Request) {
	worker := context.ContextGetAuthenticatedWorker(r)

	walletID, err := idPathValue(r)
	if err != nil {
		h.ErrHandler.BadRequest(w, r, err)
		return
	}

	err = h.Wallets.SetActive(worker.ID, walletID)
	if err != nil {
		h.ErrHandler.DomainFailure(w, r, err)
		return
	}

	h.logWalletActivity(r, worker.ID, walletID, WalletActivityLogActivatedDescription)

	message := "Wallet activated"

	err = response.JSONOkResponse(w, nil, message, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *RouteHandler) logWalletActivity(r *http.Request, workerID, walletID int64, description string) {
	h.Helper.BackgroundTask(r, func() error {
		_, err := h.DB.Activity().Insert(&models.ActivityLog{
			WorkerID:    workerID,
			Entity:      repository.ActivityLogWalletEntity,
			EntityID:    walletID,
			Description: description,
		})

		if err != nil {
			log.Printf("Error logging wallet action: %v", err)
			return err
		}

		return nil
	})
}
