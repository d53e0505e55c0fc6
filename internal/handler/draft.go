package handler

import (
	"net/http"

	"github.com/rudovey/workpay/internal/context"
	"github.com/rudovey/workpay/internal/domain"
	"github.com/rudovey/workpay/internal/request"
	"github.com/rudovey/workpay/internal/response"
)

// The draft endpoints drive the step-by-step claim wizard. Each call
// advances the draft exactly one step; completing hands the assembled
// input to the claim service, so a completed draft goes through exactly
// the same validation as a direct submission.

func (h *RouteHandler) HandleDraftStart(w http.ResponseWriter, r *http.Request) {
	worker := context.ContextGetAuthenticatedWorker(r)

	d, err := h.Drafts.Start(worker.ID)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	message := "Draft started"

	err = response.JSONCreatedResponse(w, d, message)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *RouteHandler) HandleDraftGet(w http.ResponseWriter, r *http.Request) {
	worker := context.ContextGetAuthenticatedWorker(r)

	d, err := h.Drafts.Get(worker.ID)
	if err != nil {
		h.ErrHandler.DomainFailure(w, r, err)
		return
	}

	message := "Draft retrieved successfully"

	err = response.JSONOkResponse(w, d, message, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *RouteHandler) HandleDraftWallet(w http.ResponseWriter, r *http.Request) {
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

	d, err := h.Drafts.SetWallet(worker.ID, input.Address, input.Type)
	if err != nil {
		h.ErrHandler.DomainFailure(w, r, err)
		return
	}

	message := "Wallet recorded"

	err = response.JSONOkResponse(w, d, message, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *RouteHandler) HandleDraftDirection(w http.ResponseWriter, r *http.Request) {
	worker := context.ContextGetAuthenticatedWorker(r)

	var input struct {
		Direction string `json:"direction"`
	}

	err := request.DecodeJSON(w, r, &input)
	if err != nil {
		h.ErrHandler.BadRequest(w, r, err)
		return
	}

	d, err := h.Drafts.SetDirection(worker.ID, input.Direction)
	if err != nil {
		h.ErrHandler.DomainFailure(w, r, err)
		return
	}

	message := "Direction recorded"

	err = response.JSONOkResponse(w, d, message, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *RouteHandler) HandleDraftLink(w http.ResponseWriter, r *http.Request) {
	worker := context.ContextGetAuthenticatedWorker(r)

	var input struct {
		ReferenceLink string `json:"reference_link"`
	}

	err := request.DecodeJSON(w, r, &input)
	if err != nil {
		h.ErrHandler.BadRequest(w, r, err)
		return
	}

	d, err := h.Drafts.SetLink(worker.ID, input.ReferenceLink)
	if err != nil {
		h.ErrHandler.DomainFailure(w, r, err)
		return
	}

	message := "Reference link recorded"

	err = response.JSONOkResponse(w, d, message, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *RouteHandler) HandleDraftProof(w http.ResponseWriter, r *http.Request) {
	worker := context.ContextGetAuthenticatedWorker(r)

	var input struct {
		FileRef string `json:"file_ref"`
		Kind    string `json:"kind"`
	}

	err := request.DecodeJSON(w, r, &input)
	if err != nil {
		h.ErrHandler.BadRequest(w, r, err)
		return
	}

	d, err := h.Drafts.AddProof(worker.ID, domain.ProofInput{
		FileRef: input.FileRef,
		Kind:    input.Kind,
	})
	if err != nil {
		h.ErrHandler.DomainFailure(w, r, err)
		return
	}

	message := "Proof attached"

	err = response.JSONOkResponse(w, d, message, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *RouteHandler) HandleDraftComplete(w http.ResponseWriter, r *http.Request) {
	worker := context.ContextGetAuthenticatedWorker(r)

	input, err := h.Drafts.Complete(worker.ID)
	if err != nil {
		h.ErrHandler.DomainFailure(w, r, err)
		return
	}

	claim, err := h.Claims.Submit(worker.ID, input)
	if err != nil {
		// the draft stays put, so nothing is lost and the worker can retry
		h.ErrHandler.DomainFailure(w, r, err)
		return
	}

	// only a committed claim consumes the draft
	if err := h.Drafts.Cancel(worker.ID); err != nil {
		h.ErrHandler.ReportServerError(r, err)
	}

	h.logClaimActivity(r, worker.ID, claim.ID, ClaimActivityLogSubmittedDescription)

	message := "Claim submitted successfully"

	err = response.JSONCreatedResponse(w, claim, message)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *RouteHandler) HandleDraftCancel(w http.ResponseWriter, r *http.Request) {
	worker := context.ContextGetAuthenticatedWorker(r)

	err := h.Drafts.Cancel(worker.ID)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	message := "Draft cancelled"

	err = response.JSONOkResponse(w, nil, message, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}
