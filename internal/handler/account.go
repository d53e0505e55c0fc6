package handler

import (
	"net/http"

	"github.com/rudovey/workpay/internal/context"
	"github.com/rudovey/workpay/internal/request"
	"github.com/rudovey/workpay/internal/response"
)

func (h *RouteHandler) HandleMyAccount(w http.ResponseWriter, r *http.Request) {
	worker := context.ContextGetAuthenticatedWorker(r)

	data := map[string]any{
		"id":           worker.ID,
		"name":         worker.DisplayName(),
		"email":        worker.Email,
		"percent":      worker.Percent,
		"total_earned": worker.TotalEarned,
		"paid_claims":  worker.PaidClaims,
		"is_mentor":    worker.IsMentor,
		"mentored":     worker.MentorID.Valid,
	}

	message := "Account retrieved successfully"

	err := response.JSONOkResponse(w, data, message, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

// HandleLinkChat stores the worker's chat id so the notification worker
// can reach them. Workers without a linked chat simply miss out on
// notifications.
func (h *RouteHandler) HandleLinkChat(w http.ResponseWriter, r *http.Request) {
	worker := context.ContextGetAuthenticatedWorker(r)

	var input struct {
		ChatID int64 `json:"chat_id"`
	}

	err := request.DecodeJSON(w, r, &input)
	if err != nil {
		h.ErrHandler.BadRequest(w, r, err)
		return
	}

	if input.ChatID == 0 {
		h.ErrHandler.FailedValidation(w, r, []string{"Chat id is required"})
		return
	}

	err = h.DB.Worker().LinkChat(worker.ID, input.ChatID)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	message := "Chat linked successfully"

	err = response.JSONOkResponse(w, nil, message, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}
