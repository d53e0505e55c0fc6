package handler

import (
	"database/sql"
	"log"
	"net/http"

	"github.com/rudovey/workpay/internal/context"
	"github.com/rudovey/workpay/internal/models"
	"github.com/rudovey/workpay/internal/repository"
	"github.com/rudovey/workpay/internal/request"
	"github.com/rudovey/workpay/internal/response"
	"github.com/rudovey/workpay/internal/validator"
)

const (
	WorkerActivityLogBlockedDescription      = "Worker blocked"
	WorkerActivityLogUnblockedDescription    = "Worker unblocked"
	WorkerActivityLogPercentSetDescription   = "Worker percent overridden"
	WorkerActivityLogMentorRoleDescription   = "Mentor role updated"
	WorkerActivityLogAdminAddedDescription   = "Admin added"
	WorkerActivityLogAdminRemovedDescription = "Admin removed"
)

func (h *RouteHandler) HandleAdminList(w http.ResponseWriter, r *http.Request) {
	admins, err := h.DB.Admin().GetAll()
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	message := "Admins retrieved successfully"

	err = response.JSONOkResponse(w, admins, message, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *RouteHandler) HandleAdminAdd(w http.ResponseWriter, r *http.Request) {
	actor := context.ContextGetAuthenticatedWorker(r)

	var input struct {
		WorkerID int64 `json:"worker_id"`
	}

	err := request.DecodeJSON(w, r, &input)
	if err != nil {
		h.ErrHandler.BadRequest(w, r, err)
		return
	}

	worker, found, err := h.DB.Worker().GetOne(input.WorkerID)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}
	if !found {
		h.ErrHandler.NotFound(w, r)
		return
	}

	err = h.DB.Admin().Insert(&models.Admin{
		WorkerID:  worker.ID,
		Username:  worker.Username,
		FirstName: worker.FirstName,
	})
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	h.logWorkerActivity(r, actor.ID, worker.ID, WorkerActivityLogAdminAddedDescription)

	message := "Admin added successfully"

	err = response.JSONCreatedResponse(w, nil, message)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

// HandleAdminRemove deletes an admin registration. The root admin row
// is protected at the database level; trying to remove it reads as not
// found.
func (h *RouteHandler) HandleAdminRemove(w http.ResponseWriter, r *http.Request) {
	actor := context.ContextGetAuthenticatedWorker(r)

	workerID, err := idPathValue(r)
	if err != nil {
		h.ErrHandler.BadRequest(w, r, err)
		return
	}

	removed, err := h.DB.Admin().Delete(workerID)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}
	if !removed {
		h.ErrHandler.NotFound(w, r)
		return
	}

	h.logWorkerActivity(r, actor.ID, workerID, WorkerActivityLogAdminRemovedDescription)

	message := "Admin removed"

	err = response.JSONOkResponse(w, nil, message, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

// HandleWorkerPercent overrides a worker's percent directly. Existing
// claims keep the percent they were submitted with.
func (h *RouteHandler) HandleWorkerPercent(w http.ResponseWriter, r *http.Request) {
	actor := context.ContextGetAuthenticatedWorker(r)

	workerID, err := idPathValue(r)
	if err != nil {
		h.ErrHandler.BadRequest(w, r, err)
		return
	}

	var input struct {
		Percent   int                 `json:"percent"`
		Validator validator.Validator `json:"-"`
	}

	err = request.DecodeJSON(w, r, &input)
	if err != nil {
		h.ErrHandler.BadRequest(w, r, err)
		return
	}

	input.Validator.Check(validator.Between(input.Percent, 1, 100), "Percent must be between 1 and 100")

	if input.Validator.HasErrors() {
		h.ErrHandler.FailedValidation(w, r, input.Validator.Errors)
		return
	}

	_, found, err := h.DB.Worker().GetOne(workerID)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}
	if !found {
		h.ErrHandler.NotFound(w, r)
		return
	}

	err = h.DB.Worker().UpdatePercent(workerID, input.Percent, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	h.logWorkerActivity(r, actor.ID, workerID, WorkerActivityLogPercentSetDescription)

	message := "Percent updated"

	err = response.JSONOkResponse(w, nil, message, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *RouteHandler) HandleWorkerBlock(w http.ResponseWriter, r *http.Request) {
	h.setWorkerBlocked(w, r, true, WorkerActivityLogBlockedDescription)
}

func (h *RouteHandler) HandleWorkerUnblock(w http.ResponseWriter, r *http.Request) {
	h.setWorkerBlocked(w, r, false, WorkerActivityLogUnblockedDescription)
}

func (h *RouteHandler) setWorkerBlocked(w http.ResponseWriter, r *http.Request, blocked bool, description string) {
	actor := context.ContextGetAuthenticatedWorker(r)

	workerID, err := idPathValue(r)
	if err != nil {
		h.ErrHandler.BadRequest(w, r, err)
		return
	}

	_, found, err := h.DB.Worker().GetOne(workerID)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}
	if !found {
		h.ErrHandler.NotFound(w, r)
		return
	}

	err = h.DB.Worker().SetBlocked(workerID, blocked)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	h.logWorkerActivity(r, actor.ID, workerID, description)

	message := "Worker updated"

	err = response.JSONOkResponse(w, nil, message, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

// HandleMentorRole designates or removes a worker as mentor. The note
// is the short description shown on the mentor list.
func (h *RouteHandler) HandleMentorRole(w http.ResponseWriter, r *http.Request) {
	actor := context.ContextGetAuthenticatedWorker(r)

	workerID, err := idPathValue(r)
	if err != nil {
		h.ErrHandler.BadRequest(w, r, err)
		return
	}

	var input struct {
		IsMentor bool   `json:"is_mentor"`
		Note     string `json:"note"`
	}

	err = request.DecodeJSON(w, r, &input)
	if err != nil {
		h.ErrHandler.BadRequest(w, r, err)
		return
	}

	_, found, err := h.DB.Worker().GetOne(workerID)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}
	if !found {
		h.ErrHandler.NotFound(w, r)
		return
	}

	var note sql.NullString
	if input.Note != "" {
		note = sql.NullString{String: input.Note, Valid: true}
	}

	err = h.DB.Worker().SetMentorRole(workerID, input.IsMentor, note)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	h.logWorkerActivity(r, actor.ID, workerID, WorkerActivityLogMentorRoleDescription)

	message := "Mentor role updated"

	err = response.JSONOkResponse(w, nil, message, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *RouteHandler) logWorkerActivity(r *http.Request, actorID, subjectID int64, description string) {
	h.Helper.BackgroundTask(r, func() error {
		_, err := h.DB.Activity().Insert(&models.ActivityLog{
			WorkerID:    actorID,
			Entity:      repository.ActivityLogWorkerEntity,
			EntityID:    subjectID,
			Description: description,
		})

		if err != nil {
			log.Printf("Error logging admin action: %v", err)
			return err
		}

		return nil
	})
}
