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
	MentorActivityLogBoundDescription   = "Mentor bound"
	MentorActivityLogUnboundDescription = "Mentor unbound"
)

func (h *RouteHandler) HandleMentorList(w http.ResponseWriter, r *http.Request) {
	mentors, err := h.DB.Worker().Mentors()
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	message := "Mentors retrieved successfully"

	err = response.JSONOkResponse(w, mentors, message, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

// HandleMentorBind attaches the authenticated worker to a mentor. The
// worker's percent drops to the mentored rate until the bond dissolves.
func (h *RouteHandler) HandleMentorBind(w http.ResponseWriter, r *http.Request) {
	worker := context.ContextGetAuthenticatedWorker(r)

	var input struct {
		MentorID int64 `json:"mentor_id"`
	}

	err := request.DecodeJSON(w, r, &input)
	if err != nil {
		h.ErrHandler.BadRequest(w, r, err)
		return
	}

	err = h.Mentors.Bind(worker.ID, input.MentorID)
	if err != nil {
		h.ErrHandler.DomainFailure(w, r, err)
		return
	}

	h.logMentorActivity(r, worker.ID, input.MentorID, MentorActivityLogBoundDescription)

	message := "Mentor bound successfully"

	err = response.JSONOkResponse(w, nil, message, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

// HandleMentorUnbind dissolves a mentorship. The mentee themselves or
// their mentor can call it; the lock after enough paid claims refuses
// both.
func (h *RouteHandler) HandleMentorUnbind(w http.ResponseWriter, r *http.Request) {
	worker := context.ContextGetAuthenticatedWorker(r)

	var input struct {
		MenteeID int64 `json:"mentee_id"`
	}

	err := request.DecodeJSON(w, r, &input)
	if err != nil {
		h.ErrHandler.BadRequest(w, r, err)
		return
	}

	menteeID := input.MenteeID
	if menteeID == 0 {
		menteeID = worker.ID
	}

	err = h.Mentors.Unbind(worker.ID, menteeID)
	if err != nil {
		h.ErrHandler.DomainFailure(w, r, err)
		return
	}

	h.logMentorActivity(r, worker.ID, menteeID, MentorActivityLogUnboundDescription)

	message := "Mentor unbound successfully"

	err = response.JSONOkResponse(w, nil, message, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

// HandleMyMentees lists the authenticated mentor's mentees together
// with the aggregate over their earnings.
func (h *RouteHandler) HandleMyMentees(w http.ResponseWriter, r *http.Request) {
	worker := context.ContextGetAuthenticatedWorker(r)

	mentees, err := h.Mentors.Mentees(worker.ID)
	if err != nil {
		h.ErrHandler.DomainFailure(w, r, err)
		return
	}

	aggregate, err := h.Mentors.Aggregate(worker.ID)
	if err != nil {
		h.ErrHandler.DomainFailure(w, r, err)
		return
	}

	data := map[string]any{
		"mentees":   mentees,
		"aggregate": aggregate,
	}

	message := "Mentees retrieved successfully"

	err = response.JSONOkResponse(w, data, message, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *RouteHandler) logMentorActivity(r *http.Request, actorID, subjectID int64, description string) {
	h.Helper.BackgroundTask(r, func() error {
		_, err := h.DB.Activity().Insert(&models.ActivityLog{
			WorkerID:    actorID,
			Entity:      repository.ActivityLogMentorEntity,
			EntityID:    subjectID,
			Description: description,
		})

		if err != nil {
			log.Printf("Error logging mentor action: %v", err)
			return err
		}

		return nil
	})
}
