package handler

import (
	"net/http"

	"github.com/rudovey/workpay/internal/context"
	"github.com/rudovey/workpay/internal/response"
)

const defaultTopLimit = 10

// HandleLeaderboardTop returns the best-earning eligible workers. The
// entries are trimmed to public fields; blocked and hidden workers never
// appear here.
func (h *RouteHandler) HandleLeaderboardTop(w http.ResponseWriter, r *http.Request) {
	limit := limitQueryValue(r, defaultTopLimit)

	workers, err := h.Leaderboard.Top(limit)
	if err != nil {
		h.ErrHandler.DomainFailure(w, r, err)
		return
	}

	type entry struct {
		Rank        int    `json:"rank"`
		Name        string `json:"name"`
		TotalEarned string `json:"total_earned"`
		PaidClaims  int    `json:"paid_claims"`
	}

	entries := make([]entry, 0, len(workers))
	for i, worker := range workers {
		entries = append(entries, entry{
			Rank:        i + 1,
			Name:        worker.DisplayName(),
			TotalEarned: worker.TotalEarned.StringFixed(2),
			PaidClaims:  worker.PaidClaims,
		})
	}

	message := "Leaderboard retrieved successfully"

	err = response.JSONOkResponse(w, entries, message, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *RouteHandler) HandleMyRank(w http.ResponseWriter, r *http.Request) {
	worker := context.ContextGetAuthenticatedWorker(r)

	rank, err := h.Leaderboard.Rank(worker.ID)
	if err != nil {
		h.ErrHandler.DomainFailure(w, r, err)
		return
	}

	data := map[string]any{
		"rank":         rank,
		"total_earned": worker.TotalEarned,
	}

	message := "Rank retrieved successfully"

	err = response.JSONOkResponse(w, data, message, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

// HandleHideFromTop toggles the worker's visibility on the public
// leaderboard. Hiding never changes their own rank.
func (h *RouteHandler) HandleHideFromTop(w http.ResponseWriter, r *http.Request) {
	worker := context.ContextGetAuthenticatedWorker(r)

	hidden, err := h.DB.Worker().ToggleHideFromTop(worker.ID)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	data := map[string]bool{"hidden": hidden}

	message := "Leaderboard visibility updated"

	err = response.JSONOkResponse(w, data, message, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

// HandleTeamStats exposes the single-row team rollup, together with the
// live active-worker count and favourite direction. The stored figures
// only move on payment confirmation, so the live ones can run ahead.
func (h *RouteHandler) HandleTeamStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.DB.Stats().Get()
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	activeWorkers, err := h.DB.Worker().ActiveCount()
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	direction, _, err := h.DB.Withdrawal().GlobalMostCommonDirection(nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	data := map[string]any{
		"rollup":                stats,
		"active_workers":        activeWorkers,
		"most_common_direction": direction,
	}

	message := "Team stats retrieved successfully"

	err = response.JSONOkResponse(w, data, message, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}
