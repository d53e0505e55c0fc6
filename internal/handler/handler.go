package handler

import (
	"net/http"
	"strconv"

	"github.com/rudovey/workpay/internal/config"
	"github.com/rudovey/workpay/internal/domain"
	"github.com/rudovey/workpay/internal/draft"
	"github.com/rudovey/workpay/internal/errHandler"
	"github.com/rudovey/workpay/internal/file"
	"github.com/rudovey/workpay/internal/helper"
	"github.com/rudovey/workpay/internal/repository"
	"github.com/rudovey/workpay/internal/smtp"
)

type RouteHandler struct {
	DB          repository.Database
	ErrHandler  *errHandler.ErrorRepository
	Helper      *helper.HelperRepository
	Mailer      *smtp.Mailer
	Config      *config.Config
	Uploader    *file.FileUploader
	Claims      *domain.ClaimService
	Mentors     *domain.MentorService
	Wallets     *domain.WalletService
	Leaderboard *domain.LeaderboardService
	Drafts      *draft.Store
}

func NewRouteHandler(handler *RouteHandler) *RouteHandler {
	return &RouteHandler{
		DB:          handler.DB,
		ErrHandler:  handler.ErrHandler,
		Helper:      handler.Helper,
		Mailer:      handler.Mailer,
		Config:      handler.Config,
		Uploader:    handler.Uploader,
		Claims:      handler.Claims,
		Mentors:     handler.Mentors,
		Wallets:     handler.Wallets,
		Leaderboard: handler.Leaderboard,
		Drafts:      handler.Drafts,
	}
}

// idPathValue extracts the {id} segment of a route as an int64.
func idPathValue(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

// limitQueryValue parses a ?limit= parameter, falling back to a default
// when absent or unusable.
func limitQueryValue(r *http.Request, fallback int) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return fallback
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return fallback
	}

	return limit
}
