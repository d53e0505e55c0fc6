package app

import (
	"net/http"

	"github.com/rudovey/workpay/internal/handler"
	"github.com/rudovey/workpay/internal/middleware"
)

func (app *Application) routes() http.Handler {
	mux := http.NewServeMux()

	middlewareRepo := middleware.New(app.ErrorHandler, app.Logger, app.DB.Worker(), app.DB.Admin(), &app.Config)

	routeHandler := handler.NewRouteHandler(&handler.RouteHandler{
		DB:          app.DB,
		ErrHandler:  app.ErrorHandler,
		Helper:      app.Helper,
		Mailer:      app.Mailer,
		Config:      &app.Config,
		Uploader:    app.FileUploader,
		Claims:      app.Claims,
		Mentors:     app.Mentors,
		Wallets:     app.Wallets,
		Leaderboard: app.Leaderboard,
		Drafts:      app.Drafts,
	})

	healthHandler := handler.NewHealthCheckHandler(app.ErrorHandler)

	mux.HandleFunc("GET /status", healthHandler.HandleHealthCheck)

	mux.HandleFunc("POST /auth/register", routeHandler.HandleAuthRegister)
	mux.HandleFunc("POST /auth/login", routeHandler.HandleAuthLogin)

	authed := middlewareRepo.RequireAuthenticatedWorker
	admin := func(next http.HandlerFunc) http.Handler {
		return middlewareRepo.RequireAdmin(next)
	}

	mux.Handle("GET /me", authed(http.HandlerFunc(routeHandler.HandleMyAccount)))
	mux.Handle("POST /me/chat", authed(http.HandlerFunc(routeHandler.HandleLinkChat)))
	mux.Handle("GET /me/profits", authed(http.HandlerFunc(routeHandler.HandleMyProfits)))
	mux.Handle("GET /me/rank", authed(http.HandlerFunc(routeHandler.HandleMyRank)))
	mux.Handle("POST /me/hide", authed(http.HandlerFunc(routeHandler.HandleHideFromTop)))

	mux.Handle("POST /claims", authed(http.HandlerFunc(routeHandler.HandleClaimSubmit)))
	mux.Handle("GET /claims", authed(http.HandlerFunc(routeHandler.HandleClaimList)))
	mux.Handle("GET /claims/{id}", authed(http.HandlerFunc(routeHandler.HandleClaimDetail)))

	mux.Handle("POST /uploads/proofs", authed(http.HandlerFunc(routeHandler.HandleProofUpload)))

	mux.Handle("POST /drafts", authed(http.HandlerFunc(routeHandler.HandleDraftStart)))
	mux.Handle("GET /drafts", authed(http.HandlerFunc(routeHandler.HandleDraftGet)))
	mux.Handle("POST /drafts/wallet", authed(http.HandlerFunc(routeHandler.HandleDraftWallet)))
	mux.Handle("POST /drafts/direction", authed(http.HandlerFunc(routeHandler.HandleDraftDirection)))
	mux.Handle("POST /drafts/link", authed(http.HandlerFunc(routeHandler.HandleDraftLink)))
	mux.Handle("POST /drafts/proofs", authed(http.HandlerFunc(routeHandler.HandleDraftProof)))
	mux.Handle("POST /drafts/complete", authed(http.HandlerFunc(routeHandler.HandleDraftComplete)))
	mux.Handle("DELETE /drafts", authed(http.HandlerFunc(routeHandler.HandleDraftCancel)))

	mux.Handle("POST /wallets", authed(http.HandlerFunc(routeHandler.HandleWalletAdd)))
	mux.Handle("GET /wallets", authed(http.HandlerFunc(routeHandler.HandleWalletList)))
	mux.Handle("POST /wallets/{id}/activate", authed(http.HandlerFunc(routeHandler.HandleWalletActivate)))

	mux.Handle("GET /mentors", authed(http.HandlerFunc(routeHandler.HandleMentorList)))
	mux.Handle("POST /mentors/bind", authed(http.HandlerFunc(routeHandler.HandleMentorBind)))
	mux.Handle("POST /mentors/unbind", authed(http.HandlerFunc(routeHandler.HandleMentorUnbind)))
	mux.Handle("GET /mentors/mentees", authed(http.HandlerFunc(routeHandler.HandleMyMentees)))

	mux.Handle("GET /leaderboard", authed(http.HandlerFunc(routeHandler.HandleLeaderboardTop)))
	mux.Handle("GET /stats", authed(http.HandlerFunc(routeHandler.HandleTeamStats)))

	mux.Handle("GET /admin/claims/pending", admin(routeHandler.HandlePendingClaims))
	mux.Handle("POST /admin/claims/{id}/price", admin(routeHandler.HandleClaimPrice))
	mux.Handle("POST /admin/claims/{id}/reject", admin(routeHandler.HandleClaimReject))
	mux.Handle("POST /admin/claims/{id}/pay", admin(routeHandler.HandleClaimConfirmPayment))

	mux.Handle("GET /admin/admins", admin(routeHandler.HandleAdminList))
	mux.Handle("POST /admin/admins", admin(routeHandler.HandleAdminAdd))
	mux.Handle("DELETE /admin/admins/{id}", admin(routeHandler.HandleAdminRemove))

	mux.Handle("POST /admin/workers/{id}/percent", admin(routeHandler.HandleWorkerPercent))
	mux.Handle("POST /admin/workers/{id}/block", admin(routeHandler.HandleWorkerBlock))
	mux.Handle("POST /admin/workers/{id}/unblock", admin(routeHandler.HandleWorkerUnblock))
	mux.Handle("POST /admin/workers/{id}/mentor-role", admin(routeHandler.HandleMentorRole))

	return middlewareRepo.LogAccess(middlewareRepo.RecoverPanic(middlewareRepo.Authenticate(mux)))
}
