package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rudovey/workpay/internal/config"
	"github.com/rudovey/workpay/internal/context"
	"github.com/rudovey/workpay/internal/errHandler"
	"github.com/rudovey/workpay/internal/repository"
	"github.com/rudovey/workpay/internal/response"

	"github.com/pascaldekloe/jwt"
	"github.com/tomasen/realip"
)

type Middleware struct {
	errHandler *errHandler.ErrorRepository
	logger     *slog.Logger
	WorkerRepo repository.WorkerRepository
	AdminRepo  repository.AdminRepository
	config     *config.Config
}

func New(errHandler *errHandler.ErrorRepository, logger *slog.Logger, workerRepo repository.WorkerRepository, adminRepo repository.AdminRepository, config *config.Config) *Middleware {
	return &Middleware{
		errHandler: errHandler,
		logger:     logger,
		WorkerRepo: workerRepo,
		AdminRepo:  adminRepo,
		config:     config,
	}
}

func (mid *Middleware) RecoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			err := recover()
			if err != nil {
				mid.errHandler.ServerError(w, r, fmt.Errorf("%s", err))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

func (mid *Middleware) LogAccess(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mw := response.NewMetricsResponseWriter(w)
		next.ServeHTTP(mw, r)

		var (
			ip     = realip.FromRequest(r)
			method = r.Method
			url    = r.URL.String()
			proto  = r.Proto
		)

		userAttrs := slog.Group("user", "ip", ip)
		requestAttrs := slog.Group("request", "method", method, "url", url, "proto", proto)
		responseAttrs := slog.Group("response", "status", mw.StatusCode, "size", mw.BytesCount)

		mid.logger.Info("access", userAttrs, requestAttrs, responseAttrs)
	})
}

func (mid *Middleware) Authenticate(next http.Handler) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Authorization")

		authorizationHeader := r.Header.Get("Authorization")

		if authorizationHeader != "" {
			headerParts := strings.Split(authorizationHeader, " ")

			if len(headerParts) == 2 && headerParts[0] == "Bearer" {
				token := headerParts[1]

				claims, err := jwt.HMACCheck([]byte(token), []byte(mid.config.Jwt.SecretKey))
				if err != nil {
					mid.errHandler.InvalidAuthenticationToken(w, r)
					return
				}

				if !claims.Valid(time.Now()) {
					mid.errHandler.InvalidAuthenticationToken(w, r)
					return
				}

				if claims.Issuer != mid.config.BaseURL {
					mid.errHandler.InvalidAuthenticationToken(w, r)
					return
				}

				if !claims.AcceptAudience(mid.config.BaseURL) {
					mid.errHandler.InvalidAuthenticationToken(w, r)
					return
				}

				workerID, err := strconv.ParseInt(claims.Subject, 10, 64)
				if err != nil {
					mid.errHandler.InvalidAuthenticationToken(w, r)
					return
				}

				worker, found, err := mid.WorkerRepo.GetOne(workerID)
				if err != nil {
					mid.errHandler.ServerError(w, r, err)
					return
				}

				if found {
					r = context.ContextSetAuthenticatedWorker(r, worker)
				}
			}
		}

		next.ServeHTTP(w, r)
	})
}

func (mid *Middleware) RequireAuthenticatedWorker(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authenticatedWorker := context.ContextGetAuthenticatedWorker(r)

		if authenticatedWorker == nil {
			mid.errHandler.AuthenticationRequired(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireAdmin gates the admin surface. The caller must be authenticated
// and registered in the admins table.
func (mid *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authenticatedWorker := context.ContextGetAuthenticatedWorker(r)

		if authenticatedWorker == nil {
			mid.errHandler.AuthenticationRequired(w, r)
			return
		}

		isAdmin, err := mid.AdminRepo.IsAdmin(authenticatedWorker.ID)
		if err != nil {
			mid.errHandler.ServerError(w, r, err)
			return
		}

		if !isAdmin {
			mid.errHandler.Forbidden(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}
