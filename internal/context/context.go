package context

import (
	"context"
	"net/http"

	"github.com/rudovey/workpay/internal/models"
)

type contextKey string

const (
	authenticatedWorkerContextKey = contextKey("authenticatedWorker")
)

func ContextSetAuthenticatedWorker(r *http.Request, worker *models.Worker) *http.Request {
	ctx := context.WithValue(r.Context(), authenticatedWorkerContextKey, worker)
	return r.WithContext(ctx)
}

func ContextGetAuthenticatedWorker(r *http.Request) *models.Worker {
	worker, ok := r.Context().Value(authenticatedWorkerContextKey).(*models.Worker)
	if !ok {
		return nil
	}

	return worker
}
