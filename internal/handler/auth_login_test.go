package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/cradoe/gopass"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rudovey/workpay/internal/errHandler"
	"github.com/rudovey/workpay/internal/helper"
	"github.com/rudovey/workpay/internal/mocks"
	"github.com/rudovey/workpay/internal/models"
)

func newTestRouteHandler(t *testing.T, db *mocks.MockDatabase) *RouteHandler {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	errorHandler := errHandler.New(mocks.MockConfig.BaseURL, "", nil, logger)

	var wg sync.WaitGroup
	t.Cleanup(wg.Wait)

	return NewRouteHandler(&RouteHandler{
		DB:         db,
		ErrHandler: errorHandler,
		Helper:     helper.New(mocks.MockConfig.BaseURL, &wg, errorHandler),
		Config:     mocks.MockConfig,
	})
}

func TestHandleAuthLogin(t *testing.T) {
	password := "Str0ng&Secure!"
	hashed, err := gopass.Hash(password)
	require.NoError(t, err)

	worker := &models.Worker{
		ID:             7,
		FirstName:      "Ada",
		Email:          "ada@example.org",
		HashedPassword: hashed,
	}

	t.Run("successful login returns a token", func(t *testing.T) {
		db := mocks.NewMockDatabase()
		db.WorkerRepo.On("GetByEmail", "ada@example.org").Return(worker, true, nil)
		db.ActivityRepo.On("Insert", mock.Anything).Return(&models.ActivityLog{}, nil)

		h := newTestRouteHandler(t, db)

		body, _ := json.Marshal(map[string]string{
			"email":    "ada@example.org",
			"password": password,
		})

		req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		h.HandleAuthLogin(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var response struct {
			Data map[string]string `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		require.NotEmpty(t, response.Data["auth_token"])
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		db := mocks.NewMockDatabase()
		db.WorkerRepo.On("GetByEmail", "ada@example.org").Return(worker, true, nil)

		h := newTestRouteHandler(t, db)

		body, _ := json.Marshal(map[string]string{
			"email":    "ada@example.org",
			"password": "not-the-password",
		})

		req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		h.HandleAuthLogin(rec, req)

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("unknown email is rejected", func(t *testing.T) {
		db := mocks.NewMockDatabase()
		db.WorkerRepo.On("GetByEmail", "ghost@example.org").Return(nil, false, nil)

		h := newTestRouteHandler(t, db)

		body, _ := json.Marshal(map[string]string{
			"email":    "ghost@example.org",
			"password": password,
		})

		req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		h.HandleAuthLogin(rec, req)

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("blocked worker is refused", func(t *testing.T) {
		blocked := *worker
		blocked.IsBlocked = true

		db := mocks.NewMockDatabase()
		db.WorkerRepo.On("GetByEmail", "ada@example.org").Return(&blocked, true, nil)

		h := newTestRouteHandler(t, db)

		body, _ := json.Marshal(map[string]string{
			"email":    "ada@example.org",
			"password": password,
		})

		req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		h.HandleAuthLogin(rec, req)

		require.Equal(t, http.StatusForbidden, rec.Code)
	})
}
