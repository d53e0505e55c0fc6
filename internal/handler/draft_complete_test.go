package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rudovey/workpay/internal/context"
	"github.com/rudovey/workpay/internal/domain"
	"github.com/rudovey/workpay/internal/draft"
	"github.com/rudovey/workpay/internal/mocks"
	"github.com/rudovey/workpay/internal/models"
	"github.com/rudovey/workpay/internal/repository"
)

type wizardCache struct {
	values map[string]string
}

func newWizardCache() *wizardCache {
	return &wizardCache{values: make(map[string]string)}
}

func (c *wizardCache) Get(key string) (string, error) {
	value, ok := c.values[key]
	if !ok {
		return "", redis.Nil
	}
	return value, nil
}

func (c *wizardCache) Set(key, value string, expiration time.Duration) error {
	c.values[key] = value
	return nil
}

func (c *wizardCache) Delete(key string) error {
	delete(c.values, key)
	return nil
}

func walkDraftToProofs(t *testing.T, drafts *draft.Store, workerID int64) {
	t.Helper()

	_, err := drafts.Start(workerID)
	require.NoError(t, err)
	_, err = drafts.SetWallet(workerID, "UQabcdef123456", "")
	require.NoError(t, err)
	_, err = drafts.SetDirection(workerID, "crypto")
	require.NoError(t, err)
	_, err = drafts.SetLink(workerID, "https://t.me/c/123/456")
	require.NoError(t, err)
	_, err = drafts.AddProof(workerID, domain.ProofInput{
		FileRef: "https://cdn.example/1.png",
		Kind:    repository.ProofKindImage,
	})
	require.NoError(t, err)
}

func TestHandleDraftComplete(t *testing.T) {
	t.Run("refused submission keeps the draft", func(t *testing.T) {
		db := mocks.NewMockDatabase()
		db.WorkerRepo.On("GetOne", int64(7)).Return(&models.Worker{ID: 7, IsBlocked: true}, true, nil)

		h := newTestRouteHandler(t, db)
		h.Claims = domain.NewClaimService(db, domain.NopPublisher{})
		h.Drafts = draft.NewStore(newWizardCache())

		walkDraftToProofs(t, h.Drafts, 7)

		req := httptest.NewRequest(http.MethodPost, "/claims/draft/complete", nil)
		req = context.ContextSetAuthenticatedWorker(req, &models.Worker{ID: 7})
		rec := httptest.NewRecorder()

		h.HandleDraftComplete(rec, req)

		require.Equal(t, http.StatusConflict, rec.Code)

		// nothing the worker typed in is lost
		d, err := h.Drafts.Get(7)
		require.NoError(t, err)
		require.Equal(t, draft.StepProofs, d.Step)
		require.Equal(t, "UQabcdef123456", d.WalletAddress)
		require.Len(t, d.Proofs, 1)
	})

	t.Run("successful submission discards the draft", func(t *testing.T) {
		db := mocks.NewMockDatabase()
		db.WorkerRepo.On("GetOne", int64(7)).Return(&models.Worker{ID: 7, Percent: 70}, true, nil)
		db.WithdrawalRepo.On("Insert", mock.Anything, mock.Anything).Return(int64(42), nil)
		db.ProofRepo.On("Insert", mock.Anything, mock.Anything).Return(int64(1), nil)
		db.ActivityRepo.On("Insert", mock.Anything).Return(&models.ActivityLog{}, nil)

		h := newTestRouteHandler(t, db)
		h.Claims = domain.NewClaimService(db, domain.NopPublisher{})
		h.Drafts = draft.NewStore(newWizardCache())

		walkDraftToProofs(t, h.Drafts, 7)

		req := httptest.NewRequest(http.MethodPost, "/claims/draft/complete", nil)
		req = context.ContextSetAuthenticatedWorker(req, &models.Worker{ID: 7})
		rec := httptest.NewRecorder()

		h.HandleDraftComplete(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)

		_, err := h.Drafts.Get(7)
		require.True(t, domain.IsNotFound(err))
	})
}
