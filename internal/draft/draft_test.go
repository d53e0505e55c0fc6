package draft

import (
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/rudovey/workpay/internal/domain"
	"github.com/rudovey/workpay/internal/repository"
)

type memoryCache struct {
	values map[string]string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: make(map[string]string)}
}

func (c *memoryCache) Get(key string) (string, error) {
	value, ok := c.values[key]
	if !ok {
		return "", redis.Nil
	}
	return value, nil
}

func (c *memoryCache) Set(key, value string, expiration time.Duration) error {
	c.values[key] = value
	return nil
}

func (c *memoryCache) Delete(key string) error {
	delete(c.values, key)
	return nil
}

func TestDraftWalkthrough(t *testing.T) {
	store := NewStore(newMemoryCache())

	d, err := store.Start(7)
	require.NoError(t, err)
	require.Equal(t, StepWallet, d.Step)

	d, err = store.SetWallet(7, "UQabcdef123456", "")
	require.NoError(t, err)
	require.Equal(t, StepDirection, d.Step)
	require.Equal(t, "TON Wallet", d.WalletType)

	d, err = store.SetDirection(7, "crypto")
	require.NoError(t, err)
	require.Equal(t, StepLink, d.Step)

	d, err = store.SetLink(7, "https://t.me/c/123/456")
	require.NoError(t, err)
	require.Equal(t, StepProofs, d.Step)

	d, err = store.AddProof(7, domain.ProofInput{FileRef: "https://cdn.example/1.png", Kind: repository.ProofKindImage})
	require.NoError(t, err)
	require.Len(t, d.Proofs, 1)

	// proofs step accepts multiple attachments
	d, err = store.AddProof(7, domain.ProofInput{FileRef: "https://cdn.example/2.mp4", Kind: repository.ProofKindVideo})
	require.NoError(t, err)
	require.Len(t, d.Proofs, 2)

	input, err := store.Complete(7)
	require.NoError(t, err)
	require.Equal(t, "UQabcdef123456", input.WalletAddress)
	require.Equal(t, "crypto", input.Direction)
	require.Len(t, input.Proofs, 2)

	// completing leaves the draft in place until it is explicitly discarded
	d, err = store.Get(7)
	require.NoError(t, err)
	require.Equal(t, StepProofs, d.Step)

	require.NoError(t, store.Cancel(7))
	_, err = store.Get(7)
	require.True(t, domain.IsNotFound(err))
}

func TestDraftCompleteIsRepeatable(t *testing.T) {
	store := NewStore(newMemoryCache())

	_, err := store.Start(7)
	require.NoError(t, err)
	_, err = store.SetWallet(7, "UQabcdef123456", "")
	require.NoError(t, err)
	_, err = store.SetDirection(7, "crypto")
	require.NoError(t, err)
	_, err = store.SetLink(7, "https://t.me/c/123/456")
	require.NoError(t, err)
	_, err = store.AddProof(7, domain.ProofInput{FileRef: "https://cdn.example/1.png", Kind: repository.ProofKindImage})
	require.NoError(t, err)

	first, err := store.Complete(7)
	require.NoError(t, err)

	// a submission refused downstream has not consumed anything; the
	// same draft completes again with every field intact
	second, err := store.Complete(7)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestDraftStepsAreStrictlyForward(t *testing.T) {
	store := NewStore(newMemoryCache())

	_, err := store.Start(7)
	require.NoError(t, err)

	// skipping ahead is refused at every step
	_, err = store.SetDirection(7, "crypto")
	require.True(t, domain.IsDomain(err))

	_, err = store.SetLink(7, "https://example.org")
	require.True(t, domain.IsDomain(err))

	_, err = store.AddProof(7, domain.ProofInput{FileRef: "x", Kind: repository.ProofKindText})
	require.True(t, domain.IsDomain(err))

	_, err = store.Complete(7)
	require.True(t, domain.IsDomain(err))

	// and going backwards is too
	_, err = store.SetWallet(7, "UQabcdef123456", "")
	require.NoError(t, err)

	_, err = store.SetWallet(7, "UQzyxwvu987654", "")
	require.True(t, domain.IsDomain(err))
}

func TestDraftValidatesInputs(t *testing.T) {
	store := NewStore(newMemoryCache())

	_, err := store.Start(7)
	require.NoError(t, err)

	_, err = store.SetWallet(7, "bad", "")
	require.True(t, domain.IsValidation(err))

	_, err = store.SetWallet(7, "UQabcdef123456", "")
	require.NoError(t, err)

	_, err = store.SetDirection(7, "")
	require.True(t, domain.IsValidation(err))
}

func TestDraftCompleteNeedsProof(t *testing.T) {
	store := NewStore(newMemoryCache())

	_, err := store.Start(7)
	require.NoError(t, err)
	_, err = store.SetWallet(7, "UQabcdef123456", "")
	require.NoError(t, err)
	_, err = store.SetDirection(7, "crypto")
	require.NoError(t, err)
	_, err = store.SetLink(7, "https://t.me/c/123/456")
	require.NoError(t, err)

	_, err = store.Complete(7)
	require.True(t, domain.IsValidation(err))
}

func TestDraftCancel(t *testing.T) {
	store := NewStore(newMemoryCache())

	_, err := store.Start(7)
	require.NoError(t, err)

	require.NoError(t, store.Cancel(7))

	_, err = store.Get(7)
	require.True(t, domain.IsNotFound(err))
}

func TestDraftStartReplacesExisting(t *testing.T) {
	store := NewStore(newMemoryCache())

	_, err := store.Start(7)
	require.NoError(t, err)
	_, err = store.SetWallet(7, "UQabcdef123456", "")
	require.NoError(t, err)

	d, err := store.Start(7)
	require.NoError(t, err)
	require.Equal(t, StepWallet, d.Step)
	require.Empty(t, d.WalletAddress)
}
