package auth

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// fakeCredentialStore records credential writes.
type fakeCredentialStore struct {
	updates map[uint64]string
	err     error
}

func newFakeCredentialStore() *fakeCredentialStore {
	return &fakeCredentialStore{updates: map[uint64]string{}}
}

func (s *fakeCredentialStore) UpdatePassword(_ context.Context, id uint64, hash string) error {
	if s.err != nil {
		return s.err
	}
	s.updates[id] = hash
	return nil
}

func TestVerifyHashedCredential(t *testing.T) {
	v := NewVerifier(bcrypt.MinCost)
	store := newFakeCredentialStore()

	hash, err := v.Hash("s3cret")
	require.NoError(t, err)

	ok, updated, err := v.Verify(context.Background(), store, 1, hash, "s3cret")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, hash, updated)
	assert.Empty(t, store.updates, "hashed compare must not write")

	ok, updated, err = v.Verify(context.Background(), store, 1, hash, "wrong")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, hash, updated)
	assert.Empty(t, store.updates)
}

func TestVerifyLegacyCredentialMigrates(t *testing.T) {
	v := NewVerifier(bcrypt.MinCost)
	store := newFakeCredentialStore()

	ok, updated, err := v.Verify(context.Background(), store, 7, "plain-old-pass", "plain-old-pass")
	require.NoError(t, err)
	assert.True(t, ok)

	// The caller's in-memory representation and the store now hold the same
	// bcrypt hash of the presented secret.
	require.True(t, strings.HasPrefix(updated, "$2"))
	assert.Equal(t, updated, store.updates[7])
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated), []byte("plain-old-pass")))

	// A second login against the migrated representation succeeds with no
	// further writes.
	store2 := newFakeCredentialStore()
	ok, updated2, err := v.Verify(context.Background(), store2, 7, updated, "plain-old-pass")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, updated, updated2)
	assert.Empty(t, store2.updates)
}

func TestVerifyLegacyMismatchDoesNotWrite(t *testing.T) {
	v := NewVerifier(bcrypt.MinCost)
	store := newFakeCredentialStore()

	ok, updated, err := v.Verify(context.Background(), store, 7, "plain-old-pass", "nope")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "plain-old-pass", updated)
	assert.Empty(t, store.updates)
}

func TestVerifyEmptyStoredFailsClosed(t *testing.T) {
	v := NewVerifier(bcrypt.MinCost)
	store := newFakeCredentialStore()

	ok, _, err := v.Verify(context.Background(), store, 7, "", "")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, _, err = v.Verify(context.Background(), store, 7, "", "anything")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, store.updates)
}

func TestVerifyMigrationWriteFailure(t *testing.T) {
	v := NewVerifier(bcrypt.MinCost)
	store := newFakeCredentialStore()
	store.err = errors.New("connection lost")

	ok, _, err := v.Verify(context.Background(), store, 7, "plain", "plain")
	require.Error(t, err)
	assert.False(t, ok)
}
