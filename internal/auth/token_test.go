package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nattapong/restaurant-order-api/internal/model"
)

const testSecret = "unit-test-secret"

func TestIssueVerifyRoundTrip(t *testing.T) {
	u := model.User{ID: 42, Fullname: "Somchai", Lastname: "J.", Status: "active"}

	tok, err := Issue(testSecret, UserClaims(u), time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, tok.Value)
	assert.WithinDuration(t, time.Now().UTC().Add(time.Hour), tok.ExpiresAt, 5*time.Second)

	ident, err := Verify(testSecret, tok.Value)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), ident.ID)
	assert.Equal(t, RoleUser, ident.Role)
	assert.Equal(t, "Somchai", ident.Fullname)
	assert.Equal(t, "J.", ident.Lastname)
	assert.Equal(t, "active", ident.Status)
}

func TestCustomerClaimsRoundTrip(t *testing.T) {
	cu := model.Customer{ID: 9, Username: "ploy@example.com", Status: "active"}

	tok, err := Issue(testSecret, CustomerClaims(cu), 7*24*time.Hour)
	require.NoError(t, err)

	ident, err := Verify(testSecret, tok.Value)
	require.NoError(t, err)
	assert.Equal(t, uint64(9), ident.ID)
	assert.Equal(t, RoleCustomer, ident.Role)
	assert.Equal(t, "ploy@example.com", ident.Username)
}

func TestIssueWithoutSecret(t *testing.T) {
	_, err := Issue("", UserClaims(model.User{ID: 1}), time.Hour)
	assert.ErrorIs(t, err, ErrNoSecret)
}

func TestVerifyWithoutSecret(t *testing.T) {
	_, err := Verify("", "whatever")
	assert.ErrorIs(t, err, ErrNoSecret)
}

func TestVerifyExpiredToken(t *testing.T) {
	tok, err := Issue(testSecret, UserClaims(model.User{ID: 1, Status: "active"}), -time.Minute)
	require.NoError(t, err)

	_, err = Verify(testSecret, tok.Value)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyExpiryBoundaryIsExclusive(t *testing.T) {
	// A token is valid strictly before exp.  With a zero TTL exp equals the
	// issue second, so verification at or after that instant is rejected.
	tok, err := Issue(testSecret, UserClaims(model.User{ID: 1, Status: "active"}), 0)
	require.NoError(t, err)

	_, err = Verify(testSecret, tok.Value)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyWrongSecret(t *testing.T) {
	tok, err := Issue(testSecret, UserClaims(model.User{ID: 1, Status: "active"}), time.Hour)
	require.NoError(t, err)

	_, err = Verify("other-secret", tok.Value)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyTamperedSignature(t *testing.T) {
	tok, err := Issue(testSecret, UserClaims(model.User{ID: 1, Status: "active"}), time.Hour)
	require.NoError(t, err)

	parts := strings.Split(tok.Value, ".")
	require.Len(t, parts, 3)

	// Flip one byte of the signature segment.
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = Verify(testSecret, tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyGarbageToken(t *testing.T) {
	for _, raw := range []string{"", "not-a-jwt", "a.b", "a.b.c.d"} {
		_, err := Verify(testSecret, raw)
		assert.ErrorIs(t, err, ErrInvalidToken, "input %q", raw)
	}
}
