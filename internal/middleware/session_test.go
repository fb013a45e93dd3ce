package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nattapong/restaurant-order-api/internal/auth"
	"github.com/nattapong/restaurant-order-api/internal/model"
)

const testSecret = "middleware-test-secret"

func echoWithGate(t *testing.T, secret string, extract TokenExtractor, roles ...string) *echo.Echo {
	t.Helper()
	e := echo.New()
	g := e.Group("/protected")
	g.Use(SessionAuth(secret, extract))
	if len(roles) > 0 {
		g.Use(RequireRole(roles...))
	}
	g.GET("", func(c echo.Context) error {
		ident, ok := CurrentIdentity(c)
		require.True(t, ok)
		return c.JSON(http.StatusOK, echo.Map{"id": ident.ID, "role": ident.Role})
	})
	return e
}

func staffToken(t *testing.T, ttl time.Duration) string {
	t.Helper()
	tok, err := auth.Issue(testSecret, auth.UserClaims(model.User{ID: 5, Status: "active"}), ttl)
	require.NoError(t, err)
	return tok.Value
}

func TestSessionAuthHeaderCarrier(t *testing.T) {
	e := echoWithGate(t, testSecret, FromAuthHeader())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+staffToken(t, time.Hour))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":5`)
}

func TestSessionAuthRejectsUniformly(t *testing.T) {
	e := echoWithGate(t, testSecret, FromAuthHeader())

	cases := map[string]func(*http.Request){
		"no header":        func(r *http.Request) {},
		"not bearer":       func(r *http.Request) { r.Header.Set("Authorization", "Basic abc") },
		"empty token":      func(r *http.Request) { r.Header.Set("Authorization", "Bearer ") },
		"garbage token":    func(r *http.Request) { r.Header.Set("Authorization", "Bearer not-a-jwt") },
		"expired token":    func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+staffToken(t, -time.Minute)) },
		"foreign signature": func(r *http.Request) {
			tok, err := auth.Issue("another-secret", auth.UserClaims(model.User{ID: 5, Status: "active"}), time.Hour)
			require.NoError(t, err)
			r.Header.Set("Authorization", "Bearer "+tok.Value)
		},
	}
	for name, prep := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			prep(req)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.JSONEq(t, `{"error":"Unauthorized"}`, rec.Body.String())
		})
	}
}

func TestSessionAuthMissingSecretIsServerError(t *testing.T) {
	e := echoWithGate(t, "", FromAuthHeader())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+staffToken(t, time.Hour))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestSessionAuthCookieCarrier(t *testing.T) {
	e := echoWithGate(t, testSecret, FromCookie("auth_token"))

	tok, err := auth.Issue(testSecret, auth.CustomerClaims(model.Customer{ID: 11, Status: "active"}), time.Hour)
	require.NoError(t, err)

	// A malformed sibling pair must not break extraction.
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Cookie", "junk; auth_token="+tok.Value+"; theme=dark")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":11`)

	// Missing cookie is a uniform 401.
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Cookie", "theme=dark")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	e := echoWithGate(t, testSecret, FromAuthHeader(), auth.RoleCustomer)

	// Staff token on a customer-only group.
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+staffToken(t, time.Hour))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
