package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/inventory-dashboard-api/internal/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionProbe(t *testing.T, captured **Identity) http.Handler {
	t.Helper()
	return Session()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := IdentityFromContext(r.Context())
		require.True(t, ok)
		*captured = id
		w.WriteHeader(http.StatusOK)
	}))
}

func TestSession_ValidToken(t *testing.T) {
	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	var got *Identity
	h := sessionProbe(t, &got)

	req := httptest.NewRequest(http.MethodGet, "/v1/dashboard/stats", nil)
	req.Header.Set("Authorization", "Bearer "+token.Encode("a@b.com", issued))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, "a@b.com", got.Email)
	assert.True(t, got.IssuedAt.Equal(issued))
}

func TestSession_MissingHeader(t *testing.T) {
	var got *Identity
	h := sessionProbe(t, &got)

	req := httptest.NewRequest(http.MethodGet, "/v1/dashboard/stats", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, got)
}

func TestSession_NonBearerScheme(t *testing.T) {
	var got *Identity
	h := sessionProbe(t, &got)

	req := httptest.NewRequest(http.MethodGet, "/v1/dashboard/stats", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, got)
}

func TestSession_GarbageToken(t *testing.T) {
	var got *Identity
	h := sessionProbe(t, &got)

	req := httptest.NewRequest(http.MethodGet, "/v1/dashboard/stats", nil)
	req.Header.Set("Authorization", "Bearer not-base64!!!")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, got)
	assert.Contains(t, rec.Body.String(), "invalid session token")
}
