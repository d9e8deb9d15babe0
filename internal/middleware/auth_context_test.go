package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vet-clinic-api/internal/ports/auth"
)

type fakeVerifier struct {
	tokens map[string]auth.Claims
}

func (f fakeVerifier) Verify(_ context.Context, token string) (auth.Claims, error) {
	c, ok := f.tokens[token]
	if !ok {
		return auth.Claims{}, errors.New("bad token")
	}
	return c, nil
}

var verifier = fakeVerifier{tokens: map[string]auth.Claims{
	"admin-token": {UserID: "u-1", Username: "admin", Role: auth.RoleAdmin},
	"vet-token":   {UserID: "u-2", Username: "vet", Role: auth.RoleVeterinario},
}}

func echoClaims(w http.ResponseWriter, r *http.Request) {
	c, ok := GetClaims(r.Context())
	w.WriteHeader(http.StatusOK)
	if ok {
		_, _ = w.Write([]byte(c.UserID))
	}
}

func do(h http.Handler, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func message(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "error", body["status"])
	return body["message"]
}

func TestRequireAuth(t *testing.T) {
	h := RequireAuth(verifier)(http.HandlerFunc(echoClaims))

	rec := do(h, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "No token provided", message(t, rec))

	rec = do(h, "Basic abc")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(h, "Bearer nope")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Invalid token or expired", message(t, rec))

	rec = do(h, "bearer admin-token")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u-1", rec.Body.String())
}

func TestRequireRoles(t *testing.T) {
	h := RequireAuth(verifier)(RequireRoles(auth.NewRoleSet(auth.RoleAdmin))(http.HandlerFunc(echoClaims)))

	assert.Equal(t, http.StatusOK, do(h, "Bearer admin-token").Code)

	rec := do(h, "Bearer vet-token")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Acceso denegado", message(t, rec))

	// sin RequireAuth delante no hay claims
	bare := RequireRoles(auth.NewRoleSet(auth.RoleAdmin))(http.HandlerFunc(echoClaims))
	assert.Equal(t, http.StatusUnauthorized, do(bare, "").Code)
}

func TestAuthContext_Optional(t *testing.T) {
	h := AuthContext(verifier)(http.HandlerFunc(echoClaims))

	rec := do(h, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = do(h, "Bearer nope")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = do(h, "Bearer vet-token")
	assert.Equal(t, "u-2", rec.Body.String())
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", bearerToken("Bearer abc"))
	assert.Equal(t, "abc", bearerToken("BEARER   abc "))
	assert.Empty(t, bearerToken("abc"))
	assert.Empty(t, bearerToken("Token abc"))
	assert.Empty(t, bearerToken(""))
}

func TestGuard_Roles(t *testing.T) {
	g := NewGuard(verifier)
	h := g.Roles(auth.RoleVeterinario, auth.RoleRecepcionista)(http.HandlerFunc(echoClaims))

	assert.Equal(t, http.StatusOK, do(h, "Bearer vet-token").Code)
	assert.Equal(t, http.StatusForbidden, do(h, "Bearer admin-token").Code)
	assert.Equal(t, http.StatusUnauthorized, do(h, "").Code)
	assert.Equal(t, http.StatusForbidden, do(h, "Bearer nope").Code)

	assert.Equal(t, http.StatusOK, do(g.Authenticated()(http.HandlerFunc(echoClaims)), "Bearer admin-token").Code)
}
