package tokens

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vet-clinic-api/internal/ports/auth"
)

const secret = "test-secret-0123456789"

func newSvc(t *testing.T) *Service {
	t.Helper()
	s, err := NewService(Config{Secret: secret, TTL: time.Hour})
	require.NoError(t, err)
	return s
}

func TestNewService_RequiresSecret(t *testing.T) {
	_, err := NewService(Config{Secret: "  "})
	assert.ErrorIs(t, err, ErrSecretMissing)
}

func TestIssueVerify_RoundTrip(t *testing.T) {
	s := newSvc(t)
	ctx := context.Background()

	in := auth.Claims{UserID: "u-1", Username: "ana", Email: "ana@example.com", Role: auth.RoleVeterinario}
	tok, err := s.Issue(ctx, in)
	require.NoError(t, err)
	assert.NotEmpty(t, tok.Value)
	assert.WithinDuration(t, time.Now().Add(time.Hour), tok.ExpiresAt, 5*time.Second)

	got, err := s.Verify(ctx, tok.Value)
	require.NoError(t, err)
	assert.Equal(t, in, got)
}

func TestVerify_Expired(t *testing.T) {
	s := newSvc(t)
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	tok, err := s.WithClock(func() time.Time { return base }).Issue(context.Background(), auth.Claims{UserID: "u-1", Role: auth.RoleAdmin})
	require.NoError(t, err)

	later := s.WithClock(func() time.Time { return base.Add(time.Hour + time.Second) })
	_, err = later.Verify(context.Background(), tok.Value)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerify_WrongSecretOrIssuer(t *testing.T) {
	s := newSvc(t)
	ctx := context.Background()

	other, err := NewService(Config{Secret: "another-secret-987654"})
	require.NoError(t, err)
	tok, err := other.Issue(ctx, auth.Claims{UserID: "u-1", Role: auth.RoleAdmin})
	require.NoError(t, err)
	_, err = s.Verify(ctx, tok.Value)
	assert.ErrorIs(t, err, ErrInvalidToken)

	otherIss, err := NewService(Config{Secret: secret, Issuer: "someone-else"})
	require.NoError(t, err)
	tok, err = otherIss.Issue(ctx, auth.Claims{UserID: "u-1", Role: auth.RoleAdmin})
	require.NoError(t, err)
	_, err = s.Verify(ctx, tok.Value)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_RejectsNoneAndGarbage(t *testing.T) {
	s := newSvc(t)
	ctx := context.Background()

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwtClaims{
		ID:   "u-1",
		Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    DefaultIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = s.Verify(ctx, raw)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = s.Verify(ctx, "not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = s.Verify(ctx, "")
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestVerify_UnknownRole(t *testing.T) {
	s := newSvc(t)
	tok, err := s.Issue(context.Background(), auth.Claims{UserID: "u-1", Role: auth.Role("jefe")})
	require.NoError(t, err)

	_, err = s.Verify(context.Background(), tok.Value)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.False(t, strings.Contains(tok.Value, secret))
}
