package tokens

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"vet-clinic-api/internal/platform/logger"
	"vet-clinic-api/internal/ports/auth"
)

const (
	DefaultTTL    = 24 * time.Hour
	DefaultIssuer = "vet-clinic-api"
)

var (
	ErrSecretMissing = errors.New("tokens: jwt secret is required")
	ErrInvalidToken  = errors.New("tokens: invalid token")
	ErrExpiredToken  = errors.New("tokens: token expired")
)

type Config struct {
	Secret string
	TTL    time.Duration
	Issuer string
}

// Service firma y verifica JWT HS256. Implementa auth.Issuer y auth.AuthVerifier.
type Service struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

var (
	_ auth.Issuer       = (*Service)(nil)
	_ auth.AuthVerifier = (*Service)(nil)
)

type jwtClaims struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

func NewService(cfg Config) (*Service, error) {
	if strings.TrimSpace(cfg.Secret) == "" {
		return nil, ErrSecretMissing
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if strings.TrimSpace(cfg.Issuer) == "" {
		cfg.Issuer = DefaultIssuer
	}
	return &Service{
		secret: []byte(cfg.Secret),
		ttl:    cfg.TTL,
		issuer: cfg.Issuer,
		now:    time.Now,
	}, nil
}

// WithClock es para tests (vencimiento).
func (s *Service) WithClock(now func() time.Time) *Service {
	cp := *s
	cp.now = now
	return &cp
}

func (s *Service) Issue(ctx context.Context, c auth.Claims) (auth.Token, error) {
	now := s.now()
	exp := now.Add(s.ttl)

	claims := jwtClaims{
		ID:       c.UserID,
		Username: c.Username,
		Email:    c.Email,
		Role:     string(c.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   c.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		logger.FromContext(ctx).Error("sign token failed", map[string]any{"error": err, "user_id": c.UserID})
		return auth.Token{}, fmt.Errorf("sign token: %w", err)
	}
	return auth.Token{Value: signed, ExpiresAt: exp}, nil
}

// Verify valida firma, algoritmo, issuer y vencimiento (sin leeway).
func (s *Service) Verify(ctx context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrInvalidToken
	}

	parsed, err := jwt.ParseWithClaims(
		token,
		&jwtClaims{},
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return auth.Claims{}, ErrExpiredToken
		}
		logger.FromContext(ctx).Debug("token validation failed", map[string]any{"error": err})
		return auth.Claims{}, ErrInvalidToken
	}

	c, ok := parsed.Claims.(*jwtClaims)
	if !ok || !parsed.Valid || strings.TrimSpace(c.ID) == "" {
		return auth.Claims{}, ErrInvalidToken
	}
	role, ok := auth.ParseRole(c.Role)
	if !ok {
		return auth.Claims{}, ErrInvalidToken
	}

	return auth.Claims{
		UserID:   c.ID,
		Username: c.Username,
		Email:    c.Email,
		Role:     role,
	}, nil
}
