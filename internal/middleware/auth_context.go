package middleware

import (
	"context"
	"net/http"
	"strings"

	"vet-clinic-api/internal/apperror"
	"vet-clinic-api/internal/platform/httpx"
	"vet-clinic-api/internal/platform/logger"
	"vet-clinic-api/internal/ports/auth"
)

type ctxKey string

const claimsKey ctxKey = "claims"

const (
	msgNoToken      = "No token provided"
	msgInvalidToken = "Invalid token or expired"
	msgDenied       = "Acceso denegado"
)

// AuthContext es la variante opcional:
// - sin token => el request sigue anónimo.
// - token válido => setea claims.
// - token inválido => sigue anónimo (se loguea en debug), no corta.
func AuthContext(verifier auth.AuthVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" || verifier == nil {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := verifier.Verify(r.Context(), token)
			if err != nil {
				logger.FromContext(r.Context()).Debug("optional auth: token ignored", map[string]any{"error": err})
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// RequireAuth exige token: sin token => 401, token inválido o vencido => 403.
func RequireAuth(verifier auth.AuthVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				httpx.WriteError(w, r, apperror.Unauthenticated(msgNoToken))
				return
			}
			if verifier == nil {
				httpx.WriteError(w, r, apperror.InvalidToken(msgInvalidToken))
				return
			}

			claims, err := verifier.Verify(r.Context(), token)
			if err != nil {
				logger.FromContext(r.Context()).Info("token rejected", map[string]any{"error": err})
				httpx.WriteError(w, r, apperror.InvalidToken(msgInvalidToken))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// RequireRoles va siempre después de RequireAuth.
// Sin claims (mal montado) también responde 401.
func RequireRoles(allowed auth.RoleSet) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := GetClaims(r.Context())
			if !ok {
				httpx.WriteError(w, r, apperror.Unauthenticated(msgNoToken))
				return
			}
			if !allowed.Allows(claims.Role) {
				httpx.WriteError(w, r, apperror.Forbidden(msgDenied))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func WithClaims(ctx context.Context, c auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	v := ctx.Value(claimsKey)
	if v == nil {
		return auth.Claims{}, false
	}
	c, ok := v.(auth.Claims)
	return c, ok
}

func bearerToken(authHeader string) string {
	if strings.TrimSpace(authHeader) == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
