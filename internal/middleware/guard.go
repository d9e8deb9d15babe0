package middleware

import (
	"net/http"

	"vet-clinic-api/internal/ports/auth"
)

// Guard agrupa los middlewares de auth para que cada módulo declare su allow-set
// al registrar rutas.
type Guard struct {
	Verifier auth.AuthVerifier
}

func NewGuard(v auth.AuthVerifier) Guard {
	return Guard{Verifier: v}
}

// Authenticated exige un token válido, sin mirar el rol.
func (g Guard) Authenticated() func(http.Handler) http.Handler {
	return RequireAuth(g.Verifier)
}

// Roles exige token válido y que el rol esté en el allow-set.
func (g Guard) Roles(roles ...auth.Role) func(http.Handler) http.Handler {
	requireAuth := RequireAuth(g.Verifier)
	requireRoles := RequireRoles(auth.NewRoleSet(roles...))
	return func(next http.Handler) http.Handler {
		return requireAuth(requireRoles(next))
	}
}

// Optional setea claims si hay token válido; nunca rechaza.
func (g Guard) Optional() func(http.Handler) http.Handler {
	return AuthContext(g.Verifier)
}
