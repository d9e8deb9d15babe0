package auth

import (
	"strings"
	"time"
)

// Role es el rol del usuario tal como viaja en el token y en la API.
type Role string

const (
	RoleAdmin         Role = "admin"
	RoleVeterinario   Role = "veterinario"
	RoleRecepcionista Role = "recepcionista"
)

// Valid: solo los tres roles conocidos.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleVeterinario, RoleRecepcionista:
		return true
	}
	return false
}

// ParseRole normaliza (trim + lower). ok=false si no es un rol conocido.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	return r, r.Valid()
}

// Claims representa la información extraída del token.
type Claims struct {
	UserID   string
	Username string
	Email    string
	Role     Role
}

// Token es un token emitido junto con su vencimiento.
type Token struct {
	Value     string
	ExpiresAt time.Time
}

// RoleSet es el conjunto de roles permitidos para una ruta.
type RoleSet map[Role]struct{}

func NewRoleSet(roles ...Role) RoleSet {
	s := make(RoleSet, len(roles))
	for _, r := range roles {
		s[r] = struct{}{}
	}
	return s
}

func (s RoleSet) Allows(r Role) bool {
	_, ok := s[r]
	return ok
}
