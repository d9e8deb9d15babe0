package users

import (
	"time"

	"vet-clinic-api/internal/ports/auth"
)

// User es una cuenta del sistema. PasswordHash nunca sale por la API.
type User struct {
	ID           string
	Username     string
	Email        string // minúsculas
	PasswordHash string
	Role         auth.Role

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Claims arma las claims del token para este usuario.
func (u User) Claims() auth.Claims {
	return auth.Claims{
		UserID:   u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
	}
}
