package auth

import (
	"context"
	"errors"
)

// ErrPasswordTooLong: el hasher no acepta la contraseña por largo.
var ErrPasswordTooLong = errors.New("password too long")

// AuthVerifier verifica un token y devuelve claims o error.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// Issuer firma un token para las claims dadas.
type Issuer interface {
	Issue(ctx context.Context, c Claims) (Token, error)
}

// PasswordHasher abstrae el hash de contraseñas (bcrypt en producción).
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) error
}
