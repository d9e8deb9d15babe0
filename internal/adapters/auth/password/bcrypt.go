package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"vet-clinic-api/internal/ports/auth"
)

const DefaultCost = 10

var (
	ErrTooLong  = fmt.Errorf("password: must be 72 bytes or fewer: %w", auth.ErrPasswordTooLong)
	ErrMismatch = errors.New("password: mismatch")
)

// Bcrypt implementa auth.PasswordHasher.
type Bcrypt struct {
	cost int
}

var _ auth.PasswordHasher = (*Bcrypt)(nil)

// New con cost fuera de rango usa DefaultCost. En tests conviene bcrypt.MinCost.
func New(cost int) *Bcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Bcrypt{cost: cost}
}

func (b *Bcrypt) Hash(plain string) (string, error) {
	// bcrypt trunca en silencio arriba de 72 bytes.
	if len(plain) > 72 {
		return "", ErrTooLong
	}
	h, err := bcrypt.GenerateFromPassword([]byte(plain), b.cost)
	if err != nil {
		return "", fmt.Errorf("password: hash: %w", err)
	}
	return string(h), nil
}

// Compare devuelve ErrMismatch si no coincide; otro error si el hash es inválido.
func (b *Bcrypt) Compare(hash, plain string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	if err == nil {
		return nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatch
	}
	return fmt.Errorf("password: compare: %w", err)
}
