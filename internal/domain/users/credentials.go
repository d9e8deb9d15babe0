package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"vet-clinic-api/internal/apperror"
	"vet-clinic-api/internal/platform/logger"
	"vet-clinic-api/internal/platform/validation"
	"vet-clinic-api/internal/ports/auth"
)

const (
	msgInvalidCredentials = "Credenciales inválidas"
	msgWrongPassword      = "Contraseña actual incorrecta"
)

// Credentials maneja registro, login y cambio de contraseña.
// El registro público siempre crea recepcionistas.
type Credentials struct {
	users  *Service
	repo   Repository
	hasher auth.PasswordHasher
	issuer auth.Issuer

	dummyOnce sync.Once
	dummyHash string
}

func NewCredentials(repo Repository, hasher auth.PasswordHasher, issuer auth.Issuer) *Credentials {
	return &Credentials{
		users:  NewService(repo, hasher),
		repo:   repo,
		hasher: hasher,
		issuer: issuer,
	}
}

type RegisterInput struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,maxbytes=72"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,maxbytes=72"`
}

// Session es el resultado de un login exitoso.
type Session struct {
	Token auth.Token
	User  User
}

func (c *Credentials) Register(ctx context.Context, in RegisterInput) (User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = normalizeEmail(in.Email)
	if err := validation.Struct(in); err != nil {
		return User{}, err
	}

	u, err := c.users.create(ctx, in.Username, in.Email, in.Password, auth.RoleRecepcionista)
	if err != nil {
		return User{}, err
	}
	logger.FromContext(ctx).Info("user registered", map[string]any{"user_id": u.ID, "role": string(u.Role)})
	return u, nil
}

// Login: email desconocido y contraseña incorrecta dan exactamente el mismo error.
// Con email desconocido igual se corre un bcrypt contra un hash dummy.
func (c *Credentials) Login(ctx context.Context, in LoginInput) (Session, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validation.Struct(in); err != nil {
		return Session{}, err
	}

	u, err := c.repo.GetByEmail(ctx, in.Email)
	if errors.Is(err, apperror.ErrNotFound) {
		_ = c.hasher.Compare(c.dummy(), in.Password)
		return Session{}, apperror.InvalidCredentials(msgInvalidCredentials)
	}
	if err != nil {
		return Session{}, err
	}

	if err := c.hasher.Compare(u.PasswordHash, in.Password); err != nil {
		return Session{}, apperror.InvalidCredentials(msgInvalidCredentials)
	}

	tok, err := c.issuer.Issue(ctx, u.Claims())
	if err != nil {
		return Session{}, fmt.Errorf("issue token: %w", err)
	}
	return Session{Token: tok, User: u}, nil
}

// ChangePassword vuelve a verificar la contraseña actual; si no coincide el hash queda igual.
func (c *Credentials) ChangePassword(ctx context.Context, userID string, in ChangePasswordInput) error {
	if err := validation.Struct(in); err != nil {
		return err
	}

	u, err := c.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := c.hasher.Compare(u.PasswordHash, in.CurrentPassword); err != nil {
		return apperror.InvalidCredentials(msgWrongPassword)
	}

	hash, err := hashPassword(c.hasher, "newPassword", in.NewPassword)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	u.UpdatedAt = c.users.now()

	if err := c.repo.Update(ctx, u); err != nil {
		return apperror.FromStore(err, msgNotFound, msgDuplicate)
	}
	logger.FromContext(ctx).Info("password changed", map[string]any{"user_id": u.ID})
	return nil
}

func (c *Credentials) dummy() string {
	c.dummyOnce.Do(func() {
		h, err := c.hasher.Hash("vet-clinic-dummy-password")
		if err == nil {
			c.dummyHash = h
		}
	})
	return c.dummyHash
}
