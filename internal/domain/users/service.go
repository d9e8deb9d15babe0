package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"vet-clinic-api/internal/apperror"
	"vet-clinic-api/internal/platform/validation"
	"vet-clinic-api/internal/ports/auth"
)

const (
	msgNotFound  = "Usuario no encontrado"
	msgDuplicate = "El usuario o email ya existe"
)

// Service es el CRUD de usuarios que usa el admin.
type Service struct {
	repo   Repository
	hasher auth.PasswordHasher
	now    func() time.Time
}

func NewService(repo Repository, hasher auth.PasswordHasher) *Service {
	return &Service{
		repo:   repo,
		hasher: hasher,
		now:    time.Now,
	}
}

type CreateInput struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,maxbytes=72"`
	Role     string `json:"role" validate:"omitempty,oneof=admin veterinario recepcionista"`
}

// UpdateInput no toca la contraseña (eso va por /auth/password).
type UpdateInput struct {
	Username *string `json:"username" validate:"omitempty,min=3"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Role     *string `json:"role" validate:"omitempty,oneof=admin veterinario recepcionista"`
}

func (s *Service) Create(ctx context.Context, in CreateInput) (User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = normalizeEmail(in.Email)
	in.Role = strings.ToLower(strings.TrimSpace(in.Role))
	if err := validation.Struct(in); err != nil {
		return User{}, err
	}

	role := auth.RoleRecepcionista
	if in.Role != "" {
		role = auth.Role(in.Role)
	}
	return s.create(ctx, in.Username, in.Email, in.Password, role)
}

func (s *Service) create(ctx context.Context, username, email, password string, role auth.Role) (User, error) {
	hash, err := hashPassword(s.hasher, "password", password)
	if err != nil {
		return User{}, err
	}

	now := s.now()
	u := User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return User{}, apperror.FromStore(err, msgNotFound, msgDuplicate)
	}
	return u, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (User, error) {
	u, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return User{}, apperror.FromStore(err, msgNotFound, msgDuplicate)
	}
	return u, nil
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (User, error) {
	if in.Username != nil {
		v := strings.TrimSpace(*in.Username)
		in.Username = &v
	}
	if in.Email != nil {
		v := normalizeEmail(*in.Email)
		in.Email = &v
	}
	if in.Role != nil {
		v := strings.ToLower(strings.TrimSpace(*in.Role))
		in.Role = &v
	}
	if err := validation.Struct(in); err != nil {
		return User{}, err
	}

	u, err := s.GetByID(ctx, id)
	if err != nil {
		return User{}, err
	}
	if in.Username != nil {
		u.Username = *in.Username
	}
	if in.Email != nil {
		u.Email = *in.Email
	}
	if in.Role != nil {
		u.Role = auth.Role(*in.Role)
	}
	u.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, u); err != nil {
		return User{}, apperror.FromStore(err, msgNotFound, msgDuplicate)
	}
	return u, nil
}

// Delete impide que el admin borre su propia cuenta.
func (s *Service) Delete(ctx context.Context, actorID, id string) (User, error) {
	id = strings.TrimSpace(id)
	if id != "" && id == actorID {
		return User{}, apperror.Validation("No puedes eliminar tu propia cuenta")
	}

	u, err := s.GetByID(ctx, id)
	if err != nil {
		return User{}, err
	}
	if err := s.repo.Delete(ctx, u.ID); err != nil {
		return User{}, apperror.FromStore(err, msgNotFound, msgDuplicate)
	}
	return u, nil
}

// EnsureAdmin crea el admin inicial si no existe ningún usuario con ese email.
// created=false si ya existía (no se modifica).
func (s *Service) EnsureAdmin(ctx context.Context, in CreateInput) (u User, created bool, err error) {
	in.Role = string(auth.RoleAdmin)
	in.Email = normalizeEmail(in.Email)

	existing, err := s.repo.GetByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return existing, false, nil
	case !errors.Is(err, apperror.ErrNotFound):
		return User{}, false, err
	}

	u, err = s.Create(ctx, in)
	if err != nil {
		return User{}, false, err
	}
	return u, true, nil
}

func hashPassword(h auth.PasswordHasher, field, plain string) (string, error) {
	hash, err := h.Hash(plain)
	if errors.Is(err, auth.ErrPasswordTooLong) {
		return "", apperror.ValidationField(field, field+" no puede exceder los 72 bytes")
	}
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return hash, nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
