package categories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"vet-clinic-api/internal/apperror"
	"vet-clinic-api/internal/platform/validation"
)

const (
	msgNotFound  = "Categoría no encontrada"
	msgDuplicate = "Ya existe una categoría con ese nombre"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name        string `json:"name" validate:"required,min=3,max=50"`
	Description string `json:"description" validate:"max=200"`
}

type UpdateInput struct {
	Name        *string `json:"name" validate:"omitempty,min=3,max=50"`
	Description *string `json:"description" validate:"omitempty,max=200"`
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Category, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	if err := validation.Struct(in); err != nil {
		return Category{}, err
	}

	now := s.now()
	c := Category{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return Category{}, apperror.FromStore(err, msgNotFound, msgDuplicate)
	}
	return c, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Category, error) {
	c, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Category{}, apperror.FromStore(err, msgNotFound, msgDuplicate)
	}
	return c, nil
}

func (s *Service) List(ctx context.Context) ([]Category, error) {
	return s.repo.List(ctx)
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Category, error) {
	if in.Name != nil {
		n := strings.TrimSpace(*in.Name)
		in.Name = &n
	}
	if in.Description != nil {
		d := strings.TrimSpace(*in.Description)
		in.Description = &d
	}
	if err := validation.Struct(in); err != nil {
		return Category{}, err
	}

	c, err := s.GetByID(ctx, id)
	if err != nil {
		return Category{}, err
	}
	if in.Name != nil {
		c.Name = *in.Name
	}
	if in.Description != nil {
		c.Description = *in.Description
	}
	c.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, c); err != nil {
		return Category{}, apperror.FromStore(err, msgNotFound, msgDuplicate)
	}
	return c, nil
}

// Delete no toca los productos: quedan con un categoryId colgado.
func (s *Service) Delete(ctx context.Context, id string) (Category, error) {
	c, err := s.GetByID(ctx, id)
	if err != nil {
		return Category{}, err
	}
	if err := s.repo.Delete(ctx, c.ID); err != nil {
		return Category{}, apperror.FromStore(err, msgNotFound, msgDuplicate)
	}
	return c, nil
}

// NameOf expone solo el nombre de una categoría.
// Lo usa products para embeber {id, name} sin importar este paquete entero.
// ok=false si la categoría no existe.
func (s *Service) NameOf(ctx context.Context, id string) (string, bool, error) {
	c, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if errors.Is(err, apperror.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return c.Name, true, nil
}
