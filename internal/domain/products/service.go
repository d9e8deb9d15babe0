package products

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"vet-clinic-api/internal/apperror"
	"vet-clinic-api/internal/platform/validation"
)

const (
	msgNotFound  = "Producto no encontrado"
	msgDuplicate = "Producto duplicado"
)

type Service struct {
	repo       Repository
	categories CategoryNamer
	now        func() time.Time
}

// NewService: categories puede ser nil (las respuestas no embeben categoría).
func NewService(repo Repository, categories CategoryNamer) *Service {
	return &Service{
		repo:       repo,
		categories: categories,
		now:        time.Now,
	}
}

type CreateInput struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description string  `json:"description" validate:"max=500"`
	Price       float64 `json:"price" validate:"gte=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
	CategoryID  string  `json:"categoryId"`
}

type UpdateInput struct {
	Name        *string  `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string  `json:"description" validate:"omitempty,max=500"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Stock       *int     `json:"stock" validate:"omitempty,gte=0"`
	CategoryID  *string  `json:"categoryId"`
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Detail, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	if err := validation.Struct(in); err != nil {
		return Detail{}, err
	}

	now := s.now()
	p := Product{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		CategoryID:  strings.TrimSpace(in.CategoryID),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return Detail{}, apperror.FromStore(err, msgNotFound, msgDuplicate)
	}
	return s.detail(ctx, p)
}

func (s *Service) GetByID(ctx context.Context, id string) (Detail, error) {
	p, err := s.get(ctx, id)
	if err != nil {
		return Detail{}, err
	}
	return s.detail(ctx, p)
}

func (s *Service) List(ctx context.Context) ([]Detail, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	// Cache por request: muchos productos comparten categoría.
	names := map[string]*CategoryRef{}
	out := make([]Detail, 0, len(items))
	for _, p := range items {
		ref, seen := names[p.CategoryID]
		if !seen {
			ref, err = s.lookup(ctx, p.CategoryID)
			if err != nil {
				return nil, err
			}
			names[p.CategoryID] = ref
		}
		out = append(out, Detail{Product: p, Category: ref})
	}
	return out, nil
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Detail, error) {
	if in.Name != nil {
		n := strings.TrimSpace(*in.Name)
		in.Name = &n
	}
	if err := validation.Struct(in); err != nil {
		return Detail{}, err
	}

	p, err := s.get(ctx, id)
	if err != nil {
		return Detail{}, err
	}
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Description != nil {
		p.Description = strings.TrimSpace(*in.Description)
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Stock != nil {
		p.Stock = *in.Stock
	}
	if in.CategoryID != nil {
		p.CategoryID = strings.TrimSpace(*in.CategoryID)
	}
	p.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, p); err != nil {
		return Detail{}, apperror.FromStore(err, msgNotFound, msgDuplicate)
	}
	return s.detail(ctx, p)
}

func (s *Service) Delete(ctx context.Context, id string) (Product, error) {
	p, err := s.get(ctx, id)
	if err != nil {
		return Product{}, err
	}
	if err := s.repo.Delete(ctx, p.ID); err != nil {
		return Product{}, apperror.FromStore(err, msgNotFound, msgDuplicate)
	}
	return p, nil
}

func (s *Service) get(ctx context.Context, id string) (Product, error) {
	p, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Product{}, apperror.FromStore(err, msgNotFound, msgDuplicate)
	}
	return p, nil
}

func (s *Service) detail(ctx context.Context, p Product) (Detail, error) {
	ref, err := s.lookup(ctx, p.CategoryID)
	if err != nil {
		return Detail{}, err
	}
	return Detail{Product: p, Category: ref}, nil
}

func (s *Service) lookup(ctx context.Context, categoryID string) (*CategoryRef, error) {
	if s.categories == nil || categoryID == "" {
		return nil, nil
	}
	name, ok, err := s.categories.NameOf(ctx, categoryID)
	if err != nil || !ok {
		return nil, err
	}
	return &CategoryRef{ID: categoryID, Name: name}, nil
}
