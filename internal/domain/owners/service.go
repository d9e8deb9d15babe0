package owners

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"vet-clinic-api/internal/apperror"
	"vet-clinic-api/internal/platform/validation"
)

const (
	msgNotFound  = "Propietario no encontrado"
	msgDuplicate = "Ya existe un propietario con ese email"
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
	Nombre    string `json:"nombre" validate:"required,min=3"`
	Telefono  string `json:"telefono" validate:"required,min=7"`
	Email     string `json:"email" validate:"required,email"`
	Direccion string `json:"direccion" validate:"omitempty,min=3"`
}

// UpdateInput: nil = conservar el valor actual.
type UpdateInput struct {
	Nombre    *string `json:"nombre" validate:"omitempty,min=3"`
	Telefono  *string `json:"telefono" validate:"omitempty,min=7"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Direccion *string `json:"direccion" validate:"omitempty,min=3"`
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Owner, error) {
	in.Nombre = strings.TrimSpace(in.Nombre)
	in.Telefono = strings.TrimSpace(in.Telefono)
	in.Email = normalizeEmail(in.Email)
	in.Direccion = strings.TrimSpace(in.Direccion)

	if err := validation.Struct(in); err != nil {
		return Owner{}, err
	}

	now := s.now()
	o := Owner{
		ID:        uuid.NewString(),
		Nombre:    in.Nombre,
		Telefono:  in.Telefono,
		Email:     in.Email,
		Direccion: in.Direccion,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return Owner{}, apperror.FromStore(err, msgNotFound, msgDuplicate)
	}
	return o, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Owner, error) {
	o, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Owner{}, apperror.FromStore(err, msgNotFound, msgDuplicate)
	}
	return o, nil
}

func (s *Service) List(ctx context.Context) ([]Owner, error) {
	return s.repo.List(ctx)
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Owner, error) {
	trimPtr(in.Nombre)
	trimPtr(in.Telefono)
	trimPtr(in.Direccion)
	if in.Email != nil {
		e := normalizeEmail(*in.Email)
		in.Email = &e
	}

	if err := validation.Struct(in); err != nil {
		return Owner{}, err
	}

	o, err := s.GetByID(ctx, id)
	if err != nil {
		return Owner{}, err
	}

	if in.Nombre != nil {
		o.Nombre = *in.Nombre
	}
	if in.Telefono != nil {
		o.Telefono = *in.Telefono
	}
	if in.Email != nil {
		o.Email = *in.Email
	}
	if in.Direccion != nil {
		o.Direccion = *in.Direccion
	}
	o.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, o); err != nil {
		return Owner{}, apperror.FromStore(err, msgNotFound, msgDuplicate)
	}
	return o, nil
}

// Delete borra el propietario y lo devuelve. Las mascotas que lo referencian
// quedan intactas.
func (s *Service) Delete(ctx context.Context, id string) (Owner, error) {
	o, err := s.GetByID(ctx, id)
	if err != nil {
		return Owner{}, err
	}
	if err := s.repo.Delete(ctx, o.ID); err != nil {
		return Owner{}, apperror.FromStore(err, msgNotFound, msgDuplicate)
	}
	return o, nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func trimPtr(p *string) {
	if p != nil {
		*p = strings.TrimSpace(*p)
	}
}
