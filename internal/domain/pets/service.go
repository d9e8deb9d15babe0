package pets

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"vet-clinic-api/internal/apperror"
	"vet-clinic-api/internal/platform/validation"
	"vet-clinic-api/internal/ports/images"
)

const (
	msgNotFound = "Mascota no encontrada"

	// DefaultImageURL se usa si no hay resolver configurado.
	DefaultImageURL = "https://via.placeholder.com/200?text=Mascota"
)

type Service struct {
	repo   Repository
	images images.BreedImageResolver
	now    func() time.Time
}

// NewService: resolver puede ser nil (todas las mascotas sin imagen quedan con DefaultImageURL).
func NewService(repo Repository, resolver images.BreedImageResolver) *Service {
	return &Service{
		repo:   repo,
		images: resolver,
		now:    time.Now,
	}
}

type CreateInput struct {
	Nombre          string  `json:"nombre" validate:"required,min=2"`
	Especie         string  `json:"especie" validate:"required,oneof=Perro Gato Conejo Pajaro Reptil Otro"`
	Raza            string  `json:"raza" validate:"required"`
	Peso            float64 `json:"peso" validate:"gte=0.1"`
	FechaNacimiento string  `json:"fecha_nacimiento" validate:"required,isodate"`
	OwnerID         string  `json:"ownerId" validate:"required"`
	ImagenURL       string  `json:"imagen_url"`
	Microchip       string  `json:"microchip"`
}

// UpdateInput: nil = conservar el valor actual. ownerId también se puede reasignar.
type UpdateInput struct {
	Nombre          *string  `json:"nombre" validate:"omitempty,min=2"`
	Especie         *string  `json:"especie" validate:"omitempty,oneof=Perro Gato Conejo Pajaro Reptil Otro"`
	Raza            *string  `json:"raza" validate:"omitempty,min=1"`
	Peso            *float64 `json:"peso" validate:"omitempty,gte=0.1"`
	FechaNacimiento *string  `json:"fecha_nacimiento" validate:"omitempty,isodate"`
	OwnerID         *string  `json:"ownerId" validate:"omitempty,min=1"`
	ImagenURL       *string  `json:"imagen_url"`
	Microchip       *string  `json:"microchip"`
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Pet, error) {
	in.Nombre = strings.TrimSpace(in.Nombre)
	in.Raza = strings.TrimSpace(in.Raza)
	in.OwnerID = strings.TrimSpace(in.OwnerID)
	in.ImagenURL = strings.TrimSpace(in.ImagenURL)

	if err := validation.Struct(in); err != nil {
		return Pet{}, err
	}
	birth, _ := validation.ParseISODate(in.FechaNacimiento)

	now := s.now()
	p := Pet{
		ID:              uuid.NewString(),
		OwnerID:         in.OwnerID,
		Nombre:          in.Nombre,
		Especie:         Species(in.Especie),
		Raza:            in.Raza,
		Peso:            in.Peso,
		FechaNacimiento: birth,
		ImagenURL:       in.ImagenURL,
		Microchip:       strings.TrimSpace(in.Microchip),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if p.ImagenURL == "" {
		p.ImagenURL = s.resolveImage(ctx, p.Especie, p.Raza)
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, apperror.FromStore(err, msgNotFound, "Ya existe una mascota con ese id")
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	p, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Pet{}, apperror.FromStore(err, msgNotFound, "")
	}
	return p, nil
}

func (s *Service) List(ctx context.Context) ([]Pet, error) {
	return s.repo.List(ctx)
}

// ListByOwner no verifica que el propietario exista: un id desconocido da lista vacía.
func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]Pet, error) {
	return s.repo.ListByOwner(ctx, strings.TrimSpace(ownerID))
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Pet, error) {
	for _, p := range []*string{in.Nombre, in.Raza, in.OwnerID, in.ImagenURL, in.Microchip} {
		if p != nil {
			*p = strings.TrimSpace(*p)
		}
	}
	if err := validation.Struct(in); err != nil {
		return Pet{}, err
	}

	p, err := s.GetByID(ctx, id)
	if err != nil {
		return Pet{}, err
	}
	prevSpecies, prevBreed := p.Especie, p.Raza

	if in.Nombre != nil {
		p.Nombre = *in.Nombre
	}
	if in.Especie != nil {
		p.Especie = Species(*in.Especie)
	}
	if in.Raza != nil {
		p.Raza = *in.Raza
	}
	if in.Peso != nil {
		p.Peso = *in.Peso
	}
	if in.FechaNacimiento != nil {
		p.FechaNacimiento, _ = validation.ParseISODate(*in.FechaNacimiento)
	}
	if in.OwnerID != nil {
		p.OwnerID = *in.OwnerID
	}
	if in.Microchip != nil {
		p.Microchip = *in.Microchip
	}

	switch {
	case in.ImagenURL != nil && *in.ImagenURL != "":
		p.ImagenURL = *in.ImagenURL
	case p.Especie != prevSpecies || !strings.EqualFold(p.Raza, prevBreed):
		p.ImagenURL = s.resolveImage(ctx, p.Especie, p.Raza)
	}
	p.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, apperror.FromStore(err, msgNotFound, "")
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id string) (Pet, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return Pet{}, err
	}
	if err := s.repo.Delete(ctx, p.ID); err != nil {
		return Pet{}, apperror.FromStore(err, msgNotFound, "")
	}
	return p, nil
}

func (s *Service) resolveImage(ctx context.Context, species Species, breed string) string {
	if s.images == nil {
		return DefaultImageURL
	}
	return s.images.Resolve(ctx, images.Species(species), breed)
}
