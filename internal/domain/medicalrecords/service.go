package medicalrecords

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"vet-clinic-api/internal/apperror"
	"vet-clinic-api/internal/platform/validation"
)

const msgNotFound = "Historial clínico no encontrado"

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
	PetID       string `json:"petId" validate:"required"`
	Fecha       string `json:"fecha" validate:"required,isodate"`
	Hora        string `json:"hora" validate:"required,hhmm"`
	Diagnostico string `json:"diagnostico" validate:"required,min=5"`
	Tratamiento string `json:"tratamiento" validate:"required,min=5"`
	Veterinario string `json:"veterinario"`
	Notas       string `json:"notas"`
}

// UpdateInput: nil = conservar. petId no se reasigna.
type UpdateInput struct {
	Fecha       *string `json:"fecha" validate:"omitempty,isodate"`
	Hora        *string `json:"hora" validate:"omitempty,hhmm"`
	Diagnostico *string `json:"diagnostico" validate:"omitempty,min=5"`
	Tratamiento *string `json:"tratamiento" validate:"omitempty,min=5"`
	Veterinario *string `json:"veterinario"`
	Notas       *string `json:"notas"`
}

func (s *Service) Create(ctx context.Context, in CreateInput) (MedicalRecord, error) {
	in.PetID = strings.TrimSpace(in.PetID)
	in.Diagnostico = strings.TrimSpace(in.Diagnostico)
	in.Tratamiento = strings.TrimSpace(in.Tratamiento)

	if err := validation.Struct(in); err != nil {
		return MedicalRecord{}, err
	}
	fecha, _ := validation.ParseISODate(in.Fecha)

	vet := strings.TrimSpace(in.Veterinario)
	if vet == "" {
		vet = DefaultVeterinario
	}

	now := s.now()
	m := MedicalRecord{
		ID:          uuid.NewString(),
		PetID:       in.PetID,
		Fecha:       fecha,
		Hora:        in.Hora,
		Diagnostico: in.Diagnostico,
		Tratamiento: in.Tratamiento,
		Veterinario: vet,
		Notas:       strings.TrimSpace(in.Notas),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return MedicalRecord{}, apperror.FromStore(err, msgNotFound, "")
	}
	return m, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (MedicalRecord, error) {
	m, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return MedicalRecord{}, apperror.FromStore(err, msgNotFound, "")
	}
	return m, nil
}

func (s *Service) List(ctx context.Context) ([]MedicalRecord, error) {
	return s.repo.List(ctx)
}

// ListByPet no verifica que la mascota exista.
func (s *Service) ListByPet(ctx context.Context, petID string, filter ListFilter) ([]MedicalRecord, error) {
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, apperror.Validation("from no puede ser posterior a to")
	}
	filter.Query = strings.TrimSpace(filter.Query)
	return s.repo.ListByPet(ctx, strings.TrimSpace(petID), filter)
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (MedicalRecord, error) {
	for _, p := range []*string{in.Diagnostico, in.Tratamiento, in.Veterinario, in.Notas} {
		if p != nil {
			*p = strings.TrimSpace(*p)
		}
	}
	if err := validation.Struct(in); err != nil {
		return MedicalRecord{}, err
	}

	m, err := s.GetByID(ctx, id)
	if err != nil {
		return MedicalRecord{}, err
	}

	if in.Fecha != nil {
		m.Fecha, _ = validation.ParseISODate(*in.Fecha)
	}
	if in.Hora != nil {
		m.Hora = *in.Hora
	}
	if in.Diagnostico != nil {
		m.Diagnostico = *in.Diagnostico
	}
	if in.Tratamiento != nil {
		m.Tratamiento = *in.Tratamiento
	}
	if in.Veterinario != nil {
		m.Veterinario = *in.Veterinario
		if m.Veterinario == "" {
			m.Veterinario = DefaultVeterinario
		}
	}
	if in.Notas != nil {
		m.Notas = *in.Notas
	}
	m.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, m); err != nil {
		return MedicalRecord{}, apperror.FromStore(err, msgNotFound, "")
	}
	return m, nil
}

func (s *Service) Delete(ctx context.Context, id string) (MedicalRecord, error) {
	m, err := s.GetByID(ctx, id)
	if err != nil {
		return MedicalRecord{}, err
	}
	if err := s.repo.Delete(ctx, m.ID); err != nil {
		return MedicalRecord{}, apperror.FromStore(err, msgNotFound, "")
	}
	return m, nil
}
