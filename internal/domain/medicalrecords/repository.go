package medicalrecords

import (
	"context"
	"strings"
	"time"
)

type Repository interface {
	Create(ctx context.Context, m MedicalRecord) error
	GetByID(ctx context.Context, id string) (MedicalRecord, error)
	List(ctx context.Context) ([]MedicalRecord, error)
	ListByPet(ctx context.Context, petID string, filter ListFilter) ([]MedicalRecord, error)
	Update(ctx context.Context, m MedicalRecord) error
	Delete(ctx context.Context, id string) error
}

// ListFilter: campos vacíos no filtran. Orden: fecha desc, hora desc.
type ListFilter struct {
	From  *time.Time
	To    *time.Time
	Query string // diagnóstico/tratamiento/notas, case-insensitive
	Limit int    // 0 = sin límite
}

// Matches aplica el filtro en memoria (lo usan los repos que no traducen a SQL).
func (f ListFilter) Matches(m MedicalRecord) bool {
	if f.From != nil && m.Fecha.Before(*f.From) {
		return false
	}
	if f.To != nil && m.Fecha.After(*f.To) {
		return false
	}
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		hit := false
		for _, field := range []string{m.Diagnostico, m.Tratamiento, m.Notas} {
			if strings.Contains(strings.ToLower(field), q) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	return true
}
