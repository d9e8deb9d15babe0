package memory

import (
	"context"
	"sort"
	"sync"

	"vet-clinic-api/internal/domain/medicalrecords"
)

type medicalRecordRepo struct {
	mu   sync.RWMutex
	byID map[string]medicalrecords.MedicalRecord
}

func NewMedicalRecordRepo() medicalrecords.Repository {
	return &medicalRecordRepo{
		byID: make(map[string]medicalrecords.MedicalRecord),
	}
}

func (r *medicalRecordRepo) Create(ctx context.Context, m medicalrecords.MedicalRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[m.ID]; exists {
		return ErrDuplicate
	}
	r.byID[m.ID] = m
	return nil
}

func (r *medicalRecordRepo) GetByID(ctx context.Context, id string) (medicalrecords.MedicalRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.byID[id]
	if !ok {
		return medicalrecords.MedicalRecord{}, ErrNotFound
	}
	return m, nil
}

func (r *medicalRecordRepo) List(ctx context.Context) ([]medicalrecords.MedicalRecord, error) {
	return r.ListByPet(ctx, "", medicalrecords.ListFilter{})
}

// ListByPet con petID vacío lista todo. Orden: fecha desc, hora desc (más reciente primero).
func (r *medicalRecordRepo) ListByPet(ctx context.Context, petID string, filter medicalrecords.ListFilter) ([]medicalrecords.MedicalRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]medicalrecords.MedicalRecord, 0)
	for _, m := range r.byID {
		if petID != "" && m.PetID != petID {
			continue
		}
		if !filter.Matches(m) {
			continue
		}
		out = append(out, m)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Fecha.Equal(out[j].Fecha) {
			return out[i].Fecha.After(out[j].Fecha)
		}
		return out[i].Hora > out[j].Hora
	})

	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *medicalRecordRepo) Update(ctx context.Context, m medicalrecords.MedicalRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[m.ID]; !ok {
		return ErrNotFound
	}
	r.byID[m.ID] = m
	return nil
}

func (r *medicalRecordRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}
