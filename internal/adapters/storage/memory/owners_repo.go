package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"vet-clinic-api/internal/domain/owners"
)

type ownerRepo struct {
	mu      sync.RWMutex
	byID    map[string]owners.Owner
	byEmail map[string]string // email -> id
}

func NewOwnerRepo() owners.Repository {
	return &ownerRepo{
		byID:    make(map[string]owners.Owner),
		byEmail: make(map[string]string),
	}
}

func (r *ownerRepo) Create(ctx context.Context, o owners.Owner) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(o.Email)
	if _, exists := r.byID[o.ID]; exists {
		return ErrDuplicate
	}
	if _, taken := r.byEmail[key]; taken {
		return ErrDuplicate
	}
	r.byID[o.ID] = o
	r.byEmail[key] = o.ID
	return nil
}

func (r *ownerRepo) GetByID(ctx context.Context, id string) (owners.Owner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.byID[id]
	if !ok {
		return owners.Owner{}, ErrNotFound
	}
	return o, nil
}

func (r *ownerRepo) List(ctx context.Context) ([]owners.Owner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]owners.Owner, 0, len(r.byID))
	for _, o := range r.byID {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *ownerRepo) Update(ctx context.Context, o owners.Owner) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, ok := r.byID[o.ID]
	if !ok {
		return ErrNotFound
	}
	key := strings.ToLower(o.Email)
	if id, taken := r.byEmail[key]; taken && id != o.ID {
		return ErrDuplicate
	}

	delete(r.byEmail, strings.ToLower(prev.Email))
	r.byEmail[key] = o.ID
	r.byID[o.ID] = o
	return nil
}

func (r *ownerRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	delete(r.byEmail, strings.ToLower(o.Email))
	delete(r.byID, id)
	return nil
}
