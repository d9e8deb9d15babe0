package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"vet-clinic-api/internal/domain/categories"
)

type categoryRepo struct {
	mu     sync.RWMutex
	byID   map[string]categories.Category
	byName map[string]string // lower(name) -> id
}

func NewCategoryRepo() categories.Repository {
	return &categoryRepo{
		byID:   make(map[string]categories.Category),
		byName: make(map[string]string),
	}
}

func nameKey(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func (r *categoryRepo) Create(ctx context.Context, c categories.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[c.ID]; exists {
		return ErrDuplicate
	}
	if _, taken := r.byName[nameKey(c.Name)]; taken {
		return ErrDuplicate
	}
	r.byID[c.ID] = c
	r.byName[nameKey(c.Name)] = c.ID
	return nil
}

func (r *categoryRepo) GetByID(ctx context.Context, id string) (categories.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok {
		return categories.Category{}, ErrNotFound
	}
	return c, nil
}

func (r *categoryRepo) List(ctx context.Context) ([]categories.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]categories.Category, 0, len(r.byID))
	for _, c := range r.byID {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return nameKey(out[i].Name) < nameKey(out[j].Name) })
	return out, nil
}

func (r *categoryRepo) Update(ctx context.Context, c categories.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, ok := r.byID[c.ID]
	if !ok {
		return ErrNotFound
	}
	if id, taken := r.byName[nameKey(c.Name)]; taken && id != c.ID {
		return ErrDuplicate
	}
	delete(r.byName, nameKey(prev.Name))
	r.byName[nameKey(c.Name)] = c.ID
	r.byID[c.ID] = c
	return nil
}

func (r *categoryRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	delete(r.byName, nameKey(c.Name))
	delete(r.byID, id)
	return nil
}
