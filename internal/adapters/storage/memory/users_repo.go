package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"vet-clinic-api/internal/domain/users"
)

type userRepo struct {
	mu         sync.RWMutex
	byID       map[string]users.User
	byEmail    map[string]string
	byUsername map[string]string
}

func NewUserRepo() users.Repository {
	return &userRepo{
		byID:       make(map[string]users.User),
		byEmail:    make(map[string]string),
		byUsername: make(map[string]string),
	}
}

func (r *userRepo) taken(u users.User) bool {
	if id, ok := r.byEmail[strings.ToLower(u.Email)]; ok && id != u.ID {
		return true
	}
	if id, ok := r.byUsername[u.Username]; ok && id != u.ID {
		return true
	}
	return false
}

func (r *userRepo) index(u users.User) {
	r.byEmail[strings.ToLower(u.Email)] = u.ID
	r.byUsername[u.Username] = u.ID
}

func (r *userRepo) unindex(u users.User) {
	delete(r.byEmail, strings.ToLower(u.Email))
	delete(r.byUsername, u.Username)
}

func (r *userRepo) Create(ctx context.Context, u users.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[u.ID]; exists {
		return ErrDuplicate
	}
	if r.taken(u) {
		return ErrDuplicate
	}
	r.byID[u.ID] = u
	r.index(u)
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return users.User{}, ErrNotFound
	}
	return u, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return users.User{}, ErrNotFound
	}
	return r.byID[id], nil
}

func (r *userRepo) List(ctx context.Context) ([]users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]users.User, 0, len(r.byID))
	for _, u := range r.byID {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *userRepo) Update(ctx context.Context, u users.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, ok := r.byID[u.ID]
	if !ok {
		return ErrNotFound
	}
	if r.taken(u) {
		return ErrDuplicate
	}
	r.unindex(prev)
	r.byID[u.ID] = u
	r.index(u)
	return nil
}

func (r *userRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	r.unindex(u)
	delete(r.byID, id)
	return nil
}
