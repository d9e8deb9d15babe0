package owners

import (
	"context"
	"errors"
	"testing"
	"time"

	"vet-clinic-api/internal/apperror"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID map[string]Owner
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Owner{}}
}

func (r *testRepo) emailTaken(email, exceptID string) bool {
	for id, o := range r.byID {
		if id != exceptID && o.Email == email {
			return true
		}
	}
	return false
}

func (r *testRepo) Create(ctx context.Context, o Owner) error {
	if r.emailTaken(o.Email, "") {
		return apperror.ErrDuplicate
	}
	r.byID[o.ID] = o
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Owner, error) {
	o, ok := r.byID[id]
	if !ok {
		return Owner{}, apperror.ErrNotFound
	}
	return o, nil
}

func (r *testRepo) List(ctx context.Context) ([]Owner, error) {
	out := make([]Owner, 0, len(r.byID))
	for _, o := range r.byID {
		out = append(out, o)
	}
	return out, nil
}

func (r *testRepo) Update(ctx context.Context, o Owner) error {
	if _, ok := r.byID[o.ID]; !ok {
		return apperror.ErrNotFound
	}
	if r.emailTaken(o.Email, o.ID) {
		return apperror.ErrDuplicate
	}
	r.byID[o.ID] = o
	return nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return apperror.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func newTestService() (*Service, *testRepo) {
	repo := newTestRepo()
	svc := NewService(repo)
	fixed := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }
	return svc, repo
}

func validInput() CreateInput {
	return CreateInput{
		Nombre:   "María López",
		Telefono: "1155554444",
		Email:    "  Maria@Example.COM ",
	}
}

func TestService_Create_NormalizesEmail(t *testing.T) {
	svc, _ := newTestService()

	o, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if o.Email != "maria@example.com" {
		t.Fatalf("expected lowercase email, got %q", o.Email)
	}
	if o.ID == "" || o.CreatedAt.IsZero() || !o.CreatedAt.Equal(o.UpdatedAt) {
		t.Fatalf("expected id and timestamps, got %#v", o)
	}
}

func TestService_Create_Validation(t *testing.T) {
	svc, _ := newTestService()

	in := validInput()
	in.Nombre = "Al"
	in.Telefono = "123"
	_, err := svc.Create(context.Background(), in)
	if !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestService_Create_DuplicateEmailIgnoresCase(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, validInput()); err != nil {
		t.Fatalf("Create #1 error: %v", err)
	}

	in := validInput()
	in.Email = "MARIA@example.com"
	_, err := svc.Create(ctx, in)
	if !errors.Is(err, apperror.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestService_Update_KeepsOmittedFields(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	o, err := svc.Create(ctx, validInput())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	tel := " 1144443333 "
	updated, err := svc.Update(ctx, o.ID, UpdateInput{Telefono: &tel})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.Telefono != "1144443333" {
		t.Fatalf("expected trimmed phone, got %q", updated.Telefono)
	}
	if updated.Nombre != o.Nombre || updated.Email != o.Email {
		t.Fatalf("expected omitted fields unchanged, got %#v", updated)
	}
}

func TestService_Update_NotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Update(context.Background(), "missing", UpdateInput{})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if apperror.Message(err) != "Propietario no encontrado" {
		t.Fatalf("unexpected message %q", apperror.Message(err))
	}
}

func TestService_Delete_ReturnsDeleted(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	o, err := svc.Create(ctx, validInput())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	deleted, err := svc.Delete(ctx, o.ID)
	if err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if deleted.ID != o.ID {
		t.Fatalf("expected deleted owner returned")
	}
	if len(repo.byID) != 0 {
		t.Fatalf("expected repo empty")
	}

	if _, err := svc.Delete(ctx, o.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}
