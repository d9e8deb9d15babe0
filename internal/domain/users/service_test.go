package users

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"vet-clinic-api/internal/adapters/auth/password"
	"vet-clinic-api/internal/apperror"
	"vet-clinic-api/internal/ports/auth"
)

func newUsersService() (*Service, *testRepo) {
	repo := newTestRepo()
	return NewService(repo, password.New(bcrypt.MinCost)), repo
}

func TestService_CreateWithRole(t *testing.T) {
	svc, _ := newUsersService()

	u, err := svc.Create(context.Background(), CreateInput{Username: "doc", Email: "doc@example.com", Password: "supersecreta", Role: "Veterinario"})
	require.NoError(t, err)
	assert.Equal(t, auth.RoleVeterinario, u.Role)

	u, err = svc.Create(context.Background(), CreateInput{Username: "rec", Email: "rec@example.com", Password: "supersecreta"})
	require.NoError(t, err)
	assert.Equal(t, auth.RoleRecepcionista, u.Role)

	_, err = svc.Create(context.Background(), CreateInput{Username: "x12", Email: "x@example.com", Password: "supersecreta", Role: "jefe"})
	assert.True(t, errors.Is(err, apperror.ErrValidation))
}

func TestService_UpdateDuplicateExcludesSelf(t *testing.T) {
	svc, _ := newUsersService()
	ctx := context.Background()

	a, err := svc.Create(ctx, CreateInput{Username: "ana", Email: "ana@example.com", Password: "supersecreta"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateInput{Username: "beto", Email: "beto@example.com", Password: "supersecreta"})
	require.NoError(t, err)

	same := "ana@example.com"
	role := "admin"
	updated, err := svc.Update(ctx, a.ID, UpdateInput{Email: &same, Role: &role})
	require.NoError(t, err)
	assert.Equal(t, auth.RoleAdmin, updated.Role)
	assert.Equal(t, a.PasswordHash, updated.PasswordHash)

	taken := "beto"
	_, err = svc.Update(ctx, a.ID, UpdateInput{Username: &taken})
	assert.True(t, errors.Is(err, apperror.ErrDuplicate))
}

func TestService_DeleteSelfRejected(t *testing.T) {
	svc, repo := newUsersService()
	ctx := context.Background()

	admin, err := svc.Create(ctx, CreateInput{Username: "admin", Email: "admin@example.com", Password: "admin1234", Role: "admin"})
	require.NoError(t, err)

	_, err = svc.Delete(ctx, admin.ID, admin.ID)
	require.True(t, errors.Is(err, apperror.ErrValidation))
	assert.Equal(t, "No puedes eliminar tu propia cuenta", apperror.Message(err))
	assert.Len(t, repo.byID, 1)

	other, err := svc.Create(ctx, CreateInput{Username: "rec", Email: "rec@example.com", Password: "supersecreta"})
	require.NoError(t, err)
	deleted, err := svc.Delete(ctx, admin.ID, other.ID)
	require.NoError(t, err)
	assert.Equal(t, other.ID, deleted.ID)
}

func TestService_EnsureAdminIsIdempotent(t *testing.T) {
	svc, repo := newUsersService()
	ctx := context.Background()
	in := CreateInput{Username: "admin", Email: "admin@example.com", Password: "admin1234"}

	u, created, err := svc.EnsureAdmin(ctx, in)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, auth.RoleAdmin, u.Role)

	again, created, err := svc.EnsureAdmin(ctx, in)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, u.ID, again.ID)
	assert.Len(t, repo.byID, 1)
}
