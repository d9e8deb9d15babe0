package categories_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vet-clinic-api/internal/adapters/storage/memory"
	"vet-clinic-api/internal/apperror"
	"vet-clinic-api/internal/domain/categories"
)

func TestCreate_NameUniqueIgnoringCase(t *testing.T) {
	svc := categories.NewService(memory.NewCategoryRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, categories.CreateInput{Name: "Alimentos"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, categories.CreateInput{Name: "  alimentos "})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrDuplicate))
	assert.Equal(t, "Ya existe una categoría con ese nombre", apperror.Message(err))
}

func TestCreate_Lengths(t *testing.T) {
	svc := categories.NewService(memory.NewCategoryRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, categories.CreateInput{Name: "ab"})
	assert.True(t, errors.Is(err, apperror.ErrValidation))

	_, err = svc.Create(ctx, categories.CreateInput{Name: strings.Repeat("x", 51)})
	assert.True(t, errors.Is(err, apperror.ErrValidation))

	_, err = svc.Create(ctx, categories.CreateInput{Name: "Juguetes", Description: strings.Repeat("d", 201)})
	assert.True(t, errors.Is(err, apperror.ErrValidation))
}

func TestUpdate_RenameKeepsOwnName(t *testing.T) {
	svc := categories.NewService(memory.NewCategoryRepo())
	ctx := context.Background()

	c, err := svc.Create(ctx, categories.CreateInput{Name: "Higiene"})
	require.NoError(t, err)
	other, err := svc.Create(ctx, categories.CreateInput{Name: "Accesorios"})
	require.NoError(t, err)

	// cambiar solo mayúsculas del propio nombre no es duplicado
	name := "HIGIENE"
	up, err := svc.Update(ctx, c.ID, categories.UpdateInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "HIGIENE", up.Name)

	taken := "higiene"
	_, err = svc.Update(ctx, other.ID, categories.UpdateInput{Name: &taken})
	assert.True(t, errors.Is(err, apperror.ErrDuplicate))
}

func TestNameOf(t *testing.T) {
	svc := categories.NewService(memory.NewCategoryRepo())
	ctx := context.Background()

	c, err := svc.Create(ctx, categories.CreateInput{Name: "Farmacia"})
	require.NoError(t, err)

	name, ok, err := svc.NameOf(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Farmacia", name)

	_, err = svc.Delete(ctx, c.ID)
	require.NoError(t, err)

	_, ok, err = svc.NameOf(ctx, c.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDelete_NotFound(t *testing.T) {
	svc := categories.NewService(memory.NewCategoryRepo())

	_, err := svc.Delete(context.Background(), "nope")
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
	assert.Equal(t, "Categoría no encontrada", apperror.Message(err))
}
