package products_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vet-clinic-api/internal/adapters/storage/memory"
	"vet-clinic-api/internal/apperror"
	"vet-clinic-api/internal/domain/categories"
	"vet-clinic-api/internal/domain/products"
)

// countingNamer cuenta las búsquedas para verificar la cache de List.
type countingNamer struct {
	inner products.CategoryNamer
	calls int
}

func (c *countingNamer) NameOf(ctx context.Context, id string) (string, bool, error) {
	c.calls++
	return c.inner.NameOf(ctx, id)
}

func setup(t *testing.T) (*products.Service, *categories.Service, *countingNamer) {
	t.Helper()
	cats := categories.NewService(memory.NewCategoryRepo())
	namer := &countingNamer{inner: cats}
	return products.NewService(memory.NewProductRepo(), namer), cats, namer
}

func TestCreate_EmbedsCategory(t *testing.T) {
	svc, cats, _ := setup(t)
	ctx := context.Background()

	c, err := cats.Create(ctx, categories.CreateInput{Name: "Alimentos"})
	require.NoError(t, err)

	d, err := svc.Create(ctx, products.CreateInput{Name: "Croquetas 10kg", Price: 45.5, Stock: 3, CategoryID: c.ID})
	require.NoError(t, err)
	require.NotNil(t, d.Category)
	assert.Equal(t, products.CategoryRef{ID: c.ID, Name: "Alimentos"}, *d.Category)
}

func TestCreate_UnknownCategoryIsAccepted(t *testing.T) {
	svc, _, _ := setup(t)

	d, err := svc.Create(context.Background(), products.CreateInput{Name: "Correa", Price: 10, CategoryID: "no-existe"})
	require.NoError(t, err)
	assert.Equal(t, "no-existe", d.CategoryID)
	assert.Nil(t, d.Category)
}

func TestCreate_Validation(t *testing.T) {
	svc, _, _ := setup(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, products.CreateInput{Name: "", Price: 1})
	assert.True(t, errors.Is(err, apperror.ErrValidation))

	_, err = svc.Create(ctx, products.CreateInput{Name: "Collar", Price: -1})
	assert.True(t, errors.Is(err, apperror.ErrValidation))

	_, err = svc.Create(ctx, products.CreateInput{Name: "Collar", Price: 1, Stock: -2})
	assert.True(t, errors.Is(err, apperror.ErrValidation))
}

func TestList_CachesCategoryLookups(t *testing.T) {
	svc, cats, namer := setup(t)
	ctx := context.Background()

	c, err := cats.Create(ctx, categories.CreateInput{Name: "Juguetes"})
	require.NoError(t, err)
	for _, name := range []string{"Pelota", "Hueso", "Cuerda"} {
		_, err := svc.Create(ctx, products.CreateInput{Name: name, Price: 5, CategoryID: c.ID})
		require.NoError(t, err)
	}

	namer.calls = 0
	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 3)
	assert.Equal(t, 1, namer.calls)
}

func TestDeleteCategory_LeavesDanglingReference(t *testing.T) {
	svc, cats, _ := setup(t)
	ctx := context.Background()

	c, err := cats.Create(ctx, categories.CreateInput{Name: "Farmacia"})
	require.NoError(t, err)
	p, err := svc.Create(ctx, products.CreateInput{Name: "Antipulgas", Price: 20, CategoryID: c.ID})
	require.NoError(t, err)

	_, err = cats.Delete(ctx, c.ID)
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.CategoryID)
	assert.Nil(t, got.Category)
}

func TestUpdate_Partial(t *testing.T) {
	svc, _, _ := setup(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, products.CreateInput{Name: "Shampoo", Price: 8, Stock: 10})
	require.NoError(t, err)

	stock := 0
	up, err := svc.Update(ctx, p.ID, products.UpdateInput{Stock: &stock})
	require.NoError(t, err)
	assert.Equal(t, 0, up.Stock)
	assert.Equal(t, 8.0, up.Price)

	_, err = svc.Update(ctx, "nope", products.UpdateInput{Stock: &stock})
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
	assert.Equal(t, "Producto no encontrado", apperror.Message(err))
}
