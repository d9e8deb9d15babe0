package products

import "context"

type Repository interface {
	Create(ctx context.Context, p Product) error
	GetByID(ctx context.Context, id string) (Product, error)
	List(ctx context.Context) ([]Product, error)
	Update(ctx context.Context, p Product) error
	Delete(ctx context.Context, id string) error
}

// CategoryNamer resuelve el nombre de una categoría (lo implementa categories.Service).
type CategoryNamer interface {
	NameOf(ctx context.Context, id string) (name string, ok bool, err error)
}
