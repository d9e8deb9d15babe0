package categories

import "context"

type Repository interface {
	Create(ctx context.Context, c Category) error
	GetByID(ctx context.Context, id string) (Category, error)
	List(ctx context.Context) ([]Category, error)
	Update(ctx context.Context, c Category) error
	Delete(ctx context.Context, id string) error
}
