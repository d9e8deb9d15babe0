package owners

import "context"

// Repository devuelve apperror.ErrNotFound / apperror.ErrDuplicate (email) sin envolver.
type Repository interface {
	Create(ctx context.Context, o Owner) error
	GetByID(ctx context.Context, id string) (Owner, error)
	List(ctx context.Context) ([]Owner, error)
	Update(ctx context.Context, o Owner) error
	Delete(ctx context.Context, id string) error
}
