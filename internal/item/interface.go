package item

import "context"

//go:generate mockery --name UseCase
type UseCase interface {
	// Item CRUD
	Create(ctx context.Context, input ItemCreate) (Item, error)
	List(ctx context.Context, input ListItemsInput) (ListItemsOutput, error)
	Detail(ctx context.Context, id int64) (Item, error)
	Update(ctx context.Context, id int64, input ItemUpdate) (Item, error)
	Delete(ctx context.Context, id int64) error

	// Soft-delete recovery
	Restore(ctx context.Context, id int64) (Item, error)
}
