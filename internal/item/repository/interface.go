package repository

import (
	"context"

	"fast-generic-api/internal/item"
)

// Repository is the composed interface for the item data store.
type Repository interface {
	ItemRepository
}

// ItemRepository defines all data access methods for the Item entity.
type ItemRepository interface {
	CreateItem(ctx context.Context, opt CreateItemOptions) (item.Item, error)
	GetOneItem(ctx context.Context, opt GetOneItemOptions) (item.Item, error)
	ListItems(ctx context.Context, opt ListItemsOptions) ([]item.Item, int, error)
	UpdateItem(ctx context.Context, opt UpdateItemOptions) (item.Item, error)
	DeleteItem(ctx context.Context, id int64) error
	RestoreItem(ctx context.Context, id int64) (item.Item, error)
}
