package repository

import "fast-generic-api/pkg/serializer"

// CreateItemOptions holds parameters for inserting a new Item.
type CreateItemOptions struct {
	Name        string
	Description serializer.Optional[string]
}

// GetOneItemOptions holds filter parameters for fetching a single Item.
// A non-zero ID and a set Name are applied as AND conditions. Soft-deleted
// rows are skipped unless IncludeDeleted is set.
type GetOneItemOptions struct {
	ID             int64
	Name           serializer.Optional[string]
	IncludeDeleted bool
}

// ListItemsOptions holds filter and pagination parameters for listing Items.
type ListItemsOptions struct {
	IncludeDeleted bool
	Limit          int
	Offset         int
}

// UpdateItemOptions holds the full new state of an Item's mutable fields.
type UpdateItemOptions struct {
	ID          int64
	Name        string
	Description serializer.Optional[string]
}
