package usecase

import (
	"context"

	"fast-generic-api/internal/item"
	repo "fast-generic-api/internal/item/repository"
)

// List returns a page of Items ordered by id.
func (uc *implUseCase) List(ctx context.Context, input item.ListItemsInput) (item.ListItemsOutput, error) {
	limit, offset := uc.page(input.Limit, input.Offset)

	items, total, err := uc.repo.ListItems(ctx, repo.ListItemsOptions{
		IncludeDeleted: input.IncludeDeleted,
		Limit:          limit,
		Offset:         offset,
	})
	if err != nil {
		uc.l.Errorf(ctx, "uc.List ListItems: %v", err)
		return item.ListItemsOutput{}, err
	}
	if items == nil {
		items = []item.Item{}
	}

	return item.ListItemsOutput{
		Items:  items,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}, nil
}
