package usecase

import (
	"context"
	"errors"

	"fast-generic-api/internal/item"
	repo "fast-generic-api/internal/item/repository"
)

// Create creates a new Item after checking that no live item uses the name.
// The repository re-checks the name atomically, so a concurrent Create of the
// same name still ends in ErrDuplicateName.
func (uc *implUseCase) Create(ctx context.Context, input item.ItemCreate) (item.Item, error) {
	if err := uc.ensureNameFree(ctx, input.Name, 0); err != nil {
		return item.Item{}, err
	}

	created, err := uc.repo.CreateItem(ctx, repo.CreateItemOptions{
		Name:        input.Name,
		Description: input.Description,
	})
	if err != nil {
		if !errors.Is(err, item.ErrDuplicateName) {
			uc.l.Errorf(ctx, "uc.Create CreateItem: %v", err)
		}
		return item.Item{}, err
	}

	uc.l.Infof(ctx, "uc.Create: item %d created", created.ID)
	return created, nil
}
