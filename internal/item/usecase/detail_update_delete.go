package usecase

import (
	"context"
	"errors"

	"fast-generic-api/internal/item"
	repo "fast-generic-api/internal/item/repository"
)

// Detail retrieves a live Item by ID. Returns ErrItemNotFound when not found.
func (uc *implUseCase) Detail(ctx context.Context, id int64) (item.Item, error) {
	return uc.getLive(ctx, id)
}

// Update applies the present fields of input to a live Item.
// An empty update returns the Item unchanged without writing.
// A null name fails with ErrNullName since an Item always has a name.
func (uc *implUseCase) Update(ctx context.Context, id int64, input item.ItemUpdate) (item.Item, error) {
	if input.Name.IsNull() {
		return item.Item{}, item.ErrNullName
	}

	existing, err := uc.getLive(ctx, id)
	if err != nil {
		return item.Item{}, err
	}
	if input.Empty() {
		return existing, nil
	}

	next := input.Apply(existing)
	if next.Name != existing.Name {
		if err := uc.ensureNameFree(ctx, next.Name, id); err != nil {
			return item.Item{}, err
		}
	}

	updated, err := uc.repo.UpdateItem(ctx, repo.UpdateItemOptions{
		ID:          id,
		Name:        next.Name,
		Description: next.Description,
	})
	if err != nil {
		if !errors.Is(err, item.ErrDuplicateName) {
			uc.l.Errorf(ctx, "uc.Update UpdateItem: %v", err)
		}
		return item.Item{}, err
	}
	if updated.ID == 0 {
		// deleted between the read and the write
		return item.Item{}, item.ErrItemNotFound
	}
	return updated, nil
}

// Delete soft-deletes a live Item. Returns ErrItemNotFound when not found.
func (uc *implUseCase) Delete(ctx context.Context, id int64) error {
	if _, err := uc.getLive(ctx, id); err != nil {
		return err
	}
	if err := uc.repo.DeleteItem(ctx, id); err != nil {
		uc.l.Errorf(ctx, "uc.Delete DeleteItem: %v", err)
		return err
	}
	uc.l.Infof(ctx, "uc.Delete: item %d deleted", id)
	return nil
}

// Restore brings back a soft-deleted Item.
func (uc *implUseCase) Restore(ctx context.Context, id int64) (item.Item, error) {
	existing, err := uc.repo.GetOneItem(ctx, repo.GetOneItemOptions{ID: id, IncludeDeleted: true})
	if err != nil {
		uc.l.Errorf(ctx, "uc.Restore GetOneItem: %v", err)
		return item.Item{}, err
	}
	if existing.ID == 0 {
		return item.Item{}, item.ErrItemNotFound
	}
	if !existing.IsDeleted {
		return item.Item{}, item.ErrItemNotDeleted
	}
	if err := uc.ensureNameFree(ctx, existing.Name, id); err != nil {
		return item.Item{}, err
	}

	restored, err := uc.repo.RestoreItem(ctx, id)
	if err != nil {
		if !errors.Is(err, item.ErrDuplicateName) {
			uc.l.Errorf(ctx, "uc.Restore RestoreItem: %v", err)
		}
		return item.Item{}, err
	}
	if restored.ID == 0 {
		return item.Item{}, item.ErrItemNotDeleted
	}
	return restored, nil
}
