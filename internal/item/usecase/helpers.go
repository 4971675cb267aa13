package usecase

import (
	"context"

	"fast-generic-api/internal/item"
	repo "fast-generic-api/internal/item/repository"
	"fast-generic-api/pkg/serializer"
)

// getLive fetches a non-deleted Item or ErrItemNotFound.
func (uc *implUseCase) getLive(ctx context.Context, id int64) (item.Item, error) {
	if id <= 0 {
		return item.Item{}, item.ErrItemNotFound
	}
	it, err := uc.repo.GetOneItem(ctx, repo.GetOneItemOptions{ID: id})
	if err != nil {
		uc.l.Errorf(ctx, "uc.getLive GetOneItem: %v", err)
		return item.Item{}, err
	}
	if it.ID == 0 {
		return item.Item{}, item.ErrItemNotFound
	}
	return it, nil
}

// ensureNameFree fails with ErrDuplicateName when a live item other than self uses name.
func (uc *implUseCase) ensureNameFree(ctx context.Context, name string, self int64) error {
	existing, err := uc.repo.GetOneItem(ctx, repo.GetOneItemOptions{Name: serializer.Some(name)})
	if err != nil {
		uc.l.Errorf(ctx, "uc.ensureNameFree GetOneItem: %v", err)
		return err
	}
	if existing.ID != 0 && existing.ID != self {
		return item.ErrDuplicateName
	}
	return nil
}

// page clamps limit to (0, MaxLimit] with DefaultLimit for unset, offset to >= 0.
func (uc *implUseCase) page(limit, offset int) (int, int) {
	switch {
	case limit <= 0:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
