package postgre

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fast-generic-api/internal/item"
	repo "fast-generic-api/internal/item/repository"
)

const itemColumns = `id, name, description, is_deleted`

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(s scanner) (item.Item, error) {
	var it item.Item
	err := s.Scan(&it.ID, &it.Name, &it.Description, &it.IsDeleted)
	return it, err
}

// CreateItem inserts a new Item row and returns the created entity.
func (r *implRepository) CreateItem(ctx context.Context, opt repo.CreateItemOptions) (item.Item, error) {
	const query = `
		INSERT INTO items (name, description, is_deleted, created_at, updated_at)
		VALUES ($1, $2, FALSE, NOW(), NOW())
		RETURNING ` + itemColumns

	it, err := scanItem(r.db.QueryRowContext(ctx, query, opt.Name, opt.Description))
	if isUniqueViolation(err) {
		return item.Item{}, item.ErrDuplicateName
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("CreateItem"), err)
		return item.Item{}, repo.ErrFailedToInsert
	}
	return it, nil
}

// GetOneItem retrieves a single Item by the provided filters (AND condition).
// Returns zero-value Item (ID == 0) when not found.
func (r *implRepository) GetOneItem(ctx context.Context, opt repo.GetOneItemOptions) (item.Item, error) {
	if opt.ID == 0 && !opt.Name.IsSet() {
		return item.Item{}, nil
	}

	mods, args := r.buildGetOneQuery(opt)
	query := fmt.Sprintf("SELECT %s FROM items WHERE %s LIMIT 1", itemColumns, mods)

	it, err := scanItem(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return item.Item{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetOneItem"), err)
		return item.Item{}, repo.ErrFailedToGet
	}
	return it, nil
}

// ListItems returns a page of Items and the total count.
func (r *implRepository) ListItems(ctx context.Context, opt repo.ListItemsOptions) ([]item.Item, int, error) {
	countMods, countArgs := r.buildCountQuery(opt)
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM items WHERE %s", countMods)
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		r.l.Errorf(ctx, "%s count: %v", r.dsn("ListItems"), err)
		return nil, 0, repo.ErrFailedToList
	}

	mods, args := r.buildListQuery(opt)
	query := fmt.Sprintf("SELECT %s FROM items %s", itemColumns, mods)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("ListItems"), err)
		return nil, 0, repo.ErrFailedToList
	}
	defer rows.Close()

	items := []item.Item{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			r.l.Errorf(ctx, "%s scan: %v", r.dsn("ListItems"), err)
			return nil, 0, repo.ErrFailedToList
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "%s rows: %v", r.dsn("ListItems"), err)
		return nil, 0, repo.ErrFailedToList
	}
	return items, total, nil
}

// UpdateItem writes name and description of a live Item and returns it.
func (r *implRepository) UpdateItem(ctx context.Context, opt repo.UpdateItemOptions) (item.Item, error) {
	const query = `
		UPDATE items
		SET name = $1, description = $2, updated_at = NOW()
		WHERE id = $3 AND is_deleted = FALSE
		RETURNING ` + itemColumns

	it, err := scanItem(r.db.QueryRowContext(ctx, query, opt.Name, opt.Description, opt.ID))
	if errors.Is(err, sql.ErrNoRows) {
		return item.Item{}, nil
	}
	if isUniqueViolation(err) {
		return item.Item{}, item.ErrDuplicateName
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("UpdateItem"), err)
		return item.Item{}, repo.ErrFailedToUpdate
	}
	return it, nil
}

// DeleteItem soft-deletes an Item by ID.
func (r *implRepository) DeleteItem(ctx context.Context, id int64) error {
	const query = `UPDATE items SET is_deleted = TRUE, updated_at = NOW() WHERE id = $1 AND is_deleted = FALSE`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("DeleteItem"), err)
		return repo.ErrFailedToDelete
	}
	return nil
}

// RestoreItem clears the deletion flag and returns the Item.
func (r *implRepository) RestoreItem(ctx context.Context, id int64) (item.Item, error) {
	const query = `
		UPDATE items
		SET is_deleted = FALSE, updated_at = NOW()
		WHERE id = $1 AND is_deleted = TRUE
		RETURNING ` + itemColumns

	it, err := scanItem(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return item.Item{}, nil
	}
	if isUniqueViolation(err) {
		return item.Item{}, item.ErrDuplicateName
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("RestoreItem"), err)
		return item.Item{}, repo.ErrFailedToRestore
	}
	return it, nil
}
