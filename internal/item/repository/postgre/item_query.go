package postgre

import (
	"fmt"
	"strings"

	repo "fast-generic-api/internal/item/repository"
)

// buildGetOneQuery builds WHERE clause + args for GetOneItem.
// ID and Name are applied as AND conditions when given.
func (r *implRepository) buildGetOneQuery(opt repo.GetOneItemOptions) (string, []any) {
	var conditions []string
	var args []any
	idx := 1

	if opt.ID != 0 {
		conditions = append(conditions, fmt.Sprintf("id = $%d", idx))
		args = append(args, opt.ID)
		idx++
	}
	if name, ok := opt.Name.Get(); ok {
		conditions = append(conditions, fmt.Sprintf("name = $%d", idx))
		args = append(args, name)
	}
	if !opt.IncludeDeleted {
		conditions = append(conditions, "is_deleted = FALSE")
	}

	if len(conditions) == 0 {
		return "1=1", args
	}
	return strings.Join(conditions, " AND "), args
}

// buildCountQuery builds WHERE clause + args for counting Items (no pagination).
func (r *implRepository) buildCountQuery(opt repo.ListItemsOptions) (string, []any) {
	if !opt.IncludeDeleted {
		return "is_deleted = FALSE", nil
	}
	return "1=1", nil
}

// buildListQuery builds the full WHERE + ORDER + LIMIT + OFFSET clause for ListItems.
func (r *implRepository) buildListQuery(opt repo.ListItemsOptions) (string, []any) {
	var parts []string
	var args []any
	idx := 1

	if !opt.IncludeDeleted {
		parts = append(parts, "WHERE is_deleted = FALSE")
	}

	parts = append(parts, "ORDER BY id ASC")

	if opt.Limit > 0 {
		parts = append(parts, fmt.Sprintf("LIMIT $%d", idx))
		args = append(args, opt.Limit)
		idx++
	}
	if opt.Offset > 0 {
		parts = append(parts, fmt.Sprintf("OFFSET $%d", idx))
		args = append(args, opt.Offset)
	}

	return strings.Join(parts, " "), args
}
