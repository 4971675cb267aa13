package memory

import (
	"context"
	"sort"

	"fast-generic-api/internal/item"
	repo "fast-generic-api/internal/item/repository"
	"fast-generic-api/pkg/serializer"
)

func (r *implRepository) CreateItem(ctx context.Context, opt repo.CreateItemOptions) (item.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.nameTaken(opt.Name, 0) {
		return item.Item{}, item.ErrDuplicateName
	}

	r.nextID++
	it := item.Item{ID: r.nextID, Name: opt.Name, Description: normalize(opt.Description)}
	r.items[it.ID] = it
	return it, nil
}

func (r *implRepository) GetOneItem(ctx context.Context, opt repo.GetOneItemOptions) (item.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if opt.ID != 0 {
		it, ok := r.items[opt.ID]
		if !ok || !matches(it, opt) {
			return item.Item{}, nil
		}
		return it, nil
	}
	if !opt.Name.IsSet() {
		return item.Item{}, nil
	}
	for _, id := range r.sortedIDs() {
		if it := r.items[id]; matches(it, opt) {
			return it, nil
		}
	}
	return item.Item{}, nil
}

func (r *implRepository) ListItems(ctx context.Context, opt repo.ListItemsOptions) ([]item.Item, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]item.Item, 0, len(r.items))
	for _, id := range r.sortedIDs() {
		it := r.items[id]
		if it.IsDeleted && !opt.IncludeDeleted {
			continue
		}
		all = append(all, it)
	}

	total := len(all)
	start := min(max(opt.Offset, 0), total)
	end := total
	if opt.Limit > 0 {
		end = min(start+opt.Limit, total)
	}

	page := make([]item.Item, end-start)
	copy(page, all[start:end])
	return page, total, nil
}

func (r *implRepository) UpdateItem(ctx context.Context, opt repo.UpdateItemOptions) (item.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	it, ok := r.items[opt.ID]
	if !ok || it.IsDeleted {
		return item.Item{}, nil
	}
	if r.nameTaken(opt.Name, it.ID) {
		return item.Item{}, item.ErrDuplicateName
	}
	it.Name = opt.Name
	it.Description = normalize(opt.Description)
	r.items[it.ID] = it
	return it, nil
}

func (r *implRepository) DeleteItem(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if it, ok := r.items[id]; ok {
		it.IsDeleted = true
		r.items[id] = it
	}
	return nil
}

func (r *implRepository) RestoreItem(ctx context.Context, id int64) (item.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	it, ok := r.items[id]
	if !ok || !it.IsDeleted {
		return item.Item{}, nil
	}
	if r.nameTaken(it.Name, it.ID) {
		return item.Item{}, item.ErrDuplicateName
	}
	it.IsDeleted = false
	r.items[id] = it
	return it, nil
}

// nameTaken reports whether a live item other than self uses name.
// Must be called with the lock held.
func (r *implRepository) nameTaken(name string, self int64) bool {
	for id, it := range r.items {
		if id != self && !it.IsDeleted && it.Name == name {
			return true
		}
	}
	return false
}

// sortedIDs must be called with the lock held.
func (r *implRepository) sortedIDs() []int64 {
	ids := make([]int64, 0, len(r.items))
	for id := range r.items {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func matches(it item.Item, opt repo.GetOneItemOptions) bool {
	if it.IsDeleted && !opt.IncludeDeleted {
		return false
	}
	if name, ok := opt.Name.Get(); ok && it.Name != name {
		return false
	}
	return true
}

func normalize(o serializer.Optional[string]) serializer.Optional[string] {
	if o.IsNull() {
		return serializer.Optional[string]{}
	}
	return o
}
