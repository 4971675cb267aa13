package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	goredis "github.com/go-redis/redis/v8"

	"fast-generic-api/internal/item"
	repo "fast-generic-api/internal/item/repository"
	"fast-generic-api/pkg/serializer"
)

// CreateItem allocates an id from items:seq and stores the new Item.
// The live-name check and the write share one WATCH transaction on items:names.
func (r *implRepository) CreateItem(ctx context.Context, opt repo.CreateItemOptions) (item.Item, error) {
	id, err := r.client.Incr(ctx, keySeq).Result()
	if err != nil {
		r.l.Errorf(ctx, "%s incr: %v", r.dsn("CreateItem"), err)
		return item.Item{}, repo.ErrFailedToInsert
	}

	it := item.Item{ID: id, Name: opt.Name, Description: normalize(opt.Description)}
	err = r.txn(ctx, func(tx *goredis.Tx) error {
		if err := r.ensureNameFree(ctx, tx, it.Name, id); err != nil {
			return err
		}
		r.beforeCommit(ctx)
		return r.save(ctx, tx, it, func(pipe goredis.Pipeliner) {
			pipe.ZAdd(ctx, keyAll, &goredis.Z{Score: float64(id), Member: id})
			pipe.ZAdd(ctx, keyLive, &goredis.Z{Score: float64(id), Member: id})
			pipe.HSet(ctx, keyNames, it.Name, id)
		})
	}, keyNames)
	if errors.Is(err, item.ErrDuplicateName) {
		return item.Item{}, err
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("CreateItem"), err)
		return item.Item{}, repo.ErrFailedToInsert
	}
	return it, nil
}

// GetOneItem returns the matching Item or a zero value when none matches.
func (r *implRepository) GetOneItem(ctx context.Context, opt repo.GetOneItemOptions) (item.Item, error) {
	id := opt.ID
	name, byName := opt.Name.Get()
	if id == 0 && byName {
		var err error
		id, err = r.client.HGet(ctx, keyNames, name).Int64()
		if errors.Is(err, goredis.Nil) {
			if opt.IncludeDeleted {
				return r.scanByName(ctx, name)
			}
			return item.Item{}, nil
		}
		if err != nil {
			r.l.Errorf(ctx, "%s hget: %v", r.dsn("GetOneItem"), err)
			return item.Item{}, repo.ErrFailedToGet
		}
	}
	if id == 0 {
		return item.Item{}, nil
	}

	it, found, err := r.load(ctx, r.client, id)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetOneItem"), err)
		return item.Item{}, repo.ErrFailedToGet
	}
	if !found || (it.IsDeleted && !opt.IncludeDeleted) || (byName && it.Name != name) {
		return item.Item{}, nil
	}
	return it, nil
}

// ListItems pages through items:live (or items:all) in id order.
func (r *implRepository) ListItems(ctx context.Context, opt repo.ListItemsOptions) ([]item.Item, int, error) {
	setKey := keyLive
	if opt.IncludeDeleted {
		setKey = keyAll
	}

	total, err := r.client.ZCard(ctx, setKey).Result()
	if err != nil {
		r.l.Errorf(ctx, "%s zcard: %v", r.dsn("ListItems"), err)
		return nil, 0, repo.ErrFailedToList
	}

	start := int64(opt.Offset)
	stop := int64(-1)
	if opt.Limit > 0 {
		stop = start + int64(opt.Limit) - 1
	}
	ids, err := r.client.ZRange(ctx, setKey, start, stop).Result()
	if err != nil {
		r.l.Errorf(ctx, "%s zrange: %v", r.dsn("ListItems"), err)
		return nil, 0, repo.ErrFailedToList
	}

	items, err := r.loadMany(ctx, ids)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("ListItems"), err)
		return nil, 0, repo.ErrFailedToList
	}
	return items, int(total), nil
}

// UpdateItem rewrites a live Item and keeps the name index in step.
func (r *implRepository) UpdateItem(ctx context.Context, opt repo.UpdateItemOptions) (item.Item, error) {
	var out item.Item
	err := r.txn(ctx, func(tx *goredis.Tx) error {
		out = item.Item{}
		it, found, err := r.load(ctx, tx, opt.ID)
		if err != nil || !found || it.IsDeleted {
			return err
		}

		oldName := it.Name
		it.Name = opt.Name
		it.Description = normalize(opt.Description)
		if oldName != it.Name {
			if err := r.ensureNameFree(ctx, tx, it.Name, it.ID); err != nil {
				return err
			}
		}

		r.beforeCommit(ctx)
		if err := r.save(ctx, tx, it, func(pipe goredis.Pipeliner) {
			if oldName != it.Name {
				pipe.HDel(ctx, keyNames, oldName)
				pipe.HSet(ctx, keyNames, it.Name, it.ID)
			}
		}); err != nil {
			return err
		}
		out = it
		return nil
	}, itemKey(opt.ID), keyNames)
	if errors.Is(err, item.ErrDuplicateName) {
		return item.Item{}, err
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("UpdateItem"), err)
		return item.Item{}, repo.ErrFailedToUpdate
	}
	return out, nil
}

// DeleteItem flags the Item as deleted and drops it from the live indexes.
func (r *implRepository) DeleteItem(ctx context.Context, id int64) error {
	err := r.txn(ctx, func(tx *goredis.Tx) error {
		it, found, err := r.load(ctx, tx, id)
		if err != nil || !found || it.IsDeleted {
			return err
		}

		it.IsDeleted = true
		r.beforeCommit(ctx)
		return r.save(ctx, tx, it, func(pipe goredis.Pipeliner) {
			pipe.ZRem(ctx, keyLive, id)
			pipe.HDel(ctx, keyNames, it.Name)
		})
	}, itemKey(id), keyNames)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("DeleteItem"), err)
		return repo.ErrFailedToDelete
	}
	return nil
}

// RestoreItem clears the deletion flag and re-indexes the Item.
func (r *implRepository) RestoreItem(ctx context.Context, id int64) (item.Item, error) {
	var out item.Item
	err := r.txn(ctx, func(tx *goredis.Tx) error {
		out = item.Item{}
		it, found, err := r.load(ctx, tx, id)
		if err != nil || !found || !it.IsDeleted {
			return err
		}
		if err := r.ensureNameFree(ctx, tx, it.Name, id); err != nil {
			return err
		}

		it.IsDeleted = false
		r.beforeCommit(ctx)
		if err := r.save(ctx, tx, it, func(pipe goredis.Pipeliner) {
			pipe.ZAdd(ctx, keyLive, &goredis.Z{Score: float64(id), Member: id})
			pipe.HSet(ctx, keyNames, it.Name, id)
		}); err != nil {
			return err
		}
		out = it
		return nil
	}, itemKey(id), keyNames)
	if errors.Is(err, item.ErrDuplicateName) {
		return item.Item{}, err
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("RestoreItem"), err)
		return item.Item{}, repo.ErrFailedToRestore
	}
	return out, nil
}

// txn runs fn under WATCH on keys and retries while a watched key changes
// before EXEC.
func (r *implRepository) txn(ctx context.Context, fn func(tx *goredis.Tx) error, keys ...string) error {
	for i := 0; i < maxTxRetries; i++ {
		err := r.client.Watch(ctx, fn, keys...)
		if !errors.Is(err, goredis.TxFailedErr) {
			return err
		}
	}
	return errTxConflict
}

// ensureNameFree fails with ErrDuplicateName when a live item other than
// self owns name in items:names.
func (r *implRepository) ensureNameFree(ctx context.Context, tx *goredis.Tx, name string, self int64) error {
	owner, err := tx.HGet(ctx, keyNames, name).Int64()
	if errors.Is(err, goredis.Nil) {
		return nil
	}
	if err != nil {
		return err
	}
	if owner != self {
		return item.ErrDuplicateName
	}
	return nil
}

func (r *implRepository) beforeCommit(ctx context.Context) {
	if r.onBeforeCommit != nil {
		r.onBeforeCommit(ctx)
	}
}

// save writes the item blob and any index changes in one MULTI/EXEC.
func (r *implRepository) save(ctx context.Context, tx *goredis.Tx, it item.Item, indexes func(pipe goredis.Pipeliner)) error {
	data, err := json.Marshal(it)
	if err != nil {
		return err
	}
	_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Set(ctx, itemKey(it.ID), data, 0)
		indexes(pipe)
		return nil
	})
	return err
}

func (r *implRepository) load(ctx context.Context, g getter, id int64) (item.Item, bool, error) {
	data, err := g.Get(ctx, itemKey(id)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return item.Item{}, false, nil
	}
	if err != nil {
		return item.Item{}, false, err
	}
	it, err := decode(data)
	if err != nil {
		return item.Item{}, false, err
	}
	return it, true, nil
}

func (r *implRepository) loadMany(ctx context.Context, ids []string) ([]item.Item, error) {
	items := make([]item.Item, 0, len(ids))
	if len(ids) == 0 {
		return items, nil
	}

	pipe := r.client.Pipeline()
	cmds := make([]*goredis.StringCmd, len(ids))
	for i, raw := range ids {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, err
		}
		cmds[i] = pipe.Get(ctx, itemKey(id))
	}
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, goredis.Nil) {
		return nil, err
	}

	for _, cmd := range cmds {
		data, err := cmd.Bytes()
		if errors.Is(err, goredis.Nil) {
			continue
		}
		if err != nil {
			return nil, err
		}
		it, err := decode(data)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

// scanByName walks items:all; deleted names are not indexed.
func (r *implRepository) scanByName(ctx context.Context, name string) (item.Item, error) {
	ids, err := r.client.ZRange(ctx, keyAll, 0, -1).Result()
	if err != nil {
		r.l.Errorf(ctx, "%s zrange: %v", r.dsn("GetOneItem"), err)
		return item.Item{}, repo.ErrFailedToGet
	}
	items, err := r.loadMany(ctx, ids)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetOneItem"), err)
		return item.Item{}, repo.ErrFailedToGet
	}
	for _, it := range items {
		if it.Name == name {
			return it, nil
		}
	}
	return item.Item{}, nil
}

func decode(data []byte) (item.Item, error) {
	var it item.Item
	if err := json.Unmarshal(data, &it); err != nil {
		return item.Item{}, err
	}
	it.Description = normalize(it.Description)
	return it, nil
}

// normalize maps an explicit null to absent; stored items only know set or absent.
func normalize(o serializer.Optional[string]) serializer.Optional[string] {
	if o.IsNull() {
		return serializer.Optional[string]{}
	}
	return o
}
