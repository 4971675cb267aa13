package redis

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/go-redis/redis/v8"

	"fast-generic-api/internal/item"
	repo "fast-generic-api/internal/item/repository"
	"fast-generic-api/pkg/log"
	"fast-generic-api/pkg/serializer"
)

func newTestRepo(t *testing.T) (*implRepository, *goredis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return New(client, log.NewNop()).(*implRepository), client
}

func seed(t *testing.T, r *implRepository, names ...string) []item.Item {
	t.Helper()
	var out []item.Item
	for _, n := range names {
		it, err := r.CreateItem(context.Background(), repo.CreateItemOptions{Name: n})
		if err != nil {
			t.Fatalf("CreateItem(%s): %v", n, err)
		}
		out = append(out, it)
	}
	return out
}

func TestItemKey(t *testing.T) {
	if got := itemKey(42); got != "item:42" {
		t.Errorf("itemKey(42) = %q", got)
	}
}

func TestDecodeNormalizesNullDescription(t *testing.T) {
	it, err := decode([]byte(`{"id":3,"name":"Widget","description":null,"is_deleted":true}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := item.Item{ID: 3, Name: "Widget", IsDeleted: true}
	if it != want {
		t.Errorf("got %+v, want %+v", it, want)
	}
}

func TestDecodeKeepsDescription(t *testing.T) {
	it, err := decode([]byte(`{"id":3,"name":"Widget","description":"blue","is_deleted":false}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if it.Description != serializer.Some("blue") {
		t.Errorf("description = %v", it.Description)
	}
}

func TestCreateItem(t *testing.T) {
	ctx := context.Background()
	r, client := newTestRepo(t)

	it, err := r.CreateItem(ctx, repo.CreateItemOptions{Name: "Widget", Description: serializer.Some("blue")})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	want := item.Item{ID: 1, Name: "Widget", Description: serializer.Some("blue")}
	if it != want {
		t.Errorf("got %+v, want %+v", it, want)
	}

	if id, _ := client.HGet(ctx, keyNames, "Widget").Int64(); id != 1 {
		t.Errorf("items:names[Widget] = %d, want 1", id)
	}
	for _, key := range []string{keyAll, keyLive} {
		if _, err := client.ZScore(ctx, key, "1").Result(); err != nil {
			t.Errorf("%s missing id 1: %v", key, err)
		}
	}

	if _, err := r.CreateItem(ctx, repo.CreateItemOptions{Name: "Widget"}); !errors.Is(err, item.ErrDuplicateName) {
		t.Errorf("duplicate: expected ErrDuplicateName, got %v", err)
	}
	if id, _ := client.HGet(ctx, keyNames, "Widget").Int64(); id != 1 {
		t.Errorf("duplicate overwrote items:names: got %d", id)
	}
}

func TestGetOneItem(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRepo(t)
	seed(t, r, "a", "b")
	if err := r.DeleteItem(ctx, 2); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}

	tests := []struct {
		name   string
		opt    repo.GetOneItemOptions
		wantID int64
	}{
		{name: "by id", opt: repo.GetOneItemOptions{ID: 1}, wantID: 1},
		{name: "by name", opt: repo.GetOneItemOptions{Name: serializer.Some("a")}, wantID: 1},
		{name: "deleted hidden", opt: repo.GetOneItemOptions{ID: 2}, wantID: 0},
		{name: "deleted by name hidden", opt: repo.GetOneItemOptions{Name: serializer.Some("b")}, wantID: 0},
		{name: "deleted by id included", opt: repo.GetOneItemOptions{ID: 2, IncludeDeleted: true}, wantID: 2},
		{name: "deleted by name included", opt: repo.GetOneItemOptions{Name: serializer.Some("b"), IncludeDeleted: true}, wantID: 2},
		{name: "id and wrong name", opt: repo.GetOneItemOptions{ID: 1, Name: serializer.Some("b")}, wantID: 0},
		{name: "missing", opt: repo.GetOneItemOptions{ID: 99}, wantID: 0},
		{name: "unknown name", opt: repo.GetOneItemOptions{Name: serializer.Some("zz"), IncludeDeleted: true}, wantID: 0},
		{name: "no filter", opt: repo.GetOneItemOptions{}, wantID: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			it, err := r.GetOneItem(ctx, tc.opt)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if it.ID != tc.wantID {
				t.Errorf("got id %d, want %d", it.ID, tc.wantID)
			}
		})
	}
}

func TestListItems(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRepo(t)
	seed(t, r, "a", "b", "c", "d")
	_ = r.DeleteItem(ctx, 2)

	tests := []struct {
		name      string
		opt       repo.ListItemsOptions
		wantIDs   []int64
		wantTotal int
	}{
		{name: "all live", opt: repo.ListItemsOptions{}, wantIDs: []int64{1, 3, 4}, wantTotal: 3},
		{name: "include deleted", opt: repo.ListItemsOptions{IncludeDeleted: true}, wantIDs: []int64{1, 2, 3, 4}, wantTotal: 4},
		{name: "limit", opt: repo.ListItemsOptions{Limit: 2}, wantIDs: []int64{1, 3}, wantTotal: 3},
		{name: "offset", opt: repo.ListItemsOptions{Limit: 2, Offset: 2}, wantIDs: []int64{4}, wantTotal: 3},
		{name: "offset past end", opt: repo.ListItemsOptions{Limit: 2, Offset: 10}, wantIDs: []int64{}, wantTotal: 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			items, total, err := r.ListItems(ctx, tc.opt)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if total != tc.wantTotal {
				t.Errorf("total = %d, want %d", total, tc.wantTotal)
			}
			if len(items) != len(tc.wantIDs) {
				t.Fatalf("got %d items, want %d", len(items), len(tc.wantIDs))
			}
			for i, it := range items {
				if it.ID != tc.wantIDs[i] {
					t.Errorf("items[%d].ID = %d, want %d", i, it.ID, tc.wantIDs[i])
				}
			}
		})
	}
}

func TestUpdateDeleteRestoreIndexes(t *testing.T) {
	ctx := context.Background()
	r, client := newTestRepo(t)
	seed(t, r, "a", "b")

	updated, err := r.UpdateItem(ctx, repo.UpdateItemOptions{ID: 1, Name: "z", Description: serializer.Some("d")})
	if err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}
	if updated.Name != "z" || updated.Description != serializer.Some("d") {
		t.Errorf("unexpected update result %+v", updated)
	}
	if exists, _ := client.HExists(ctx, keyNames, "a").Result(); exists {
		t.Errorf("old name still indexed after rename")
	}
	if id, _ := client.HGet(ctx, keyNames, "z").Int64(); id != 1 {
		t.Errorf("items:names[z] = %d, want 1", id)
	}

	if _, err := r.UpdateItem(ctx, repo.UpdateItemOptions{ID: 2, Name: "z"}); !errors.Is(err, item.ErrDuplicateName) {
		t.Errorf("rename onto live name: expected ErrDuplicateName, got %v", err)
	}

	if err := r.DeleteItem(ctx, 1); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}
	if exists, _ := client.HExists(ctx, keyNames, "z").Result(); exists {
		t.Errorf("deleted name still indexed")
	}
	if _, err := client.ZScore(ctx, keyLive, "1").Result(); !errors.Is(err, goredis.Nil) {
		t.Errorf("deleted id still in items:live")
	}
	if got, err := r.UpdateItem(ctx, repo.UpdateItemOptions{ID: 1, Name: "y"}); err != nil || got.ID != 0 {
		t.Errorf("deleted item must not be updated: %+v, %v", got, err)
	}

	restored, err := r.RestoreItem(ctx, 1)
	if err != nil {
		t.Fatalf("RestoreItem: %v", err)
	}
	if restored.ID != 1 || restored.IsDeleted || restored.Name != "z" {
		t.Errorf("unexpected restore result %+v", restored)
	}
	if id, _ := client.HGet(ctx, keyNames, "z").Int64(); id != 1 {
		t.Errorf("restored name not indexed")
	}
	if again, _ := r.RestoreItem(ctx, 1); again.ID != 0 {
		t.Errorf("restoring a live item should return zero value")
	}
}

func TestRestoreNameTaken(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRepo(t)
	seed(t, r, "a")
	_ = r.DeleteItem(ctx, 1)
	seed(t, r, "a")

	if _, err := r.RestoreItem(ctx, 1); !errors.Is(err, item.ErrDuplicateName) {
		t.Errorf("expected ErrDuplicateName, got %v", err)
	}
}

func TestCreateRetriesWhenNameTakenMidTransaction(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRepo(t)

	fired := false
	r.onBeforeCommit = func(ctx context.Context) {
		if fired {
			return
		}
		fired = true
		if _, err := r.CreateItem(ctx, repo.CreateItemOptions{Name: "Widget"}); err != nil {
			t.Errorf("competing CreateItem: %v", err)
		}
	}

	if _, err := r.CreateItem(ctx, repo.CreateItemOptions{Name: "Widget"}); !errors.Is(err, item.ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}

	items, total, err := r.ListItems(ctx, repo.ListItemsOptions{})
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if total != 1 || items[0].Name != "Widget" {
		t.Errorf("expected a single Widget, got %+v", items)
	}
}

func TestUpdateRetriesWhenDeletedMidTransaction(t *testing.T) {
	ctx := context.Background()
	r, client := newTestRepo(t)
	seed(t, r, "a")

	fired := false
	r.onBeforeCommit = func(ctx context.Context) {
		if fired {
			return
		}
		fired = true
		if err := r.DeleteItem(ctx, 1); err != nil {
			t.Errorf("competing DeleteItem: %v", err)
		}
	}

	got, err := r.UpdateItem(ctx, repo.UpdateItemOptions{ID: 1, Name: "b"})
	if err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}
	if got.ID != 0 {
		t.Errorf("update of a deleted item must not apply, got %+v", got)
	}

	stored, found, err := r.load(ctx, client, 1)
	if err != nil || !found {
		t.Fatalf("load: %v, found=%v", err, found)
	}
	if !stored.IsDeleted || stored.Name != "a" {
		t.Errorf("blob disagrees with delete: %+v", stored)
	}
	if _, err := client.ZScore(ctx, keyLive, "1").Result(); !errors.Is(err, goredis.Nil) {
		t.Errorf("deleted id back in items:live")
	}
	if n, _ := client.HLen(ctx, keyNames).Result(); n != 0 {
		t.Errorf("expected no live names, got %d", n)
	}
}
