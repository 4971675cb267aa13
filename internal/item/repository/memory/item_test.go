package memory_test

import (
	"context"
	"errors"
	"testing"

	"fast-generic-api/internal/item"
	repo "fast-generic-api/internal/item/repository"
	"fast-generic-api/internal/item/repository/memory"
	"fast-generic-api/pkg/serializer"
)

func seed(t *testing.T, r repo.Repository, names ...string) []item.Item {
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

func TestCreateAssignsSequentialIDs(t *testing.T) {
	r := memory.New()
	items := seed(t, r, "a", "b")
	if items[0].ID != 1 || items[1].ID != 2 {
		t.Errorf("unexpected ids %d, %d", items[0].ID, items[1].ID)
	}
	if items[0].IsDeleted {
		t.Errorf("new item must not be deleted")
	}
}

func TestCreateNormalizesNullDescription(t *testing.T) {
	r := memory.New()
	it, _ := r.CreateItem(context.Background(), repo.CreateItemOptions{Name: "a", Description: serializer.Null[string]()})
	if it.Description.IsPresent() {
		t.Errorf("expected absent description, got %v", it.Description)
	}
}

func TestGetOneItem(t *testing.T) {
	ctx := context.Background()
	r := memory.New()
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
		{name: "deleted included", opt: repo.GetOneItemOptions{ID: 2, IncludeDeleted: true}, wantID: 2},
		{name: "id and wrong name", opt: repo.GetOneItemOptions{ID: 1, Name: serializer.Some("b")}, wantID: 0},
		{name: "missing", opt: repo.GetOneItemOptions{ID: 99}, wantID: 0},
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

func TestListItemsPagination(t *testing.T) {
	ctx := context.Background()
	r := memory.New()
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

func TestUpdateDeleteRestore(t *testing.T) {
	ctx := context.Background()
	r := memory.New()
	seed(t, r, "a")

	updated, err := r.UpdateItem(ctx, repo.UpdateItemOptions{ID: 1, Name: "z", Description: serializer.Some("d")})
	if err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}
	if updated.Name != "z" || updated.Description != serializer.Some("d") {
		t.Errorf("unexpected update result %+v", updated)
	}

	if err := r.DeleteItem(ctx, 1); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}
	if got, _ := r.UpdateItem(ctx, repo.UpdateItemOptions{ID: 1, Name: "y"}); got.ID != 0 {
		t.Errorf("deleted item must not be updated")
	}

	restored, err := r.RestoreItem(ctx, 1)
	if err != nil {
		t.Fatalf("RestoreItem: %v", err)
	}
	if restored.ID != 1 || restored.IsDeleted || restored.Name != "z" {
		t.Errorf("unexpected restore result %+v", restored)
	}
	if again, _ := r.RestoreItem(ctx, 1); again.ID != 0 {
		t.Errorf("restoring a live item should return zero value")
	}
}

func TestLiveNameUniqueness(t *testing.T) {
	ctx := context.Background()
	r := memory.New()
	seed(t, r, "a", "b")

	if _, err := r.CreateItem(ctx, repo.CreateItemOptions{Name: "a"}); !errors.Is(err, item.ErrDuplicateName) {
		t.Errorf("create: expected ErrDuplicateName, got %v", err)
	}
	if _, err := r.UpdateItem(ctx, repo.UpdateItemOptions{ID: 2, Name: "a"}); !errors.Is(err, item.ErrDuplicateName) {
		t.Errorf("update: expected ErrDuplicateName, got %v", err)
	}
	if got, err := r.UpdateItem(ctx, repo.UpdateItemOptions{ID: 1, Name: "a"}); err != nil || got.ID != 1 {
		t.Errorf("keeping own name: got %+v, %v", got, err)
	}

	_ = r.DeleteItem(ctx, 1)
	if _, err := r.CreateItem(ctx, repo.CreateItemOptions{Name: "a"}); err != nil {
		t.Fatalf("name of deleted item should be free: %v", err)
	}
	if _, err := r.RestoreItem(ctx, 1); !errors.Is(err, item.ErrDuplicateName) {
		t.Errorf("restore: expected ErrDuplicateName, got %v", err)
	}
}
