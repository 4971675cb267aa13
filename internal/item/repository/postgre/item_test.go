package postgre

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"

	"fast-generic-api/internal/item"
	repo "fast-generic-api/internal/item/repository"
	"fast-generic-api/pkg/log"
)

// failingDriver answers every statement with a fixed error.
type failingDriver struct{ err error }

func (d failingDriver) Open(string) (driver.Conn, error) { return failingConn(d), nil }

type failingConn struct{ err error }

func (c failingConn) Prepare(string) (driver.Stmt, error) { return failingStmt(c), nil }
func (c failingConn) Close() error                        { return nil }
func (c failingConn) Begin() (driver.Tx, error)           { return nil, c.err }

type failingStmt struct{ err error }

func (s failingStmt) Close() error                               { return nil }
func (s failingStmt) NumInput() int                              { return -1 }
func (s failingStmt) Exec([]driver.Value) (driver.Result, error) { return nil, s.err }
func (s failingStmt) Query([]driver.Value) (driver.Rows, error)  { return nil, s.err }

var driverSeq int

func newFailingRepo(t *testing.T, err error) *implRepository {
	t.Helper()
	driverSeq++
	name := fmt.Sprintf("postgre-failing-%d", driverSeq)
	sql.Register(name, failingDriver{err: err})
	db, openErr := sql.Open(name, "")
	if openErr != nil {
		t.Fatalf("sql.Open: %v", openErr)
	}
	t.Cleanup(func() { db.Close() })
	return &implRepository{db: db, l: log.NewNop()}
}

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"unique violation", &pq.Error{Code: "23505"}, true},
		{"wrapped", fmt.Errorf("insert: %w", &pq.Error{Code: "23505"}), true},
		{"other pq code", &pq.Error{Code: "23503"}, false},
		{"plain error", errors.New("boom"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isUniqueViolation(tt.err); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWritesMapUniqueViolationToDuplicateName(t *testing.T) {
	ctx := context.Background()
	r := newFailingRepo(t, &pq.Error{Code: "23505"})

	if _, err := r.CreateItem(ctx, repo.CreateItemOptions{Name: "Widget"}); !errors.Is(err, item.ErrDuplicateName) {
		t.Errorf("CreateItem: expected ErrDuplicateName, got %v", err)
	}
	if _, err := r.UpdateItem(ctx, repo.UpdateItemOptions{ID: 1, Name: "Widget"}); !errors.Is(err, item.ErrDuplicateName) {
		t.Errorf("UpdateItem: expected ErrDuplicateName, got %v", err)
	}
	if _, err := r.RestoreItem(ctx, 1); !errors.Is(err, item.ErrDuplicateName) {
		t.Errorf("RestoreItem: expected ErrDuplicateName, got %v", err)
	}
}

func TestWritesHideOtherDriverErrors(t *testing.T) {
	ctx := context.Background()
	r := newFailingRepo(t, errors.New("connection reset"))

	if _, err := r.CreateItem(ctx, repo.CreateItemOptions{Name: "Widget"}); !errors.Is(err, repo.ErrFailedToInsert) {
		t.Errorf("CreateItem: expected ErrFailedToInsert, got %v", err)
	}
	if _, err := r.UpdateItem(ctx, repo.UpdateItemOptions{ID: 1, Name: "Widget"}); !errors.Is(err, repo.ErrFailedToUpdate) {
		t.Errorf("UpdateItem: expected ErrFailedToUpdate, got %v", err)
	}
	if _, err := r.RestoreItem(ctx, 1); !errors.Is(err, repo.ErrFailedToRestore) {
		t.Errorf("RestoreItem: expected ErrFailedToRestore, got %v", err)
	}
}
