package redis

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/go-redis/redis/v8"

	"fast-generic-api/internal/item/repository"
	"fast-generic-api/pkg/log"
)

const (
	keySeq   = "items:seq"
	keyAll   = "items:all"
	keyLive  = "items:live"
	keyNames = "items:names"
)

const maxTxRetries = 10

var errTxConflict = errors.New("redis transaction retries exhausted")

type implRepository struct {
	client *goredis.Client
	l      log.Logger

	// onBeforeCommit runs inside each write transaction right before EXEC.
	onBeforeCommit func(ctx context.Context)
}

// getter is the read side shared by *goredis.Client and *goredis.Tx.
type getter interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
}

// New creates a Redis-backed Repository for the item domain.
//
// Layout: item:<id> holds the JSON item, items:all and items:live are sorted
// sets scored by id, items:names maps live names to ids.
func New(client *goredis.Client, l log.Logger) repository.Repository {
	if client == nil {
		panic("item/repository/redis: client is required")
	}
	return &implRepository{client: client, l: l}
}

func itemKey(id int64) string {
	return fmt.Sprintf("item:%d", id)
}

func (r *implRepository) dsn(method string) string {
	return fmt.Sprintf("item/repository/redis.%s", method)
}
