package memory

import (
	"sync"

	"fast-generic-api/internal/item"
	"fast-generic-api/internal/item/repository"
)

type implRepository struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]item.Item
}

// New creates an in-process Repository. Data lives as long as the process.
func New() repository.Repository {
	return &implRepository{items: make(map[int64]item.Item)}
}
