package usecase

import (
	"fast-generic-api/internal/item/repository"
	"fast-generic-api/pkg/log"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// implUseCase is the private implementation of item.UseCase.
type implUseCase struct {
	repo repository.Repository
	l    log.Logger
}

// New creates a new item UseCase implementation.
func New(repo repository.Repository, l log.Logger) *implUseCase {
	return &implUseCase{
		repo: repo,
		l:    l,
	}
}
