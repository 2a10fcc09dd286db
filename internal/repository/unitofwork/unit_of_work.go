package unitofwork

import (
	"context"

	"retro-board-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	RetrospectiveRepository() contract.RetrospectiveRepository
	RetrospectiveItemRepository() contract.RetrospectiveItemRepository
}
