package unitofwork

import (
	"context"

	"grant-assist-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	DocumentRepository() contract.DocumentRepository
	ChatInteractionRepository() contract.ChatInteractionRepository
}
