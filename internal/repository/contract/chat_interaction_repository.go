package contract

import (
	"context"

	"grant-assist-be/internal/entity"
	"grant-assist-be/internal/repository/specification"
)

// ChatInteractionRepository is append-only: there is no update or delete.
type ChatInteractionRepository interface {
	Create(ctx context.Context, interaction *entity.ChatInteraction) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatInteraction, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
