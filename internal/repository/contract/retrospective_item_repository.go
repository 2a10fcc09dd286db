package contract

import (
	"context"

	"retro-board-be/internal/entity"
	"retro-board-be/internal/repository/specification"

	"github.com/google/uuid"
)

type RetrospectiveItemRepository interface {
	Create(ctx context.Context, item *entity.RetrospectiveItem) error
	UpdateClusterId(ctx context.Context, id uuid.UUID, clusterId int) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.RetrospectiveItem, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RetrospectiveItem, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
