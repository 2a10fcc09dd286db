package contract

import (
	"context"

	"retro-board-be/internal/entity"
	"retro-board-be/internal/repository/specification"
)

type RetrospectiveRepository interface {
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Retrospective, error)
}
