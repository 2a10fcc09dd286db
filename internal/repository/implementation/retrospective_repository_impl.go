package implementation

import (
	"context"
	"errors"

	"retro-board-be/internal/entity"
	"retro-board-be/internal/mapper"
	"retro-board-be/internal/model"
	"retro-board-be/internal/repository/contract"
	"retro-board-be/internal/repository/specification"

	"gorm.io/gorm"
)

type RetrospectiveRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.RetrospectiveMapper
}

func NewRetrospectiveRepository(db *gorm.DB) contract.RetrospectiveRepository {
	return &RetrospectiveRepositoryImpl{
		db:     db,
		mapper: mapper.NewRetrospectiveMapper(),
	}
}

func (r *RetrospectiveRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Retrospective, error) {
	var m model.Retrospective
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}
