package implementation

import (
	"context"
	"errors"

	"retro-board-be/internal/entity"
	"retro-board-be/internal/mapper"
	"retro-board-be/internal/model"
	"retro-board-be/internal/repository/contract"
	"retro-board-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RetrospectiveItemRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.RetrospectiveItemMapper
}

func NewRetrospectiveItemRepository(db *gorm.DB) contract.RetrospectiveItemRepository {
	return &RetrospectiveItemRepositoryImpl{
		db:     db,
		mapper: mapper.NewRetrospectiveItemMapper(),
	}
}

func (r *RetrospectiveItemRepositoryImpl) Create(ctx context.Context, item *entity.RetrospectiveItem) error {
	m := r.mapper.ToModel(item)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*item = *r.mapper.ToEntity(m)
	return nil
}

func (r *RetrospectiveItemRepositoryImpl) UpdateClusterId(ctx context.Context, id uuid.UUID, clusterId int) error {
	// Update (not Updates) so a zero label is still written.
	res := r.db.WithContext(ctx).
		Model(&model.RetrospectiveItem{}).
		Where("id = ?", id).
		Update("cluster_id", clusterId)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *RetrospectiveItemRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.RetrospectiveItem, error) {
	var m model.RetrospectiveItem
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *RetrospectiveItemRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RetrospectiveItem, error) {
	var models []*model.RetrospectiveItem
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *RetrospectiveItemRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.RetrospectiveItem{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
