package mapper

import (
	"retro-board-be/internal/entity"
	"retro-board-be/internal/model"
)

type RetrospectiveItemMapper struct{}

func NewRetrospectiveItemMapper() *RetrospectiveItemMapper {
	return &RetrospectiveItemMapper{}
}

func (m *RetrospectiveItemMapper) ToEntity(i *model.RetrospectiveItem) *entity.RetrospectiveItem {
	if i == nil {
		return nil
	}

	return &entity.RetrospectiveItem{
		Id:              i.Id,
		RetrospectiveId: i.RetrospectiveId,
		Category:        entity.Category(i.Category),
		Content:         i.Content,
		AuthorId:        i.AuthorId,
		ClusterId:       i.ClusterId,
		Position: entity.Position{
			XMinimized: i.XMinimized,
			YMinimized: i.YMinimized,
			XMaximized: i.XMaximized,
			YMaximized: i.YMaximized,
		},
		CreatedAt: i.CreatedAt,
	}
}

func (m *RetrospectiveItemMapper) ToModel(i *entity.RetrospectiveItem) *model.RetrospectiveItem {
	if i == nil {
		return nil
	}

	return &model.RetrospectiveItem{
		Id:              i.Id,
		RetrospectiveId: i.RetrospectiveId,
		Category:        string(i.Category),
		Content:         i.Content,
		AuthorId:        i.AuthorId,
		ClusterId:       i.ClusterId,
		XMinimized:      i.Position.XMinimized,
		YMinimized:      i.Position.YMinimized,
		XMaximized:      i.Position.XMaximized,
		YMaximized:      i.Position.YMaximized,
		CreatedAt:       i.CreatedAt,
	}
}

func (m *RetrospectiveItemMapper) ToEntities(items []*model.RetrospectiveItem) []*entity.RetrospectiveItem {
	entities := make([]*entity.RetrospectiveItem, len(items))
	for i, item := range items {
		entities[i] = m.ToEntity(item)
	}
	return entities
}
