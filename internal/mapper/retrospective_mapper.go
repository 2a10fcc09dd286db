package mapper

import (
	"retro-board-be/internal/entity"
	"retro-board-be/internal/model"
)

type RetrospectiveMapper struct{}

func NewRetrospectiveMapper() *RetrospectiveMapper {
	return &RetrospectiveMapper{}
}

func (m *RetrospectiveMapper) ToEntity(r *model.Retrospective) *entity.Retrospective {
	if r == nil {
		return nil
	}

	return &entity.Retrospective{
		Id:          r.Id,
		Title:       r.Title,
		Description: r.Description,
		Status:      entity.RetrospectiveStatus(r.Status),
		CreatedById: r.CreatedById,
		CreatedAt:   r.CreatedAt,
		CompletedAt: r.CompletedAt,
	}
}
