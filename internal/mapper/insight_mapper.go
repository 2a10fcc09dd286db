package mapper

import (
	"retro-board-be/internal/dto"
	"retro-board-be/internal/entity"
)

func ToRetrospectiveItemResponse(i *entity.RetrospectiveItem) dto.RetrospectiveItemResponse {
	return dto.RetrospectiveItemResponse{
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

func ToRetrospectiveItemResponses(items []*entity.RetrospectiveItem) []dto.RetrospectiveItemResponse {
	out := make([]dto.RetrospectiveItemResponse, len(items))
	for i, item := range items {
		out[i] = ToRetrospectiveItemResponse(item)
	}
	return out
}
