package specification

import (
	"retro-board-be/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByRetrospectiveID struct {
	RetrospectiveID uuid.UUID
}

func (s ByRetrospectiveID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("retrospective_id = ?", s.RetrospectiveID)
}

type ByCategory struct {
	Category entity.Category
}

func (s ByCategory) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("category = ?", string(s.Category))
}
