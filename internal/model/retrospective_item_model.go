package model

import (
	"time"

	"github.com/google/uuid"
)

type RetrospectiveItem struct {
	Id              uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RetrospectiveId uuid.UUID  `gorm:"type:uuid;not null;index:idx_retro_items_scope,priority:1"`
	Category        string     `gorm:"type:varchar(20);not null;index:idx_retro_items_scope,priority:2"`
	Content         string     `gorm:"type:text;not null"`
	AuthorId        *uuid.UUID `gorm:"type:uuid;index"`
	ClusterId       int        `gorm:"not null;default:0"`
	XMinimized      int        `gorm:"not null;default:0"`
	YMinimized      int        `gorm:"not null;default:0"`
	XMaximized      int        `gorm:"not null;default:0"`
	YMaximized      int        `gorm:"not null;default:0"`
	CreatedAt       time.Time  `gorm:"autoCreateTime"`

	// Relationships
	Retrospective *Retrospective `gorm:"foreignKey:RetrospectiveId;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Author        *User          `gorm:"foreignKey:AuthorId;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
}

func (RetrospectiveItem) TableName() string {
	return "retrospective_items"
}
