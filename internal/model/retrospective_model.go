package model

import (
	"time"

	"github.com/google/uuid"
)

type Retrospective struct {
	Id          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title       string     `gorm:"type:varchar(255);not null"`
	Description string     `gorm:"type:text"`
	Status      string     `gorm:"type:varchar(20);not null;default:'active'"`
	CreatedById *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt   time.Time  `gorm:"autoCreateTime"`
	CompletedAt *time.Time

	// Relationships
	CreatedBy *User `gorm:"foreignKey:CreatedById;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
}

func (Retrospective) TableName() string {
	return "retrospectives"
}
