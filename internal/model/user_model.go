package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username  string    `gorm:"type:varchar(150);not null;uniqueIndex"`
	Email     string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	FullName  string    `gorm:"type:varchar(255)"`
	Role      string    `gorm:"type:varchar(255)"`
	IsActive  bool      `gorm:"not null;default:true"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (User) TableName() string {
	return "users"
}
