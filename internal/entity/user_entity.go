package entity

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id        uuid.UUID
	Username  string
	Email     string
	FullName  string
	Role      string
	IsActive  bool
	CreatedAt time.Time
}
