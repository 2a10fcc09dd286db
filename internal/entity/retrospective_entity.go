package entity

import (
	"time"

	"github.com/google/uuid"
)

type RetrospectiveStatus string

const (
	RetrospectiveStatusActive    RetrospectiveStatus = "active"
	RetrospectiveStatusCompleted RetrospectiveStatus = "completed"
	RetrospectiveStatusArchived  RetrospectiveStatus = "archived"
)

type Retrospective struct {
	Id          uuid.UUID
	Title       string
	Description string
	Status      RetrospectiveStatus
	CreatedById *uuid.UUID
	CreatedAt   time.Time
	CompletedAt *time.Time
}
