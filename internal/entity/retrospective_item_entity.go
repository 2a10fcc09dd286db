package entity

import (
	"time"

	"github.com/google/uuid"
)

type Category string

const (
	CategoryStart   Category = "start"
	CategoryStop    Category = "stop"
	CategoryGood    Category = "good"
	CategoryBad     Category = "bad"
	CategoryActions Category = "actions"
)

var Categories = []Category{
	CategoryStart,
	CategoryStop,
	CategoryGood,
	CategoryBad,
	CategoryActions,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Position holds board coordinates for both presentation scales.
type Position struct {
	XMinimized int
	YMinimized int
	XMaximized int
	YMaximized int
}

// RetrospectiveItem is a single note on the retrospective board.
type RetrospectiveItem struct {
	Id              uuid.UUID
	RetrospectiveId uuid.UUID
	Category        Category
	Content         string
	AuthorId        *uuid.UUID
	ClusterId       int
	Position        Position
	CreatedAt       time.Time
}
