package dto

import (
	"time"

	"github.com/google/uuid"
)

type ClusterAssignment struct {
	ItemId    uuid.UUID `json:"item_id"`
	Content   string    `json:"content"`
	ClusterId int       `json:"cluster_id"`
}

type ClusterItemsResponse struct {
	RetrospectiveId uuid.UUID           `json:"retrospective_id"`
	Category        string              `json:"category"`
	Labels          []int               `json:"labels"` // same order as Items
	ClusterCount    int                 `json:"cluster_count"`
	Items           []ClusterAssignment `json:"items"`
	Applied         bool                `json:"applied"` // true once labels were written to the store
}

type GenerateActionItemsRequest struct {
	RetrospectiveId uuid.UUID
	Host            string // optional per-call endpoint override
	Model           string // optional per-call model override
}

type RetrospectiveItemResponse struct {
	Id              uuid.UUID  `json:"id"`
	RetrospectiveId uuid.UUID  `json:"retrospective_id"`
	Category        string     `json:"category"`
	Content         string     `json:"content"`
	AuthorId        *uuid.UUID `json:"author_id"`
	ClusterId       int        `json:"cluster_id"`
	XMinimized      int        `json:"x_minimized"`
	YMinimized      int        `json:"y_minimized"`
	XMaximized      int        `json:"x_maximized"`
	YMaximized      int        `json:"y_maximized"`
	CreatedAt       time.Time  `json:"created_at"`
}

type GenerateActionItemsResponse struct {
	RetrospectiveId uuid.UUID                   `json:"retrospective_id"`
	SourceItemCount int                         `json:"source_item_count"` // notes the prompt was built from
	Items           []RetrospectiveItemResponse `json:"items"`
}

type EnsureServiceUserRequest struct {
	Username string
	Email    string
	Force    bool // delete and recreate an existing user
}

type EnsureServiceUserResponse struct {
	Id       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Created  bool      `json:"created"`
	Replaced bool      `json:"replaced"`
}
