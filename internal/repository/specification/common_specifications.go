package specification

import (
	"retro-board-be/internal/repository/scope"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ByID filters by ID
type ByID struct {
	ID uuid.UUID
}

func (s ByID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id = ?", s.ID)
}

// StableOrder sorts by creation time with the primary key as tie-breaker, so
// repeated reads of an unchanged table return rows in the same order.
type StableOrder struct{}

func (s StableOrder) Apply(db *gorm.DB) *gorm.DB {
	return db.Scopes(scope.OrderByCreatedAsc)
}

// ForUpdate locks the selected rows until the surrounding transaction ends.
type ForUpdate struct{}

func (s ForUpdate) Apply(db *gorm.DB) *gorm.DB {
	return db.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate})
}
