// Package layout places generated notes on the board.
package layout

import "retro-board-be/internal/entity"

// Strategy returns the position of the i-th note of a generated batch.
type Strategy interface {
	Place(index int) entity.Position
}

const (
	DefaultMinimizedSpacing = 100
	DefaultMaximizedSpacing = 50
)

// Row lays notes out on a single row at y=0. It does not look at existing
// notes, so positions depend only on the index.
type Row struct {
	MinimizedSpacing int
	MaximizedSpacing int
}

func NewRow() Row {
	return Row{
		MinimizedSpacing: DefaultMinimizedSpacing,
		MaximizedSpacing: DefaultMaximizedSpacing,
	}
}

func (r Row) Place(index int) entity.Position {
	return entity.Position{
		XMinimized: index * r.MinimizedSpacing,
		YMinimized: 0,
		XMaximized: index * r.MaximizedSpacing,
		YMaximized: 0,
	}
}
