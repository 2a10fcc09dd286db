package embedding

import (
	"context"
	"errors"
)

var (
	ErrEmptyInput        = errors.New("embedding: no texts to encode")
	ErrDimensionMismatch = errors.New("embedding: vector dimension changed")
)

// Encoder maps texts to fixed-length vectors, one per text, in input order.
// Implementations are built once per process and reused for every call.
type Encoder interface {
	Encode(ctx context.Context, texts []string) ([][]float32, error)
	Model() string
}
