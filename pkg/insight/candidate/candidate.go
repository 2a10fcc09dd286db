// Package candidate parses and validates generated action items. A response is
// accepted as a whole or rejected as a whole.
package candidate

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var ErrInvalidOutput = errors.New("invalid generation output")

// InvalidOutputError carries the raw model text for diagnostics.
type InvalidOutputError struct {
	Raw string
	Err error
}

func (e *InvalidOutputError) Error() string {
	return fmt.Sprintf("%s: %v", ErrInvalidOutput, e.Err)
}

func (e *InvalidOutputError) Unwrap() error {
	return e.Err
}

func (e *InvalidOutputError) Is(target error) bool {
	return target == ErrInvalidOutput
}

// Item is one generated action item before it is persisted.
type Item struct {
	Content   string
	Category  string // informational only
	ClusterId *int
}

type Batch []Item

// Wire shapes. Pointers distinguish a missing key from an empty value.
type wireBatch struct {
	RetroItems []*wireItem `json:"retro_items" validate:"required,dive,required"`
}

type wireItem struct {
	Content   *string `json:"content" validate:"required"`
	Category  *string `json:"category" validate:"required"`
	ClusterId *int    `json:"cluster_id"`
}

var validate = validator.New()

// Parse decodes raw as a Candidate Batch. On any error the batch is nil.
func Parse(raw string) (Batch, error) {
	var wire wireBatch
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		return nil, &InvalidOutputError{Raw: raw, Err: err}
	}
	if err := validate.Struct(&wire); err != nil {
		return nil, &InvalidOutputError{Raw: raw, Err: err}
	}

	batch := make(Batch, len(wire.RetroItems))
	for i, w := range wire.RetroItems {
		batch[i] = Item{
			Content:   *w.Content,
			Category:  *w.Category,
			ClusterId: w.ClusterId,
		}
	}
	return batch, nil
}
