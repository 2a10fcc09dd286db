package service

import (
	"errors"
	"fmt"
)

var (
	ErrScopeNotFound        = errors.New("scope not found")
	ErrInvalidCategory      = errors.New("invalid category")
	ErrGenerationInProgress = errors.New("action item generation already in progress")
	ErrMaterialization      = errors.New("materialization failed")
)

// MaterializationError reports the batch index whose create failed. The
// whole batch is rolled back when it is returned.
type MaterializationError struct {
	Index int
	Err   error
}

func (e *MaterializationError) Error() string {
	return fmt.Sprintf("%s at item %d: %v", ErrMaterialization, e.Index, e.Err)
}

func (e *MaterializationError) Unwrap() error {
	return e.Err
}

func (e *MaterializationError) Is(target error) bool {
	return target == ErrMaterialization
}
