package workflow

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrTransitionDenied is returned when a status change is not present in
	// the transition table.
	ErrTransitionDenied = errors.New("status transition not allowed")

	// ErrInvalidSplitQuantity is returned when a split quantity is zero,
	// negative, or would consume the entire available quantity.
	ErrInvalidSplitQuantity = errors.New("split quantity must be greater than zero and less than the available quantity")
)

// ValidationError collects the missing/invalid fields of one submission. It
// blocks progression; the operator corrects the form and retries.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Problems, "; "))
}

func newValidationError(problems ...string) *ValidationError {
	return &ValidationError{Problems: problems}
}
