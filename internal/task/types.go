// Package task parses, validates, and updates the task store file.
package task

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MinTitleLength is the minimum number of characters a title must have
// after trimming surrounding whitespace.
const MinTitleLength = 3

// Sentinel errors returned by store operations.
var (
	ErrNotFound       = errors.New("task not found")
	ErrDuplicateTitle = errors.New("duplicate title")
	ErrInvalidTitle   = errors.New("invalid title")
	ErrInvalidID      = errors.New("invalid task id")
)

// Task represents a single tracked task.
type Task struct {
	ID        int    `json:"id" validate:"gte=0"`
	Title     string `json:"title" validate:"required,min=3"`
	Completed bool   `json:"completed"`
}

// validate is the shared validator instance for Task field rules.
var validate = validator.New()

// NormalizeTitle trims surrounding whitespace from a title. Titles are
// compared case-insensitively after normalization.
func NormalizeTitle(title string) string {
	return strings.TrimSpace(title)
}

// titleKey returns the uniqueness key for a title.
func titleKey(title string) string {
	return strings.ToLower(NormalizeTitle(title))
}

// CheckTitle validates a title against the field rules without touching
// the store. It returns ErrInvalidTitle for titles that are empty or
// shorter than MinTitleLength after trimming.
func CheckTitle(title string) error {
	trimmed := NormalizeTitle(title)
	if err := validate.Var(trimmed, fmt.Sprintf("required,min=%d", MinTitleLength)); err != nil {
		return fmt.Errorf("%w: %q must be at least %d characters", ErrInvalidTitle, trimmed, MinTitleLength)
	}
	return nil
}

// Check validates a single task's fields. The store-level rules
// (uniqueness of id and title) are enforced by Store methods.
func (t *Task) Check() error {
	if err := CheckTitle(t.Title); err != nil {
		return err
	}
	if err := validate.Struct(t); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidID, err)
	}
	return nil
}

// Label returns a short human-readable form used in listings and logs.
func (t *Task) Label() string {
	state := " "
	if t.Completed {
		state = "x"
	}
	return fmt.Sprintf("[%s] #%d %s", state, t.ID, t.Title)
}
