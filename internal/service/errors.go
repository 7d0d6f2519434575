package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrCapacityExhausted = errors.New("could not allocate a unique product id")
)

// notFound wraps ErrNotFound with the entity name, e.g. "product not found".
func notFound(entity string) error {
	return fmt.Errorf("%s %w", entity, ErrNotFound)
}

func invalidInput(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, msg)
}

// DuplicateNameError reports a uniqueness violation and the scope it applies to.
type DuplicateNameError struct {
	Scope string // "category", "subcategory", "variant", ...
	Name  string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("%s %q already exists in this scope", e.Scope, e.Name)
}

// DuplicateConfigurationError reports that another variant item of the same
// product already carries the identical option set.
type DuplicateConfigurationError struct {
	Options []string // "Variant: Option" pairs
}

func (e *DuplicateConfigurationError) Error() string {
	return fmt.Sprintf(
		"a product variant with the same configuration already exists. Configuration: %s",
		strings.Join(e.Options, ", "),
	)
}
