package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/thuchi/internal/model"
	"github.com/Veraticus/thuchi/internal/service"
)

// Validation errors.
var (
	ErrNilContext       = errors.New("context cannot be nil")
	ErrEmptyString      = errors.New("string parameter cannot be empty")
	ErrNilParameter     = errors.New("parameter cannot be nil")
	ErrInvalidDateRange = errors.New("start date must be before end date")
	ErrInvalidFeedback  = errors.New("invalid teaching example")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateTransaction validates a single transaction before it is appended.
func validateTransaction(txn *model.Transaction) error {
	if txn == nil {
		return fmt.Errorf("%w: transaction", ErrNilParameter)
	}
	return txn.Validate()
}

// validateFeedback validates a teaching example before it is appended.
func validateFeedback(example *model.TeachingExample) error {
	if example == nil {
		return fmt.Errorf("%w: teaching example", ErrNilParameter)
	}
	if !example.Direction.IsValid() {
		return fmt.Errorf("%w: direction %q", ErrInvalidFeedback, example.Direction)
	}
	if strings.TrimSpace(example.Category) == "" {
		return fmt.Errorf("%w: missing category", ErrInvalidFeedback)
	}
	if strings.TrimSpace(example.Description) == "" {
		return fmt.Errorf("%w: missing description", ErrInvalidFeedback)
	}
	return nil
}

// validateFilter ensures the bounds are ordered when both are set.
func validateFilter(filter service.TransactionFilter) error {
	if filter.Start != nil && filter.End != nil && filter.End.Before(*filter.Start) {
		return fmt.Errorf("%w: end date %v is before start date %v", ErrInvalidDateRange, *filter.End, *filter.Start)
	}
	return nil
}
