// Package apperror holds the workflow error taxonomy shared by the store,
// the engines and the HTTP layer.
package apperror

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is the root of every input error. Nothing is mutated.
	ErrValidation = errors.New("validation failed")

	ErrInvalidKind     = fmt.Errorf("%w: invalid content kind", ErrValidation)
	ErrInvalidLanguage = fmt.Errorf("%w: invalid language", ErrValidation)
	ErrInvalidStatus   = fmt.Errorf("%w: invalid status", ErrValidation)
	ErrInvalidField    = fmt.Errorf("%w: invalid field", ErrValidation)
	ErrInvalidDecision = fmt.Errorf("%w: invalid decision", ErrValidation)

	ErrNotFound        = errors.New("not found")
	ErrNoWorkAvailable = errors.New("no work available")
	ErrConflict        = errors.New("conflict")
	ErrUnauthorized    = errors.New("unauthorized")

	// ErrStore wraps failures coming from the data store.
	ErrStore = errors.New("store failure")
)

// Store wraps a data store error so callers can match it with errors.Is.
func Store(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %v", ErrStore, op, err)
}

// Code returns the machine readable code used in JSON error bodies.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrInvalidKind):
		return "INVALID_KIND"
	case errors.Is(err, ErrInvalidLanguage):
		return "INVALID_LANGUAGE"
	case errors.Is(err, ErrInvalidStatus):
		return "INVALID_STATUS"
	case errors.Is(err, ErrInvalidField):
		return "INVALID_FIELD"
	case errors.Is(err, ErrInvalidDecision):
		return "INVALID_DECISION"
	case errors.Is(err, ErrValidation):
		return "BAD_REQUEST"
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrNoWorkAvailable):
		return "NO_WORK_AVAILABLE"
	case errors.Is(err, ErrConflict):
		return "CONFLICT"
	case errors.Is(err, ErrUnauthorized):
		return "UNAUTHORIZED"
	default:
		return "INTERNAL_ERROR"
	}
}
