package services

import (
	"errors"
	"strings"

	"motorcycles-backend/validation"
)

var (
	ErrNotFound            = errors.New("record not found")
	ErrReferenceNotFound   = errors.New("referenced record not found")
	ErrDuplicateSaleNumber = errors.New("sale number already exists")
)

// ErrNotificationsDisabled means no receipt sender is configured.
var ErrNotificationsDisabled = errors.New("notifications are not configured")

// ValidationError carries field violations found while handling a request.
type ValidationError struct {
	Violations validation.Violations
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Violations.Fields(), ", ")
}
