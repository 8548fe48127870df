package models

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// APIError represents a standardized error response for the API
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Error code constants
const (
	// General errors
	ErrBadRequest       = "BAD_REQUEST"
	ErrUnauthorized     = "UNAUTHORIZED"
	ErrForbidden        = "FORBIDDEN"
	ErrNotFound         = "NOT_FOUND"
	ErrConflict         = "CONFLICT"
	ErrInternalServer   = "INTERNAL_SERVER_ERROR"
	ErrValidationFailed = "VALIDATION_FAILED"

	// Catalog errors
	ErrCategoryNotFound = "CATEGORY_NOT_FOUND"
	ErrPizzaNotFound    = "PIZZA_NOT_FOUND"

	// Order errors
	ErrOrderNotFound = "ORDER_NOT_FOUND"

	// Bulk operation errors
	ErrMergePrecondition = "MERGE_PRECONDITION"
)

// NewAPIError creates a new API error with the given code and message
func NewAPIError(code, message string, details ...map[string]interface{}) APIError {
	err := APIError{
		Code:    code,
		Message: message,
	}
	if len(details) > 0 {
		err.Details = details[0]
	}
	return err
}

// NewValidationError builds a VALIDATION_FAILED APIError from a binding
// error, naming each offending field. Non-validator errors (e.g. malformed
// JSON) carry the error text instead of field details.
func NewValidationError(err error) APIError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make(map[string]interface{}, len(verrs))
		for _, fe := range verrs {
			switch fe.Tag() {
			case "required":
				details[fe.Field()] = "this field is required"
			case "oneof":
				details[fe.Field()] = fmt.Sprintf("must be one of: %s", fe.Param())
			default:
				details[fe.Field()] = fmt.Sprintf("failed %q validation", fe.Tag())
			}
		}
		return NewAPIError(ErrValidationFailed, "Request validation failed", details)
	}
	return NewAPIError(ErrValidationFailed, "Request validation failed", map[string]interface{}{
		"error": err.Error(),
	})
}
