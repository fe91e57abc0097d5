// Package errors provides structured error handling for the application
package errors

import (
	stderrors "errors"
	"fmt"
	"runtime"
	"strings"
)

// ErrorCode represents an error code
type ErrorCode string

const (
	// Setup errors
	CodeConfiguration ErrorCode = "CONFIGURATION_ERROR"

	// Model reply errors
	CodeResponseFormat ErrorCode = "RESPONSE_FORMAT_ERROR"

	// Client errors
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeNotFound         ErrorCode = "NOT_FOUND"

	// Business domain errors
	CodeRecipeNotFound   ErrorCode = "RECIPE_NOT_FOUND"
	CodeMealPlanNotFound ErrorCode = "MEAL_PLAN_NOT_FOUND"
	CodeMealSlotNotFound ErrorCode = "MEAL_SLOT_NOT_FOUND"
	CodeDraftNotFound    ErrorCode = "DRAFT_NOT_FOUND"

	// Server errors
	CodeDatabaseError ErrorCode = "DATABASE_ERROR"
	CodeInternal      ErrorCode = "INTERNAL_ERROR"
)

// AppError represents an application error with structured information
type AppError struct {
	Code        ErrorCode              `json:"code"`
	Message     string                 `json:"message"`
	Details     string                 `json:"details,omitempty"`
	Remediation string                 `json:"remediation,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
	Cause       error                  `json:"-"`
	StackTrace  string                 `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// IsNotFound reports whether the code belongs to the not-found family.
func (e *AppError) IsNotFound() bool {
	switch e.Code {
	case CodeNotFound, CodeRecipeNotFound, CodeMealPlanNotFound, CodeMealSlotNotFound, CodeDraftNotFound:
		return true
	default:
		return false
	}
}

// WithMetadata adds metadata to the error
func (e *AppError) WithMetadata(key string, value interface{}) *AppError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// WithCause adds a cause error
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithRemediation attaches instructions the end user can follow
func (e *AppError) WithRemediation(remediation string) *AppError {
	e.Remediation = remediation
	return e
}

// NewAppError creates a new application error
func NewAppError(code ErrorCode, message, details string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		Details:    details,
		StackTrace: getStackTrace(),
	}
}

// NewConfigurationError reports a missing or unusable setting
func NewConfigurationError(details, remediation string) *AppError {
	return NewAppError(CodeConfiguration, "Configuration error", details).
		WithRemediation(remediation)
}

// NewResponseFormatError reports a model reply that is not in the requested format
func NewResponseFormatError(details string, cause error) *AppError {
	return NewAppError(
		CodeResponseFormat,
		"Model reply was not in the expected format",
		details,
	).WithCause(cause).
		WithRemediation("Try the request again; the assistant may answer differently next time.")
}

// NewValidationError creates a validation error
func NewValidationError(details string) *AppError {
	return NewAppError(CodeValidationFailed, "Validation failed", details)
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *AppError {
	message := "Resource not found"
	if resource != "" {
		message = fmt.Sprintf("%s not found", resource)
	}
	return NewAppError(CodeNotFound, message, "")
}

// NewInternalError creates an internal error
func NewInternalError(message string) *AppError {
	if message == "" {
		message = "An unexpected error occurred"
	}
	return NewAppError(CodeInternal, message, "")
}

// NewDatabaseError creates a database error
func NewDatabaseError(operation string, cause error) *AppError {
	return NewAppError(
		CodeDatabaseError,
		"Database operation failed",
		fmt.Sprintf("Failed to %s", operation),
	).WithCause(cause)
}

// NewRecipeNotFoundError creates a recipe not found error
func NewRecipeNotFoundError(recipeID uint) *AppError {
	return NewAppError(
		CodeRecipeNotFound,
		"Recipe not found",
		fmt.Sprintf("Recipe with ID %d does not exist", recipeID),
	).WithMetadata("recipe_id", recipeID)
}

// NewMealPlanNotFoundError creates a meal plan not found error
func NewMealPlanNotFoundError(planID uint) *AppError {
	return NewAppError(
		CodeMealPlanNotFound,
		"Meal plan not found",
		fmt.Sprintf("Meal plan with ID %d does not exist", planID),
	).WithMetadata("meal_plan_id", planID)
}

// NewMealSlotNotFoundError creates a meal slot not found error
func NewMealSlotNotFoundError(slotID uint) *AppError {
	return NewAppError(
		CodeMealSlotNotFound,
		"Meal slot not found",
		fmt.Sprintf("Meal slot with ID %d does not exist", slotID),
	).WithMetadata("meal_slot_id", slotID)
}

// NewDraftNotFoundError creates a draft not found error
func NewDraftNotFoundError(draftID string) *AppError {
	return NewAppError(
		CodeDraftNotFound,
		"Recipe draft not found",
		fmt.Sprintf("Draft %s does not exist or has expired", draftID),
	).WithMetadata("draft_id", draftID)
}

// Utility functions

// Wrap wraps an error as an internal error if it's not already an AppError
func Wrap(err error, message string) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}

	return NewInternalError(message).WithCause(err)
}

// Is checks if an error is of a specific error code
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// IsNotFound reports whether err is any not-found AppError
func IsNotFound(err error) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.IsNotFound()
	}
	return false
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

// UserMessage renders err for display to an end user. Each failure class
// produces a distinct sentence; errors that are not AppErrors are treated as
// failures talking to the model provider or another dependency.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var appErr *AppError
	if !stderrors.As(err, &appErr) {
		return fmt.Sprintf("The request could not be completed: %v. Check your network connection and API quota, then try again.", err)
	}

	var msg string
	switch {
	case appErr.Code == CodeConfiguration:
		msg = "ChefWise is not configured"
	case appErr.Code == CodeResponseFormat:
		msg = "The assistant returned an answer that could not be read"
	case appErr.Code == CodeValidationFailed:
		msg = "Some of the provided values are invalid"
	case appErr.IsNotFound():
		msg = appErr.Message
	case appErr.Code == CodeDatabaseError:
		msg = "Saving or loading data failed; no changes were kept"
	default:
		msg = "Something went wrong"
	}

	if appErr.Details != "" {
		msg += ": " + appErr.Details
	}
	msg += "."
	if appErr.Remediation != "" {
		msg += " " + appErr.Remediation
	}
	return msg
}

// getStackTrace captures the current stack trace
func getStackTrace() string {
	const depth = 32
	var pcs [depth]uintptr
	n := runtime.Callers(3, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	var builder strings.Builder
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "pkg/errors") {
			builder.WriteString(fmt.Sprintf("%s:%d %s\n", frame.File, frame.Line, frame.Function))
		}
		if !more {
			break
		}
	}

	return builder.String()
}

// ValidationError represents a field validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Value   interface{} `json:"value"`
	Tag     string      `json:"tag"`
	Message string      `json:"message"`
}

// ValidationErrors represents multiple validation errors
type ValidationErrors []ValidationError

// Error implements the error interface
func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return "validation failed"
	}

	if len(v) == 1 {
		return v[0].Message
	}

	var messages []string
	for _, err := range v {
		messages = append(messages, err.Message)
	}

	return strings.Join(messages, "; ")
}

// NewValidationErrors creates validation errors from validator errors
func NewValidationErrors(errors []ValidationError) *AppError {
	validationErrs := ValidationErrors(errors)

	return NewAppError(
		CodeValidationFailed,
		"Validation failed",
		validationErrs.Error(),
	).WithMetadata("validation_errors", validationErrs)
}
