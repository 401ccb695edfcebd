package utils

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error kinds surfaced across service boundaries
const (
	KindInvalidSplit         = "invalid_split"
	KindUnsupportedSplitType = "unsupported_split_type"
	KindPersistence          = "persistence_error"
	KindValidation           = "validation_error"
	KindNotFound             = "not_found"
	KindInternal             = "internal_error"
)

// AppError represents a custom application error
type AppError struct {
	Kind    string `json:"kind"`
	Code    int    `json:"-"`
	Message string `json:"message"`
	cause   error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.cause
}

// NewInvalidSplitError reports a split config that fails a strategy's precondition
func NewInvalidSplitError(format string, args ...interface{}) *AppError {
	return &AppError{
		Kind:    KindInvalidSplit,
		Code:    http.StatusBadRequest,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewUnsupportedSplitTypeError reports an unknown split type tag
func NewUnsupportedSplitTypeError(splitType string) *AppError {
	return &AppError{
		Kind:    KindUnsupportedSplitType,
		Code:    http.StatusBadRequest,
		Message: fmt.Sprintf("unsupported split type: %s", splitType),
	}
}

// NewPersistenceError wraps a storage failure. The engine never retries these
// since recording shares is not idempotent.
func NewPersistenceError(op string, err error) *AppError {
	return &AppError{
		Kind:    KindPersistence,
		Code:    http.StatusInternalServerError,
		Message: fmt.Sprintf("%s: %v", op, err),
		cause:   err,
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Kind:    KindValidation,
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Kind:    KindNotFound,
		Code:    http.StatusNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

func NewInternalError(message string) *AppError {
	return &AppError{
		Kind:    KindInternal,
		Code:    http.StatusInternalServerError,
		Message: message,
	}
}

// HandleError sends a structured error response, never a raw trace
func HandleError(c *gin.Context, err error) {
	if appErr, ok := err.(*AppError); ok {
		c.JSON(appErr.Code, gin.H{"error": gin.H{
			"kind":    appErr.Kind,
			"message": appErr.Message,
		}})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{
		"kind":    KindInternal,
		"message": "Internal server error",
	}})
}

// HandleSuccess sends a success response
func HandleSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}
