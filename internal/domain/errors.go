package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeMissingField ErrorCode = "MISSING_FIELD"
	CodeValidation   ErrorCode = "VALIDATION_ERROR"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"
	CodeDuplicate    ErrorCode = "DUPLICATE_ENTRY"

	// Poll specific errors
	CodeConditionNotMet   ErrorCode = "CONDITION_NOT_MET"
	CodeOtherTextRequired ErrorCode = "OTHER_TEXT_REQUIRED"
	CodeNoResult          ErrorCode = "NO_RESULT"
)

// ErrDuplicate is returned by repositories when a write hits a unique constraint.
var ErrDuplicate = errors.New("duplicate entry")

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// WithContext attaches a detail that is reported back to the client.
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}

func NewUnauthorizedError(message string) *DomainError {
	return NewError(CodeUnauthorized, message, nil)
}

func NewMissingFieldError(field string) *DomainError {
	return NewError(CodeMissingField, fmt.Sprintf("%s is required", field), nil).WithContext("field", field)
}

func NewConditionNotMetError(message string) *DomainError {
	return NewError(CodeConditionNotMet, message, nil)
}

func NewOtherTextRequiredError(optionID int64) *DomainError {
	return NewError(CodeOtherTextRequired, "option requires free text in 'other'", nil).WithContext("option", optionID)
}

func NewNoResultError() *DomainError {
	return NewError(CodeNoResult, "no result can be computed for this user yet", nil)
}

func NewDuplicateError(message string, cause error) *DomainError {
	return NewError(CodeDuplicate, message, cause)
}

// ErrorCodeOf returns the code of a wrapped DomainError, or CodeInternal.
func ErrorCodeOf(err error) ErrorCode {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return CodeInternal
}

// ValidationError describes a single invalid request field.
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every invalid field of one request.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return "validation failed"
	}
	msg := v[0].Error()
	if len(v) > 1 {
		msg = fmt.Sprintf("%s (and %d more)", msg, len(v)-1)
	}
	return msg
}
