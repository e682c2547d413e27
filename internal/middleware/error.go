package middleware

import (
	"errors"
	"net/http"

	"mobility-profile/internal/domain"
	"mobility-profile/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorResponse represents the standard error response structure
type ErrorResponse struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Status  int                    `json:"status"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ValidationErrorResponse represents validation error response
type ValidationErrorResponse struct {
	Code    string                   `json:"code"`
	Message string                   `json:"message"`
	Status  int                      `json:"status"`
	Errors  []domain.ValidationError `json:"errors"`
}

// ErrorHandler renders every error returned by a handler or middleware as JSON.
// Validation failures carry the offending fields, domain errors their mapped status.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		log := logger.Get().With(zap.String("method", c.Method()), zap.String("path", c.Path()))

		var validationErrs domain.ValidationErrors
		if errors.As(err, &validationErrs) {
			log.Debug("Request body rejected", zap.Int("error_count", len(validationErrs)))
			return c.Status(http.StatusBadRequest).JSON(ValidationErrorResponse{
				Code:    string(domain.CodeValidation),
				Message: "Request validation failed",
				Status:  http.StatusBadRequest,
				Errors:  validationErrs,
			})
		}

		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			status := mapDomainErrorToHTTPStatus(domainErr)
			if status >= http.StatusInternalServerError {
				log.Error("Request failed",
					zap.String("code", string(domainErr.Code)),
					zap.String("message", domainErr.Message),
					zap.Error(domainErr.Cause),
				)
			} else {
				log.Debug("Request rejected",
					zap.String("code", string(domainErr.Code)),
					zap.Int("status", status),
				)
			}
			return writeError(c, status, string(domainErr.Code), domainErr.Message, domainErr.Context)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			log.Debug("HTTP error", zap.Int("status", fiberErr.Code), zap.String("message", fiberErr.Message))
			return writeError(c, fiberErr.Code, "HTTP_ERROR", fiberErr.Message, nil)
		}

		log.Error("Unhandled error", zap.Error(err))
		return writeError(c, http.StatusInternalServerError, string(domain.CodeInternal), "Internal server error", nil)
	}
}

func writeError(c *fiber.Ctx, status int, code, message string, details map[string]interface{}) error {
	resp := ErrorResponse{Code: code, Message: message, Status: status}
	if len(details) > 0 {
		resp.Details = details
	}
	return c.Status(status).JSON(resp)
}

// mapDomainErrorToHTTPStatus maps domain errors to HTTP status codes.
// A failed condition is reported as 405: the answer is valid but not allowed yet.
func mapDomainErrorToHTTPStatus(err *domain.DomainError) int {
	switch err.Code {
	case domain.CodeNotFound:
		return http.StatusNotFound
	case domain.CodeConditionNotMet:
		return http.StatusMethodNotAllowed
	case domain.CodeInvalidInput, domain.CodeValidation, domain.CodeMissingField,
		domain.CodeOtherTextRequired, domain.CodeNoResult, domain.CodeDuplicate:
		return http.StatusBadRequest
	case domain.CodeUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
