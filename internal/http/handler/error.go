package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"expenseapi/internal/http/middleware"
	"expenseapi/internal/service"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string `json:"request_id"`
	Code      string `json:"code"`
	Message   string `json:"message"`
	Error     string `json:"error,omitempty"`
}

// writeError writes a standardized JSON error response.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "MISSING_DATA", "INVALID_MONTH")
// - message: human-readable message
// - detail: optional fault text; omitted from the body when empty
func writeError(c *fiber.Ctx, status int, code, message, detail string) error {
	return c.Status(status).JSON(errorPayload{
		RequestID: middleware.RequestIDFromCtx(c),
		Code:      code,
		Message:   message,
		Error:     detail,
	})
}

// writeValidationError maps service sentinel errors to 400 responses.
// It reports false when err is not a validation error.
func writeValidationError(c *fiber.Ctx, err error) (bool, error) {
	switch {
	case errors.Is(err, service.ErrMissingData):
		return true, writeError(c, fiber.StatusBadRequest, "MISSING_DATA", "Missing data", "")
	case errors.Is(err, service.ErrInvalidDate):
		return true, writeError(c, fiber.StatusBadRequest, "INVALID_DATE", "Invalid date, expected YYYY-MM-DD", "")
	case errors.Is(err, service.ErrInvalidTime):
		return true, writeError(c, fiber.StatusBadRequest, "INVALID_TIME", "Invalid time, expected HH:MM:SS", "")
	case errors.Is(err, service.ErrMonthRequired):
		return true, writeError(c, fiber.StatusBadRequest, "MONTH_REQUIRED", "Month parameter is required", "")
	case errors.Is(err, service.ErrInvalidMonth):
		return true, writeError(c, fiber.StatusBadRequest, "INVALID_MONTH", "Invalid month", "")
	case errors.Is(err, service.ErrInvalidYear):
		return true, writeError(c, fiber.StatusBadRequest, "INVALID_YEAR", "Invalid year", "")
	}
	return false, nil
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request", "")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found", "")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed", "")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error", "")
		}
	}
}
