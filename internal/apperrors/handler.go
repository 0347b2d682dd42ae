package apperrors

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse is the uniform wire format for every failure. Detail
// carries the underlying error text and is omitted in production mode.
type ErrorResponse struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

var statusByKind = map[Kind]int{
	KindValidation: fiber.StatusBadRequest,
	KindAuth:       fiber.StatusUnauthorized,
	KindForbidden:  fiber.StatusForbidden,
	KindNotFound:   fiber.StatusNotFound,
	KindConflict:   fiber.StatusBadRequest, // duplicate email reports through the 400 path
	KindInternal:   fiber.StatusInternalServerError,
}

var titleByStatus = map[int]string{
	fiber.StatusBadRequest:          "Validation Failed",
	fiber.StatusUnauthorized:        "Unauthorized",
	fiber.StatusForbidden:           "Forbidden",
	fiber.StatusNotFound:            "Not Found",
	fiber.StatusInternalServerError: "Server Error",
}

// NewFiberHandler returns the fiber error handler that turns service
// errors into the uniform JSON error body. It is the single point where
// internal error kinds become the wire contract; no route handler
// writes its own error body.
func NewFiberHandler(production bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := statusByKind[KindOf(err)]
		message := err.Error()

		var appErr *Error
		if errors.As(err, &appErr) {
			message = appErr.Message
		} else if fiberErr, ok := err.(*fiber.Error); ok {
			// Router-level errors (unknown path, method not allowed).
			status = fiberErr.Code
			message = fiberErr.Message
		}

		if status == fiber.StatusInternalServerError {
			log.Printf("internal error on %s %s: %v", c.Method(), c.Path(), err)
		}

		resp := ErrorResponse{
			Title:   titleByStatus[status],
			Message: message,
		}
		if resp.Title == "" {
			resp.Title = "Error"
		}
		if !production {
			resp.Detail = err.Error()
		}

		return c.Status(status).JSON(resp)
	}
}
