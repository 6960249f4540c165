package httpx

import (
	"errors"

	"ledger-backend/internal/ledger"
	"ledger-backend/internal/logger"

	"github.com/gofiber/fiber/v2"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// ErrorHandler is the fiber error handler. It is the only place ledger errors
// are turned into HTTP statuses.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var (
		fe *fiber.Error
		ve *ledger.ValidationError
		pe *ledger.PersistenceError
	)

	switch {
	case errors.As(err, &fe):
		return c.Status(fe.Code).JSON(ErrorResponse{Error: fe.Message})
	case errors.As(err, &ve):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: ve.Message, Field: ve.Field})
	case errors.Is(err, ledger.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: err.Error()})
	case errors.Is(err, ledger.ErrIntegrityConflict):
		return c.Status(fiber.StatusConflict).JSON(ErrorResponse{Error: err.Error()})
	case errors.As(err, &pe):
		// already logged by the ledger
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "internal server error"})
	}

	log := logger.WithComponent("http")
	log.Error().Err(err).
		Str("request_id", RequestID(c)).
		Str("path", c.Path()).
		Msg("unhandled error")
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "internal server error"})
}
