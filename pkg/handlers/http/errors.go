package http

import (
	"errors"

	"github.com/NeuralTrust/ChapterGenie/pkg/domain"
	"github.com/NeuralTrust/ChapterGenie/pkg/handlers/http/response"
	"github.com/gofiber/fiber/v2"
)

const ErrInvalidJsonPayload = "invalid JSON payload"

// StatusFor maps a pipeline error onto the HTTP status returned to clients.
func StatusFor(err error) int {
	switch {
	case domain.IsNotFoundError(err), errors.Is(err, domain.ErrInvalidURL):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrRateLimitExceeded):
		return fiber.StatusTooManyRequests
	default:
		return fiber.StatusInternalServerError
	}
}

var errInvalidPayload = errors.New(ErrInvalidJsonPayload)

func writeError(c *fiber.Ctx, err error) error {
	return writeDetail(c, StatusFor(err), err.Error())
}

func writeDetail(c *fiber.Ctx, status int, detail string) error {
	return c.Status(status).JSON(response.ErrorResponse{Detail: detail})
}
