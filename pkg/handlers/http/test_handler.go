package http

import (
	"github.com/NeuralTrust/ChapterGenie/pkg/handlers/http/response"
	"github.com/gofiber/fiber/v2"
)

type testHandler struct{}

func NewTestHandler() Handler {
	return &testHandler{}
}

// Handle @Summary Liveness check
// @Tags Service
// @Produce json
// @Success 200 {object} response.StatusResponse
// @Router /test [get]
func (h *testHandler) Handle(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(response.StatusResponse{
		Status:  "ok",
		Message: "Server is running correctly",
	})
}
