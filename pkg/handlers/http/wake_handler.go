package http

import (
	"github.com/NeuralTrust/ChapterGenie/pkg/handlers/http/response"
	"github.com/gofiber/fiber/v2"
)

type wakeHandler struct{}

func NewWakeHandler() Handler {
	return &wakeHandler{}
}

// Handle @Summary Keep the service awake
// @Description Hit periodically on hosts that suspend idle instances
// @Tags Service
// @Produce json
// @Success 200 {object} response.MessageResponse
// @Router /wake [get]
func (h *wakeHandler) Handle(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(response.MessageResponse{Message: "I Won't Sleep"})
}
