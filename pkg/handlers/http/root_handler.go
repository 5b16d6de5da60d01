package http

import (
	"github.com/NeuralTrust/ChapterGenie/pkg/common"
	"github.com/NeuralTrust/ChapterGenie/pkg/handlers/http/response"
	"github.com/NeuralTrust/ChapterGenie/pkg/version"
	"github.com/gofiber/fiber/v2"
)

type rootHandler struct{}

func NewRootHandler() Handler {
	return &rootHandler{}
}

// Handle @Summary Service metadata
// @Tags Service
// @Produce json
// @Success 200 {object} response.ServiceInfo
// @Router / [get]
func (h *rootHandler) Handle(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(response.ServiceInfo{
		Name:        common.ServiceName,
		Version:     version.Version,
		Description: common.ServiceDescription,
		Endpoints: map[string]string{
			"POST /api":               "Main endpoint for generating chapters",
			"POST /generate_chapters": "Generate chapters (alternative endpoint)",
			"POST /process-video":     "Generate chapters (alternative endpoint)",
			"GET /test":               "Check if API is running",
			"GET /wake":               "Keep service awake",
		},
		Documentation: common.DocsPath,
	})
}
