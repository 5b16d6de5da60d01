package http

import (
	"github.com/NeuralTrust/ChapterGenie/pkg/domain/chapter"
	"github.com/NeuralTrust/ChapterGenie/pkg/handlers/http/response"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

var demoChapters = []chapter.Chapter{
	{Timestamp: "00:00", Title: "Introduction"},
	{Timestamp: "02:15", Title: "Key concepts explained"},
	{Timestamp: "05:30", Title: "First demonstration"},
	{Timestamp: "08:45", Title: "Common challenges"},
	{Timestamp: "12:20", Title: "Advanced techniques"},
	{Timestamp: "15:50", Title: "Case study"},
	{Timestamp: "20:10", Title: "Results and analysis"},
	{Timestamp: "25:30", Title: "Conclusion and key takeaways"},
}

type simpleDemoHandler struct {
	logger *logrus.Logger
}

func NewSimpleDemoHandler(logger *logrus.Logger) Handler {
	return &simpleDemoHandler{
		logger: logger,
	}
}

// Handle @Summary Demo chapters
// @Description Returns a fixed chapter list without calling YouTube or the LLM
// @Tags Chapters
// @Accept json
// @Produce json
// @Param request body request.VideoRequest true "Video (ignored)"
// @Success 200 {object} response.ChaptersResponse "Sample chapters"
// @Failure 400 {object} response.ErrorResponse "Invalid request data"
// @Router /simple-demo [post]
func (h *simpleDemoHandler) Handle(c *fiber.Ctx) error {
	if _, err := parseVideoRequest(c); err != nil {
		return writeDetail(c, fiber.StatusBadRequest, err.Error())
	}
	out := make([]chapter.Chapter, len(demoChapters))
	copy(out, demoChapters)
	return c.Status(fiber.StatusOK).JSON(response.ChaptersResponse{Chapters: out})
}
