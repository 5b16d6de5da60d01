package http

import (
	"github.com/NeuralTrust/ChapterGenie/pkg/app/chapters"
	"github.com/NeuralTrust/ChapterGenie/pkg/handlers/http/request"
	"github.com/NeuralTrust/ChapterGenie/pkg/handlers/http/response"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type generateChaptersHandler struct {
	logger   *logrus.Logger
	pipeline chapters.Pipeline
}

func NewGenerateChaptersHandler(logger *logrus.Logger, pipeline chapters.Pipeline) Handler {
	return &generateChaptersHandler{
		logger:   logger,
		pipeline: pipeline,
	}
}

// Handle @Summary Generate chapters for a YouTube video
// @Description Fetches the transcript, drafts chapters with the LLM and refines them. Served on /api, /generate_chapters and /process-video.
// @Tags Chapters
// @Accept json
// @Produce json
// @Param request body request.VideoRequest true "Video to process"
// @Success 200 {object} response.ChaptersResponse "Generated chapters"
// @Failure 400 {object} response.ErrorResponse "Invalid request data"
// @Failure 404 {object} response.ErrorResponse "Transcript not available"
// @Failure 429 {object} response.ErrorResponse "Rate limit exceeded"
// @Failure 500 {object} response.ErrorResponse "Chapter generation failed"
// @Router /api [post]
// @Router /generate_chapters [post]
// @Router /process-video [post]
func (h *generateChaptersHandler) Handle(c *fiber.Ctx) error {
	req, err := parseVideoRequest(c)
	if err != nil {
		h.logger.WithError(err).Debug("rejected chapter request")
		return writeDetail(c, fiber.StatusBadRequest, err.Error())
	}

	result, err := h.pipeline.Run(c.UserContext(), req.ToDomain())
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(response.ChaptersResponse{Chapters: result})
}

func parseVideoRequest(c *fiber.Ctx) (*request.VideoRequest, error) {
	var req request.VideoRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, errInvalidPayload
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return &req, nil
}
