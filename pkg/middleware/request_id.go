package middleware

import (
	"context"
	"time"

	"github.com/NeuralTrust/ChapterGenie/pkg/common"
	"github.com/NeuralTrust/ChapterGenie/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type requestIDMiddleware struct {
	logger *logrus.Logger
}

// NewRequestIDMiddleware tags each request with an id (reusing X-Request-Id
// when the caller sent one), stores it in the user context and writes one
// access log line per request.
func NewRequestIDMiddleware(logger *logrus.Logger) Middleware {
	return &requestIDMiddleware{logger: logger}
}

func (m *requestIDMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		started := time.Now()
		requestID := c.Get(common.RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(common.RequestIDHeader, requestID)
		c.Locals(common.RequestIDKey, requestID)
		c.Locals(common.LatencyContextKey, started)

		ctx := context.WithValue(c.UserContext(), common.RequestIDKey, requestID)
		c.SetUserContext(ctx)

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		ua := utils.ParseUserAgent(c.Get(fiber.HeaderUserAgent), c.Get(fiber.HeaderAcceptLanguage))
		entry := m.logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     c.Method(),
			"path":       c.Path(),
			"status":     status,
			"client_ip":  c.IP(),
			"latency_ms": time.Since(started).Milliseconds(),
			"device":     ua.Device,
			"os":         ua.OS,
			"browser":    ua.Browser,
		})
		if status >= fiber.StatusInternalServerError {
			entry.Warn("request completed")
		} else {
			entry.Info("request completed")
		}
		return err
	}
}
