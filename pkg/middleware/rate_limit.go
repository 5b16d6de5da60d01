package middleware

import (
	"errors"
	"math"
	"strconv"
	"time"

	"github.com/NeuralTrust/ChapterGenie/pkg/common"
	"github.com/NeuralTrust/ChapterGenie/pkg/domain"
	"github.com/NeuralTrust/ChapterGenie/pkg/infra/prometheus"
	"github.com/NeuralTrust/ChapterGenie/pkg/infra/ratelimit"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/sirupsen/logrus"
)

type rateLimitMiddleware struct {
	logger  *logrus.Logger
	limiter ratelimit.Limiter
	now     func() time.Time
}

// NewRateLimitMiddleware applies the per-IP sliding window. When the
// backing store fails the request is let through and the failure logged.
func NewRateLimitMiddleware(logger *logrus.Logger, limiter ratelimit.Limiter) Middleware {
	return &rateLimitMiddleware{
		logger:  logger,
		limiter: limiter,
		now:     time.Now,
	}
}

func (m *rateLimitMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// the limiter keeps the id after the request buffers are recycled
		clientID := utils.CopyString(c.IP())
		c.Locals(common.ClientIDKey, clientID)

		res, err := m.limiter.Check(c.UserContext(), clientID, m.now())
		switch {
		case errors.Is(err, domain.ErrRateLimitExceeded):
			prometheus.RateLimited.Inc()
			m.logger.WithFields(logrus.Fields{
				"client_ip":  clientID,
				"path":       c.Path(),
				"request_id": c.Locals(common.RequestIDKey),
			}).Warn("rate limit exceeded")
			if res != nil && res.RetryAfter > 0 {
				c.Set(common.RetryAfterHeader, strconv.Itoa(int(math.Ceil(res.RetryAfter.Seconds()))))
			}
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"detail": common.RateLimitDetail,
			})
		case err != nil:
			m.logger.WithError(err).WithField("client_ip", clientID).Error("rate limiter unavailable, allowing request")
		}
		return c.Next()
	}
}
