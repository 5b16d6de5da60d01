package middleware

import (
	"strconv"
	"time"

	"github.com/NeuralTrust/ChapterGenie/pkg/common"
	"github.com/NeuralTrust/ChapterGenie/pkg/infra/prometheus"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/sirupsen/logrus"
)

const (
	metricsWorkers   = 4
	metricsQueueSize = 1000
)

type metricsMiddleware struct {
	logger   *logrus.Logger
	taskChan chan func()
}

// NewMetricsMiddleware records request counters and latency histograms.
// Observations are handed to a small worker pool so the request path never
// blocks on the registry; when the queue is full the sample is dropped.
func NewMetricsMiddleware(logger *logrus.Logger) Middleware {
	m := &metricsMiddleware{
		logger:   logger,
		taskChan: make(chan func(), metricsQueueSize),
	}
	m.startWorkers(metricsWorkers)
	return m
}

func (m *metricsMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		startTime, ok := c.Locals(common.LatencyContextKey).(time.Time)
		if !ok {
			startTime = time.Now()
		}

		err := c.Next()

		// labels outlive the ctx, so nothing may alias its buffers
		route := utils.CopyString(c.Route().Path)
		method := utils.CopyString(c.Method())
		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}
		elapsed := time.Since(startTime)

		m.enqueueTask(func() {
			prometheus.RequestTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
			prometheus.RequestLatency.WithLabelValues(route).Observe(float64(elapsed.Milliseconds()))
		})
		return err
	}
}

func (m *metricsMiddleware) startWorkers(n int) {
	for i := 0; i < n; i++ {
		go func() {
			for task := range m.taskChan {
				task()
			}
		}()
	}
}

func (m *metricsMiddleware) enqueueTask(task func()) {
	select {
	case m.taskChan <- task:
	default:
		m.logger.Warn("metrics queue full, dropping sample")
	}
}
