package server

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/NeuralTrust/ChapterGenie/pkg/config"
	"github.com/NeuralTrust/ChapterGenie/pkg/infra/prometheus"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsServer_ServesRegistry(t *testing.T) {
	prometheus.Initialize()
	prometheus.RateLimited.Inc()

	srv := NewMetricsServer(&config.Config{Metrics: config.MetricsConfig{Enabled: true}}, logrus.New())

	resp, err := srv.Router.Test(httptest.NewRequest(fiber.MethodGet, MetricsPath, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "chaptergenie_rate_limited_total")
	assert.Contains(t, string(body), "go_goroutines")
}

func TestMetricsServer_DisabledDoesNotListen(t *testing.T) {
	srv := NewMetricsServer(&config.Config{}, logrus.New())
	assert.NoError(t, srv.Run())
}
