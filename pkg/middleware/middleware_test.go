package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/NeuralTrust/ChapterGenie/pkg/common"
	"github.com/NeuralTrust/ChapterGenie/pkg/domain"
	"github.com/NeuralTrust/ChapterGenie/pkg/infra/prometheus"
	"github.com/NeuralTrust/ChapterGenie/pkg/infra/ratelimit"
	"github.com/NeuralTrust/ChapterGenie/pkg/infra/ratelimit/mocks"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func readDetail(t *testing.T, body io.Reader) string {
	t.Helper()
	var out map[string]string
	require.NoError(t, json.NewDecoder(body).Decode(&out))
	return out["detail"]
}

func TestPanicRecoverMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(NewPanicRecoverMiddleware(logrus.New()).Middleware())
	app.Get("/boom", func(c *fiber.Ctx) error {
		panic("kaboom")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Internal server error", readDetail(t, resp.Body))
}

func newCORSApp() *fiber.App {
	app := fiber.New()
	app.Use(NewCORSGlobalMiddleware(
		[]string{"*"},
		[]string{"GET", "POST", "OPTIONS"},
		true,
		[]string{"*"},
		"86400",
	).Middleware())
	app.Post("/api", func(c *fiber.Ctx) error { return c.SendString("ok") })
	return app
}

func TestCORSGlobalMiddleware_Preflight(t *testing.T) {
	req := httptest.NewRequest("OPTIONS", "/api", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")

	resp, err := newCORSApp().Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "https://app.example.com", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))
	assert.Equal(t, "GET, POST, OPTIONS", resp.Header.Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type", resp.Header.Get("Access-Control-Allow-Headers"))
	assert.Equal(t, "86400", resp.Header.Get("Access-Control-Max-Age"))
}

func TestCORSGlobalMiddleware_SimpleRequest(t *testing.T) {
	req := httptest.NewRequest("POST", "/api", nil)
	req.Header.Set("Origin", "https://app.example.com")

	resp, err := newCORSApp().Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "https://app.example.com", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Expose-Headers"))

	resp, err = newCORSApp().Test(httptest.NewRequest("POST", "/api", nil), -1)
	require.NoError(t, err)
	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestRequestIDMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(NewRequestIDMiddleware(logrus.New()).Middleware())
	app.Get("/test", func(c *fiber.Ctx) error {
		id, _ := c.UserContext().Value(common.RequestIDKey).(string)
		return c.SendString(id)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/test", nil), -1)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	generated := resp.Header.Get(common.RequestIDHeader)
	assert.NotEmpty(t, generated)
	assert.Equal(t, generated, string(body))

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set(common.RequestIDHeader, "caller-id")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "caller-id", resp.Header.Get(common.RequestIDHeader))
}

func newRateLimitedApp(limiter ratelimit.Limiter) *fiber.App {
	app := fiber.New()
	app.Post("/api", NewRateLimitMiddleware(logrus.New(), limiter).Middleware(), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestRateLimitMiddleware_SixthRequestRejected(t *testing.T) {
	app := newRateLimitedApp(ratelimit.NewMemoryLimiter(ratelimit.Options{Window: time.Minute, MaxRequests: 5}))

	for i := 0; i < 5; i++ {
		resp, err := app.Test(httptest.NewRequest("POST", "/api", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode, "request %d", i+1)
	}

	resp, err := app.Test(httptest.NewRequest("POST", "/api", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "Rate limit exceeded. Please wait a minute before trying again.", readDetail(t, resp.Body))
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))
}

func TestRateLimitMiddleware_FailsOpen(t *testing.T) {
	limiter := new(mocks.Limiter)
	limiter.On("Check", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("redis: connection refused")).Once()

	resp, err := newRateLimitedApp(limiter).Test(httptest.NewRequest("POST", "/api", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	limiter.AssertExpectations(t)
}

func TestRateLimitMiddleware_RetryAfterRoundsUp(t *testing.T) {
	limiter := new(mocks.Limiter)
	limiter.On("Check", mock.Anything, mock.Anything, mock.Anything).
		Return(&ratelimit.Result{RetryAfter: 1500 * time.Millisecond}, domain.ErrRateLimitExceeded).Once()

	resp, err := newRateLimitedApp(limiter).Test(httptest.NewRequest("POST", "/api", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "2", resp.Header.Get("Retry-After"))
}

func TestMetricsMiddleware_PassesThrough(t *testing.T) {
	app := fiber.New()
	app.Use(NewMetricsMiddleware(logrus.New()).Middleware())
	app.Get("/wake", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusTeapot) })

	resp, err := app.Test(httptest.NewRequest("GET", "/wake", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTeapot, resp.StatusCode)
}

func TestRateLimitMiddleware_ForwardedClientsKeepSeparateWindows(t *testing.T) {
	limiter := ratelimit.NewMemoryLimiter(ratelimit.Options{Window: time.Minute, MaxRequests: 1})
	app := fiber.New(fiber.Config{ProxyHeader: fiber.HeaderXForwardedFor})
	app.Post("/api", NewRateLimitMiddleware(logrus.New(), limiter).Middleware(), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	send := func(ip string) int {
		req := httptest.NewRequest("POST", "/api", nil)
		req.Header.Set(fiber.HeaderXForwardedFor, ip)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		return resp.StatusCode
	}

	ips := []string{"10.0.0.1", "10.0.0.2", "10.0.0.3", "10.0.0.4"}
	for _, ip := range ips {
		assert.Equal(t, fiber.StatusOK, send(ip), ip)
	}
	assert.Equal(t, len(ips), limiter.Len())

	// each stored id must still point at its own history
	for _, ip := range ips {
		assert.Equal(t, fiber.StatusTooManyRequests, send(ip), ip)
	}
	assert.Equal(t, len(ips), limiter.Len())
}

func TestMetricsMiddleware_MethodLabelsSurviveRequest(t *testing.T) {
	app := fiber.New()
	app.Use(NewMetricsMiddleware(logrus.New()).Middleware())
	app.All("/methods", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	methods := []string{"POST", "PUT", "GET", "HEAD"}
	for _, method := range methods {
		resp, err := app.Test(httptest.NewRequest(method, "/methods", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	for _, method := range methods {
		counter := prometheus.RequestTotal.WithLabelValues("/methods", method, "200")
		assert.Eventually(t, func() bool {
			return testutil.ToFloat64(counter) == 1
		}, time.Second, 10*time.Millisecond, method)
	}
}
