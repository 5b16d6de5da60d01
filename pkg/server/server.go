package server

import (
	"errors"
	"fmt"
	"net"

	"github.com/NeuralTrust/ChapterGenie/pkg/config"
	"github.com/NeuralTrust/ChapterGenie/pkg/infra/prometheus"
	"github.com/NeuralTrust/ChapterGenie/pkg/server/router"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

const MetricsPath = "/metrics"

// Server interface defines the common behavior for all servers
type Server interface {
	Run() error
	Shutdown() error
}

type BaseServer struct {
	Config *config.Config
	Logger *logrus.Logger
	Router *fiber.App
}

func NewBaseServer(cfg *config.Config, logger *logrus.Logger) *BaseServer {
	r := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		Network:               fiber.NetworkTCP,
		EnablePrintRoutes:     false,
		Immutable:             true,
		ProxyHeader:           cfg.Server.ProxyHeader,
		BodyLimit:             cfg.Server.BodyLimit,
		ReadTimeout:           cfg.Server.ReadTimeout,
		WriteTimeout:          cfg.Server.WriteTimeout,
		IdleTimeout:           cfg.Server.IdleTimeout,
	})

	r.Server().NoDefaultServerHeader = true

	return &BaseServer{
		Config: cfg,
		Logger: logger,
		Router: r,
	}
}

func (s *BaseServer) WithRouters(routers ...router.ServerRouter) *BaseServer {
	for _, r := range routers {
		err := r.BuildRoutes(s.Router)
		if err != nil {
			s.Logger.WithError(err).Error("failed to build routes")
		}
	}
	return s
}

func (s *BaseServer) addr(port int) string {
	return net.JoinHostPort(s.Config.Server.Host, fmt.Sprintf("%d", port))
}

// MetricsServer exposes the private prometheus registry on its own port.
type MetricsServer struct {
	*BaseServer
}

func NewMetricsServer(cfg *config.Config, logger *logrus.Logger) *MetricsServer {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	app.Use(recover.New())

	handler := fasthttpadaptor.NewFastHTTPHandler(
		promhttp.HandlerFor(prometheus.Registry(), promhttp.HandlerOpts{}),
	)
	app.Get(MetricsPath, func(c *fiber.Ctx) error {
		handler(c.Context())
		return nil
	})

	return &MetricsServer{
		BaseServer: &BaseServer{
			Config: cfg,
			Logger: logger,
			Router: app,
		},
	}
}

func (s *MetricsServer) Run() error {
	if !s.Config.Metrics.Enabled {
		s.Logger.Info("prometheus metrics are disabled by configuration")
		return nil
	}
	addr := s.addr(s.Config.Server.MetricsPort)
	s.Logger.WithField("addr", addr).Info("starting metrics server")
	return listen(s.Router, addr)
}

func (s *MetricsServer) Shutdown() error {
	return s.Router.ShutdownWithTimeout(shutdownTimeout)
}

func listen(app *fiber.App, addr string) error {
	err := app.Listen(addr)
	if err != nil && !errors.Is(err, net.ErrClosed) {
		return err
	}
	return nil
}
