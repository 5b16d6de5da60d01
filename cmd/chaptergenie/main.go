package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/NeuralTrust/ChapterGenie/pkg/config"
	"github.com/NeuralTrust/ChapterGenie/pkg/dependency_container"
	infraLogger "github.com/NeuralTrust/ChapterGenie/pkg/infra/logger"
	"github.com/NeuralTrust/ChapterGenie/pkg/infra/prometheus"
	"github.com/NeuralTrust/ChapterGenie/pkg/server"
	"github.com/NeuralTrust/ChapterGenie/pkg/server/router"
	"github.com/NeuralTrust/ChapterGenie/pkg/version"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

// @title YouTube Chapter Generator API
// @version 1.0.0
// @description Generate chapter timestamps for YouTube videos
// @BasePath /
func main() {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	logger := infraLogger.NewLogger("api")

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config"
	}
	if err := config.Load(configPath); err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	cfg := config.GetConfig()

	prometheus.Initialize()

	container, err := dependency_container.NewContainer(dependency_container.ContainerDI{
		Cfg:    cfg,
		Logger: logger,
	})
	if err != nil {
		logger.Fatalf("failed to initialize dependencies: %v", err)
	}
	defer func() {
		if err := container.Close(); err != nil {
			logger.WithError(err).Warn("failed to close dependencies")
		}
	}()

	apiServer := server.NewAPIServer(server.APIServerDI{
		Config: cfg,
		Logger: logger,
		Routers: []router.ServerRouter{
			router.NewAPIRouter(container.MiddlewareTransport, container.HandlerTransport),
		},
	})
	metricsServer := server.NewMetricsServer(cfg, logger)
	servers := []server.Server{apiServer, metricsServer}

	logger.WithField("version", version.Version).Info("starting " + version.AppName)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	for _, srv := range servers {
		g.Go(srv.Run)
	}
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down servers")
		for _, srv := range servers {
			if err := srv.Shutdown(); err != nil {
				logger.WithError(err).Error("error shutting down server")
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.WithError(err).Error("server stopped with error")
		return
	}
	logger.Info("server gracefully stopped")
}
