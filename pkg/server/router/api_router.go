package router

import (
	_ "github.com/NeuralTrust/ChapterGenie/docs"
	"github.com/NeuralTrust/ChapterGenie/pkg/common"
	handlers "github.com/NeuralTrust/ChapterGenie/pkg/handlers/http"
	"github.com/NeuralTrust/ChapterGenie/pkg/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

const (
	RootPath             = "/"
	TestPath             = "/test"
	WakePath             = "/wake"
	VersionPath          = "/version"
	APIPath              = "/api"
	GenerateChaptersPath = "/generate_chapters"
	ProcessVideoPath     = "/process-video"
	SimpleDemoPath       = "/simple-demo"
)

type apiRouter struct {
	middlewareTransport *middleware.Transport
	handlerTransport    *handlers.HandlerTransport
}

func NewAPIRouter(
	middlewareTransport *middleware.Transport,
	handlerTransport *handlers.HandlerTransport,
) ServerRouter {
	return &apiRouter{
		middlewareTransport: middlewareTransport,
		handlerTransport:    handlerTransport,
	}
}

func (r *apiRouter) BuildRoutes(router *fiber.App) error {
	mw := r.middlewareTransport
	h := r.handlerTransport

	router.Use(
		mw.PanicRecoverMiddleware.Middleware(),
		mw.CORSMiddleware.Middleware(),
		mw.RequestIDMiddleware.Middleware(),
		mw.MetricsMiddleware.Middleware(),
	)

	router.Get(common.DocsPath+"/*", swagger.HandlerDefault)

	// Service
	router.Get(RootPath, h.RootHandler.Handle)
	router.Get(TestPath, h.TestHandler.Handle)
	router.Get(WakePath, h.WakeHandler.Handle)
	router.Get(VersionPath, h.GetVersionHandler.Handle)

	// Chapters
	limited := mw.RateLimitMiddleware.Middleware()
	for _, path := range []string{APIPath, GenerateChaptersPath, ProcessVideoPath} {
		router.Post(path, limited, h.GenerateChaptersHandler.Handle)
	}
	router.Post(SimpleDemoPath, h.SimpleDemoHandler.Handle)

	return nil
}
