package http

import "github.com/gofiber/fiber/v2"

type Handler interface {
	Handle(ctx *fiber.Ctx) error
}

type HandlerTransport struct {
	// Chapters
	GenerateChaptersHandler Handler
	SimpleDemoHandler       Handler

	// Service
	RootHandler       Handler
	TestHandler       Handler
	WakeHandler       Handler
	GetVersionHandler Handler
}
