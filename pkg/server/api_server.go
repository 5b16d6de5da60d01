package server

import (
	"time"

	"github.com/NeuralTrust/ChapterGenie/pkg/config"
	"github.com/NeuralTrust/ChapterGenie/pkg/server/router"
	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

type (
	APIServerDI struct {
		Config  *config.Config
		Logger  *logrus.Logger
		Routers []router.ServerRouter
	}
	APIServer struct {
		*BaseServer
	}
)

func NewAPIServer(di APIServerDI) *APIServer {
	s := &APIServer{
		BaseServer: NewBaseServer(di.Config, di.Logger),
	}
	s.WithRouters(di.Routers...)
	return s
}

func (s *APIServer) Run() error {
	addr := s.addr(s.Config.Server.Port)
	s.Logger.WithField("addr", addr).Info("starting api server")
	return listen(s.Router, addr)
}

// Shutdown stops accepting connections and waits for in-flight chapter
// requests, which can take as long as two LLM calls.
func (s *APIServer) Shutdown() error {
	return s.Router.ShutdownWithTimeout(shutdownTimeout)
}
