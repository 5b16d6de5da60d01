package dependency_container

import (
	"fmt"
	"strings"

	"github.com/NeuralTrust/ChapterGenie/pkg/app/chapters"
	"github.com/NeuralTrust/ChapterGenie/pkg/app/transcript"
	"github.com/NeuralTrust/ChapterGenie/pkg/config"
	handlers "github.com/NeuralTrust/ChapterGenie/pkg/handlers/http"
	"github.com/NeuralTrust/ChapterGenie/pkg/infra/httpx"
	"github.com/NeuralTrust/ChapterGenie/pkg/infra/providers"
	providersFactory "github.com/NeuralTrust/ChapterGenie/pkg/infra/providers/factory"
	"github.com/NeuralTrust/ChapterGenie/pkg/infra/ratelimit"
	"github.com/NeuralTrust/ChapterGenie/pkg/infra/youtube"
	"github.com/NeuralTrust/ChapterGenie/pkg/middleware"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

type Container struct {
	HandlerTransport    *handlers.HandlerTransport
	MiddlewareTransport *middleware.Transport
	Pipeline            chapters.Pipeline
	Limiter             ratelimit.Limiter
	RedisClient         *redis.Client
}

type ContainerDI struct {
	Cfg    *config.Config
	Logger *logrus.Logger
}

func NewContainer(di ContainerDI) (*Container, error) {
	cfg := di.Cfg

	transcriptHTTPClient := httpx.NewFastHTTPClient(
		httpx.WithTimeout(cfg.Transcript.Timeout),
		httpx.WithUserAgent(cfg.Transcript.UserAgent),
	)
	llmHTTPClient := httpx.NewFastHTTPClient(httpx.WithTimeout(cfg.LLM.Timeout))

	transcriptBreaker := newBreaker("transcript", cfg.Breaker)
	llmBreaker := newBreaker("llm", cfg.Breaker)

	// transcript
	youtubeClient := youtube.NewClient(di.Logger, transcriptHTTPClient, transcriptBreaker, youtube.Options{
		BaseURL:        cfg.Transcript.BaseURL,
		UserAgent:      cfg.Transcript.UserAgent,
		AcceptLanguage: cfg.Transcript.AcceptLanguage,
	})
	fetcher := transcript.NewFetcher(youtubeClient, di.Logger)

	// llm
	providerLocator := providersFactory.NewProviderLocator(llmHTTPClient)
	llmClient, err := providerLocator.Get(cfg.LLM.Provider)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize llm provider: %w", err)
	}
	settings := chapters.LLMSettings{
		Base:    providerConfig(cfg.LLM),
		Timeout: cfg.LLM.Timeout,
	}
	generator := chapters.NewGenerator(llmClient, settings, sampling(cfg.LLM.Generation), llmBreaker, di.Logger)
	refiner := chapters.NewRefiner(llmClient, settings, sampling(cfg.LLM.Refinement), llmBreaker, di.Logger)

	pipeline := chapters.NewPipeline(fetcher, generator, refiner, di.Logger)

	// rate limit
	limiter, redisClient, err := newLimiter(cfg, di.Logger)
	if err != nil {
		return nil, err
	}

	di.Logger.WithFields(logrus.Fields{
		"llm_provider":       cfg.LLM.Provider,
		"llm_model":          cfg.LLM.Model,
		"rate_limit_backend": cfg.RateLimit.Backend,
		"breaker_enabled":    cfg.Breaker.Enabled,
	}).Info("dependencies initialized")

	middlewareTransport := &middleware.Transport{
		PanicRecoverMiddleware: middleware.NewPanicRecoverMiddleware(di.Logger),
		CORSMiddleware: middleware.NewCORSGlobalMiddleware(
			cfg.CORS.AllowOrigins,
			cfg.CORS.AllowMethods,
			cfg.CORS.AllowCredentials,
			cfg.CORS.ExposeHeaders,
			cfg.CORS.MaxAge,
		),
		RequestIDMiddleware: middleware.NewRequestIDMiddleware(di.Logger),
		MetricsMiddleware:   middleware.NewMetricsMiddleware(di.Logger),
		RateLimitMiddleware: middleware.NewRateLimitMiddleware(di.Logger, limiter),
	}

	handlerTransport := &handlers.HandlerTransport{
		// Chapters
		GenerateChaptersHandler: handlers.NewGenerateChaptersHandler(di.Logger, pipeline),
		SimpleDemoHandler:       handlers.NewSimpleDemoHandler(di.Logger),
		// Service
		RootHandler:       handlers.NewRootHandler(),
		TestHandler:       handlers.NewTestHandler(),
		WakeHandler:       handlers.NewWakeHandler(),
		GetVersionHandler: handlers.NewGetVersionHandler(),
	}

	return &Container{
		HandlerTransport:    handlerTransport,
		MiddlewareTransport: middlewareTransport,
		Pipeline:            pipeline,
		Limiter:             limiter,
		RedisClient:         redisClient,
	}, nil
}

func (c *Container) Close() error {
	if c.RedisClient != nil {
		return c.RedisClient.Close()
	}
	return nil
}

func newBreaker(name string, cfg config.BreakerConfig) httpx.CircuitBreaker {
	if !cfg.Enabled {
		return httpx.NewPassthroughBreaker()
	}
	return httpx.NewCircuitBreaker(name, cfg.Timeout, cfg.MaxFailures)
}

func newLimiter(cfg *config.Config, logger *logrus.Logger) (ratelimit.Limiter, *redis.Client, error) {
	opts := ratelimit.Options{
		Window:           cfg.RateLimit.Window,
		MaxRequests:      cfg.RateLimit.MaxRequests,
		CleanupThreshold: cfg.RateLimit.CleanupThreshold,
	}
	if !strings.EqualFold(cfg.RateLimit.Backend, "redis") {
		return ratelimit.NewMemoryLimiter(opts), nil, nil
	}
	redisClient, err := ratelimit.NewRedisClient(ratelimit.RedisConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		TLS:      cfg.Redis.TLS,
	}, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize rate limit store: %w", err)
	}
	return ratelimit.NewRedisLimiter(redisClient, opts, nil), redisClient, nil
}

func sampling(s config.SamplingConfig) chapters.Sampling {
	return chapters.Sampling{
		Temperature: s.Temperature,
		TopP:        s.TopP,
		TopK:        s.TopK,
	}
}

func providerConfig(llm config.LLMConfig) providers.Config {
	base := providers.Config{
		Credentials: providers.Credentials{ApiKey: llm.APIKey},
		Model:       llm.Model,
		MaxTokens:   llm.MaxTokens,
		Options:     llm.Options,
	}
	switch llm.Provider {
	case providersFactory.ProviderBedrock:
		base.Credentials.AwsBedrock = &providers.AwsBedrock{
			AccessKey:    llm.AWS.AccessKey,
			SecretKey:    llm.AWS.SecretKey,
			SessionToken: llm.AWS.SessionToken,
			Region:       llm.AWS.Region,
			UseRole:      llm.AWS.UseRole,
			RoleARN:      llm.AWS.RoleARN,
		}
	case providersFactory.ProviderAzure:
		base.Credentials.Azure = &providers.Azure{
			Endpoint:    llm.Azure.Endpoint,
			ApiVersion:  llm.Azure.ApiVersion,
			UseIdentity: llm.Azure.UseIdentity,
		}
	}
	return base
}
