package chapters

import (
	"context"
	"time"

	"github.com/NeuralTrust/ChapterGenie/pkg/domain"
	"github.com/NeuralTrust/ChapterGenie/pkg/domain/chapter"
	"github.com/NeuralTrust/ChapterGenie/pkg/infra/httpx"
	"github.com/NeuralTrust/ChapterGenie/pkg/infra/prometheus"
	"github.com/NeuralTrust/ChapterGenie/pkg/infra/providers"
	"github.com/sirupsen/logrus"
)

// Sampling holds the decoding parameters of one LLM pass.
type Sampling struct {
	Temperature float64
	TopP        float64
	TopK        int
}

// LLMSettings is shared by the generation and refinement passes. Base
// carries the credentials, model and provider options.
type LLMSettings struct {
	Base    providers.Config
	Timeout time.Duration
}

type llmPass struct {
	pass     domain.Pass
	client   providers.Client
	settings LLMSettings
	sampling Sampling
	breaker  httpx.CircuitBreaker
	logger   *logrus.Logger
}

func (p *llmPass) run(ctx context.Context, prompt string) ([]chapter.Chapter, error) {
	if p.settings.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.settings.Timeout)
		defer cancel()
	}

	cfg := p.settings.Base
	cfg.Temperature = p.sampling.Temperature
	cfg.TopP = p.sampling.TopP
	cfg.TopK = p.sampling.TopK

	var resp *providers.CompletionResponse
	err := p.breaker.Execute(func() error {
		var askErr error
		resp, askErr = p.client.Ask(ctx, &cfg, prompt)
		return askErr
	})
	if err != nil {
		p.logger.WithError(err).WithField("pass", string(p.pass)).Error("llm call failed")
		return nil, domain.NewGenerationError(p.pass, err)
	}

	prometheus.LLMTokens.WithLabelValues(string(p.pass), "prompt").Add(float64(resp.Usage.PromptTokens))
	prometheus.LLMTokens.WithLabelValues(string(p.pass), "completion").Add(float64(resp.Usage.CompletionTokens))

	chs := ParseChapters(resp.Response)
	p.logger.WithFields(logrus.Fields{
		"pass":     string(p.pass),
		"model":    resp.Model,
		"chapters": len(chs),
		"tokens":   resp.Usage.TotalTokens,
	}).Debug("llm pass completed")
	return chs, nil
}
