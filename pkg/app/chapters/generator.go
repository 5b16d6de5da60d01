package chapters

import (
	"context"

	"github.com/NeuralTrust/ChapterGenie/pkg/domain"
	"github.com/NeuralTrust/ChapterGenie/pkg/domain/chapter"
	"github.com/NeuralTrust/ChapterGenie/pkg/domain/transcript"
	"github.com/NeuralTrust/ChapterGenie/pkg/infra/httpx"
	"github.com/NeuralTrust/ChapterGenie/pkg/infra/providers"
	"github.com/sirupsen/logrus"
)

type generator struct {
	llm *llmPass
}

func NewGenerator(
	client providers.Client,
	settings LLMSettings,
	sampling Sampling,
	breaker httpx.CircuitBreaker,
	logger *logrus.Logger,
) chapter.Generator {
	return &generator{llm: newPass(domain.PassGeneration, client, settings, sampling, breaker, logger)}
}

func (g *generator) Generate(
	ctx context.Context,
	segments []transcript.Segment,
	totalDuration string,
) ([]chapter.Chapter, error) {
	return g.llm.run(ctx, generationPrompt(segments, totalDuration))
}

type refiner struct {
	llm *llmPass
}

func NewRefiner(
	client providers.Client,
	settings LLMSettings,
	sampling Sampling,
	breaker httpx.CircuitBreaker,
	logger *logrus.Logger,
) chapter.Refiner {
	return &refiner{llm: newPass(domain.PassRefinement, client, settings, sampling, breaker, logger)}
}

func (r *refiner) Refine(
	ctx context.Context,
	draft []chapter.Chapter,
	segments []transcript.Segment,
	totalDuration string,
) ([]chapter.Chapter, error) {
	return r.llm.run(ctx, refinementPrompt(draft, segments, totalDuration))
}

func newPass(
	pass domain.Pass,
	client providers.Client,
	settings LLMSettings,
	sampling Sampling,
	breaker httpx.CircuitBreaker,
	logger *logrus.Logger,
) *llmPass {
	if breaker == nil {
		breaker = httpx.NewPassthroughBreaker()
	}
	return &llmPass{
		pass:     pass,
		client:   client,
		settings: settings,
		sampling: sampling,
		breaker:  breaker,
		logger:   logger,
	}
}
