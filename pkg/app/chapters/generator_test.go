package chapters_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/NeuralTrust/ChapterGenie/pkg/app/chapters"
	"github.com/NeuralTrust/ChapterGenie/pkg/domain"
	"github.com/NeuralTrust/ChapterGenie/pkg/domain/chapter"
	"github.com/NeuralTrust/ChapterGenie/pkg/domain/transcript"
	"github.com/NeuralTrust/ChapterGenie/pkg/infra/httpx"
	"github.com/NeuralTrust/ChapterGenie/pkg/infra/providers"
	"github.com/NeuralTrust/ChapterGenie/pkg/infra/providers/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	segments = []transcript.Segment{
		{Time: "00:00", Text: "welcome to the show", Start: 0, Duration: 60},
		{Time: "01:00", Text: "now the main topic", Start: 60, Duration: 120},
	}
	settings = chapters.LLMSettings{
		Base: providers.Config{
			Credentials: providers.Credentials{ApiKey: "key"},
			Model:       "gemini-2.0-flash",
			MaxTokens:   4096,
		},
		Timeout: time.Minute,
	}
	generationSampling = chapters.Sampling{Temperature: 0.3, TopP: 0.95, TopK: 40}
	refinementSampling = chapters.Sampling{Temperature: 0.1, TopP: 0.95, TopK: 40}
)

func completion(text string) *providers.CompletionResponse {
	return &providers.CompletionResponse{
		ID:       "c1",
		Model:    "gemini-2.0-flash",
		Response: text,
		Usage:    providers.Usage{PromptTokens: 100, CompletionTokens: 20, TotalTokens: 120},
	}
}

func TestGenerator_Generate(t *testing.T) {
	client := new(mocks.Client)
	client.On("Ask",
		mock.Anything,
		mock.MatchedBy(func(cfg *providers.Config) bool {
			return cfg.Temperature == 0.3 && cfg.TopP == 0.95 && cfg.TopK == 40 &&
				cfg.Model == "gemini-2.0-flash" && cfg.Credentials.ApiKey == "key"
		}),
		mock.MatchedBy(func(prompt string) bool {
			return strings.Contains(prompt, "TRANSCRIPT WITH TIMESTAMPS:\n[00:00] welcome to the show\n[01:00] now the main topic") &&
				strings.Contains(prompt, "TOTAL DURATION:\n03:00") &&
				strings.Contains(prompt, "OUTPUT FORMAT (ONLY):\n00:00 - Introduction") &&
				!strings.Contains(prompt, "INITIAL CHAPTERS:")
		}),
	).Return(completion("00:00 - Welcome\n01:00 - Main topic"), nil).Once()

	gen := chapters.NewGenerator(client, settings, generationSampling, nil, logrus.New())
	got, err := gen.Generate(context.Background(), segments, "03:00")
	require.NoError(t, err)
	assert.Equal(t, []chapter.Chapter{
		{Timestamp: "00:00", Title: "Welcome"},
		{Timestamp: "01:00", Title: "Main topic"},
	}, got)
	client.AssertExpectations(t)
}

func TestGenerator_Generate_Error(t *testing.T) {
	client := new(mocks.Client)
	client.On("Ask", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("quota exceeded")).Once()

	gen := chapters.NewGenerator(client, settings, generationSampling, nil, logrus.New())
	_, err := gen.Generate(context.Background(), segments, "03:00")
	require.Error(t, err)
	assert.True(t, domain.IsGenerationError(err))
	assert.Equal(t, "Error generating chapters with AI: quota exceeded", err.Error())
}

func TestGenerator_Generate_BreakerOpens(t *testing.T) {
	client := new(mocks.Client)
	client.On("Ask", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("upstream down")).Once()

	breaker := httpx.NewCircuitBreaker("llm", time.Minute, 1)
	gen := chapters.NewGenerator(client, settings, generationSampling, breaker, logrus.New())

	_, err := gen.Generate(context.Background(), segments, "03:00")
	require.Error(t, err)

	_, err = gen.Generate(context.Background(), segments, "03:00")
	require.Error(t, err)
	assert.True(t, httpx.IsOpen(err))
	assert.True(t, domain.IsGenerationError(err))
	client.AssertNumberOfCalls(t, "Ask", 1)
}

func TestRefiner_Refine(t *testing.T) {
	draft := []chapter.Chapter{
		{Timestamp: "00:00", Title: "Welcome"},
		{Timestamp: "00:30", Title: "Welcome again"},
		{Timestamp: "01:00", Title: "Main topic"},
	}
	client := new(mocks.Client)
	client.On("Ask",
		mock.Anything,
		mock.MatchedBy(func(cfg *providers.Config) bool {
			return cfg.Temperature == 0.1 && cfg.TopK == 40
		}),
		mock.MatchedBy(func(prompt string) bool {
			return strings.Contains(prompt, "INITIAL CHAPTERS:\n00:00 - Welcome\n00:30 - Welcome again\n01:00 - Main topic") &&
				strings.Contains(prompt, "TOTAL DURATION:\n03:00")
		}),
	).Return(completion("00:00 - Welcome\n01:00 - Main topic"), nil).Once()

	ref := chapters.NewRefiner(client, settings, refinementSampling, nil, logrus.New())
	got, err := ref.Refine(context.Background(), draft, segments, "03:00")
	require.NoError(t, err)
	assert.Len(t, got, 2)
	client.AssertExpectations(t)
}

func TestRefiner_Refine_Error(t *testing.T) {
	client := new(mocks.Client)
	client.On("Ask", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, domain.ErrEmptyCompletion).Once()

	ref := chapters.NewRefiner(client, settings, refinementSampling, nil, logrus.New())
	_, err := ref.Refine(context.Background(), nil, segments, "03:00")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEmptyCompletion)
	assert.Equal(t, "Error refining chapters with AI: no completions returned", err.Error())
}
