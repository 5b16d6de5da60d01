package gemini

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/NeuralTrust/ChapterGenie/pkg/domain"
	"github.com/NeuralTrust/ChapterGenie/pkg/infra/providers"
	"google.golang.org/genai"
)

const DefaultModel = "gemini-2.0-flash"

type geminiOptions struct {
	BaseURL string `mapstructure:"base_url"`
}

type client struct {
	clientPool *sync.Map
}

func NewGeminiClient() providers.Client {
	return &client{
		clientPool: &sync.Map{},
	}
}

func (c *client) Ask(
	ctx context.Context,
	config *providers.Config,
	prompt string,
) (*providers.CompletionResponse, error) {
	if config.Credentials.ApiKey == "" {
		return nil, providers.ErrMissingAPIKey
	}
	model := config.Model
	if model == "" {
		model = DefaultModel
	}

	var opts geminiOptions
	if err := providers.DecodeOptions(config.Options, &opts); err != nil {
		return nil, err
	}

	genaiClient, err := c.getOrCreateClient(ctx, config.Credentials.ApiKey, opts.BaseURL)
	if err != nil {
		return nil, err
	}

	result, err := genaiClient.Models.GenerateContent(ctx, model, genai.Text(prompt), generationConfig(config))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	responseText := strings.TrimSpace(result.Text())
	if responseText == "" {
		return nil, domain.ErrEmptyCompletion
	}

	resp := &providers.CompletionResponse{
		ID:       providers.ResponseID(ctx, "gemini"),
		Model:    model,
		Response: responseText,
	}
	if result.UsageMetadata != nil {
		resp.Usage = providers.Usage{
			PromptTokens:     int(result.UsageMetadata.PromptTokenCount),
			CompletionTokens: int(result.UsageMetadata.CandidatesTokenCount),
			TotalTokens:      int(result.UsageMetadata.TotalTokenCount),
		}
	}
	return resp, nil
}

func generationConfig(config *providers.Config) *genai.GenerateContentConfig {
	gc := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(config.Temperature)),
	}
	if config.TopP > 0 {
		gc.TopP = genai.Ptr(float32(config.TopP))
	}
	if config.TopK > 0 {
		gc.TopK = genai.Ptr(float32(config.TopK))
	}
	if config.MaxTokens > 0 {
		gc.MaxOutputTokens = int32(config.MaxTokens)
	}
	if config.SystemPrompt != "" {
		gc.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: config.SystemPrompt}},
			Role:  "system",
		}
	}
	return gc
}

func (c *client) getOrCreateClient(ctx context.Context, apiKey, baseURL string) (*genai.Client, error) {
	key := apiKey + "|" + baseURL
	if v, ok := c.clientPool.Load(key); ok {
		if cli, ok := v.(*genai.Client); ok {
			return cli, nil
		}
	}
	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}
	cli, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	actual, _ := c.clientPool.LoadOrStore(key, cli)
	return actual.(*genai.Client), nil
}
