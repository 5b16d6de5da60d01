package factory

import (
	"fmt"

	"github.com/NeuralTrust/ChapterGenie/pkg/infra/httpx"
	"github.com/NeuralTrust/ChapterGenie/pkg/infra/providers"
	"github.com/NeuralTrust/ChapterGenie/pkg/infra/providers/anthropic"
	"github.com/NeuralTrust/ChapterGenie/pkg/infra/providers/azure"
	"github.com/NeuralTrust/ChapterGenie/pkg/infra/providers/bedrock"
	"github.com/NeuralTrust/ChapterGenie/pkg/infra/providers/gemini"
	"github.com/NeuralTrust/ChapterGenie/pkg/infra/providers/openai"
)

const (
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderBedrock   = "bedrock"
	ProviderAzure     = "azure"
)

//go:generate mockery --name=ProviderLocator --dir=. --output=./mocks --filename=provider_locator_mock.go --case=underscore --with-expecter
type ProviderLocator interface {
	Get(provider string) (providers.Client, error)
}

type providerLocator struct {
	httpClient httpx.Client
}

func NewProviderLocator(httpClient httpx.Client) ProviderLocator {
	return &providerLocator{
		httpClient: httpClient,
	}
}

func (f *providerLocator) Get(provider string) (providers.Client, error) {
	switch provider {
	case ProviderGemini, "google":
		return gemini.NewGeminiClient(), nil
	case ProviderOpenAI:
		return openai.NewOpenaiClient(), nil
	case ProviderAnthropic:
		return anthropic.NewAnthropicClient(), nil
	case ProviderBedrock:
		return bedrock.NewBedrockClient(), nil
	case ProviderAzure:
		return azure.NewAzureClient(f.httpClient), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}
