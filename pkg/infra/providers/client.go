package providers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/NeuralTrust/ChapterGenie/pkg/common"
	"github.com/mitchellh/mapstructure"
)

var (
	ErrMissingAPIKey = errors.New("API key is required")
	ErrMissingModel  = errors.New("model is required")
)

// Config describes a single completion call. Zero sampling values are left
// to the provider defaults.
type Config struct {
	Credentials  Credentials            `json:"credentials"`
	Model        string                 `json:"model"`
	MaxTokens    int                    `json:"max_tokens,omitempty"`
	Temperature  float64                `json:"temperature,omitempty"`
	TopP         float64                `json:"top_p,omitempty"`
	TopK         int                    `json:"top_k,omitempty"`
	SystemPrompt string                 `json:"system_prompt,omitempty"`
	Options      map[string]interface{} `json:"options,omitempty"`
}

type Credentials struct {
	ApiKey     string      `json:"api_key,omitempty"`
	AwsBedrock *AwsBedrock `json:"aws_bedrock,omitempty"`
	Azure      *Azure      `json:"azure,omitempty"`
}

type AwsBedrock struct {
	AccessKey    string `json:"access_key"`
	SecretKey    string `json:"secret_key"`
	SessionToken string `json:"session_token,omitempty"`
	Region       string `json:"region"`
	UseRole      bool   `json:"use_role"`
	RoleARN      string `json:"role_arn,omitempty"`
}

type Azure struct {
	Endpoint    string `json:"endpoint"`
	ApiVersion  string `json:"api_version,omitempty"`
	UseIdentity bool   `json:"use_identity"`
}

//go:generate mockery --name=Client --dir=. --output=./mocks --filename=client_mock.go --case=underscore --with-expecter
type Client interface {
	Ask(ctx context.Context, config *Config, prompt string) (*CompletionResponse, error)
}

// DecodeOptions maps the free-form llm.options block onto a provider
// specific struct.
func DecodeOptions(options map[string]interface{}, out interface{}) error {
	if len(options) == 0 {
		return nil
	}
	if err := mapstructure.Decode(options, out); err != nil {
		return fmt.Errorf("invalid provider options: %w", err)
	}
	return nil
}

// ResponseID prefers the request id carried by ctx so completions can be
// matched with access logs.
func ResponseID(ctx context.Context, provider string) string {
	if requestID, ok := ctx.Value(common.RequestIDKey).(string); ok && requestID != "" {
		return fmt.Sprintf("%s-%s", provider, requestID)
	}
	return fmt.Sprintf("%s-%d", provider, time.Now().UnixNano())
}
