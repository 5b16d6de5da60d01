package azure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/NeuralTrust/ChapterGenie/pkg/domain"
	"github.com/NeuralTrust/ChapterGenie/pkg/infra/httpx"
	"github.com/NeuralTrust/ChapterGenie/pkg/infra/providers"
	"github.com/valyala/fastjson"
)

const (
	DefaultAPIVersion = "2024-02-15-preview"
	cognitiveScope    = "https://cognitiveservices.azure.com/.default"
)

type client struct {
	httpClient httpx.Client
	credential func() (azcore.TokenCredential, error)
}

func NewAzureClient(httpClient httpx.Client) providers.Client {
	return &client{
		httpClient: httpClient,
		credential: func() (azcore.TokenCredential, error) {
			cred, err := azidentity.NewDefaultAzureCredential(nil)
			if err != nil {
				return nil, err
			}
			return cred, nil
		},
	}
}

// Ask calls the chat completions endpoint of an Azure OpenAI deployment.
// config.Model is the deployment name. Authentication uses the api-key
// header, or an Entra ID token when Azure.UseIdentity is set.
func (c *client) Ask(
	ctx context.Context,
	config *providers.Config,
	prompt string,
) (*providers.CompletionResponse, error) {
	az := config.Credentials.Azure
	if az == nil || az.Endpoint == "" {
		return nil, fmt.Errorf("azure endpoint is required")
	}
	if config.Model == "" {
		return nil, fmt.Errorf("%w: azure deployment id", providers.ErrMissingModel)
	}
	if !az.UseIdentity && config.Credentials.ApiKey == "" {
		return nil, providers.ErrMissingAPIKey
	}

	body, err := requestBody(config, prompt)
	if err != nil {
		return nil, err
	}

	apiVersion := az.ApiVersion
	if apiVersion == "" {
		apiVersion = DefaultAPIVersion
	}
	url := fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
		strings.TrimRight(az.Endpoint, "/"), config.Model, apiVersion)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if az.UseIdentity {
		token, err := c.token(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get Azure AD token: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	} else {
		req.Header.Set("api-key", config.Credentials.ApiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("non-200 status: %d: %s", resp.StatusCode, string(respBody))
	}

	return parseResponse(ctx, config.Model, respBody)
}

func requestBody(config *providers.Config, prompt string) ([]byte, error) {
	messages := make([]map[string]string, 0, 2)
	if config.SystemPrompt != "" {
		messages = append(messages, map[string]string{"role": "system", "content": config.SystemPrompt})
	}
	messages = append(messages, map[string]string{"role": "user", "content": prompt})

	reqBody := map[string]interface{}{
		"messages":    messages,
		"temperature": config.Temperature,
	}
	if config.TopP > 0 {
		reqBody["top_p"] = config.TopP
	}
	if config.MaxTokens > 0 {
		reqBody["max_tokens"] = config.MaxTokens
	}
	b, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}
	return b, nil
}

func parseResponse(ctx context.Context, model string, body []byte) (*providers.CompletionResponse, error) {
	var p fastjson.Parser
	v, err := p.ParseBytes(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	content := string(v.GetStringBytes("choices", "0", "message", "content"))
	if content == "" {
		return nil, domain.ErrEmptyCompletion
	}

	id := string(v.GetStringBytes("id"))
	if id == "" {
		id = providers.ResponseID(ctx, "azure")
	}
	return &providers.CompletionResponse{
		ID:       id,
		Model:    model,
		Response: content,
		Usage: providers.Usage{
			PromptTokens:     v.GetInt("usage", "prompt_tokens"),
			CompletionTokens: v.GetInt("usage", "completion_tokens"),
			TotalTokens:      v.GetInt("usage", "total_tokens"),
		},
	}, nil
}

func (c *client) token(ctx context.Context) (string, error) {
	cred, err := c.credential()
	if err != nil {
		return "", fmt.Errorf("failed to create credential: %w", err)
	}
	token, err := cred.GetToken(ctx, policy.TokenRequestOptions{
		Scopes: []string{cognitiveScope},
	})
	if err != nil {
		return "", fmt.Errorf("failed to get token: %w", err)
	}
	return token.Token, nil
}
