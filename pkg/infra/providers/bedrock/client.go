package bedrock

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/NeuralTrust/ChapterGenie/pkg/domain"
	"github.com/NeuralTrust/ChapterGenie/pkg/infra/providers"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	stsTypes "github.com/aws/aws-sdk-go-v2/service/sts/types"
)

const (
	defaultRegion      = "us-east-1"
	defaultSessionName = "ChapterGenieSession"
)

// ConverseAPI is the subset of the Bedrock runtime client used here.
type ConverseAPI interface {
	Converse(
		ctx context.Context,
		params *bedrockruntime.ConverseInput,
		optFns ...func(*bedrockruntime.Options),
	) (*bedrockruntime.ConverseOutput, error)
}

// ClientBuilder creates a runtime client for a set of credentials.
type ClientBuilder func(ctx context.Context, credentials providers.Credentials) (ConverseAPI, error)

type client struct {
	clientPool *sync.Map
	build      ClientBuilder
}

func NewBedrockClient() providers.Client {
	return NewBedrockClientWithBuilder(defaultBuilder)
}

func NewBedrockClientWithBuilder(build ClientBuilder) providers.Client {
	return &client{
		clientPool: &sync.Map{},
		build:      build,
	}
}

// Ask runs a single-turn Converse call. Bedrock exposes no top-k knob in
// the common inference config, so TopK is ignored.
func (c *client) Ask(
	ctx context.Context,
	cfg *providers.Config,
	prompt string,
) (*providers.CompletionResponse, error) {
	if cfg.Model == "" {
		return nil, providers.ErrMissingModel
	}

	runtime, err := c.getOrCreateClient(ctx, cfg.Credentials)
	if err != nil {
		return nil, fmt.Errorf("failed to create Bedrock client: %w", err)
	}

	input := &bedrockruntime.ConverseInput{
		ModelId: aws.String(cfg.Model),
		Messages: []types.Message{{
			Role:    types.ConversationRoleUser,
			Content: []types.ContentBlock{&types.ContentBlockMemberText{Value: prompt}},
		}},
		InferenceConfig: inferenceConfig(cfg),
	}
	if cfg.SystemPrompt != "" {
		input.System = []types.SystemContentBlock{
			&types.SystemContentBlockMemberText{Value: cfg.SystemPrompt},
		}
	}

	out, err := runtime.Converse(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to invoke model: %w", err)
	}

	text := outputText(out)
	if text == "" {
		return nil, domain.ErrEmptyCompletion
	}

	resp := &providers.CompletionResponse{
		ID:       providers.ResponseID(ctx, "bedrock"),
		Model:    cfg.Model,
		Response: text,
	}
	if out.Usage != nil {
		resp.Usage = providers.Usage{
			PromptTokens:     int(aws.ToInt32(out.Usage.InputTokens)),
			CompletionTokens: int(aws.ToInt32(out.Usage.OutputTokens)),
			TotalTokens:      int(aws.ToInt32(out.Usage.TotalTokens)),
		}
	}
	return resp, nil
}

func inferenceConfig(cfg *providers.Config) *types.InferenceConfiguration {
	ic := &types.InferenceConfiguration{
		Temperature: aws.Float32(float32(cfg.Temperature)),
	}
	if cfg.TopP > 0 {
		ic.TopP = aws.Float32(float32(cfg.TopP))
	}
	if cfg.MaxTokens > 0 {
		ic.MaxTokens = aws.Int32(int32(cfg.MaxTokens))
	}
	return ic
}

func outputText(out *bedrockruntime.ConverseOutput) string {
	msg, ok := out.Output.(*types.ConverseOutputMemberMessage)
	if !ok {
		return ""
	}
	var b strings.Builder
	for _, block := range msg.Value.Content {
		if text, ok := block.(*types.ContentBlockMemberText); ok {
			b.WriteString(text.Value)
		}
	}
	return strings.TrimSpace(b.String())
}

func (c *client) getOrCreateClient(ctx context.Context, credentials providers.Credentials) (ConverseAPI, error) {
	clientKey := buildClientKey(credentials)
	if v, ok := c.clientPool.Load(clientKey); ok {
		runtime, ok := v.(ConverseAPI)
		if !ok {
			return nil, fmt.Errorf("invalid client type in pool")
		}
		return runtime, nil
	}
	runtime, err := c.build(ctx, credentials)
	if err != nil {
		return nil, err
	}
	c.clientPool.Store(clientKey, runtime)
	return runtime, nil
}

func defaultBuilder(ctx context.Context, credentials providers.Credentials) (ConverseAPI, error) {
	cfg, err := buildAwsConfig(ctx, credentials)
	if err != nil {
		return nil, err
	}
	return bedrockruntime.NewFromConfig(cfg), nil
}

func buildClientKey(credentials providers.Credentials) string {
	if credentials.AwsBedrock == nil {
		return credentials.ApiKey
	}
	return fmt.Sprintf("%s:%s:%s:%v:%s",
		credentials.ApiKey,
		credentials.AwsBedrock.AccessKey,
		credentials.AwsBedrock.Region,
		credentials.AwsBedrock.UseRole,
		credentials.AwsBedrock.RoleARN,
	)
}

func buildAwsConfig(ctx context.Context, credentials providers.Credentials) (aws.Config, error) {
	if credentials.AwsBedrock == nil {
		return config.LoadDefaultConfig(ctx, config.WithRegion(defaultRegion))
	}

	region := credentials.AwsBedrock.Region
	if region == "" {
		region = defaultRegion
	}
	accessKey := credentials.AwsBedrock.AccessKey
	secretKey := credentials.AwsBedrock.SecretKey

	if credentials.AwsBedrock.UseRole && credentials.AwsBedrock.RoleARN != "" {
		creds, err := assumeRole(ctx, accessKey, secretKey, credentials.AwsBedrock.RoleARN, region)
		if err != nil {
			return aws.Config{}, err
		}
		return loadAWSConfig(ctx, aws.ToString(creds.AccessKeyId), aws.ToString(creds.SecretAccessKey), aws.ToString(creds.SessionToken), region)
	}
	if accessKey == "" {
		return config.LoadDefaultConfig(ctx, config.WithRegion(region))
	}
	return loadAWSConfig(ctx, accessKey, secretKey, credentials.AwsBedrock.SessionToken, region)
}

func loadAWSConfig(ctx context.Context, accessKey, secretKey, sessionToken, region string) (aws.Config, error) {
	return config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(aws.CredentialsProviderFunc(
			func(ctx context.Context) (aws.Credentials, error) {
				return aws.Credentials{
					AccessKeyID:     accessKey,
					SecretAccessKey: secretKey,
					SessionToken:    sessionToken,
				}, nil
			},
		)),
		config.WithRegion(region),
	)
}

func assumeRole(ctx context.Context, accessKey, secretKey, roleARN, region string) (*stsTypes.Credentials, error) {
	baseCfg, err := loadAWSConfig(ctx, accessKey, secretKey, "", region)
	if err != nil {
		return nil, fmt.Errorf("unable to load base AWS config: %w", err)
	}
	output, err := sts.NewFromConfig(baseCfg).AssumeRole(ctx, &sts.AssumeRoleInput{
		RoleArn:         aws.String(roleARN),
		RoleSessionName: aws.String(defaultSessionName),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to assume role: %w", err)
	}
	return output.Credentials, nil
}
