package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const defaultGeminiModel = "gemini-2.0-flash"

var ErrMissingLLMKey = errors.New("GEMINI_API_KEY environment variable is not set")

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
	CORS       CORSConfig       `mapstructure:"cors"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit"`
	Redis      RedisConfig      `mapstructure:"redis"`
	LLM        LLMConfig        `mapstructure:"llm"`
	Transcript TranscriptConfig `mapstructure:"transcript"`
	Breaker    BreakerConfig    `mapstructure:"breaker"`
}

type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	MetricsPort  int           `mapstructure:"metrics_port"`
	ProxyHeader  string        `mapstructure:"proxy_header"`
	BodyLimit    int           `mapstructure:"body_limit"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type CORSConfig struct {
	AllowOrigins     []string `mapstructure:"allow_origins"`
	AllowMethods     []string `mapstructure:"allow_methods"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	ExposeHeaders    []string `mapstructure:"expose_headers"`
	MaxAge           string   `mapstructure:"max_age"`
}

type RateLimitConfig struct {
	Backend          string        `mapstructure:"backend"`
	Window           time.Duration `mapstructure:"window"`
	MaxRequests      int           `mapstructure:"max_requests"`
	CleanupThreshold int           `mapstructure:"cleanup_threshold"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TLS      bool   `mapstructure:"tls"`
}

type SamplingConfig struct {
	Temperature float64 `mapstructure:"temperature"`
	TopP        float64 `mapstructure:"top_p"`
	TopK        int     `mapstructure:"top_k"`
}

type LLMConfig struct {
	Provider   string                 `mapstructure:"provider"`
	Model      string                 `mapstructure:"model"`
	APIKey     string                 `mapstructure:"api_key"`
	MaxTokens  int                    `mapstructure:"max_tokens"`
	Timeout    time.Duration          `mapstructure:"timeout"`
	Generation SamplingConfig         `mapstructure:"generation"`
	Refinement SamplingConfig         `mapstructure:"refinement"`
	Options    map[string]interface{} `mapstructure:"options"`
	AWS        AWSConfig              `mapstructure:"aws"`
	Azure      AzureConfig            `mapstructure:"azure"`
}

type AWSConfig struct {
	AccessKey    string `mapstructure:"access_key"`
	SecretKey    string `mapstructure:"secret_key"`
	SessionToken string `mapstructure:"session_token"`
	Region       string `mapstructure:"region"`
	UseRole      bool   `mapstructure:"use_role"`
	RoleARN      string `mapstructure:"role_arn"`
}

type AzureConfig struct {
	Endpoint    string `mapstructure:"endpoint"`
	ApiVersion  string `mapstructure:"api_version"`
	UseIdentity bool   `mapstructure:"use_identity"`
}

type TranscriptConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	Timeout        time.Duration `mapstructure:"timeout"`
	UserAgent      string        `mapstructure:"user_agent"`
	AcceptLanguage string        `mapstructure:"accept_language"`
}

type BreakerConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	MaxFailures uint32        `mapstructure:"max_failures"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

var globalConfig Config

// Load reads config.yaml from configPath (falling back to ./config and the
// working directory), applies environment overrides and fills defaults.
func Load(configPath string) error {
	v := viper.New()
	setDefaultValues(v)
	var cfg Config
	if err := loadConfigFile(v, configPath, "config", &cfg); err != nil {
		return err
	}
	globalConfig = cfg
	if globalConfig.LLM.Model == "" && isGemini(globalConfig.LLM.Provider) {
		globalConfig.LLM.Model = defaultGeminiModel
	}
	return globalConfig.Validate()
}

func loadConfigFile(v *viper.Viper, configPath, fileName string, out interface{}) error {
	v.SetConfigName(fileName)
	v.SetConfigType("yaml")
	if configPath != "" {
		v.AddConfigPath(configPath)
	}
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("llm.api_key", "GEMINI_API_KEY", "LLM_API_KEY")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("error reading config file %s.yaml: %w", fileName, err)
		}
	}

	if err := v.Unmarshal(out); err != nil {
		return fmt.Errorf("failed to unmarshal %s config: %w", fileName, err)
	}
	return nil
}

func setDefaultValues(v *viper.Viper) {
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.metrics_port", 9090)
	v.SetDefault("server.body_limit", 1024*1024)
	v.SetDefault("server.read_timeout", 60*time.Second)
	v.SetDefault("server.write_timeout", 180*time.Second)
	v.SetDefault("server.idle_timeout", 120*time.Second)

	v.SetDefault("metrics.enabled", true)

	v.SetDefault("cors.allow_origins", []string{"*"})
	v.SetDefault("cors.allow_methods", []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allow_credentials", true)
	v.SetDefault("cors.expose_headers", []string{"*"})
	v.SetDefault("cors.max_age", "86400")

	v.SetDefault("rate_limit.backend", "memory")
	v.SetDefault("rate_limit.window", 60*time.Second)
	v.SetDefault("rate_limit.max_requests", 5)
	v.SetDefault("rate_limit.cleanup_threshold", 10000)

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)

	v.SetDefault("llm.provider", "gemini")
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.max_tokens", 4096)
	v.SetDefault("llm.timeout", 120*time.Second)
	v.SetDefault("llm.generation.temperature", 0.3)
	v.SetDefault("llm.generation.top_p", 0.95)
	v.SetDefault("llm.generation.top_k", 40)
	v.SetDefault("llm.refinement.temperature", 0.1)
	v.SetDefault("llm.refinement.top_p", 0.95)
	v.SetDefault("llm.refinement.top_k", 40)

	v.SetDefault("transcript.base_url", "https://www.youtube.com")
	v.SetDefault("transcript.timeout", 30*time.Second)
	v.SetDefault("transcript.user_agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36")
	v.SetDefault("transcript.accept_language", "en-US,en;q=0.9")

	v.SetDefault("breaker.enabled", true)
	v.SetDefault("breaker.max_failures", 5)
	v.SetDefault("breaker.timeout", 30*time.Second)
}

// Validate fails fast on settings the service cannot run without.
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case "gemini", "google", "anthropic":
	case "openai", "bedrock", "azure":
		if c.LLM.Model == "" {
			return fmt.Errorf("llm.model is required for provider %q", c.LLM.Provider)
		}
	default:
		return fmt.Errorf("unsupported llm.provider: %q", c.LLM.Provider)
	}
	if c.LLM.APIKey == "" && !keylessProvider(c.LLM) {
		return ErrMissingLLMKey
	}
	if c.RateLimit.MaxRequests <= 0 {
		return fmt.Errorf("rate_limit.max_requests must be positive, got %d", c.RateLimit.MaxRequests)
	}
	if c.RateLimit.Window <= 0 {
		return fmt.Errorf("rate_limit.window must be positive, got %s", c.RateLimit.Window)
	}
	switch c.RateLimit.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("unsupported rate_limit.backend: %q", c.RateLimit.Backend)
	}
	return nil
}

func isGemini(provider string) bool {
	return provider == "gemini" || provider == "google"
}

// bedrock can authenticate with static AWS keys and azure with a managed
// identity, neither needs llm.api_key.
func keylessProvider(llm LLMConfig) bool {
	switch llm.Provider {
	case "bedrock":
		return llm.AWS.AccessKey != ""
	case "azure":
		return llm.Azure.UseIdentity
	}
	return false
}

func GetConfig() *Config {
	return &globalConfig
}
