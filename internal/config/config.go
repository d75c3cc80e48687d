package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// ErrMissingCredential is returned by Validate when the completion service
// has no API key configured.
var ErrMissingCredential = errors.New("missing credential")

const (
	defaultGitHubAPIURL = "https://api.github.com"
	defaultLLMBaseURL   = "https://api.openai.com/v1"
	defaultLLMModel     = "gpt-3.5-turbo"
	defaultHTTPTimeout  = 30 * time.Second
)

type Config struct {
	GitHubToken  string
	GitHubAPIURL string `validate:"required,url"`

	LLMBaseURL string `validate:"required,url"`
	LLMAPIKey  string `validate:"required"`
	LLMModel   string `validate:"required"`

	HTTPTimeout time.Duration `validate:"gt=0"`

	LogLevel  string
	LogFormat string `validate:"omitempty,oneof=console json"`
}

func Load() *Config {
	_ = godotenv.Load()
	return fromEnv(os.Getenv)
}

func fromEnv(getenv func(string) string) *Config {
	cfg := &Config{
		GitHubToken:  getenv("GITHUB_TOKEN"),
		GitHubAPIURL: getenv("GITHUB_API_URL"),

		LLMBaseURL: getenv("LLM_BASE_URL"),
		LLMAPIKey:  getenv("OPENAI_API_KEY"),
		LLMModel:   getenv("LLM_MODEL"),

		LogLevel:  strings.ToLower(getenv("LOG_LEVEL")),
		LogFormat: strings.ToLower(getenv("LOG_FORMAT")),
	}

	if cfg.LLMAPIKey == "" {
		cfg.LLMAPIKey = getenv("LLM_API_KEY")
	}
	if cfg.GitHubAPIURL == "" {
		cfg.GitHubAPIURL = defaultGitHubAPIURL
	}
	cfg.GitHubAPIURL = strings.TrimSuffix(cfg.GitHubAPIURL, "/")
	if cfg.LLMBaseURL == "" {
		cfg.LLMBaseURL = defaultLLMBaseURL
	}
	if cfg.LLMModel == "" {
		cfg.LLMModel = defaultLLMModel
	}

	cfg.HTTPTimeout = defaultHTTPTimeout
	if v := getenv("HTTP_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.HTTPTimeout = d
		}
	}

	return cfg
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate reports the first configuration problem. A missing completion
// API key is reported as ErrMissingCredential.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating config: %w", err)
	}
	for _, fe := range verrs {
		if fe.StructField() == "LLMAPIKey" {
			return fmt.Errorf("%w: OPENAI_API_KEY is not set", ErrMissingCredential)
		}
	}
	fe := verrs[0]
	return fmt.Errorf("invalid config: %s failed %q", fe.StructField(), fe.Tag())
}
