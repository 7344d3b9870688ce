package config

import (
	"os"
	"strconv"
	"time"

	"github.com/use-agent/qualify/models"
)

// Config holds all application configuration.
type Config struct {
	LLM      LLMConfig
	Retry    RetryConfig
	Scraper  ScraperConfig
	Browser  BrowserConfig
	Pipeline PipelineConfig
	Store    StoreConfig
	Log      LogConfig
}

// LLMConfig controls the classification-service client.
type LLMConfig struct {
	// APIKey authenticates against the OpenAI-compatible endpoint. Required.
	APIKey string

	// BaseURL is the API base, e.g. "https://api.openai.com/v1".
	BaseURL string

	// Model is the chat model used for classification.
	Model string // default: "gpt-4o-mini"

	// MaxTokens bounds the response; generous enough for a 3-sentence reason.
	MaxTokens int // default: 500
}

// RetryConfig controls the retry executor for classification calls.
type RetryConfig struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int // default: 3

	// BaseDelay is the wait before the first retry; doubles per attempt.
	BaseDelay time.Duration // default: 2s
}

// ScraperConfig controls per-URL scraping behavior.
type ScraperConfig struct {
	// PageTimeout bounds navigation + rendering for one URL.
	PageTimeout time.Duration // default: 30s
}

// BrowserConfig controls the shared browser session.
type BrowserConfig struct {
	// Headless controls whether the browser runs headless.
	Headless bool // default: true

	// NoSandbox disables Chrome's sandbox (needed in Docker).
	NoSandbox bool // default: false

	// BrowserBin overrides the Chromium binary path.
	BrowserBin string
}

// PipelineConfig controls the orchestrator.
type PipelineConfig struct {
	// RequestDelay is the fixed pause between consecutive URLs.
	RequestDelay time.Duration // default: 2s

	// Prompt is the ICP rubric passed to the classifier.
	// Empty means the built-in default rubric.
	Prompt string
}

// StoreConfig controls the embedded record store.
type StoreConfig struct {
	// Path is the Badger database directory.
	Path string // default: "data/qualify"
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		LLM: LLMConfig{
			APIKey:    envOr("QUALIFY_OPENAI_API_KEY", os.Getenv("OPENAI_API_KEY")),
			BaseURL:   envOr("QUALIFY_OPENAI_BASE_URL", "https://api.openai.com/v1"),
			Model:     envOr("QUALIFY_MODEL", "gpt-4o-mini"),
			MaxTokens: envIntOr("QUALIFY_MAX_TOKENS", 500),
		},
		Retry: RetryConfig{
			MaxAttempts: envIntOr("QUALIFY_MAX_RETRIES", 3),
			BaseDelay:   envDurationOr("QUALIFY_RETRY_BASE_DELAY", 2*time.Second),
		},
		Scraper: ScraperConfig{
			PageTimeout: envDurationOr("QUALIFY_PAGE_TIMEOUT", 30*time.Second),
		},
		Browser: BrowserConfig{
			Headless:   envBoolOr("QUALIFY_HEADLESS", true),
			NoSandbox:  envBoolOr("QUALIFY_NO_SANDBOX", false),
			BrowserBin: os.Getenv("QUALIFY_BROWSER_BIN"),
		},
		Pipeline: PipelineConfig{
			RequestDelay: envDurationOr("QUALIFY_REQUEST_DELAY", 2*time.Second),
			Prompt:       os.Getenv("QUALIFY_ICP_PROMPT"),
		},
		Store: StoreConfig{
			Path: envOr("QUALIFY_STORE_PATH", "data/qualify"),
		},
		Log: LogConfig{
			Level:  envOr("QUALIFY_LOG_LEVEL", "info"),
			Format: envOr("QUALIFY_LOG_FORMAT", "json"),
		},
	}
}

// Validate enforces the fatal input contract. The URL list itself is
// validated by the caller since it arrives outside the environment.
func (c *Config) Validate() error {
	if c.LLM.APIKey == "" {
		return models.NewPipelineError(models.ErrCodeInvalidInput,
			"missing API key (set QUALIFY_OPENAI_API_KEY or OPENAI_API_KEY)", nil)
	}
	if c.Retry.MaxAttempts < 1 {
		return models.NewPipelineError(models.ErrCodeInvalidInput,
			"QUALIFY_MAX_RETRIES must be at least 1", nil)
	}
	return nil
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
