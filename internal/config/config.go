package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	// GoogleClientID is the Google OAuth2 client ID (required).
	GoogleClientID string `env:"GOOGLE_CLIENT_ID,required,notEmpty"`

	// GoogleClientSecret is the Google OAuth2 client secret (required).
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET,required,notEmpty"`

	// OAuthRedirectURL is the OAuth callback URL (default: http://localhost:8080/callback).
	OAuthRedirectURL string `env:"OAUTH_REDIRECT_URL" envDefault:"http://localhost:8080/callback"`

	// OAuthPort is the port for the local OAuth callback server (default: 8080).
	OAuthPort int `env:"OAUTH_PORT" envDefault:"8080"`

	// OAuthTokenJSON optionally provides the OAuth token as raw JSON,
	// taking precedence over the token file.
	OAuthTokenJSON string `env:"OAUTH_TOKEN_JSON"`

	// Transport selects the MCP transport: "stdio" (default) or "http".
	Transport string `env:"TRANSPORT" envDefault:"stdio"`

	// Port is the listen port for the http transport and the chat UI (default: 3000).
	Port int `env:"PORT" envDefault:"3000"`

	// InsertPaceMS is the fixed delay in milliseconds between consecutive
	// playlist inserts in a bulk add (default: 250).
	InsertPaceMS int `env:"INSERT_PACE_MS" envDefault:"250"`

	// ChatEnabled serves the web chat front end alongside the http transport.
	ChatEnabled bool `env:"CHAT_ENABLED" envDefault:"false"`

	// LLMBaseURL is the base URL of an OpenAI-compatible API used by the chat
	// front end (default: https://api.openai.com/v1).
	LLMBaseURL string `env:"LLM_BASE_URL" envDefault:"https://api.openai.com/v1"`

	// LLMAPIKey authenticates chat requests to the LLM API.
	// Required when ChatEnabled is true.
	LLMAPIKey string `env:"LLM_API_KEY"`

	// LLMModel is the model name sent with chat requests (default: gpt-4o-mini).
	LLMModel string `env:"LLM_MODEL" envDefault:"gpt-4o-mini"`
}

// InsertPace returns the bulk-insert pacing delay as a duration.
func (c *Config) InsertPace() time.Duration {
	return time.Duration(c.InsertPaceMS) * time.Millisecond
}

// Load loads the configuration from environment variables.
// It first attempts to load a .env file (if present), then parses environment
// variables. Returns an error if required environment variables are missing
// or the combination is inconsistent.
func Load() (*Config, error) {
	// Load .env file if present (ignore error - .env is optional)
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if cfg.Transport != "stdio" && cfg.Transport != "http" {
		return nil, fmt.Errorf("TRANSPORT must be 'stdio' or 'http', got %q", cfg.Transport)
	}
	if cfg.ChatEnabled && cfg.LLMAPIKey == "" {
		return nil, fmt.Errorf("LLM_API_KEY is required when CHAT_ENABLED is true")
	}

	return cfg, nil
}
