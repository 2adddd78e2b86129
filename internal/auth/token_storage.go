package auth

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/oauth2"
)

// TokenStorage persists OAuth2 tokens between runs.
type TokenStorage interface {
	// Load retrieves a token from storage.
	Load() (*oauth2.Token, error)

	// Save persists a token to storage.
	Save(token *oauth2.Token) error
}

// SelectStorage picks the token storage for this run: a token provided via
// OAUTH_TOKEN_JSON takes precedence over the token file.
func SelectStorage(tokenJSON string, logger *slog.Logger) TokenStorage {
	if tokenJSON != "" {
		return NewEnvTokenStorage(tokenJSON, logger)
	}
	return NewFileTokenStorage(DefaultTokenPath())
}

// FileTokenStorage implements TokenStorage using file-based persistence.
type FileTokenStorage struct {
	path string
}

// NewFileTokenStorage creates a new FileTokenStorage with the specified path.
func NewFileTokenStorage(path string) *FileTokenStorage {
	return &FileTokenStorage{path: path}
}

// DefaultTokenPath returns the default path for token storage:
// ~/.config/youtube-playlist-mcp/token.json
func DefaultTokenPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to $HOME/.config
		home, err := os.UserHomeDir()
		if err != nil {
			return "token.json" // Last resort fallback
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "youtube-playlist-mcp", "token.json")
}

// Load reads the token from the file.
func (f *FileTokenStorage) Load() (*oauth2.Token, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("failed to unmarshal token: %w", err)
	}

	return &token, nil
}

// Save persists the token to the file atomically.
// It creates the parent directory if it doesn't exist, writes to a temporary
// file, and then renames it to the target path.
func (f *FileTokenStorage) Save(token *oauth2.Token) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}

	tmpPath := f.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temporary token file: %w", err)
	}

	if err := os.Rename(tmpPath, f.path); err != nil {
		return fmt.Errorf("failed to rename token file: %w", err)
	}

	return nil
}

// EnvTokenStorage implements TokenStorage using a token provided as a JSON
// string in an environment variable. Useful for hosted deployments where
// filesystem persistence is not available.
// Note: Save is a no-op — token refreshes will not be persisted between restarts.
type EnvTokenStorage struct {
	tokenJSON string
	logger    *slog.Logger
}

// NewEnvTokenStorage creates a new EnvTokenStorage from a raw JSON token string.
func NewEnvTokenStorage(tokenJSON string, logger *slog.Logger) *EnvTokenStorage {
	return &EnvTokenStorage{tokenJSON: tokenJSON, logger: logger}
}

// Load parses the JSON token string and returns the OAuth2 token.
func (e *EnvTokenStorage) Load() (*oauth2.Token, error) {
	if e.tokenJSON == "" {
		return nil, fmt.Errorf("OAUTH_TOKEN_JSON is empty")
	}

	var token oauth2.Token
	if err := json.Unmarshal([]byte(e.tokenJSON), &token); err != nil {
		return nil, fmt.Errorf("failed to unmarshal OAUTH_TOKEN_JSON: %w", err)
	}

	return &token, nil
}

// Save is a no-op for EnvTokenStorage. Token refreshes are not persisted.
// A warning is logged to alert operators that refresh tokens may expire.
func (e *EnvTokenStorage) Save(_ *oauth2.Token) error {
	if e.logger != nil {
		e.logger.Warn("EnvTokenStorage: token refresh cannot be persisted; update OAUTH_TOKEN_JSON when token expires")
	}
	return nil
}

// PersistingTokenSource wraps an oauth2.TokenSource to automatically persist
// refreshed tokens to storage.
type PersistingTokenSource struct {
	base      oauth2.TokenSource
	storage   TokenStorage
	logger    *slog.Logger
	mu        sync.Mutex
	lastToken *oauth2.Token
}

// NewPersistingTokenSource creates a new PersistingTokenSource.
func NewPersistingTokenSource(base oauth2.TokenSource, storage TokenStorage, logger *slog.Logger) *PersistingTokenSource {
	return &PersistingTokenSource{
		base:    base,
		storage: storage,
		logger:  logger,
	}
}

// Token returns a valid token, refreshing if necessary, and persists any refreshed token.
func (p *PersistingTokenSource) Token() (*oauth2.Token, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	token, err := p.base.Token()
	if err != nil {
		return nil, err
	}

	// A changed access token means the base source refreshed
	if p.lastToken == nil || p.lastToken.AccessToken != token.AccessToken {
		if err := p.storage.Save(token); err != nil {
			// Don't fail the request; the token is still valid for this session
			p.logger.Error("failed to persist refreshed token", "error", err)
		} else {
			p.logger.Info("persisted refreshed token")
		}
		p.lastToken = token
	}

	return token, nil
}

// Verify interfaces are implemented at compile time
var _ TokenStorage = (*FileTokenStorage)(nil)
var _ TokenStorage = (*EnvTokenStorage)(nil)
var _ oauth2.TokenSource = (*PersistingTokenSource)(nil)
