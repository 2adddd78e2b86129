package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/youtube/v3"
)

// NewOAuth2Config creates a new OAuth2 configuration for the Google YouTube API.
func NewOAuth2Config(clientID, clientSecret, redirectURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Endpoint:     google.Endpoint,
		Scopes:       []string{youtube.YoutubeScope},
	}
}

// Authenticate performs OAuth2 authentication, either by loading a saved token
// or initiating a web-based OAuth2 flow with a local callback server.
// Returns an authenticated HTTP client whose refreshed tokens are persisted
// back to storage opportunistically.
func Authenticate(ctx context.Context, cfg *oauth2.Config, storage TokenStorage, port int, logger *slog.Logger) (*http.Client, error) {
	token, err := storage.Load()
	if err == nil {
		logger.Info("loaded token from storage")
		return clientFor(ctx, cfg, token, storage, logger), nil
	}

	logger.Info("no saved token found, starting OAuth2 flow", "error", err.Error())

	token, err = runBrowserFlow(ctx, cfg, port, logger)
	if err != nil {
		return nil, err
	}

	if err := storage.Save(token); err != nil {
		// Continue anyway - token is still valid for this session
		logger.Error("failed to save token", "error", err)
	} else {
		logger.Info("token saved to storage")
	}

	return clientFor(ctx, cfg, token, storage, logger), nil
}

// clientFor builds an HTTP client around a persisting token source.
func clientFor(ctx context.Context, cfg *oauth2.Config, token *oauth2.Token, storage TokenStorage, logger *slog.Logger) *http.Client {
	base := cfg.TokenSource(ctx, token)
	return oauth2.NewClient(ctx, NewPersistingTokenSource(base, storage, logger))
}

// runBrowserFlow prints an authorization URL, waits for the redirect on a
// local callback server, and exchanges the authorization code for a token.
func runBrowserFlow(ctx context.Context, cfg *oauth2.Config, port int, logger *slog.Logger) (*oauth2.Token, error) {
	authURL := cfg.AuthCodeURL("state",
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"), // Force refresh token on re-auth
	)

	fmt.Fprintf(os.Stderr, "\nVisit this URL to authorize:\n%s\n\n", authURL)

	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			errCh <- fmt.Errorf("no authorization code in callback")
			http.Error(w, "Authorization failed: no code", http.StatusBadRequest)
			return
		}
		codeCh <- code
		fmt.Fprintf(w, "Authorization successful! You can close this window.")
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: mux,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("callback server failed: %w", err)
		}
	}()

	logger.Info("callback server started", "port", port)

	var code string
	select {
	case code = <-codeCh:
		logger.Info("received authorization code")
	case err := <-errCh:
		return nil, err
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shut down callback server", "error", err)
	}

	token, err := cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code for token: %w", err)
	}

	logger.Info("successfully exchanged code for token")
	return token, nil
}
