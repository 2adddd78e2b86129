package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/avolkov/youtube-playlist-mcp/internal/auth"
	"github.com/avolkov/youtube-playlist-mcp/internal/config"
	"github.com/avolkov/youtube-playlist-mcp/internal/llm"
	"github.com/avolkov/youtube-playlist-mcp/internal/server"
	"github.com/avolkov/youtube-playlist-mcp/internal/webchat"
	"github.com/avolkov/youtube-playlist-mcp/internal/youtube"
)

func main() {
	// CRITICAL: Redirect standard log output to stderr first (before any
	// logging) - stdout belongs to the stdio MCP transport
	log.SetOutput(os.Stderr)

	// Create structured logger (JSON format to stderr)
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Create context with signal handling for clean shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	oauthCfg := auth.NewOAuth2Config(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.OAuthRedirectURL)
	storage := auth.SelectStorage(cfg.OAuthTokenJSON, logger)

	// The YouTube client is dialed lazily so the server can start before
	// authentication completes; a failed dial is retried on the next call.
	clients := youtube.NewLazyClient(func(ctx context.Context) (*youtube.Client, error) {
		httpClient, err := auth.Authenticate(ctx, oauthCfg, storage, cfg.OAuthPort, logger)
		if err != nil {
			return nil, err
		}

		ytClient, err := youtube.NewClient(ctx, httpClient)
		if err != nil {
			return nil, err
		}

		channelName, err := ytClient.ValidateAuth(ctx)
		if err != nil {
			return nil, err
		}
		logger.Info("authenticated with youtube", "channel", channelName)

		return ytClient, nil
	})

	// On the stdio transport, authenticate eagerly: the browser OAuth flow
	// needs the terminal, which is unusable once a client is attached.
	if cfg.Transport == "stdio" {
		if _, err := clients.Get(ctx); err != nil {
			logger.Error("authentication failed", "error", err)
			os.Exit(1)
		}
	}

	// Optional web chat front end (http transport only)
	var chat http.Handler
	if cfg.ChatEnabled {
		llmClient := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, nil)
		chat = webchat.NewHandler(logger, llmClient, clients, cfg.InsertPace())
	}

	// Create and run MCP server
	srv := server.NewServer(logger, clients, cfg.Transport, cfg.Port, cfg.InsertPace(), chat)
	if err := srv.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}
