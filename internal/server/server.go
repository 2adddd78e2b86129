package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/avolkov/youtube-playlist-mcp/internal/youtube"
)

// Server wraps the MCP server with the YouTube API client handle.
type Server struct {
	mcpServer *mcp.Server
	logger    *slog.Logger
	transport string
	port      int
	pace      time.Duration

	clients *youtube.LazyClient

	// chat optionally serves the web chat front end on the http transport.
	chat http.Handler
}

// NewServer creates a new MCP server instance exposing the playlist tools
// and prompt templates. The YouTube client is acquired lazily through
// clients, so tool registration never blocks on authentication.
// chat may be nil; when set it is mounted under /chat on the http transport.
func NewServer(logger *slog.Logger, clients *youtube.LazyClient, transport string, port int, pace time.Duration, chat http.Handler) *Server {
	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    "youtube-playlist-mcp",
		Version: "0.1.0",
	}, &mcp.ServerOptions{
		HasTools:   true,
		HasPrompts: true,
	})

	s := &Server{
		mcpServer: mcpServer,
		logger:    logger,
		transport: transport,
		port:      port,
		pace:      pace,
		clients:   clients,
		chat:      chat,
	}

	s.registerPlaylistTools()
	s.registerSearchTools()
	s.registerMutationTools()
	s.registerPrompts()

	return s
}

// client returns the (lazily acquired) YouTube client for a tool call.
func (s *Server) client(ctx context.Context) (*youtube.Client, error) {
	return s.clients.Get(ctx)
}

// Run starts the MCP server with the configured transport.
// Use TRANSPORT=stdio (default) for local MCP clients or TRANSPORT=http
// for hosted deployments.
func (s *Server) Run(ctx context.Context) error {
	switch s.transport {
	case "http":
		return s.runHTTP(ctx)
	default:
		return s.runStdio(ctx)
	}
}

// runStdio runs the MCP server on the stdio transport (for local MCP clients).
func (s *Server) runStdio(ctx context.Context) error {
	s.logger.Info("starting MCP server", "transport", "stdio")
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

// runHTTP runs the MCP server as an HTTP server using the Streamable HTTP
// transport, with the web chat front end mounted alongside when enabled.
// Intended for trusted/local deployments; there is no request auth layer.
func (s *Server) runHTTP(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting MCP server", "transport", "streamable-http", "addr", addr, "chat", s.chat != nil)

	streamHandler := mcp.NewStreamableHTTPHandler(func(req *http.Request) *mcp.Server {
		return s.mcpServer
	}, &mcp.StreamableHTTPOptions{
		Logger: s.logger,
	})

	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "ok")
	})

	// Streamable HTTP MCP endpoint
	mux.Handle("/mcp", streamHandler)

	// Web chat front end
	if s.chat != nil {
		mux.Handle("/chat/", http.StripPrefix("/chat", s.chat))
	}

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server failed: %w", err)
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down HTTP server")
		if err := httpServer.Shutdown(context.Background()); err != nil {
			s.logger.Error("failed to shut down HTTP server", "error", err)
		}
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}
