// Package webchat is a thin web front end that wires an LLM to the playlist
// tools: a single-page chat UI plus one JSON endpoint that relays the
// conversation to the model and executes the tool calls it requests.
package webchat

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/avolkov/youtube-playlist-mcp/internal/llm"
	"github.com/avolkov/youtube-playlist-mcp/internal/youtube"
)

//go:embed index.html
var indexHTML []byte

// maxToolRounds bounds the tool-call loop for a single user turn.
const maxToolRounds = 8

const systemPrompt = `You are a YouTube playlist assistant. You manage the user's playlists through the available tools: searching videos, creating and deleting playlists, listing items, and adding or removing videos. Videos can be referenced by ID or by any common YouTube URL. Confirm with the user before deleting anything. Report per-video results when adding in bulk.`

// Handler serves the chat UI and the chat API.
type Handler struct {
	logger  *slog.Logger
	llm     *llm.Client
	clients *youtube.LazyClient
	pace    time.Duration
	mux     *http.ServeMux
}

// NewHandler creates the web chat handler. The YouTube client is acquired
// lazily per tool call, matching the MCP server.
func NewHandler(logger *slog.Logger, llmClient *llm.Client, clients *youtube.LazyClient, pace time.Duration) *Handler {
	h := &Handler{
		logger:  logger,
		llm:     llmClient,
		clients: clients,
		pace:    pace,
		mux:     http.NewServeMux(),
	}

	h.mux.HandleFunc("GET /", h.handleIndex)
	h.mux.HandleFunc("POST /api/chat", h.handleChat)

	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

type chatAPIRequest struct {
	Messages []llm.Message `json:"messages"`
}

type chatAPIResponse struct {
	Message llm.Message `json:"message"`
}

// handleChat relays the conversation to the LLM, executes any tool calls it
// requests, and loops until the model produces a final text answer.
func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatAPIRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.Messages) == 0 {
		http.Error(w, "messages cannot be empty", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	messages := append([]llm.Message{{Role: "system", Content: systemPrompt}}, req.Messages...)

	for round := 0; ; round++ {
		reply, err := h.llm.Chat(ctx, messages, toolDefinitions)
		if err != nil {
			h.logger.Error("chat request failed", "error", err)
			http.Error(w, "chat request failed", http.StatusBadGateway)
			return
		}

		if len(reply.ToolCalls) == 0 {
			writeJSON(w, chatAPIResponse{Message: *reply})
			return
		}

		if round >= maxToolRounds {
			h.logger.Warn("tool-call loop exceeded round limit", "rounds", round)
			http.Error(w, "conversation required too many tool rounds", http.StatusBadGateway)
			return
		}

		messages = append(messages, *reply)
		for _, call := range reply.ToolCalls {
			result := h.executeToolCall(ctx, call)
			messages = append(messages, llm.Message{
				Role:       "tool",
				ToolCallID: call.ID,
				Content:    result,
			})
		}
	}
}

// executeToolCall runs one requested tool call and returns its result as a
// string for the tool message. Tool failures are returned as content so the
// model can relay them, not as HTTP errors.
func (h *Handler) executeToolCall(ctx context.Context, call llm.ToolCall) string {
	h.logger.Info("executing tool call", "tool", call.Function.Name)

	result, err := h.dispatch(ctx, call.Function.Name, []byte(call.Function.Arguments))
	if err != nil {
		h.logger.Warn("tool call failed", "tool", call.Function.Name, "error", err)
		return fmt.Sprintf("Error: %v", err)
	}
	return result
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
