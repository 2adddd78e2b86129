package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestChat(t *testing.T) {
	t.Run("returns assistant text", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/chat/completions" {
				t.Errorf("expected path /chat/completions, got %s", r.URL.Path)
			}
			if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
				t.Errorf("Authorization = %q, want bearer key", got)
			}

			var req chatRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Fatalf("failed to decode request: %v", err)
			}
			if req.Model != "test-model" {
				t.Errorf("model = %q, want test-model", req.Model)
			}

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{
				"choices": []map[string]any{
					{"message": map[string]any{"role": "assistant", "content": "hello"}},
				},
			})
		}))
		defer server.Close()

		client := NewClient(server.URL, "test-key", "test-model", nil)
		msg, err := client.Chat(context.Background(), []Message{{Role: "user", Content: "hi"}}, nil)
		if err != nil {
			t.Fatalf("Chat failed: %v", err)
		}
		if msg.Content != "hello" {
			t.Errorf("content = %q, want hello", msg.Content)
		}
	})

	t.Run("decodes tool calls", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{
				"choices": []map[string]any{
					{"message": map[string]any{
						"role": "assistant",
						"tool_calls": []map[string]any{
							{
								"id":   "call_1",
								"type": "function",
								"function": map[string]any{
									"name":      "list_playlists",
									"arguments": "{}",
								},
							},
						},
					}},
				},
			})
		}))
		defer server.Close()

		client := NewClient(server.URL, "test-key", "test-model", nil)
		msg, err := client.Chat(context.Background(), []Message{{Role: "user", Content: "show my playlists"}}, nil)
		if err != nil {
			t.Fatalf("Chat failed: %v", err)
		}
		if len(msg.ToolCalls) != 1 || msg.ToolCalls[0].Function.Name != "list_playlists" {
			t.Errorf("tool calls = %+v, want one list_playlists call", msg.ToolCalls)
		}
	})

	t.Run("surfaces API errors", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]any{"message": "rate limit exceeded"},
			})
		}))
		defer server.Close()

		client := NewClient(server.URL, "test-key", "test-model", nil)
		_, err := client.Chat(context.Background(), []Message{{Role: "user", Content: "hi"}}, nil)
		if err == nil {
			t.Fatal("expected error for non-2xx response")
		}
	})
}
