package youtube

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// Client wraps the YouTube API service with helper methods
type Client struct {
	service *youtube.Service
}

// NewClient creates a new YouTube API client using the provided HTTP client
func NewClient(ctx context.Context, httpClient *http.Client) (*Client, error) {
	service, err := youtube.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create youtube service: %w", err)
	}

	return &Client{
		service: service,
	}, nil
}

// ValidateAuth validates the authenticated user has access to YouTube API
// by fetching their channel information. Returns the channel name on success.
func (c *Client) ValidateAuth(ctx context.Context) (string, error) {
	call := c.service.Channels.List([]string{"snippet"}).Mine(true)
	resp, err := call.Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("auth validation failed: %w", err)
	}

	if len(resp.Items) == 0 {
		return "", fmt.Errorf("no channel found for authenticated user")
	}

	return resp.Items[0].Snippet.Title, nil
}

// DialFunc acquires an authenticated Client.
type DialFunc func(ctx context.Context) (*Client, error)

// LazyClient is a lazily-initialized, process-wide client handle.
// The first successful acquisition is cached for reuse; an acquisition
// error leaves the cache empty so the next call retries from scratch.
type LazyClient struct {
	dial DialFunc

	mu     sync.Mutex
	client *Client
}

// NewLazyClient creates a LazyClient that acquires clients via dial.
func NewLazyClient(dial DialFunc) *LazyClient {
	return &LazyClient{dial: dial}
}

// Get returns the cached client, dialing one first if needed.
func (l *LazyClient) Get(ctx context.Context) (*Client, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.client != nil {
		return l.client, nil
	}

	client, err := l.dial(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire youtube client: %w", err)
	}

	l.client = client
	return l.client, nil
}

// Reset drops the cached client so the next Get dials again.
// Call after a failure that suggests the cached handle has gone stale.
func (l *LazyClient) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.client = nil
}
