package youtube

import (
	"context"
	"errors"
	"testing"
)

func TestLazyClient(t *testing.T) {
	ctx := context.Background()

	t.Run("caches first successful acquisition", func(t *testing.T) {
		dials := 0
		lazy := NewLazyClient(func(context.Context) (*Client, error) {
			dials++
			return &Client{}, nil
		})

		first, err := lazy.Get(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := lazy.Get(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if first != second {
			t.Error("expected the cached client on the second call")
		}
		if dials != 1 {
			t.Errorf("dialed %d times, want 1", dials)
		}
	})

	t.Run("acquisition error is not cached", func(t *testing.T) {
		dials := 0
		lazy := NewLazyClient(func(context.Context) (*Client, error) {
			dials++
			if dials == 1 {
				return nil, errors.New("token expired")
			}
			return &Client{}, nil
		})

		if _, err := lazy.Get(ctx); err == nil {
			t.Fatal("expected error from first acquisition")
		}
		if _, err := lazy.Get(ctx); err != nil {
			t.Fatalf("expected retry to succeed, got %v", err)
		}
		if dials != 2 {
			t.Errorf("dialed %d times, want 2", dials)
		}
	})

	t.Run("reset forces a fresh dial", func(t *testing.T) {
		dials := 0
		lazy := NewLazyClient(func(context.Context) (*Client, error) {
			dials++
			return &Client{}, nil
		})

		if _, err := lazy.Get(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		lazy.Reset()
		if _, err := lazy.Get(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if dials != 2 {
			t.Errorf("dialed %d times, want 2 after reset", dials)
		}
	})
}
