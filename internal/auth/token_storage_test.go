package auth

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

func TestFileTokenStorage(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "token.json")
		storage := NewFileTokenStorage(path)

		token := &oauth2.Token{
			AccessToken:  "access-abc",
			RefreshToken: "refresh-def",
			TokenType:    "Bearer",
			Expiry:       time.Now().Add(time.Hour).UTC(),
		}

		if err := storage.Save(token); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		loaded, err := storage.Load()
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if loaded.AccessToken != token.AccessToken || loaded.RefreshToken != token.RefreshToken {
			t.Errorf("loaded token %+v does not match saved token", loaded)
		}
	})

	t.Run("no leftover temp file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "token.json")
		storage := NewFileTokenStorage(path)

		if err := storage.Save(&oauth2.Token{AccessToken: "a"}); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		if _, err := os.Stat(path + ".tmp"); !errors.Is(err, os.ErrNotExist) {
			t.Errorf("temporary file still present after Save")
		}
	})

	t.Run("load missing file fails", func(t *testing.T) {
		storage := NewFileTokenStorage(filepath.Join(t.TempDir(), "missing.json"))
		if _, err := storage.Load(); err == nil {
			t.Error("expected error for missing token file")
		}
	})
}

func TestEnvTokenStorage(t *testing.T) {
	t.Run("parses token json", func(t *testing.T) {
		storage := NewEnvTokenStorage(`{"access_token":"abc","token_type":"Bearer"}`, discardLogger())
		token, err := storage.Load()
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if token.AccessToken != "abc" {
			t.Errorf("access token = %q, want abc", token.AccessToken)
		}
	})

	t.Run("empty value fails", func(t *testing.T) {
		storage := NewEnvTokenStorage("", discardLogger())
		if _, err := storage.Load(); err == nil {
			t.Error("expected error for empty token JSON")
		}
	})

	t.Run("save is a no-op", func(t *testing.T) {
		storage := NewEnvTokenStorage(`{}`, discardLogger())
		if err := storage.Save(&oauth2.Token{AccessToken: "x"}); err != nil {
			t.Errorf("Save returned error: %v", err)
		}
	})
}

func TestSelectStorage(t *testing.T) {
	if _, ok := SelectStorage(`{"access_token":"a"}`, discardLogger()).(*EnvTokenStorage); !ok {
		t.Error("expected env storage when token JSON is set")
	}
	if _, ok := SelectStorage("", discardLogger()).(*FileTokenStorage); !ok {
		t.Error("expected file storage when token JSON is empty")
	}
}

// staticTokenSource returns a fixed sequence of tokens.
type staticTokenSource struct {
	tokens []*oauth2.Token
	i      int
}

func (s *staticTokenSource) Token() (*oauth2.Token, error) {
	t := s.tokens[s.i]
	if s.i < len(s.tokens)-1 {
		s.i++
	}
	return t, nil
}

// recordingStorage counts Save calls.
type recordingStorage struct {
	saves int
}

func (r *recordingStorage) Load() (*oauth2.Token, error) { return nil, errors.New("empty") }
func (r *recordingStorage) Save(*oauth2.Token) error {
	r.saves++
	return nil
}

func TestPersistingTokenSource(t *testing.T) {
	a := &oauth2.Token{AccessToken: "a"}
	b := &oauth2.Token{AccessToken: "b"}

	storage := &recordingStorage{}
	source := NewPersistingTokenSource(&staticTokenSource{tokens: []*oauth2.Token{a, a, b}}, storage, discardLogger())

	for range 3 {
		if _, err := source.Token(); err != nil {
			t.Fatalf("Token failed: %v", err)
		}
	}

	// Saved once for the initial token and once for the refresh to "b";
	// the repeated "a" must not trigger a second save.
	if storage.saves != 2 {
		t.Errorf("storage saw %d saves, want 2", storage.saves)
	}
}
