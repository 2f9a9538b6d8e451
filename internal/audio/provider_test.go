package audio

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"codeberg.org/snonux/lexinote/internal/dictionary"
)

func TestNewProviderSelection(t *testing.T) {
	provider, err := NewProvider(&Config{Provider: "cambridge", BackendURL: "http://localhost:6789"})
	if err != nil {
		t.Fatalf("NewProvider(cambridge) failed: %v", err)
	}
	if provider.Name() != "cambridge" {
		t.Errorf("Name = %q", provider.Name())
	}

	provider, err = NewProvider(&Config{Provider: "googletts"})
	if err != nil {
		t.Fatalf("NewProvider(googletts) failed: %v", err)
	}
	if provider.Name() != "googletts" {
		t.Errorf("Name = %q", provider.Name())
	}

	if _, err := NewProvider(&Config{Provider: "espeak"}); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestCambridgeProviderFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/cambridge-audio" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("word"); got != "example" {
			t.Errorf("word = %q", got)
		}
		fmt.Fprint(w, `{"success":true,"audio_url":"https://dictionary.cambridge.org/media/example.mp3","accent":"UK","source":"Cambridge"}`)
	}))
	defer server.Close()

	provider := NewCambridgeProvider(server.URL)
	ref, err := provider.FetchReference(context.Background(), "example")
	if err != nil {
		t.Fatalf("FetchReference failed: %v", err)
	}
	if ref.URL != "https://dictionary.cambridge.org/media/example.mp3" {
		t.Errorf("URL = %q", ref.URL)
	}
	if ref.Accent != "UK" || ref.Source != "Cambridge" {
		t.Errorf("ref = %+v", ref)
	}
}

func TestCambridgeProviderNoAudio(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success":false}`)
	}))
	defer server.Close()

	provider := NewCambridgeProvider(server.URL)
	if _, err := provider.FetchReference(context.Background(), "zzzz"); err == nil {
		t.Error("expected error when backend has no audio")
	}
}

func TestCambridgeProviderBackendError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "scrape failed", http.StatusBadGateway)
	}))
	defer server.Close()

	provider := NewCambridgeProvider(server.URL)
	if _, err := provider.FetchReference(context.Background(), "example"); err == nil {
		t.Error("expected error on backend failure")
	}
}

func TestGoogleTTSProviderNeverFails(t *testing.T) {
	provider := NewGoogleTTSProvider()
	ref, err := provider.FetchReference(context.Background(), "state of the art")
	if err != nil {
		t.Fatalf("FetchReference failed: %v", err)
	}
	if !strings.Contains(ref.URL, "translate_tts") {
		t.Errorf("URL = %q", ref.URL)
	}
	if !strings.Contains(ref.URL, "q=state+of+the+art") {
		t.Errorf("URL must query-escape the word: %q", ref.URL)
	}
	if ref.Accent != "Google TTS" || ref.Source != "Google" {
		t.Errorf("ref = %+v", ref)
	}
}

type failingProvider struct{}

func (failingProvider) FetchReference(ctx context.Context, word string) (*dictionary.AudioRef, error) {
	return nil, fmt.Errorf("no audio")
}
func (failingProvider) Name() string { return "failing" }

func TestProviderWithFallback(t *testing.T) {
	provider := NewProviderWithFallback(failingProvider{}, NewGoogleTTSProvider())

	ref, err := provider.FetchReference(context.Background(), "example")
	if err != nil {
		t.Fatalf("FetchReference failed: %v", err)
	}
	if ref.Source != "Google" {
		t.Errorf("Source = %q, want fallback result", ref.Source)
	}
}
