package audio

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"codeberg.org/snonux/lexinote/internal/vault"
)

type recordingSink struct {
	filename string
	data     []byte
	fail     bool
}

func (s *recordingSink) StoreMediaFile(ctx context.Context, filename string, data []byte) (string, error) {
	if s.fail {
		return "", context.DeadlineExceeded
	}
	s.filename = filename
	s.data = data
	return filename, nil
}

func TestDownloaderProxyURL(t *testing.T) {
	d := NewDownloader("http://localhost:6789")
	got := d.ProxyURL("https://example.com/a.mp3?x=1")
	want := "http://localhost:6789/api/audio-proxy?url=https%3A%2F%2Fexample.com%2Fa.mp3%3Fx%3D1"
	if got != want {
		t.Errorf("ProxyURL = %q, want %q", got, want)
	}
}

func TestDownloaderMaterialize(t *testing.T) {
	payload := []byte{0xFF, 0xFB, 0x90, 0x00}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/audio-proxy" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("url"); got != "https://example.com/a.mp3" {
			t.Errorf("url param = %q", got)
		}
		w.Write(payload)
	}))
	defer server.Close()

	store := vault.NewDirStore(t.TempDir())
	sink := &recordingSink{}
	d := NewDownloader(server.URL)

	embed, err := d.Materialize(context.Background(), "https://example.com/a.mp3", "don't", store, sink)
	if err != nil {
		t.Fatalf("Materialize failed: %v", err)
	}
	if embed != "[sound:don_t.mp3]" {
		t.Errorf("embed = %q", embed)
	}
	if !store.Exists(filepath.Join(Folder, "don_t.mp3")) {
		t.Error("audio file missing from vault")
	}
	if sink.filename != "don_t.mp3" {
		t.Errorf("sink filename = %q", sink.filename)
	}
}

func TestDownloaderMaterializeToleratesSinkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte{0x01})
	}))
	defer server.Close()

	store := vault.NewDirStore(t.TempDir())
	d := NewDownloader(server.URL)

	embed, err := d.Materialize(context.Background(), "https://example.com/a.mp3", "cat", store, &recordingSink{fail: true})
	if err != nil {
		t.Fatalf("Materialize must tolerate sink failure: %v", err)
	}
	if !strings.HasPrefix(embed, "[sound:") {
		t.Errorf("embed = %q", embed)
	}
}

func TestDownloaderMaterializeProxyError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream gone", http.StatusBadGateway)
	}))
	defer server.Close()

	store := vault.NewDirStore(t.TempDir())
	d := NewDownloader(server.URL)

	if _, err := d.Materialize(context.Background(), "https://example.com/a.mp3", "cat", store, nil); err == nil {
		t.Error("expected error on proxy failure")
	}
}
