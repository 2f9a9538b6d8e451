package audio

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"codeberg.org/snonux/lexinote/internal"
	"codeberg.org/snonux/lexinote/internal/vault"
)

// Folder is the vault directory that holds downloaded pronunciation
// files.
const Folder = "English Audio"

// MediaSink registers media files with an external collection. The
// AnkiConnect client satisfies this.
type MediaSink interface {
	StoreMediaFile(ctx context.Context, filename string, data []byte) (string, error)
}

// Downloader fetches audio bytes through the backend's CORS proxy and
// stores them where the note and the flashcard can reach them.
type Downloader struct {
	backendURL string
	httpClient *http.Client
}

// NewDownloader creates a downloader using the proxy at backendURL.
func NewDownloader(backendURL string) *Downloader {
	return &Downloader{
		backendURL: backendURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// ProxyURL wraps audioURL in the backend's proxy endpoint.
func (d *Downloader) ProxyURL(audioURL string) string {
	return fmt.Sprintf("%s/api/audio-proxy?url=%s", d.backendURL, url.QueryEscape(audioURL))
}

// Materialize downloads audioURL, writes it into the vault audio
// folder as <sanitized word>.mp3 and registers it with the media sink
// when one is given. It returns the [sound:...] embed token.
//
// A sink failure is logged and tolerated; the vault copy is the one
// that matters.
func (d *Downloader) Materialize(ctx context.Context, audioURL, word string, store vault.Store, sink MediaSink) (string, error) {
	data, err := d.fetch(ctx, audioURL)
	if err != nil {
		return "", err
	}

	fileName := internal.SanitizeFilename(word) + ".mp3"
	if err := store.WriteBinary(filepath.Join(Folder, fileName), data); err != nil {
		return "", fmt.Errorf("failed to save audio: %w", err)
	}

	if sink != nil {
		if _, err := sink.StoreMediaFile(ctx, fileName, data); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to store audio in Anki: %v\n", err)
		}
	}

	return fmt.Sprintf("[sound:%s]", fileName), nil
}

func (d *Downloader) fetch(ctx context.Context, audioURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.ProxyURL(audioURL), nil)
	if err != nil {
		return nil, err
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download audio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download audio: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio body: %w", err)
	}
	return data, nil
}
