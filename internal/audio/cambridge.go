package audio

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"codeberg.org/snonux/lexinote/internal/dictionary"
)

// CambridgeProvider fetches dictionary pronunciation audio through the
// backend's Cambridge scraper endpoint. UK accent only.
type CambridgeProvider struct {
	backendURL string
	httpClient *http.Client
}

// NewCambridgeProvider creates a provider backed by the scraper at
// backendURL.
func NewCambridgeProvider(backendURL string) *CambridgeProvider {
	return &CambridgeProvider{
		backendURL: backendURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Name returns the provider name
func (p *CambridgeProvider) Name() string {
	return "cambridge"
}

// FetchReference asks the backend for the Cambridge audio URL of word.
func (p *CambridgeProvider) FetchReference(ctx context.Context, word string) (*dictionary.AudioRef, error) {
	endpoint := fmt.Sprintf("%s/api/cambridge-audio?word=%s", p.backendURL, url.QueryEscape(word))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach audio backend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("backend error: %d", resp.StatusCode)
	}

	var result struct {
		Success  bool   `json:"success"`
		AudioURL string `json:"audio_url"`
		Accent   string `json:"accent"`
		Source   string `json:"source"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("malformed backend response: %w", err)
	}

	if !result.Success || result.AudioURL == "" {
		return nil, fmt.Errorf("no pronunciation audio for %q", word)
	}

	return &dictionary.AudioRef{
		URL:    result.AudioURL,
		Accent: result.Accent,
		Source: result.Source,
	}, nil
}
