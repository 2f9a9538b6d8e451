package audio

import (
	"context"
	"fmt"
	"net/url"

	"codeberg.org/snonux/lexinote/internal/dictionary"
)

// GoogleTTSProvider synthesizes a pronunciation URL from the Google
// Translate TTS endpoint. The URL is deterministic, so this provider
// never fails and serves as the fallback of last resort.
type GoogleTTSProvider struct{}

// NewGoogleTTSProvider creates the Google TTS fallback provider.
func NewGoogleTTSProvider() *GoogleTTSProvider {
	return &GoogleTTSProvider{}
}

// Name returns the provider name
func (p *GoogleTTSProvider) Name() string {
	return "googletts"
}

// FetchReference builds the TTS URL for word.
func (p *GoogleTTSProvider) FetchReference(ctx context.Context, word string) (*dictionary.AudioRef, error) {
	ttsURL := fmt.Sprintf(
		"https://translate.google.com/translate_tts?ie=UTF-8&q=%s&tl=en&client=tw-ob",
		url.QueryEscape(word))

	return &dictionary.AudioRef{
		URL:    ttsURL,
		Accent: "Google TTS",
		Source: "Google",
	}, nil
}
