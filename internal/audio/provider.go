// Package audio locates pronunciation audio for words and materializes
// it into the vault and the Anki media collection.
package audio

import (
	"context"
	"fmt"

	"codeberg.org/snonux/lexinote/internal/dictionary"
)

// ReferenceProvider locates a pronunciation audio reference for a word.
type ReferenceProvider interface {
	// FetchReference returns the audio reference for word, or an error
	// when the provider has none.
	FetchReference(ctx context.Context, word string) (*dictionary.AudioRef, error)

	// Name returns the provider name
	Name() string
}

// Config holds common configuration for audio providers
type Config struct {
	Provider   string // Provider name: "cambridge" or "googletts"
	BackendURL string // Backend base URL for the Cambridge scraper and audio proxy
}

// DefaultProviderConfig returns default configuration
func DefaultProviderConfig() *Config {
	return &Config{
		Provider:   "cambridge",
		BackendURL: "http://localhost:6789",
	}
}

// NewProvider creates the appropriate audio provider based on configuration
func NewProvider(config *Config) (ReferenceProvider, error) {
	if config == nil {
		config = DefaultProviderConfig()
	}

	switch config.Provider {
	case "cambridge":
		if config.BackendURL == "" {
			return nil, fmt.Errorf("backend URL is required for Cambridge audio")
		}
		return NewCambridgeProvider(config.BackendURL), nil

	case "googletts":
		return NewGoogleTTSProvider(), nil

	default:
		return nil, fmt.Errorf("unknown audio provider: %s", config.Provider)
	}
}

// ProviderWithFallback wraps a primary provider with a fallback option
type ProviderWithFallback struct {
	primary  ReferenceProvider
	fallback ReferenceProvider
}

// NewProviderWithFallback creates a provider that falls back to secondary if primary fails
func NewProviderWithFallback(primary, fallback ReferenceProvider) ReferenceProvider {
	return &ProviderWithFallback{
		primary:  primary,
		fallback: fallback,
	}
}

// FetchReference tries primary provider first, falls back to secondary on error
func (p *ProviderWithFallback) FetchReference(ctx context.Context, word string) (*dictionary.AudioRef, error) {
	ref, err := p.primary.FetchReference(ctx, word)
	if err != nil {
		// Log the primary error
		fmt.Printf("Primary provider (%s) failed: %v. Falling back to %s\n",
			p.primary.Name(), err, p.fallback.Name())

		return p.fallback.FetchReference(ctx, word)
	}
	return ref, nil
}

// Name returns the provider name
func (p *ProviderWithFallback) Name() string {
	return fmt.Sprintf("%s (fallback: %s)", p.primary.Name(), p.fallback.Name())
}
