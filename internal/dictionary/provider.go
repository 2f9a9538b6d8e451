package dictionary

import (
	"context"
	"fmt"
)

// Provider defines the interface for AI completion providers.
type Provider interface {
	// Define generates a full lexical profile for a word.
	Define(ctx context.Context, word string) (*Record, error)

	// SuggestDeck recommends an Anki deck for a word given the user's
	// existing decks.
	SuggestDeck(ctx context.Context, word, definition string, decks []string) (*DeckSuggestion, error)

	// Chat answers a tutoring question about the current word.
	Chat(ctx context.Context, message, wordContext string, history []ChatMessage) (string, error)

	// Translate translates an English text fragment to the configured
	// target language.
	Translate(ctx context.Context, text string) (string, error)

	// Name returns the provider name.
	Name() string
}

// Config holds common configuration for completion providers.
type Config struct {
	Provider string // Provider name: "groq" or "gemini"

	// Language the translation fields are rendered in.
	TargetLanguage string

	// Groq-specific settings
	GroqKey     string
	GroqModel   string // e.g. "openai/gpt-oss-120b"
	GroqBaseURL string

	// Gemini-specific settings
	GeminiKey   string
	GeminiModel string // e.g. "gemini-2.0-flash"
}

// DefaultConfig returns default provider configuration.
func DefaultConfig() *Config {
	return &Config{
		Provider:       "groq",
		TargetLanguage: "Vietnamese",
		GroqModel:      "openai/gpt-oss-120b",
		GroqBaseURL:    "https://api.groq.com/openai/v1",
		GeminiModel:    "gemini-2.0-flash",
	}
}

// NewProvider creates the appropriate completion provider based on
// configuration.
func NewProvider(ctx context.Context, config *Config) (Provider, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case "groq":
		if config.GroqKey == "" {
			return nil, fmt.Errorf("Groq API key is required")
		}
		return NewGroqProvider(config), nil

	case "gemini":
		if config.GeminiKey == "" {
			return nil, fmt.Errorf("Gemini API key is required")
		}
		return NewGeminiProvider(ctx, config)

	default:
		return nil, fmt.Errorf("unknown completion provider: %s", config.Provider)
	}
}
