package dictionary

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// GroqProvider implements Provider against Groq's OpenAI-compatible
// chat completion API.
type GroqProvider struct {
	client *openai.Client
	config *Config
}

// NewGroqProvider creates a new Groq completion provider.
func NewGroqProvider(config *Config) *GroqProvider {
	cfg := openai.DefaultConfig(config.GroqKey)
	if config.GroqBaseURL != "" {
		cfg.BaseURL = config.GroqBaseURL
	}

	return &GroqProvider{
		client: openai.NewClientWithConfig(cfg),
		config: config,
	}
}

// Define generates a lexical profile for a word.
func (p *GroqProvider) Define(ctx context.Context, word string) (*Record, error) {
	content, err := p.complete(ctx, []openai.ChatCompletionMessage{
		{
			Role:    openai.ChatMessageRoleUser,
			Content: definePrompt(word, p.config.TargetLanguage),
		},
	}, 0.7, 3000)
	if err != nil {
		return nil, err
	}

	return decodeRecord(content)
}

// SuggestDeck asks for a deck recommendation based on the user's
// existing decks. Malformed responses fall back to a deterministic
// choice rather than failing the export.
func (p *GroqProvider) SuggestDeck(ctx context.Context, word, definition string, decks []string) (*DeckSuggestion, error) {
	content, err := p.complete(ctx, []openai.ChatCompletionMessage{
		{
			Role:    openai.ChatMessageRoleUser,
			Content: suggestDeckPrompt(word, definition, decks),
		},
	}, 0.3, 200)
	if err != nil {
		return nil, err
	}

	return decodeSuggestion(content, decks), nil
}

// Chat answers a tutoring question with conversation history.
func (p *GroqProvider) Chat(ctx context.Context, message, wordContext string, history []ChatMessage) (string, error) {
	messages := []openai.ChatCompletionMessage{
		{
			Role:    openai.ChatMessageRoleSystem,
			Content: chatSystemPrompt(wordContext),
		},
	}
	for _, msg := range history {
		role := openai.ChatMessageRoleAssistant
		if msg.Role == "user" {
			role = openai.ChatMessageRoleUser
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: msg.Content,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: message,
	})

	return p.complete(ctx, messages, 0.8, 10000)
}

// Translate translates an English text fragment.
func (p *GroqProvider) Translate(ctx context.Context, text string) (string, error) {
	content, err := p.complete(ctx, []openai.ChatCompletionMessage{
		{
			Role:    openai.ChatMessageRoleUser,
			Content: translatePrompt(text, p.config.TargetLanguage),
		},
	}, 0.3, 1000)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(content), nil
}

// Name returns the provider name.
func (p *GroqProvider) Name() string {
	return "groq"
}

// complete runs a single chat completion request and returns the
// first choice's content.
func (p *GroqProvider) complete(ctx context.Context, messages []openai.ChatCompletionMessage, temperature float32, maxTokens int) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.config.GroqModel,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("Groq API error: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("no response from Groq")
	}

	return resp.Choices[0].Message.Content, nil
}
