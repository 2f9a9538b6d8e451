package dictionary

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GeminiProvider implements Provider using the Google Gemini API.
type GeminiProvider struct {
	client *genai.Client
	config *Config
}

// NewGeminiProvider creates a new Gemini completion provider.
func NewGeminiProvider(ctx context.Context, config *Config) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.GeminiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiProvider{
		client: client,
		config: config,
	}, nil
}

// Define generates a lexical profile for a word.
func (p *GeminiProvider) Define(ctx context.Context, word string) (*Record, error) {
	content, err := p.generate(ctx, genai.Text(definePrompt(word, p.config.TargetLanguage)), 0.7)
	if err != nil {
		return nil, err
	}
	return decodeRecord(content)
}

// SuggestDeck asks for a deck recommendation.
func (p *GeminiProvider) SuggestDeck(ctx context.Context, word, definition string, decks []string) (*DeckSuggestion, error) {
	content, err := p.generate(ctx, genai.Text(suggestDeckPrompt(word, definition, decks)), 0.3)
	if err != nil {
		return nil, err
	}
	return decodeSuggestion(content, decks), nil
}

// Chat answers a tutoring question with conversation history.
func (p *GeminiProvider) Chat(ctx context.Context, message, wordContext string, history []ChatMessage) (string, error) {
	// Gemini has no system role on this path, so the tutor prompt
	// leads the conversation as a user turn.
	contents := []*genai.Content{
		genai.NewContentFromText(chatSystemPrompt(wordContext), genai.RoleUser),
	}
	for _, msg := range history {
		contents = append(contents, genai.NewContentFromText(msg.Content, geminiRole(msg.Role)))
	}
	contents = append(contents, genai.NewContentFromText(message, genai.RoleUser))

	return p.generate(ctx, contents, 0.8)
}

// Translate translates an English text fragment.
func (p *GeminiProvider) Translate(ctx context.Context, text string) (string, error) {
	content, err := p.generate(ctx, genai.Text(translatePrompt(text, p.config.TargetLanguage)), 0.3)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(content), nil
}

// Name returns the provider name.
func (p *GeminiProvider) Name() string {
	return "gemini"
}

// geminiRole maps a conversation role to the genai role constants.
func geminiRole(role string) genai.Role {
	if role == "user" {
		return genai.RoleUser
	}
	return genai.RoleModel
}

// generate runs one GenerateContent call and returns the response text.
func (p *GeminiProvider) generate(ctx context.Context, contents []*genai.Content, temperature float32) (string, error) {
	resp, err := p.client.Models.GenerateContent(ctx, p.config.GeminiModel, contents, &genai.GenerateContentConfig{
		Temperature: genai.Ptr(temperature),
	})
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("no response from Gemini")
	}

	return text, nil
}
