package dictionary

import (
	"context"
	"strings"
	"testing"

	"google.golang.org/genai"
)

func TestDecodeRecord(t *testing.T) {
	content := `{
		"word": "example",
		"wordType": "noun",
		"pronunciation": "/ɪɡˈzɑːmpl/",
		"definition": "A thing characteristic of its kind.",
		"translation": "ví dụ",
		"examples": ["This is an example.", "Give me an example."],
		"synonyms": ["sample", "instance"],
		"antonyms": [],
		"collocations": [{"phrase": "for example", "usage": "For example, this one."}],
		"wordFamily": [{"word": "exemplify", "type": "verb", "translation": "minh họa"}],
		"nuance": "Used to clarify something.",
		"commonMistakes": ["Often confused with 'sample'"]
	}`

	rec, err := decodeRecord(content)
	if err != nil {
		t.Fatalf("decodeRecord failed: %v", err)
	}

	if rec.Word != "example" {
		t.Errorf("Word = %q, want example", rec.Word)
	}
	if rec.WordType != "noun" {
		t.Errorf("WordType = %q, want noun", rec.WordType)
	}
	if len(rec.Examples) != 2 {
		t.Errorf("len(Examples) = %d, want 2", len(rec.Examples))
	}
	if len(rec.Collocations) != 1 || rec.Collocations[0].Phrase != "for example" {
		t.Errorf("Collocations = %+v", rec.Collocations)
	}
	if len(rec.WordFamily) != 1 || rec.WordFamily[0].Word != "exemplify" {
		t.Errorf("WordFamily = %+v", rec.WordFamily)
	}
}

func TestDecodeRecordStripsCodeFences(t *testing.T) {
	content := "```json\n{\"word\": \"test\", \"definition\": \"a trial\"}\n```"

	rec, err := decodeRecord(content)
	if err != nil {
		t.Fatalf("decodeRecord failed: %v", err)
	}
	if rec.Word != "test" {
		t.Errorf("Word = %q, want test", rec.Word)
	}
}

func TestDecodeRecordInvalidJSON(t *testing.T) {
	if _, err := decodeRecord("I am sorry, I cannot help with that."); err == nil {
		t.Error("expected error for non-JSON response")
	}
}

func TestDecodeSuggestion(t *testing.T) {
	content := `{"category": "TOEIC", "subDeck": "TOEIC::Business_Vocabulary", "reason": "Business context.", "isNewDeck": false}`

	s := decodeSuggestion(content, []string{"TOEIC::Business_Vocabulary"})
	if s.Deck != "TOEIC::Business_Vocabulary" {
		t.Errorf("Deck = %q", s.Deck)
	}
	if s.Category != "TOEIC" {
		t.Errorf("Category = %q", s.Category)
	}
}

func TestDecodeSuggestionFallback(t *testing.T) {
	// Malformed response with decks available: first deck wins.
	s := decodeSuggestion("not json at all", []string{"TOEIC::Daily_Life", "GENERAL::Idioms"})
	if s.Deck != "TOEIC::Daily_Life" {
		t.Errorf("fallback Deck = %q, want first deck", s.Deck)
	}
	if s.Category != "TOEIC" {
		t.Errorf("fallback Category = %q, want TOEIC", s.Category)
	}
	if s.IsNewDeck {
		t.Error("fallback with existing decks should not suggest a new deck")
	}

	// No decks at all: suggest creating one.
	s = decodeSuggestion("still not json", nil)
	if s.Deck != "GENERAL::Daily_Conversation" {
		t.Errorf("empty fallback Deck = %q", s.Deck)
	}
	if !s.IsNewDeck {
		t.Error("empty fallback should suggest a new deck")
	}
}

func TestSuggestDeckPromptGroupsDecks(t *testing.T) {
	prompt := suggestDeckPrompt("revenue", "income from business", []string{
		"TOEIC::Business_Vocabulary",
		"GENERAL::Daily_Conversation",
		"Misc",
	})

	if !strings.Contains(prompt, "TOEIC Decks") {
		t.Error("prompt missing TOEIC group")
	}
	if !strings.Contains(prompt, "GENERAL Decks") {
		t.Error("prompt missing GENERAL group")
	}
	if !strings.Contains(prompt, "Other Decks") {
		t.Error("prompt missing Other group")
	}
	if !strings.Contains(prompt, "- Misc") {
		t.Error("prompt missing uncategorized deck")
	}
}

func TestSuggestDeckPromptNoDecks(t *testing.T) {
	prompt := suggestDeckPrompt("revenue", "income", nil)
	if !strings.Contains(prompt, "No suitable decks found") {
		t.Error("prompt should propose deck creation when user has no decks")
	}
}

func TestGeminiRoleMapping(t *testing.T) {
	// The genai API only knows user and model turns; every non-user
	// role maps to the model side. The typed return keeps the values
	// usable as genai.Role arguments.
	var got genai.Role = geminiRole("user")
	if got != genai.RoleUser {
		t.Errorf("geminiRole(user) = %q, want %q", got, genai.RoleUser)
	}
	if got = geminiRole("assistant"); got != genai.RoleModel {
		t.Errorf("geminiRole(assistant) = %q, want %q", got, genai.RoleModel)
	}
	if got = geminiRole("system"); got != genai.RoleModel {
		t.Errorf("geminiRole(system) = %q, want %q", got, genai.RoleModel)
	}
}

func TestNewProviderUnknown(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "wishful"
	cfg.GroqKey = "k"
	if _, err := NewProvider(context.Background(), cfg); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestNewProviderRequiresKey(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GroqKey = ""
	if _, err := NewProvider(context.Background(), cfg); err == nil {
		t.Error("expected error when Groq key is missing")
	}
}
