package dictionary

import (
	"encoding/json"
	"fmt"
	"strings"
)

// definePrompt asks for the full lexical profile as raw JSON.
func definePrompt(word, targetLanguage string) string {
	return fmt.Sprintf(`Analyze the English word %q and provide a comprehensive analysis in JSON format. Include:

1. word: The word itself
2. wordType: Part of speech (noun, verb, adjective, etc.)
3. pronunciation: IPA pronunciation
4. definition: Clear, concise definition in English
5. translation: %s translation
6. examples: Array of 3-4 example sentences
7. synonyms: Array of synonyms
8. antonyms: Array of antonyms
9. collocations: Array of objects with "phrase" and "usage" - every collocation MUST carry a usage example
10. wordFamily: Array of DIFFERENT word forms derived from the same root, NOT the original word. Each entry is an object with "word", "type" (part of speech) and "translation" (%s)
11. nuance: Usage notes and subtle meanings
12. commonMistakes: Array of short descriptions of errors non-native speakers make

Format: Return ONLY valid JSON, no markdown code blocks.`, word, targetLanguage, targetLanguage)
}

// suggestDeckPrompt lists the user's decks grouped by category prefix
// and asks for a single deck recommendation as raw JSON.
func suggestDeckPrompt(word, definition string, decks []string) string {
	var toeic, general, other []string
	for _, d := range decks {
		switch {
		case strings.HasPrefix(d, "TOEIC::"):
			toeic = append(toeic, d)
		case strings.HasPrefix(d, "GENERAL::"):
			general = append(general, d)
		default:
			other = append(other, d)
		}
	}

	var list strings.Builder
	if len(toeic) > 0 {
		list.WriteString("\nTOEIC Decks (business/test-prep):\n")
		for _, d := range toeic {
			fmt.Fprintf(&list, "- %s\n", d)
		}
	}
	if len(general) > 0 {
		list.WriteString("\nGENERAL Decks (daily use):\n")
		for _, d := range general {
			fmt.Fprintf(&list, "- %s\n", d)
		}
	}
	if len(other) > 0 {
		list.WriteString("\nOther Decks:\n")
		for _, d := range other {
			fmt.Fprintf(&list, "- %s\n", d)
		}
	}
	if strings.TrimSpace(list.String()) == "" {
		list.WriteString(`
No suitable decks found. Suggest creating one of:
- TOEIC::Business_Vocabulary
- TOEIC::Daily_Life
- GENERAL::Daily_Conversation
- GENERAL::Academic_Writing`)
	}

	return fmt.Sprintf(`Analyze this English word and suggest the BEST deck from the user's existing Anki decks:

Word: %q
Definition: %q

User's Available Decks:%s

RULES:
1. Choose from the user's EXISTING decks above
2. If NO suitable deck exists, suggest creating a NEW deck with format: TOEIC::Category or GENERAL::Category
3. Match the word to the most relevant deck based on context

Return ONLY this JSON format (no markdown, no explanation):
{
  "category": "TOEIC or GENERAL",
  "subDeck": "exact deck name from list OR new deck suggestion",
  "reason": "brief explanation (1 sentence)",
  "isNewDeck": true/false
}`, word, definition, list.String())
}

// chatSystemPrompt keeps the tutor short and on topic.
func chatSystemPrompt(wordContext string) string {
	return fmt.Sprintf(`You are a concise English tutor. Current word: %s

Rules:
- Answer directly and briefly (2-3 sentences max)
- Focus ONLY on what user asked
- Use simple language, no formatting
- Give 1-2 examples if needed
- Be friendly but short`, wordContext)
}

// translatePrompt asks for a bare translation with no commentary.
func translatePrompt(text, targetLanguage string) string {
	return fmt.Sprintf(`Translate this English text to %s. Provide ONLY the %s translation, no explanation, no original text, just the translation:

%q`, targetLanguage, targetLanguage, text)
}

// stripCodeFences removes Markdown code fences that models sometimes
// wrap JSON responses in despite instructions.
func stripCodeFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// decodeRecord parses a model response into a Record.
func decodeRecord(content string) (*Record, error) {
	var rec Record
	if err := json.Unmarshal([]byte(stripCodeFences(content)), &rec); err != nil {
		return nil, fmt.Errorf("invalid JSON in model response: %w", err)
	}
	return &rec, nil
}

// decodeSuggestion parses a deck suggestion response. On malformed
// output it falls back deterministically: the first available deck, or
// a new GENERAL deck when the user has none.
func decodeSuggestion(content string, decks []string) *DeckSuggestion {
	var s DeckSuggestion
	if err := json.Unmarshal([]byte(stripCodeFences(content)), &s); err == nil && s.Deck != "" {
		return &s
	}

	if len(decks) > 0 {
		category := "GENERAL"
		if strings.HasPrefix(decks[0], "TOEIC::") {
			category = "TOEIC"
		}
		return &DeckSuggestion{
			Category: category,
			Deck:     decks[0],
			Reason:   "Using first available deck (parsing error)",
		}
	}
	return &DeckSuggestion{
		Category:  "GENERAL",
		Deck:      "GENERAL::Daily_Conversation",
		Reason:    "Suggest creating new deck (no decks found)",
		IsNewDeck: true,
	}
}
