package dictionary

// Record is the AI-sourced lexical profile of a single word.
type Record struct {
	Word           string        `json:"word"`
	WordType       string        `json:"wordType"`
	Pronunciation  string        `json:"pronunciation"`
	Definition     string        `json:"definition"`
	Translation    string        `json:"translation"`
	Examples       []string      `json:"examples"`
	Synonyms       []string      `json:"synonyms"`
	Antonyms       []string      `json:"antonyms"`
	Collocations   []Collocation `json:"collocations"`
	WordFamily     []RelatedForm `json:"wordFamily"`
	Nuance         string        `json:"nuance"`
	CommonMistakes []string      `json:"commonMistakes"`

	// Audio is resolved separately from the completion provider and
	// attached before rendering.
	Audio *AudioRef `json:"-"`

	// AudioEmbed holds the [sound:file.mp3] reference once the audio
	// file has been downloaded and stored.
	AudioEmbed string `json:"-"`
}

// Collocation pairs a common phrase with a usage example.
type Collocation struct {
	Phrase string `json:"phrase"`
	Usage  string `json:"usage"`
}

// RelatedForm is a derived word from the same root.
type RelatedForm struct {
	Word        string `json:"word"`
	Type        string `json:"type"`
	Translation string `json:"translation"`
}

// AudioRef points at a pronunciation recording.
type AudioRef struct {
	URL    string
	Accent string
	Source string
}

// DeckSuggestion is the AI's deck recommendation for a word.
type DeckSuggestion struct {
	Category  string `json:"category"`
	Deck      string `json:"subDeck"`
	Reason    string `json:"reason"`
	IsNewDeck bool   `json:"isNewDeck"`
}

// ChatMessage is a single turn in a tutor conversation.
type ChatMessage struct {
	Role    string // "user" or "assistant"
	Content string
}
