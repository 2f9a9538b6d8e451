package cli

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile     string
	VaultDir    string
	BatchFile   string
	Export      bool
	Deck        string
	Model       string
	OnDuplicate string
	Note        string
	Chat        string
	Translate   string
	APKGPath    string
	ListDecks   bool
	SkipAudio   bool
	SkipAnki    bool

	// Completion provider flags
	Provider       string
	TargetLanguage string

	// Service endpoint flags
	AnkiURL      string
	AudioBackend string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		Model:          "Basic",
		OnDuplicate:    "ask",
		Provider:       "groq",
		TargetLanguage: "Vietnamese",
		AnkiURL:        "http://127.0.0.1:8765",
		AudioBackend:   "http://localhost:6789",
	}
}
