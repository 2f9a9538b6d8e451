package processor

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"codeberg.org/snonux/lexinote/internal"
	"codeberg.org/snonux/lexinote/internal/anki"
	"codeberg.org/snonux/lexinote/internal/audio"
	"codeberg.org/snonux/lexinote/internal/batch"
	"codeberg.org/snonux/lexinote/internal/cli"
	"codeberg.org/snonux/lexinote/internal/dictionary"
	"codeberg.org/snonux/lexinote/internal/lemma"
	"codeberg.org/snonux/lexinote/internal/note"
	"codeberg.org/snonux/lexinote/internal/vault"
	"codeberg.org/snonux/lexinote/internal/workflow"
)

// Services are the external capability clients the processor drives.
// Cards and Media are nil when no Anki instance should be contacted.
type Services struct {
	Completion dictionary.Provider
	Audio      audio.ReferenceProvider
	Downloader *audio.Downloader
	Store      vault.Store
	Cards      workflow.FlashcardService
	Media      audio.MediaSink
}

// BuildServices wires the real clients from flags and viper config.
// Modes that never call the AI (--apkg, --list-decks) skip the
// completion provider so they work without an API key.
func BuildServices(ctx context.Context, flags *cli.Flags) (Services, error) {
	var completion dictionary.Provider
	if flags.APKGPath == "" && !flags.ListDecks {
		completionConfig := dictionary.DefaultConfig()
		completionConfig.Provider = flags.Provider
		completionConfig.TargetLanguage = flags.TargetLanguage
		completionConfig.GroqKey = cli.GetGroqKey()
		completionConfig.GeminiKey = cli.GetGeminiKey()
		if viper.IsSet("completion.groq_model") {
			completionConfig.GroqModel = viper.GetString("completion.groq_model")
		}
		if viper.IsSet("completion.gemini_model") {
			completionConfig.GeminiModel = viper.GetString("completion.gemini_model")
		}

		var err error
		completion, err = dictionary.NewProvider(ctx, completionConfig)
		if err != nil {
			return Services{}, err
		}
	}

	reference := audio.NewProviderWithFallback(
		audio.NewCambridgeProvider(flags.AudioBackend),
		audio.NewGoogleTTSProvider(),
	)

	var downloader *audio.Downloader
	if !flags.SkipAudio {
		downloader = audio.NewDownloader(flags.AudioBackend)
	}

	services := Services{
		Completion: completion,
		Audio:      reference,
		Downloader: downloader,
		Store:      vault.NewDirStore(flags.VaultDir),
	}

	if !flags.SkipAnki {
		client := anki.NewClient(flags.AnkiURL)
		services.Cards = client
		services.Media = client
	}

	return services, nil
}

// Processor handles the main word processing logic
type Processor struct {
	flags    *cli.Flags
	services Services
	lookup   *workflow.LookupWorkflow
	export   *workflow.ExportWorkflow
}

// NewProcessor creates a new word processor
func NewProcessor(flags *cli.Flags, services Services) *Processor {
	p := &Processor{
		flags:    flags,
		services: services,
		lookup: workflow.NewLookupWorkflow(
			lemma.NewNormalizer(),
			services.Completion,
			services.Audio,
			services.Downloader,
			services.Store,
			services.Media,
		),
	}
	if services.Cards != nil {
		p.export = workflow.NewExportWorkflow(services.Cards)
	}
	return p
}

// ProcessBatch looks up every word from the batch file
func (p *Processor) ProcessBatch(ctx context.Context) error {
	words, err := batch.ReadWordFile(p.flags.BatchFile)
	if err != nil {
		return err
	}

	processedCount := 0
	errorCount := 0

	for i, word := range words {
		fmt.Printf("\nProcessing %d/%d: %s\n", i+1, len(words), word)
		if err := p.ProcessWord(ctx, word); err != nil {
			fmt.Fprintf(os.Stderr, "Error processing '%s': %v\n", word, err)
			errorCount++
			// Continue with next word
		} else {
			processedCount++
		}
	}

	fmt.Printf("\n=== Batch Summary ===\n")
	fmt.Printf("Total words: %d\n", len(words))
	fmt.Printf("Processed: %d\n", processedCount)
	if errorCount > 0 {
		fmt.Printf("Errors: %d\n", errorCount)
	}
	fmt.Printf("=====================\n")

	return nil
}

// ProcessWord runs the lookup pipeline for one word: look up, save the
// note, then optionally chat and export.
func (p *Processor) ProcessWord(ctx context.Context, word string) error {
	record, err := p.lookup.Lookup(ctx, word)
	if err != nil {
		return err
	}
	p.printRecord(record)

	path, err := p.lookup.Save(ctx, p.flags.Note)
	if err != nil {
		return err
	}
	fmt.Printf("Note saved: %s\n", path)

	if p.flags.Chat != "" {
		reply, err := p.lookup.Chat(ctx, p.flags.Chat)
		if err != nil {
			return err
		}
		fmt.Printf("\nTutor: %s\n", reply)
	}

	if p.flags.Export {
		return p.ExportCurrent(ctx)
	}

	return nil
}

// ExportCurrent exports the saved note of the current word to Anki.
// With no --deck flag the AI suggestion picks the deck.
func (p *Processor) ExportCurrent(ctx context.Context) error {
	if p.export == nil {
		return fmt.Errorf("export requires a running Anki instance (remove --skip-anki)")
	}
	record := p.lookup.Record()
	if record == nil {
		return fmt.Errorf("no word looked up yet")
	}

	deck := p.flags.Deck
	if deck == "" {
		deck = p.suggestDeck(ctx, record)
	}

	notePath := filepath.Join(p.lookup.NoteFolder, internal.SanitizeFilename(p.lookup.Word())+".md")
	content, err := p.services.Store.Read(notePath)
	if err != nil {
		return fmt.Errorf("failed to read saved note: %w", err)
	}

	result, err := p.export.Export(ctx, workflow.ExportRequest{
		NoteContent: content,
		Word:        p.lookup.Word(),
		Deck:        deck,
		Model:       p.flags.Model,
		Resolver:    p.resolver(),
	}, nil)
	if err != nil {
		return err
	}

	if result.Cancelled {
		fmt.Println("Export cancelled")
		return nil
	}

	p.lookup.MarkExported()
	if result.Overwrote {
		fmt.Printf("Updated existing card in %s\n", deck)
	} else {
		fmt.Printf("Exported to %s\n", deck)
	}
	return nil
}

// suggestDeck asks the completion provider for a deck, falling back to
// the general conversation deck when the suggestion fails.
func (p *Processor) suggestDeck(ctx context.Context, record *dictionary.Record) string {
	decks, err := p.services.Cards.DeckNames(ctx)
	if err != nil {
		decks = nil
	}

	suggestion, err := p.services.Completion.SuggestDeck(ctx, record.Word, record.Definition, decks)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: deck suggestion failed: %v\n", err)
		return "GENERAL::Daily_Conversation"
	}

	fmt.Printf("Suggested deck: %s (%s)\n", suggestion.Deck, suggestion.Reason)
	return suggestion.Deck
}

// resolver maps the --on-duplicate flag to a duplicate resolution
// strategy. "ask" prompts on the terminal.
func (p *Processor) resolver() workflow.Resolver {
	switch p.flags.OnDuplicate {
	case "overwrite":
		return func(*anki.NoteInfo) workflow.Resolution { return workflow.Overwrite }
	case "cancel":
		return func(*anki.NoteInfo) workflow.Resolution { return workflow.Cancel }
	default:
		return func(existing *anki.NoteInfo) workflow.Resolution {
			if existing != nil {
				fmt.Printf("A card for this word already exists (note %d).\n", existing.NoteID)
			} else {
				fmt.Println("A card for this word already exists.")
			}
			fmt.Print("Overwrite it? [y/N]: ")
			answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
			if strings.EqualFold(strings.TrimSpace(answer), "y") {
				return workflow.Overwrite
			}
			return workflow.Cancel
		}
	}
}

// Translate runs a single-shot translation of text.
func (p *Processor) Translate(ctx context.Context, text string) (string, error) {
	return p.services.Completion.Translate(ctx, text)
}

// ListDecks prints the decks and note types of the running Anki
// instance.
func (p *Processor) ListDecks(ctx context.Context) error {
	if p.services.Cards == nil {
		return fmt.Errorf("listing decks requires a running Anki instance (remove --skip-anki)")
	}

	decks, err := p.services.Cards.DeckNames(ctx)
	if err != nil {
		return err
	}
	fmt.Println("Decks:")
	for _, deck := range decks {
		fmt.Printf("  %s\n", deck)
	}

	models, err := p.services.Cards.ModelNames(ctx)
	if err != nil {
		return err
	}
	fmt.Println("Note types:")
	for _, model := range models {
		fmt.Printf("  %s\n", model)
	}

	return nil
}

// GenerateAPKG builds an offline Anki package from every saved note in
// the vault and returns the number of notes packaged.
func (p *Processor) GenerateAPKG(outputPath string) (int, error) {
	deckName := p.flags.Deck
	if deckName == "" {
		deckName = "LexiNote Vocabulary"
	}

	builder := anki.NewAPKGBuilder(deckName, note.FieldOrder)

	noteDir := filepath.Join(p.flags.VaultDir, workflow.DefaultNoteFolder)
	entries, err := os.ReadDir(noteDir)
	if err != nil {
		return 0, fmt.Errorf("failed to read note directory: %w", err)
	}

	count := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}

		content, err := os.ReadFile(filepath.Join(noteDir, entry.Name()))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: skipping %s: %v\n", entry.Name(), err)
			continue
		}

		fields, err := note.Parse(string(content))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: skipping %s: %v\n", entry.Name(), err)
			continue
		}

		builder.AddNote(fields)
		count++

		// Bundle the pronunciation file when the note references one.
		audioName := internal.SanitizeFilename(strings.TrimSuffix(entry.Name(), ".md")) + ".mp3"
		audioPath := filepath.Join(p.flags.VaultDir, audio.Folder, audioName)
		if data, err := os.ReadFile(audioPath); err == nil {
			builder.AddMedia(audioName, data)
		}
	}

	if count == 0 {
		return 0, fmt.Errorf("no notes found in %s", noteDir)
	}

	if err := builder.Write(outputPath); err != nil {
		return 0, err
	}
	return count, nil
}

func (p *Processor) printRecord(record *dictionary.Record) {
	fmt.Printf("\n%s", record.Word)
	if record.WordType != "" {
		fmt.Printf(" (%s)", record.WordType)
	}
	if record.Pronunciation != "" {
		fmt.Printf(" %s", record.Pronunciation)
	}
	fmt.Println()

	if record.Definition != "" {
		fmt.Printf("  %s\n", record.Definition)
	}
	if record.Translation != "" {
		fmt.Printf("  → %s\n", record.Translation)
	}
	for i, example := range record.Examples {
		fmt.Printf("  %d. %s\n", i+1, example)
	}
}
