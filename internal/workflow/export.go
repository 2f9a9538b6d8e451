package workflow

import (
	"context"
	"errors"

	"codeberg.org/snonux/lexinote/internal/anki"
	"codeberg.org/snonux/lexinote/internal/match"
	"codeberg.org/snonux/lexinote/internal/note"
)

// FlashcardService is the slice of the AnkiConnect client the export
// workflow needs. Satisfied by *anki.Client and mocked in tests.
type FlashcardService interface {
	DeckNames(ctx context.Context) ([]string, error)
	ModelNames(ctx context.Context) ([]string, error)
	ModelFieldNames(ctx context.Context, modelName string) ([]string, error)
	FindNotes(ctx context.Context, deck, identityField, value string) ([]int64, error)
	NoteInfo(ctx context.Context, noteID int64) (*anki.NoteInfo, error)
	AddNote(ctx context.Context, params anki.NoteParams) (int64, error)
	UpdateNoteFields(ctx context.Context, noteID int64, fields map[string]string) error
	CreateDeck(ctx context.Context, deck string) error
}

// identityField is the schema field the duplicate query matches on.
const identityField = "Word"

// RecentDeckLimit bounds the recently-used deck history.
const RecentDeckLimit = 10

// ExportTags are attached to every card the export creates.
var ExportTags = []string{"lexinote", "vocabulary"}

// Resolution is the caller's answer to a duplicate card conflict.
type Resolution int

const (
	// Cancel aborts the export without writing anything.
	Cancel Resolution = iota
	// Overwrite replaces the fields of the first duplicate.
	Overwrite
)

// Resolver decides what happens when export finds an existing card.
// existing may be nil when the duplicate's fields could not be read.
type Resolver func(existing *anki.NoteInfo) Resolution

// ExportRequest carries one export attempt.
type ExportRequest struct {
	// NoteContent is the saved, possibly user-edited note text.
	NoteContent string

	// Word is the in-memory headword, used when the note text has lost
	// its title line.
	Word string

	Deck     string
	Model    string
	Resolver Resolver
}

// ExportResult reports what the export did.
type ExportResult struct {
	NoteID    int64
	Overwrote bool
	Cancelled bool
	Fields    map[string]string
}

// ExportWorkflow maps note fields onto a flashcard schema and creates
// or overwrites the card. It also keeps the recently-used deck
// history.
type ExportWorkflow struct {
	cards  FlashcardService
	recent []string
}

// NewExportWorkflow creates an export workflow over the flashcard
// service.
func NewExportWorkflow(cards FlashcardService) *ExportWorkflow {
	return &ExportWorkflow{cards: cards}
}

// RecentDecks returns the recently exported-to decks, most recent
// first.
func (w *ExportWorkflow) RecentDecks() []string {
	return w.recent
}

// Export runs the full export: parse the note, match fields onto the
// schema, check for a duplicate and either overwrite, create or
// cancel. state.Exported flips true only on a successful write; any
// failure leaves state untouched.
func (w *ExportWorkflow) Export(ctx context.Context, req ExportRequest, state *State) (*ExportResult, error) {
	fields, err := note.Parse(req.NoteContent)
	if err != nil {
		var parseErr *note.ParseError
		if !errors.As(err, &parseErr) {
			return nil, &ServiceError{Step: StepExport, Err: err}
		}
		// Title line lost to editing; fall back to the in-memory word.
		if req.Word == "" {
			return nil, &InputError{Reason: "note has no title and no current word"}
		}
		fields["Word"] = req.Word
		fields["Term"] = req.Word
	}

	targets, err := w.cards.ModelFieldNames(ctx, req.Model)
	if err != nil {
		return nil, &ServiceError{Step: StepExport, Err: err}
	}

	mapped := match.Match(fields, note.FieldOrder, targets)

	identity := mapped[identityField]
	if identity == "" {
		identity = mapped["Front"]
	}

	var duplicates []int64
	if identity != "" {
		duplicates, err = w.cards.FindNotes(ctx, req.Deck, identityField, identity)
		if err != nil {
			return nil, &ServiceError{Step: StepExport, Err: err}
		}
	}

	if len(duplicates) > 0 {
		return w.resolveDuplicate(ctx, req, state, mapped, duplicates[0])
	}

	if err := w.cards.CreateDeck(ctx, req.Deck); err != nil {
		return nil, &ServiceError{Step: StepExport, Err: err}
	}

	noteID, err := w.cards.AddNote(ctx, anki.NoteParams{
		DeckName:  req.Deck,
		ModelName: req.Model,
		Fields:    mapped,
		Tags:      ExportTags,
	})
	if err != nil {
		return nil, &ServiceError{Step: StepExport, Err: err}
	}

	w.recordSuccess(req.Deck, state)
	return &ExportResult{NoteID: noteID, Fields: mapped}, nil
}

func (w *ExportWorkflow) resolveDuplicate(ctx context.Context, req ExportRequest, state *State, mapped map[string]string, duplicateID int64) (*ExportResult, error) {
	if req.Resolver == nil {
		return &ExportResult{Cancelled: true, Fields: mapped}, nil
	}

	// Best effort; the resolver can decide without the existing fields.
	existing, _ := w.cards.NoteInfo(ctx, duplicateID)

	if req.Resolver(existing) != Overwrite {
		return &ExportResult{Cancelled: true, Fields: mapped}, nil
	}

	if err := w.cards.UpdateNoteFields(ctx, duplicateID, mapped); err != nil {
		return nil, &ServiceError{Step: StepExport, Err: err}
	}

	w.recordSuccess(req.Deck, state)
	return &ExportResult{NoteID: duplicateID, Overwrote: true, Fields: mapped}, nil
}

// recordSuccess flips the exported flag and records the deck in the
// bounded history. A deck already in the history keeps its position.
func (w *ExportWorkflow) recordSuccess(deck string, state *State) {
	if state != nil {
		state.Exported = true
	}
	for _, d := range w.recent {
		if d == deck {
			return
		}
	}
	w.recent = append([]string{deck}, w.recent...)
	if len(w.recent) > RecentDeckLimit {
		w.recent = w.recent[:RecentDeckLimit]
	}
}
