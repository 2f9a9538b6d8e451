package workflow

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"codeberg.org/snonux/lexinote/internal"
	"codeberg.org/snonux/lexinote/internal/audio"
	"codeberg.org/snonux/lexinote/internal/dictionary"
	"codeberg.org/snonux/lexinote/internal/lemma"
	"codeberg.org/snonux/lexinote/internal/note"
	"codeberg.org/snonux/lexinote/internal/vault"
)

// DefaultNoteFolder is the vault directory dictionary notes are
// written to.
const DefaultNoteFolder = "English Dictionary"

// LookupWorkflow drives the Lookup, Save and Chat actions for one word
// at a time. A new Lookup replaces the current word and resets State.
type LookupWorkflow struct {
	normalizer *lemma.Normalizer
	completion dictionary.Provider
	reference  audio.ReferenceProvider
	fallback   audio.ReferenceProvider
	downloader *audio.Downloader
	store      vault.Store
	media      audio.MediaSink

	// NoteFolder is the vault directory notes are written to.
	NoteFolder string

	word    string
	record  *dictionary.Record
	history []dictionary.ChatMessage
	state   State
}

// NewLookupWorkflow wires the lookup pipeline. media may be nil when
// no flashcard service is reachable; audio then only lands in the
// vault.
func NewLookupWorkflow(
	normalizer *lemma.Normalizer,
	completion dictionary.Provider,
	reference audio.ReferenceProvider,
	downloader *audio.Downloader,
	store vault.Store,
	media audio.MediaSink,
) *LookupWorkflow {
	return &LookupWorkflow{
		normalizer: normalizer,
		completion: completion,
		reference:  reference,
		fallback:   audio.NewGoogleTTSProvider(),
		downloader: downloader,
		store:      store,
		media:      media,
		NoteFolder: DefaultNoteFolder,
	}
}

// State returns a snapshot of the current workflow flags.
func (w *LookupWorkflow) State() State {
	return w.state
}

// Word returns the normalized headword of the current lookup.
func (w *LookupWorkflow) Word() string {
	return w.word
}

// Record returns the current lexical record, nil before the first
// successful lookup.
func (w *LookupWorkflow) Record() *dictionary.Record {
	return w.record
}

// MarkExported records a successful export against the current
// lookup. The export workflow calls this only after a create or
// overwrite went through.
func (w *LookupWorkflow) MarkExported() {
	w.state.Exported = true
}

// Lookup normalizes input, fetches the definition and the audio
// reference concurrently and makes the combined record current. The
// audio branch degrades to the Google TTS fallback and never fails the
// lookup; a definition failure leaves the previous word and State
// untouched.
func (w *LookupWorkflow) Lookup(ctx context.Context, input string) (*dictionary.Record, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, &InputError{Reason: "word must not be empty"}
	}

	word := w.normalizer.Normalize(input)

	// Definition and audio reference are independent; fetch both at
	// once and join before rendering.
	refCh := make(chan *dictionary.AudioRef, 1)
	go func() {
		ref, err := w.reference.FetchReference(ctx, word)
		if err != nil {
			refCh <- nil
			return
		}
		refCh <- ref
	}()

	record, defineErr := w.completion.Define(ctx, word)
	ref := <-refCh

	if defineErr != nil {
		return nil, &ServiceError{Step: StepLookup, Err: defineErr}
	}

	if ref == nil {
		ref, _ = w.fallback.FetchReference(ctx, word)
	}
	record.Audio = ref

	w.word = word
	w.record = record
	w.history = nil
	w.state = State{}

	return record, nil
}

// Save materializes the pronunciation audio, renders the note and
// writes it to the vault. It returns the note path and sets the saved
// flag only after a successful write. An audio download failure is a
// warning, not a save failure.
func (w *LookupWorkflow) Save(ctx context.Context, personalNote string) (string, error) {
	if w.record == nil {
		return "", &InputError{Reason: "no word looked up yet"}
	}

	if w.record.Audio != nil && w.record.AudioEmbed == "" && w.downloader != nil {
		embed, err := w.downloader.Materialize(ctx, w.record.Audio.URL, w.word, w.store, w.media)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: audio download failed: %v\n", err)
		} else {
			w.record.AudioEmbed = embed
		}
	}

	content := note.Render(w.record, personalNote)
	path := filepath.Join(w.NoteFolder, internal.SanitizeFilename(w.word)+".md")
	if err := w.store.Write(path, content); err != nil {
		return "", &ServiceError{Step: StepSave, Err: err}
	}

	w.state.Saved = true
	return path, nil
}

// Chat sends a tutoring question about the current word and records
// the exchange in the conversation history.
func (w *LookupWorkflow) Chat(ctx context.Context, message string) (string, error) {
	if w.record == nil {
		return "", &InputError{Reason: "no word looked up yet"}
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return "", &InputError{Reason: "message must not be empty"}
	}

	wordContext := fmt.Sprintf("%s: %s", w.record.Word, w.record.Definition)
	reply, err := w.completion.Chat(ctx, message, wordContext, w.history)
	if err != nil {
		return "", &ServiceError{Step: StepChat, Err: err}
	}

	w.history = append(w.history,
		dictionary.ChatMessage{Role: "user", Content: message},
		dictionary.ChatMessage{Role: "assistant", Content: reply},
	)
	w.state.Chatted = true
	return reply, nil
}
