// Package testutil provides in-memory fakes for the external
// capabilities so workflow and processor tests run without network or
// disk.
package testutil

import (
	"context"
	"fmt"

	"codeberg.org/snonux/lexinote/internal/anki"
	"codeberg.org/snonux/lexinote/internal/dictionary"
)

// MockCompletionProvider implements dictionary.Provider with canned
// results.
type MockCompletionProvider struct {
	DefineRecord *dictionary.Record
	DefineErr    error

	Suggestion *dictionary.DeckSuggestion
	SuggestErr error

	ChatReply   string
	ChatErr     error
	ChatCalls   []string
	LastHistory []dictionary.ChatMessage

	TranslateResult string
	TranslateErr    error
}

func (m *MockCompletionProvider) Define(ctx context.Context, word string) (*dictionary.Record, error) {
	if m.DefineErr != nil {
		return nil, m.DefineErr
	}
	if m.DefineRecord != nil {
		return m.DefineRecord, nil
	}
	return &dictionary.Record{
		Word:       word,
		WordType:   "noun",
		Definition: fmt.Sprintf("definition of %s", word),
	}, nil
}

func (m *MockCompletionProvider) SuggestDeck(ctx context.Context, word, definition string, decks []string) (*dictionary.DeckSuggestion, error) {
	if m.SuggestErr != nil {
		return nil, m.SuggestErr
	}
	if m.Suggestion != nil {
		return m.Suggestion, nil
	}
	return &dictionary.DeckSuggestion{
		Category: "GENERAL",
		Deck:     "GENERAL::Daily_Conversation",
		Reason:   "default",
	}, nil
}

func (m *MockCompletionProvider) Chat(ctx context.Context, message, wordContext string, history []dictionary.ChatMessage) (string, error) {
	m.ChatCalls = append(m.ChatCalls, message)
	m.LastHistory = history
	if m.ChatErr != nil {
		return "", m.ChatErr
	}
	if m.ChatReply != "" {
		return m.ChatReply, nil
	}
	return "mock reply", nil
}

func (m *MockCompletionProvider) Translate(ctx context.Context, text string) (string, error) {
	if m.TranslateErr != nil {
		return "", m.TranslateErr
	}
	if m.TranslateResult != "" {
		return m.TranslateResult, nil
	}
	return "bản dịch", nil
}

func (m *MockCompletionProvider) Name() string {
	return "mock"
}

// MockAudioProvider implements audio.ReferenceProvider.
type MockAudioProvider struct {
	Ref *dictionary.AudioRef
	Err error
}

func (m *MockAudioProvider) FetchReference(ctx context.Context, word string) (*dictionary.AudioRef, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Ref != nil {
		return m.Ref, nil
	}
	return &dictionary.AudioRef{
		URL:    fmt.Sprintf("https://dictionary.cambridge.org/media/%s.mp3", word),
		Accent: "UK",
		Source: "Cambridge",
	}, nil
}

func (m *MockAudioProvider) Name() string {
	return "mock-audio"
}

// MockStore implements vault.Store in memory.
type MockStore struct {
	Files    map[string]string
	WriteErr error
}

func NewMockStore() *MockStore {
	return &MockStore{Files: make(map[string]string)}
}

func (m *MockStore) Read(path string) (string, error) {
	content, ok := m.Files[path]
	if !ok {
		return "", fmt.Errorf("no file at %s", path)
	}
	return content, nil
}

func (m *MockStore) Write(path, content string) error {
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.Files[path] = content
	return nil
}

func (m *MockStore) WriteBinary(path string, data []byte) error {
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.Files[path] = string(data)
	return nil
}

func (m *MockStore) Exists(path string) bool {
	_, ok := m.Files[path]
	return ok
}

// MockFlashcardService implements the AnkiConnect surface the export
// workflow consumes, recording every write.
type MockFlashcardService struct {
	Decks  []string
	Models []string
	Fields map[string][]string // model name -> field names

	Duplicates []int64
	Notes      map[int64]*anki.NoteInfo

	AddNoteID     int64
	AddedNotes    []anki.NoteParams
	UpdatedID     int64
	UpdatedFields map[string]string
	CreatedDecks  []string
	StoredMedia   map[string][]byte

	// Errs maps an action name to a forced failure.
	Errs map[string]error
}

func NewMockFlashcardService() *MockFlashcardService {
	return &MockFlashcardService{
		Decks:       []string{"Default"},
		Models:      []string{"Basic"},
		Fields:      map[string][]string{"Basic": {"Front", "Back"}},
		Notes:       make(map[int64]*anki.NoteInfo),
		StoredMedia: make(map[string][]byte),
		Errs:        make(map[string]error),
		AddNoteID:   1,
	}
}

func (m *MockFlashcardService) DeckNames(ctx context.Context) ([]string, error) {
	if err := m.Errs["deckNames"]; err != nil {
		return nil, err
	}
	return m.Decks, nil
}

func (m *MockFlashcardService) ModelNames(ctx context.Context) ([]string, error) {
	if err := m.Errs["modelNames"]; err != nil {
		return nil, err
	}
	return m.Models, nil
}

func (m *MockFlashcardService) ModelFieldNames(ctx context.Context, modelName string) ([]string, error) {
	if err := m.Errs["modelFieldNames"]; err != nil {
		return nil, err
	}
	fields, ok := m.Fields[modelName]
	if !ok {
		return nil, fmt.Errorf("unknown model %q", modelName)
	}
	return fields, nil
}

func (m *MockFlashcardService) FindNotes(ctx context.Context, deck, identityField, value string) ([]int64, error) {
	if err := m.Errs["findNotes"]; err != nil {
		return nil, err
	}
	return m.Duplicates, nil
}

func (m *MockFlashcardService) NoteInfo(ctx context.Context, noteID int64) (*anki.NoteInfo, error) {
	if err := m.Errs["notesInfo"]; err != nil {
		return nil, err
	}
	info, ok := m.Notes[noteID]
	if !ok {
		return nil, fmt.Errorf("note %d not found", noteID)
	}
	return info, nil
}

func (m *MockFlashcardService) AddNote(ctx context.Context, params anki.NoteParams) (int64, error) {
	if err := m.Errs["addNote"]; err != nil {
		return 0, err
	}
	m.AddedNotes = append(m.AddedNotes, params)
	return m.AddNoteID, nil
}

func (m *MockFlashcardService) UpdateNoteFields(ctx context.Context, noteID int64, fields map[string]string) error {
	if err := m.Errs["updateNoteFields"]; err != nil {
		return err
	}
	m.UpdatedID = noteID
	m.UpdatedFields = fields
	return nil
}

func (m *MockFlashcardService) CreateDeck(ctx context.Context, deck string) error {
	if err := m.Errs["createDeck"]; err != nil {
		return err
	}
	m.CreatedDecks = append(m.CreatedDecks, deck)
	return nil
}

func (m *MockFlashcardService) StoreMediaFile(ctx context.Context, filename string, data []byte) (string, error) {
	if err := m.Errs["storeMediaFile"]; err != nil {
		return "", err
	}
	m.StoredMedia[filename] = data
	return filename, nil
}
