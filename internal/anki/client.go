package anki

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

// DefaultURL is the standard AnkiConnect listen address.
const DefaultURL = "http://127.0.0.1:8765"

// apiVersion is the AnkiConnect protocol version this client speaks.
const apiVersion = 6

// Client is an AnkiConnect API client. Requests run through a circuit
// breaker so a stopped Anki fails fast instead of timing out on every
// call.
type Client struct {
	url        string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
}

// NewClient creates a client for the AnkiConnect endpoint at url.
// An empty url selects DefaultURL.
func NewClient(url string) *Client {
	if url == "" {
		url = DefaultURL
	}
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "ankiconnect",
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 3
			},
		}),
	}
}

// NoteParams describes a new note for AddNote.
type NoteParams struct {
	DeckName  string            `json:"deckName"`
	ModelName string            `json:"modelName"`
	Fields    map[string]string `json:"fields"`
	Tags      []string          `json:"tags,omitempty"`
}

// NoteField is one field of an existing note.
type NoteField struct {
	Value string `json:"value"`
	Order int    `json:"order"`
}

// NoteInfo is the stored state of an existing note.
type NoteInfo struct {
	NoteID    int64                `json:"noteId"`
	ModelName string               `json:"modelName"`
	Fields    map[string]NoteField `json:"fields"`
}

type request struct {
	Action  string `json:"action"`
	Version int    `json:"version"`
	Params  any    `json:"params,omitempty"`
}

type response struct {
	Result json.RawMessage `json:"result"`
	Error  *string         `json:"error"`
}

// Version returns the AnkiConnect protocol version of the running
// instance. Useful as a liveness probe.
func (c *Client) Version(ctx context.Context) (int, error) {
	raw, err := c.invoke(ctx, "version", nil)
	if err != nil {
		return 0, err
	}
	var v int
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, fmt.Errorf("malformed version response: %w", err)
	}
	return v, nil
}

// DeckNames returns all deck names.
func (c *Client) DeckNames(ctx context.Context) ([]string, error) {
	return c.stringList(ctx, "deckNames", nil)
}

// ModelNames returns all note type (schema) names.
func (c *Client) ModelNames(ctx context.Context) ([]string, error) {
	return c.stringList(ctx, "modelNames", nil)
}

// ModelFieldNames returns the field names a note type declares, in
// schema order.
func (c *Client) ModelFieldNames(ctx context.Context, modelName string) ([]string, error) {
	return c.stringList(ctx, "modelFieldNames", map[string]any{
		"modelName": modelName,
	})
}

// FindNotes returns the IDs of notes in deck whose identity field
// equals value.
func (c *Client) FindNotes(ctx context.Context, deck, identityField, value string) ([]int64, error) {
	raw, err := c.invoke(ctx, "findNotes", map[string]any{
		"query": fmt.Sprintf("%q %q", "deck:"+deck, identityField+":"+value),
	})
	if err != nil {
		return nil, err
	}
	var ids []int64
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, fmt.Errorf("malformed findNotes response: %w", err)
	}
	return ids, nil
}

// NoteInfo returns the stored fields of one note.
func (c *Client) NoteInfo(ctx context.Context, noteID int64) (*NoteInfo, error) {
	raw, err := c.invoke(ctx, "notesInfo", map[string]any{
		"notes": []int64{noteID},
	})
	if err != nil {
		return nil, err
	}
	var notes []NoteInfo
	if err := json.Unmarshal(raw, &notes); err != nil {
		return nil, fmt.Errorf("malformed notesInfo response: %w", err)
	}
	if len(notes) == 0 {
		return nil, fmt.Errorf("note %d not found", noteID)
	}
	return &notes[0], nil
}

// AddNote creates a new note and returns its ID.
func (c *Client) AddNote(ctx context.Context, params NoteParams) (int64, error) {
	raw, err := c.invoke(ctx, "addNote", map[string]any{
		"note": params,
	})
	if err != nil {
		return 0, err
	}
	var id int64
	if err := json.Unmarshal(raw, &id); err != nil {
		return 0, fmt.Errorf("malformed addNote response: %w", err)
	}
	return id, nil
}

// UpdateNoteFields overwrites the fields of an existing note.
func (c *Client) UpdateNoteFields(ctx context.Context, noteID int64, fields map[string]string) error {
	_, err := c.invoke(ctx, "updateNoteFields", map[string]any{
		"note": map[string]any{
			"id":     noteID,
			"fields": fields,
		},
	})
	return err
}

// CreateDeck creates a deck if it does not already exist.
func (c *Client) CreateDeck(ctx context.Context, deck string) error {
	_, err := c.invoke(ctx, "createDeck", map[string]any{
		"deck": deck,
	})
	return err
}

// StoreMediaFile stores data under filename in Anki's media
// collection and returns the stored filename.
func (c *Client) StoreMediaFile(ctx context.Context, filename string, data []byte) (string, error) {
	raw, err := c.invoke(ctx, "storeMediaFile", map[string]any{
		"filename": filename,
		"data":     base64.StdEncoding.EncodeToString(data),
	})
	if err != nil {
		return "", err
	}
	var stored string
	if err := json.Unmarshal(raw, &stored); err != nil {
		return "", fmt.Errorf("malformed storeMediaFile response: %w", err)
	}
	return stored, nil
}

func (c *Client) stringList(ctx context.Context, action string, params any) ([]string, error) {
	raw, err := c.invoke(ctx, action, params)
	if err != nil {
		return nil, err
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("malformed %s response: %w", action, err)
	}
	return list, nil
}

// invoke posts one action/params envelope and decodes the
// result/error envelope, going through the circuit breaker.
func (c *Client) invoke(ctx context.Context, action string, params any) (json.RawMessage, error) {
	result, err := c.breaker.Execute(func() (any, error) {
		return c.post(ctx, action, params)
	})
	if err != nil {
		return nil, fmt.Errorf("AnkiConnect %s: %w", action, err)
	}
	return result.(json.RawMessage), nil
}

func (c *Client) post(ctx context.Context, action string, params any) (json.RawMessage, error) {
	body, err := json.Marshal(request{
		Action:  action,
		Version: apiVersion,
		Params:  params,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	var envelope response
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("malformed response: %w", err)
	}
	if envelope.Error != nil {
		return nil, fmt.Errorf("%s", *envelope.Error)
	}

	return envelope.Result, nil
}
