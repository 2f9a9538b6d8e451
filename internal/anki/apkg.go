package anki

import (
	"archive/zip"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// APKGBuilder creates Anki package files (.apkg) for offline import.
// The note schema is not fixed; callers declare the field names and
// every note supplies values keyed by those names. The first field is
// the sort field and the card front.
type APKGBuilder struct {
	deckName     string
	deckID       int64
	modelID      int64
	fieldNames   []string
	notes        []map[string]string
	media        map[string][]byte
	mediaNumbers map[string]int
	mediaCounter int
}

// NewAPKGBuilder creates a builder for deckName with the given field
// names. fieldNames must not be empty.
func NewAPKGBuilder(deckName string, fieldNames []string) *APKGBuilder {
	// Timestamp-based IDs keep repeated exports distinct.
	now := time.Now().UnixMilli()
	return &APKGBuilder{
		deckName:     deckName,
		deckID:       now,
		modelID:      now + 1,
		fieldNames:   fieldNames,
		media:        make(map[string][]byte),
		mediaNumbers: make(map[string]int),
	}
}

// AddNote queues a note. Values for unknown field names are ignored;
// missing fields stay empty.
func (b *APKGBuilder) AddNote(fields map[string]string) {
	b.notes = append(b.notes, fields)
}

// AddMedia queues a media file to be bundled into the package. Refer
// to it from note fields as [sound:filename] or <img src="filename">.
func (b *APKGBuilder) AddMedia(filename string, data []byte) {
	b.media[filename] = data
}

// Write builds the .apkg file at outputPath.
func (b *APKGBuilder) Write(outputPath string) error {
	if len(b.fieldNames) == 0 {
		return fmt.Errorf("no field names declared")
	}

	tempDir, err := os.MkdirTemp("", "apkg_export_*")
	if err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	// Media first, the numbering feeds the mapping file.
	if err := b.writeMediaFiles(tempDir); err != nil {
		return fmt.Errorf("failed to write media files: %w", err)
	}
	if err := b.writeMediaMapping(tempDir); err != nil {
		return fmt.Errorf("failed to write media mapping: %w", err)
	}

	dbPath := filepath.Join(tempDir, "collection.anki2")
	if err := b.createDatabase(dbPath); err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}

	if err := b.createZipPackage(tempDir, outputPath); err != nil {
		return fmt.Errorf("failed to create zip package: %w", err)
	}

	return nil
}

func (b *APKGBuilder) createDatabase(dbPath string) error {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := b.createTables(db); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	if err := b.insertCollection(db); err != nil {
		return fmt.Errorf("failed to insert collection: %w", err)
	}
	if err := b.insertNotesAndCards(db); err != nil {
		return fmt.Errorf("failed to insert notes and cards: %w", err)
	}

	return nil
}

// createTables creates the Anki schema (version 11).
func (b *APKGBuilder) createTables(db *sql.DB) error {
	queries := []string{
		`CREATE TABLE col (
			id integer PRIMARY KEY,
			crt integer NOT NULL,
			mod integer NOT NULL,
			scm integer NOT NULL,
			ver integer NOT NULL,
			dty integer NOT NULL,
			usn integer NOT NULL,
			ls integer NOT NULL,
			conf text NOT NULL,
			models text NOT NULL,
			decks text NOT NULL,
			dconf text NOT NULL,
			tags text NOT NULL
		)`,
		`CREATE TABLE notes (
			id integer PRIMARY KEY,
			guid text NOT NULL,
			mid integer NOT NULL,
			mod integer NOT NULL,
			usn integer NOT NULL,
			tags text NOT NULL,
			flds text NOT NULL,
			sfld text NOT NULL,
			csum integer NOT NULL,
			flags integer NOT NULL,
			data text NOT NULL
		)`,
		`CREATE TABLE cards (
			id integer PRIMARY KEY,
			nid integer NOT NULL,
			did integer NOT NULL,
			ord integer NOT NULL,
			mod integer NOT NULL,
			usn integer NOT NULL,
			type integer NOT NULL,
			queue integer NOT NULL,
			due integer NOT NULL,
			ivl integer NOT NULL,
			factor integer NOT NULL,
			reps integer NOT NULL,
			lapses integer NOT NULL,
			left integer NOT NULL,
			odue integer NOT NULL,
			odid integer NOT NULL,
			flags integer NOT NULL,
			data text NOT NULL
		)`,
		`CREATE TABLE revlog (
			id integer PRIMARY KEY,
			cid integer NOT NULL,
			usn integer NOT NULL,
			ease integer NOT NULL,
			ivl integer NOT NULL,
			lastIvl integer NOT NULL,
			factor integer NOT NULL,
			time integer NOT NULL,
			type integer NOT NULL
		)`,
		`CREATE TABLE graves (
			usn integer NOT NULL,
			oid integer NOT NULL,
			type integer NOT NULL
		)`,
		`CREATE INDEX ix_notes_csum ON notes (csum)`,
		`CREATE INDEX ix_notes_usn ON notes (usn)`,
		`CREATE INDEX ix_cards_usn ON cards (usn)`,
		`CREATE INDEX ix_cards_nid ON cards (nid)`,
		`CREATE INDEX ix_cards_sched ON cards (did, queue, due)`,
		`CREATE INDEX ix_revlog_usn ON revlog (usn)`,
		`CREATE INDEX ix_revlog_cid ON revlog (cid)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}

	return nil
}

func (b *APKGBuilder) insertCollection(db *sql.DB) error {
	now := time.Now().Unix()

	decks := map[string]interface{}{
		"1": map[string]interface{}{
			"id":               1,
			"name":             "Default",
			"mod":              now,
			"desc":             "",
			"collapsed":        false,
			"dyn":              0,
			"conf":             1,
			"usn":              0,
			"newToday":         []int{0, 0},
			"revToday":         []int{0, 0},
			"lrnToday":         []int{0, 0},
			"timeToday":        []int{0, 0},
			"browserCollapsed": false,
			"extendNew":        10,
			"extendRev":        50,
		},
		fmt.Sprintf("%d", b.deckID): map[string]interface{}{
			"id":               b.deckID,
			"name":             b.deckName,
			"mod":              now,
			"desc":             "Vocabulary notes created by LexiNote",
			"collapsed":        false,
			"dyn":              0,
			"conf":             1,
			"usn":              0,
			"newToday":         []int{0, 0},
			"revToday":         []int{0, 0},
			"lrnToday":         []int{0, 0},
			"timeToday":        []int{0, 0},
			"browserCollapsed": false,
			"extendNew":        10,
			"extendRev":        50,
		},
	}
	decksJSON, _ := json.Marshal(decks)

	models := map[string]interface{}{
		fmt.Sprintf("%d", b.modelID): b.createNoteTypeConfig(),
	}
	modelsJSON, _ := json.Marshal(models)

	conf := map[string]interface{}{
		"nextPos":       1,
		"estTimes":      true,
		"activeDecks":   []int64{1},
		"sortType":      "noteFld",
		"sortBackwards": false,
		"addToCur":      true,
		"curDeck":       1,
		"newSpread":     0,
		"dueCounts":     true,
		"collapseTime":  1200,
		"timeLim":       0,
		"schedVer":      1,
		"curModel":      fmt.Sprintf("%d", b.modelID),
		"dayLearnFirst": false,
	}
	confJSON, _ := json.Marshal(conf)

	dconf := map[string]interface{}{
		"1": map[string]interface{}{
			"id":   1,
			"name": "Default",
			"dyn":  0,
			"new": map[string]interface{}{
				"delays":        []int{1, 10},
				"ints":          []int{1, 4, 7},
				"initialFactor": 2500,
				"perDay":        20,
				"order":         1,
				"bury":          true,
				"separate":      true,
			},
			"lapse": map[string]interface{}{
				"delays":      []int{10},
				"mult":        0,
				"minInt":      1,
				"leechFails":  8,
				"leechAction": 0,
			},
			"rev": map[string]interface{}{
				"perDay":   100,
				"ease4":    1.3,
				"fuzz":     0.05,
				"maxIvl":   36500,
				"ivlFct":   1,
				"bury":     true,
				"minSpace": 1,
			},
			"timer":    0,
			"maxTaken": 60,
			"usn":      0,
			"mod":      now,
			"autoplay": true,
			"replayq":  true,
		},
	}
	dconfJSON, _ := json.Marshal(dconf)

	query := `INSERT INTO col VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := db.Exec(query,
		1,        // id
		now,      // crt
		now*1000, // mod
		now*1000, // scm
		11,       // ver (schema version)
		0,        // dty
		0,        // usn
		0,        // ls
		string(confJSON),
		string(modelsJSON),
		string(decksJSON),
		string(dconfJSON),
		"{}", // tags
	)
	return err
}

// createNoteTypeConfig builds the note type from the declared field
// names. One template: first field on the front, everything else on
// the back.
func (b *APKGBuilder) createNoteTypeConfig() map[string]interface{} {
	flds := make([]map[string]interface{}, len(b.fieldNames))
	for i, name := range b.fieldNames {
		flds[i] = map[string]interface{}{
			"name":   name,
			"ord":    i,
			"sticky": false,
			"rtl":    false,
			"font":   "Arial",
			"size":   20,
			"media":  []string{},
		}
	}

	return map[string]interface{}{
		"id":    b.modelID,
		"name":  "Vocabulary from LexiNote",
		"type":  0,
		"mod":   time.Now().Unix(),
		"usn":   -1,
		"sortf": 0,
		"did":   b.deckID,
		"req":   [][]interface{}{{0, "all", []int{0}}},
		"vers":  []int{},
		"tags":  []string{},
		"latexPre": `\documentclass[12pt]{article}
\special{papersize=3in,5in}
\usepackage[utf8]{inputenc}
\usepackage{amssymb,amsmath}
\pagestyle{empty}
\setlength{\parindent}{0in}
\begin{document}`,
		"latexPost": `\end{document}`,
		"flds":      flds,
		"tmpls": []map[string]interface{}{
			{
				"name":  "Card 1",
				"ord":   0,
				"qfmt":  b.frontTemplate(),
				"afmt":  b.backTemplate(),
				"did":   nil,
				"bqfmt": "",
				"bafmt": "",
			},
		},
		"css": b.css(),
	}
}

func (b *APKGBuilder) frontTemplate() string {
	return fmt.Sprintf(`<div class="front">
<div class="term">{{%s}}</div>
</div>`, b.fieldNames[0])
}

func (b *APKGBuilder) backTemplate() string {
	var sb strings.Builder
	sb.WriteString("{{FrontSide}}\n\n<hr id=\"answer\">\n\n<div class=\"back\">\n")
	for _, name := range b.fieldNames[1:] {
		fmt.Fprintf(&sb, "{{#%[1]s}}\n<div class=\"section\">{{%[1]s}}</div>\n{{/%[1]s}}\n", name)
	}
	sb.WriteString("</div>")
	return sb.String()
}

func (b *APKGBuilder) css() string {
	return `.card {
  font-family: Arial, sans-serif;
  font-size: 18px;
  text-align: left;
  color: #333;
  background-color: white;
}

.front, .back {
  padding: 20px;
}

.term {
  font-size: 28px;
  font-weight: bold;
  text-align: center;
  color: #2c3e50;
  margin: 20px 0;
}

.section {
  margin: 12px 0;
}

hr#answer {
  margin: 30px 0;
  border: 0;
  border-top: 1px solid #ecf0f1;
}`
}

func (b *APKGBuilder) insertNotesAndCards(db *sql.DB) error {
	now := time.Now()

	for i, note := range b.notes {
		// Two IDs per note, leaving room for the card.
		noteID := now.UnixMilli() + int64(i*2)
		cardID := noteID + 1

		values := make([]string, len(b.fieldNames))
		for j, name := range b.fieldNames {
			values[j] = note[name]
		}
		sortField := values[0]

		// Fields are joined with the field separator (ASCII 31).
		fields := strings.Join(values, "\x1f")

		guid := fmt.Sprintf("ln_%d_%s", now.Unix(), sortField)

		noteQuery := `INSERT INTO notes VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
		_, err := db.Exec(noteQuery,
			noteID,     // id
			guid,       // guid
			b.modelID,  // mid
			now.Unix(), // mod
			-1,         // usn
			"",         // tags
			fields,     // flds
			sortField,  // sfld
			0,          // csum
			0,          // flags
			"",         // data
		)
		if err != nil {
			return fmt.Errorf("failed to insert note: %w", err)
		}

		cardQuery := `INSERT INTO cards VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
		_, err = db.Exec(cardQuery,
			cardID,     // id
			noteID,     // nid
			b.deckID,   // did
			0,          // ord
			now.Unix(), // mod
			-1,         // usn
			0,          // type (0=new)
			0,          // queue (0=new)
			noteID,     // due (position for new cards)
			0,          // ivl
			0,          // factor
			0,          // reps
			0,          // lapses
			0,          // left
			0,          // odue
			0,          // odid
			0,          // flags
			"",         // data
		)
		if err != nil {
			return fmt.Errorf("failed to insert card: %w", err)
		}
	}

	return nil
}

// writeMediaFiles writes queued media as numbered files, the naming
// scheme the .apkg format requires.
func (b *APKGBuilder) writeMediaFiles(tempDir string) error {
	for filename, data := range b.media {
		if _, exists := b.mediaNumbers[filename]; exists {
			continue
		}
		targetPath := filepath.Join(tempDir, fmt.Sprintf("%d", b.mediaCounter))
		if err := os.WriteFile(targetPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write media file %s: %w", filename, err)
		}
		b.mediaNumbers[filename] = b.mediaCounter
		b.mediaCounter++
	}
	return nil
}

// writeMediaMapping writes the number-to-filename JSON index.
func (b *APKGBuilder) writeMediaMapping(tempDir string) error {
	mapping := make(map[string]string)
	for filename, num := range b.mediaNumbers {
		mapping[fmt.Sprintf("%d", num)] = filename
	}

	data, err := json.Marshal(mapping)
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(tempDir, "media"), data, 0644)
}

func (b *APKGBuilder) createZipPackage(tempDir, outputPath string) error {
	zipFile, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer zipFile.Close()

	archive := zip.NewWriter(zipFile)
	defer archive.Close()

	return filepath.Walk(tempDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		relPath, err := filepath.Rel(tempDir, path)
		if err != nil {
			return err
		}

		writer, err := archive.Create(relPath)
		if err != nil {
			return err
		}

		file, err := os.Open(path)
		if err != nil {
			return err
		}
		defer file.Close()

		_, err = io.Copy(writer, file)
		return err
	})
}
