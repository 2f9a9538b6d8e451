package note

import (
	"fmt"
	"regexp"
	"strings"

	"codeberg.org/snonux/lexinote/internal/dictionary"
)

// Placeholder is the instructional text inside a fresh Personal Note
// section. The parser strips it so an unedited note yields an empty
// personal note.
const Placeholder = "_(Add your own notes, context, or memory tricks here)_"

// Fields maps canonical field names to the text recovered from a note.
type Fields map[string]string

// FieldOrder is the canonical ordering of parsed fields, used to break
// ties deterministically when matching against a flashcard schema.
var FieldOrder = []string{
	"Word", "Term", "Type", "IPA", "Audio",
	"Definition", "Translation", "Examples", "Synonyms", "Antonyms",
	"Collocations", "WordFamily", "UsageNotes", "CommonMistakes",
	"PersonalNote",
}

// ParseError reports note text that is missing its title line. The
// caller may substitute the in-memory word instead of failing.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse note: %s", e.Reason)
}

var (
	titleRe = regexp.MustCompile(`(?m)^# (.+)$`)
	typeRe  = regexp.MustCompile(`(?i)\*\*Type:\*\*\s*(.+)`)
	ipaRe   = regexp.MustCompile(`(?i)\*\*Pronunciation:\*\*\s*(.+)`)
	audioRe = regexp.MustCompile(`(?i)\*\*Audio:\*\*\s*(.+)`)

	placeholderRe = regexp.MustCompile(`(?i)_?\(Add your own notes.*?\)_?`)
	sectionRe     = regexp.MustCompile(`(?m)^## `)
)

// sectionFields maps section headers to canonical field names.
var sectionFields = map[string]string{
	"Definition":      "Definition",
	"Translation":     "Translation",
	"Examples":        "Examples",
	"Synonyms":        "Synonyms",
	"Antonyms":        "Antonyms",
	"Collocations":    "Collocations",
	"Word Family":     "WordFamily",
	"Usage Notes":     "UsageNotes",
	"Common Mistakes": "CommonMistakes",
	"Personal Note":   "PersonalNote",
}

// Render serializes a record into note text. personalNote seeds the
// Personal Note section; when empty, the instructional placeholder is
// written instead.
func Render(rec *dictionary.Record, personalNote string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", rec.Word)

	fmt.Fprintf(&b, "**Type:** %s\n", orNA(rec.WordType))
	fmt.Fprintf(&b, "**Pronunciation:** %s\n", orNA(rec.Pronunciation))
	if rec.AudioEmbed != "" {
		fmt.Fprintf(&b, "**Audio:** %s\n", rec.AudioEmbed)
	} else if rec.Audio != nil && rec.Audio.URL != "" {
		fmt.Fprintf(&b, "**Audio:** [%s](%s)\n", rec.Audio.Accent, rec.Audio.URL)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## Definition\n%s\n\n", orNA(rec.Definition))
	fmt.Fprintf(&b, "## Translation\n%s\n\n", orNA(rec.Translation))

	if len(rec.Examples) > 0 {
		b.WriteString("## Examples\n")
		for i, ex := range rec.Examples {
			fmt.Fprintf(&b, "%d. %s\n", i+1, ex)
		}
		b.WriteString("\n")
	}

	if len(rec.Synonyms) > 0 {
		fmt.Fprintf(&b, "## Synonyms\n%s\n\n", strings.Join(rec.Synonyms, ", "))
	}
	if len(rec.Antonyms) > 0 {
		fmt.Fprintf(&b, "## Antonyms\n%s\n\n", strings.Join(rec.Antonyms, ", "))
	}

	if len(rec.Collocations) > 0 {
		b.WriteString("## Collocations\n")
		for _, c := range rec.Collocations {
			usage := c.Usage
			if usage == "" {
				usage = "No usage example"
			}
			fmt.Fprintf(&b, "- %s: %s\n", c.Phrase, usage)
		}
		b.WriteString("\n")
	}

	if len(rec.WordFamily) > 0 {
		b.WriteString("## Word Family\n")
		for _, f := range rec.WordFamily {
			fmt.Fprintf(&b, "- %s (%s): %s\n", f.Word, orLower(f.Type), orNA(f.Translation))
		}
		b.WriteString("\n")
	}

	if rec.Nuance != "" {
		fmt.Fprintf(&b, "## Usage Notes\n%s\n\n", rec.Nuance)
	}

	if len(rec.CommonMistakes) > 0 {
		b.WriteString("## Common Mistakes\n")
		for _, m := range rec.CommonMistakes {
			fmt.Fprintf(&b, "- %s\n", m)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Personal Note\n\n")
	if personalNote != "" {
		fmt.Fprintf(&b, "%s\n\n", personalNote)
	} else {
		fmt.Fprintf(&b, "%s\n\n", Placeholder)
	}

	return b.String()
}

// Parse recovers export fields from note text. The user may have edited
// any section body; headers identify the fields. A missing title line
// yields a ParseError alongside whatever fields were recovered.
func Parse(content string) (Fields, error) {
	fields := Fields{}

	var parseErr error
	if m := titleRe.FindStringSubmatch(content); m != nil {
		word := strings.TrimSpace(m[1])
		fields["Word"] = word
		fields["Term"] = word // alias kept for schema compatibility
	} else {
		parseErr = &ParseError{Reason: "missing title line"}
	}

	if m := typeRe.FindStringSubmatch(content); m != nil {
		fields["Type"] = strings.TrimSpace(m[1])
	}
	if m := ipaRe.FindStringSubmatch(content); m != nil {
		fields["IPA"] = strings.TrimSpace(m[1])
	}
	if m := audioRe.FindStringSubmatch(content); m != nil {
		// Kept verbatim: [sound:file.mp3] embeds must reach Anki as-is.
		fields["Audio"] = strings.TrimSpace(m[1])
	}

	for _, section := range sectionRe.Split(content, -1)[1:] {
		header, body, _ := strings.Cut(section, "\n")
		name, ok := sectionFields[strings.TrimSpace(header)]
		if !ok {
			continue
		}

		body = strings.TrimSpace(body)
		if name == "PersonalNote" {
			body = strings.TrimSpace(placeholderRe.ReplaceAllString(body, ""))
		}
		fields[name] = body
	}

	return fields, parseErr
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func orLower(s string) string {
	if s == "" {
		return "n/a"
	}
	return s
}
