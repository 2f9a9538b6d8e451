package cli

import (
	"reflect"
	"testing"
)

func TestNewFlags(t *testing.T) {
	flags := NewFlags()

	// Test default values
	tests := []struct {
		name     string
		got      interface{}
		expected interface{}
	}{
		{"Model", flags.Model, "Basic"},
		{"OnDuplicate", flags.OnDuplicate, "ask"},
		{"Provider", flags.Provider, "groq"},
		{"TargetLanguage", flags.TargetLanguage, "Vietnamese"},
		{"AnkiURL", flags.AnkiURL, "http://127.0.0.1:8765"},
		{"AudioBackend", flags.AudioBackend, "http://localhost:6789"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !reflect.DeepEqual(tt.got, tt.expected) {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.expected)
			}
		})
	}

	// Test boolean defaults (should be false)
	boolTests := []struct {
		name  string
		value bool
	}{
		{"Export", flags.Export},
		{"ListDecks", flags.ListDecks},
		{"SkipAudio", flags.SkipAudio},
		{"SkipAnki", flags.SkipAnki},
	}

	for _, tt := range boolTests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != false {
				t.Errorf("%s = %v, want false", tt.name, tt.value)
			}
		})
	}

	// Test string defaults (should be empty)
	stringTests := []struct {
		name  string
		value string
	}{
		{"CfgFile", flags.CfgFile},
		{"VaultDir", flags.VaultDir},
		{"BatchFile", flags.BatchFile},
		{"Deck", flags.Deck},
		{"Note", flags.Note},
		{"Chat", flags.Chat},
		{"Translate", flags.Translate},
		{"APKGPath", flags.APKGPath},
	}

	for _, tt := range stringTests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Errorf("%s = %v, want empty string", tt.name, tt.value)
			}
		})
	}
}
