package batch

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestReadWordFile(t *testing.T) {
	tests := []struct {
		name        string
		fileContent string
		want        []string
	}{
		{
			name:        "empty file",
			fileContent: "",
			want:        nil,
		},
		{
			name:        "only whitespace",
			fileContent: "   \n\t\r\n   ",
			want:        nil,
		},
		{
			name:        "plain word list",
			fileContent: "running\nstudied\nstate of the art\n",
			want:        []string{"running", "studied", "state of the art"},
		},
		{
			name:        "comments and blanks skipped",
			fileContent: "# TOEIC week 3\nrunning\n\n# review\nstories\n",
			want:        []string{"running", "stories"},
		},
		{
			name:        "surrounding whitespace trimmed",
			fileContent: "  running  \n\tstudied\n",
			want:        []string{"running", "studied"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "words.txt")
			if err := os.WriteFile(path, []byte(tt.fileContent), 0644); err != nil {
				t.Fatalf("failed to write test file: %v", err)
			}

			got, err := ReadWordFile(path)
			if err != nil {
				t.Fatalf("ReadWordFile failed: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ReadWordFile = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReadWordFileMissing(t *testing.T) {
	if _, err := ReadWordFile(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}
