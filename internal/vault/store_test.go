package vault

import (
	"path/filepath"
	"testing"
)

func TestDirStoreRoundTrip(t *testing.T) {
	store := NewDirStore(t.TempDir())

	path := filepath.Join("English Dictionary", "example.md")
	if store.Exists(path) {
		t.Fatal("Exists reported true before write")
	}

	if err := store.Write(path, "# example\n"); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if !store.Exists(path) {
		t.Error("Exists reported false after write")
	}

	got, err := store.Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if got != "# example\n" {
		t.Errorf("Read = %q", got)
	}
}

func TestDirStoreOverwrite(t *testing.T) {
	store := NewDirStore(t.TempDir())

	if err := store.Write("note.md", "first"); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := store.Write("note.md", "second"); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}

	got, err := store.Read("note.md")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if got != "second" {
		t.Errorf("Read after overwrite = %q, want second", got)
	}
}

func TestDirStoreWriteBinary(t *testing.T) {
	store := NewDirStore(t.TempDir())

	data := []byte{0xFF, 0xFB, 0x90, 0x00}
	if err := store.WriteBinary(filepath.Join("English Audio", "example.mp3"), data); err != nil {
		t.Fatalf("WriteBinary failed: %v", err)
	}
	if !store.Exists(filepath.Join("English Audio", "example.mp3")) {
		t.Error("binary file missing after write")
	}
}

func TestDirStoreReadMissing(t *testing.T) {
	store := NewDirStore(t.TempDir())
	if _, err := store.Read("nope.md"); err == nil {
		t.Error("expected error reading missing file")
	}
}
