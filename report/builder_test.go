package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBuilder_SectionsRenderInInsertionOrder(t *testing.T) {
	b := NewBuilder()
	b.Add("dashboard", "- **VUE Dashboard** (`/`)\n")
	b.Add("history", "  - **History Page** (`/history`)\n")
	b.Add("tables", "\n## Table Contents\n")

	got := b.String()
	dash := strings.Index(got, "VUE Dashboard")
	hist := strings.Index(got, "History Page")
	tables := strings.Index(got, "Table Contents")
	if !(dash < hist && hist < tables) {
		t.Errorf("sections out of order:\n%s", got)
	}
	if b.Len() != 3 {
		t.Errorf("Len = %d, want 3", b.Len())
	}
}

func TestBuilder_AppendNeverDisturbsEarlierSections(t *testing.T) {
	b := NewBuilder()
	b.Add("first", "first section\n")
	before := b.String()

	b.Add("second", "second section\n")
	after := b.String()

	if !strings.HasPrefix(after, before) {
		t.Errorf("adding a section changed earlier content:\nbefore %q\nafter %q", before, after)
	}
}

func TestBuilder_ReaddingNameReplacesSectionInPlace(t *testing.T) {
	b := NewBuilder()
	b.Add("dashboard", "first mapping run\n")
	b.Add("history", "history section\n")

	b.Add("dashboard", "second mapping run\n")

	got := b.String()
	if got != "second mapping run\nhistory section\n" {
		t.Errorf("String = %q, want replaced dashboard before history", got)
	}
	if b.Len() != 2 {
		t.Errorf("Len = %d, want 2", b.Len())
	}
	if strings.Contains(got, "first mapping run") {
		t.Errorf("stale section body survived replacement:\n%s", got)
	}
}

func TestBuilder_MissingTrailingNewlineAdded(t *testing.T) {
	b := NewBuilder()
	b.Add("a", "no newline")
	b.Add("b", "next")

	if got := b.String(); got != "no newline\nnext\n" {
		t.Errorf("String = %q", got)
	}
}

func TestBuilder_WriteAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "map.md")

	b := NewBuilder()
	b.Add("only", "content\n")
	if err := b.Write(path); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "content\n" {
		t.Errorf("file content = %q", data)
	}

	// No temp files may survive the write.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 {
		for _, e := range entries {
			t.Logf("leftover: %s", e.Name())
		}
		t.Errorf("directory has %d entries, want only the report", len(entries))
	}
}

func TestBuilder_WriteReplacesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.md")
	if err := os.WriteFile(path, []byte("stale\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	b := NewBuilder()
	b.Add("fresh", "fresh\n")
	if err := b.Write(path); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "fresh\n" {
		t.Errorf("file content = %q, want replacement", data)
	}
}

func TestWriteJSON_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")

	if err := WriteJSON(path, map[string]int{"score": 95}); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.Contains(string(data), `"score": 95`) {
		t.Errorf("json content = %s", data)
	}
}
