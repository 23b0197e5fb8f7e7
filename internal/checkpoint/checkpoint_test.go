package checkpoint

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	s, err := NewStore(filepath.Join(t.TempDir(), "cdr_checkpoint.txt"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	offset, ok := s.Load()
	if ok {
		t.Fatal("Load ok = true for missing file, want false")
	}
	if offset != 0 {
		t.Fatalf("Load offset = %d, want 0", offset)
	}
}

func TestSaveThenLoad(t *testing.T) {
	t.Parallel()

	s, err := NewStore(filepath.Join(t.TempDir(), "cdr_checkpoint.txt"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	if err := s.Save(4096); err != nil {
		t.Fatalf("Save: %v", err)
	}
	offset, ok := s.Load()
	if !ok {
		t.Fatal("Load ok = false after Save, want true")
	}
	if offset != 4096 {
		t.Fatalf("Load offset = %d, want 4096", offset)
	}
}

func TestSaveCreatesParentDir(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "dir", "checkpoint.txt")
	s, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if err := s.Save(10); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("Stat checkpoint: %v", err)
	}
}

func TestLoadCorruptContent(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		content string
	}{
		{"text", "not-a-number"},
		{"empty", ""},
		{"negative", "-42"},
		{"float", "12.5"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "checkpoint.txt")
			if err := os.WriteFile(path, []byte(tc.content), 0644); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}
			s, err := NewStore(path)
			if err != nil {
				t.Fatalf("NewStore: %v", err)
			}

			offset, ok := s.Load()
			if ok {
				t.Fatalf("Load ok = true for %q, want false", tc.content)
			}
			if offset != 0 {
				t.Fatalf("Load offset = %d, want 0", offset)
			}
		})
	}
}

func TestLoadTrimsWhitespace(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "checkpoint.txt")
	if err := os.WriteFile(path, []byte("  128\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	s, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	offset, ok := s.Load()
	if !ok || offset != 128 {
		t.Fatalf("Load = (%d, %v), want (128, true)", offset, ok)
	}
}

func TestSaveRejectsNegativeOffset(t *testing.T) {
	t.Parallel()

	s, err := NewStore(filepath.Join(t.TempDir(), "checkpoint.txt"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if err := s.Save(-1); err == nil {
		t.Fatal("Save(-1) error = nil, want error")
	}
}

func TestSaveLeavesNoTempFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s, err := NewStore(filepath.Join(dir, "checkpoint.txt"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if err := s.Save(77); err != nil {
		t.Fatalf("Save: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "checkpoint.txt" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Fatalf("dir entries = %v, want [checkpoint.txt]", names)
	}
}

func TestNewStoreEmptyPath(t *testing.T) {
	t.Parallel()

	if _, err := NewStore("  "); err == nil {
		t.Fatal("NewStore with blank path: error = nil, want error")
	}
}
