package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultDictionary(t *testing.T) {
	if len(DefaultDictionary) < 100 {
		t.Fatalf("dictionary suspiciously small: %d words", len(DefaultDictionary))
	}
	for _, w := range DefaultDictionary {
		if w == "" {
			t.Fatal("empty word in dictionary")
		}
		if strings.ContainsAny(w, " \t\n") {
			t.Fatalf("word %q contains whitespace", w)
		}
	}
}

func TestLoadDictionary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	content := "alpha\nbeta\n\n  gamma  \ndelta\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	words, err := LoadDictionary(path)
	if err != nil {
		t.Fatalf("LoadDictionary: %v", err)
	}
	want := []string{"alpha", "beta", "gamma", "delta"}
	if len(words) != len(want) {
		t.Fatalf("expected %d words, got %d", len(want), len(words))
	}
	for i, w := range want {
		if words[i] != w {
			t.Errorf("word %d: expected %q, got %q", i, w, words[i])
		}
	}
}

func TestLoadDictionary_MultipleWordsPerLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(path, []byte("alpha beta\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := LoadDictionary(path); err == nil {
		t.Fatal("expected error for multiple words per line")
	}
}

func TestLoadDictionary_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(path, []byte("\n\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := LoadDictionary(path); err == nil {
		t.Fatal("expected error for empty dictionary")
	}
}

func TestLoadDictionary_Missing(t *testing.T) {
	if _, err := LoadDictionary(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
