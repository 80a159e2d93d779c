package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidate_Empty(t *testing.T) {
	cfg := &Config{}
	warnings := cfg.Validate()
	if len(warnings) != 0 {
		t.Errorf("empty config should have no warnings, got %v", warnings)
	}
}

func TestValidate_NonPositiveBudgets(t *testing.T) {
	cfg := &Config{
		Datasets: []DatasetSpec{
			{Path: "a.jsonl", MaxWords: 0, NumSamples: 10},
			{Path: "b.jsonl", MaxWords: 100, NumSamples: -5},
		},
	}
	warnings := cfg.Validate()
	foundWords, foundSamples := false, false
	for _, w := range warnings {
		if strings.Contains(w, "max_words") {
			foundWords = true
		}
		if strings.Contains(w, "num_samples") {
			foundSamples = true
		}
	}
	if !foundWords {
		t.Error("expected warning about max_words")
	}
	if !foundSamples {
		t.Error("expected warning about num_samples")
	}
}

func TestValidate_DuplicatePaths(t *testing.T) {
	cfg := &Config{
		OutputDir: "data",
		Datasets: []DatasetSpec{
			{Path: "same.jsonl", MaxWords: 100, NumSamples: 10},
			{Path: "same.jsonl", MaxWords: 200, NumSamples: 10},
		},
	}
	warnings := cfg.Validate()
	found := false
	for _, w := range warnings {
		if strings.Contains(w, "same file") {
			found = true
		}
	}
	if !found {
		t.Error("expected warning about duplicate output paths")
	}
}

func TestValidate_SampleRate(t *testing.T) {
	tests := []struct {
		name string
		rate float64
		want bool // true = should warn
	}{
		{"zero", 0, false},
		{"half", 0.5, false},
		{"full", 1.0, false},
		{"negative", -0.1, true},
		{"too_high", 1.5, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Telemetry: TelemetryConfig{SampleRate: tt.rate}}
			warnings := cfg.Validate()
			hasWarn := false
			for _, w := range warnings {
				if strings.Contains(w, "sample_rate") {
					hasWarn = true
				}
			}
			if hasWarn != tt.want {
				t.Errorf("sample_rate=%.1f: hasWarn=%v, want=%v", tt.rate, hasWarn, tt.want)
			}
		})
	}
}

func TestDatasetSpec_Resolve(t *testing.T) {
	d := DatasetSpec{Path: "out.jsonl"}
	if got := d.Resolve("data"); got != filepath.Join("data", "out.jsonl") {
		t.Errorf("unexpected resolved path %q", got)
	}
	abs := DatasetSpec{Path: "/tmp/out.jsonl"}
	if got := abs.Resolve("data"); got != "/tmp/out.jsonl" {
		t.Errorf("absolute path must not be joined, got %q", got)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "recallgen.yaml")
	content := `
output_dir: corpus
parallel: 8
datasets:
  - path: d100.jsonl
    max_words: 100
    num_samples: 1000
  - path: d1000.jsonl
    max_words: 1000
    num_samples: 200
log:
  level: debug
  format: json
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.OutputDir != "corpus" {
		t.Errorf("expected output_dir=corpus, got %s", cfg.OutputDir)
	}
	if cfg.Parallel != 8 {
		t.Errorf("expected parallel=8, got %d", cfg.Parallel)
	}
	if len(cfg.Datasets) != 2 {
		t.Fatalf("expected 2 datasets, got %d", len(cfg.Datasets))
	}
	if cfg.Datasets[1].MaxWords != 1000 || cfg.Datasets[1].NumSamples != 200 {
		t.Errorf("dataset 1 not parsed: %+v", cfg.Datasets[1])
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("log config not parsed: %+v", cfg.Log)
	}
	// Defaults fill unset sections.
	if cfg.Temporal.TaskQueue != "recallgen" {
		t.Errorf("expected default task queue, got %s", cfg.Temporal.TaskQueue)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
