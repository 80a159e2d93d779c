package batch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/recall-lab/recallgen/internal/dataset"
)

func TestRun_AllSucceed(t *testing.T) {
	dir := t.TempDir()
	specs := []Spec{
		{OutputPath: filepath.Join(dir, "d100.jsonl"), MaxWords: 100, NumSamples: 10},
		{OutputPath: filepath.Join(dir, "d250.jsonl"), MaxWords: 250, NumSamples: 5},
		{OutputPath: filepath.Join(dir, "d10.jsonl"), MaxWords: 10, NumSamples: 20},
	}

	r := NewRunner(2, nil, nil)
	results, err := r.Run(context.Background(), specs)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(results) != len(specs) {
		t.Fatalf("expected %d results, got %d", len(specs), len(results))
	}

	for i, res := range results {
		if res.Err != nil {
			t.Fatalf("spec %d failed: %v", i, res.Err)
		}
		if res.Records != specs[i].NumSamples {
			t.Errorf("spec %d: expected %d records, got %d", i, specs[i].NumSamples, res.Records)
		}
		f, err := os.Open(specs[i].OutputPath)
		if err != nil {
			t.Fatalf("spec %d output missing: %v", i, err)
		}
		samples, err := dataset.ReadJSONL(f)
		f.Close()
		if err != nil {
			t.Fatalf("spec %d output invalid: %v", i, err)
		}
		if len(samples) != specs[i].NumSamples {
			t.Errorf("spec %d: expected %d lines, got %d", i, specs[i].NumSamples, len(samples))
		}
	}
}

func TestRun_AggregatesAllFailures(t *testing.T) {
	dir := t.TempDir()
	specs := []Spec{
		{OutputPath: filepath.Join(dir, "ok.jsonl"), MaxWords: 50, NumSamples: 3},
		// Parent directories do not exist; the generator does not create them.
		{OutputPath: filepath.Join(dir, "missing-a", "a.jsonl"), MaxWords: 50, NumSamples: 3},
		{OutputPath: filepath.Join(dir, "missing-b", "b.jsonl"), MaxWords: 50, NumSamples: 3},
	}

	r := NewRunner(3, nil, nil)
	results, err := r.Run(context.Background(), specs)
	if err == nil {
		t.Fatal("expected aggregate error")
	}
	// Both failing paths are reported, not just the first.
	if !strings.Contains(err.Error(), "missing-a") || !strings.Contains(err.Error(), "missing-b") {
		t.Fatalf("aggregate error missing a failed config: %v", err)
	}
	if !strings.Contains(err.Error(), "2 of 3") {
		t.Fatalf("expected failure count in error: %v", err)
	}

	// Sibling failure must not halt the healthy spec.
	if results[0].Err != nil {
		t.Fatalf("healthy spec failed: %v", results[0].Err)
	}
	if _, statErr := os.Stat(specs[0].OutputPath); statErr != nil {
		t.Fatalf("healthy spec output missing: %v", statErr)
	}
}

func TestRun_OutputsDiffer(t *testing.T) {
	// Identical configs running concurrently must not share random state.
	dir := t.TempDir()
	specs := []Spec{
		{OutputPath: filepath.Join(dir, "a.jsonl"), MaxWords: 200, NumSamples: 10},
		{OutputPath: filepath.Join(dir, "b.jsonl"), MaxWords: 200, NumSamples: 10},
	}

	r := NewRunner(2, nil, nil)
	if _, err := r.Run(context.Background(), specs); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	a, err := os.ReadFile(specs[0].OutputPath)
	if err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(specs[1].OutputPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(a) == string(b) {
		t.Fatal("independent invocations produced identical output")
	}
}

func TestRun_EmptyTable(t *testing.T) {
	r := NewRunner(1, nil, nil)
	if _, err := r.Run(context.Background(), nil); err == nil {
		t.Fatal("expected error for empty spec table")
	}
}

func TestRun_CustomDictionary(t *testing.T) {
	dir := t.TempDir()
	custom := []string{"apple", "pear", "plum"}
	spec := Spec{OutputPath: filepath.Join(dir, "d.jsonl"), MaxWords: 60, NumSamples: 4}

	r := NewRunner(1, nil, custom)
	if _, err := r.Run(context.Background(), []Spec{spec}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	f, err := os.Open(spec.OutputPath)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	samples, err := dataset.ReadJSONL(f)
	if err != nil {
		t.Fatalf("output invalid: %v", err)
	}
	set := map[string]bool{"apple": true, "pear": true, "plum": true}
	for _, s := range samples {
		_, doc, ok := dataset.MatchTemplate(dataset.DefaultTemplates, s)
		if !ok {
			t.Fatal("record does not match any template")
		}
		for _, w := range strings.Fields(doc) {
			if !set[w] {
				t.Fatalf("word %q not from custom dictionary", w)
			}
		}
	}
}
