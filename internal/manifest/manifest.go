// Package manifest records what a batch run produced: per dataset the
// configuration triple, line count, size, and a content hash. Training runs
// pin the manifest so the corpus they consumed stays identifiable after the
// files themselves are shipped off to the training cluster.
package manifest

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// FileName is the manifest's name inside the output directory.
const FileName = "manifest.json"

// Manifest describes one batch run's outputs.
type Manifest struct {
	CreatedAt time.Time `json:"created_at"`
	Datasets  []Entry   `json:"datasets"`
}

// Entry describes one generated dataset file.
type Entry struct {
	Path        string `json:"path"`
	MaxWords    int    `json:"max_words"`
	NumSamples  int    `json:"num_samples"`
	Records     int    `json:"records"`
	Bytes       int64  `json:"bytes"`
	ContentHash string `json:"content_hash"`
}

// New starts an empty manifest stamped with the current time.
func New() *Manifest {
	return &Manifest{CreatedAt: time.Now()}
}

// AddDataset hashes the dataset file and appends its entry.
func (m *Manifest) AddDataset(path string, maxWords, numSamples, records int) error {
	hash, size, err := hashFile(path)
	if err != nil {
		return fmt.Errorf("hash %s: %w", path, err)
	}
	m.Datasets = append(m.Datasets, Entry{
		Path:        filepath.Base(path),
		MaxWords:    maxWords,
		NumSamples:  numSamples,
		Records:     records,
		Bytes:       size,
		ContentHash: hash,
	})
	return nil
}

// Write persists the manifest into dir.
func (m *Manifest) Write(dir string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// Load reads a manifest back from dir.
func Load(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &m, nil
}

func hashFile(path string) (string, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, err
	}
	defer f.Close()

	h := sha256.New()
	n, err := io.Copy(h, f)
	if err != nil {
		return "", 0, err
	}
	return fmt.Sprintf("%x", h.Sum(nil)), n, nil
}
