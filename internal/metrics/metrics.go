package metrics

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// RunMetrics collects statistics for a batch generation run.
type RunMetrics struct {
	StartedAt  time.Time        `json:"started_at"`
	FinishedAt time.Time        `json:"finished_at,omitempty"`
	Duration   time.Duration    `json:"duration_ms,omitempty"`
	Datasets   []DatasetMetrics `json:"datasets"`
	Totals     Totals           `json:"totals"`
	Errors     []string         `json:"errors,omitempty"`
}

// DatasetMetrics describes one generated dataset.
type DatasetMetrics struct {
	Path       string        `json:"path"`
	MaxWords   int           `json:"max_words"`
	NumSamples int           `json:"num_samples"`
	Records    int           `json:"records"`
	Bytes      int64         `json:"bytes"`
	Duration   time.Duration `json:"duration_ms"`
	Status     string        `json:"status"` // "ok" or "failed"
}

// Totals aggregates across all datasets in the run.
type Totals struct {
	Datasets int   `json:"datasets"`
	Failed   int   `json:"failed"`
	Records  int   `json:"records"`
	Bytes    int64 `json:"bytes"`
}

// New starts tracking a batch run.
func New() *RunMetrics {
	return &RunMetrics{StartedAt: time.Now()}
}

// AddDataset records a single dataset's outcome.
func (m *RunMetrics) AddDataset(path string, maxWords, numSamples, records int, bytes int64, d time.Duration, err error) {
	dm := DatasetMetrics{
		Path:       path,
		MaxWords:   maxWords,
		NumSamples: numSamples,
		Records:    records,
		Bytes:      bytes,
		Duration:   d,
		Status:     "ok",
	}
	m.Totals.Datasets++
	if err != nil {
		dm.Status = "failed"
		m.Totals.Failed++
		m.Errors = append(m.Errors, fmt.Sprintf("%s: %v", path, err))
	} else {
		m.Totals.Records += records
		m.Totals.Bytes += bytes
	}
	m.Datasets = append(m.Datasets, dm)
}

// Finish marks the run as complete.
func (m *RunMetrics) Finish() {
	m.FinishedAt = time.Now()
	m.Duration = m.FinishedAt.Sub(m.StartedAt)
}

// PrintSummary writes a human-readable summary.
func (m *RunMetrics) PrintSummary(w io.Writer) {
	fmt.Fprintf(w, "\n╔══════════════════════════════════════╗\n")
	fmt.Fprintf(w, "║       RECALLGEN BATCH REPORT         ║\n")
	fmt.Fprintf(w, "╠══════════════════════════════════════╣\n")
	fmt.Fprintf(w, "║ Duration:    %-23s║\n", m.Duration.Round(time.Millisecond))
	fmt.Fprintf(w, "║ Datasets:    %-23d║\n", m.Totals.Datasets)
	fmt.Fprintf(w, "║ Failed:      %-23d║\n", m.Totals.Failed)
	fmt.Fprintf(w, "║ Records:     %-23d║\n", m.Totals.Records)
	fmt.Fprintf(w, "║ Total Size:  %-23s║\n", formatBytes(m.Totals.Bytes))
	fmt.Fprintf(w, "╠══════════════════════════════════════╣\n")
	fmt.Fprintf(w, "║ DATASETS\n")
	for _, d := range m.Datasets {
		fmt.Fprintf(w, "║   %-24s %6dw ×%-6d %8s  [%s]\n",
			d.Path, d.MaxWords, d.NumSamples, d.Duration.Round(time.Millisecond), d.Status)
	}
	if len(m.Errors) > 0 {
		fmt.Fprintf(w, "╠══════════════════════════════════════╣\n")
		fmt.Fprintf(w, "║ ERRORS\n")
		for _, e := range m.Errors {
			fmt.Fprintf(w, "║   • %s\n", e)
		}
	}
	fmt.Fprintf(w, "╚══════════════════════════════════════╝\n")
}

// JSON returns the metrics as formatted JSON.
func (m *RunMetrics) JSON() ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/float64(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/float64(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
