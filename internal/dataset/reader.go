package dataset

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
)

// ReadJSONL reads prompt/completion records from a JSON Lines stream. Used
// by `recallgen inspect` and by tests to validate generated files; the
// generator itself never reads back its output.
func ReadJSONL(r io.Reader) ([]Sample, error) {
	var out []Sample
	sc := bufio.NewScanner(r)
	// Large budgets produce long lines (a 1000-word document is ~7KB).
	sc.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		b := sc.Bytes()
		if len(b) == 0 {
			continue
		}
		var s Sample
		if err := json.Unmarshal(b, &s); err != nil {
			return nil, fmt.Errorf("dataset: invalid JSONL at line %d: %w", lineNo, err)
		}
		if s.Prompt == "" {
			return nil, fmt.Errorf("dataset: missing prompt at line %d", lineNo)
		}
		if s.Completion == "" {
			return nil, fmt.Errorf("dataset: missing completion at line %d", lineNo)
		}
		out = append(out, s)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
