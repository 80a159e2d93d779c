// Package dataset generates synthetic prompt/completion corpora for
// verbatim-recall fine-tuning: random-word documents at controlled lengths,
// wrapped in a small set of instructional framings and written as JSONL.
package dataset

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"
	"time"
)

// strideWords caps a single paragraph. The stride keeps one document from
// being a single enormous draw and gives otherwise unstructured text a soft
// paragraph shape.
const strideWords = 100

// ErrUsage marks argument validation failures, as opposed to I/O failures.
// Callers map it to a distinct exit code.
var ErrUsage = errors.New("invalid argument")

// Sample is one prompt/completion record in the output dataset. The field
// names are the contract with the fine-tuning framework and must not change.
type Sample struct {
	Prompt     string `json:"prompt"`
	Completion string `json:"completion"`
}

// Generator produces random-word documents wrapped in instructional
// templates. A Generator is not safe for concurrent use; concurrent
// invocations each get their own Generator and random source.
type Generator struct {
	dict  []string
	tmpls []Template
	rng   *rand.Rand
}

// Option configures a Generator.
type Option func(*Generator)

// WithRand sets the random source. Tests use a fixed seed; the batch driver
// seeds one source per task so draws never cross task boundaries.
func WithRand(r *rand.Rand) Option {
	return func(g *Generator) { g.rng = r }
}

// WithDictionary replaces the default word pool.
func WithDictionary(words []string) Option {
	return func(g *Generator) { g.dict = words }
}

// WithTemplates replaces the default framing table.
func WithTemplates(tmpls []Template) Option {
	return func(g *Generator) { g.tmpls = tmpls }
}

// NewGenerator returns a Generator using the default dictionary and
// templates unless overridden.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		dict:  DefaultDictionary,
		tmpls: DefaultTemplates,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return g
}

// Document assembles one random-word document of at most maxWords words.
//
// A cursor walks from 0 to maxWords in strides of 100. Each stride yields a
// paragraph of uniform size in [cap/2, cap] where cap is the remaining budget
// clamped to the stride, so paragraphs lean toward their allotted maximum.
// The cursor advances by the cap, not the sampled size; totals land a few
// percent under the budget whenever a draw comes in low. The corpora the
// recall experiments were trained on use this accounting, so it stays.
func (g *Generator) Document(maxWords int) string {
	var paragraphs []string
	for wordsSoFar := 0; wordsSoFar < maxWords; {
		paragraphMax := maxWords - wordsSoFar
		if paragraphMax > strideWords {
			paragraphMax = strideWords
		}
		n := g.rng.Intn(paragraphMax-paragraphMax/2+1) + paragraphMax/2
		words := make([]string, n)
		for i := range words {
			words[i] = g.dict[g.rng.Intn(len(g.dict))]
		}
		paragraphs = append(paragraphs, strings.Join(words, " "))
		wordsSoFar += paragraphMax
	}
	return strings.Join(paragraphs, "\n\n")
}

// Sample generates one document and wraps it in a uniformly chosen template.
func (g *Generator) Sample(maxWords int) Sample {
	doc := g.Document(maxWords)
	t := g.tmpls[g.rng.Intn(len(g.tmpls))]
	return t.Render(doc)
}

// WriteDataset streams numSamples records to w as JSONL, one record per line
// with a trailing newline. Records are written incrementally; memory stays
// bounded regardless of numSamples.
func (g *Generator) WriteDataset(w io.Writer, maxWords, numSamples int) error {
	if err := validateBudget(maxWords, numSamples); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	for i := 0; i < numSamples; i++ {
		if err := enc.Encode(g.Sample(maxWords)); err != nil {
			return fmt.Errorf("writing record %d: %w", i+1, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flushing output: %w", err)
	}
	return nil
}

// WriteWordList streams numWords uniformly drawn words to w, space-joined
// and newline-terminated. Held-out material for the guided evaluation
// harness, which slices the list to its target token counts.
func (g *Generator) WriteWordList(w io.Writer, numWords int) error {
	if numWords < 1 {
		return fmt.Errorf("%w: word count must be positive, got %d", ErrUsage, numWords)
	}
	bw := bufio.NewWriter(w)
	for i := 0; i < numWords; i++ {
		if i > 0 {
			if err := bw.WriteByte(' '); err != nil {
				return fmt.Errorf("writing word list: %w", err)
			}
		}
		if _, err := bw.WriteString(g.dict[g.rng.Intn(len(g.dict))]); err != nil {
			return fmt.Errorf("writing word list: %w", err)
		}
	}
	if err := bw.WriteByte('\n'); err != nil {
		return fmt.Errorf("writing word list: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flushing word list: %w", err)
	}
	return nil
}

// Generate writes a complete dataset file: numSamples JSONL records of up to
// maxWords words each. Arguments are validated before the file is touched, so
// a usage error never leaves output behind. On a write failure the partial
// file is left as-is for inspection; there are no retries.
func Generate(path string, maxWords, numSamples int, opts ...Option) error {
	if err := validateBudget(maxWords, numSamples); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	g := NewGenerator(opts...)
	if err := g.WriteDataset(f, maxWords, numSamples); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

func validateBudget(maxWords, numSamples int) error {
	if maxWords < 1 {
		return fmt.Errorf("%w: max words must be positive, got %d", ErrUsage, maxWords)
	}
	if numSamples < 1 {
		return fmt.Errorf("%w: sample count must be positive, got %d", ErrUsage, numSamples)
	}
	return nil
}
