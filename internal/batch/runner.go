// Package batch fans out dataset generation over a static table of
// configurations. Tasks are independent: each owns its output file and its
// random source, a failed task never halts its siblings, and every failure
// is reported at the end.
package batch

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/recall-lab/recallgen/internal/dataset"
	"github.com/recall-lab/recallgen/internal/observability"
)

// Spec is one dataset configuration: destination, word budget, sample count.
type Spec struct {
	OutputPath string
	MaxWords   int
	NumSamples int
}

// Result is one invocation's outcome. Err is nil on success.
type Result struct {
	Spec     Spec
	Records  int
	Bytes    int64
	Duration time.Duration
	Err      error
}

// Runner executes a table of specs with bounded concurrency.
type Runner struct {
	parallel   int64
	logger     *zap.Logger
	dictionary []string
}

// NewRunner builds a Runner. parallel caps in-flight generations; values
// under 1 mean one spec at a time. A nil logger is replaced by a no-op.
func NewRunner(parallel int, logger *zap.Logger, dictionary []string) *Runner {
	if parallel < 1 {
		parallel = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		parallel:   int64(parallel),
		logger:     logger,
		dictionary: dictionary,
	}
}

// Run generates every spec's dataset and waits for all of them. The returned
// results are in spec order. The error aggregates every failed spec; partial
// failure still yields results for the specs that succeeded.
func (r *Runner) Run(ctx context.Context, specs []Spec) ([]Result, error) {
	if len(specs) == 0 {
		return nil, errors.New("batch: no dataset specs configured")
	}

	ctx, batchSpan := observability.StartBatchSpan(ctx, len(specs))
	defer batchSpan.End()

	sem := semaphore.NewWeighted(r.parallel)
	results := make([]Result, len(specs))
	var wg sync.WaitGroup

	for i, spec := range specs {
		if err := sem.Acquire(ctx, 1); err != nil {
			results[i] = Result{Spec: spec, Err: fmt.Errorf("acquire slot: %w", err)}
			continue
		}
		wg.Add(1)
		go func(i int, spec Spec) {
			defer wg.Done()
			defer sem.Release(1)
			results[i] = r.generate(ctx, i, spec)
		}(i, spec)
	}
	wg.Wait()

	var failures []error
	succeeded := 0
	for _, res := range results {
		if res.Err != nil {
			failures = append(failures, fmt.Errorf("%s: %w", res.Spec.OutputPath, res.Err))
		} else {
			succeeded++
		}
	}
	observability.RecordBatchResult(batchSpan, succeeded, len(failures))

	if len(failures) > 0 {
		return results, fmt.Errorf("batch: %d of %d datasets failed: %w",
			len(failures), len(specs), errors.Join(failures...))
	}
	return results, nil
}

// generate runs one spec start to finish. Single-threaded inside: sampling,
// assembly, and serialization are strictly sequential, so line N is fully
// written before line N+1 begins.
func (r *Runner) generate(ctx context.Context, idx int, spec Spec) Result {
	_, span := observability.StartDatasetSpan(ctx, spec.OutputPath, spec.MaxWords, spec.NumSamples)
	defer span.End()

	start := time.Now()
	res := Result{Spec: spec}

	// Per-task source: draws never cross task boundaries.
	seed := time.Now().UnixNano() ^ int64(idx)<<32
	opts := []dataset.Option{dataset.WithRand(rand.New(rand.NewSource(seed)))}
	if len(r.dictionary) > 0 {
		opts = append(opts, dataset.WithDictionary(r.dictionary))
	}

	err := dataset.Generate(spec.OutputPath, spec.MaxWords, spec.NumSamples, opts...)
	res.Duration = time.Since(start)
	if err != nil {
		res.Err = err
		observability.RecordError(span, err)
		r.logger.Error("dataset generation failed",
			zap.String("path", spec.OutputPath),
			zap.Int("max_words", spec.MaxWords),
			zap.Int("num_samples", spec.NumSamples),
			zap.Error(err))
		return res
	}

	res.Records = spec.NumSamples
	if fi, statErr := os.Stat(spec.OutputPath); statErr == nil {
		res.Bytes = fi.Size()
	}
	observability.RecordDatasetResult(span, res.Records, res.Bytes)
	r.logger.Info("dataset generated",
		zap.String("path", spec.OutputPath),
		zap.Int("max_words", spec.MaxWords),
		zap.Int("records", res.Records),
		zap.Int64("bytes", res.Bytes),
		zap.Duration("duration", res.Duration))
	return res
}
