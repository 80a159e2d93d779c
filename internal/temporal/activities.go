package temporal

import (
	"context"
	"math/rand"
	"os"
	"time"

	"github.com/recall-lab/recallgen/internal/dataset"
)

// GenerateInput is the serializable activity input: one dataset spec.
type GenerateInput struct {
	OutputPath string
	MaxWords   int
	NumSamples int

	// DictionaryPath optionally points to a word-list file on the worker
	// host, overriding the built-in pool.
	DictionaryPath string
}

// GenerateResult is the serializable activity result.
type GenerateResult struct {
	OutputPath string
	Records    int
	Bytes      int64
}

// GenerateDatasetActivity generates one dataset file on the worker host.
// Generation is single-threaded inside the activity; concurrency comes from
// the workflow fanning out activities.
func GenerateDatasetActivity(ctx context.Context, input GenerateInput) (GenerateResult, error) {
	opts := []dataset.Option{
		dataset.WithRand(rand.New(rand.NewSource(time.Now().UnixNano()))),
	}
	if input.DictionaryPath != "" {
		words, err := dataset.LoadDictionary(input.DictionaryPath)
		if err != nil {
			return GenerateResult{}, err
		}
		opts = append(opts, dataset.WithDictionary(words))
	}

	if err := dataset.Generate(input.OutputPath, input.MaxWords, input.NumSamples, opts...); err != nil {
		return GenerateResult{}, err
	}

	res := GenerateResult{
		OutputPath: input.OutputPath,
		Records:    input.NumSamples,
	}
	if fi, err := os.Stat(input.OutputPath); err == nil {
		res.Bytes = fi.Size()
	}
	return res, nil
}
