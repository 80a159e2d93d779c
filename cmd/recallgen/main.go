package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/recall-lab/recallgen/internal/batch"
	"github.com/recall-lab/recallgen/internal/config"
	"github.com/recall-lab/recallgen/internal/dataset"
	"github.com/recall-lab/recallgen/internal/logging"
	"github.com/recall-lab/recallgen/internal/manifest"
	"github.com/recall-lab/recallgen/internal/metrics"
	"github.com/recall-lab/recallgen/internal/observability"
)

// Exit codes: usage errors are distinguishable from I/O failures.
const (
	exitIOError    = 1
	exitUsageError = 2
)

func main() {
	var (
		configPath string
		jsonReport bool
		dictPath   string
	)

	rootCmd := &cobra.Command{
		Use:   "recallgen",
		Short: "Synthetic random-word corpus generator for verbatim-recall fine-tuning",
	}

	generateCmd := &cobra.Command{
		Use:   "generate <output.jsonl> <max-words> <num-samples>",
		Short: "Generate one JSONL dataset of prompt/completion records",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 3 {
				return fmt.Errorf("%w: expected <output.jsonl> <max-words> <num-samples>, got %d arguments",
					dataset.ErrUsage, len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(args[0], args[1], args[2], dictPath)
		},
	}
	generateCmd.Flags().StringVar(&dictPath, "dictionary", "", "Word-list file overriding the built-in dictionary")

	batchCmd := &cobra.Command{
		Use:   "batch",
		Short: "Generate every dataset in the config table concurrently",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(configPath, jsonReport)
		},
	}
	batchCmd.Flags().StringVar(&configPath, "config", "configs/recallgen.yaml", "Config file path")
	batchCmd.Flags().BoolVar(&jsonReport, "json", false, "Output run report as JSON")

	wordsCmd := &cobra.Command{
		Use:   "words <output.txt> <num-words>",
		Short: "Generate a held-out random word list for guided evaluation",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return fmt.Errorf("%w: expected <output.txt> <num-words>, got %d arguments",
					dataset.ErrUsage, len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWords(args[0], args[1])
		},
	}

	templatesCmd := &cobra.Command{
		Use:   "templates",
		Short: "List the built-in prompt framings",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("Built-in templates (one is drawn uniformly per record):")
			fmt.Println()
			for _, t := range dataset.DefaultTemplates {
				phrasing, _, _ := strings.Cut(t.Prompt, " ```")
				phrasing, _, _ = strings.Cut(phrasing, "\n")
				fmt.Printf("  %-10s %s\n", t.Name, phrasing)
			}
		},
	}

	inspectCmd := &cobra.Command{
		Use:   "inspect <dataset.jsonl>",
		Short: "Validate a dataset file and print record statistics",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("%w: expected <dataset.jsonl>, got %d arguments",
					dataset.ErrUsage, len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(args[0])
		},
	}

	rootCmd.AddCommand(generateCmd, batchCmd, wordsCmd, templatesCmd, inspectCmd)

	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, dataset.ErrUsage) {
			os.Exit(exitUsageError)
		}
		os.Exit(exitIOError)
	}
}

// parsePositive parses a CLI integer argument; anything non-numeric or
// non-positive is a usage error, reported before any file is touched.
func parsePositive(name, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", dataset.ErrUsage, name, s)
	}
	if n < 1 {
		return 0, fmt.Errorf("%w: %s must be positive, got %d", dataset.ErrUsage, name, n)
	}
	return n, nil
}

func runGenerate(outputPath, maxWordsArg, numSamplesArg, dictPath string) error {
	maxWords, err := parsePositive("max words", maxWordsArg)
	if err != nil {
		return err
	}
	numSamples, err := parsePositive("sample count", numSamplesArg)
	if err != nil {
		return err
	}

	var opts []dataset.Option
	if dictPath != "" {
		words, err := dataset.LoadDictionary(dictPath)
		if err != nil {
			return err
		}
		opts = append(opts, dataset.WithDictionary(words))
	}

	if err := dataset.Generate(outputPath, maxWords, numSamples, opts...); err != nil {
		return err
	}
	fmt.Printf("Wrote %d records (budget %d words) to %s\n", numSamples, maxWords, outputPath)
	return nil
}

func runWords(outputPath, numWordsArg string) error {
	numWords, err := parsePositive("word count", numWordsArg)
	if err != nil {
		return err
	}

	_, span := observability.StartWordListSpan(context.Background(), outputPath, numWords)
	defer span.End()

	f, err := os.Create(outputPath)
	if err != nil {
		err = fmt.Errorf("create %s: %w", outputPath, err)
		observability.RecordError(span, err)
		return err
	}
	g := dataset.NewGenerator()
	if err := g.WriteWordList(f, numWords); err != nil {
		f.Close()
		observability.RecordError(span, err)
		return fmt.Errorf("write %s: %w", outputPath, err)
	}
	if err := f.Close(); err != nil {
		observability.RecordError(span, err)
		return fmt.Errorf("close %s: %w", outputPath, err)
	}
	fmt.Printf("Wrote %d words to %s\n", numWords, outputPath)
	return nil
}

func runBatch(configPath string, jsonReport bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if len(cfg.Datasets) == 0 {
		return fmt.Errorf("%w: no datasets configured in %s", dataset.ErrUsage, configPath)
	}

	logger, err := logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx := context.Background()
	tracingCfg := observability.DefaultTracingConfig()
	tracingCfg.OTLPEndpoint = cfg.Telemetry.OTLPEndpoint
	if cfg.Telemetry.SampleRate > 0 {
		tracingCfg.SampleRate = cfg.Telemetry.SampleRate
	}
	if cfg.Telemetry.Environment != "" {
		tracingCfg.Environment = cfg.Telemetry.Environment
	}
	tp, err := observability.InitTracing(ctx, tracingCfg)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer tp.Shutdown(ctx)

	var dict []string
	if cfg.Dictionary != "" {
		dict, err = dataset.LoadDictionary(cfg.Dictionary)
		if err != nil {
			return err
		}
	}

	if cfg.OutputDir != "" {
		if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	specs := make([]batch.Spec, len(cfg.Datasets))
	for i, d := range cfg.Datasets {
		specs[i] = batch.Spec{
			OutputPath: d.Resolve(cfg.OutputDir),
			MaxWords:   d.MaxWords,
			NumSamples: d.NumSamples,
		}
	}

	fmt.Printf("Generating %d datasets (parallel=%d)\n", len(specs), cfg.Parallel)

	m := metrics.New()
	runner := batch.NewRunner(cfg.Parallel, logger, dict)
	results, runErr := runner.Run(ctx, specs)
	for _, res := range results {
		m.AddDataset(res.Spec.OutputPath, res.Spec.MaxWords, res.Spec.NumSamples,
			res.Records, res.Bytes, res.Duration, res.Err)
	}
	m.Finish()

	// Manifest covers what actually got written.
	man := manifest.New()
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		if err := man.AddDataset(res.Spec.OutputPath, res.Spec.MaxWords, res.Spec.NumSamples, res.Records); err != nil {
			logger.Warn("manifest entry skipped", zap.Error(err))
		}
	}
	if len(man.Datasets) > 0 && cfg.OutputDir != "" {
		if err := man.Write(cfg.OutputDir); err != nil {
			logger.Warn("manifest not written", zap.Error(err))
		}
	}

	if jsonReport {
		data, _ := m.JSON()
		fmt.Println(string(data))
	} else {
		m.PrintSummary(os.Stdout)
	}

	return runErr
}

func runInspect(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	samples, err := dataset.ReadJSONL(f)
	if err != nil {
		return err
	}

	byTemplate := make(map[string]int)
	minWords, maxWords := -1, 0
	mismatched := 0
	for _, s := range samples {
		t, doc, ok := dataset.MatchTemplate(dataset.DefaultTemplates, s)
		if !ok {
			mismatched++
			continue
		}
		byTemplate[t.Name]++
		n := len(strings.Fields(doc))
		if minWords < 0 || n < minWords {
			minWords = n
		}
		if n > maxWords {
			maxWords = n
		}
	}

	fmt.Printf("%s: %d records\n", path, len(samples))
	for _, t := range dataset.DefaultTemplates {
		fmt.Printf("  %-10s %d\n", t.Name, byTemplate[t.Name])
	}
	if len(samples) > 0 && minWords >= 0 {
		fmt.Printf("  document words: %d-%d\n", minWords, maxWords)
	}
	if mismatched > 0 {
		return fmt.Errorf("%d records do not echo their prompt document", mismatched)
	}
	return nil
}
