package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	OutputDir  string          `mapstructure:"output_dir"`
	Parallel   int             `mapstructure:"parallel"`
	Dictionary string          `mapstructure:"dictionary"` // optional word-list file overriding the built-in pool
	Datasets   []DatasetSpec   `mapstructure:"datasets"`
	Telemetry  TelemetryConfig `mapstructure:"telemetry"`
	Temporal   TemporalConfig  `mapstructure:"temporal"`
	Log        LogConfig       `mapstructure:"log"`
}

// DatasetSpec is one entry of the batch table: output file, word budget,
// sample count.
type DatasetSpec struct {
	Path       string `mapstructure:"path"`
	MaxWords   int    `mapstructure:"max_words"`
	NumSamples int    `mapstructure:"num_samples"`
}

// Resolve joins the spec path with the output directory unless it is
// already absolute.
func (d DatasetSpec) Resolve(outputDir string) string {
	if filepath.IsAbs(d.Path) || outputDir == "" {
		return d.Path
	}
	return filepath.Join(outputDir, d.Path)
}

type TelemetryConfig struct {
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	SampleRate   float64 `mapstructure:"sample_rate"`
	Environment  string  `mapstructure:"environment"`
}

type TemporalConfig struct {
	Host      string `mapstructure:"host"`
	Namespace string `mapstructure:"namespace"`
	TaskQueue string `mapstructure:"task_queue"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Validate checks configuration for issues and returns warnings.
func (c *Config) Validate() []string {
	var warnings []string

	if c.Parallel < 0 {
		warnings = append(warnings, fmt.Sprintf("parallel %d is negative, running one dataset at a time", c.Parallel))
	}

	seen := make(map[string]string)
	for i, d := range c.Datasets {
		name := d.Path
		if name == "" {
			warnings = append(warnings, fmt.Sprintf("dataset %d has no path", i))
			continue
		}
		if d.MaxWords < 1 {
			warnings = append(warnings, fmt.Sprintf("dataset %s: max_words %d is not positive", name, d.MaxWords))
		}
		if d.NumSamples < 1 {
			warnings = append(warnings, fmt.Sprintf("dataset %s: num_samples %d is not positive", name, d.NumSamples))
		}
		// Concurrent tasks must write disjoint files.
		resolved := d.Resolve(c.OutputDir)
		if prev, ok := seen[resolved]; ok {
			warnings = append(warnings, fmt.Sprintf("dataset %s resolves to the same file as %s", name, prev))
		}
		seen[resolved] = name
	}

	if c.Telemetry.SampleRate < 0 || c.Telemetry.SampleRate > 1.0 {
		warnings = append(warnings, fmt.Sprintf("telemetry sample_rate %.2f is outside [0.0, 1.0]", c.Telemetry.SampleRate))
	}

	return warnings
}

// Load reads configuration from file and environment.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("RECALLGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("output_dir", "data")
	v.SetDefault("parallel", 4)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("temporal.host", "localhost:7233")
	v.SetDefault("temporal.namespace", "default")
	v.SetDefault("temporal.task_queue", "recallgen")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	// Validate configuration and print warnings
	if warnings := cfg.Validate(); len(warnings) > 0 {
		for _, warning := range warnings {
			fmt.Fprintf(os.Stderr, "Warning: %s\n", warning)
		}
	}

	return &cfg, nil
}
