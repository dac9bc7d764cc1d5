// Package config provides the runtime configuration for the CLI and the API
// server. Values layer defaults, an optional YAML file, and environment
// variables; flags override on top at the call site.
package config

import (
	"errors"
	"time"
	"unicode/utf8"

	"github.com/fabiospaccavento00/arepas/internal/dataset"
	"github.com/fabiospaccavento00/arepas/pkg/utils"
)

// Config carries every tunable of the dataset builder.
type Config struct {
	// API server.
	Addr      string `koanf:"addr"`
	DBPath    string `koanf:"db_path"`
	OutputDir string `koanf:"output_dir"`

	// Conventional input locations.
	CookingMetrics  string `koanf:"cooking_metrics"`
	FaultyIntervals string `koanf:"faulty_intervals"`
	BatchRegistry   string `koanf:"batch_registry"`

	// Parsing and bucketing.
	InputDelimiter   string   `koanf:"input_delimiter"`
	DecimalSeparator string   `koanf:"decimal_separator"`
	OutputDelimiter  string   `koanf:"output_delimiter"`
	Bucket           string   `koanf:"bucket"`
	DateColumns      []string `koanf:"date_columns"`
}

// New returns the built-in defaults.
func New() *Config {
	return &Config{
		Addr:             ":8080",
		DBPath:           "arepas.db",
		OutputDir:        "exports",
		CookingMetrics:   "input_dataset/cooking_metrics.csv",
		FaultyIntervals:  "input_dataset/faulty_intervals.csv",
		BatchRegistry:    "input_dataset/batch_registry.csv",
		InputDelimiter:   ";",
		DecimalSeparator: ",",
		OutputDelimiter:  ",",
		Bucket:           "1h",
		DateColumns:      []string{"timestamp", "start_time", "end_time"},
	}
}

func (c *Config) validate() error {
	if c.Addr == "" {
		return errors.New("addr must not be empty")
	}
	for _, d := range []string{c.InputDelimiter, c.DecimalSeparator, c.OutputDelimiter} {
		if utf8.RuneCountInString(d) != 1 {
			return errors.New("delimiters and decimal separator must be a single character")
		}
	}
	if _, err := time.ParseDuration(c.Bucket); err != nil {
		return errors.New("bucket must be a valid duration")
	}
	return nil
}

// PipelineParams seeds a dataset.Params with the configured source paths and
// parsing options. Machine, type, window, and output come from the job.
func (c *Config) PipelineParams() dataset.Params {
	inputDelim, _ := utf8.DecodeRuneInString(c.InputDelimiter)
	decimal, _ := utf8.DecodeRuneInString(c.DecimalSeparator)
	outputDelim, _ := utf8.DecodeRuneInString(c.OutputDelimiter)
	return dataset.Params{
		CookingMetricsPath:  c.CookingMetrics,
		FaultyIntervalsPath: c.FaultyIntervals,
		BatchRegistryPath:   c.BatchRegistry,
		InputDelimiter:      inputDelim,
		DecimalSeparator:    decimal,
		OutputDelimiter:     outputDelim,
		Bucket:              utils.ParseDuration(c.Bucket, dataset.DefaultBucket),
		DateColumns:         c.DateColumns,
	}
}
