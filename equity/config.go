package equity

import (
	"fmt"
	"os"
	"runtime"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

const (
	defaultTrials         = 100_000
	defaultExactThreshold = 2_000_000
)

// Config holds the engine defaults. Request fields left at zero fall back to
// these values.
//
// A config file is plain HCL:
//
//	trials          = 200000
//	workers         = 8
//	exact_threshold = 1000000
//	seed            = 42
type Config struct {
	// Trials is the Monte Carlo trial budget.
	Trials int
	// Workers is the size of the worker pool for parallel runs.
	Workers int
	// ExactThreshold is the number of completions below which automatic
	// mode enumerates instead of sampling. Zero always samples.
	ExactThreshold int64
	// Seed fixes the simulation seed when a request carries none.
	Seed *uint64
}

// configFile is the decoded form of a config file. Pointer fields tell an
// explicit zero apart from an omitted attribute.
type configFile struct {
	Trials         int     `hcl:"trials,optional"`
	Workers        int     `hcl:"workers,optional"`
	ExactThreshold *int64  `hcl:"exact_threshold,optional"`
	Seed           *uint64 `hcl:"seed,optional"`
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return Config{
		Trials:         defaultTrials,
		Workers:        runtime.GOMAXPROCS(0),
		ExactThreshold: defaultExactThreshold,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Trials <= 0 {
		return &ConfigError{Field: "trials", Reason: fmt.Sprintf("trial budget must be positive, got %d", c.Trials)}
	}
	if c.Workers <= 0 {
		return &ConfigError{Field: "workers", Reason: fmt.Sprintf("worker pool must have at least one worker, got %d", c.Workers)}
	}
	if c.ExactThreshold < 0 {
		return &ConfigError{Field: "exact_threshold", Reason: fmt.Sprintf("must not be negative, got %d", c.ExactThreshold)}
	}
	return nil
}

// LoadConfig loads engine configuration from an HCL file. A missing file
// yields the defaults; attributes left out of the file keep their default.
func LoadConfig(filename string) (Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return Config{}, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var file configFile
	diags = gohcl.DecodeBody(hclFile.Body, nil, &file)
	if diags.HasErrors() {
		return Config{}, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	// Apply defaults for missing values
	config := DefaultConfig()
	if file.Trials != 0 {
		config.Trials = file.Trials
	}
	if file.Workers != 0 {
		config.Workers = file.Workers
	}
	if file.ExactThreshold != nil {
		config.ExactThreshold = *file.ExactThreshold
	}
	config.Seed = file.Seed

	if err := config.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", filename, err)
	}
	return config, nil
}
