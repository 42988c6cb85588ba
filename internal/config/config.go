// Package config defines all configuration structures for the dance
// pipeline.  No I/O or parsing logic lives here — only plain data types and
// validation.
package config

import (
	"fmt"

	"github.com/btjanaka/dance/internal/infrastructure/monitoring/logging"
)

// ─────────────────────────────────────────────────────────────────────────────
// Sub-configuration structs
// ─────────────────────────────────────────────────────────────────────────────

// ChemConfig selects the chemistry backend.  The named engine and reader
// must have been registered by an imported backend package before the
// pipeline starts.
type ChemConfig struct {
	Engine string `mapstructure:"engine"`
	Reader string `mapstructure:"reader"`
}

// GenerateConfig holds settings for the generate step.
type GenerateConfig struct {
	// Dirs are the corpus directories to scan.
	Dirs []string `mapstructure:"dirs"`

	// Pattern is the glob (doublestar syntax) matching structure files
	// inside the corpus directories.
	Pattern string `mapstructure:"pattern"`

	// OutputDir receives the generated molecule set and its side files.
	OutputDir string `mapstructure:"output_dir"`

	// Progress toggles the corpus-scan spinner on stderr.
	Progress bool `mapstructure:"progress"`
}

// SelectConfig holds settings for the select step.
type SelectConfig struct {
	// Inputs alternate molecule dumps with their property blobs, in the
	// order the generate step wrote them.
	Inputs []string `mapstructure:"inputs"`

	// BinSize is the bond-order bucket width.
	BinSize float64 `mapstructure:"bin_size"`

	// WibergPrecision is the step Wiberg bond orders are rounded to
	// inside fingerprints.
	WibergPrecision float64 `mapstructure:"wiberg_precision"`

	// BinSelect caps how many molecules survive per bin; zero keeps all.
	BinSelect int `mapstructure:"bin_select"`

	// OutputDir receives one .smi file per bin.  It must not exist yet.
	OutputDir string `mapstructure:"output_dir"`
}

// AnalyzeConfig holds settings for the select-analyze step.
type AnalyzeConfig struct {
	// InputDir is a select step's output directory.
	InputDir string `mapstructure:"input_dir"`

	// OutputDir receives statistics.txt and visualization.txt.
	OutputDir string `mapstructure:"output_dir"`
}

// FinalConfig holds settings for the select-final step.
type FinalConfig struct {
	// InputDir is a select step's output directory.
	InputDir string `mapstructure:"input_dir"`

	// OutputFile receives the selected molecules.
	OutputFile string `mapstructure:"output_file"`

	// N is how many molecules to keep across all bins.
	N int `mapstructure:"n"`

	// Rank orders candidates: "canonical" or "encounter".
	Rank string `mapstructure:"rank"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Root Config
// ─────────────────────────────────────────────────────────────────────────────

// Config is the root configuration structure for the pipeline.  Every step
// reads its settings from the relevant sub-struct.
type Config struct {
	Chem     ChemConfig        `mapstructure:"chem"`
	Generate GenerateConfig    `mapstructure:"generate"`
	Select   SelectConfig      `mapstructure:"select"`
	Analyze  AnalyzeConfig     `mapstructure:"analyze"`
	Final    FinalConfig       `mapstructure:"final"`
	Log      logging.LogConfig `mapstructure:"log"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Validation
// ─────────────────────────────────────────────────────────────────────────────

// Validate performs semantic validation of the fully-populated Config.
// It returns the first error encountered; callers should treat any error as
// fatal and refuse to start the pipeline.
func (c *Config) Validate() error {
	if c.Chem.Engine == "" {
		return fmt.Errorf("config: chem.engine is required")
	}
	if c.Chem.Reader == "" {
		return fmt.Errorf("config: chem.reader is required")
	}

	if c.Generate.Pattern == "" {
		return fmt.Errorf("config: generate.pattern is required")
	}
	if c.Generate.OutputDir == "" {
		return fmt.Errorf("config: generate.output_dir is required")
	}

	if c.Select.BinSize <= 0 {
		return fmt.Errorf("config: select.bin_size must be > 0, got %g", c.Select.BinSize)
	}
	if c.Select.WibergPrecision <= 0 {
		return fmt.Errorf("config: select.wiberg_precision must be > 0, got %g", c.Select.WibergPrecision)
	}
	if c.Select.BinSelect < 0 {
		return fmt.Errorf("config: select.bin_select must be >= 0, got %d", c.Select.BinSelect)
	}
	if c.Select.OutputDir == "" {
		return fmt.Errorf("config: select.output_dir is required")
	}
	if len(c.Select.Inputs)%2 != 0 {
		return fmt.Errorf("config: select.inputs must pair molecule dumps with property blobs, got %d entries", len(c.Select.Inputs))
	}

	if c.Analyze.OutputDir == "" {
		return fmt.Errorf("config: analyze.output_dir is required")
	}

	if c.Final.N < 0 {
		return fmt.Errorf("config: final.n must be >= 0, got %d", c.Final.N)
	}
	switch c.Final.Rank {
	case "canonical", "encounter":
	default:
		return fmt.Errorf("config: final.rank %q is invalid; expected canonical|encounter", c.Final.Rank)
	}
	if c.Final.OutputFile == "" {
		return fmt.Errorf("config: final.output_file is required")
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|console", c.Log.Format)
	}

	return nil
}
