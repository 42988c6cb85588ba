// Package config provides configuration loading, defaults, and validation
// for the dance pipeline.
package config

// ─────────────────────────────────────────────────────────────────────────────
// Default value constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	DefaultChemEngine = "openeye"
	DefaultChemReader = "openeye"

	DefaultGeneratePattern = "*.mol2"
	DefaultGenerateOutput  = "generate-output"

	DefaultBinSize         = 0.02
	DefaultWibergPrecision = 0.05
	DefaultBinSelect       = 5
	DefaultSelectOutput    = "select-output"

	DefaultAnalyzeOutput = "select-analyze-output"

	DefaultFinalN      = 1
	DefaultFinalRank   = "canonical"
	DefaultFinalOutput = "select-final.smi"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "console"
)

// ApplyDefaults fills every zero-value field in cfg with the pipeline
// default.  Fields that have already been set by the caller are left
// unchanged so that explicit configuration always wins.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.Chem.Engine == "" {
		cfg.Chem.Engine = DefaultChemEngine
	}
	if cfg.Chem.Reader == "" {
		cfg.Chem.Reader = DefaultChemReader
	}

	if cfg.Generate.Pattern == "" {
		cfg.Generate.Pattern = DefaultGeneratePattern
	}
	if cfg.Generate.OutputDir == "" {
		cfg.Generate.OutputDir = DefaultGenerateOutput
	}

	if cfg.Select.BinSize == 0 {
		cfg.Select.BinSize = DefaultBinSize
	}
	if cfg.Select.WibergPrecision == 0 {
		cfg.Select.WibergPrecision = DefaultWibergPrecision
	}
	if cfg.Select.BinSelect == 0 {
		cfg.Select.BinSelect = DefaultBinSelect
	}
	if cfg.Select.OutputDir == "" {
		cfg.Select.OutputDir = DefaultSelectOutput
	}

	if cfg.Analyze.InputDir == "" {
		cfg.Analyze.InputDir = cfg.Select.OutputDir
	}
	if cfg.Analyze.OutputDir == "" {
		cfg.Analyze.OutputDir = DefaultAnalyzeOutput
	}

	if cfg.Final.InputDir == "" {
		cfg.Final.InputDir = cfg.Select.OutputDir
	}
	if cfg.Final.N == 0 {
		cfg.Final.N = DefaultFinalN
	}
	if cfg.Final.Rank == "" {
		cfg.Final.Rank = DefaultFinalRank
	}
	if cfg.Final.OutputFile == "" {
		cfg.Final.OutputFile = DefaultFinalOutput
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
	if len(cfg.Log.OutputPaths) == 0 {
		cfg.Log.OutputPaths = []string{"stderr"}
	}
}
