package cli

import (
	"github.com/spf13/cobra"

	"github.com/btjanaka/dance/internal/application/pipeline"
	"github.com/btjanaka/dance/internal/domain/chem"
	"github.com/btjanaka/dance/internal/infrastructure/corpus"
	"github.com/btjanaka/dance/internal/infrastructure/monitoring/logging"
)

var (
	generateOutputDir string
	generatePattern   string
	generateProgress  bool
)

// NewGenerateCmd creates the generate command.
func NewGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [corpus-dir...]",
		Short: "Filter a corpus down to single-trivalent-nitrogen molecules",
		Long: "generate scans the given corpus directories (or generate.dirs from the\n" +
			"config), keeps molecules with exactly one trivalent nitrogen, annotates\n" +
			"them with charged-site properties, and writes the sorted set plus its\n" +
			"property store to the output directory.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, args)
		},
	}

	cmd.Flags().StringVar(&generateOutputDir, "output-dir", "", "directory for generated outputs")
	cmd.Flags().StringVar(&generatePattern, "pattern", "", "glob for structure files, e.g. \"**/*.mol2\"")
	cmd.Flags().BoolVar(&generateProgress, "progress", false, "show a scan progress spinner")

	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return err
	}
	cfg := cliCtx.Config

	dirs := args
	if len(dirs) == 0 {
		dirs = cfg.Generate.Dirs
	}
	pattern := cfg.Generate.Pattern
	if generatePattern != "" {
		pattern = generatePattern
	}
	outputDir := cfg.Generate.OutputDir
	if generateOutputDir != "" {
		outputDir = generateOutputDir
	}

	engine, err := chem.LookupEngine(cfg.Chem.Engine)
	if err != nil {
		return err
	}
	reader, err := chem.LookupReader(cfg.Chem.Reader)
	if err != nil {
		return err
	}

	scanner := corpus.NewScanner(pattern, generateProgress || cfg.Generate.Progress)
	gen := pipeline.NewGenerator(dirs, scanner, reader, engine, cliCtx.Logger)
	if err := gen.Run(cmd.Context()); err != nil {
		return err
	}

	mols, store := gen.Data()
	cliCtx.Logger.Info("saving generated set",
		logging.String("dir", outputDir),
		logging.Int("molecules", len(mols)))
	return pipeline.MkdirAndSave(mols, store, outputDir, cliCtx.Logger)
}
