package cli

import (
	"github.com/spf13/cobra"

	"github.com/btjanaka/dance/internal/application/pipeline"
)

var (
	analyzeInputDir  string
	analyzeOutputDir string
)

// NewAnalyzeCmd creates the select-analyze command.
func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "select-analyze",
		Short: "Report statistics about a select output directory",
		Long: "select-analyze counts the molecules in each bin file produced by\n" +
			"select and writes statistics.txt and visualization.txt summarizing the\n" +
			"bin occupancy.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd)
		},
	}

	cmd.Flags().StringVar(&analyzeInputDir, "input-dir", "", "select output directory to analyze")
	cmd.Flags().StringVar(&analyzeOutputDir, "output-dir", "", "directory for the reports")

	return cmd
}

func runAnalyze(cmd *cobra.Command) error {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return err
	}
	cfg := cliCtx.Config

	inputDir := cfg.Analyze.InputDir
	if analyzeInputDir != "" {
		inputDir = analyzeInputDir
	}
	outputDir := cfg.Analyze.OutputDir
	if analyzeOutputDir != "" {
		outputDir = analyzeOutputDir
	}

	an := pipeline.NewAnalyzer(inputDir, outputDir, cliCtx.Logger)
	return an.Run(cmd.Context())
}
