package cli

import (
	"github.com/spf13/cobra"

	"github.com/btjanaka/dance/internal/application/pipeline"
)

var (
	finalInputDir   string
	finalOutputFile string
	finalN          int
	finalRank       string
)

// NewFinalCmd creates the select-final command.
func NewFinalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "select-final",
		Short: "Pick the overall best molecules from a select output directory",
		Long: "select-final reads every bin file produced by select and writes the n\n" +
			"best-ranked molecules across all bins to a single output file.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFinal(cmd)
		},
	}

	cmd.Flags().StringVar(&finalInputDir, "input-dir", "", "select output directory to pick from")
	cmd.Flags().StringVar(&finalOutputFile, "output-file", "", "file for the selected molecules")
	cmd.Flags().IntVarP(&finalN, "n", "n", -1, "how many molecules to keep")
	cmd.Flags().StringVar(&finalRank, "rank", "", "candidate ordering (canonical, encounter)")

	return cmd
}

func runFinal(cmd *cobra.Command) error {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return err
	}
	cfg := cliCtx.Config

	inputDir := cfg.Final.InputDir
	if finalInputDir != "" {
		inputDir = finalInputDir
	}
	outputFile := cfg.Final.OutputFile
	if finalOutputFile != "" {
		outputFile = finalOutputFile
	}
	n := cfg.Final.N
	if finalN >= 0 {
		n = finalN
	}
	rankName := cfg.Final.Rank
	if finalRank != "" {
		rankName = finalRank
	}
	rank, err := pipeline.ParseRanking(rankName)
	if err != nil {
		return err
	}

	fin := pipeline.NewFinalSelector(inputDir, outputFile, n, rank, cliCtx.Logger)
	return fin.Run(cmd.Context())
}
