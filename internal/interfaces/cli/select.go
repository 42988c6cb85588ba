package cli

import (
	"github.com/spf13/cobra"

	"github.com/btjanaka/dance/internal/application/pipeline"
)

var (
	selectOutputDir string
	selectBinSize   float64
	selectPrecision float64
	selectBinSelect int
)

// NewSelectCmd creates the select command.
func NewSelectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "select [mols.bin props.bin]...",
		Short: "Partition generated molecules into fingerprint bins",
		Long: "select reads (molecule dump, property blob) file pairs written by\n" +
			"generate, partitions the molecules into bond-order/fingerprint bins,\n" +
			"keeps the lowest-bond-order molecules in each bin, and writes one .smi\n" +
			"file per bin into a fresh output directory.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSelect(cmd, args)
		},
	}

	cmd.Flags().StringVar(&selectOutputDir, "output-dir", "", "directory for bin files (must not exist)")
	cmd.Flags().Float64Var(&selectBinSize, "bin-size", 0, "bond-order bucket width")
	cmd.Flags().Float64Var(&selectPrecision, "wiberg-precision", 0, "fingerprint bond-order rounding step")
	cmd.Flags().IntVar(&selectBinSelect, "bin-select", -1, "molecules kept per bin (0 keeps all)")

	return cmd
}

func runSelect(cmd *cobra.Command, args []string) error {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return err
	}
	cfg := cliCtx.Config

	inputs := args
	if len(inputs) == 0 {
		inputs = cfg.Select.Inputs
	}
	pairs, err := pipeline.PairInputs(inputs)
	if err != nil {
		return err
	}

	outputDir := cfg.Select.OutputDir
	if selectOutputDir != "" {
		outputDir = selectOutputDir
	}
	binSize := cfg.Select.BinSize
	if selectBinSize > 0 {
		binSize = selectBinSize
	}
	precision := cfg.Select.WibergPrecision
	if selectPrecision > 0 {
		precision = selectPrecision
	}
	binSelect := cfg.Select.BinSelect
	if selectBinSelect >= 0 {
		binSelect = selectBinSelect
	}

	sel := pipeline.NewSelector(pairs, outputDir, binSize, precision, binSelect,
		cliCtx.Logger)
	return sel.Run(cmd.Context())
}
