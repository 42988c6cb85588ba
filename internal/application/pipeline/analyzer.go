package pipeline

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/btjanaka/dance/internal/infrastructure/monitoring/logging"
	"github.com/btjanaka/dance/pkg/errors"
)

// Analyzer summarizes a selection output directory: how many molecules each
// bin holds, which bins are fullest, and a text bar chart of the counts.
type Analyzer struct {
	runGuard

	inDir  string
	outDir string
	log    logging.Logger
}

// NewAnalyzer builds an Analyzer that reads bin files from inDir and writes
// statistics.txt and visualization.txt into outDir.
func NewAnalyzer(inDir, outDir string, log logging.Logger) *Analyzer {
	return &Analyzer{inDir: inDir, outDir: outDir, log: log.Named("analyze")}
}

// Run performs the analysis. It may be called once.
func (a *Analyzer) Run(_ context.Context) error {
	if err := a.begin("Analyzer"); err != nil {
		return err
	}
	a.log.Info("starting analysis", logging.String("dir", a.inDir))

	binCount, err := a.countBins()
	if err != nil {
		return err
	}
	if len(binCount) == 0 {
		return errors.NotFound("no bin files found in " + a.inDir)
	}

	if err := os.MkdirAll(a.outDir, 0o755); err != nil {
		return errors.Wrap(err, errors.CodeIO, "failed to create output directory")
	}
	a.log.Info("writing results", logging.String("dir", a.outDir))

	sortedBins := lo.Keys(binCount)
	sort.Slice(sortedBins, func(i, j int) bool {
		return binBondOrder(sortedBins[i]) < binBondOrder(sortedBins[j])
	})

	if err := a.writeStatistics(binCount, sortedBins); err != nil {
		return err
	}
	if err := a.writeVisualization(binCount, sortedBins); err != nil {
		return err
	}

	a.log.Info("finished analysis", logging.Int("bins", len(binCount)))
	return nil
}

// countBins counts the molecules in every .smi file in the input directory,
// keyed by the bin name (the file name without its extension).
func (a *Analyzer) countBins() (map[string]int, error) {
	paths, err := filepath.Glob(filepath.Join(a.inDir, "*.smi"))
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeIO, "failed to list bin files")
	}
	binCount := make(map[string]int, len(paths))
	for _, path := range paths {
		n, err := countLines(path)
		if err != nil {
			return nil, err
		}
		name := strings.TrimSuffix(filepath.Base(path), ".smi")
		binCount[name] = n
	}
	return binCount, nil
}

func countLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, errors.Wrap(err, errors.CodeIO, "failed to open bin file").
			WithDetail("path=" + path)
	}
	defer f.Close()

	n := 0
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) != "" {
			n++
		}
	}
	if err := sc.Err(); err != nil {
		return 0, errors.Wrap(err, errors.CodeIO, "failed to read bin file").
			WithDetail("path=" + path)
	}
	return n, nil
}

// binBondOrder extracts the numeric bond-order component that leads a bin
// name. Malformed names sort first.
func binBondOrder(name string) float64 {
	head, _, _ := strings.Cut(name, ",")
	v, err := strconv.ParseFloat(head, 64)
	if err != nil {
		return 0
	}
	return v
}

func (a *Analyzer) writeStatistics(binCount map[string]int, sortedBins []string) error {
	var sb strings.Builder

	maxCount := lo.Max(lo.Values(binCount))
	fmt.Fprintf(&sb, "Max mols in a bin: %d\n", maxCount)
	sb.WriteString("These bin(s) have the max mols:\n")
	for _, name := range sortedBins {
		if binCount[name] == maxCount {
			fmt.Fprintf(&sb, "  %s\n", name)
		}
	}
	sb.WriteString("\n")

	nameWidth := lo.Max(lo.Map(sortedBins, func(b string, _ int) int { return len(b) }))
	countWidth := len(strconv.Itoa(maxCount))
	sb.WriteString("Bins and number of molecules in each bin:\n")
	for _, name := range sortedBins {
		fmt.Fprintf(&sb, "%-*s: %*d\n", nameWidth, name, countWidth, binCount[name])
	}

	return writeText(filepath.Join(a.outDir, "statistics.txt"), sb.String())
}

// writeVisualization renders the bin counts as a horizontal text bar chart,
// one '#' per molecule, in the same order as the statistics listing.
func (a *Analyzer) writeVisualization(binCount map[string]int, sortedBins []string) error {
	var sb strings.Builder

	sb.WriteString("Number of molecules in each bin\n")
	nameWidth := lo.Max(lo.Map(sortedBins, func(b string, _ int) int { return len(b) }))
	for _, name := range sortedBins {
		fmt.Fprintf(&sb, "%-*s | %s\n", nameWidth, name,
			strings.Repeat("#", binCount[name]))
	}

	return writeText(filepath.Join(a.outDir, "visualization.txt"), sb.String())
}

func writeText(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return errors.Wrap(err, errors.CodeIO, "failed to write report").
			WithDetail("path=" + path)
	}
	return nil
}
