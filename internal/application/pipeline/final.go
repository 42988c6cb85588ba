package pipeline

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/btjanaka/dance/internal/infrastructure/monitoring/logging"
	"github.com/btjanaka/dance/pkg/errors"
)

// Ranking orders molecules for the final selection.
type Ranking string

const (
	// RankCanonical orders molecules by their canonical text,
	// lexicographically. This is the default.
	RankCanonical Ranking = "canonical"

	// RankEncounter keeps the order molecules were read in.
	RankEncounter Ranking = "encounter"
)

// ParseRanking validates a ranking name. The empty string maps to
// RankCanonical.
func ParseRanking(name string) (Ranking, error) {
	switch Ranking(name) {
	case "":
		return RankCanonical, nil
	case RankCanonical, RankEncounter:
		return Ranking(name), nil
	default:
		return "", errors.InvalidParam("unknown ranking: " + name)
	}
}

// finalEntry is one molecule line read from a bin file.
type finalEntry struct {
	canonical string
	title     string
}

// FinalSelector reads every bin file in a directory and writes the n
// best-ranked molecules across all of them to a single output file.
type FinalSelector struct {
	runGuard

	inDir   string
	outFile string
	n       int
	rank    Ranking
	log     logging.Logger
}

// NewFinalSelector builds a FinalSelector keeping the n best molecules
// under the given ranking.
func NewFinalSelector(inDir, outFile string, n int, rank Ranking,
	log logging.Logger) *FinalSelector {
	return &FinalSelector{
		inDir:   inDir,
		outFile: outFile,
		n:       n,
		rank:    rank,
		log:     log.Named("final"),
	}
}

// Run performs the final selection. It may be called once.
func (f *FinalSelector) Run(_ context.Context) error {
	if err := f.begin("FinalSelector"); err != nil {
		return err
	}
	f.log.Info("starting final selection",
		logging.String("dir", f.inDir),
		logging.Int("n", f.n),
		logging.String("rank", string(f.rank)))

	entries, err := f.readEntries()
	if err != nil {
		return err
	}
	if f.rank == RankCanonical {
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].canonical < entries[j].canonical
		})
	}
	if f.n >= 0 && len(entries) > f.n {
		entries = entries[:f.n]
	}

	if err := f.writeEntries(entries); err != nil {
		return err
	}
	f.log.Info("finished final selection", logging.Int("selected", len(entries)))
	return nil
}

// readEntries collects molecule lines from every bin file, in sorted file
// order so encounter ranking is deterministic.
func (f *FinalSelector) readEntries() ([]finalEntry, error) {
	paths, err := filepath.Glob(filepath.Join(f.inDir, "*.smi"))
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeIO, "failed to list bin files")
	}
	sort.Strings(paths)

	var entries []finalEntry
	for _, path := range paths {
		if err := readSMILines(path, &entries); err != nil {
			return nil, err
		}
	}
	return entries, nil
}

func readSMILines(path string, entries *[]finalEntry) error {
	file, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, errors.CodeIO, "failed to open bin file").
			WithDetail("path=" + path)
	}
	defer file.Close()

	sc := bufio.NewScanner(file)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		canonical, title, _ := strings.Cut(line, " ")
		*entries = append(*entries, finalEntry{canonical: canonical, title: title})
	}
	if err := sc.Err(); err != nil {
		return errors.Wrap(err, errors.CodeIO, "failed to read bin file").
			WithDetail("path=" + path)
	}
	return nil
}

func (f *FinalSelector) writeEntries(entries []finalEntry) error {
	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString(e.canonical)
		if e.title != "" {
			sb.WriteString(" " + e.title)
		}
		sb.WriteString("\n")
	}
	return writeText(f.outFile, sb.String())
}
