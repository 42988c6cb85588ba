package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/btjanaka/dance/internal/domain/molecule"
	"github.com/btjanaka/dance/internal/infrastructure/monitoring/logging"
	"github.com/btjanaka/dance/internal/infrastructure/storage"
	"github.com/btjanaka/dance/pkg/errors"
)

// InputPair ties a molecule snapshot file to the property blob saved with it.
type InputPair struct {
	MolsBin  string
	PropsBin string
}

// PairInputs groups a flat path list into (molecule, property) pairs. The
// list must have even length; molecule files alternate with property files.
func PairInputs(paths []string) ([]InputPair, error) {
	if len(paths)%2 != 0 {
		return nil, errors.New(errors.CodePairMismatch,
			"input files must come in (molecule, property) pairs").
			WithDetail("got " + strconv.Itoa(len(paths)) + " files")
	}
	pairs := make([]InputPair, 0, len(paths)/2)
	for i := 0; i < len(paths); i += 2 {
		pairs = append(pairs, InputPair{MolsBin: paths[i], PropsBin: paths[i+1]})
	}
	return pairs, nil
}

// binEntry is one selected molecule inside a bucket.
type binEntry struct {
	canonical string
	title     string
	bondOrder float64
}

// Selector partitions previously generated molecules into structural bins
// and keeps a capped number of molecules from each bin.
type Selector struct {
	runGuard

	pairs     []InputPair
	outDir    string
	binSize   float64
	precision float64
	binSelect int
	log       logging.Logger

	buckets map[molecule.BinKey][]binEntry
	order   []molecule.BinKey
}

// NewSelector builds a Selector. binSelect <= 0 keeps every molecule in
// each bin.
func NewSelector(pairs []InputPair, outDir string, binSize, precision float64,
	binSelect int, log logging.Logger) *Selector {
	return &Selector{
		pairs:     pairs,
		outDir:    outDir,
		binSize:   binSize,
		precision: precision,
		binSelect: binSelect,
		log:       log.Named("select"),
		buckets:   make(map[molecule.BinKey][]binEntry),
	}
}

// Run performs the selection. It may be called once. The output directory
// must not already exist; an existing one aborts before anything is written.
func (s *Selector) Run(ctx context.Context) error {
	if err := s.begin("Selector"); err != nil {
		return err
	}
	if _, err := os.Stat(s.outDir); err == nil {
		return errors.New(errors.CodeOutputExists, "output directory already exists").
			WithDetail("dir=" + s.outDir)
	} else if !os.IsNotExist(err) {
		return errors.Wrap(err, errors.CodeIO, "failed to stat output directory")
	}

	s.log.Info("starting selection",
		logging.Int("pairs", len(s.pairs)),
		logging.Float64("bin_size", s.binSize),
		logging.Float64("precision", s.precision),
		logging.Int("bin_select", s.binSelect))

	for _, pair := range s.pairs {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(err, errors.CodeInternal, "selection cancelled")
		}
		if err := s.binPair(pair); err != nil {
			return err
		}
	}
	s.capBuckets()

	if err := os.MkdirAll(s.outDir, 0o755); err != nil {
		return errors.Wrap(err, errors.CodeIO, "failed to create output directory")
	}
	if err := s.writeBuckets(); err != nil {
		return err
	}

	s.log.Info("finished selection", logging.Int("bins", len(s.order)))
	return nil
}

// binPair loads one (molecule, property) pair and assigns its molecules to
// buckets in file order.
func (s *Selector) binPair(pair InputPair) error {
	s.log.Info("binning molecules",
		logging.String("mols", pair.MolsBin),
		logging.String("props", pair.PropsBin))

	mols, err := storage.LoadMols(pair.MolsBin)
	if err != nil {
		return err
	}
	store, err := storage.LoadProps(pair.PropsBin)
	if err != nil {
		return err
	}

	for _, m := range mols {
		if !m.Usable() {
			s.log.Debug("ignored molecule without charged site",
				logging.String("title", m.Title()))
			continue
		}
		rec, err := store.Get(m)
		if err != nil {
			return err
		}
		fp, err := molecule.NewFingerprint(m.Site(), s.precision)
		if err != nil {
			return err
		}
		key := molecule.NewBinKey(rec.TriNBondOrder, s.binSize, fp)
		if _, seen := s.buckets[key]; !seen {
			s.order = append(s.order, key)
		}
		s.buckets[key] = append(s.buckets[key], binEntry{
			canonical: m.Canonical(),
			title:     m.Title(),
			bondOrder: rec.TriNBondOrder,
		})
	}
	return nil
}

// capBuckets trims each bucket to the binSelect molecules with the lowest
// total bond order. The sort is stable, so equal orders keep their input
// order. Input order alone is not trusted; each bucket is re-sorted here
// even when the inputs came from a sorted generator dump.
func (s *Selector) capBuckets() {
	if s.binSelect <= 0 {
		return
	}
	for key, entries := range s.buckets {
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].bondOrder < entries[j].bondOrder
		})
		if len(entries) > s.binSelect {
			entries = entries[:s.binSelect]
		}
		s.buckets[key] = entries
	}
}

func (s *Selector) writeBuckets() error {
	for _, key := range s.order {
		path := filepath.Join(s.outDir, key.String()+".smi")
		f, err := os.Create(path)
		if err != nil {
			return errors.Wrap(err, errors.CodeIO, "failed to create bin file").
				WithDetail("path=" + path)
		}
		for _, e := range s.buckets[key] {
			if _, err := f.WriteString(e.canonical + " " + e.title + "\n"); err != nil {
				f.Close()
				return errors.Wrap(err, errors.CodeIO, "failed to write bin file").
					WithDetail("path=" + path)
			}
		}
		if err := f.Close(); err != nil {
			return errors.Wrap(err, errors.CodeIO, "failed to close bin file").
				WithDetail("path=" + path)
		}
		s.log.Debug("wrote bin",
			logging.String("path", path),
			logging.Int("count", len(s.buckets[key])))
	}
	return nil
}
