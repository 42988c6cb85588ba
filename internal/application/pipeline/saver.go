package pipeline

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"

	"github.com/btjanaka/dance/internal/domain/molecule"
	"github.com/btjanaka/dance/internal/infrastructure/monitoring/logging"
	"github.com/btjanaka/dance/internal/infrastructure/storage"
	"github.com/btjanaka/dance/pkg/errors"
)

// OutputSet names the files a Saver writes.  Any empty path is skipped.
type OutputSet struct {
	// MolsSMI receives one "<canonical> <title>" line per molecule.
	MolsSMI string

	// MolsBin receives the binary molecule dump (snapshots with tag state).
	MolsBin string

	// TriNData receives per-molecule sums as CSV.
	TriNData string

	// TriNBonds receives per-bond records as CSV.
	TriNBonds string

	// PropsBin receives the persisted property store blob.
	PropsBin string
}

// OutputSetForDir returns the conventional file layout under dir.
func OutputSetForDir(dir string) OutputSet {
	return OutputSet{
		MolsSMI:   filepath.Join(dir, "mols.smi"),
		MolsBin:   filepath.Join(dir, "mols.bin"),
		TriNData:  filepath.Join(dir, "tri-n-data.csv"),
		TriNBonds: filepath.Join(dir, "tri-n-bonds.csv"),
		PropsBin:  filepath.Join(dir, "props.bin"),
	}
}

// Saver persists a generated molecule set and its property store.  Every
// molecule passed in must carry a property key; one without it is an
// invariant violation and aborts the save.
type Saver struct {
	runGuard

	mols  []*molecule.Molecule
	store *molecule.Store
	out   OutputSet
	log   logging.Logger
}

// NewSaver builds a Saver for the given tied (molecules, store) pair.
func NewSaver(mols []*molecule.Molecule, store *molecule.Store, out OutputSet,
	log logging.Logger) *Saver {
	return &Saver{mols: mols, store: store, out: out, log: log.Named("save")}
}

// MkdirAndSave creates dir (parents included) and saves the conventional
// output set into it.
func MkdirAndSave(mols []*molecule.Molecule, store *molecule.Store, dir string,
	log logging.Logger) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, errors.CodeIO, "failed to create output directory").
			WithDetail("dir=" + dir)
	}
	return NewSaver(mols, store, OutputSetForDir(dir), log).Run(context.Background())
}

// Run performs all saving actions.  It may be called once.
func (s *Saver) Run(_ context.Context) error {
	if err := s.begin("Saver"); err != nil {
		return err
	}
	s.log.Info("starting save")

	if s.out.MolsSMI != "" {
		if err := s.writeMolsSMI(); err != nil {
			return err
		}
	}
	if s.out.MolsBin != "" {
		s.log.Info("writing molecule dump", logging.String("path", s.out.MolsBin))
		if err := storage.SaveMols(s.out.MolsBin, s.mols); err != nil {
			return err
		}
	}
	if s.out.TriNData != "" {
		if err := s.writeTriNData(); err != nil {
			return err
		}
	}
	if s.out.TriNBonds != "" {
		if err := s.writeTriNBonds(); err != nil {
			return err
		}
	}
	if s.out.PropsBin != "" {
		s.log.Info("writing property store", logging.String("path", s.out.PropsBin))
		if err := storage.SaveProps(s.out.PropsBin, s.store); err != nil {
			return err
		}
	}

	s.log.Info("finished save")
	return nil
}

func (s *Saver) writeMolsSMI() error {
	s.log.Info("writing molecules", logging.String("path", s.out.MolsSMI))

	f, err := os.Create(s.out.MolsSMI)
	if err != nil {
		return errors.Wrap(err, errors.CodeIO, "failed to create molecule file")
	}
	for _, m := range s.mols {
		if _, err := f.WriteString(m.Canonical() + " " + m.Title() + "\n"); err != nil {
			f.Close()
			return errors.Wrap(err, errors.CodeIO, "failed to write molecule line")
		}
	}
	return f.Close()
}

func (s *Saver) writeTriNData() error {
	s.log.Info("writing tri-n data", logging.String("path", s.out.TriNData))

	return writeCSV(s.out.TriNData,
		[]string{"tri_n_bond_order", "tri_n_bond_angle", "tri_n_bond_length"},
		func(w *csv.Writer) error {
			for _, m := range s.mols {
				rec, err := s.store.Get(m)
				if err != nil {
					return err
				}
				row := []string{
					formatFloat(rec.TriNBondOrder),
					formatFloat(rec.TriNBondAngle),
					formatFloat(rec.TriNBondLength),
				}
				if err := w.Write(row); err != nil {
					return err
				}
			}
			return nil
		})
}

func (s *Saver) writeTriNBonds() error {
	s.log.Info("writing bond data", logging.String("path", s.out.TriNBonds))

	return writeCSV(s.out.TriNBonds,
		[]string{"bond_order", "bond_length", "element"},
		func(w *csv.Writer) error {
			for _, m := range s.mols {
				rec, err := s.store.Get(m)
				if err != nil {
					return err
				}
				for _, b := range rec.TriNBonds {
					row := []string{
						formatFloat(b.BondOrder),
						formatFloat(b.BondLength),
						strconv.Itoa(b.Element),
					}
					if err := w.Write(row); err != nil {
						return err
					}
				}
			}
			return nil
		})
}

// writeCSV writes a header row, hands the writer to rows, and flushes.
func writeCSV(path string, header []string, rows func(w *csv.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, errors.CodeIO, "failed to create CSV file").WithDetail("path=" + path)
	}
	w := csv.NewWriter(f)
	err = w.Write(header)
	if err == nil {
		err = rows(w)
	}
	if err != nil {
		f.Close()
		return errors.Wrap(err, errors.CodeUnknown, "failed to write CSV").WithDetail("path=" + path)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return errors.Wrap(err, errors.CodeIO, "failed to flush CSV").WithDetail("path=" + path)
	}
	return f.Close()
}

// formatFloat renders a float in shortest round-trip form, matching the
// format used in bucket names.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
