package pipeline

import (
	"context"
	"sort"

	"github.com/btjanaka/dance/internal/domain/chem"
	"github.com/btjanaka/dance/internal/domain/molecule"
	"github.com/btjanaka/dance/internal/infrastructure/corpus"
	"github.com/btjanaka/dance/internal/infrastructure/monitoring/logging"
	"github.com/btjanaka/dance/pkg/errors"
)

// Generator produces the initial curated molecule set: it streams candidate
// structure files from the input directories, keeps only molecules with a
// single trivalent nitrogen, computes chemistry properties through the
// engine, and yields the set sorted ascending by total Wiberg bond order.
//
// After Run, each kept molecule has a property key into the paired store,
// and — when the charge computation converged — an attached charged site.
// Data() returns the tied (molecules, store) pair.
type Generator struct {
	runGuard

	dirs    []string
	scanner *corpus.Scanner
	reader  chem.Reader
	engine  chem.Engine
	log     logging.Logger

	mols  []*molecule.Molecule
	store *molecule.Store
}

// NewGenerator builds a Generator over the given directories.  The scanner
// decides which files inside them are candidate molecules.
func NewGenerator(dirs []string, scanner *corpus.Scanner, reader chem.Reader,
	engine chem.Engine, log logging.Logger) *Generator {
	return &Generator{
		dirs:    dirs,
		scanner: scanner,
		reader:  reader,
		engine:  engine,
		log:     log.Named("generate"),
		store:   molecule.NewStore(),
	}
}

// Run pushes all candidate molecules through filtering, annotation, and
// sorting.  It may be called once; later calls fail without side effects.
func (g *Generator) Run(ctx context.Context) error {
	if err := g.begin("Generator"); err != nil {
		return err
	}
	g.log.Info("starting generating", logging.Any("dirs", g.dirs))

	if err := g.filterTriN(ctx); err != nil {
		return err
	}
	if err := g.applyProperties(ctx); err != nil {
		return err
	}
	if err := g.sortByBondOrder(); err != nil {
		return err
	}

	g.log.Info("finished generating", logging.Int("molecules", len(g.mols)))
	return nil
}

// Data returns the molecules and property store produced by Run.  Calling it
// before Run has completed returns the (possibly empty) work in progress;
// callers are expected to Run first.
func (g *Generator) Data() ([]*molecule.Molecule, *molecule.Store) {
	return g.mols, g.store
}

// filterTriN streams the corpus and keeps molecules whose trivalent-nitrogen
// count is exactly one.  Everything else is dropped with a debug log; a file
// the reader cannot decode is likewise a skippable per-item failure.
func (g *Generator) filterTriN(ctx context.Context) error {
	g.log.Info("filtering trivalent nitrogen molecules")

	return g.scanner.Scan(ctx, g.dirs, func(path string) error {
		mol, err := g.reader.ReadFirst(path)
		if err != nil {
			g.log.Debug("unreadable molecule file", logging.String("path", path), logging.Err(err))
			return nil
		}
		count := g.engine.TrivalentNitrogenCount(mol)
		g.log.Debug("tri-n check",
			logging.String("path", path),
			logging.Int("count", count))
		if count == 1 {
			g.mols = append(g.mols, molecule.New(mol))
		}
		return nil
	})
}

// applyProperties runs the charge computation on each kept molecule's first
// conformation and stores the resulting record.  A convergence failure keeps
// the molecule with an empty record and no charged site, so it stays in the
// set but is skipped by fingerprint consumers downstream.
func (g *Generator) applyProperties(ctx context.Context) error {
	g.log.Info("calculating properties for molecules")

	for _, m := range g.mols {
		if err := ctx.Err(); err != nil {
			return err
		}

		site, err := g.engine.ChargeFirstConf(m.Mol())
		if err != nil {
			g.log.Debug("failed to assign partial charges",
				logging.String("title", m.Title()), logging.Err(err))
			g.store.Add(m, molecule.Properties{})
			continue
		}

		m.AttachSite(site)
		g.store.Add(m, recordFromSite(site))
		g.log.Debug("added properties to molecule", logging.String("title", m.Title()))
	}
	return nil
}

// recordFromSite sums the site's bond orders, lengths, and angles and copies
// the per-bond data in engine neighbor order.
func recordFromSite(site *chem.Site) molecule.Properties {
	rec := molecule.Properties{
		TriNBondOrder:  site.TotalBondOrder(),
		TriNBondAngle:  site.TotalBondAngle(),
		TriNBondLength: site.TotalBondLength(),
	}
	for _, nb := range site.Neighbors {
		rec.TriNBonds = append(rec.TriNBonds, molecule.BondRecord{
			BondOrder:  nb.BondOrder,
			BondLength: nb.BondLength,
			Element:    nb.Element,
		})
	}
	return rec
}

// sortByBondOrder orders the molecule set ascending by total bond order.
// The sort is stable: molecules with equal order keep their encounter order.
func (g *Generator) sortByBondOrder() error {
	g.log.Info("sorting molecules by bond order")

	orders := make(map[*molecule.Molecule]float64, len(g.mols))
	for _, m := range g.mols {
		rec, err := g.store.Get(m)
		if err != nil {
			return errors.Wrap(err, errors.CodeUnknown, "generator produced an inconsistent store")
		}
		orders[m] = rec.TriNBondOrder
	}
	sort.SliceStable(g.mols, func(i, j int) bool {
		return orders[g.mols[i]] < orders[g.mols[j]]
	})
	return nil
}
