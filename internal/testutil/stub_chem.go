package testutil

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/btjanaka/dance/internal/domain/chem"
	"github.com/btjanaka/dance/pkg/errors"
)

// StubReader implements chem.Reader over plain text files. The first
// non-empty line must hold the canonical text, optionally followed by a
// title; a missing title defaults to the file name without its extension.
type StubReader struct{}

func (StubReader) ReadFirst(path string) (chem.Mol, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeIO, "failed to open structure file")
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		canonical, title, _ := strings.Cut(line, " ")
		if title == "" {
			base := filepath.Base(path)
			title = strings.TrimSuffix(base, filepath.Ext(base))
		}
		return chem.TextMol{Name: title, Text: canonical}, nil
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, errors.CodeIO, "failed to read structure file")
	}
	return nil, errors.NotFound("no molecule in " + path)
}

// StubSpec describes how the stub engine treats one molecule.
type StubSpec struct {
	// TriN is the trivalent-nitrogen count reported for the molecule.
	TriN int

	// Site is returned from charge computation when set.
	Site *chem.Site

	// ChargeFails makes the charge computation report a convergence
	// failure instead of returning Site.
	ChargeFails bool
}

// StubEngine implements chem.Engine from a fixed table keyed by canonical
// text. Unknown molecules report zero trivalent nitrogens.
type StubEngine struct {
	Specs map[string]StubSpec
}

func (e *StubEngine) TrivalentNitrogenCount(mol chem.Mol) int {
	return e.Specs[mol.Canonical()].TriN
}

func (e *StubEngine) ChargeFirstConf(mol chem.Mol) (*chem.Site, error) {
	spec, ok := e.Specs[mol.Canonical()]
	if !ok || spec.ChargeFails || spec.Site == nil {
		return nil, errors.New(errors.CodeChargeNotConverged,
			"charge computation did not converge").
			WithDetail("molecule=" + mol.Title())
	}
	site := *spec.Site
	return &site, nil
}

// TriNSite builds a trivalent-nitrogen site with three hydrogen neighbors
// carrying the given Wiberg bond orders, unit bond lengths, and 120-degree
// angles.
func TriNSite(orders [3]float64) *chem.Site {
	site := &chem.Site{Angles: []float64{120, 120, 120}}
	for _, o := range orders {
		site.Neighbors = append(site.Neighbors, chem.NeighborBond{
			Element:    1,
			Degree:     1,
			BondOrder:  o,
			BondLength: 1.0,
		})
	}
	return site
}
