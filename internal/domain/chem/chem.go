// Package chem defines the contracts between the dance pipeline and the
// external chemistry engine.  The pipeline never parses molecular structures
// or runs quantum-chemistry computations itself; it consumes the results
// through the interfaces declared here.  Production engines (semiempirical
// charge models, structure-file codecs) live outside this repository;
// internal/testutil provides the stub implementation used by tests.
package chem

// Mol is an engine-owned molecule.  The pipeline treats it as opaque except
// for its identity and canonical text rendering; any richer data is attached
// through the property side-table, never stored on the molecule itself.
type Mol interface {
	// Title returns the molecule's name as recorded in its source file.
	Title() string

	// Canonical returns the canonical line notation (canonical SMILES or
	// equivalent) for the molecule.  The rendering must be deterministic:
	// two calls on structurally identical molecules return equal strings.
	Canonical() string
}

// Reader decodes molecules from structure files.  Implementations choose
// which formats they accept; the corpus scanner pairs a Reader with a glob
// pattern matching those formats.
type Reader interface {
	// ReadFirst reads the first molecule from the file at path.  Files in
	// the corpus are expected to hold a single molecule; any additional
	// entries are ignored.
	ReadFirst(path string) (Mol, error)
}

// TextMol is a Mol backed by stored text.  It carries a molecule through
// persistence and final selection, where only the canonical rendering and
// title survive and no engine representation is available.
type TextMol struct {
	Name string
	Text string
}

func (m TextMol) Title() string     { return m.Name }
func (m TextMol) Canonical() string { return m.Text }

// NeighborBond describes one bond from a trivalent nitrogen to a neighbor
// atom, as reported by the engine for a charged conformation.
type NeighborBond struct {
	// Element is the atomic number of the neighbor atom.
	Element int

	// Degree is the neighbor's connection count (heavy + hydrogen).
	Degree int

	// Aromatic reports whether the neighbor atom is aromatic.
	Aromatic bool

	// BondOrder is the Wiberg bond order of the nitrogen-neighbor bond.
	BondOrder float64

	// BondLength is the 3-D distance between nitrogen and neighbor, in Å.
	BondLength float64
}

// Site is the charged-conformation view of a trivalent nitrogen center: the
// three bonds to its neighbors, in the engine's neighbor-iteration order,
// plus the three inter-bond angles.  A Site attached to a molecule is the
// marker that the charge computation converged; molecules without one are
// kept in the set but skipped by fingerprint consumers.
type Site struct {
	// Neighbors holds one entry per bond in engine iteration order.
	// A trivalent nitrogen has exactly three; consumers still assert this.
	Neighbors []NeighborBond

	// Angles holds the three angles between bond pairs (0-1, 1-2, 2-0),
	// in degrees.
	Angles []float64
}

// TotalBondOrder returns the sum of Wiberg bond orders over the site's bonds.
func (s *Site) TotalBondOrder() float64 {
	var sum float64
	for _, nb := range s.Neighbors {
		sum += nb.BondOrder
	}
	return sum
}

// TotalBondLength returns the sum of bond lengths over the site's bonds.
func (s *Site) TotalBondLength() float64 {
	var sum float64
	for _, nb := range s.Neighbors {
		sum += nb.BondLength
	}
	return sum
}

// TotalBondAngle returns the sum of the inter-bond angles, in degrees.
func (s *Site) TotalBondAngle() float64 {
	var sum float64
	for _, a := range s.Angles {
		sum += a
	}
	return sum
}

// Engine is the quantum-chemistry collaborator.  Implementations wrap a
// semiempirical charge model that yields Wiberg-type bond orders and 3-D
// geometry for a molecule's first conformation.
type Engine interface {
	// TrivalentNitrogenCount reports how many atoms in mol match the
	// invertible-nitrogen predicate (nitrogen with exactly three bonded
	// neighbors).
	TrivalentNitrogenCount(mol Mol) int

	// ChargeFirstConf runs partial-charge assignment on mol's first
	// conformation and extracts the trivalent-nitrogen site.  When the
	// computation fails its convergence check the returned error carries
	// errors.CodeChargeNotConverged; the caller keeps the molecule but
	// leaves it unusable for fingerprinting.
	ChargeFirstConf(mol Mol) (*Site, error)
}
