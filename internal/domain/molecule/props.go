package molecule

import (
	"fmt"

	"github.com/btjanaka/dance/pkg/errors"
)

// BondRecord holds computed data about one bond at the trivalent nitrogen:
// its Wiberg bond order, its length in Å, and the atomic number of the atom
// at the other end.
type BondRecord struct {
	BondOrder  float64 `json:"bond_order"`
	BondLength float64 `json:"bond_length"`
	Element    int     `json:"element"`
}

// Properties is the per-molecule computed record stored in the side table.
// A record is created once by the generator right after a successful charge
// computation and is immutable afterwards.  A molecule whose computation did
// not converge still gets a record with zero sums and no bond entries.
type Properties struct {
	// TriNBondOrder is the total Wiberg bond order over the three bonds.
	TriNBondOrder float64 `json:"tri_n_bond_order"`

	// TriNBondAngle is the sum of the three inter-bond angles, in degrees.
	TriNBondAngle float64 `json:"tri_n_bond_angle"`

	// TriNBondLength is the sum of the three bond lengths, in Å.
	TriNBondLength float64 `json:"tri_n_bond_length"`

	// TriNBonds holds one entry per neighbor, in the neighbor-iteration
	// order produced by the chemistry engine.
	TriNBonds []BondRecord `json:"tri_n_bonds"`
}

// Store is the append-only side table of Properties records.  Insertion
// order defines each record's key: a molecule tagged with key k resolves to
// the k-th record.  Molecules and their Store travel together between
// pipeline stages; pairing a molecule set with a foreign store breaks the
// key invariant and surfaces as a typed error on Get.
type Store struct {
	records []Properties
}

// NewStore returns an empty Store.
func NewStore() *Store { return &Store{} }

// FromRecords builds a Store over the given record list, preserving order.
// It is used when a persisted store blob is loaded back.
func FromRecords(records []Properties) *Store {
	return &Store{records: records}
}

// Len returns the number of records in the store.
func (s *Store) Len() int { return len(s.records) }

// Records returns the underlying record list in key order.  The slice is
// shared with the store; callers serialize it, they do not mutate it.
func (s *Store) Records() []Properties { return s.records }

// Add appends rec to the store and sets mol's property key to the new last
// index.  O(1); no failure mode.
func (s *Store) Add(mol *Molecule, rec Properties) {
	mol.SetPropKey(len(s.records))
	s.records = append(s.records, rec)
}

// Get returns the record mol's key points at.  A molecule that was never
// annotated or whose key lies outside the store signals caller misuse and
// yields a typed error; it is never silently corrected.
func (s *Store) Get(mol *Molecule) (Properties, error) {
	key, ok := mol.PropKey()
	if !ok {
		return Properties{}, errors.New(errors.CodePropsKeyMissing,
			"molecule has no property key").
			WithDetail("title=" + mol.Title())
	}
	if key >= len(s.records) {
		return Properties{}, errors.New(errors.CodePropsKeyRange,
			"property key out of range").
			WithDetail(fmt.Sprintf("title=%s key=%d len=%d", mol.Title(), key, len(s.records)))
	}
	return s.records[key], nil
}

// Compact rebuilds the store in place to hold only the records referenced by
// mols, re-keyed 0..len(mols)-1 in mols order.  Compacting an already
// compact pair is a no-op apart from the rewrite.  Any molecule with a
// broken key aborts the rebuild before the store is touched.
func (s *Store) Compact(mols []*Molecule) error {
	kept := make([]Properties, 0, len(mols))
	for _, m := range mols {
		rec, err := s.Get(m)
		if err != nil {
			return errors.Wrap(err, errors.CodeUnknown, "compact aborted")
		}
		kept = append(kept, rec)
	}
	for i, m := range mols {
		m.SetPropKey(i)
	}
	s.records = kept
	return nil
}

// Merge extends molsA/s with molsB/storeB.  Every record from storeB is
// re-keyed by adding s's pre-merge length, so no two live molecules alias
// the same key unless they already shared a record within storeB.
//
// Side effect: molsB's molecules are re-keyed in place as well — both lists
// alias the same molecule objects after the merge.
func (s *Store) Merge(molsA *[]*Molecule, molsB []*Molecule, storeB *Store) error {
	base := len(s.records)
	for _, m := range molsB {
		key, ok := m.PropKey()
		if !ok {
			return errors.New(errors.CodePropsKeyMissing,
				"merge aborted: molecule has no property key").
				WithDetail("title=" + m.Title())
		}
		if key >= storeB.Len() {
			return errors.New(errors.CodePropsKeyRange,
				"merge aborted: property key out of range").
				WithDetail(fmt.Sprintf("title=%s key=%d len=%d", m.Title(), key, storeB.Len()))
		}
		m.SetPropKey(base + key)
	}
	*molsA = append(*molsA, molsB...)
	s.records = append(s.records, storeB.records...)
	return nil
}
