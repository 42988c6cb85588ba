// Package molecule provides the core domain model for the dance pipeline:
// the Molecule entity with its side-table property key, the property Store
// the key indexes into, and the trivalent-nitrogen Fingerprint used to group
// structurally similar molecules.
package molecule

import (
	"github.com/btjanaka/dance/internal/domain/chem"
)

// Molecule wraps an engine-owned structure with the auxiliary tags the
// pipeline attaches to it.  The molecule never embeds its computed property
// record; it only knows the record's slot in a Store.  The Store owns the
// records — dropping a molecule leaves its record orphaned until the store
// is compacted.
type Molecule struct {
	mol     chem.Mol
	propKey int        // index into the paired Store; -1 when unset
	site    *chem.Site // charged trivalent-N site; nil when charges failed
}

// New wraps an engine molecule with no tags set.
func New(mol chem.Mol) *Molecule {
	return &Molecule{mol: mol, propKey: -1}
}

// Restore rebuilds a Molecule with previously persisted tag state.  It is
// used when a saved molecule set is loaded back from disk.
func Restore(mol chem.Mol, propKey int, site *chem.Site) *Molecule {
	return &Molecule{mol: mol, propKey: propKey, site: site}
}

// Mol returns the underlying engine molecule.
func (m *Molecule) Mol() chem.Mol { return m.mol }

// Title returns the molecule's name from its source file.
func (m *Molecule) Title() string { return m.mol.Title() }

// Canonical returns the molecule's canonical text form.
func (m *Molecule) Canonical() string { return m.mol.Canonical() }

// PropKey returns the molecule's property key and whether one has been set.
func (m *Molecule) PropKey() (int, bool) {
	return m.propKey, m.propKey >= 0
}

// SetPropKey sets the property key.  Callers normally go through Store.Add;
// direct use is for re-keying during merge and load.
func (m *Molecule) SetPropKey(key int) { m.propKey = key }

// AttachSite records the charged trivalent-nitrogen site produced by the
// chemistry engine.  Its presence is the usability marker: molecules whose
// charge computation failed never get one and are skipped by fingerprint
// consumers instead of silently vanishing from the set.
func (m *Molecule) AttachSite(site *chem.Site) { m.site = site }

// Site returns the attached charged site, or nil.
func (m *Molecule) Site() *chem.Site { return m.site }

// Usable reports whether the molecule has a charged site and can be
// fingerprinted.
func (m *Molecule) Usable() bool { return m.site != nil }
