package molecule

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/btjanaka/dance/internal/domain/chem"
	"github.com/btjanaka/dance/pkg/errors"
)

// FingerprintEntry describes one bond of the trivalent nitrogen for grouping
// purposes: the neighbor's element and degree, whether it is aromatic, and
// the Wiberg bond order snapped to the fingerprint's precision.
type FingerprintEntry struct {
	Element   int
	Degree    int
	Aromatic  bool
	BondOrder float64
}

// Fingerprint canonicalizes the three bonds around a trivalent nitrogen into
// an order-independent descriptor.  The three entries are sorted
// lexicographically, so chemically equivalent environments produce identical
// fingerprints no matter how the engine enumerated the neighbors.
//
// Fingerprint is a comparable value type: == and map-key hashing operate
// structurally on the sorted entries.  Precision is a construction-time
// parameter, not part of the identity; fingerprints built with different
// precisions only compare meaningfully by accident.
type Fingerprint struct {
	entries [3]FingerprintEntry
}

// NewFingerprint builds a fingerprint from a charged trivalent-nitrogen site.
// The site must have exactly three neighbor bonds; the generator's filter
// guarantees this, but the contract is still asserted here because a
// malformed site would silently corrupt bucket assignment.
func NewFingerprint(site *chem.Site, precision float64) (Fingerprint, error) {
	if n := len(site.Neighbors); n != 3 {
		return Fingerprint{}, errors.New(errors.CodeFingerprintBonds,
			"trivalent-nitrogen site must have exactly 3 bonds").
			WithDetail(fmt.Sprintf("got %d", n))
	}

	var fp Fingerprint
	for i, nb := range site.Neighbors {
		fp.entries[i] = FingerprintEntry{
			Element:   nb.Element,
			Degree:    nb.Degree,
			Aromatic:  nb.Aromatic,
			BondOrder: RoundToStep(nb.BondOrder, precision),
		}
	}

	sort.Slice(fp.entries[:], func(i, j int) bool {
		return entryLess(fp.entries[i], fp.entries[j])
	})
	return fp, nil
}

// Entries returns the sorted entry tuple.
func (fp Fingerprint) Entries() [3]FingerprintEntry { return fp.entries }

// Less orders fingerprints lexicographically over their sorted entries.
func (fp Fingerprint) Less(rhs Fingerprint) bool {
	for i := range fp.entries {
		if fp.entries[i] != rhs.entries[i] {
			return entryLess(fp.entries[i], rhs.entries[i])
		}
	}
	return false
}

// String renders the fingerprint as a filesystem-safe identifier: for each
// sorted entry, "#<element>x<degree>" plus an "a" suffix when aromatic and
// the rounded bond order to two decimals in parentheses, concatenated with
// no separator.  Ammonia with orders {1.00, 1.05, 1.05} renders as
// "#1x1(1.00)#1x1(1.05)#1x1(1.05)".
func (fp Fingerprint) String() string {
	var sb strings.Builder
	for _, e := range fp.entries {
		aromatic := ""
		if e.Aromatic {
			aromatic = "a"
		}
		fmt.Fprintf(&sb, "#%dx%d%s(%.2f)", e.Element, e.Degree, aromatic, e.BondOrder)
	}
	return sb.String()
}

func entryLess(a, b FingerprintEntry) bool {
	if a.Element != b.Element {
		return a.Element < b.Element
	}
	if a.Degree != b.Degree {
		return a.Degree < b.Degree
	}
	if a.Aromatic != b.Aromatic {
		return !a.Aromatic // false sorts before true
	}
	return a.BondOrder < b.BondOrder
}

// RoundToStep snaps x to the nearest multiple of step, with ties rounding to
// even multiples (round(1.03/0.05)*0.05 = 1.05; round(1.01/0.05)*0.05 =
// 1.00).  The ties-to-even behavior is an explicit rule of the fingerprint,
// not incidental floating-point behavior.
func RoundToStep(x, step float64) float64 {
	return math.RoundToEven(x/step) * step
}
