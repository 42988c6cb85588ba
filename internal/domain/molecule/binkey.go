package molecule

import (
	"math"
	"strconv"
)

// BinKey groups molecules by a coarse total-bond-order range plus their
// fingerprint.  Two molecules land in the same bucket iff both components
// are equal; BinKey is comparable and used directly as a map key.
type BinKey struct {
	// Bucket is the largest multiple of the bin size not exceeding the
	// molecule's total trivalent-N bond order.
	Bucket float64

	// Fingerprint is the canonical bond-environment descriptor.
	Fingerprint Fingerprint
}

// NewBinKey computes the bucket for the given total bond order and bin size.
func NewBinKey(bondOrder, binSize float64, fp Fingerprint) BinKey {
	return BinKey{Bucket: FloorToStep(bondOrder, binSize), Fingerprint: fp}
}

// String renders the bucket identity used for persistence: the bucket value
// in shortest round-trip form, a comma, and the fingerprint string.  The
// result is safe to use as a file name.
func (k BinKey) String() string {
	return strconv.FormatFloat(k.Bucket, 'g', -1, 64) + "," + k.Fingerprint.String()
}

// stepEpsilon guards the floor against representation error in the quotient:
// a value an ulp below an exact bucket boundary must not be demoted into the
// lower bucket, while a value genuinely below the boundary (by more than the
// epsilon) stays where it is.
const stepEpsilon = 1e-9

// FloorToStep returns the largest multiple of step not exceeding x — with
// bin size 0.02, bond order 2.028 maps to bucket 2.02 and 2.0199999 to 2.0.
func FloorToStep(x, step float64) float64 {
	return math.Floor(x/step+stepEpsilon) * step
}
