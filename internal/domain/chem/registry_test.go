package chem_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/btjanaka/dance/internal/domain/chem"
	"github.com/btjanaka/dance/pkg/errors"
)

type fakeEngine struct{}

func (fakeEngine) TrivalentNitrogenCount(chem.Mol) int          { return 0 }
func (fakeEngine) ChargeFirstConf(chem.Mol) (*chem.Site, error) { return nil, nil }

type fakeReader struct{}

func (fakeReader) ReadFirst(string) (chem.Mol, error) { return chem.TextMol{}, nil }

func TestRegistryLookup(t *testing.T) {
	chem.RegisterEngine("fake", fakeEngine{})
	chem.RegisterReader("fake", fakeReader{})

	e, err := chem.LookupEngine("fake")
	require.NoError(t, err)
	assert.NotNil(t, e)

	r, err := chem.LookupReader("fake")
	require.NoError(t, err)
	assert.NotNil(t, r)
}

func TestRegistryLookupUnknown(t *testing.T) {
	_, err := chem.LookupEngine("no-such-engine")
	assert.True(t, errors.IsCode(err, errors.CodeNotFound))

	_, err = chem.LookupReader("no-such-reader")
	assert.True(t, errors.IsCode(err, errors.CodeNotFound))
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	chem.RegisterEngine("dup", fakeEngine{})
	assert.Panics(t, func() { chem.RegisterEngine("dup", fakeEngine{}) })
	assert.Panics(t, func() { chem.RegisterEngine("nil-engine", nil) })
}

func TestSiteTotals(t *testing.T) {
	site := &chem.Site{
		Neighbors: []chem.NeighborBond{
			{BondOrder: 1, BondLength: 1},
			{BondOrder: 1.25, BondLength: 1.5},
			{BondOrder: 0.75, BondLength: 1},
		},
		Angles: []float64{120, 118, 122},
	}
	assert.InDelta(t, 3.0, site.TotalBondOrder(), 1e-12)
	assert.InDelta(t, 3.5, site.TotalBondLength(), 1e-12)
	assert.InDelta(t, 360, site.TotalBondAngle(), 1e-12)
}
