package testutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/btjanaka/dance/internal/domain/chem"
	"github.com/btjanaka/dance/internal/infrastructure/monitoring/logging"
	"github.com/btjanaka/dance/internal/testutil"
	"github.com/btjanaka/dance/pkg/errors"
)

func TestMockLogger(t *testing.T) {
	logger := testutil.NewMockLogger()

	logger.Info("test info", logging.String("key", "value"))

	messages := logger.GetMessages()
	assert.Len(t, messages, 1)
	assert.Equal(t, "info", messages[0].Level)
	assert.Equal(t, "test info", messages[0].Message)

	logger.Clear()
	assert.Len(t, logger.GetMessages(), 0)

	logger.Error("test error")
	assert.True(t, logger.HasMessage("error", "test error"))
	assert.False(t, logger.HasMessage("info", "test info"))
}

func TestStubReader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ammonia.mol2")
	require.NoError(t, os.WriteFile(path, []byte("N ammonia\n"), 0o644))

	mol, err := testutil.StubReader{}.ReadFirst(path)
	require.NoError(t, err)
	assert.Equal(t, "ammonia", mol.Title())
	assert.Equal(t, "N", mol.Canonical())
}

func TestStubReaderDefaultsTitleToFileName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urea.mol2")
	require.NoError(t, os.WriteFile(path, []byte("NC(N)=O\n"), 0o644))

	mol, err := testutil.StubReader{}.ReadFirst(path)
	require.NoError(t, err)
	assert.Equal(t, "urea", mol.Title())
}

func TestStubEngine(t *testing.T) {
	engine := &testutil.StubEngine{Specs: map[string]testutil.StubSpec{
		"N":      {TriN: 1, Site: testutil.TriNSite([3]float64{1.0, 1.0, 1.0})},
		"O=C=O":  {TriN: 0},
		"broken": {TriN: 1, ChargeFails: true},
	}}

	assert.Equal(t, 1, engine.TrivalentNitrogenCount(chem.TextMol{Text: "N"}))
	assert.Equal(t, 0, engine.TrivalentNitrogenCount(chem.TextMol{Text: "O=C=O"}))
	assert.Equal(t, 0, engine.TrivalentNitrogenCount(chem.TextMol{Text: "unknown"}))

	site, err := engine.ChargeFirstConf(chem.TextMol{Text: "N"})
	require.NoError(t, err)
	assert.InDelta(t, 3.0, site.TotalBondOrder(), 1e-12)

	_, err = engine.ChargeFirstConf(chem.TextMol{Text: "broken"})
	assert.True(t, errors.IsCode(err, errors.CodeChargeNotConverged))
}
