package pipeline_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/btjanaka/dance/internal/application/pipeline"
	"github.com/btjanaka/dance/internal/domain/chem"
	"github.com/btjanaka/dance/internal/domain/molecule"
	"github.com/btjanaka/dance/internal/infrastructure/storage"
	"github.com/btjanaka/dance/internal/testutil"
	"github.com/btjanaka/dance/pkg/errors"
)

// savedSet builds a two-molecule set with exactly representable record
// values so the CSV renderings are byte-predictable.
func savedSet(t *testing.T) ([]*molecule.Molecule, *molecule.Store) {
	t.Helper()
	store := molecule.NewStore()

	a := molecule.New(chem.TextMol{Name: "methylamine", Text: "CN"})
	a.AttachSite(testutil.TriNSite([3]float64{0.75, 1.0, 1.0}))
	store.Add(a, molecule.Properties{
		TriNBondOrder:  2.75,
		TriNBondAngle:  360,
		TriNBondLength: 3,
		TriNBonds: []molecule.BondRecord{
			{BondOrder: 0.75, BondLength: 1, Element: 1},
			{BondOrder: 1, BondLength: 1, Element: 1},
			{BondOrder: 1, BondLength: 1.5, Element: 6},
		},
	})

	b := molecule.New(chem.TextMol{Name: "ammonia", Text: "N"})
	b.AttachSite(testutil.TriNSite([3]float64{1.0, 1.0, 1.25}))
	store.Add(b, molecule.Properties{
		TriNBondOrder:  3.25,
		TriNBondAngle:  360,
		TriNBondLength: 3,
		TriNBonds: []molecule.BondRecord{
			{BondOrder: 1, BondLength: 1, Element: 1},
			{BondOrder: 1, BondLength: 1, Element: 1},
			{BondOrder: 1.25, BondLength: 1, Element: 1},
		},
	})

	return []*molecule.Molecule{a, b}, store
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestSaverWritesAllOutputs(t *testing.T) {
	mols, store := savedSet(t)
	dir := filepath.Join(t.TempDir(), "generate-output")
	require.NoError(t, pipeline.MkdirAndSave(mols, store, dir, testutil.NewMockLogger()))

	assert.Equal(t, "CN methylamine\nN ammonia\n",
		readFile(t, filepath.Join(dir, "mols.smi")))

	assert.Equal(t,
		"tri_n_bond_order,tri_n_bond_angle,tri_n_bond_length\n"+
			"2.75,360,3\n"+
			"3.25,360,3\n",
		readFile(t, filepath.Join(dir, "tri-n-data.csv")))

	assert.Equal(t,
		"bond_order,bond_length,element\n"+
			"0.75,1,1\n"+
			"1,1,1\n"+
			"1,1.5,6\n"+
			"1,1,1\n"+
			"1,1,1\n"+
			"1.25,1,1\n",
		readFile(t, filepath.Join(dir, "tri-n-bonds.csv")))
}

func TestSaverBlobsRoundTrip(t *testing.T) {
	mols, store := savedSet(t)
	dir := filepath.Join(t.TempDir(), "generate-output")
	require.NoError(t, pipeline.MkdirAndSave(mols, store, dir, testutil.NewMockLogger()))

	loadedMols, err := storage.LoadMols(filepath.Join(dir, "mols.bin"))
	require.NoError(t, err)
	loadedStore, err := storage.LoadProps(filepath.Join(dir, "props.bin"))
	require.NoError(t, err)

	require.Len(t, loadedMols, 2)
	for i, m := range loadedMols {
		assert.Equal(t, mols[i].Title(), m.Title())
		assert.Equal(t, mols[i].Canonical(), m.Canonical())
		assert.True(t, m.Usable())

		want, err := store.Get(mols[i])
		require.NoError(t, err)
		got, err := loadedStore.Get(m)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestSaverSkipsEmptyPaths(t *testing.T) {
	mols, store := savedSet(t)
	dir := t.TempDir()
	out := pipeline.OutputSet{MolsSMI: filepath.Join(dir, "mols.smi")}

	saver := pipeline.NewSaver(mols, store, out, testutil.NewMockLogger())
	require.NoError(t, saver.Run(context.Background()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "mols.smi", entries[0].Name())
}

func TestSaverRunsOnce(t *testing.T) {
	mols, store := savedSet(t)
	dir := filepath.Join(t.TempDir(), "generate-output")
	require.NoError(t, pipeline.MkdirAndSave(mols, store, dir, testutil.NewMockLogger()))

	saver := pipeline.NewSaver(mols, store, pipeline.OutputSetForDir(dir),
		testutil.NewMockLogger())
	require.NoError(t, saver.Run(context.Background()))

	// Re-running must fail before touching any file.
	require.NoError(t, os.Remove(filepath.Join(dir, "mols.smi")))
	err := saver.Run(context.Background())
	assert.True(t, errors.IsCode(err, errors.CodeStageAlreadyRun))
	assert.Contains(t, err.Error(), "Saver")
	assert.NoFileExists(t, filepath.Join(dir, "mols.smi"))
}

func TestSaverFailsOnMissingPropertyKey(t *testing.T) {
	store := molecule.NewStore()
	orphan := molecule.New(chem.TextMol{Name: "orphan", Text: "N"})

	dir := filepath.Join(t.TempDir(), "generate-output")
	err := pipeline.MkdirAndSave([]*molecule.Molecule{orphan}, store, dir,
		testutil.NewMockLogger())
	assert.True(t, errors.IsCode(err, errors.CodePropsKeyMissing))
}
