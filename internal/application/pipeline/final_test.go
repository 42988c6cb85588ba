package pipeline_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/btjanaka/dance/internal/application/pipeline"
	"github.com/btjanaka/dance/internal/testutil"
	"github.com/btjanaka/dance/pkg/errors"
)

// rotatedBinDir writes three bin files, each holding the same molecules in
// a different cyclic rotation.
func rotatedBinDir(t *testing.T) string {
	t.Helper()
	smiles := []string{"N", "N#N", "O=C=O"}
	dir := t.TempDir()
	for i := 0; i < 3; i++ {
		var content string
		for j := 0; j < 3; j++ {
			content += smiles[(i+j)%3] + "\n"
		}
		require.NoError(t, os.WriteFile(
			filepath.Join(dir, fmt.Sprintf("%d.smi", i)),
			[]byte(content), 0o644))
	}
	return dir
}

func TestParseRanking(t *testing.T) {
	rank, err := pipeline.ParseRanking("")
	require.NoError(t, err)
	assert.Equal(t, pipeline.RankCanonical, rank)

	rank, err = pipeline.ParseRanking("encounter")
	require.NoError(t, err)
	assert.Equal(t, pipeline.RankEncounter, rank)

	_, err = pipeline.ParseRanking("alphabetical")
	assert.True(t, errors.IsCode(err, errors.CodeInvalidParam))
}

func TestFinalSelectorPicksSmallestMolecule(t *testing.T) {
	dir := rotatedBinDir(t)
	outFile := filepath.Join(dir, "select-final.smi")

	fin := pipeline.NewFinalSelector(dir, outFile, 1, pipeline.RankCanonical,
		testutil.NewMockLogger())
	require.NoError(t, fin.Run(context.Background()))

	assert.Equal(t, "N\n", readFile(t, outFile))
}

func TestFinalSelectorEncounterRanking(t *testing.T) {
	dir := rotatedBinDir(t)
	outFile := filepath.Join(dir, "select-final.smi")

	fin := pipeline.NewFinalSelector(dir, outFile, 2, pipeline.RankEncounter,
		testutil.NewMockLogger())
	require.NoError(t, fin.Run(context.Background()))

	// Bin files are visited in sorted name order, so the first two lines
	// of 0.smi win.
	assert.Equal(t, "N\nN#N\n", readFile(t, outFile))
}

func TestFinalSelectorKeepsTitles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bin.smi"),
		[]byte("CN methylamine\nN ammonia\n"), 0o644))
	outFile := filepath.Join(dir, "select-final.smi")

	fin := pipeline.NewFinalSelector(dir, outFile, 1, pipeline.RankCanonical,
		testutil.NewMockLogger())
	require.NoError(t, fin.Run(context.Background()))

	assert.Equal(t, "CN methylamine\n", readFile(t, outFile))
}

func TestFinalSelectorTakesEverythingWhenNExceedsTotal(t *testing.T) {
	dir := rotatedBinDir(t)
	outFile := filepath.Join(dir, "select-final.smi")

	fin := pipeline.NewFinalSelector(dir, outFile, 100, pipeline.RankCanonical,
		testutil.NewMockLogger())
	require.NoError(t, fin.Run(context.Background()))

	assert.Equal(t, "N\nN\nN\nN#N\nN#N\nN#N\nO=C=O\nO=C=O\nO=C=O\n",
		readFile(t, outFile))
}

func TestFinalSelectorRunsOnce(t *testing.T) {
	dir := rotatedBinDir(t)
	outFile := filepath.Join(dir, "select-final.smi")

	fin := pipeline.NewFinalSelector(dir, outFile, 1, pipeline.RankCanonical,
		testutil.NewMockLogger())
	require.NoError(t, fin.Run(context.Background()))

	require.NoError(t, os.Remove(outFile))
	err := fin.Run(context.Background())
	assert.True(t, errors.IsCode(err, errors.CodeStageAlreadyRun))
	assert.Contains(t, err.Error(), "FinalSelector")
	assert.NoFileExists(t, outFile)
}
