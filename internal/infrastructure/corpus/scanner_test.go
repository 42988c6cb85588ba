package corpus_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/btjanaka/dance/internal/infrastructure/corpus"
	"github.com/btjanaka/dance/pkg/errors"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x\n"), 0o644))
}

func TestScannerMatchesPattern(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.mol2"))
	touch(t, filepath.Join(dir, "b.mol2"))
	touch(t, filepath.Join(dir, "skip.txt"))

	var got []string
	sc := corpus.NewScanner("*.mol2", false)
	require.NoError(t, sc.Scan(context.Background(), []string{dir}, func(p string) error {
		got = append(got, filepath.Base(p))
		return nil
	}))
	assert.Equal(t, []string{"a.mol2", "b.mol2"}, got)
}

func TestScannerRecursivePattern(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "top.mol2"))
	touch(t, filepath.Join(dir, "sub", "nested.mol2"))

	var got []string
	sc := corpus.NewScanner("**/*.mol2", false)
	require.NoError(t, sc.Scan(context.Background(), []string{dir}, func(p string) error {
		rel, err := filepath.Rel(dir, p)
		require.NoError(t, err)
		got = append(got, rel)
		return nil
	}))
	assert.ElementsMatch(t, []string{"top.mol2", filepath.Join("sub", "nested.mol2")}, got)
}

func TestScannerVisitsDirsInOrder(t *testing.T) {
	dirA := t.TempDir()
	dirB := t.TempDir()
	touch(t, filepath.Join(dirA, "a.mol2"))
	touch(t, filepath.Join(dirB, "b.mol2"))

	var got []string
	sc := corpus.NewScanner("*.mol2", false)
	require.NoError(t, sc.Scan(context.Background(), []string{dirB, dirA}, func(p string) error {
		got = append(got, filepath.Base(p))
		return nil
	}))
	assert.Equal(t, []string{"b.mol2", "a.mol2"}, got)
}

func TestScannerPropagatesCallbackError(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.mol2"))

	boom := errors.Internal("engine exploded")
	sc := corpus.NewScanner("*.mol2", false)
	err := sc.Scan(context.Background(), []string{dir}, func(string) error {
		return boom
	})
	assert.True(t, errors.IsCode(err, errors.CodeInternal))
}

func TestScannerStopsOnCancellation(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.mol2"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sc := corpus.NewScanner("*.mol2", false)
	calls := 0
	err := sc.Scan(ctx, []string{dir}, func(string) error {
		calls++
		return nil
	})
	assert.Error(t, err)
	assert.Zero(t, calls)
}
