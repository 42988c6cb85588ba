// Package storage persists molecule sets and their property stores as opaque
// binary blobs with list semantics: a load returns exactly what the matching
// save wrote, in the same order, with no cross-version compatibility
// guarantee.  Blobs are gob-encoded and zstd-compressed.
package storage

import (
	"encoding/gob"
	"os"

	"github.com/klauspost/compress/zstd"

	"github.com/btjanaka/dance/internal/domain/chem"
	"github.com/btjanaka/dance/internal/domain/molecule"
	"github.com/btjanaka/dance/pkg/errors"
)

// molSnapshot is the persisted form of a molecule: its identity, canonical
// text, property key, and — when the charge computation converged — the
// charged trivalent-N site.  The engine's own molecule representation does
// not survive persistence; a loaded molecule is text-backed.
type molSnapshot struct {
	Title     string
	Canonical string
	PropKey   int
	Site      *chem.Site
}

// SaveProps writes the property store to path.
func SaveProps(path string, store *molecule.Store) error {
	return writeBlob(path, store.Records())
}

// LoadProps reads a property store written by SaveProps.
func LoadProps(path string) (*molecule.Store, error) {
	var records []molecule.Properties
	if err := readBlob(path, &records); err != nil {
		return nil, err
	}
	return molecule.FromRecords(records), nil
}

// SaveMols writes the molecule set to path, preserving order and tag state.
func SaveMols(path string, mols []*molecule.Molecule) error {
	snapshots := make([]molSnapshot, len(mols))
	for i, m := range mols {
		key, ok := m.PropKey()
		if !ok {
			key = -1
		}
		snapshots[i] = molSnapshot{
			Title:     m.Title(),
			Canonical: m.Canonical(),
			PropKey:   key,
			Site:      m.Site(),
		}
	}
	return writeBlob(path, snapshots)
}

// LoadMols reads a molecule set written by SaveMols.  Property keys and
// charged sites round-trip exactly; the usability marker (site presence) is
// preserved.
func LoadMols(path string) ([]*molecule.Molecule, error) {
	var snapshots []molSnapshot
	if err := readBlob(path, &snapshots); err != nil {
		return nil, err
	}
	mols := make([]*molecule.Molecule, len(snapshots))
	for i, s := range snapshots {
		mols[i] = molecule.Restore(
			chem.TextMol{Name: s.Title, Text: s.Canonical}, s.PropKey, s.Site)
	}
	return mols, nil
}

func writeBlob(path string, v interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, errors.CodeIO, "failed to create blob file")
	}

	zw, err := zstd.NewWriter(f)
	if err != nil {
		f.Close()
		return errors.Wrap(err, errors.CodeSerialization, "failed to init compressor")
	}
	if err := gob.NewEncoder(zw).Encode(v); err != nil {
		zw.Close()
		f.Close()
		return errors.Wrap(err, errors.CodeSerialization, "failed to encode blob").
			WithDetail("path=" + path)
	}
	if err := zw.Close(); err != nil {
		f.Close()
		return errors.Wrap(err, errors.CodeIO, "failed to flush blob").WithDetail("path=" + path)
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, errors.CodeIO, "failed to close blob").WithDetail("path=" + path)
	}
	return nil
}

func readBlob(path string, v interface{}) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, errors.CodeIO, "failed to open blob file")
	}
	defer f.Close()

	zr, err := zstd.NewReader(f)
	if err != nil {
		return errors.Wrap(err, errors.CodeSerialization, "failed to init decompressor")
	}
	defer zr.Close()

	if err := gob.NewDecoder(zr).Decode(v); err != nil {
		return errors.Wrap(err, errors.CodeSerialization, "failed to decode blob").
			WithDetail("path=" + path)
	}
	return nil
}
