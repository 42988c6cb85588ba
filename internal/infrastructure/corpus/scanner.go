// Package corpus provides lazy iteration over directories of molecule
// structure files.  The corpus may contain millions of entries, so paths are
// visited one at a time and never buffered in bulk.
package corpus

import (
	"context"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/schollz/progressbar/v3"
)

// Scanner streams file paths matching a glob pattern from a list of
// directories.  Directories are visited in the given order; within a
// directory the walk order is the filesystem's lexical order, so a scan over
// an unchanged corpus is deterministic and restartable.
type Scanner struct {
	pattern string
	bar     *progressbar.ProgressBar
}

// NewScanner builds a Scanner for the given glob pattern (doublestar syntax,
// e.g. "*.mol2" or "**/*.sdf").  When showProgress is set, an indeterminate
// progress spinner is rendered on stderr during Scan.
func NewScanner(pattern string, showProgress bool) *Scanner {
	s := &Scanner{pattern: pattern}
	if showProgress {
		s.bar = progressbar.NewOptions(-1,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("scanning corpus"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
			progressbar.OptionSpinnerType(14),
		)
	}
	return s
}

// Scan walks each directory and invokes fn once per matching file, with the
// path joined onto its directory.  The walk is lazy: fn sees each path as it
// is discovered.  A non-nil error from fn aborts the scan, as does context
// cancellation between files.
func (s *Scanner) Scan(ctx context.Context, dirs []string, fn func(path string) error) error {
	defer s.finish()
	for _, dir := range dirs {
		err := doublestar.GlobWalk(os.DirFS(dir), s.pattern,
			func(p string, d os.DirEntry) error {
				if err := ctx.Err(); err != nil {
					return err
				}
				if d.IsDir() {
					return nil
				}
				s.increment()
				return fn(filepath.Join(dir, p))
			})
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Scanner) increment() {
	if s.bar != nil {
		_ = s.bar.Add(1)
	}
}

func (s *Scanner) finish() {
	if s.bar != nil {
		_ = s.bar.Finish()
	}
}
