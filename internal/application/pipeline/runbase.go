// Package pipeline implements the dance curation stages: Generator (filter +
// annotate), Saver (persist a generated set), Selector (fingerprint + bin +
// select), Analyzer (bucket statistics), and FinalSelector (cross-file pick).
// Stages share one behavior: each may execute its work exactly once.
package pipeline

import (
	"context"

	"github.com/btjanaka/dance/pkg/errors"
)

// Stage is the capability every pipeline stage exposes: a single Run that is
// called at most once.  Stages otherwise share no state; molecules and their
// property store are handed between them explicitly.
type Stage interface {
	Run(ctx context.Context) error
}

// runState tracks whether a stage has executed.
type runState int

const (
	stateNotRun runState = iota
	stateRan // terminal
)

// runGuard is embedded in every stage.  Each stage performs one-shot,
// non-idempotent I/O (writing files, mutating shared molecule lists), so a
// second Run would silently corrupt state; the guard turns it into a typed
// error instead.
type runGuard struct {
	state runState
}

// begin checks-and-transitions the guard.  The first call succeeds and flips
// the state; every later call fails with an error naming the stage, without
// any side effect having re-executed.
func (g *runGuard) begin(stage string) error {
	if g.state == stateRan {
		return errors.New(errors.CodeStageAlreadyRun,
			"this "+stage+" has already been run")
	}
	g.state = stateRan
	return nil
}
