// Package history keeps the live shape list together with an undo/redo
// stack of full-list snapshots.
//
// Entry 0 is the baseline. Every Commit truncates the redo tail, appends a
// deep copy of the given list and advances the index, so after N commits
// N undos return to the baseline and N redos restore the last state.
// There is no diffing; undo and redo swap the whole list.
//
// A Store is not safe for concurrent use. The board controller owns it.
package history

import (
	"github.com/matzehuels/sketchboard/pkg/board"
	"github.com/matzehuels/sketchboard/pkg/observability"
)

// DefaultLimit bounds the number of retained snapshots.
const DefaultLimit = 200

// Store is the shape list plus its snapshot history.
type Store struct {
	entries [][]board.Shape
	index   int
	limit   int
}

// Option configures a Store.
type Option func(*Store)

// WithLimit caps the number of retained snapshots. The oldest entries are
// dropped once the cap is reached. Values below 2 disable the cap.
func WithLimit(n int) Option {
	return func(s *Store) {
		s.limit = n
	}
}

// New creates a history whose baseline is a copy of initial.
func New(initial []board.Shape, opts ...Option) *Store {
	s := &Store{limit: DefaultLimit}
	for _, opt := range opts {
		opt(s)
	}
	s.Reset(initial)
	return s
}

// Reset discards all history and makes shapes the new baseline.
func (s *Store) Reset(shapes []board.Shape) {
	s.entries = [][]board.Shape{board.CloneShapes(shapes)}
	s.index = 0
}

// Commit records shapes as the newest snapshot.
func (s *Store) Commit(shapes []board.Shape) {
	s.entries = append(s.entries[:s.index+1], board.CloneShapes(shapes))
	s.index++
	if s.limit >= 2 && len(s.entries) > s.limit {
		drop := len(s.entries) - s.limit
		s.entries = append([][]board.Shape(nil), s.entries[drop:]...)
		s.index -= drop
	}
	observability.History().OnCommit(len(shapes), len(s.entries))
}

// Undo steps back one snapshot and returns it. ok is false at the baseline.
func (s *Store) Undo() (shapes []board.Shape, ok bool) {
	if !s.CanUndo() {
		return s.Shapes(), false
	}
	s.index--
	observability.History().OnUndo(s.index)
	return s.Shapes(), true
}

// Redo steps forward one snapshot and returns it. ok is false at the tip.
func (s *Store) Redo() (shapes []board.Shape, ok bool) {
	if !s.CanRedo() {
		return s.Shapes(), false
	}
	s.index++
	observability.History().OnRedo(s.index)
	return s.Shapes(), true
}

// CanUndo reports whether an older snapshot exists.
func (s *Store) CanUndo() bool { return s.index > 0 }

// CanRedo reports whether a newer snapshot exists.
func (s *Store) CanRedo() bool { return s.index < len(s.entries)-1 }

// Shapes returns a copy of the current snapshot.
func (s *Store) Shapes() []board.Shape {
	return board.CloneShapes(s.entries[s.index])
}

// Len returns the number of snapshots including the baseline.
func (s *Store) Len() int { return len(s.entries) }

// Index returns the position of the current snapshot.
func (s *Store) Index() int { return s.index }
