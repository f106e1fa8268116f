package history

import (
	"fmt"
	"testing"

	"github.com/matzehuels/sketchboard/pkg/board"
	"github.com/matzehuels/sketchboard/pkg/observability"
)

func rect(id string, x float64) board.Shape {
	return board.Shape{ID: id, Type: board.KindRect, X: x, Y: x, X2: x + 10, Y2: x + 10}
}

func TestNewStartsAtBaseline(t *testing.T) {
	h := New(nil)
	if h.Len() != 1 || h.Index() != 0 {
		t.Fatalf("Len/Index = %d/%d, want 1/0", h.Len(), h.Index())
	}
	if h.CanUndo() || h.CanRedo() {
		t.Error("fresh history should not undo or redo")
	}
	if got := h.Shapes(); got == nil || len(got) != 0 {
		t.Errorf("Shapes() = %#v, want empty slice", got)
	}
}

func TestUndoRedoInverse(t *testing.T) {
	h := New(nil)

	var live []board.Shape
	const n = 12
	for i := 0; i < n; i++ {
		live = append(live, rect(fmt.Sprint(i), float64(i)))
		h.Commit(live)
	}
	final := h.Shapes()

	for i := 0; i < n; i++ {
		if _, ok := h.Undo(); !ok {
			t.Fatalf("undo %d failed", i)
		}
	}
	if got := h.Shapes(); len(got) != 0 {
		t.Fatalf("after %d undos len = %d, want 0", n, len(got))
	}
	if _, ok := h.Undo(); ok {
		t.Error("undo past baseline succeeded")
	}

	for i := 0; i < n; i++ {
		if _, ok := h.Redo(); !ok {
			t.Fatalf("redo %d failed", i)
		}
	}
	got := h.Shapes()
	if len(got) != len(final) {
		t.Fatalf("after redos len = %d, want %d", len(got), len(final))
	}
	for i := range final {
		if got[i].ID != final[i].ID || got[i].X != final[i].X {
			t.Errorf("shape %d = %+v, want %+v", i, got[i], final[i])
		}
	}
	if _, ok := h.Redo(); ok {
		t.Error("redo past tip succeeded")
	}
}

func TestCommitTruncatesRedoTail(t *testing.T) {
	h := New(nil)
	h.Commit([]board.Shape{rect("a", 0)})
	h.Commit([]board.Shape{rect("a", 0), rect("b", 1)})
	h.Undo()

	h.Commit([]board.Shape{rect("a", 0), rect("c", 2)})
	if h.CanRedo() {
		t.Error("redo available after new commit")
	}
	if h.Len() != 3 {
		t.Errorf("Len() = %d, want 3", h.Len())
	}
	got := h.Shapes()
	if got[1].ID != "c" {
		t.Errorf("tip shape = %q, want c", got[1].ID)
	}
}

func TestSnapshotsAreIsolated(t *testing.T) {
	live := []board.Shape{{ID: "p", Type: board.KindPencil, Points: []board.Point{{X: 1, Y: 1}}}}
	h := New(nil)
	h.Commit(live)

	live[0].Points[0].X = 99
	if h.Shapes()[0].Points[0].X != 1 {
		t.Error("commit did not copy the shape list")
	}

	out := h.Shapes()
	out[0].Points[0].X = 42
	if h.Shapes()[0].Points[0].X != 1 {
		t.Error("Shapes() exposes internal snapshot")
	}
}

func TestReset(t *testing.T) {
	h := New(nil)
	h.Commit([]board.Shape{rect("a", 0)})
	h.Reset([]board.Shape{rect("x", 5), rect("y", 6)})

	if h.CanUndo() || h.CanRedo() {
		t.Error("Reset should leave no undo or redo")
	}
	if got := h.Shapes(); len(got) != 2 {
		t.Errorf("len = %d, want 2", len(got))
	}
}

func TestLimitDropsOldest(t *testing.T) {
	h := New(nil, WithLimit(3))
	for i := 0; i < 5; i++ {
		h.Commit([]board.Shape{rect(fmt.Sprint(i), 0)})
	}
	if h.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", h.Len())
	}
	if h.Index() != 2 {
		t.Errorf("Index() = %d, want 2", h.Index())
	}
	h.Undo()
	h.Undo()
	if got := h.Shapes()[0].ID; got != "2" {
		t.Errorf("oldest retained = %q, want 2", got)
	}
}

type countingHooks struct {
	observability.NoopHistoryHooks
	commits, undos, redos int
}

func (c *countingHooks) OnCommit(int, int) { c.commits++ }
func (c *countingHooks) OnUndo(int)        { c.undos++ }
func (c *countingHooks) OnRedo(int)        { c.redos++ }

func TestHooksFire(t *testing.T) {
	hooks := &countingHooks{}
	observability.SetHistoryHooks(hooks)
	defer observability.Reset()

	h := New(nil)
	h.Commit([]board.Shape{rect("a", 0)})
	h.Undo()
	h.Undo()
	h.Redo()

	if hooks.commits != 1 || hooks.undos != 1 || hooks.redos != 1 {
		t.Errorf("hooks = %d/%d/%d, want 1/1/1", hooks.commits, hooks.undos, hooks.redos)
	}
}
