package geom

import (
	"testing"

	"github.com/matzehuels/sketchboard/pkg/board"
)

func TestEveryKindHasBoundingBox(t *testing.T) {
	for _, k := range board.Kinds() {
		if _, ok := boxFuncs[k]; !ok {
			t.Errorf("no bounding box rule for %q", k)
		}
	}
}

func TestBoundingBox(t *testing.T) {
	tests := []struct {
		name  string
		shape board.Shape
		want  Rect
	}{
		{
			name:  "rect",
			shape: board.Shape{Type: board.KindRect, X: 10, Y: 10, X2: 50, Y2: 40},
			want:  Rect{10, 10, 40, 30},
		},
		{
			name:  "rect reversed",
			shape: board.Shape{Type: board.KindRect, X: 50, Y: 40, X2: 10, Y2: 10},
			want:  Rect{10, 10, 40, 30},
		},
		{
			name:  "line upward",
			shape: board.Shape{Type: board.KindLine, X: 0, Y: 100, X2: 100, Y2: 0},
			want:  Rect{0, 0, 100, 100},
		},
		{
			name: "pencil",
			shape: board.Shape{Type: board.KindPencil, Points: []board.Point{
				{X: 5, Y: 9}, {X: -3, Y: 2}, {X: 7, Y: 4},
			}},
			want: Rect{-3, 2, 10, 7},
		},
		{
			name:  "pencil without points",
			shape: board.Shape{Type: board.KindPencil, X: 4, Y: 4},
			want:  Rect{4, 4, 0, 0},
		},
		{
			name:  "text",
			shape: board.Shape{Type: board.KindText, X: 1, Y: 2},
			want:  Rect{1, 2, 200, 40},
		},
		{
			name:  "sticky",
			shape: board.Shape{Type: board.KindSticky, X: 1, Y: 2},
			want:  Rect{1, 2, 200, 150},
		},
		{
			name:  "image",
			shape: board.Shape{Type: board.KindImage, X: 0, Y: 0, X2: 400, Y2: 300},
			want:  Rect{0, 0, 400, 300},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BoundingBox(tt.shape); got != tt.want {
				t.Errorf("BoundingBox() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHitTestBoundary(t *testing.T) {
	s := board.Shape{Type: board.KindRect, X: 10, Y: 10, X2: 50, Y2: 40}

	tests := []struct {
		name   string
		px, py float64
		pad    float64
		want   bool
	}{
		{"inside", 20, 20, 0, true},
		{"left edge", 10, 20, 0, true},
		{"bottom right corner", 50, 40, 0, true},
		{"just outside no pad", 9, 20, 0, false},
		{"within pad", 3, 20, DefaultHitPad, true},
		{"on padded edge", 2, 20, DefaultHitPad, true},
		{"pad plus one outside", 1, 20, DefaultHitPad, false},
		{"pad plus one below", 20, 49, DefaultHitPad, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HitTest(s, tt.px, tt.py, tt.pad); got != tt.want {
				t.Errorf("HitTest(%v,%v,pad=%v) = %v, want %v", tt.px, tt.py, tt.pad, got, tt.want)
			}
		})
	}
}

func TestTopmostAt(t *testing.T) {
	shapes := []board.Shape{
		{ID: "under", Type: board.KindRect, X: 0, Y: 0, X2: 100, Y2: 100},
		{ID: "over", Type: board.KindRect, X: 50, Y: 50, X2: 150, Y2: 150},
	}
	if got := TopmostAt(shapes, 75, 75, 0); got != 1 {
		t.Errorf("TopmostAt overlap = %d, want 1", got)
	}
	if got := TopmostAt(shapes, 10, 10, 0); got != 0 {
		t.Errorf("TopmostAt under = %d, want 0", got)
	}
	if got := TopmostAt(shapes, 500, 500, 0); got != -1 {
		t.Errorf("TopmostAt miss = %d, want -1", got)
	}
}

func TestRectIntersects(t *testing.T) {
	a := Rect{0, 0, 10, 10}
	if !a.Intersects(Rect{10, 10, 5, 5}) {
		t.Error("touching rects should intersect")
	}
	if a.Intersects(Rect{11, 0, 5, 5}) {
		t.Error("disjoint rects intersect")
	}
}
