// Package geom implements the geometry kernel of the board: bounding
// boxes, hit-testing, resize handles and the drag/resize transforms.
//
// All functions are pure and operate in world space unless noted.
package geom

import (
	"fmt"
	"math"

	"github.com/matzehuels/sketchboard/pkg/board"
)

// Fixed boxes for shapes whose extent is not measured.
const (
	TextWidth    = 200.0
	TextHeight   = 40.0
	StickyWidth  = 200.0
	StickyHeight = 150.0
)

// DefaultHitPad is the selection and eraser tolerance in world units.
const DefaultHitPad = 8.0

// HandleSize is the edge length of a resize handle in screen pixels.
const HandleSize = 8.0

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y, W, H float64
}

// Expand grows r by pad on every side.
func (r Rect) Expand(pad float64) Rect {
	return Rect{X: r.X - pad, Y: r.Y - pad, W: r.W + 2*pad, H: r.H + 2*pad}
}

// Contains reports whether (px,py) lies inside r, boundary included.
func (r Rect) Contains(px, py float64) bool {
	return px >= r.X && px <= r.X+r.W && py >= r.Y && py <= r.Y+r.H
}

// Intersects reports whether r and o overlap, touching edges included.
func (r Rect) Intersects(o Rect) bool {
	return r.X <= o.X+o.W && o.X <= r.X+r.W && r.Y <= o.Y+o.H && o.Y <= r.Y+r.H
}

// Center returns the midpoint of r.
func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

func (r Rect) String() string {
	return fmt.Sprintf("{x:%g y:%g w:%g h:%g}", r.X, r.Y, r.W, r.H)
}

// boxFuncs maps every shape kind to its bounding-box rule. A kind missing
// here is caught by the package tests.
var boxFuncs = map[board.Kind]func(board.Shape) Rect{
	board.KindPencil:  pointsBox,
	board.KindRect:    spanBox,
	board.KindEllipse: spanBox,
	board.KindDiamond: spanBox,
	board.KindLine:    spanBox,
	board.KindArrow:   spanBox,
	board.KindImage:   spanBox,
	board.KindText:    fixedBox(TextWidth, TextHeight),
	board.KindSticky:  fixedBox(StickyWidth, StickyHeight),
}

// BoundingBox returns the axis-aligned box enclosing s.
// Text and sticky notes use a fixed box anchored at (X,Y).
func BoundingBox(s board.Shape) Rect {
	if fn, ok := boxFuncs[s.Type]; ok {
		return fn(s)
	}
	return Rect{X: s.X, Y: s.Y}
}

func spanBox(s board.Shape) Rect {
	x0, x1 := math.Min(s.X, s.X2), math.Max(s.X, s.X2)
	y0, y1 := math.Min(s.Y, s.Y2), math.Max(s.Y, s.Y2)
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

func pointsBox(s board.Shape) Rect {
	if len(s.Points) == 0 {
		return Rect{X: s.X, Y: s.Y}
	}
	minX, minY := s.Points[0].X, s.Points[0].Y
	maxX, maxY := minX, minY
	for _, p := range s.Points[1:] {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

func fixedBox(w, h float64) func(board.Shape) Rect {
	return func(s board.Shape) Rect {
		return Rect{X: s.X, Y: s.Y, W: w, H: h}
	}
}

// HitTest reports whether (px,py) lies within the bounding box of s
// expanded by pad.
func HitTest(s board.Shape, px, py, pad float64) bool {
	return BoundingBox(s).Expand(pad).Contains(px, py)
}

// TopmostAt returns the index of the last shape hit at (px,py), or -1.
func TopmostAt(shapes []board.Shape, px, py, pad float64) int {
	for i := len(shapes) - 1; i >= 0; i-- {
		if HitTest(shapes[i], px, py, pad) {
			return i
		}
	}
	return -1
}
