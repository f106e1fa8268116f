package geom

import "github.com/matzehuels/sketchboard/pkg/board"

// HandleName identifies one of the eight resize handles.
type HandleName string

const (
	HandleNW HandleName = "nw"
	HandleN  HandleName = "n"
	HandleNE HandleName = "ne"
	HandleE  HandleName = "e"
	HandleSE HandleName = "se"
	HandleS  HandleName = "s"
	HandleSW HandleName = "sw"
	HandleW  HandleName = "w"
)

// Handle is a named resize point.
type Handle struct {
	Name HandleName
	X, Y float64
}

// ResizeHandles returns the corners and edge midpoints of r in the order
// nw, n, ne, e, se, s, sw, w.
func ResizeHandles(r Rect) []Handle {
	cx, cy := r.Center()
	x1, y1 := r.X+r.W, r.Y+r.H
	return []Handle{
		{HandleNW, r.X, r.Y},
		{HandleN, cx, r.Y},
		{HandleNE, x1, r.Y},
		{HandleE, x1, cy},
		{HandleSE, x1, y1},
		{HandleS, cx, y1},
		{HandleSW, r.X, y1},
		{HandleW, r.X, cy},
	}
}

// HitHandle returns the first handle of r whose square contains (px,py).
// The square is HandleSize screen pixels wide, so its world size shrinks
// as zoom grows.
func HitHandle(r Rect, px, py, zoom float64) (HandleName, bool) {
	if zoom <= 0 {
		zoom = 1
	}
	half := HandleSize / 2 / zoom
	for _, h := range ResizeHandles(r) {
		if px >= h.X-half && px <= h.X+half && py >= h.Y-half && py <= h.Y+half {
			return h.Name, true
		}
	}
	return "", false
}

// edges reports which coordinate fields a handle drives.
func (h HandleName) edges() (left, top, right, bottom bool) {
	switch h {
	case HandleNW:
		return true, true, false, false
	case HandleN:
		return false, true, false, false
	case HandleNE:
		return false, true, true, false
	case HandleE:
		return false, false, true, false
	case HandleSE:
		return false, false, true, true
	case HandleS:
		return false, false, false, true
	case HandleSW:
		return true, false, false, true
	case HandleW:
		return true, false, false, false
	}
	return
}

// Resize applies the cumulative pointer delta (dx,dy) to the snapshot of
// a shape taken when the resize began. West and north edges move X and
// Y; east and south edges move X2 and Y2. Sticky notes have a fixed size,
// so only their anchor follows the west and north edges.
func Resize(snap board.Shape, h HandleName, dx, dy float64) board.Shape {
	out := snap.Clone()
	left, top, right, bottom := h.edges()
	if left {
		out.X = snap.X + dx
	}
	if top {
		out.Y = snap.Y + dy
	}
	if !snap.Type.TwoPoint() {
		return out
	}
	if right {
		out.X2 = snap.X2 + dx
	}
	if bottom {
		out.Y2 = snap.Y2 + dy
	}
	return out
}

// Translate moves every coordinate of the snapshot by (dx,dy).
func Translate(snap board.Shape, dx, dy float64) board.Shape {
	out := snap.Clone()
	out.X += dx
	out.Y += dy
	if snap.Type.TwoPoint() {
		out.X2 += dx
		out.Y2 += dy
	}
	for i := range out.Points {
		out.Points[i].X += dx
		out.Points[i].Y += dy
	}
	return out
}
