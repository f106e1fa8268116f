package board

import (
	"math/rand/v2"

	"github.com/google/uuid"
)

// Kind identifies the type of a shape.
type Kind string

const (
	KindPencil  Kind = "pencil"
	KindRect    Kind = "rect"
	KindEllipse Kind = "ellipse"
	KindDiamond Kind = "diamond"
	KindLine    Kind = "line"
	KindArrow   Kind = "arrow"
	KindText    Kind = "text"
	KindSticky  Kind = "sticky"
	KindImage   Kind = "image"
)

var kinds = []Kind{
	KindPencil, KindRect, KindEllipse, KindDiamond, KindLine,
	KindArrow, KindText, KindSticky, KindImage,
}

// Kinds returns every shape kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, len(kinds))
	copy(out, kinds)
	return out
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	for _, v := range kinds {
		if v == k {
			return true
		}
	}
	return false
}

// TwoPoint reports whether shapes of this kind are spanned by (X,Y)-(X2,Y2).
func (k Kind) TwoPoint() bool {
	switch k {
	case KindRect, KindEllipse, KindDiamond, KindLine, KindArrow, KindImage:
		return true
	}
	return false
}

// Resizable reports whether the selection overlay shows resize handles.
func (k Kind) Resizable() bool {
	switch k {
	case KindRect, KindEllipse, KindDiamond, KindImage, KindLine, KindArrow, KindSticky:
		return true
	}
	return false
}

// Style defaults for new shapes.
const (
	Transparent = "transparent"

	DefaultColor       = "#1e1e1e"
	DefaultStrokeWidth = 2.0
	DefaultFontSize    = 20.0
	DefaultStickyFill  = "#fef08a"
)

// StrokeWidths is the palette offered by the toolbar. Shapes may carry
// any positive width.
var StrokeWidths = []float64{1, 2, 4, 6}

// Point is a world-space coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Shape is one drawable primitive on the board.
type Shape struct {
	ID           string  `json:"id"`
	Type         Kind    `json:"type"`
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	X2           float64 `json:"x2,omitempty"`
	Y2           float64 `json:"y2,omitempty"`
	Points       []Point `json:"points,omitempty"`
	Text         string  `json:"text,omitempty"`
	ImageDataURL string  `json:"imageDataUrl,omitempty"`
	Color        string  `json:"color"`
	StrokeWidth  float64 `json:"strokeWidth"`
	Fill         string  `json:"fill"`
	FontSize     float64 `json:"fontSize,omitempty"`
	Seed         int64   `json:"seed"`
}

// Clone returns a deep copy of s.
func (s Shape) Clone() Shape {
	if s.Points != nil {
		pts := make([]Point, len(s.Points))
		copy(pts, s.Points)
		s.Points = pts
	}
	return s
}

// Filled reports whether the shape has a fill color.
func (s Shape) Filled() bool {
	return s.Fill != "" && s.Fill != Transparent
}

// CloneShapes deep-copies a shape list. A nil input yields an empty,
// non-nil slice so snapshots always serialize as [].
func CloneShapes(shapes []Shape) []Shape {
	out := make([]Shape, len(shapes))
	for i, s := range shapes {
		out[i] = s.Clone()
	}
	return out
}

// IndexOf returns the position of the shape with the given id, or -1.
// The empty id matches nothing.
func IndexOf(shapes []Shape, id string) int {
	if id == "" {
		return -1
	}
	for i := range shapes {
		if shapes[i].ID == id {
			return i
		}
	}
	return -1
}

// NewID returns a fresh shape identifier.
func NewID() string {
	return uuid.NewString()
}

// NewSeed returns a positive 31-bit jitter seed.
func NewSeed() int64 {
	return rand.Int64N(1<<31-1) + 1
}

// Style is the pen state applied to newly created shapes.
type Style struct {
	Color       string  `json:"color"`
	StrokeWidth float64 `json:"strokeWidth"`
	Fill        string  `json:"fill"`
	FontSize    float64 `json:"fontSize"`
}

// DefaultStyle returns the initial pen state.
func DefaultStyle() Style {
	return Style{
		Color:       DefaultColor,
		StrokeWidth: DefaultStrokeWidth,
		Fill:        Transparent,
		FontSize:    DefaultFontSize,
	}
}

// NewShape creates a shape of the given kind anchored at (x,y) with a new
// id and seed. Two-point kinds start with both endpoints at (x,y) and
// pencil strokes with a single point.
func NewShape(kind Kind, x, y float64, st Style) Shape {
	s := Shape{
		ID:          NewID(),
		Type:        kind,
		X:           x,
		Y:           y,
		Color:       st.Color,
		StrokeWidth: st.StrokeWidth,
		Fill:        st.Fill,
		Seed:        NewSeed(),
	}
	if s.Fill == "" {
		s.Fill = Transparent
	}
	switch {
	case kind == KindPencil:
		s.Points = []Point{{X: x, Y: y}}
	case kind.TwoPoint():
		s.X2, s.Y2 = x, y
	case kind == KindText || kind == KindSticky:
		s.FontSize = st.FontSize
	}
	return s
}
