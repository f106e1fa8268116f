package controller

import "github.com/matzehuels/sketchboard/pkg/board"

// Tool is the active input mode.
type Tool string

const (
	ToolSelect  Tool = "select"
	ToolPan     Tool = "pan"
	ToolPencil  Tool = "pencil"
	ToolRect    Tool = "rect"
	ToolEllipse Tool = "ellipse"
	ToolDiamond Tool = "diamond"
	ToolLine    Tool = "line"
	ToolArrow   Tool = "arrow"
	ToolText    Tool = "text"
	ToolSticky  Tool = "sticky"
	ToolImage   Tool = "image"
	ToolEraser  Tool = "eraser"
)

// Tools lists every tool in toolbar order.
var Tools = []Tool{
	ToolSelect, ToolPan, ToolPencil, ToolRect, ToolEllipse, ToolDiamond,
	ToolLine, ToolArrow, ToolText, ToolSticky, ToolImage, ToolEraser,
}

// toolKeys maps single-letter shortcuts to tools.
var toolKeys = map[string]Tool{
	"v": ToolSelect,
	"h": ToolPan,
	"p": ToolPencil,
	"r": ToolRect,
	"o": ToolEllipse,
	"d": ToolDiamond,
	"l": ToolLine,
	"a": ToolArrow,
	"t": ToolText,
	"s": ToolSticky,
	"i": ToolImage,
	"e": ToolEraser,
}

// ShortcutFor returns the letter that selects t.
func ShortcutFor(t Tool) string {
	for k, v := range toolKeys {
		if v == t {
			return k
		}
	}
	return ""
}

// Valid reports whether t is a known tool.
func (t Tool) Valid() bool {
	for _, v := range Tools {
		if v == t {
			return true
		}
	}
	return false
}

// drawKind returns the shape kind a drag-to-draw tool creates.
func (t Tool) drawKind() (board.Kind, bool) {
	switch t {
	case ToolPencil:
		return board.KindPencil, true
	case ToolRect:
		return board.KindRect, true
	case ToolEllipse:
		return board.KindEllipse, true
	case ToolDiamond:
		return board.KindDiamond, true
	case ToolLine:
		return board.KindLine, true
	case ToolArrow:
		return board.KindArrow, true
	}
	return "", false
}
