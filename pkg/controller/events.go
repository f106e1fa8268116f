package controller

import "github.com/matzehuels/sketchboard/pkg/board"

// Event is an input to Controller.Dispatch. The set is closed; see the
// concrete types below.
type Event interface {
	eventType() string
}

// Mouse buttons.
const (
	ButtonLeft   = 0
	ButtonMiddle = 1
	ButtonRight  = 2
)

// PointerDown presses a button at a screen position. PanModifier is set
// while the pan key (space) is held.
type PointerDown struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Button      int     `json:"button,omitempty"`
	PanModifier bool    `json:"pan,omitempty"`
}

// PointerMove moves the pointer to a screen position.
type PointerMove struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PointerUp releases the button at a screen position.
type PointerUp struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Wheel scrolls; negative DeltaY zooms in.
type Wheel struct {
	DeltaY float64 `json:"deltaY"`
}

// Key is a key press. Key holds a single character or a named key
// ("Enter", "Escape", "Backspace", "Delete").
type Key struct {
	Key   string `json:"key"`
	Ctrl  bool   `json:"ctrl,omitempty"`
	Meta  bool   `json:"meta,omitempty"`
	Shift bool   `json:"shift,omitempty"`
	Alt   bool   `json:"alt,omitempty"`
}

// SelectTool switches the active tool.
type SelectTool struct {
	Tool Tool `json:"tool"`
}

// SetStyle changes the pen applied to new shapes. Zero fields are left
// unchanged.
type SetStyle struct {
	Color       string  `json:"color,omitempty"`
	StrokeWidth float64 `json:"strokeWidth,omitempty"`
	Fill        string  `json:"fill,omitempty"`
	FontSize    float64 `json:"fontSize,omitempty"`
}

// TextChanged replaces the text of the open text overlay.
type TextChanged struct {
	Text string `json:"text"`
}

// TextCommit confirms the open text overlay.
type TextCommit struct{}

// TextCancel discards the open text overlay.
type TextCancel struct{}

// ImageChosen delivers the image picked for the pending image position.
// Use PrepareImage to build it from file bytes.
type ImageChosen struct {
	DataURL string  `json:"dataUrl"`
	Width   float64 `json:"width,omitempty"`
	Height  float64 `json:"height,omitempty"`
}

// ImageCancel abandons the pending image insertion.
type ImageCancel struct{}

// DeleteSelection removes the selected shape.
type DeleteSelection struct{}

// ClearAll removes every shape.
type ClearAll struct{}

// Undo steps back one history entry.
type Undo struct{}

// Redo steps forward one history entry.
type Redo struct{}

// SetCanvas replaces the canvas configuration.
type SetCanvas struct {
	Config board.CanvasConfig `json:"config"`
}

// ApplyPreset resizes the canvas to a named size preset.
type ApplyPreset struct {
	Name string `json:"name"`
}

// TogglePanel opens or closes the canvas settings panel.
type TogglePanel struct{}

// Resize reports the host viewport size in screen pixels.
type Resize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Save persists the board.
type Save struct{}

// Load replaces the board with the saved one, if any.
type Load struct{}

func (PointerDown) eventType() string     { return "pointerdown" }
func (PointerMove) eventType() string     { return "pointermove" }
func (PointerUp) eventType() string       { return "pointerup" }
func (Wheel) eventType() string           { return "wheel" }
func (Key) eventType() string             { return "key" }
func (SelectTool) eventType() string      { return "tool" }
func (SetStyle) eventType() string        { return "style" }
func (TextChanged) eventType() string     { return "text" }
func (TextCommit) eventType() string      { return "textcommit" }
func (TextCancel) eventType() string      { return "textcancel" }
func (ImageChosen) eventType() string     { return "image" }
func (ImageCancel) eventType() string     { return "imagecancel" }
func (DeleteSelection) eventType() string { return "delete" }
func (ClearAll) eventType() string        { return "clear" }
func (Undo) eventType() string            { return "undo" }
func (Redo) eventType() string            { return "redo" }
func (SetCanvas) eventType() string       { return "canvas" }
func (ApplyPreset) eventType() string     { return "preset" }
func (TogglePanel) eventType() string     { return "panel" }
func (Resize) eventType() string          { return "resize" }
func (Save) eventType() string            { return "save" }
func (Load) eventType() string            { return "load" }
