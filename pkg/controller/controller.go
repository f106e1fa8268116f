// Package controller turns pointer and keyboard input into board changes.
//
// A Controller is the single owner of the board's mutable state: the live
// shape list and its history, the view, the canvas configuration, the
// active tool, the selection and any gesture in progress. Hosts feed it
// events through Dispatch and read an immutable Snapshot to draw.
//
// In-progress gestures (a stroke being drawn, a drag, a resize, an eraser
// stroke) change the live shapes on every move but reach history once, on
// release.
//
// A Controller is not safe for concurrent use; hosts serialize calls.
package controller

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sketchboard/pkg/board"
	"github.com/matzehuels/sketchboard/pkg/errors"
	"github.com/matzehuels/sketchboard/pkg/geom"
	"github.com/matzehuels/sketchboard/pkg/history"
	"github.com/matzehuels/sketchboard/pkg/panel"
	"github.com/matzehuels/sketchboard/pkg/render"
)

// SavedIndicatorDuration is how long Snapshot.Saved stays true after a
// successful save.
const SavedIndicatorDuration = 2 * time.Second

// Zoom steps per wheel tick.
const (
	zoomInFactor  = 1.1
	zoomOutFactor = 0.9
)

// Persister saves and restores whole boards.
type Persister interface {
	Save(ctx context.Context, doc board.Document) error
	Load(ctx context.Context) (board.Document, bool)
}

// Options configures a Controller. Every field is optional.
type Options struct {
	Logger    *log.Logger
	Persister Persister
	Canvas    *board.CanvasConfig
	Style     *board.Style

	// HistoryLimit caps retained snapshots (history.DefaultLimit if zero).
	HistoryLimit int

	// OnRedraw is called from timers when the board should be drawn again
	// without an input event (the saved indicator expiring).
	OnRedraw func()

	// OnImageRequest is called when the image tool wants a file. The host
	// answers with ImageChosen or ImageCancel.
	OnImageRequest func(x, y float64)

	// Now and AfterFunc replace the wall clock in tests.
	Now       func() time.Time
	AfterFunc func(d time.Duration, f func())
}

type gestureKind int

const (
	gestureNone gestureKind = iota
	gesturePan
	gestureDraw
	gestureDrag
	gestureResize
	gestureErase
)

// gesture is the state of a pointer interaction between down and up.
type gesture struct {
	kind gestureKind

	startScreen board.Point
	startWorld  board.Point
	startPan    board.Point

	id     string
	snap   board.Shape
	handle geom.HandleName
	erased int
	draft  board.Shape
}

// TextEdit is an open text-entry overlay. No shape exists until commit.
type TextEdit struct {
	Kind board.Kind `json:"kind"`
	X    float64    `json:"x"`
	Y    float64    `json:"y"`
	Text string     `json:"text"`
}

// Controller owns the board state. See the package documentation.
type Controller struct {
	logger    *log.Logger
	persister Persister
	onRedraw  func()
	onImage   func(x, y float64)
	now       func() time.Time
	afterFunc func(time.Duration, func())

	history *history.Store
	shapes  []board.Shape
	view    board.View
	canvas  board.CanvasConfig
	style   board.Style

	tool      Tool
	selected  string
	gesture   gesture
	edit      *TextEdit
	pendingAt *board.Point
	panelOpen bool
	savedAt   time.Time
	saveErr   error
	viewport  Resize
}

// New creates a controller with an empty board.
func New(opts Options) *Controller {
	c := &Controller{
		logger:    opts.Logger,
		persister: opts.Persister,
		onRedraw:  opts.OnRedraw,
		onImage:   opts.OnImageRequest,
		now:       opts.Now,
		afterFunc: opts.AfterFunc,
		view:      board.DefaultView(),
		canvas:    board.DefaultCanvas(),
		style:     board.DefaultStyle(),
		tool:      ToolPencil,
		shapes:    []board.Shape{},
	}
	if c.logger == nil {
		c.logger = log.Default()
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.afterFunc == nil {
		c.afterFunc = func(d time.Duration, f func()) { time.AfterFunc(d, f) }
	}
	if opts.Canvas != nil {
		c.canvas = *opts.Canvas
	}
	if opts.Style != nil {
		c.style = *opts.Style
	}
	limit := opts.HistoryLimit
	if limit == 0 {
		limit = history.DefaultLimit
	}
	c.history = history.New(nil, history.WithLimit(limit))
	return c
}

// Dispatch applies one event with a background context.
func (c *Controller) Dispatch(ev Event) {
	c.DispatchContext(context.Background(), ev)
}

// DispatchContext applies one event. ctx bounds storage calls made by
// Save and Load. Events that do not apply in the current state are
// ignored.
func (c *Controller) DispatchContext(ctx context.Context, ev Event) {
	switch e := ev.(type) {
	case PointerDown:
		c.pointerDown(e)
	case PointerMove:
		c.pointerMove(e.X, e.Y)
	case PointerUp:
		c.pointerMove(e.X, e.Y)
		c.pointerUp()
	case Wheel:
		c.wheel(e.DeltaY)
	case Key:
		c.key(ctx, e)
	case SelectTool:
		c.selectTool(e.Tool)
	case SetStyle:
		c.setStyle(e)
	case TextChanged:
		if c.edit != nil {
			c.edit.Text = e.Text
		}
	case TextCommit:
		c.commitText()
	case TextCancel:
		c.edit = nil
	case ImageChosen:
		c.insertImage(e)
	case ImageCancel:
		c.pendingAt = nil
	case DeleteSelection:
		c.deleteSelection()
	case ClearAll:
		c.clearAll()
	case Undo:
		c.undo()
	case Redo:
		c.redo()
	case SetCanvas:
		c.setCanvas(e.Config)
	case ApplyPreset:
		cfg, err := panel.Apply(c.canvas, e.Name)
		if err != nil {
			c.logger.Warn("canvas preset ignored", "err", err)
			return
		}
		c.canvas = cfg
	case TogglePanel:
		c.panelOpen = !c.panelOpen
	case Resize:
		c.viewport = e
	case Save:
		c.save(ctx)
	case Load:
		c.load(ctx)
	default:
		c.logger.Debug("ignored event", "type", ev)
	}
}

// =============================================================================
// Pointer handling
// =============================================================================

func (c *Controller) world(sx, sy float64) board.Point {
	x, y := c.view.ToWorld(sx, sy)
	return board.Point{X: x, Y: y}
}

func (c *Controller) pointerDown(e PointerDown) {
	if c.gesture.kind != gestureNone {
		// a missed pointer-up; finish the old gesture first
		c.pointerUp()
	}
	screen := board.Point{X: e.X, Y: e.Y}
	w := c.world(e.X, e.Y)
	c.gesture = gesture{startScreen: screen, startWorld: w, startPan: c.view.Pan}

	if c.tool == ToolPan || e.PanModifier || e.Button == ButtonMiddle {
		c.gesture.kind = gesturePan
		return
	}
	if e.Button == ButtonRight {
		return
	}

	switch c.tool {
	case ToolEraser:
		c.gesture.kind = gestureErase
		c.eraseAt(w)
	case ToolSelect:
		c.beginSelect(w)
	case ToolText, ToolSticky:
		if c.edit != nil {
			c.commitText()
		}
		kind := board.KindText
		if c.tool == ToolSticky {
			kind = board.KindSticky
		}
		c.edit = &TextEdit{Kind: kind, X: w.X, Y: w.Y}
	case ToolImage:
		c.pendingAt = &board.Point{X: w.X, Y: w.Y}
		if c.onImage != nil {
			c.onImage(w.X, w.Y)
		}
	default:
		kind, ok := c.tool.drawKind()
		if !ok {
			return
		}
		c.gesture.kind = gestureDraw
		c.gesture.draft = board.NewShape(kind, w.X, w.Y, c.style)
	}
}

func (c *Controller) beginSelect(w board.Point) {
	if i := board.IndexOf(c.shapes, c.selected); i >= 0 && c.shapes[i].Type.Resizable() {
		box := geom.BoundingBox(c.shapes[i])
		if h, ok := geom.HitHandle(box, w.X, w.Y, c.view.Zoom); ok {
			c.gesture.kind = gestureResize
			c.gesture.id = c.selected
			c.gesture.handle = h
			c.gesture.snap = c.shapes[i].Clone()
			return
		}
	}
	i := geom.TopmostAt(c.shapes, w.X, w.Y, geom.DefaultHitPad)
	if i < 0 {
		c.selected = ""
		return
	}
	c.selected = c.shapes[i].ID
	c.gesture.kind = gestureDrag
	c.gesture.id = c.selected
	c.gesture.snap = c.shapes[i].Clone()
}

func (c *Controller) pointerMove(sx, sy float64) {
	g := &c.gesture
	switch g.kind {
	case gesturePan:
		c.view.Pan = board.Point{
			X: g.startPan.X + sx - g.startScreen.X,
			Y: g.startPan.Y + sy - g.startScreen.Y,
		}
	case gestureDraw:
		w := c.world(sx, sy)
		if g.draft.Type == board.KindPencil {
			last := g.draft.Points[len(g.draft.Points)-1]
			if last != w {
				g.draft.Points = append(g.draft.Points, w)
			}
			return
		}
		g.draft.X2, g.draft.Y2 = w.X, w.Y
	case gestureDrag, gestureResize:
		i := board.IndexOf(c.shapes, g.id)
		if i < 0 {
			return
		}
		w := c.world(sx, sy)
		dx, dy := w.X-g.startWorld.X, w.Y-g.startWorld.Y
		if g.kind == gestureDrag {
			c.shapes[i] = geom.Translate(g.snap, dx, dy)
		} else {
			c.shapes[i] = geom.Resize(g.snap, g.handle, dx, dy)
		}
	case gestureErase:
		c.eraseAt(c.world(sx, sy))
	}
}

func (c *Controller) pointerUp() {
	g := c.gesture
	c.gesture = gesture{}

	switch g.kind {
	case gestureDraw:
		c.shapes = append(c.shapes, g.draft)
		c.commit("draw", "kind", g.draft.Type)
	case gestureDrag, gestureResize:
		i := board.IndexOf(c.shapes, g.id)
		if i < 0 || sameGeometry(c.shapes[i], g.snap) {
			return
		}
		c.commit("transform", "id", g.id)
	case gestureErase:
		if g.erased > 0 {
			c.commit("erase", "removed", g.erased)
		}
	}
}

func (c *Controller) eraseAt(w board.Point) {
	kept := c.shapes[:0:0]
	for _, s := range c.shapes {
		if geom.HitTest(s, w.X, w.Y, geom.DefaultHitPad) {
			c.gesture.erased++
			if s.ID == c.selected {
				c.selected = ""
			}
			continue
		}
		kept = append(kept, s)
	}
	c.shapes = kept
}

func sameGeometry(a, b board.Shape) bool {
	if a.X != b.X || a.Y != b.Y || a.X2 != b.X2 || a.Y2 != b.Y2 || len(a.Points) != len(b.Points) {
		return false
	}
	for i := range a.Points {
		if a.Points[i] != b.Points[i] {
			return false
		}
	}
	return true
}

func (c *Controller) wheel(dy float64) {
	switch {
	case dy < 0:
		c.view.Zoom = board.ClampZoom(c.view.Zoom * zoomInFactor)
	case dy > 0:
		c.view.Zoom = board.ClampZoom(c.view.Zoom * zoomOutFactor)
	}
}

// =============================================================================
// History and shape list
// =============================================================================

func (c *Controller) commit(reason string, kv ...any) {
	c.history.Commit(c.shapes)
	c.logger.Debug("commit "+reason, append(kv, "shapes", len(c.shapes), "entries", c.history.Len())...)
}

func (c *Controller) cancelGesture() {
	if c.gesture.kind == gestureDrag || c.gesture.kind == gestureResize {
		if i := board.IndexOf(c.shapes, c.gesture.id); i >= 0 {
			c.shapes[i] = c.gesture.snap
		}
	}
	c.gesture = gesture{}
}

func (c *Controller) undo() {
	c.cancelGesture()
	shapes, ok := c.history.Undo()
	if !ok {
		return
	}
	c.shapes = shapes
	c.selected = ""
}

func (c *Controller) redo() {
	c.cancelGesture()
	shapes, ok := c.history.Redo()
	if !ok {
		return
	}
	c.shapes = shapes
	if board.IndexOf(c.shapes, c.selected) < 0 {
		c.selected = ""
	}
}

func (c *Controller) deleteSelection() {
	if c.selected == "" {
		return
	}
	i := board.IndexOf(c.shapes, c.selected)
	if i < 0 {
		return
	}
	c.cancelGesture()
	c.shapes = append(c.shapes[:i:i], c.shapes[i+1:]...)
	c.selected = ""
	c.commit("delete")
}

func (c *Controller) clearAll() {
	c.cancelGesture()
	c.edit = nil
	if len(c.shapes) == 0 {
		return
	}
	c.shapes = []board.Shape{}
	c.selected = ""
	c.commit("clear")
}

// =============================================================================
// Tools, style, canvas
// =============================================================================

func (c *Controller) selectTool(t Tool) {
	if !t.Valid() {
		c.logger.Warn("unknown tool ignored", "tool", t)
		return
	}
	c.edit = nil
	c.pendingAt = nil
	if c.gesture.kind == gestureDraw {
		c.gesture = gesture{}
	}
	c.tool = t
}

func (c *Controller) setStyle(e SetStyle) {
	if e.Color != "" {
		c.style.Color = e.Color
	}
	if e.StrokeWidth > 0 {
		c.style.StrokeWidth = e.StrokeWidth
	}
	if e.Fill != "" {
		c.style.Fill = e.Fill
	}
	if e.FontSize > 0 {
		c.style.FontSize = e.FontSize
	}
}

func (c *Controller) setCanvas(cfg board.CanvasConfig) {
	if err := panel.Validate(cfg); err != nil {
		c.logger.Warn("canvas config ignored", "err", err)
		return
	}
	c.canvas = cfg
}

// =============================================================================
// Persistence
// =============================================================================

func (c *Controller) save(ctx context.Context) {
	if c.persister == nil {
		c.logger.Warn("save requested without storage")
		c.saveErr = errors.New(errors.ErrCodeStorage, "no storage configured")
		return
	}
	if err := c.persister.Save(ctx, c.Document()); err != nil {
		c.logger.Error("save failed", "err", err)
		c.saveErr = err
		return
	}
	c.saveErr = nil
	c.savedAt = c.now()
	if c.onRedraw != nil {
		c.afterFunc(SavedIndicatorDuration, c.onRedraw)
	}
}

func (c *Controller) load(ctx context.Context) {
	if c.persister == nil {
		return
	}
	doc, ok := c.persister.Load(ctx)
	if !ok {
		return
	}
	c.Restore(doc)
}

// Restore replaces the board's shapes with doc's; they become a fresh
// history baseline. Pan, zoom and canvas are taken from doc only when it
// carries them, and a stored canvas that fails validation is ignored.
func (c *Controller) Restore(doc board.Document) {
	c.gesture = gesture{}
	c.edit = nil
	c.pendingAt = nil
	c.selected = ""
	c.shapes = board.CloneShapes(doc.Shapes)
	c.history.Reset(c.shapes)
	if doc.Pan != nil {
		c.view.Pan = *doc.Pan
	}
	if doc.Zoom != 0 {
		c.view.Zoom = board.ClampZoom(doc.Zoom)
	}
	if doc.CanvasConfig != nil {
		c.setCanvas(*doc.CanvasConfig)
	}
	c.logger.Debug("board restored", "shapes", len(c.shapes))
}

// LastSaveErr returns the error of the most recent Save event, or nil if
// it succeeded or no save was requested yet.
func (c *Controller) LastSaveErr() error {
	return c.saveErr
}

// Document returns the persisted form of the committed board. Shapes in
// the middle of a gesture are saved at their live position.
func (c *Controller) Document() board.Document {
	return board.NewDocument(c.shapes, c.view, c.canvas)
}

// =============================================================================
// Snapshot
// =============================================================================

// Snapshot is a read-only copy of everything a host needs to draw the
// board and its chrome.
type Snapshot struct {
	Shapes       []board.Shape      `json:"shapes"`
	View         board.View         `json:"view"`
	Canvas       board.CanvasConfig `json:"canvasConfig"`
	Style        board.Style        `json:"style"`
	Tool         Tool               `json:"tool"`
	Selected     string             `json:"selected,omitempty"`
	Editing      *TextEdit          `json:"editing,omitempty"`
	PendingImage *board.Point       `json:"pendingImage,omitempty"`
	PanelOpen    bool               `json:"panelOpen"`
	Saved        bool               `json:"saved"`
	CanUndo      bool               `json:"canUndo"`
	CanRedo      bool               `json:"canRedo"`
	HistoryLen   int                `json:"historyLen"`
	HistoryIndex int                `json:"historyIndex"`
	Viewport     Resize             `json:"viewport"`
}

// Snapshot returns the current state. The shape in the middle of a draw
// gesture is included last.
func (c *Controller) Snapshot() Snapshot {
	shapes := board.CloneShapes(c.shapes)
	if c.gesture.kind == gestureDraw {
		shapes = append(shapes, c.gesture.draft.Clone())
	}
	s := Snapshot{
		Shapes:       shapes,
		View:         c.view,
		Canvas:       c.canvas,
		Style:        c.style,
		Tool:         c.tool,
		Selected:     c.selected,
		PanelOpen:    c.panelOpen,
		Saved:        !c.savedAt.IsZero() && c.now().Sub(c.savedAt) < SavedIndicatorDuration,
		CanUndo:      c.history.CanUndo(),
		CanRedo:      c.history.CanRedo(),
		HistoryLen:   c.history.Len(),
		HistoryIndex: c.history.Index(),
		Viewport:     c.viewport,
	}
	if c.edit != nil {
		e := *c.edit
		s.Editing = &e
	}
	if c.pendingAt != nil {
		p := *c.pendingAt
		s.PendingImage = &p
	}
	return s
}

// Scene returns the render input for the current state.
func (s Snapshot) Scene() render.Scene {
	return render.Scene{
		Shapes:   s.Shapes,
		View:     s.View,
		Canvas:   s.Canvas,
		Selected: s.Selected,
	}
}
