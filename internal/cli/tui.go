package cli

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"unicode"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/sketchboard/pkg/board"
	"github.com/matzehuels/sketchboard/pkg/controller"
	"github.com/matzehuels/sketchboard/pkg/panel"
	"github.com/matzehuels/sketchboard/pkg/render"
)

// Each terminal cell stands for cellWidth×cellHeight screen pixels and
// shows them as a 2×4 braille dot matrix.
const (
	cellWidth  = 8
	cellHeight = 16
	dotWidth   = cellWidth / 2
	dotHeight  = cellHeight / 4

	// inkContrast is the luma difference from the background that lights
	// a dot. Background patterns stay below it.
	inkContrast = 0.3

	panelWidth = 30
)

// brailleBits maps a dot (column, row) in a cell to its bit in U+2800.
var brailleBits = [2][4]rune{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

var (
	tuiToolStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorIndigo)
	tuiStatusStyle = lipgloss.NewStyle().Foreground(colorGray)
	tuiSavedStyle  = lipgloss.NewStyle().Foreground(colorGreen)
	tuiErrorStyle  = lipgloss.NewStyle().Foreground(colorRed)
	tuiPanelStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1)
	tuiCursorStyle = lipgloss.NewStyle().Foreground(colorIndigo).Bold(true)
)

// penColors are the stroke colors on the number keys.
var penColors = []string{"#1e1e1e", "#e03131", "#2f9e44", "#1971c2", "#f08c00", "#9c36b5"}

// tuiCommand opens the board in the terminal.
func (c *CLI) tuiCommand() *cobra.Command {
	var style string

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Draw on the board in the terminal",
		Long: `Open the saved board in a full-screen terminal view. The board is drawn in
braille dots; draw with the mouse and switch tools with the letter keys:

  v select  h pan  p pencil  r rect  o ellipse  d diamond  l line
  a arrow   t text s sticky  i image e eraser

ctrl+z undo, ctrl+y redo, ctrl+s save, tab canvas panel, +/- zoom,
1-6 pen color, [ and ] stroke width, q quit.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ws, err := c.openWorkspace(ctx, style)
			if err != nil {
				return err
			}
			defer ws.Close()

			// Log lines would tear the alternate screen.
			c.Logger.SetOutput(io.Discard)
			defer c.Logger.SetOutput(os.Stderr)

			var prog atomic.Pointer[tea.Program]
			redraw := func() {
				if p := prog.Load(); p != nil {
					p.Send(redrawMsg{})
				}
			}
			ws.renderer.Images().SetOnReady(redraw)
			ctrl := c.newController(ctx, ws, controller.Options{OnRedraw: redraw})

			p := tea.NewProgram(newBoardModel(ctrl, ws.renderer),
				tea.WithContext(ctx),
				tea.WithAltScreen(),
				tea.WithMouseAllMotion(),
			)
			prog.Store(p)
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("tui: %w", err)
			}

			snap := ctrl.Snapshot()
			printBoardStats(snap.Shapes)
			if snap.CanUndo && !snap.Saved {
				printNextStep("Keep your changes next time", "ctrl+s before quitting")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&style, "style", "", "outline style: "+strings.Join(render.StyleNames, ", "))
	return cmd
}

// =============================================================================
// boardModel - Interactive board
// =============================================================================

type redrawMsg struct{}

// imageReadyMsg carries a prepared image back from readImageCmd. seq ties
// it to the prompt that asked for it.
type imageReadyMsg struct {
	seq    int
	chosen controller.ImageChosen
	err    error
}

type promptKind int

const (
	promptNone promptKind = iota
	promptText
	promptImage
)

// boardModel is the bubbletea model for the terminal board. All board
// state lives in the controller; the model only translates terminal input
// and draws snapshots.
type boardModel struct {
	ctrl     *controller.Controller
	renderer *render.Renderer

	width, height int

	prompt promptKind
	input  textinput.Model
	path   textinput.Model

	presetCursor int
	status       string

	imageSeq     int
	imageLoading bool
}

func newBoardModel(ctrl *controller.Controller, r *render.Renderer) boardModel {
	input := textinput.New()
	input.Prompt = "text › "
	input.Placeholder = "type, enter to place"

	path := textinput.New()
	path.Prompt = "image › "
	path.Placeholder = "path to a png, jpeg or gif"

	return boardModel{ctrl: ctrl, renderer: r, input: input, path: path}
}

func (m boardModel) Init() tea.Cmd {
	return nil
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
	case tea.MouseMsg:
		m.mouse(msg)
	case tea.KeyMsg:
		var quit bool
		if m, cmd, quit = m.key(msg); quit {
			return m, tea.Quit
		}
	case imageReadyMsg:
		m.imageReady(msg)
	case redrawMsg:
	}
	return m.syncPrompt(cmd)
}

// boardSize returns the board area in cells.
func (m boardModel) boardSize() (cols, rows int) {
	cols, rows = m.width, m.height-2
	if m.ctrl.Snapshot().PanelOpen {
		cols -= panelWidth
	}
	return max(cols, 1), max(rows, 1)
}

func (m boardModel) resize() {
	cols, rows := m.boardSize()
	m.ctrl.Dispatch(controller.Resize{Width: cols * cellWidth, Height: rows * cellHeight})
}

// mouse feeds a mouse event to the controller at the center of its cell.
func (m boardModel) mouse(msg tea.MouseMsg) {
	cols, rows := m.boardSize()
	x := float64(msg.X*cellWidth + cellWidth/2)
	y := float64(msg.Y*cellHeight + cellHeight/2)
	inside := msg.X < cols && msg.Y < rows

	switch msg.Action {
	case tea.MouseActionPress:
		if !inside {
			return
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.ctrl.Dispatch(controller.Wheel{DeltaY: -1})
		case tea.MouseButtonWheelDown:
			m.ctrl.Dispatch(controller.Wheel{DeltaY: 1})
		case tea.MouseButtonLeft:
			m.ctrl.Dispatch(controller.PointerDown{X: x, Y: y, Button: controller.ButtonLeft, PanModifier: msg.Alt})
		case tea.MouseButtonMiddle:
			m.ctrl.Dispatch(controller.PointerDown{X: x, Y: y, Button: controller.ButtonMiddle})
		case tea.MouseButtonRight:
			m.ctrl.Dispatch(controller.PointerDown{X: x, Y: y, Button: controller.ButtonRight})
		}
	case tea.MouseActionMotion:
		m.ctrl.Dispatch(controller.PointerMove{X: x, Y: y})
	case tea.MouseActionRelease:
		m.ctrl.Dispatch(controller.PointerUp{X: x, Y: y})
	}
}

// key handles a key press and reports whether to quit.
func (m boardModel) key(msg tea.KeyMsg) (boardModel, tea.Cmd, bool) {
	if msg.Type == tea.KeyCtrlC {
		return m, nil, true
	}
	m.status = ""

	switch m.prompt {
	case promptText:
		return m.textKey(msg)
	case promptImage:
		return m.imageKey(msg)
	}

	snap := m.ctrl.Snapshot()
	if snap.PanelOpen && m.panelKey(msg, snap.Canvas) {
		return m, nil, false
	}

	switch msg.String() {
	case "q":
		return m, nil, true
	case "tab":
		m.ctrl.Dispatch(controller.TogglePanel{})
		m.resize()
		return m, nil, false
	case "+", "=":
		m.ctrl.Dispatch(controller.Wheel{DeltaY: -1})
		return m, nil, false
	case "-":
		m.ctrl.Dispatch(controller.Wheel{DeltaY: 1})
		return m, nil, false
	case "[":
		m.ctrl.Dispatch(controller.SetStyle{StrokeWidth: max(snap.Style.StrokeWidth-1, 1)})
		return m, nil, false
	case "]":
		m.ctrl.Dispatch(controller.SetStyle{StrokeWidth: min(snap.Style.StrokeWidth+1, 12)})
		return m, nil, false
	case "1", "2", "3", "4", "5", "6":
		m.ctrl.Dispatch(controller.SetStyle{Color: penColors[msg.Runes[0]-'1']})
		return m, nil, false
	}

	if ev, ok := keyEvent(msg); ok {
		wasOpen := snap.PanelOpen
		m.ctrl.Dispatch(ev)
		if wasOpen != m.ctrl.Snapshot().PanelOpen {
			m.resize()
		}
	}
	return m, nil, false
}

func (m boardModel) textKey(msg tea.KeyMsg) (boardModel, tea.Cmd, bool) {
	switch msg.Type {
	case tea.KeyEnter:
		m.ctrl.Dispatch(controller.TextChanged{Text: m.input.Value()})
		m.ctrl.Dispatch(controller.TextCommit{})
		return m, nil, false
	case tea.KeyEsc:
		m.ctrl.Dispatch(controller.TextCancel{})
		return m, nil, false
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.ctrl.Dispatch(controller.TextChanged{Text: m.input.Value()})
	return m, cmd, false
}

func (m boardModel) imageKey(msg tea.KeyMsg) (boardModel, tea.Cmd, bool) {
	switch msg.Type {
	case tea.KeyEnter:
		if m.imageLoading {
			return m, nil, false
		}
		m.imageSeq++
		m.imageLoading = true
		m.status = "loading image..."
		return m, readImageCmd(m.imageSeq, m.path.Value()), false
	case tea.KeyEsc:
		m.imageSeq++
		m.imageLoading = false
		m.ctrl.Dispatch(controller.ImageCancel{})
		return m, nil, false
	}
	if m.imageLoading {
		return m, nil, false
	}
	var cmd tea.Cmd
	m.path, cmd = m.path.Update(msg)
	return m, cmd, false
}

// imageReady places a prepared image, or reports why it could not be read.
// Results from a cancelled prompt are dropped.
func (m *boardModel) imageReady(msg imageReadyMsg) {
	if msg.seq != m.imageSeq || !m.imageLoading {
		return
	}
	m.imageLoading = false
	if msg.err != nil {
		m.status = msg.err.Error()
		m.ctrl.Dispatch(controller.ImageCancel{})
		return
	}
	m.status = ""
	m.ctrl.Dispatch(msg.chosen)
}

// readImageCmd reads and downsamples the image off the input loop.
func readImageCmd(seq int, path string) tea.Cmd {
	return func() tea.Msg {
		chosen, err := readImage(path)
		return imageReadyMsg{seq: seq, chosen: chosen, err: err}
	}
}

func readImage(path string) (controller.ImageChosen, error) {
	data, err := os.ReadFile(expandPath(strings.TrimSpace(path)))
	if err != nil {
		return controller.ImageChosen{}, err
	}
	return controller.PrepareImage(data)
}

func expandPath(p string) string {
	if rest, ok := strings.CutPrefix(p, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, rest)
		}
	}
	return p
}

// panelKey handles keys for the open canvas panel and reports whether the
// key was consumed.
func (m *boardModel) panelKey(msg tea.KeyMsg, cfg board.CanvasConfig) bool {
	switch msg.String() {
	case "up":
		m.presetCursor = max(m.presetCursor-1, 0)
	case "down":
		m.presetCursor = min(m.presetCursor+1, len(panel.SizePresets)-1)
	case "enter":
		m.ctrl.Dispatch(controller.ApplyPreset{Name: panel.SizePresets[m.presetCursor].Name})
	case "b":
		cfg.BgColor = nextBackground(cfg.BgColor)
		m.ctrl.Dispatch(controller.SetCanvas{Config: cfg})
	case "g":
		cfg.BgPattern = nextPattern(cfg.BgPattern)
		m.ctrl.Dispatch(controller.SetCanvas{Config: cfg})
	case "x":
		cfg.ShowBorder = !cfg.ShowBorder
		m.ctrl.Dispatch(controller.SetCanvas{Config: cfg})
	default:
		return false
	}
	return true
}

func nextBackground(current string) string {
	all := append(append([]panel.ColorPreset{}, panel.LightBackgrounds...), panel.DarkBackgrounds...)
	for i, p := range all {
		if strings.EqualFold(p.Color, current) {
			return all[(i+1)%len(all)].Color
		}
	}
	return all[0].Color
}

func nextPattern(current board.Pattern) board.Pattern {
	for i, p := range board.Patterns {
		if p == current {
			return board.Patterns[(i+1)%len(board.Patterns)]
		}
	}
	return board.Patterns[0]
}

// syncPrompt opens or closes the input line to follow the controller's
// text overlay and pending image.
func (m boardModel) syncPrompt(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	snap := m.ctrl.Snapshot()
	switch {
	case snap.Editing != nil:
		if m.prompt != promptText {
			m.prompt = promptText
			m.path.Blur()
			m.input.SetValue(snap.Editing.Text)
			focus := m.input.Focus()
			return m, tea.Batch(cmd, focus)
		}
	case snap.PendingImage != nil:
		if m.prompt != promptImage {
			m.prompt = promptImage
			m.input.Blur()
			m.path.Reset()
			focus := m.path.Focus()
			return m, tea.Batch(cmd, focus)
		}
	default:
		m.prompt = promptNone
		m.input.Blur()
		m.path.Blur()
	}
	return m, cmd
}

// keyEvent translates a terminal key into a controller key press.
func keyEvent(msg tea.KeyMsg) (controller.Key, bool) {
	switch msg.Type {
	case tea.KeyEnter:
		return controller.Key{Key: controller.KeyEnter, Alt: msg.Alt}, true
	case tea.KeyEsc:
		return controller.Key{Key: controller.KeyEscape}, true
	case tea.KeyBackspace:
		return controller.Key{Key: controller.KeyBackspace}, true
	case tea.KeyDelete:
		return controller.Key{Key: controller.KeyDelete}, true
	case tea.KeyCtrlZ:
		return controller.Key{Key: "z", Ctrl: true}, true
	case tea.KeyCtrlY:
		return controller.Key{Key: "y", Ctrl: true}, true
	case tea.KeyCtrlS:
		return controller.Key{Key: "s", Ctrl: true}, true
	case tea.KeyRunes:
		if len(msg.Runes) != 1 {
			return controller.Key{}, false
		}
		r := msg.Runes[0]
		return controller.Key{Key: string(r), Shift: unicode.IsUpper(r), Alt: msg.Alt}, true
	}
	return controller.Key{}, false
}

// =============================================================================
// View
// =============================================================================

func (m boardModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	snap := m.ctrl.Snapshot()
	cols, rows := m.boardSize()

	frame := m.renderer.Frame(snap.Scene(), cols*cellWidth, rows*cellHeight)
	canvas := strings.Join(brailleRows(frame, render.ParseColor(snap.Canvas.BgColor), cols, rows), "\n")
	if snap.PanelOpen {
		canvas = lipgloss.JoinHorizontal(lipgloss.Top, canvas, m.panelView(snap.Canvas, rows))
	}
	return canvas + "\n" + m.promptLine() + "\n" + statusLine(snap, m.status)
}

func (m boardModel) promptLine() string {
	switch m.prompt {
	case promptText:
		return m.input.View()
	case promptImage:
		return m.path.View()
	}
	return ""
}

func (m boardModel) panelView(cfg board.CanvasConfig, rows int) string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render("Canvas") + "\n\n")
	for i, p := range panel.SizePresets {
		line := "  " + p.Label
		if i == m.presetCursor {
			line = tuiCursorStyle.Render("› " + p.Label)
		}
		if p.Width == cfg.Width && p.Height == cfg.Height {
			line += StyleDim.Render(" •")
		}
		b.WriteString(line + "\n")
	}
	fmt.Fprintf(&b, "\n%s %s\n", StyleDim.Render("bg"), cfg.BgColor)
	fmt.Fprintf(&b, "%s %s\n", StyleDim.Render("pattern"), cfg.BgPattern)
	fmt.Fprintf(&b, "%s %t\n\n", StyleDim.Render("border"), cfg.ShowBorder)
	b.WriteString(StyleDim.Render("enter size  b bg\ng pattern   x border"))
	return tuiPanelStyle.Width(panelWidth - 2).Height(max(rows-2, 1)).Render(b.String())
}

func statusLine(snap controller.Snapshot, status string) string {
	parts := []string{
		tuiToolStyle.Render(string(snap.Tool)),
		fmt.Sprintf("%.0f%%", snap.View.Zoom*100),
		fmt.Sprintf("%d shapes", len(snap.Shapes)),
		canvasLabel(snap.Canvas),
		fmt.Sprintf("pen %s %.0fpx", snap.Style.Color, snap.Style.StrokeWidth),
	}
	line := tuiStatusStyle.Render(strings.Join(parts, " · "))
	if snap.Saved {
		line += "  " + tuiSavedStyle.Render("✓ saved")
	}
	if status != "" {
		line += "  " + tuiErrorStyle.Render(status)
	}
	return line
}

// brailleRows converts img to cols×rows braille cells. A dot is lit when
// any pixel in its block differs enough from bg.
func brailleRows(img image.Image, bg color.Color, cols, rows int) []string {
	b := img.Bounds()
	bgLuma := luma(bg)
	ink := func(x0, y0 int) bool {
		for y := y0; y < y0+dotHeight && y < b.Max.Y; y++ {
			for x := x0; x < x0+dotWidth && x < b.Max.X; x++ {
				if d := luma(img.At(x, y)) - bgLuma; d > inkContrast || d < -inkContrast {
					return true
				}
			}
		}
		return false
	}

	out := make([]string, rows)
	line := make([]rune, cols)
	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < cols; cx++ {
			r := rune(0x2800)
			for dx := 0; dx < 2; dx++ {
				for dy := 0; dy < 4; dy++ {
					if ink(b.Min.X+cx*cellWidth+dx*dotWidth, b.Min.Y+cy*cellHeight+dy*dotHeight) {
						r |= brailleBits[dx][dy]
					}
				}
			}
			line[cx] = r
		}
		out[cy] = string(line)
	}
	return out
}

// luma returns the perceived brightness of c in [0, 1], composited on
// white.
func luma(c color.Color) float64 {
	r, g, b, a := c.RGBA()
	white := float64(0xffff - a)
	return (0.299*(float64(r)+white) + 0.587*(float64(g)+white) + 0.114*(float64(b)+white)) / 0xffff
}
