package controller

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/matzehuels/sketchboard/pkg/board"
)

// Named keys understood by the controller.
const (
	KeyEnter     = "Enter"
	KeyEscape    = "Escape"
	KeyBackspace = "Backspace"
	KeyDelete    = "Delete"
)

func (c *Controller) key(ctx context.Context, e Key) {
	if c.edit != nil {
		c.editKey(e)
		return
	}
	mod := e.Ctrl || e.Meta
	k := strings.ToLower(e.Key)

	switch {
	case mod && k == "z" && e.Shift, mod && k == "y":
		c.redo()
	case mod && k == "z":
		c.undo()
	case mod && k == "s":
		c.save(ctx)
	case mod || e.Alt:
	case e.Key == KeyDelete || e.Key == KeyBackspace:
		c.deleteSelection()
	case e.Key == KeyEscape:
		c.selected = ""
		c.panelOpen = false
		c.pendingAt = nil
	default:
		if t, ok := toolKeys[k]; ok && !e.Shift {
			c.selectTool(t)
		}
	}
}

// editKey routes a key press to the open text overlay.
func (c *Controller) editKey(e Key) {
	switch e.Key {
	case KeyEnter:
		if c.edit.Kind == board.KindSticky && !e.Ctrl && !e.Meta {
			c.edit.Text += "\n"
			return
		}
		c.commitText()
	case KeyEscape:
		c.edit = nil
	case KeyBackspace:
		if _, size := utf8.DecodeLastRuneInString(c.edit.Text); size > 0 {
			c.edit.Text = c.edit.Text[:len(c.edit.Text)-size]
		}
	default:
		if e.Ctrl || e.Meta || e.Alt || utf8.RuneCountInString(e.Key) != 1 {
			return
		}
		c.edit.Text += e.Key
	}
}

// commitText turns the open overlay into a shape. Blank text is dropped.
func (c *Controller) commitText() {
	edit := c.edit
	c.edit = nil
	if edit == nil || strings.TrimSpace(edit.Text) == "" {
		return
	}
	s := board.NewShape(edit.Kind, edit.X, edit.Y, c.style)
	s.Text = edit.Text
	if s.Type == board.KindSticky && !s.Filled() {
		s.Fill = board.DefaultStickyFill
	}
	c.shapes = append(c.shapes, s)
	c.commit("text", "kind", s.Type)
}
