package cli

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/sketchboard/pkg/board"
	"github.com/matzehuels/sketchboard/pkg/config"
	"github.com/matzehuels/sketchboard/pkg/controller"
	"github.com/matzehuels/sketchboard/pkg/geom"
)

// =============================================================================
// apply
// =============================================================================

// applyCommand replays input events onto the saved board.
func (c *CLI) applyCommand() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "apply <events.jsonl|->",
		Short: "Replay input events onto the saved board",
		Long: `Apply reads controller events (one JSON object or array per line, or a
single JSON array) and dispatches them against the saved board, then saves
the result. Use "-" to read from stdin.

  {"type":"tool","tool":"rect"}
  {"type":"pointerdown","x":10,"y":10}
  {"type":"pointerup","x":120,"y":80}`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			events, err := readEvents(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}

			ws, err := c.openWorkspace(ctx, "")
			if err != nil {
				return err
			}
			defer ws.Close()

			ctrl := c.newController(ctx, ws, controller.Options{})
			before := len(ctrl.Snapshot().Shapes)
			for _, ev := range events {
				ctrl.DispatchContext(ctx, ev)
			}
			snap := ctrl.Snapshot()

			if dryRun {
				printInfo("Applied %d events (not saved)", len(events))
				printBoardStats(snap.Shapes)
				return nil
			}
			if err := ws.adapter.Save(ctx, ctrl.Document()); err != nil {
				return err
			}
			printSuccess("Applied %d events (%d → %d shapes)", len(events), before, len(snap.Shapes))
			printBoardStats(snap.Shapes)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "apply without saving")
	return cmd
}

// readEvents parses an event file. Blank lines and lines starting with #
// are skipped.
func readEvents(path string, stdin io.Reader) ([]controller.Event, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read events: %w", err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return controller.DecodeEvents(trimmed)
	}

	var out []controller.Event
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 32<<20)
	for n := 1; sc.Scan(); n++ {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		evs, err := controller.DecodeEvents(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		out = append(out, evs...)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read events: %w", err)
	}
	return out, nil
}

// =============================================================================
// inspect
// =============================================================================

// inspectCommand prints the saved board as a table.
func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Show the shapes on the saved board",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ws, err := c.openWorkspace(ctx, "")
			if err != nil {
				return err
			}
			defer ws.Close()

			doc, ok := ws.adapter.Load(ctx)
			if !ok {
				printInfo("No saved board at %s", ws.adapter.Location())
				printNextStep("Start drawing", appName+" tui")
				return nil
			}

			printKeyValue("Board", c.cfg.Storage.Board)
			printKeyValue("Location", ws.adapter.Location())
			printKeyValue("Canvas", canvasLabel(doc.Canvas()))
			printKeyValue("View", viewLabel(doc.View()))
			fmt.Fprintln(stdout)
			if len(doc.Shapes) > 0 {
				fmt.Fprintln(stdout, shapeTable(doc.Shapes))
			}
			printBoardStats(doc.Shapes)
			return nil
		},
	}
}

// shapeTable renders shapes in z-order, bottom first.
func shapeTable(shapes []board.Shape) string {
	rows := make([][]string, len(shapes))
	for i, s := range shapes {
		box := geom.BoundingBox(s)
		rows[i] = []string{
			strconv.Itoa(i + 1),
			shortID(s.ID),
			string(s.Type),
			fmt.Sprintf("%.0f, %.0f", box.X, box.Y),
			fmt.Sprintf("%.0f × %.0f", box.W, box.H),
			s.Color,
			excerpt(s),
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "ID", "Type", "Position", "Size", "Color", "Content").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 2:
				return lipgloss.NewStyle().Foreground(colorIndigo)
			case col == 0 || col == 1:
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle()
		}).
		Render()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// excerpt summarizes a shape's payload for the table.
func excerpt(s board.Shape) string {
	switch s.Type {
	case board.KindText, board.KindSticky:
		text := strings.ReplaceAll(s.Text, "\n", " ⏎ ")
		if utf8.RuneCountInString(text) > 24 {
			text = string([]rune(text)[:23]) + "…"
		}
		return strconv.Quote(text)
	case board.KindPencil:
		return fmt.Sprintf("%d points", len(s.Points))
	case board.KindImage:
		return fmt.Sprintf("%d KiB image", len(s.ImageDataURL)/1024)
	}
	return ""
}

// =============================================================================
// clear / store / config
// =============================================================================

// clearCommand deletes the saved board.
func (c *CLI) clearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete the saved board",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ws, err := c.openWorkspace(ctx, "")
			if err != nil {
				return err
			}
			defer ws.Close()

			if _, ok := ws.adapter.Load(ctx); !ok {
				printInfo("No saved board")
				return nil
			}
			if err := ws.adapter.Delete(ctx); err != nil {
				return err
			}
			printSuccess("Deleted board %s", StyleHighlight.Render(c.cfg.Storage.Board))
			return nil
		},
	}
}

// storeCommand groups storage helpers.
func (c *CLI) storeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Inspect board storage",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print where the board is stored",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := c.openWorkspace(cmd.Context(), "")
			if err != nil {
				return err
			}
			defer ws.Close()
			fmt.Fprintln(stdout, ws.adapter.Location())
			return nil
		},
	})
	return cmd
}

// configCommand prints the effective configuration.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as TOML",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.cfg.Encode(stdout)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.configPath
			if path == "" {
				path = config.DefaultPath()
			}
			fmt.Fprintln(stdout, path)
			return nil
		},
	})
	return cmd
}
