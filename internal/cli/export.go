package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sketchboard/pkg/board"
	"github.com/matzehuels/sketchboard/pkg/errors"
	"github.com/matzehuels/sketchboard/pkg/persist"
	"github.com/matzehuels/sketchboard/pkg/render"
	"github.com/matzehuels/sketchboard/pkg/sink"
)

// exportOptions holds flags for the export command.
type exportOptions struct {
	output  string
	formats string
	style   string
	width   int
	height  int
}

// exportCommand renders the saved board to files.
func (c *CLI) exportCommand() *cobra.Command {
	opts := exportOptions{width: 1280, height: 720}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the saved board as PNG or PDF",
		Long: `Export renders the saved board. A finite canvas exports as its page at
exactly its configured size; an infinite canvas exports the saved view at
--width x --height. Files are named like whiteboard-794x1123-<millis>.png
unless -o is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.formats == "" {
				opts.formats = c.cfg.Export.Format
			}
			formats, err := sink.ParseFormats(opts.formats)
			if err != nil {
				return err
			}
			return c.runExport(cmd, opts, formats)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (extension replaced per format)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "formats: png, pdf (comma-separated)")
	cmd.Flags().StringVar(&opts.style, "style", "", "outline style: "+strings.Join(render.StyleNames, ", "))
	cmd.Flags().IntVar(&opts.width, "width", opts.width, "viewport width for infinite canvases")
	cmd.Flags().IntVar(&opts.height, "height", opts.height, "viewport height for infinite canvases")
	return cmd
}

func (c *CLI) runExport(cmd *cobra.Command, opts exportOptions, formats []sink.Format) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	ws, err := c.openWorkspace(ctx, opts.style)
	if err != nil {
		return err
	}
	defer ws.Close()

	doc, ok := ws.adapter.Load(ctx)
	if !ok {
		printWarning("No saved board; exporting an empty %s canvas", canvasLabel(c.cfg.BoardCanvas()))
		doc = board.NewDocument(nil, board.DefaultView(), c.cfg.BoardCanvas())
	}

	canvas := c.cfg.BoardCanvas()
	if doc.CanvasConfig != nil {
		canvas = *doc.CanvasConfig
	}

	spinner := newSpinnerWithContext(ctx, "Rendering board...")
	spinner.Start()
	img, err := persist.ExportRaster(ctx, ws.renderer, render.Scene{
		Shapes: doc.Shapes,
		View:   doc.View(),
		Canvas: canvas,
	}, opts.width, opts.height)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}

	now := time.Now()
	var written []string
	for _, f := range formats {
		spinner.SetMessage("Encoding " + string(f) + "...")
		path := c.exportPath(opts.output, canvas, now, f)
		if err := errors.ValidateExportPath(path); err != nil {
			spinner.Stop()
			return err
		}
		data, err := sink.Encode(f, img)
		if err != nil {
			spinner.StopWithError("Encoding " + string(f) + " failed")
			return err
		}
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				spinner.Stop()
				return fmt.Errorf("create output dir: %w", err)
			}
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			spinner.Stop()
			return fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}
	spinner.Stop()

	b := img.Bounds()
	printSuccess("Exported %d×%d board", b.Dx(), b.Dy())
	for _, p := range written {
		printFile(p)
	}
	prog.done(fmt.Sprintf("Exported %d files", len(written)))
	return nil
}

// exportPath picks the file for format f. An explicit output keeps its
// base name with the format's extension.
func (c *CLI) exportPath(output string, cfg board.CanvasConfig, t time.Time, f sink.Format) string {
	if output == "" {
		return filepath.Join(c.cfg.Export.Dir, persist.ExportName(cfg, t, string(f)))
	}
	return strings.TrimSuffix(output, filepath.Ext(output)) + "." + string(f)
}
