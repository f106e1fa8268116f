// Package cli implements the sketchboard command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/sketchboard/pkg/buildinfo"
	"github.com/matzehuels/sketchboard/pkg/config"
	"github.com/matzehuels/sketchboard/pkg/controller"
	"github.com/matzehuels/sketchboard/pkg/observability"
	"github.com/matzehuels/sketchboard/pkg/persist"
	"github.com/matzehuels/sketchboard/pkg/render"
	"github.com/matzehuels/sketchboard/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

const appName = "sketchboard"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	cfg        config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Sketchboard is a hand-drawn style whiteboard",
		Long:         `Sketchboard is a whiteboard with a hand-drawn look. Draw in the terminal, serve the board over HTTP, replay input events and export pages as PNG or PDF.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default "+config.DefaultPath()+")")

	root.AddCommand(c.tuiCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.applyCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.clearCommand())
	root.AddCommand(c.storeCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the config file and prepares the command context.
func (c *CLI) setup(cmd *cobra.Command) error {
	path := c.configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	c.cfg = cfg

	if c.Logger.GetLevel() <= log.DebugLevel {
		hooks := &logHooks{logger: c.Logger}
		observability.SetHistoryHooks(hooks)
		observability.SetStoreHooks(hooks)
		observability.SetRenderHooks(hooks)
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(withLogger(ctx, c.Logger))
	return nil
}

// =============================================================================
// Board Workspace
// =============================================================================

// workspace bundles the storage and rendering a command works with.
type workspace struct {
	store    store.Store
	adapter  *persist.Adapter
	renderer *render.Renderer
}

// openWorkspace connects to the configured storage backend.
func (c *CLI) openWorkspace(ctx context.Context, styleName string) (*workspace, error) {
	if styleName == "" {
		styleName = c.cfg.Render.Style
	}
	style, err := render.ParseStyle(styleName)
	if err != nil {
		return nil, err
	}

	s, err := store.Open(ctx, c.cfg.StoreOptions())
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", c.cfg.Storage.Backend, err)
	}
	renderer := render.New(render.WithStyle(style), render.WithLogger(c.Logger))
	adapter := persist.New(s, c.cfg.BoardKey(), c.Logger)
	adapter.Images = renderer.Images()

	return &workspace{store: s, adapter: adapter, renderer: renderer}, nil
}

func (w *workspace) Close() error {
	return w.store.Close()
}

// newController creates a controller wired to the workspace and seeded
// with the saved board, if there is one.
func (c *CLI) newController(ctx context.Context, w *workspace, opts controller.Options) *controller.Controller {
	canvas := c.cfg.BoardCanvas()
	opts.Logger = c.Logger
	opts.Persister = w.adapter
	opts.Canvas = &canvas
	opts.HistoryLimit = c.cfg.History.Limit
	ctrl := controller.New(opts)
	ctrl.DispatchContext(ctx, controller.Load{})
	return ctrl
}
