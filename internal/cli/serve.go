package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/sketchboard/pkg/controller"
	"github.com/matzehuels/sketchboard/pkg/server"
)

// serveCommand serves the saved board over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var bind string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the board over HTTP",
		Long: `Serve loads the saved board and exposes it over HTTP. Clients post input
events to /api/events and fetch /api/frame.png to draw; /api/export.png and
/api/export.pdf download the board.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if bind == "" {
				bind = c.cfg.Server.Bind
			}

			ws, err := c.openWorkspace(ctx, "")
			if err != nil {
				return err
			}
			defer ws.Close()

			ctrl := c.newController(ctx, ws, controller.Options{})
			srv := server.New(server.Options{
				Controller: ctrl,
				Renderer:   ws.renderer,
				Logger:     c.Logger,
			})

			printSuccess("Serving %s on %s", StyleHighlight.Render(c.cfg.Storage.Board), StyleValue.Render("http://"+bind))
			printDetail("board stored at %s", ws.adapter.Location())
			return srv.ListenAndServe(ctx, bind)
		},
	}

	cmd.Flags().StringVar(&bind, "bind", "", "listen address (default from config)")
	return cmd
}
