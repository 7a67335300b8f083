package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/openscad-forge/customizer/internal/server"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the JSON API server",
		Long: `Serve the parser, visibility evaluator, emitter, and preset store
over HTTP, for front-ends that render the Customizer panel remotely.

Endpoints are mounted under /api: POST /api/parse, POST /api/visibility,
POST /api/emit, and GET/POST/DELETE /api/presets.`,
		Example: `  customizer serve
  customizer serve --port 9000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx := NewCommandContext(cmd)

			store, cleanup, err := cmdCtx.OpenStore()
			if err != nil {
				return err
			}
			defer cleanup()

			srv := server.New(server.Config{
				Store:  store,
				Port:   cmdCtx.Cfg.Port,
				Logger: cmdCtx.Logger,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cmdCtx.Logger.Info("starting API server", "port", cmdCtx.Cfg.Port)
			return srv.Serve(ctx)
		},
	}
	return cmd
}
