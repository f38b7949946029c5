package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"docindex/internal/app"
	"docindex/internal/server"
)

func newServeCmd(e *env) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve index pages over HTTP for preview",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("addr") {
				e.cfg.ListenAddr = addr
			}
			if err := e.cfg.Validate(); err != nil {
				return err
			}

			a, err := app.New(app.Deps{Cfg: e.cfg, Logger: e.logger})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return server.New(e.cfg, a, e.logger).Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (env DOCINDEX_LISTEN_ADDR, default :8080)")
	return cmd
}
