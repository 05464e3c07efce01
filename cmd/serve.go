package cmd

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ibneal/PersonalWebsite/core/showcase"
	"github.com/ibneal/PersonalWebsite/server"
)

func newServeCmd(opts *options) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the project showcase over HTTP",
		Long: `Serve exposes the showcase panel:

  GET /projects                  configured projects (JSON)
  GET /projects/{index}          select a project and return its view (JSON)
  GET /projects/{index}/content  select a project and return its markup
  GET /projects/current          the last committed view (JSON)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.ServeAddr
			}

			logger := log.New(cmd.ErrOrStderr(), "", log.LstdFlags)
			panel := showcase.New(cfg.Projects, newFetcher(cfg),
				showcase.WithFallback(cfg.FallbackMessage),
				showcase.WithEscapeHTML(cfg.EscapeHTML),
				showcase.WithLogger(logger),
			)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Fprintf(cmd.OutOrStdout(), "Serving %d projects on %s\n", len(cfg.Projects), addr)
			return server.New(panel, logger).Run(ctx, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides serve.addr)")
	return cmd
}
