package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ibneal/PersonalWebsite/config"
)

func newConfigCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the resolved configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}

			values := map[string]any{
				"fallback_message":   cfg.FallbackMessage,
				"fetch.timeout":      cfg.FetchTimeout.Round(time.Millisecond),
				"fetch.user_agent":   cfg.UserAgent,
				"render.escape_html": cfg.EscapeHTML,
				"serve.addr":         cfg.ServeAddr,
				"projects":           fmt.Sprintf("%d configured", len(cfg.Projects)),
			}

			out := cmd.OutOrStdout()
			for _, o := range config.Options() {
				fmt.Fprintf(out, "# %s\n%s = %v\n", o.Comment, o.Key, values[o.Key])
			}
			return nil
		},
	}
}
