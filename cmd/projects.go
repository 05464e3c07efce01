package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newProjectsCmd(opts *options) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "projects",
		Short: "List the showcased projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				data, err := json.MarshalIndent(cfg.Projects, "", "  ")
				if err != nil {
					return fmt.Errorf("marshaling JSON: %w", err)
				}
				fmt.Fprintln(out, string(data))
				return nil
			}

			for i, p := range cfg.Projects {
				fmt.Fprintf(out, "[%d] %s\n", i, p.Title)
				if len(p.Technologies) > 0 {
					fmt.Fprintf(out, "    %s\n", strings.Join(p.Technologies, ", "))
				}
				if p.HasDocs() {
					fmt.Fprintf(out, "    docs:  %s\n", p.DocURL)
				} else {
					fmt.Fprintf(out, "    embed: %s\n", p.EmbedURL)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}
