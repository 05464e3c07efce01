// render command: runs one document through the pipeline
// fetch → extract → normalize → render → write.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ibneal/PersonalWebsite/config"
	"github.com/ibneal/PersonalWebsite/core"
	"github.com/ibneal/PersonalWebsite/core/extract"
	"github.com/ibneal/PersonalWebsite/core/normalize"
	"github.com/ibneal/PersonalWebsite/core/output"
	"github.com/ibneal/PersonalWebsite/core/render"
	"github.com/ibneal/PersonalWebsite/core/showcase"
)

type renderFlags struct {
	html      bool
	safe      bool
	gfm       bool
	pdf       bool
	json      bool
	escape    bool
	outputDir string
	stdout    bool
}

var formatFlags = []string{"html", "safe", "gfm", "pdf", "json"}

func newRenderCmd(opts *options) *cobra.Command {
	flags := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "render <path-or-url>",
		Short: "Render a markdown document or README page",
		Long: `Render fetches a document, reduces HTML pages to their main content,
and renders the markdown to the selected format. HTML is the default.

Examples:
  portfolio render README.md --stdout
  portfolio render https://github.com/ibneal/TensorTradeGMI/blob/main/README.md --safe
  portfolio render docs/setup.md --pdf --output_dir ./out`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("escape") {
				flags.escape = cfg.EscapeHTML
			}
			return runRender(cmd, cfg, flags, args[0])
		},
	}

	cmd.Flags().BoolVar(&flags.html, "html", false, "Output an HTML fragment (default)")
	cmd.Flags().BoolVar(&flags.safe, "safe", false, "Output sanitized HTML")
	cmd.Flags().BoolVar(&flags.gfm, "gfm", false, "Output HTML rendered as GitHub Flavored Markdown")
	cmd.Flags().BoolVar(&flags.pdf, "pdf", false, "Output PDF")
	cmd.Flags().BoolVar(&flags.json, "json", false, "Output structured JSON")
	cmd.MarkFlagsMutuallyExclusive(formatFlags...)

	cmd.Flags().BoolVar(&flags.escape, "escape", false, "Escape raw HTML in the document (default from render.escape_html)")
	cmd.Flags().StringVar(&flags.outputDir, "output_dir", "", "Output directory (default: current directory)")
	cmd.Flags().BoolVar(&flags.stdout, "stdout", false, "Write to stdout instead of a file")
	return cmd
}

func runRender(cmd *cobra.Command, cfg *config.Config, flags *renderFlags, source string) error {
	renderer := selectRenderer(flags)

	loader := showcase.NewLoader(newFetcher(cfg), extract.New(), normalize.New())
	src, err := loader.Load(cmd.Context(), source)
	if err != nil {
		fmt.Fprintln(cmd.OutOrStdout(), cfg.FallbackMessage)
		return fmt.Errorf("loading %s: %w", source, err)
	}

	data, err := renderer.Render(src.Markdown, src.Meta)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	if flags.stdout {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}

	writer, err := output.New(flags.outputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}
	path, err := writer.Write(source, data, renderer.Extension())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Written: %s\n", path)
	return nil
}

// selectRenderer creates the Renderer chosen by flags.
func selectRenderer(flags *renderFlags) core.Renderer {
	switch {
	case flags.safe:
		return render.NewSanitizedHTMLRenderer()
	case flags.gfm:
		return render.NewGFMRenderer(!flags.escape)
	case flags.pdf:
		return render.NewPDFRenderer()
	case flags.json:
		return render.NewJSONRenderer(flags.escape)
	default:
		return render.NewHTMLRenderer(flags.escape)
	}
}
