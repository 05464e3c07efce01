// Package cmd implements the portfolio CLI using Cobra.
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ibneal/PersonalWebsite/config"
	"github.com/ibneal/PersonalWebsite/core"
	"github.com/ibneal/PersonalWebsite/core/fetch"
)

// options holds flags shared by every command.
type options struct {
	configPath string
}

// load resolves and validates the configuration.
func (o *options) load() (*config.Config, error) {
	v := viper.New()
	if o.configPath != "" {
		v.SetConfigFile(o.configPath)
	}
	if err := config.Load(v); err != nil {
		return nil, err
	}
	cfg, err := config.FromViper(v)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config:\n%w", err)
	}
	return cfg, nil
}

// newFetcher builds a fetcher that reads local paths and http(s) URLs.
func newFetcher(cfg *config.Config) core.Fetcher {
	return fetch.NewAuto(
		fetch.New(fetch.WithTimeout(cfg.FetchTimeout), fetch.WithUserAgent(cfg.UserAgent)),
		fetch.NewFile(""),
	)
}

// NewRootCmd builds the portfolio command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "portfolio",
		Short: "portfolio renders project documentation for the site's showcase",
		Long: `portfolio fetches project documentation (markdown files or README pages)
and renders it to HTML fragments, PDF or JSON. It can also serve the project
showcase over HTTP.

Usage:
  portfolio render <path-or-url> [flags]
  portfolio projects [--json]
  portfolio serve [--addr :8080]`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	// --output-dir and --output_dir name the same flag.
	root.SetGlobalNormalizationFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "-", "_"))
	})
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to config file (default: portfolio.yaml in ., $XDG_CONFIG_HOME/portfolio, ~/.config/portfolio)")

	root.AddCommand(
		newRenderCmd(opts),
		newProjectsCmd(opts),
		newServeCmd(opts),
		newConfigCmd(opts),
	)
	return root
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
