// Package config resolves the portfolio's settings with viper.
// Precedence is defaults < config file < PORTFOLIO_* environment variables.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/ibneal/PersonalWebsite/core"
	"github.com/ibneal/PersonalWebsite/core/fetch"
	"github.com/ibneal/PersonalWebsite/core/showcase"
)

// Config is the resolved configuration.
type Config struct {
	FallbackMessage string
	FetchTimeout    time.Duration
	UserAgent       string
	EscapeHTML      bool
	ServeAddr       string
	Projects        []core.Project
}

// Option is a configuration key, its default and what it controls.
type Option struct {
	Key     string
	Default any
	Comment string
}

// Options returns every configuration key with its default.
func Options() []Option {
	return []Option{
		{Key: "fallback_message", Default: showcase.DefaultFallback, Comment: "Shown in the panel when project documentation fails to load"},
		{Key: "fetch.timeout", Default: fetch.DefaultTimeout.String(), Comment: "Timeout for a single document fetch"},
		{Key: "fetch.user_agent", Default: fetch.DefaultUserAgent, Comment: "User-Agent sent with document fetches"},
		{Key: "render.escape_html", Default: false, Comment: "Escape raw HTML in documents before rendering"},
		{Key: "serve.addr", Default: ":8080", Comment: "HTTP listen address for serve"},
		{Key: "projects", Default: defaultProjects(), Comment: "Showcased projects: title/description/technologies/live_url/github_url/embed_url/doc_url"},
	}
}

func defaultProjects() []map[string]any {
	return []map[string]any{
		{
			"id":    1,
			"title": "GMI Project Dashboard",
			"description": "A comprehensive financial dashboard displaying market status, GMI readings, and daily market data " +
				"with interactive trend analysis. Features real-time market indicators and multi-day rule tracking " +
				"for investment decision support.",
			"technologies": []string{"Python", "Flask", "PostgreSQL", "Financial APIs", "Data Visualization"},
			"live_url":     "https://cultural-lacy-drwishgmi-fda43104.koyeb.app/",
			"github_url":   "https://github.com/ibneal",
			"embed_url":    "https://cultural-lacy-drwishgmi-fda43104.koyeb.app/",
		},
		{
			"id":    2,
			"title": "TensorTradeGMI",
			"description": "A sophisticated reinforcement learning system for GMI-based trading on TQQQ/SQQQ. Uses dual-ticker " +
				"approach with RL agents (PPO, DQN, A2C) to learn optimal entry, exit, pyramiding, and position " +
				"management strategies. Features backtest optimization, comprehensive performance metrics, and " +
				"integration with PostgreSQL GMI database and Polygon.io market data.",
			"technologies": []string{"Python", "Reinforcement Learning", "Stable-Baselines3", "Gymnasium", "PostgreSQL", "Polygon.io API", "PyTorch"},
			"live_url":     "https://github.com/ibneal/TensorTradeGMI",
			"github_url":   "https://github.com/ibneal/TensorTradeGMI",
			"doc_url":      "https://github.com/ibneal/TensorTradeGMI/blob/main/README.md",
		},
	}
}

func applyDefaults(v *viper.Viper) {
	for _, o := range Options() {
		v.SetDefault(o.Key, o.Default)
	}
}

// Load seeds v with defaults, reads the config file if one exists and
// enables environment overrides. A config file set with SetConfigFile must
// exist; the default search locations may be empty.
func Load(v *viper.Viper) error {
	explicit := v.ConfigFileUsed() != ""
	if !explicit {
		v.SetConfigName("portfolio")
		v.AddConfigPath(".")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "portfolio"))
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "portfolio"))
		}
	}

	applyDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	}

	v.SetEnvPrefix("portfolio")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return nil
}

// FromViper builds a Config from a loaded viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	var projects []core.Project
	if err := v.UnmarshalKey("projects", &projects); err != nil {
		return nil, fmt.Errorf("decoding projects: %w", err)
	}
	for i := range projects {
		if projects[i].ID == 0 {
			projects[i].ID = i + 1
		}
	}

	return &Config{
		FallbackMessage: v.GetString("fallback_message"),
		FetchTimeout:    v.GetDuration("fetch.timeout"),
		UserAgent:       v.GetString("fetch.user_agent"),
		EscapeHTML:      v.GetBool("render.escape_html"),
		ServeAddr:       v.GetString("serve.addr"),
		Projects:        projects,
	}, nil
}

// Validate reports every problem with c in a single error.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.FallbackMessage) == "" {
		errs = append(errs, errors.New("fallback_message is required"))
	}
	if c.FetchTimeout <= 0 {
		errs = append(errs, errors.New("fetch.timeout must be greater than 0"))
	}
	if strings.TrimSpace(c.ServeAddr) == "" {
		errs = append(errs, errors.New("serve.addr is required"))
	}

	ids := make(map[int]bool, len(c.Projects))
	for i, p := range c.Projects {
		name := fmt.Sprintf("project %d", i)
		if strings.TrimSpace(p.Title) == "" {
			errs = append(errs, fmt.Errorf("%s: title is required", name))
		} else {
			name = fmt.Sprintf("project %q", p.Title)
		}
		if ids[p.ID] {
			errs = append(errs, fmt.Errorf("%s: duplicate id %d", name, p.ID))
		}
		ids[p.ID] = true

		switch {
		case p.HasDocs():
			// doc_url may be a local path.
			if _, err := url.Parse(p.DocURL); err != nil {
				errs = append(errs, fmt.Errorf("%s: invalid doc_url: %w", name, err))
			}
		case p.EmbedURL == "":
			errs = append(errs, fmt.Errorf("%s: needs doc_url or embed_url", name))
		case !isWebURL(p.EmbedURL):
			errs = append(errs, fmt.Errorf("%s: embed_url must be an http(s) URL", name))
		}
	}
	return errors.Join(errs...)
}

func isWebURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
