// Package cli implements the flowband command-line interface.
//
// This package provides commands for rendering two-column flow diagrams
// from CSV/JSON datasets, inspecting category orderings, serving the
// render pipeline over HTTP, and managing the dataset fetch cache. The
// CLI is built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - render: Generate SVG, PNG, PDF, JSON, or DOT diagrams
//   - order: Print the computed category ordering for a dataset
//   - serve: Run the render pipeline as an HTTP service
//   - cache: Manage the dataset fetch cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers
// are passed through context.Context to allow structured progress
// tracking.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/flowband/flowband/pkg/buildinfo"
	"github.com/flowband/flowband/pkg/cache"
	"github.com/flowband/flowband/pkg/fetch"
	"github.com/flowband/flowband/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "flowband"

// fetchKeyPrefix scopes fetch cache keys by key-format version, so a
// format change invalidates stale entries in shared backends.
const fetchKeyPrefix = "v1:"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config Config
}

// New creates a new CLI instance with a default logger and the user's
// config file applied (missing files are fine).
func New(w io.Writer, level log.Level) *CLI {
	c := &CLI{
		Logger: newLogger(w, level),
	}
	cfg, err := loadConfig()
	if err != nil {
		c.Logger.Warn("ignoring config file", "err", err)
	}
	c.Config = cfg
	return c
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Flowband draws two-column flow diagrams",
		Long:         `Flowband is a CLI tool for drawing weighted flows between two sets of categories as stacked bands, making it easy to see where quantities come from and where they go.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Commands read the logger back with loggerFromContext, so runtime
	// flags applied to c.Logger before execution reach every RunE.
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		return nil
	}

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.orderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. The fetch cache
// backend comes from the config file; --no-cache forces the null cache.
func (c *CLI) newRunner(cmd *cobra.Command, noCache bool) (*pipeline.Runner, error) {
	store, err := c.newFetchCache(cmd, noCache)
	if err != nil {
		return nil, err
	}
	fetcher := fetch.New(
		fetch.WithCache(store),
		fetch.WithKeyer(cache.NewScopedKeyer(nil, fetchKeyPrefix)),
	)
	return pipeline.NewRunner(fetcher, loggerFromContext(cmd.Context())), nil
}

func (c *CLI) newFetchCache(cmd *cobra.Command, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch c.Config.Cache.Backend {
	case "redis":
		return cache.NewRedisCache(cmd.Context(), cache.RedisConfig{
			Addr:     c.Config.Cache.RedisAddr,
			Password: c.Config.Cache.RedisPassword,
		})
	case "mongo":
		return cache.NewMongoCache(cmd.Context(), cache.MongoConfig{
			URI: c.Config.Cache.MongoURI,
		})
	case "none":
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/flowband/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// configPath returns the config file path using XDG standard
// (~/.config/flowband/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// =============================================================================
// Flag Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return splitList(s)
}

// splitList splits a comma-separated flag value, trimming whitespace
// and dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseColors parses repeated "label=#hex" flag values into a color map.
func parseColors(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	colors := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		label, hex, ok := strings.Cut(pair, "=")
		if !ok || label == "" {
			return nil, errColorFlag(pair)
		}
		colors[label] = hex
	}
	return colors, nil
}
