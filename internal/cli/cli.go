// Package cli implements the ttm command-line interface.
//
// Commands:
//   - layout: lay out a talent tree and write the widget JSON (and DOT)
//   - tiers: print the point tiers and dividers of a tree
//   - dot: export a tree as Graphviz DOT with pinned positions
//   - drag: move one talent to a pixel position and write the records
//   - browse: browse the tiers of a tree interactively
//   - serve: run the HTTP layout service
//   - cache: manage the local layout cache
//
// All commands accept --config for a TOML configuration file and --verbose
// for debug logging. Flags override the file.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/TobiasM95/WoW-Talent-Tree-Manager/internal/config"
	"github.com/TobiasM95/WoW-Talent-Tree-Manager/pkg/buildinfo"
	"github.com/TobiasM95/WoW-Talent-Tree-Manager/pkg/cache"
	"github.com/TobiasM95/WoW-Talent-Tree-Manager/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the binary name used for directories and display.
const appName = config.AppName

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	config     config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "ttm lays out talent trees for the tree editor",
		Long:         `ttm turns talent tree records into positioned nodes and edges for the node-graph widget, inserting divider lines between point tiers.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/ttm/config.toml)")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.tiersCommand())
	root.AddCommand(c.dotCommand())
	root.AddCommand(c.dragCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if cfg.Cache.Backend == config.BackendFile && cfg.Cache.Dir == "" {
		if dir, err := cacheDir(); err == nil {
			cfg.Cache.Dir = dir
		}
	}
	c.config = cfg
	c.Logger.Debug("loaded config", "path", c.configPath, "cache", cfg.Cache.Backend)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cache, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, c.config.Cache.Keyer(), c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	cc, err := c.config.Cache.OpenCache(ctx)
	if err != nil {
		if c.config.Cache.Backend == config.BackendFile {
			c.Logger.Warn("cache unavailable, continuing without", "err", err)
			return cache.NewNullCache(), nil
		}
		return nil, fmt.Errorf("open %s cache: %w", c.config.Cache.Backend, err)
	}
	return cc, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/ttm/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	return config.DefaultCacheDir()
}

// outputBase returns the path prefix for generated files: output without its
// extension when given, the input path otherwise.
func outputBase(input, output string) string {
	if output != "" {
		return strings.TrimSuffix(output, filepath.Ext(output))
	}
	if input == "-" {
		return "tree"
	}
	return strings.TrimSuffix(input, filepath.Ext(input))
}

// readPayload reads a tree file, or stdin for "-".
func readPayload(cmd *cobra.Command, path string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// layoutFlags are the layout settings shared by every command that lays out
// a tree.
type layoutFlags struct {
	unit          string
	gridSpacing   float64
	nodeSize      float64
	dividerMargin float64
	dividerOffset float64
	preFilled     bool
	noCache       bool
	refresh       bool
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.unit, "unit", "", "coordinate unit: grid (default), cell")
	cmd.Flags().Float64Var(&f.gridSpacing, "grid-spacing", 0, "grid spacing in pixels (default 40)")
	cmd.Flags().Float64Var(&f.nodeSize, "node-size", 0, "node size in pixels (default 80)")
	cmd.Flags().Float64Var(&f.dividerMargin, "divider-margin", 0, "columns between the tree and divider anchors (default 2)")
	cmd.Flags().Float64Var(&f.dividerOffset, "divider-offset", 0, "row offset of divider anchors (default 0.4)")
	cmd.Flags().BoolVar(&f.preFilled, "prefilled", false, "build view: gold arrows, locked nodes")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "recompute and overwrite cached results")
}

// options merges changed flags over the configured defaults.
func (c *CLI) options(cmd *cobra.Command, f *layoutFlags) pipeline.Options {
	opts := c.config.PipelineOptions()
	flags := cmd.Flags()
	if flags.Changed("unit") {
		opts.Unit = f.unit
	}
	if flags.Changed("grid-spacing") {
		opts.GridSpacing = f.gridSpacing
	}
	if flags.Changed("node-size") {
		opts.NodeSize = f.nodeSize
	}
	if flags.Changed("divider-margin") {
		opts.DividerMargin = &f.dividerMargin
	}
	if flags.Changed("divider-offset") {
		opts.DividerOffset = &f.dividerOffset
	}
	opts.PreFilled = f.preFilled
	opts.Refresh = f.refresh
	opts.Logger = c.Logger
	return opts
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatJSON}
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
