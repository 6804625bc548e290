// Package cli implements the sitelen command-line interface.
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

	"github.com/matzehuels/sitelen/pkg/buildinfo"
	"github.com/matzehuels/sitelen/pkg/cache"
	"github.com/matzehuels/sitelen/pkg/observability"
	"github.com/matzehuels/sitelen/pkg/pipeline"
	"github.com/matzehuels/sitelen/pkg/render/sink"
	"github.com/matzehuels/sitelen/pkg/vocab"
)

// appName names the config and cache directories.
const appName = "sitelen"

// Log levels accepted by New.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI carries the state shared by every subcommand: the logger, the
// persistent flags and the config file once it has been read.
type CLI struct {
	Logger *log.Logger

	// configPath overrides the default config file location.
	configPath string
	// vocabPath overrides the vocabulary named in the config file.
	vocabPath string
	verbose   bool

	config *fileConfig
}

// New returns a CLI logging to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand builds the sitelen command tree.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "sitelen lays out toki pona text as compact glyph blocks",
		Long: `sitelen parses toki pona text into grammar trees and packs every
compound into a compact two-dimensional arrangement of glyphs, rendered as
SVG, HTML, JSON, PNG or PDF.`,
		Version:      buildinfo.Get().Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
				hooks := observability.NewLogHooks(c.Logger)
				observability.SetPipelineHooks(hooks)
				observability.SetCacheHooks(hooks)
			}
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: ~/.config/sitelen/config.toml)")
	root.PersistentFlags().StringVar(&c.vocabPath, "vocab", "", "vocabulary TOML file (default: built-in)")

	root.AddCommand(
		c.parseCommand(),
		c.layoutCommand(),
		c.visualizeCommand(),
		c.renderCommand(),
		c.treeCommand(),
		c.previewCommand(),
		c.serveCommand(),
		c.cacheCommand(),
		c.completionCommand(),
	)
	registerCompletions(root)

	return root
}

// newRunner wires the configured vocabulary, cache and key prefix into a
// pipeline runner.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	v, err := c.vocabulary(cfg)
	if err != nil {
		return nil, err
	}
	cc, err := c.newCache(ctx, cfg, noCache)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if cfg.Cache.Prefix != "" {
		keyer = cache.Scoped(nil, cfg.Cache.Prefix)
	}
	return pipeline.NewRunner(cc, keyer, c.Logger, v), nil
}

// newCache prefers Redis when configured, then the file cache. A missing
// user cache directory disables caching rather than failing.
func (c *CLI) newCache(ctx context.Context, cfg *fileConfig, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if cfg.Cache.Redis != "" {
		rc, err := cache.NewRedisCache(ctx, cfg.Cache.Redis)
		if err != nil {
			return nil, fmt.Errorf("connect redis cache: %w", err)
		}
		return rc, nil
	}
	dir := cfg.Cache.Dir
	if dir == "" {
		d, err := cache.DefaultDir()
		if err != nil {
			c.Logger.Debug("no cache directory, caching disabled", "err", err)
			return cache.NewNullCache(), nil
		}
		dir = d
	}
	return cache.NewFileCache(expandHome(dir))
}

// vocabulary returns the vocabulary named by --vocab or the config file,
// falling back to the built-in tables.
func (c *CLI) vocabulary(cfg *fileConfig) (*vocab.Vocabulary, error) {
	path := c.vocabPath
	if path == "" {
		path = cfg.Vocabulary.Path
	}
	if path == "" {
		return vocab.Default(), nil
	}
	f, err := os.Open(expandHome(path))
	if err != nil {
		return nil, fmt.Errorf("open vocabulary: %w", err)
	}
	defer f.Close()
	v, err := vocab.Load(f)
	if err != nil {
		return nil, fmt.Errorf("load vocabulary %s: %w", path, err)
	}
	c.Logger.Debug("loaded vocabulary", "path", path, "words", len(v.Words))
	return v, nil
}

// configDir returns $XDG_CONFIG_HOME/sitelen, or ~/.config/sitelen.
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

func expandHome(path string) string {
	rest, ok := strings.CutPrefix(path, "~/")
	if !ok {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, rest)
}

// newOptions returns pipeline options seeded from the config file.
func (c *CLI) newOptions() (pipeline.Options, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return pipeline.Options{}, err
	}
	opts := pipeline.DefaultOptions()
	opts.Render = cfg.Render
	opts.Logger = c.Logger
	if cfg.MaxSiblings > 0 {
		opts.MaxSiblings = cfg.MaxSiblings
	}
	if cfg.Sprite != "" {
		s, err := readSprite(cfg.Sprite)
		if err != nil {
			return pipeline.Options{}, err
		}
		opts.Sprite = s
	}
	return opts, nil
}

// parseFormats splits a --format value such as "svg, PNG" into lowercase
// names.
func parseFormats(s string) []string {
	if s == "" {
		return append([]string(nil), pipeline.DefaultFormats...)
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		out = append(out, strings.ToLower(strings.TrimSpace(f)))
	}
	return out
}

func readSprite(path string) (sink.Sprite, error) {
	f, err := os.Open(expandHome(path))
	if err != nil {
		return nil, fmt.Errorf("open sprite: %w", err)
	}
	defer f.Close()
	return sink.LoadSprite(f)
}
