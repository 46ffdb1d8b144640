// Package cli implements the slidelint command-line interface.
//
// Commands:
//   - check: report overlapping, contained and out-of-bounds elements
//   - relations: print the pairwise relation table of a slide
//   - align / distribute: rearrange elements and write the deck back out
//   - canvas: print resolved slide sizes
//   - graph: draw a slide's relations as DOT or SVG
//   - serve: run the HTTP API
//   - cache, config, completion: housekeeping
//
// All commands take --verbose (-v) for debug logging. Logs go to stderr;
// diagnostics and data go to stdout.
package cli

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/slidelint/pkg/buildinfo"
	"github.com/matzehuels/slidelint/pkg/cache"
	"github.com/matzehuels/slidelint/pkg/observability"
	"github.com/matzehuels/slidelint/pkg/pipeline"
	"github.com/matzehuels/slidelint/pkg/slide"
)

// =============================================================================
// Constants
// =============================================================================

const appName = "slidelint"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// ErrFindings is returned by check when it found something reportable and
// --strict is set. main exits 1 without printing it.
var ErrFindings = errors.New("findings reported")

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Out receives diagnostics and command output.
	Out io.Writer
	// In is read when the deck path is "-".
	In io.Reader

	configPath string
	noCache    bool
	config     pipeline.Config
}

// New creates a CLI writing output to out and logs to logw.
func New(out, logw io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(logw, level),
		Out:    out,
		In:     os.Stdin,
		config: pipeline.DefaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level == log.DebugLevel {
		observability.NewLogHooks(c.Logger).Register()
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "slidelint checks slide layouts for overlapping and misplaced elements",
		Long: `slidelint reads a deck (.json or .pptx), classifies how the elements on each
slide relate to each other, and reports text overlaps, containment and
elements that leave the slide. It can also align and distribute elements.`,
		Version:      buildinfo.Get().Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.SetOut(c.Out)
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/slidelint/config.toml)")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "disable the result cache")

	root.AddCommand(c.checkCommand())
	root.AddCommand(c.relationsCommand())
	root.AddCommand(c.alignCommand())
	root.AddCommand(c.distributeCommand())
	root.AddCommand(c.canvasCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) loadConfig() error {
	cfg, err := pipeline.LoadConfig(c.configPath)
	if err != nil {
		return err
	}
	c.config = cfg
	c.Logger.Debug("loaded config", "path", c.configPath, "cache", cfg.Cache.Backend)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. A cache that fails to
// open is logged and replaced by no cache.
func (c *CLI) newRunner(ctx context.Context) *pipeline.Runner {
	r := pipeline.NewRunner(c.openCache(ctx), nil, c.Logger)
	r.TTL = c.config.Cache.TTL
	return r
}

func (c *CLI) openCache(ctx context.Context) cache.Cache {
	if c.noCache {
		return cache.NewNullCache()
	}
	cc, err := c.config.OpenCache(ctx)
	if err != nil {
		c.Logger.Warn("cache disabled", "error", err)
		return cache.NewNullCache()
	}
	return cc
}

// loadDeck reads the deck at path, "-" meaning stdin.
func (c *CLI) loadDeck(path string) (*slide.Document, error) {
	p := newProgress(c.Logger)
	doc, err := pipeline.LoadDocument(path, c.In)
	if err != nil {
		return nil, err
	}
	p.done("loaded deck", "slides", len(doc.Slides), "elements", doc.ElementCount())
	return doc, nil
}
