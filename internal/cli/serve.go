package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/slidelint/internal/server"
	"github.com/matzehuels/slidelint/pkg/buildinfo"
	"github.com/matzehuels/slidelint/pkg/cache"
	"github.com/matzehuels/slidelint/pkg/pipeline"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve the analysis API over HTTP:

  GET  /health
  POST /v1/analyze      report overlaps, containment and bounds
  POST /v1/relations    pairwise relation table
  POST /v1/canvas       resolved slide size
  POST /v1/align        align elements, returns the updated deck
  POST /v1/distribute   distribute elements, returns the updated deck

Requests carry the deck as JSON ({"deck": {...}}) or as a multipart upload
with a "file" part (.json or .pptx) and an optional "request" part.
Errors are returned as {"error": {"code", "message"}, "requestId"}.`,
		Example: `  slidelint serve --addr :9090
  slidelint serve --config server.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if cmd.Flags().Changed("addr") {
				c.config.Server.Addr = addr
			}
			if c.config.Server.Addr == "" {
				c.config.Server.Addr = pipeline.DefaultServerAddr
			}

			cc := c.openCache(ctx)
			runner := pipeline.NewRunner(cc, cache.NewScopedKeyer(nil, "api:"), c.Logger)
			runner.TTL = c.config.Cache.TTL
			defer runner.Close()

			c.Logger.Info("starting server", "cache", c.config.Cache.Backend, "version", buildinfo.Get().Version)
			return server.New(runner, c.config, c.Logger).ListenAndServe(ctx, c.config.Server.Addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", pipeline.DefaultServerAddr, "listen address")
	return cmd
}
