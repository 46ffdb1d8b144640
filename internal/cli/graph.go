package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/slidelint/pkg/analysis"
	"github.com/matzehuels/slidelint/pkg/errors"
	"github.com/matzehuels/slidelint/pkg/render/relgraph"
)

const (
	graphDOT = "dot"
	graphSVG = "svg"
)

type graphOpts struct {
	slide      int
	format     string
	output     string
	suppressed bool
}

// graphCommand creates the graph command.
func (c *CLI) graphCommand() *cobra.Command {
	var o graphOpts

	cmd := &cobra.Command{
		Use:   "graph DECK",
		Short: "Draw a slide's element relations as DOT or SVG",
		Long: `Draw one slide as a graph: a node per element, an edge per touching,
overlapping or contained pair. Containment edges point from the container.

Elements skipped by the [overlap] ignore settings are drawn grey.`,
		Example: `  slidelint graph deck.pptx --slide 3 -o slide3.svg
  slidelint graph deck.json --format dot --suppressed | dot -Tpng > g.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidateFormat(o.format, graphDOT, graphSVG); err != nil {
				return err
			}
			o.format = strings.ToLower(o.format)
			doc, err := c.loadDeck(args[0])
			if err != nil {
				return err
			}
			s, err := doc.Slide(o.slide)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			runner := c.newRunner(ctx)
			defer runner.Close()

			pairs, err := runner.Relations(ctx, doc, o.slide, c.config.Tolerances)
			if err != nil {
				return err
			}

			p := newProgress(c.Logger)
			dot := relgraph.ToDOT(analysis.Describe(s, c.config.Overlap), pairs, relgraph.Options{
				Title:      fmt.Sprintf("Slide %d", o.slide),
				Suppressed: o.suppressed,
				Ignorable:  true,
			})
			out := []byte(dot)
			if o.format == graphSVG {
				if out, err = relgraph.RenderSVG(ctx, dot); err != nil {
					return err
				}
			}
			p.done("rendered graph", "format", o.format, "bytes", len(out))

			if o.output == "" || o.output == "-" {
				_, err := c.Out.Write(out)
				return err
			}
			if err := os.WriteFile(o.output, out, 0644); err != nil {
				return fmt.Errorf("write %s: %w", o.output, err)
			}
			printSuccess(c.Out, "Rendered slide %d", o.slide)
			printFile(c.Out, o.output)
			return nil
		},
	}

	cmd.Flags().IntVarP(&o.slide, "slide", "s", 1, "slide number, 1-based")
	cmd.Flags().StringVarP(&o.format, "format", "f", graphSVG, "output format: dot, svg")
	cmd.Flags().StringVarP(&o.output, "output", "o", "-", "output file (- for stdout)")
	cmd.Flags().BoolVar(&o.suppressed, "suppressed", false, "draw line pairs whose boxes overlap but segments do not")

	return cmd
}
