package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/slidelint/pkg/analysis"
	"github.com/matzehuels/slidelint/pkg/pipeline"
)

type relationsOpts struct {
	slide  int
	all    bool
	format string
}

// relationsCommand creates the relations command.
func (c *CLI) relationsCommand() *cobra.Command {
	var o relationsOpts

	cmd := &cobra.Command{
		Use:   "relations DECK",
		Short: "Print how each pair of elements on a slide relates",
		Long: `Classify every pair of elements on one slide as disjoint, touching,
overlapping or contained. Disjoint pairs are hidden unless --all is set.

Line pairs whose boxes overlap but whose segments do not meet are reported
as disjoint with the note "line segment clear".`,
		Example: `  slidelint relations deck.pptx --slide 2
  slidelint relations deck.json --all --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.ValidateFormat(o.format); err != nil {
				return err
			}
			o.format = strings.ToLower(o.format)
			doc, err := c.loadDeck(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			runner := c.newRunner(ctx)
			defer runner.Close()

			pairs, cached, err := runner.RelationsWithCacheInfo(ctx, doc, o.slide, c.config.Tolerances)
			if err != nil {
				return err
			}
			c.Logger.Debug("relations", "slide", o.slide, "pairs", len(pairs), "cached", cached)
			if !o.all {
				pairs = analysis.NonDisjoint(pairs)
			}

			if o.format == pipeline.FormatJSON {
				if pairs == nil {
					pairs = []analysis.Pair{}
				}
				enc := json.NewEncoder(c.Out)
				enc.SetIndent("", "  ")
				return enc.Encode(pairs)
			}

			if len(pairs) == 0 {
				printInfo(c.Out, "Slide %d: no touching, overlapping or contained pairs", o.slide)
				return nil
			}
			fmt.Fprintln(c.Out, StyleTitle.Render(fmt.Sprintf("Slide %d", o.slide)))
			fmt.Fprintln(c.Out, relationTable(pairs))
			return nil
		},
	}

	cmd.Flags().IntVarP(&o.slide, "slide", "s", 1, "slide number, 1-based")
	cmd.Flags().BoolVar(&o.all, "all", false, "include disjoint pairs")
	cmd.Flags().StringVarP(&o.format, "format", "f", pipeline.FormatText, "output format: text, json")

	return cmd
}
