package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/slidelint/pkg/arrange"
	"github.com/matzehuels/slidelint/pkg/pipeline"
	"github.com/matzehuels/slidelint/pkg/slide"
)

type arrangeOpts struct {
	slide   int
	indices string
	output  string
	dryRun  bool
}

func (o *arrangeOpts) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&o.slide, "slide", "s", 1, "slide number, 1-based")
	cmd.Flags().StringVar(&o.indices, "indices", "", "element indices, e.g. 0,2,3 (required)")
	cmd.Flags().StringVarP(&o.output, "output", "o", "-", "where to write the updated deck (- for stdout)")
	cmd.Flags().BoolVarP(&o.dryRun, "dry-run", "n", false, "print the moves without writing the deck")
	_ = cmd.MarkFlagRequired("indices")
}

// alignCommand creates the align command.
func (c *CLI) alignCommand() *cobra.Command {
	var (
		o    arrangeOpts
		mode string
	)

	cmd := &cobra.Command{
		Use:   "align DECK",
		Short: "Align elements on a shared edge or center line",
		Long: `Align the selected elements of one slide. Modes: left, right, top, bottom,
horizontallyCenter (hcenter) and verticallyCenter (vcenter). Each element
keeps its size; only the affected coordinate changes.

The updated deck is always written as JSON.`,
		Example: `  slidelint align deck.json --indices 0,1,2 --mode left -o aligned.json
  slidelint align deck.json --slide 2 --indices 1,3 --mode vcenter -n`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			alignment, err := arrange.ParseAlignment(mode)
			if err != nil {
				return err
			}
			return c.runArrange(cmd, args[0], o, "aligned", func(ctx context.Context, r *pipeline.Runner, doc *slide.Document, indices []int) ([]arrange.Move, error) {
				return r.Align(ctx, doc, o.slide, indices, alignment)
			})
		},
	}

	o.register(cmd)
	cmd.Flags().StringVarP(&mode, "mode", "m", string(arrange.AlignLeft), "alignment mode")
	return cmd
}

// distributeCommand creates the distribute command.
func (c *CLI) distributeCommand() *cobra.Command {
	var (
		o         arrangeOpts
		direction string
	)

	cmd := &cobra.Command{
		Use:   "distribute DECK",
		Short: "Space elements evenly along an axis",
		Long: `Distribute the selected elements of one slide so the gaps between them
are equal. The first and last element along the axis stay put. Fewer than
three elements are left unchanged.`,
		Example: `  slidelint distribute deck.json --indices 0,1,2 --direction horizontal -o spaced.json`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			axis, err := arrange.ParseDirection(direction)
			if err != nil {
				return err
			}
			return c.runArrange(cmd, args[0], o, "distributed", func(ctx context.Context, r *pipeline.Runner, doc *slide.Document, indices []int) ([]arrange.Move, error) {
				return r.Distribute(ctx, doc, o.slide, indices, axis)
			})
		},
	}

	o.register(cmd)
	cmd.Flags().StringVarP(&direction, "direction", "d", string(arrange.Horizontal), "axis: horizontal, vertical")
	return cmd
}

type arrangeStep func(ctx context.Context, r *pipeline.Runner, doc *slide.Document, indices []int) ([]arrange.Move, error)

// runArrange loads the deck, applies step and writes the result. With the
// deck going to stdout the moves are logged instead of printed.
func (c *CLI) runArrange(cmd *cobra.Command, path string, o arrangeOpts, verb string, step arrangeStep) error {
	indices, err := arrange.ParseIndices(o.indices)
	if err != nil {
		return err
	}
	doc, err := c.loadDeck(path)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	runner := c.newRunner(ctx)
	defer runner.Close()

	moves, err := step(ctx, runner, doc, indices)
	if err != nil {
		return err
	}

	switch {
	case o.dryRun:
		printInfo(c.Out, "Slide %d: %d element(s) would be %s", o.slide, len(moves), verb)
		if len(moves) > 0 {
			fmt.Fprintln(c.Out, moveTable(moves))
		}
		return nil
	case o.output == "-":
		for _, m := range moves {
			c.Logger.Info(verb, "element", m.Index, "from", point(m.From), "to", point(m.To))
		}
		return slide.WriteJSON(c.Out, doc)
	}

	if err := slide.WriteFile(doc, o.output); err != nil {
		return fmt.Errorf("write %s: %w", o.output, err)
	}
	printSuccess(c.Out, "Slide %d: %d element(s) %s", o.slide, len(moves), verb)
	if len(moves) > 0 {
		fmt.Fprintln(c.Out, moveTable(moves))
	}
	printFile(c.Out, o.output)
	return nil
}
