package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/slidelint/pkg/analysis"
	"github.com/matzehuels/slidelint/pkg/pipeline"
	"github.com/matzehuels/slidelint/pkg/slide"
)

type canvasRow struct {
	Slide  int           `json:"slide"`
	Canvas *slide.Canvas `json:"canvas,omitempty"`
	Error  string        `json:"error,omitempty"`
}

// canvasCommand creates the canvas command.
func (c *CLI) canvasCommand() *cobra.Command {
	var (
		slides []int
		format string
	)

	cmd := &cobra.Command{
		Use:   "canvas DECK",
		Short: "Print the resolved slide size in inches",
		Long: `Resolve the canvas width and height of each slide from the slide layout,
the document layout or document properties. EMU values are converted to
inches.

Asking for a single slide fails when its size cannot be resolved; otherwise
unresolved slides are listed and skipped.`,
		Example: `  slidelint canvas deck.pptx
  slidelint canvas deck.json --slide 2 --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.ValidateFormat(format); err != nil {
				return err
			}
			format = strings.ToLower(format)
			doc, err := c.loadDeck(args[0])
			if err != nil {
				return err
			}
			opts := pipeline.Options{Slides: slides}
			if err := opts.Validate(doc); err != nil {
				return err
			}

			runner := c.newRunner(cmd.Context())
			defer runner.Close()

			var rows []canvasRow
			for _, n := range opts.SlideNumbers(doc) {
				cv, err := runner.Canvas(doc, n)
				if err != nil {
					if len(slides) == 1 {
						return err
					}
					c.Logger.Warn("canvas unresolved", "slide", n, "error", err)
					rows = append(rows, canvasRow{Slide: n, Error: err.Error()})
					continue
				}
				rows = append(rows, canvasRow{Slide: n, Canvas: &cv})
			}

			if format == pipeline.FormatJSON {
				enc := json.NewEncoder(c.Out)
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			}
			fmt.Fprintln(c.Out, canvasTable(rows))
			return nil
		},
	}

	cmd.Flags().IntSliceVarP(&slides, "slide", "s", nil, "slide numbers, 1-based (default all)")
	cmd.Flags().StringVarP(&format, "format", "f", pipeline.FormatText, "output format: text, json")

	return cmd
}

func canvasTable(rows []canvasRow) string {
	data := make([][]string, len(rows))
	for i, r := range rows {
		if r.Canvas == nil {
			data[i] = []string{fmt.Sprint(r.Slide), "—", "—"}
			continue
		}
		data[i] = []string{
			fmt.Sprint(r.Slide),
			analysis.FormatNumber(r.Canvas.Width),
			analysis.FormatNumber(r.Canvas.Height),
		}
	}
	return newTable("Slide", "Width (in)", "Height (in)").
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == headerRow {
				return styleHeader
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if row >= 0 && row < len(rows) && rows[row].Canvas == nil {
				return base.Inherit(StyleWarning)
			}
			return base
		}).
		Render()
}
