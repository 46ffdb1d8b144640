package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/matzehuels/slidelint/pkg/pipeline"
	"github.com/matzehuels/slidelint/pkg/slide"
)

type checkOpts struct {
	slides            []int
	reportContainment bool
	ignoreLines       bool
	ignoreDecorative  bool
	bounds            bool
	format            string
	refresh           bool
	strict            bool
	interactive       bool
}

// checkCommand creates the check command.
func (c *CLI) checkCommand() *cobra.Command {
	var o checkOpts

	cmd := &cobra.Command{
		Use:   "check DECK",
		Short: "Report overlapping, contained and out-of-bounds elements",
		Long: `Check every slide of DECK (.json or .pptx, "-" for JSON on stdin) for
elements whose bounding boxes overlap. Overlaps involving text that are at
least 0.1in on both axes are reported as errors with a suggested fix.

Flags override the [overlap] section of the config file.`,
		Example: `  slidelint check deck.pptx
  slidelint check deck.json --slide 3 --bounds
  slidelint check deck.pptx --report-containment --ignore-lines --format json
  slidelint check deck.pptx -i`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.ValidateFormat(o.format); err != nil {
				return err
			}
			o.format = strings.ToLower(o.format)
			opts := c.checkOptions(cmd, o)
			doc, err := c.loadDeck(args[0])
			if err != nil {
				return err
			}
			if o.interactive {
				return c.checkInteractive(cmd, doc, opts)
			}
			return c.runCheck(cmd, doc, opts, o)
		},
	}

	cmd.Flags().IntSliceVarP(&o.slides, "slide", "s", nil, "slide numbers to check, 1-based (default all)")
	cmd.Flags().BoolVar(&o.reportContainment, "report-containment", false, "also report elements contained in others")
	cmd.Flags().BoolVar(&o.ignoreLines, "ignore-lines", false, "skip line elements")
	cmd.Flags().BoolVar(&o.ignoreDecorative, "ignore-decorative", false, "skip stroked shapes without a visible fill")
	cmd.Flags().BoolVar(&o.bounds, "bounds", false, "also report elements outside the slide canvas")
	cmd.Flags().StringVarP(&o.format, "format", "f", pipeline.FormatText, "output format: text, json")
	cmd.Flags().BoolVar(&o.refresh, "refresh", false, "ignore cached results")
	cmd.Flags().BoolVar(&o.strict, "strict", false, "exit with status 1 when anything is reported")
	cmd.Flags().BoolVarP(&o.interactive, "interactive", "i", false, "pick a slide interactively")

	return cmd
}

// checkOptions starts from the config file and applies changed flags.
func (c *CLI) checkOptions(cmd *cobra.Command, o checkOpts) pipeline.Options {
	opts := c.config.Options()
	opts.Slides = o.slides
	opts.CheckBounds = o.bounds
	opts.Refresh = o.refresh
	opts.Logger = c.Logger

	flags := cmd.Flags()
	if flags.Changed("report-containment") {
		opts.Overlap.MuteContainment = !o.reportContainment
	}
	if flags.Changed("ignore-lines") {
		opts.Overlap.IgnoreLines = o.ignoreLines
	}
	if flags.Changed("ignore-decorative") {
		opts.Overlap.IgnoreDecorativeShapes = o.ignoreDecorative
	}
	return opts
}

func (c *CLI) runCheck(cmd *cobra.Command, doc *slide.Document, opts pipeline.Options, o checkOpts) error {
	ctx := cmd.Context()
	runner := c.newRunner(ctx)
	defer runner.Close()

	if o.format == pipeline.FormatJSON {
		res, err := runner.Analyze(ctx, doc, opts, nil)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(c.Out)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(res); err != nil {
			return err
		}
		return c.strictResult(res, opts, o.strict)
	}

	var spin *Spinner
	if isatty.IsTerminal(os.Stderr.Fd()) {
		spin = newSpinnerWithContext(ctx, fmt.Sprintf("Checking %d slides...", len(opts.SlideNumbers(doc))))
		spin.Start()
	}
	res, err := runner.Analyze(ctx, doc, opts, diagnosticSink(c.Out))
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return err
	}

	if res.Clean(opts) {
		printSuccess(c.Out, "No issues found")
	}
	printStats(c.Out, res.Stats.Slides, res.Stats.Overlaps, res.Stats.Severe,
		res.CacheInfo.Hits > 0 && res.CacheInfo.Misses == 0)
	return c.strictResult(res, opts, o.strict)
}

func (c *CLI) strictResult(res *pipeline.Result, opts pipeline.Options, strict bool) error {
	if strict && !res.Clean(opts) {
		return ErrFindings
	}
	return nil
}

// checkInteractive summarizes every slide, lets the user pick one, then
// prints that slide's diagnostics.
func (c *CLI) checkInteractive(cmd *cobra.Command, doc *slide.Document, opts pipeline.Options) error {
	ctx := cmd.Context()
	runner := c.newRunner(ctx)
	defer runner.Close()

	summary, err := runner.Analyze(ctx, doc, opts, nil)
	if err != nil {
		return err
	}

	final, err := tea.NewProgram(NewSlidePickerModel(summary.Slides), tea.WithContext(ctx)).Run()
	if err != nil {
		return fmt.Errorf("slide picker: %w", err)
	}
	picked := final.(SlidePickerModel).Selected
	if picked == nil {
		return nil
	}

	opts.Slides = []int{picked.Number}
	res, err := runner.Analyze(ctx, doc, opts, diagnosticSink(c.Out))
	if err != nil {
		return err
	}
	if res.Clean(opts) {
		printSuccess(c.Out, "Slide %d: no issues found", picked.Number)
	}
	return nil
}
