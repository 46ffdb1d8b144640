package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/slidelint/pkg/analysis"
	"github.com/matzehuels/slidelint/pkg/arrange"
	"github.com/matzehuels/slidelint/pkg/geom"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - containment
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	StyleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleDim     = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	StyleNumber  = lipgloss.NewStyle().Foreground(colorCyan)
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
	StyleError   = lipgloss.NewStyle().Foreground(colorRed)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)
	styleHeader   = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

var kindStyles = map[geom.Kind]lipgloss.Style{
	geom.Disjoint:    lipgloss.NewStyle().Foreground(colorDim),
	geom.Touching:    lipgloss.NewStyle().Foreground(colorGray),
	geom.Overlapping: lipgloss.NewStyle().Foreground(colorRed),
	geom.Contained:   lipgloss.NewStyle().Foreground(colorBlue),
}

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+msg)
}

func printInfo(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconInfo.Render(iconInfo)+" "+msg)
}

func printDetail(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, "  "+StyleDim.Render(msg))
}

func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

func printKeyValue(w io.Writer, key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Fprintln(w, keyStyle.Render(key)+" "+StyleValue.Render(value))
}

// =============================================================================
// Diagnostics
// =============================================================================

// diagnosticSink prints analysis lines to w, colored by severity. The text
// itself is printed unchanged.
func diagnosticSink(w io.Writer) analysis.Sink {
	return analysis.SinkFunc(func(l analysis.Line) {
		style := StyleDim
		switch l.Severity {
		case analysis.SeverityError:
			style = StyleError
		case analysis.SeverityWarn:
			style = StyleWarning
		}
		fmt.Fprintln(w, style.Render(l.Text))
	})
}

// printStats prints run totals on a single line.
func printStats(w io.Writer, slides, overlaps, severe int, cached bool) {
	parts := []string{
		fmt.Sprintf("%d slides", slides),
		fmt.Sprintf("%d overlaps", overlaps),
		fmt.Sprintf("%d severe", severe),
	}

	status, statusStyle := iconFresh, styleComputed
	if cached {
		status, statusStyle = iconCached, styleCached
	}

	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}
	line += StyleDim.Render(" · ") + statusStyle.Render(status)
	fmt.Fprintln(w, line)
}

// =============================================================================
// Tables
// =============================================================================

// headerRow is the row index lipgloss tables pass to StyleFunc for headers.
const headerRow = -1

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...)
}

// relationTable renders pairs as a table, kind column colored.
func relationTable(pairs []analysis.Pair) string {
	rows := make([][]string, len(pairs))
	for i, p := range pairs {
		rows[i] = []string{
			fmt.Sprintf("%d (%s)", p.A.Index, p.A.Tag),
			fmt.Sprintf("%d (%s)", p.B.Index, p.B.Tag),
			p.Relation.Kind.String(),
			intersection(p.Relation.Intersection),
			relationNote(p),
		}
	}
	return newTable("A", "B", "Relation", "Intersection", "Note").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == headerRow {
				return styleHeader
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if col == 2 && row >= 0 && row < len(pairs) {
				return base.Inherit(kindStyles[pairs[row].Relation.Kind])
			}
			return base
		}).
		Render()
}

func intersection(r *geom.Rect) string {
	if r == nil {
		return "—"
	}
	return analysis.FormatNumber(r.W) + " x " + analysis.FormatNumber(r.H)
}

func relationNote(p analysis.Pair) string {
	switch {
	case p.Relation.Suppressed:
		return "line segment clear"
	case p.Relation.Kind == geom.Contained && p.Relation.Container == geom.RoleA:
		return fmt.Sprintf("%d contains %d", p.A.Index, p.B.Index)
	case p.Relation.Kind == geom.Contained:
		return fmt.Sprintf("%d contains %d", p.B.Index, p.A.Index)
	}
	return ""
}

// moveTable renders element moves.
func moveTable(moves []arrange.Move) string {
	rows := make([][]string, len(moves))
	for i, m := range moves {
		rows[i] = []string{
			fmt.Sprint(m.Index),
			point(m.From),
			point(m.To),
		}
	}
	return newTable("Element", "From", "To").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == headerRow {
				return styleHeader
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Render()
}

func point(p geom.Point) string {
	return strings.Join([]string{analysis.FormatNumber(p.X), analysis.FormatNumber(p.Y)}, ", ")
}
