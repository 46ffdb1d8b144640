package relgraph

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/slidelint/pkg/analysis"
	"github.com/matzehuels/slidelint/pkg/geom"
	"github.com/matzehuels/slidelint/pkg/slide"
)

// Options configures the relation graph.
type Options struct {
	// Title labels the graph, e.g. "Slide 3".
	Title string

	// Suppressed adds dotted edges for line pairs whose boxes overlapped but
	// whose segments did not.
	Suppressed bool

	// Ignorable greys out nodes marked ignorable.
	Ignorable bool
}

var edgeStyles = map[geom.Kind]string{
	geom.Touching:    `style=dashed, color="#888888"`,
	geom.Overlapping: `color="#d62728", penwidth=2`,
	geom.Contained:   `dir=forward, color="#1f77b4"`,
}

// ToDOT converts element descriptors and their pairwise relations to
// Graphviz DOT. Node IDs are "e<index>".
func ToDOT(ds []slide.Descriptor, pairs []analysis.Pair, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	if opts.Title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n  labelloc=t;\n", opts.Title)
	}
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12];\n")
	buf.WriteString("\n")

	for _, d := range ds {
		attrs := []string{fmt.Sprintf("label=%q", nodeLabel(d))}
		if opts.Ignorable && d.Ignorable {
			attrs = append(attrs, "fillcolor=lightgrey", "fontcolor=\"#666666\"")
		}
		fmt.Fprintf(&buf, "  e%d [%s];\n", d.Index, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, p := range pairs {
		from, to := p.A.Index, p.B.Index
		style, ok := edgeStyles[p.Relation.Kind]
		switch {
		case p.Relation.Kind == geom.Disjoint && p.Relation.Suppressed && opts.Suppressed:
			style = `style=dotted, color="#aaaaaa"`
		case !ok:
			continue
		}
		if p.Relation.Kind == geom.Contained && p.Relation.Container == geom.RoleB {
			from, to = to, from
		}
		fmt.Fprintf(&buf, "  e%d -- e%d [%s];\n", from, to, style)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeLabel(d slide.Descriptor) string {
	return fmt.Sprintf("%d: %s\n%s,%s %sx%s", d.Index, d.Tag,
		analysis.FormatNumber(d.X), analysis.FormatNumber(d.Y),
		analysis.FormatNumber(d.W), analysis.FormatNumber(d.H))
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-sized root tag with one that
// scales to its container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="100%%">`, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
