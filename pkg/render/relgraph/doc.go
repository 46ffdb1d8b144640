// Package relgraph draws the pairwise relations of a slide as a graph.
//
// Each element becomes a node labelled with its index, tag and box. Each
// related pair becomes an edge styled by kind: overlaps in red, touching
// pairs dashed, containment as an arrow from container to contained.
// Disjoint pairs are left out unless [Options.Suppressed] asks for the
// diagonal-line pairs that were only disjoint after the segment check.
//
//	pairs, _ := analysis.Relations(s, geom.DefaultTolerances)
//	dot := relgraph.ToDOT(slide.DescribeAll(s), pairs, relgraph.Options{})
//	svg, err := relgraph.RenderSVG(ctx, dot)
//
// Rendering uses [github.com/goccy/go-graphviz] in process; no Graphviz
// install is needed.
package relgraph
