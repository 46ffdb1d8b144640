// Package render holds output renderers for slidelint analyses.
//
// The [relgraph] subpackage draws a slide's pairwise element relations as a
// Graphviz graph (DOT or SVG).
//
// [relgraph]: github.com/matzehuels/slidelint/pkg/render/relgraph
package render
