// Package pkg provides the core libraries for slidelint, a layout checker for
// presentation decks.
//
// # Overview
//
// slidelint reads the elements of a slide as bounding boxes, classifies how
// each pair relates (disjoint, touching, overlapping, contained), and reports
// the overlaps that matter: text colliding with other elements, elements
// hidden inside others, and elements that leave the slide. It can also align
// and distribute a selection of elements.
//
// # Architecture
//
// The typical data flow:
//
//	deck.json / deck.pptx
//	         ↓
//	    [slide] and [slide/pptx] (decode, classify, effective bounds)
//	         ↓
//	    [geom] (pairwise relation with line-segment suppression)
//	         ↓
//	    [analysis] (overlap report, bounds check, diagnostic lines)
//	         ↓
//	    text diagnostics, JSON report, or a [render/relgraph] drawing
//
// [arrange] writes new positions back into the deck through the same
// element field groups the bounds were read from.
//
// # Quick Start
//
//	doc, _ := slide.ReadFile("deck.json")
//	s, _ := doc.Slide(1)
//
//	rep, _ := analysis.AnalyzeOverlaps(s, analysis.DefaultOptions(), analysis.NewLogSink(log.Default()))
//	for _, o := range rep.Overlaps {
//	    fmt.Println(o.A.Index, o.B.Index, o.Severe)
//	}
//
// # Main Packages
//
// [geom] - Pure geometry: rectangles, tolerances, segment intersection and
// the relation classifier.
//
// [slide] - The deck model, element type classification, effective bounds
// and canvas dimension resolution. [slide/pptx] reads PowerPoint files.
//
// [analysis] - Overlap and out-of-bounds reporting, with diagnostics sent to
// a [analysis.Sink].
//
// [arrange] - Align and distribute.
//
// [pipeline] - Runs analyses over a whole deck with result caching, and
// loads configuration. Used by both the CLI and the HTTP API.
//
// [cache] - File, Redis and no-op caches with content-addressed keys.
//
// [observability] - Hooks for analysis, cache and HTTP events.
//
// [errors] - Error codes shared by every package.
//
// [render/relgraph] - Graphviz drawings of a slide's relations.
//
// # Testing
//
//	go test ./pkg/...           # All tests
//	go test -run Example ./...  # Examples only
package pkg
