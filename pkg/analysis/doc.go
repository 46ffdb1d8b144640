// Package analysis reports layout problems on a slide: overlapping elements,
// containment, and elements that leave the canvas.
//
// The analyzers are pure functions of the slide. They build fresh element
// descriptors on every call, so running them twice on an unchanged slide
// yields identical results. Findings are returned as structured values and
// also emitted as human-readable lines on a [Sink]:
//
//	rep, err := analysis.AnalyzeOverlaps(s, analysis.DefaultOptions(), analysis.NewLogSink(logger))
//
// The line formats are stable; tools grep for them.
package analysis
