package analysis

import (
	"github.com/charmbracelet/log"
)

// Severity grades a diagnostic line.
type Severity string

const (
	SeverityInfo  Severity = "info"
	SeverityWarn  Severity = "warn"
	SeverityError Severity = "error"
)

// Line is one emitted diagnostic.
type Line struct {
	Severity Severity `json:"severity"`
	Text     string   `json:"text"`
}

// Sink receives diagnostic lines as they are produced.
type Sink interface {
	Emit(Line)
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(Line)

// Emit calls f.
func (f SinkFunc) Emit(l Line) { f(l) }

// Discard drops every line.
var Discard Sink = SinkFunc(func(Line) {})

// LogSink writes lines to a charmbracelet logger: errors at error level,
// warnings at warn level and summaries at info level.
type LogSink struct {
	Logger *log.Logger
}

// NewLogSink returns a sink for logger.
func NewLogSink(logger *log.Logger) *LogSink {
	return &LogSink{Logger: logger}
}

// Emit logs l.
func (s *LogSink) Emit(l Line) {
	if s == nil || s.Logger == nil {
		return
	}
	switch l.Severity {
	case SeverityError:
		s.Logger.Error(l.Text)
	case SeverityWarn:
		s.Logger.Warn(l.Text)
	default:
		s.Logger.Info(l.Text)
	}
}

// Recorder keeps every line it receives, in order.
type Recorder struct {
	Lines []Line
}

// Emit appends l.
func (r *Recorder) Emit(l Line) { r.Lines = append(r.Lines, l) }

// Texts returns the text of each recorded line.
func (r *Recorder) Texts() []string {
	out := make([]string, len(r.Lines))
	for i, l := range r.Lines {
		out[i] = l.Text
	}
	return out
}

// Count returns the number of recorded lines with severity sev.
func (r *Recorder) Count(sev Severity) int {
	n := 0
	for _, l := range r.Lines {
		if l.Severity == sev {
			n++
		}
	}
	return n
}

// Tee fans each line out to every non-nil sink.
func Tee(sinks ...Sink) Sink {
	return SinkFunc(func(l Line) {
		for _, s := range sinks {
			if s != nil {
				s.Emit(l)
			}
		}
	})
}

// Replay emits lines on s in order.
func Replay(s Sink, lines []Line) {
	if s == nil {
		return
	}
	for _, l := range lines {
		s.Emit(l)
	}
}

func orDiscard(s Sink) Sink {
	if s == nil {
		return Discard
	}
	return s
}
