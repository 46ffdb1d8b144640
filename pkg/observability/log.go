package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event to a logger at debug level. It implements
// AnalysisHooks, CacheHooks and HTTPHooks.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns hooks that log through l.
func NewLogHooks(l *log.Logger) *LogHooks {
	return &LogHooks{Logger: l}
}

// Register installs h for every hook category.
func (h *LogHooks) Register() {
	SetAnalysisHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

func (h *LogHooks) OnAnalyzeStart(_ context.Context, slide, elements int) {
	h.Logger.Debug("analyze start", "slide", slide, "elements", elements)
}

func (h *LogHooks) OnAnalyzeComplete(_ context.Context, slide, overlaps, containments int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("analyze failed", "slide", slide, "error", err, "duration", d)
		return
	}
	h.Logger.Debug("analyze complete", "slide", slide, "overlaps", overlaps, "containments", containments, "duration", d)
}

func (h *LogHooks) OnArrange(_ context.Context, op string, elements int, d time.Duration, err error) {
	h.Logger.Debug("arrange", "op", op, "elements", elements, "duration", d, "error", err)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.Logger.Debug("request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.Logger.Debug("response", "method", method, "path", path, "status", status, "duration", d)
}

func (h *LogHooks) OnError(_ context.Context, method, path, code string) {
	h.Logger.Debug("request error", "method", method, "path", path, "code", code)
}
