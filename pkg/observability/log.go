package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface by writing debug log lines.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns hooks that log to l with the "obs" prefix.
func NewLogHooks(l *log.Logger) *LogHooks {
	if l == nil {
		l = log.Default()
	}
	return &LogHooks{Logger: l.WithPrefix("obs")}
}

// Install registers h for all hook categories.
func (h *LogHooks) Install() {
	SetClockHooks(h)
	SetRenderHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

func (h *LogHooks) OnTick(_ context.Context, digits string, d time.Duration) {
	h.Logger.Debug("tick", "digits", digits, "took", d)
}

func (h *LogHooks) OnSkip(_ context.Context, reason string) {
	h.Logger.Debug("frame skipped", "reason", reason)
}

func (h *LogHooks) OnResize(_ context.Context, w, hh, ratio float64) {
	h.Logger.Debug("resize", "width", w, "height", hh, "ratio", ratio)
}

func (h *LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.Logger.Debug("render start", "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("render failed", "formats", formats, "took", d, "err", err)
		return
	}
	h.Logger.Debug("render done", "formats", formats, "took", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, prefix string) {
	h.Logger.Debug("cache hit", "prefix", prefix)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, prefix string) {
	h.Logger.Debug("cache miss", "prefix", prefix)
}

func (h *LogHooks) OnCacheSet(_ context.Context, prefix string, size int) {
	h.Logger.Debug("cache set", "prefix", prefix, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, host, path string) {
	h.Logger.Debug("http request", "method", method, "host", host, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.Logger.Debug("http response", "method", method, "host", host, "path", path, "status", status, "took", d)
}

func (h *LogHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.Logger.Debug("http error", "method", method, "host", host, "path", path, "err", err)
}

var (
	_ ClockHooks  = (*LogHooks)(nil)
	_ RenderHooks = (*LogHooks)(nil)
	_ CacheHooks  = (*LogHooks)(nil)
	_ HTTPHooks   = (*LogHooks)(nil)
)
