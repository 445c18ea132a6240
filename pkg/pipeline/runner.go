package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/glyphclock/pkg/cache"
	"github.com/matzehuels/glyphclock/pkg/clock"
	"github.com/matzehuels/glyphclock/pkg/observability"
	"github.com/matzehuels/glyphclock/pkg/render/sink"
)

// Runner renders frames with caching. It holds no per-render state, so one
// Runner can serve concurrent requests.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching; a nil logger
// uses log.Default().
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Render draws opts.Time in every requested format, serving formats from
// cache where possible.
func (r *Runner) Render(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	hooks := observability.Render()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	rd := clock.NewRenderer(clock.WithLocation(opts.Location))
	result := &Result{
		Digits:    rd.Digits(opts.Time),
		Mirror:    rd.Mirror(opts.Time),
		Artifacts: make(map[string][]byte, len(opts.Formats)),
		CacheInfo: CacheInfo{Hits: make(map[string]bool, len(opts.Formats)), RenderHit: true},
	}

	var err error
	for _, format := range opts.Formats {
		if err = ctx.Err(); err != nil {
			break
		}
		var data []byte
		var hit bool
		data, hit, err = r.renderFormat(ctx, format, &opts)
		if err != nil {
			err = fmt.Errorf("render %s: %w", format, err)
			break
		}
		result.Artifacts[format] = data
		result.CacheInfo.Hits[format] = hit
		result.CacheInfo.RenderHit = result.CacheInfo.RenderHit && hit
		result.Stats.Bytes += len(data)
	}
	result.Stats.RenderTime = time.Since(start)
	hooks.OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, err
	}

	r.Logger.Debug("rendered frame",
		"time", result.Mirror,
		"formats", opts.Formats,
		"cached", result.CacheInfo.RenderHit,
		"bytes", result.Stats.Bytes,
		"duration", result.Stats.RenderTime)
	return result, nil
}

func (r *Runner) renderFormat(ctx context.Context, format string, opts *Options) ([]byte, bool, error) {
	key := cache.FrameKey(opts.Time, opts.FrameKeyOpts(format))
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, cache.PrefixFrame)
			return data, true, nil
		} else if err != nil {
			r.Logger.Debug("frame cache read failed", "err", err)
		}
		observability.Cache().OnCacheMiss(ctx, cache.PrefixFrame)
	}

	data, err := RenderFormat(format, opts)
	if err != nil {
		return nil, false, err
	}
	if err := r.Cache.Set(ctx, key, data, cache.TTLFrame); err != nil {
		r.Logger.Debug("frame cache write failed", "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, cache.PrefixFrame, len(data))
	}
	return data, false, nil
}

// RenderFormat renders one format without caching. opts must already be
// validated.
func RenderFormat(format string, opts *Options) ([]byte, error) {
	so := opts.sinkOptions()
	switch format {
	case FormatPNG:
		return sink.RenderPNG(opts.Time, so...)
	case FormatSVG:
		return sink.RenderSVG(opts.Time, so...)
	case FormatJSON:
		return sink.RenderJSON(opts.Time, so...)
	case FormatTXT:
		s, err := sink.RenderTerminal(opts.Time, opts.Columns, so...)
		return []byte(s), err
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
