package clock

import (
	"context"
	"reflect"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/glyphclock/pkg/observability"
	"github.com/matzehuels/glyphclock/pkg/surface"
)

const (
	// TickInterval is the period of normal redraws.
	TickInterval = time.Second

	// RecoveryInterval is how often a visible, zero-sized host is re-measured.
	RecoveryInterval = 500 * time.Millisecond
)

// Clock runs a Renderer against a host and surface.
//
// Run owns the renderer and the frame state. Resized and Redraw may be
// called from any goroutine; bursts coalesce into a single pending event.
type Clock struct {
	host     surface.Host
	surface  surface.Surface
	renderer *Renderer
	logger   *log.Logger
	now      func() time.Time
	onFrame  func(Frame, string)

	tick     time.Duration
	recovery time.Duration

	resize chan struct{}
	redraw chan struct{}
}

// ClockOption configures a Clock.
type ClockOption func(*Clock)

// WithLogger sets the clock's logger.
func WithLogger(l *log.Logger) ClockOption {
	return func(c *Clock) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithRenderer replaces the default renderer.
func WithRenderer(r *Renderer) ClockOption {
	return func(c *Clock) {
		if r != nil {
			c.renderer = r
		}
	}
}

// WithNow overrides the wall clock.
func WithNow(fn func() time.Time) ClockOption {
	return func(c *Clock) {
		if fn != nil {
			c.now = fn
		}
	}
}

// WithIntervals overrides the tick and recovery periods.
func WithIntervals(tick, recovery time.Duration) ClockOption {
	return func(c *Clock) {
		if tick > 0 {
			c.tick = tick
		}
		if recovery > 0 {
			c.recovery = recovery
		}
	}
}

// OnFrame registers a callback invoked on the loop goroutine after every
// drawn frame, with the frame state and the digits drawn.
func OnFrame(fn func(Frame, string)) ClockOption {
	return func(c *Clock) { c.onFrame = fn }
}

// New creates a clock. A nil host or surface, including a typed nil
// pointer, yields an inert clock whose methods do nothing.
func New(host surface.Host, s surface.Surface, opts ...ClockOption) *Clock {
	c := &Clock{
		host:     host,
		surface:  s,
		logger:   log.Default(),
		now:      time.Now,
		tick:     TickInterval,
		recovery: RecoveryInterval,
		resize:   make(chan struct{}, 1),
		redraw:   make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.renderer == nil {
		c.renderer = NewRenderer(WithRendererLogger(c.logger))
	}
	return c
}

// Inert reports whether the clock has nothing to draw into.
func (c *Clock) Inert() bool {
	return isNil(c.host) || isNil(c.surface)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

// Resized schedules a resize followed by an immediate redraw.
func (c *Clock) Resized() { notify(c.resize) }

// Redraw schedules an immediate redraw, e.g. after the view becomes visible.
func (c *Clock) Redraw() { notify(c.redraw) }

func notify(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

// Run sizes the surface, draws the first frame and then services ticks,
// resizes and recovery checks until ctx is cancelled. An inert clock
// returns immediately.
func (c *Clock) Run(ctx context.Context) error {
	if c.Inert() {
		c.logger.Debug("clock host missing, not starting")
		return nil
	}

	c.doResize(ctx)
	c.draw(ctx)

	ticker := time.NewTicker(c.tick)
	defer ticker.Stop()
	recovery := time.NewTicker(c.recovery)
	defer recovery.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			c.draw(ctx)
		case <-c.resize:
			c.doResize(ctx)
			c.draw(ctx)
		case <-c.redraw:
			c.draw(ctx)
		case <-recovery.C:
			c.recover(ctx)
		}
	}
}

func (c *Clock) doResize(ctx context.Context) {
	f := c.renderer.Resize(c.host, c.surface)
	c.logger.Debug("clock resized", "width", f.Width, "height", f.Height, "ratio", f.Ratio)
	observability.Clock().OnResize(ctx, f.Width, f.Height, f.Ratio)
}

// recover re-measures a host that is visible but was zero-sized.
func (c *Clock) recover(ctx context.Context) {
	if !c.renderer.Frame().Layout.Empty() || !c.host.Visible() {
		return
	}
	if w, h := c.host.LogicalSize(); w <= 0 || (h <= 0 && c.renderer.fallbackHeight <= 0) {
		return
	}
	c.logger.Debug("clock host gained a size, recovering")
	c.doResize(ctx)
	c.draw(ctx)
}

func (c *Clock) draw(ctx context.Context) {
	now := c.now()
	start := time.Now()
	if err := c.renderer.Tick(now, c.surface); err != nil {
		c.logger.Debug("clock frame failed", "err", err)
	}

	f := c.renderer.Frame()
	if f.Layout.Empty() {
		observability.Clock().OnSkip(ctx, "zero-size")
		return
	}
	digits := c.renderer.Digits(now)
	observability.Clock().OnTick(ctx, digits, time.Since(start))
	if c.onFrame != nil {
		c.onFrame(f, digits)
	}
}
