// Package flash implements the hero-image hover effect: while hovered the
// image flickers through random stills and the page shakes, for at most a
// fixed duration.
//
// A [Controller] runs the effect against a [Target] on its own goroutine.
// Every Hover restarts the effect; Leave, the auto-reset and Close all
// restore the original image.
package flash

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Defaults for the effect.
const (
	DefaultOriginal  = "simulation-scales.jpg"
	DefaultPattern   = "flash-%02d.jpg"
	DefaultCount     = 98
	DefaultInterval  = 75 * time.Millisecond
	DefaultSwapDelay = 10 * time.Millisecond
	DefaultLength    = 2 * time.Second
)

// Target receives the effect's visual state.
type Target interface {
	SetImage(src string)
	SetFlashOut(on bool)
	SetShake(on bool)
}

// Images returns count image names built from a pattern with one %02d
// verb, numbered from 1.
func Images(pattern string, count int) []string {
	images := make([]string, count)
	for i := range images {
		images[i] = fmt.Sprintf(pattern, i+1)
	}
	return images
}

// Controller is safe for concurrent use.
type Controller struct {
	mu       sync.Mutex
	target   Target
	images   []string
	original string
	interval time.Duration
	swap     time.Duration
	length   time.Duration
	rng      *rand.Rand
	logger   *log.Logger

	gen    uint64
	cancel context.CancelFunc
	active bool
	wg     sync.WaitGroup
}

// Option configures a Controller.
type Option func(*Controller)

// WithImages sets the flash stills.
func WithImages(images []string) Option {
	return func(c *Controller) {
		if len(images) > 0 {
			c.images = images
		}
	}
}

// WithOriginal sets the image restored on reset.
func WithOriginal(src string) Option {
	return func(c *Controller) {
		if src != "" {
			c.original = src
		}
	}
}

// WithTiming sets the flash interval, the delay between hiding the image
// and swapping it, and the total effect length. Zero values keep defaults.
func WithTiming(interval, swap, length time.Duration) Option {
	return func(c *Controller) {
		if interval > 0 {
			c.interval = interval
		}
		if swap > 0 {
			c.swap = swap
		}
		if length > 0 {
			c.length = length
		}
	}
}

// WithSeed makes image selection reproducible.
func WithSeed(seed uint64) Option {
	return func(c *Controller) { c.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a controller for target.
func New(target Target, opts ...Option) *Controller {
	c := &Controller{
		target:   target,
		images:   Images(DefaultPattern, DefaultCount),
		original: DefaultOriginal,
		interval: DefaultInterval,
		swap:     DefaultSwapDelay,
		length:   DefaultLength,
		rng:      rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.WithPrefix("flash")
	return c
}

// Preload returns every image the effect may show, for warming a cache.
func (c *Controller) Preload() []string {
	return append([]string{c.original}, c.images...)
}

// Original returns the image shown at rest.
func (c *Controller) Original() string { return c.original }

// Active reports whether the effect is running.
func (c *Controller) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// Hover resets and then starts the effect.
func (c *Controller) Hover() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked()

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.active = true
	gen := c.gen
	c.wg.Add(1)
	go c.run(ctx, gen)
	c.logger.Debug("flash started", "gen", gen)
}

// Leave stops the effect and restores the original image.
func (c *Controller) Leave() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked()
}

// Close stops the effect and waits for its goroutine to exit.
func (c *Controller) Close() error {
	c.Leave()
	c.wg.Wait()
	return nil
}

// resetLocked cancels any running effect and restores the target.
func (c *Controller) resetLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.gen++
	c.active = false
	c.target.SetFlashOut(false)
	c.target.SetImage(c.original)
	c.target.SetShake(false)
}

func (c *Controller) run(ctx context.Context, gen uint64) {
	defer c.wg.Done()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	stop := time.NewTimer(c.length)
	defer stop.Stop()

	var swap <-chan time.Time
	shake := false

	for {
		select {
		case <-ctx.Done():
			return
		case <-stop.C:
			c.mu.Lock()
			if c.gen == gen {
				c.resetLocked()
				c.logger.Debug("flash timed out", "gen", gen)
			}
			c.mu.Unlock()
			return
		case <-ticker.C:
			if !c.apply(gen, func() {
				c.target.SetFlashOut(true)
				c.target.SetShake(shake)
			}) {
				return
			}
			shake = !shake
			swap = time.After(c.swap)
		case <-swap:
			swap = nil
			if !c.apply(gen, func() {
				c.target.SetImage(c.images[c.rng.IntN(len(c.images))])
				c.target.SetFlashOut(false)
			}) {
				return
			}
		}
	}
}

// apply runs fn if gen is still current and reports whether it was.
func (c *Controller) apply(gen uint64, fn func()) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen {
		return false
	}
	fn()
	return true
}
