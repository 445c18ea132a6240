// Package pipeline renders clock frames to artifacts with caching.
//
// This is the single entry point the CLI and the HTTP server use to turn a
// time and a frame size into PNG, SVG, JSON or terminal output, so both
// surfaces validate, default and cache identically.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, logger)
//	result, err := runner.Render(ctx, pipeline.Options{
//	    Time:    time.Now(),
//	    Width:   600,
//	    Height:  100,
//	    Formats: []string{pipeline.FormatPNG, pipeline.FormatSVG},
//	})
//	png := result.Artifacts[pipeline.FormatPNG]
//
// Artifacts are cached under [cache.FrameKey], which includes the second
// being drawn; repeated requests within one second are served from cache.
package pipeline

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/glyphclock/pkg/cache"
	"github.com/matzehuels/glyphclock/pkg/errors"
	"github.com/matzehuels/glyphclock/pkg/render/sink"
	"github.com/matzehuels/glyphclock/pkg/surface"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultWidth is the default logical frame width.
	DefaultWidth = float64(sink.DefaultWidth)

	// DefaultHeight is the default logical frame height.
	DefaultHeight = float64(sink.DefaultHeight)

	// DefaultPixelRatio is the default device pixel ratio.
	DefaultPixelRatio = 1.0

	// DefaultColumns is the default terminal width for txt output.
	DefaultColumns = 80
)

// Format constants for output formats.
const (
	FormatPNG  = "png"
	FormatSVG  = "svg"
	FormatJSON = "json"
	FormatTXT  = "txt"
)

// Formats lists the supported output formats.
var Formats = []string{FormatPNG, FormatSVG, FormatJSON, FormatTXT}

// ContentType returns the MIME type for a format.
func ContentType(format string) string {
	switch format {
	case FormatPNG:
		return "image/png"
	case FormatSVG:
		return "image/svg+xml"
	case FormatJSON:
		return "application/json"
	default:
		return "text/plain; charset=utf-8"
	}
}

// =============================================================================
// Options
// =============================================================================

// Options configures one render.
type Options struct {
	Time       time.Time `json:"time"`
	Width      float64   `json:"width,omitempty"`
	Height     float64   `json:"height,omitempty"`
	PixelRatio float64   `json:"pixel_ratio,omitempty"`
	Formats    []string  `json:"formats,omitempty"`
	Background string    `json:"background,omitempty"` // "#rrggbb"; empty is transparent
	Columns    int       `json:"columns,omitempty"`    // txt only
	Refresh    bool      `json:"refresh,omitempty"`    // bypass cache reads

	// Runtime options (not serialized)
	Location *time.Location `json:"-"`
	Logger   *log.Logger    `json:"-"`

	background *surface.Color
	validated  bool
}

// Result contains the outputs of a render.
type Result struct {
	// Digits is the "HHMMSS" string drawn.
	Digits string

	// Mirror is the "HH:MM:SS" text for the frame.
	Mirror string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which formats came from cache.
	CacheInfo CacheInfo
}

// Stats contains render statistics.
type Stats struct {
	RenderTime time.Duration
	Bytes      int
}

// CacheInfo tracks cache hits per format.
type CacheInfo struct {
	Hits      map[string]bool // format -> served from cache
	RenderHit bool            // every format came from cache
}

// =============================================================================
// Validation
// =============================================================================

// ValidateFormats checks that all formats are supported.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := errors.ValidateFormat(f, Formats); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks the options and fills in defaults.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Time.IsZero() {
		o.Time = time.Now()
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.PixelRatio == 0 {
		o.PixelRatio = DefaultPixelRatio
	}
	if o.Columns == 0 {
		o.Columns = DefaultColumns
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatPNG}
	}
	if o.Location == nil {
		o.Location = time.Local
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	if err := errors.ValidateSize(o.Width, o.Height); err != nil {
		return err
	}
	if err := errors.ValidatePixelRatio(o.PixelRatio); err != nil {
		return err
	}
	if o.Columns < 0 || o.Columns > 1000 {
		return errors.New(errors.ErrCodeInvalidSize, "columns must be in [1, 1000], got %d", o.Columns)
	}
	if err := errors.ValidatePixels(o.Width, o.Height, o.PixelRatio); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if slices.Contains(o.Formats, FormatTXT) {
		_, rows := sink.TerminalSize(o.Columns, o.Width, o.Height)
		if err := errors.ValidateTerminalRows(rows); err != nil {
			return err
		}
	}
	formats := slices.Clone(o.Formats)
	slices.Sort(formats)
	o.Formats = slices.Compact(formats)
	if o.Background != "" {
		c, err := surface.ParseHex(o.Background)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid background")
		}
		o.background = &c
	}
	o.validated = true
	return nil
}

// FrameKeyOpts returns cache key options for one format.
func (o *Options) FrameKeyOpts(format string) cache.FrameKeyOpts {
	k := cache.FrameKeyOpts{
		Width:      o.Width,
		Height:     o.Height,
		PixelRatio: o.PixelRatio,
		Format:     format,
		Background: o.Background,
	}
	if format == FormatTXT {
		k.Columns = o.Columns
	}
	if o.Location != nil {
		k.Location = o.Location.String()
	}
	return k
}

// sinkOptions returns the options shared by every sink.
func (o *Options) sinkOptions() []sink.Option {
	opts := []sink.Option{
		sink.WithSize(o.Width, o.Height),
		sink.WithScale(o.PixelRatio),
		sink.WithLocation(o.Location),
	}
	if o.background != nil {
		opts = append(opts, sink.WithBackground(*o.background))
	}
	return opts
}
