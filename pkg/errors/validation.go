package errors

import (
	"math"
	"slices"
	"strings"
	"time"
)

// MaxDimension bounds the logical width and height of a rendered frame.
const MaxDimension = 8192

// MaxPixelRatio bounds the device pixel ratio of a rendered frame.
const MaxPixelRatio = 4

// MaxPixels bounds the physical pixel count (width·height·ratio²) of a
// rendered frame.
const MaxPixels = 16 << 20

// MaxTerminalRows bounds the text rows of a terminal frame.
const MaxTerminalRows = 1000

// ValidateFormat checks that format is one of allowed.
func ValidateFormat(format string, allowed []string) error {
	if format == "" {
		return New(ErrCodeInvalidFormat, "format cannot be empty")
	}
	if !slices.Contains(allowed, format) {
		return New(ErrCodeInvalidFormat, "unknown format %q (want one of %s)", format, strings.Join(allowed, ", "))
	}
	return nil
}

// ValidateSize checks a logical frame size.
//
// Validation rules:
//   - Both dimensions must be finite and positive
//   - Neither may exceed MaxDimension
func ValidateSize(width, height float64) error {
	for _, v := range []float64{width, height} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return New(ErrCodeInvalidSize, "size must be positive, got %vx%v", width, height)
		}
		if v > MaxDimension {
			return New(ErrCodeInvalidSize, "size %vx%v exceeds %d", width, height, MaxDimension)
		}
	}
	return nil
}

// ValidatePixelRatio checks a device pixel ratio. Zero means "use 1" and is
// accepted.
func ValidatePixelRatio(ratio float64) error {
	if math.IsNaN(ratio) || ratio < 0 || ratio > MaxPixelRatio {
		return New(ErrCodeInvalidSize, "pixel ratio must be in [0, %d], got %v", MaxPixelRatio, ratio)
	}
	return nil
}

// ValidatePixels checks that a frame of the given logical size and ratio
// fits in MaxPixels physical pixels. Sizes should be validated first.
func ValidatePixels(width, height, ratio float64) error {
	if ratio <= 0 {
		ratio = 1
	}
	if px := math.Floor(width*ratio) * math.Floor(height*ratio); px > MaxPixels {
		return New(ErrCodeInvalidSize, "frame %vx%v at ratio %v needs %.0f pixels, limit is %d", width, height, ratio, px, MaxPixels)
	}
	return nil
}

// ValidateTerminalRows checks the row count of a terminal frame.
func ValidateTerminalRows(rows int) error {
	if rows > MaxTerminalRows {
		return New(ErrCodeInvalidSize, "terminal frame needs %d rows, limit is %d", rows, MaxTerminalRows)
	}
	return nil
}

// ParseClockTime parses "HH:MM:SS" (or "HHMMSS") as a time of day on the
// date of base, in base's location.
func ParseClockTime(s string, base time.Time) (time.Time, error) {
	layout := "15:04:05"
	if !strings.Contains(s, ":") {
		layout = "150405"
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, Wrap(ErrCodeInvalidTime, err, "invalid time %q (want HH:MM:SS)", s)
	}
	y, m, d := base.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), 0, base.Location()), nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
