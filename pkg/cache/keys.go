package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Key prefixes, also used as the keyType reported to cache hooks.
const (
	PrefixFrame = "frame"
	PrefixFeed  = "feed"
)

// Default time-to-live per entry type.
const (
	TTLFrame = 10 * time.Minute
	TTLFeed  = 15 * time.Minute
)

// FrameKeyOpts identifies one rendered frame artifact.
type FrameKeyOpts struct {
	Width      float64 `json:"w"`
	Height     float64 `json:"h"`
	PixelRatio float64 `json:"r"`
	Format     string  `json:"f"`
	Background string  `json:"bg,omitempty"`
	Columns    int     `json:"cols,omitempty"`
	Location   string  `json:"tz,omitempty"`
}

// FrameKey returns the key for a frame rendered at t. Frames change once a
// second, so t is truncated to the second.
func FrameKey(t time.Time, opts FrameKeyOpts) string {
	return hashKey(PrefixFrame, t.Truncate(time.Second).Unix(), opts)
}

// FeedKey returns the key for the raw response body of a feed URL.
func FeedKey(url string) string {
	return hashKey(PrefixFeed, url)
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return fmt.Sprintf("%s:%s", prefix, Hash(data))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
