package playlist

import (
	"context"
	"errors"
	"sync"
)

// ErrPlaybackRejected is returned by Audio.Play when playback is refused.
var ErrPlaybackRejected = errors.New("playback rejected")

// Audio is the playback handle a Player drives.
type Audio interface {
	SetSource(src string)
	Load()
	Play(ctx context.Context) error
	Pause()
	Paused() bool
}

// NullAudio is an in-memory Audio. It plays whatever it is given unless
// Reject is set.
type NullAudio struct {
	mu     sync.Mutex
	src    string
	paused bool
	loads  int

	// Reject makes Play fail with ErrPlaybackRejected.
	Reject bool
}

// NewNullAudio returns a paused NullAudio with no source.
func NewNullAudio() *NullAudio { return &NullAudio{paused: true} }

func (a *NullAudio) SetSource(src string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.src = src
}

func (a *NullAudio) Load() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.loads++
	a.paused = true
}

func (a *NullAudio) Play(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Reject {
		return ErrPlaybackRejected
	}
	a.paused = false
	return nil
}

func (a *NullAudio) Pause() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.paused = true
}

func (a *NullAudio) Paused() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.paused
}

// Source returns the current source.
func (a *NullAudio) Source() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.src
}

// Loads returns how many times Load was called.
func (a *NullAudio) Loads() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loads
}

var _ Audio = (*NullAudio)(nil)
