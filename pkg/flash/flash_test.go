package flash

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func newTestController(s *State, opts ...Option) *Controller {
	base := []Option{
		WithLogger(log.New(io.Discard)),
		WithSeed(7),
		WithTiming(2*time.Millisecond, time.Millisecond, 80*time.Millisecond),
	}
	return New(s, append(base, opts...)...)
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestImages(t *testing.T) {
	images := Images(DefaultPattern, DefaultCount)
	if len(images) != 98 {
		t.Fatalf("len = %d, want 98", len(images))
	}
	if images[0] != "flash-01.jpg" || images[97] != "flash-98.jpg" {
		t.Errorf("images = %s ... %s", images[0], images[97])
	}
}

func TestPreload(t *testing.T) {
	c := newTestController(&State{})
	p := c.Preload()
	if len(p) != 99 || p[0] != DefaultOriginal {
		t.Errorf("Preload = %d entries starting %q", len(p), p[0])
	}
}

func TestHoverFlashes(t *testing.T) {
	s := &State{}
	c := newTestController(s)
	defer c.Close()

	c.Hover()
	if !c.Active() {
		t.Fatal("effect should be active after Hover")
	}
	waitFor(t, "a flash image", func() bool {
		return strings.HasPrefix(s.Snapshot().Image, "flash-")
	})
}

func TestHoverAutoResets(t *testing.T) {
	s := &State{}
	c := newTestController(s)
	defer c.Close()

	c.Hover()
	waitFor(t, "auto reset", func() bool { return !c.Active() })
	snap := s.Snapshot()
	if snap.Image != DefaultOriginal || snap.Shake || snap.FlashOut {
		t.Errorf("after auto reset = %+v", snap)
	}
}

func TestLeaveResets(t *testing.T) {
	s := &State{}
	c := newTestController(s, WithTiming(2*time.Millisecond, time.Millisecond, time.Hour))

	c.Hover()
	waitFor(t, "some swaps", func() bool { return s.Snapshot().Swaps > 3 })
	c.Leave()
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}

	snap := s.Snapshot()
	if snap.Image != DefaultOriginal || snap.Shake || snap.FlashOut {
		t.Errorf("after Leave = %+v", snap)
	}
	if c.Active() {
		t.Error("effect should be inactive after Leave")
	}

	// Nothing changes once the effect is stopped.
	swaps := snap.Swaps
	time.Sleep(20 * time.Millisecond)
	if got := s.Snapshot().Swaps; got != swaps {
		t.Errorf("swaps changed after Leave: %d -> %d", swaps, got)
	}
}

func TestCustomImages(t *testing.T) {
	s := &State{}
	c := newTestController(s, WithImages([]string{"only.jpg"}), WithOriginal("rest.jpg"))
	defer c.Close()

	c.Hover()
	waitFor(t, "custom image", func() bool { return s.Snapshot().Image == "only.jpg" })
	c.Leave()
	if s.Snapshot().Image != "rest.jpg" {
		t.Errorf("original = %q, want rest.jpg", s.Snapshot().Image)
	}
}

func TestHighlighter(t *testing.T) {
	var applied []string
	h := NewHighlighter(func(c string) { applied = append(applied, c) })
	h.Over()
	if h.Color() != HighlightColor {
		t.Errorf("Color after Over = %q", h.Color())
	}
	h.Out()
	if h.Color() != "" {
		t.Errorf("Color after Out = %q", h.Color())
	}
	if len(applied) != 2 || applied[0] != "#FF0000" || applied[1] != "" {
		t.Errorf("applied = %v", applied)
	}
}
