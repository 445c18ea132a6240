package playlist

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/glyphclock/pkg/errors"
)

func newTestPlayer(audio Audio) *Player {
	return New(nil, audio, log.New(io.Discard))
}

func TestDefaultTracks(t *testing.T) {
	tracks := DefaultTracks()
	if len(tracks) != 9 {
		t.Fatalf("len = %d, want 9", len(tracks))
	}
	if tracks[0].Title != "Track 01" || tracks[0].Src != "audio/01-track.wav" {
		t.Errorf("first track = %+v", tracks[0])
	}
	if tracks[8].Title != "Track 09" || tracks[8].Src != "audio/09-track.wav" {
		t.Errorf("last track = %+v", tracks[8])
	}
}

func TestLoadTrackWraps(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		in, want int
	}{
		{0, 0},
		{4, 4},
		{-1, 8},
		{9, 0},
		{8, 8},
	}
	for _, tt := range tests {
		audio := NewNullAudio()
		p := newTestPlayer(audio)
		s := p.LoadTrack(ctx, tt.in, false)
		if s.Index != tt.want {
			t.Errorf("LoadTrack(%d).Index = %d, want %d", tt.in, s.Index, tt.want)
		}
		if audio.Source() != DefaultTracks()[tt.want].Src {
			t.Errorf("LoadTrack(%d) source = %q", tt.in, audio.Source())
		}
	}
}

func TestLoadTrackAutoplay(t *testing.T) {
	ctx := context.Background()
	audio := NewNullAudio()
	p := newTestPlayer(audio)

	s := p.LoadTrack(ctx, 2, true)
	if !s.Playing || s.Label != LabelPause || s.Title != "Track 03" {
		t.Errorf("autoplay state = %+v", s)
	}
	s = p.LoadTrack(ctx, 3, false)
	if s.Playing || s.Label != LabelPlay {
		t.Errorf("no-autoplay state = %+v", s)
	}
	if audio.Loads() != 2 {
		t.Errorf("loads = %d, want 2", audio.Loads())
	}
}

func TestPlaybackRejected(t *testing.T) {
	ctx := context.Background()
	audio := NewNullAudio()
	audio.Reject = true
	p := newTestPlayer(audio)

	s := p.LoadTrack(ctx, 0, true)
	if s.Playing || s.Label != LabelPlay {
		t.Errorf("rejected autoplay state = %+v, want paused with Play", s)
	}
	s = p.Toggle(ctx)
	if s.Playing || s.Label != LabelPlay {
		t.Errorf("rejected toggle state = %+v, want paused with Play", s)
	}
}

func TestNextPrevEnded(t *testing.T) {
	ctx := context.Background()
	p := newTestPlayer(NewNullAudio())

	if s := p.Prev(ctx); s.Index != 8 {
		t.Errorf("Prev from 0 = %d, want 8", s.Index)
	}
	if s := p.Next(ctx); s.Index != 0 {
		t.Errorf("Next from 8 = %d, want 0", s.Index)
	}
	s := p.Ended(ctx)
	if s.Index != 1 || !s.Playing {
		t.Errorf("Ended = %+v, want track 1 playing", s)
	}
}

func TestToggle(t *testing.T) {
	ctx := context.Background()
	p := newTestPlayer(NewNullAudio())
	if err := p.Attach(ctx); err != nil {
		t.Fatal(err)
	}
	if s := p.Toggle(ctx); !s.Playing || s.Label != LabelPause {
		t.Errorf("first toggle = %+v", s)
	}
	if s := p.Toggle(ctx); s.Playing || s.Label != LabelPlay {
		t.Errorf("second toggle = %+v", s)
	}
}

func TestAttachDetach(t *testing.T) {
	ctx := context.Background()
	audio := NewNullAudio()
	p := newTestPlayer(audio)

	if err := p.Attach(ctx); err != nil {
		t.Fatal(err)
	}
	s := p.State()
	if s.Index != 0 || s.Title != "Track 01" || s.Playing {
		t.Errorf("after Attach = %+v", s)
	}
	if audio.Source() != "audio/01-track.wav" {
		t.Errorf("source = %q", audio.Source())
	}

	p.Next(ctx)
	p.Detach()
	if !audio.Paused() || audio.Source() != "" {
		t.Errorf("after Detach paused=%v source=%q", audio.Paused(), audio.Source())
	}
	if p.State().Label != LabelPlay {
		t.Errorf("label after Detach = %q", p.State().Label)
	}
}

func TestSelect(t *testing.T) {
	ctx := context.Background()
	p := newTestPlayer(NewNullAudio())
	s, err := p.Select(ctx, 4)
	if err != nil || s.Index != 4 || !s.Playing {
		t.Errorf("Select(4) = %+v, %v", s, err)
	}
	if _, err := p.Select(ctx, 9); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Select(9) error = %v, want NOT_FOUND", err)
	}
}

func TestCustomTracks(t *testing.T) {
	p := New([]Track{{Title: "A", Artist: "X", Src: "a.wav"}}, nil, log.New(io.Discard))
	s := p.LoadTrack(context.Background(), 5, false)
	if s.Index != 0 || s.Artist != "X" || s.Tracks != 1 {
		t.Errorf("state = %+v", s)
	}
}
