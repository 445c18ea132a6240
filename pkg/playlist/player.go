package playlist

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/glyphclock/pkg/errors"
)

// Button labels.
const (
	LabelPlay  = "Play"
	LabelPause = "Pause"
)

// Track is one playlist entry.
type Track struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Src    string `json:"src"`
}

// DefaultTracks returns the built-in nine-track playlist.
func DefaultTracks() []Track {
	tracks := make([]Track, 9)
	for i := range tracks {
		tracks[i] = Track{
			Title: fmt.Sprintf("Track %02d", i+1),
			Src:   fmt.Sprintf("audio/%02d-track.wav", i+1),
		}
	}
	return tracks
}

// State is a snapshot of the player for display.
type State struct {
	Index   int    `json:"index"`
	Title   string `json:"title"`
	Artist  string `json:"artist"`
	Playing bool   `json:"playing"`
	Label   string `json:"label"`
	Tracks  int    `json:"tracks"`
}

// Player is safe for concurrent use.
type Player struct {
	mu     sync.Mutex
	tracks []Track
	audio  Audio
	logger *log.Logger

	index  int
	title  string
	artist string
	label  string
}

// New creates a player over tracks. An empty list uses DefaultTracks; a nil
// audio handle uses a NullAudio.
func New(tracks []Track, audio Audio, logger *log.Logger) *Player {
	if len(tracks) == 0 {
		tracks = DefaultTracks()
	}
	if audio == nil {
		audio = NewNullAudio()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Player{
		tracks: tracks,
		audio:  audio,
		logger: logger.WithPrefix("playlist"),
		label:  LabelPlay,
	}
}

// Len returns the number of tracks.
func (p *Player) Len() int { return len(p.tracks) }

// Tracks returns a copy of the playlist.
func (p *Player) Tracks() []Track {
	return append([]Track(nil), p.tracks...)
}

// LoadTrack makes track i current. Out-of-range indices wrap: below zero
// selects the last track, past the end selects the first. With autoplay the
// track starts playing; otherwise the player is paused.
func (p *Player) LoadTrack(ctx context.Context, i int, autoplay bool) State {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.load(ctx, i, autoplay)
	return p.state()
}

// Select loads the track at a zero-based index and plays it, for the
// numbered track buttons. Unlike LoadTrack it does not wrap.
func (p *Player) Select(ctx context.Context, i int) (State, error) {
	if i < 0 || i >= len(p.tracks) {
		return State{}, errors.New(errors.ErrCodeNotFound, "track %d not found (have %d)", i+1, len(p.tracks))
	}
	return p.LoadTrack(ctx, i, true), nil
}

// Next plays the following track.
func (p *Player) Next(ctx context.Context) State {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.load(ctx, p.index+1, true)
	return p.state()
}

// Prev plays the preceding track.
func (p *Player) Prev(ctx context.Context) State {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.load(ctx, p.index-1, true)
	return p.state()
}

// Ended is called when the current track finishes; it plays the next one.
func (p *Player) Ended(ctx context.Context) State { return p.Next(ctx) }

// Toggle plays when paused and pauses when playing.
func (p *Player) Toggle(ctx context.Context) State {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.audio.Paused() {
		p.play(ctx, "toggle")
	} else {
		p.audio.Pause()
		p.label = LabelPlay
	}
	return p.state()
}

// Attach starts from an empty source and loads the current track without
// playing it.
func (p *Player) Attach(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.audio.SetSource("")
	p.load(ctx, p.index, false)
	return nil
}

// Detach pauses playback and clears the source.
func (p *Player) Detach() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.audio.Pause()
	p.audio.SetSource("")
	p.label = LabelPlay
}

// State returns a snapshot.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state()
}

func (p *Player) load(ctx context.Context, i int, autoplay bool) {
	n := len(p.tracks)
	if i < 0 {
		i = n - 1
	} else if i >= n {
		i = 0
	}
	p.index = i
	t := p.tracks[i]

	p.audio.SetSource(t.Src)
	p.title, p.artist = t.Title, t.Artist
	p.audio.Load()

	if autoplay {
		p.play(ctx, t.Title)
		return
	}
	p.audio.Pause()
	p.label = LabelPlay
}

// play starts playback; a refusal is logged and leaves the player paused.
func (p *Player) play(ctx context.Context, what string) {
	if err := p.audio.Play(ctx); err != nil {
		p.logger.Warn("playback failed", "track", what, "err", err)
		p.audio.Pause()
		p.label = LabelPlay
		return
	}
	p.label = LabelPause
}

func (p *Player) state() State {
	return State{
		Index:   p.index,
		Title:   p.title,
		Artist:  p.artist,
		Playing: !p.audio.Paused(),
		Label:   p.label,
		Tracks:  len(p.tracks),
	}
}
