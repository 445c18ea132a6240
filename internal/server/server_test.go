package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/glyphclock/pkg/errors"
	"github.com/matzehuels/glyphclock/pkg/feed"
	"github.com/matzehuels/glyphclock/pkg/flash"
	"github.com/matzehuels/glyphclock/pkg/glyph"
	"github.com/matzehuels/glyphclock/pkg/pipeline"
	"github.com/matzehuels/glyphclock/pkg/playlist"
	"github.com/matzehuels/glyphclock/pkg/view"
)

var at130742 = time.Date(2026, 3, 1, 13, 7, 42, 0, time.UTC)

type fixture struct {
	srv   *Server
	audio *playlist.NullAudio
	views *view.Switcher
	state *flash.State
	flash *flash.Controller
}

func newFixture(t *testing.T, feedURL string) *fixture {
	t.Helper()
	logger := log.New(io.Discard)

	audio := playlist.NewNullAudio()
	player := playlist.New(nil, audio, logger)

	views := view.NewSwitcher(logger)
	views.Register("clock", view.Funcs{})
	views.Register("playlist", player)

	state := &flash.State{}
	fc := flash.New(state,
		flash.WithImages([]string{"a.jpg", "b.jpg"}),
		flash.WithOriginal("orig.jpg"),
		flash.WithTiming(5*time.Millisecond, time.Millisecond, time.Hour),
		flash.WithSeed(1),
		flash.WithLogger(logger))
	t.Cleanup(func() { _ = fc.Close() })

	loader := feed.NewLoader(feedURL,
		feed.WithLogger(logger),
		feed.WithRetry(func(ctx context.Context, fn func() error) error { return fn() }))

	srv := New(Deps{
		Runner:     pipeline.NewRunner(nil, logger),
		Feed:       loader,
		Player:     player,
		Views:      views,
		Flash:      fc,
		FlashState: state,
		Logger:     logger,
		Defaults:   pipeline.Options{Location: time.UTC},
		Now:        func() time.Time { return at130742 },
	})
	return &fixture{srv: srv, audio: audio, views: views, state: state, flash: fc}
}

func (f *fixture) do(t *testing.T, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	f.srv.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestHealth(t *testing.T) {
	f := newFixture(t, "http://127.0.0.1:1/vlog.json")
	rec := f.do(t, http.MethodGet, "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Header().Get("Content-Type") != "application/json" {
		t.Errorf("content type = %q", rec.Header().Get("Content-Type"))
	}
}

func TestClockFormats(t *testing.T) {
	f := newFixture(t, "http://127.0.0.1:1/vlog.json")
	tests := []struct {
		path   string
		ctype  string
		prefix []byte
	}{
		{"/clock.png", "image/png", []byte("\x89PNG")},
		{"/clock.svg", "image/svg+xml", []byte("<?xml")},
		{"/clock.json", "application/json", []byte("{")},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := f.do(t, http.MethodGet, tt.path)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
			}
			if got := rec.Header().Get("Content-Type"); got != tt.ctype {
				t.Errorf("content type = %q, want %q", got, tt.ctype)
			}
			if got := rec.Header().Get("X-Clock-Time"); got != "13:07:42" {
				t.Errorf("X-Clock-Time = %q", got)
			}
			if !bytes.HasPrefix(rec.Body.Bytes(), tt.prefix) {
				t.Errorf("body starts %q, want prefix %q", rec.Body.Bytes()[:min(8, rec.Body.Len())], tt.prefix)
			}
		})
	}
}

func TestClockQuery(t *testing.T) {
	f := newFixture(t, "http://127.0.0.1:1/vlog.json")
	rec := f.do(t, http.MethodGet, "/clock.json?w=300&h=50&t=09:15:00")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	frame := decode[struct {
		Digits string  `json:"digits"`
		Width  float64 `json:"width"`
		Height float64 `json:"height"`
	}](t, rec)
	if frame.Digits != "091500" {
		t.Errorf("digits = %q, want 091500", frame.Digits)
	}
	if frame.Width != 300 || frame.Height != 50 {
		t.Errorf("size = %vx%v, want 300x50", frame.Width, frame.Height)
	}
}

func TestClockBadQuery(t *testing.T) {
	f := newFixture(t, "http://127.0.0.1:1/vlog.json")
	tests := []struct {
		path string
		code errors.Code
	}{
		{"/clock.png?w=wide", errors.ErrCodeInvalidInput},
		{"/clock.png?t=25:00:00", errors.ErrCodeInvalidTime},
		{"/clock.png?w=-5", errors.ErrCodeInvalidSize},
		{"/clock.png?cols=x", errors.ErrCodeInvalidInput},
		{"/clock.png?refresh=maybe", errors.ErrCodeInvalidInput},
		{"/clock.png?w=8192&h=8192&ratio=4", errors.ErrCodeInvalidSize},
		{"/clock.txt?w=1&h=8192&cols=1000", errors.ErrCodeInvalidSize},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := f.do(t, http.MethodGet, tt.path)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			body := decode[errorBody](t, rec)
			if body.Error.Code != tt.code {
				t.Errorf("code = %s, want %s", body.Error.Code, tt.code)
			}
			if body.Error.RequestID == "" {
				t.Error("missing request id")
			}
		})
	}
}

func TestClockCacheHeader(t *testing.T) {
	f := newFixture(t, "http://127.0.0.1:1/vlog.json")
	if got := f.do(t, http.MethodGet, "/clock.svg").Header().Get("X-Cache"); got != "miss" {
		t.Errorf("X-Cache = %q, want miss with caching disabled", got)
	}
}

func TestTime(t *testing.T) {
	f := newFixture(t, "http://127.0.0.1:1/vlog.json")
	got := decode[timeResponse](t, f.do(t, http.MethodGet, "/api/time"))
	if got.Digits != "130742" || got.Mirror != "13:07:42" || got.Zone != "UTC" {
		t.Errorf("time = %+v", got)
	}
	if got.Unix != at130742.Unix() {
		t.Errorf("unix = %d, want %d", got.Unix, at130742.Unix())
	}
}

func TestGlyphs(t *testing.T) {
	f := newFixture(t, "http://127.0.0.1:1/vlog.json")
	all := decode[[]glyphResponse](t, f.do(t, http.MethodGet, "/api/glyphs"))
	if len(all) != glyph.Digits {
		t.Fatalf("glyphs = %d, want %d", len(all), glyph.Digits)
	}
	for d, g := range all {
		if g.Digit != d || g.Seed != glyph.Seed(d) || len(g.Strokes) != len(glyph.Lookup(d)) {
			t.Errorf("glyph %d = digit %d seed %d strokes %d", d, g.Digit, g.Seed, len(g.Strokes))
		}
	}

	one := decode[glyphResponse](t, f.do(t, http.MethodGet, "/api/glyphs/7"))
	if one.Digit != 7 || len(one.Strokes) != len(glyph.Lookup(7)) {
		t.Errorf("glyph 7 = %+v", one)
	}
	for _, bad := range []string{"x", "10", "-1"} {
		if rec := f.do(t, http.MethodGet, "/api/glyphs/"+bad); rec.Code != http.StatusNotFound {
			t.Errorf("/api/glyphs/%s status = %d, want 404", bad, rec.Code)
		}
	}
}

func TestFeed(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"title": "Hello", "date": "2026-01-02", "text": "first"}]`)
	}))
	defer upstream.Close()
	f := newFixture(t, upstream.URL)

	got := decode[feedResponse](t, f.do(t, http.MethodGet, "/api/feed"))
	if len(got.Entries) != 1 || got.Entries[0].Title != "Hello" {
		t.Errorf("entries = %+v", got.Entries)
	}

	rec := f.do(t, http.MethodGet, "/feed")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "<h3>Hello</h3>") {
		t.Errorf("html = %s", rec.Body.String())
	}
}

func TestFeedUnavailable(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer upstream.Close()
	f := newFixture(t, upstream.URL)

	rec := f.do(t, http.MethodGet, "/api/feed")
	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}
	if body := decode[errorBody](t, rec); body.Error.Code != errors.ErrCodeNetwork {
		t.Errorf("code = %s", body.Error.Code)
	}

	rec = f.do(t, http.MethodGet, "/feed")
	if rec.Code != http.StatusOK {
		t.Errorf("html status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), feed.FallbackMessage) {
		t.Errorf("html = %s, want fallback", rec.Body.String())
	}
}

func TestPlaylist(t *testing.T) {
	f := newFixture(t, "http://127.0.0.1:1/vlog.json")
	tracks := playlist.DefaultTracks()

	got := decode[playlistResponse](t, f.do(t, http.MethodGet, "/api/playlist"))
	if got.Index != 0 || len(got.Queue) != len(tracks) {
		t.Errorf("initial = %+v", got)
	}

	st := decode[playlist.State](t, f.do(t, http.MethodPost, "/api/playlist/prev"))
	if st.Index != len(tracks)-1 {
		t.Errorf("prev from 0 = %d, want %d", st.Index, len(tracks)-1)
	}
	st = decode[playlist.State](t, f.do(t, http.MethodPost, "/api/playlist/next"))
	if st.Index != 0 || !st.Playing || st.Label != playlist.LabelPause {
		t.Errorf("next = %+v", st)
	}
	st = decode[playlist.State](t, f.do(t, http.MethodPost, "/api/playlist/toggle"))
	if st.Playing || st.Label != playlist.LabelPlay {
		t.Errorf("toggle = %+v", st)
	}
	st = decode[playlist.State](t, f.do(t, http.MethodPost, "/api/playlist/track/2"))
	if st.Index != 1 || st.Title != tracks[1].Title {
		t.Errorf("track/2 = %+v", st)
	}
	if f.audio.Source() != tracks[1].Src {
		t.Errorf("source = %q, want %q", f.audio.Source(), tracks[1].Src)
	}

	if rec := f.do(t, http.MethodPost, "/api/playlist/track/99"); rec.Code != http.StatusNotFound {
		t.Errorf("track/99 status = %d, want 404", rec.Code)
	}
	if rec := f.do(t, http.MethodPost, "/api/playlist/track/two"); rec.Code != http.StatusBadRequest {
		t.Errorf("track/two status = %d, want 400", rec.Code)
	}
	if rec := f.do(t, http.MethodGet, "/api/playlist/next"); rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET next status = %d, want 405", rec.Code)
	}
}

func TestViews(t *testing.T) {
	f := newFixture(t, "http://127.0.0.1:1/vlog.json")

	got := decode[viewsResponse](t, f.do(t, http.MethodPost, "/api/views/playlist"))
	if got.Active != "playlist" {
		t.Errorf("active = %q", got.Active)
	}
	if len(got.Views) != 2 || got.Views[0] != "clock" {
		t.Errorf("views = %v", got.Views)
	}
	if rec := f.do(t, http.MethodPost, "/api/views/nope"); rec.Code != http.StatusNotFound {
		t.Errorf("unknown view status = %d, want 404", rec.Code)
	}
	if f.views.Active() != "playlist" {
		t.Errorf("unknown view changed active to %q", f.views.Active())
	}
}

func TestFlash(t *testing.T) {
	f := newFixture(t, "http://127.0.0.1:1/vlog.json")

	got := decode[flashResponse](t, f.do(t, http.MethodPost, "/api/flash/hover"))
	if !got.Active {
		t.Error("hover should start the effect")
	}
	got = decode[flashResponse](t, f.do(t, http.MethodPost, "/api/flash/leave"))
	if got.Active || got.Image != "orig.jpg" || got.Shake || got.FlashOut {
		t.Errorf("after leave = %+v", got)
	}
	got = decode[flashResponse](t, f.do(t, http.MethodGet, "/api/flash"))
	if got.Active {
		t.Errorf("state = %+v", got)
	}
}

func TestDisabledComponents(t *testing.T) {
	srv := New(Deps{Logger: log.New(io.Discard)})
	for _, path := range []string{"/api/feed", "/feed", "/api/playlist", "/api/flash", "/api/views"} {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusNotFound {
			t.Errorf("%s status = %d, want 404", path, rec.Code)
		}
	}
}
