package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/glyphclock/pkg/buildinfo"
	"github.com/matzehuels/glyphclock/pkg/clock"
	"github.com/matzehuels/glyphclock/pkg/errors"
	"github.com/matzehuels/glyphclock/pkg/glyph"
	"github.com/matzehuels/glyphclock/pkg/pipeline"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

// handleClock serves one rendered frame. Query parameters:
//
//	w, h    logical size
//	ratio   device pixel ratio
//	t       HH:MM:SS or HHMMSS, today in the server's location
//	bg      background "#rrggbb"
//	cols    terminal columns (txt only)
//	refresh bypass the frame cache
func (s *Server) handleClock(format string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts, err := s.frameOptions(r)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		opts.Formats = []string{format}

		res, err := s.Runner.Render(r.Context(), opts)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		hit := "miss"
		if res.CacheInfo.Hits[format] {
			hit = "hit"
		}
		w.Header().Set("Content-Type", pipeline.ContentType(format))
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("X-Clock-Time", res.Mirror)
		w.Header().Set("X-Cache", hit)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(res.Artifacts[format])
	}
}

func (s *Server) frameOptions(r *http.Request) (pipeline.Options, error) {
	opts := s.Defaults
	opts.Time = s.Now()
	opts.Logger = s.Logger
	opts.Formats = nil
	if opts.Location != nil {
		opts.Time = opts.Time.In(opts.Location)
	}

	q := r.URL.Query()
	floats := []struct {
		key string
		dst *float64
	}{
		{"w", &opts.Width},
		{"h", &opts.Height},
		{"ratio", &opts.PixelRatio},
	}
	for _, f := range floats {
		v := q.Get(f.key)
		if v == "" {
			continue
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "%s must be a number, got %q", f.key, v)
		}
		*f.dst = n
	}
	if v := q.Get("cols"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "cols must be an integer, got %q", v)
		}
		opts.Columns = n
	}
	if v := q.Get("t"); v != "" {
		t, err := errors.ParseClockTime(v, opts.Time)
		if err != nil {
			return opts, err
		}
		opts.Time = t
	}
	if v := q.Get("bg"); v != "" {
		opts.Background = v
	}
	if v := q.Get("refresh"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "refresh must be a boolean, got %q", v)
		}
		opts.Refresh = b
	}
	return opts, nil
}

type timeResponse struct {
	Time   time.Time `json:"time"`
	Unix   int64     `json:"unix"`
	Digits string    `json:"digits"`
	Mirror string    `json:"mirror"`
	Zone   string    `json:"zone"`
}

func (s *Server) handleTime(w http.ResponseWriter, r *http.Request) {
	loc := s.Defaults.Location
	if loc == nil {
		loc = time.Local
	}
	t := s.Now().In(loc).Truncate(time.Second)
	zone, _ := t.Zone()
	writeJSON(w, http.StatusOK, timeResponse{
		Time:   t,
		Unix:   t.Unix(),
		Digits: t.Format(clock.DigitsLayout),
		Mirror: t.Format(clock.MirrorLayout),
		Zone:   zone,
	})
}

type glyphResponse struct {
	Digit   int         `json:"digit"`
	Seed    uint32      `json:"seed"`
	Strokes glyph.Glyph `json:"strokes"`
}

func (s *Server) handleGlyphs(w http.ResponseWriter, r *http.Request) {
	all := glyph.All()
	out := make([]glyphResponse, 0, len(all))
	for d, g := range all {
		out = append(out, glyphResponse{Digit: d, Seed: glyph.Seed(d), Strokes: g})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGlyph(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSpace(chi.URLParam(r, "digit"))
	d, err := strconv.Atoi(raw)
	if err != nil || d < 0 || d >= glyph.Digits {
		s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "no glyph for %q", raw))
		return
	}
	writeJSON(w, http.StatusOK, glyphResponse{Digit: d, Seed: glyph.Seed(d), Strokes: glyph.Lookup(d)})
}
