package server

import (
	"bytes"
	"net/http"

	"github.com/matzehuels/glyphclock/pkg/errors"
	"github.com/matzehuels/glyphclock/pkg/feed"
)

type feedResponse struct {
	Entries []feed.Entry `json:"entries"`
	Cached  bool         `json:"cached"`
	Error   string       `json:"error,omitempty"`
}

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	if s.Feed == nil {
		s.writeError(w, r, notConfigured("feed"))
		return
	}
	res := s.Feed.LoadSync(r.Context())
	if res.Err != nil {
		s.writeError(w, r, res.Err)
		return
	}
	entries := res.Entries
	if entries == nil {
		entries = []feed.Entry{}
	}
	writeJSON(w, http.StatusOK, feedResponse{Entries: entries, Cached: res.Cached})
}

// handleFeedHTML always responds 200; load failures render the fallback
// message in place of the entries.
func (s *Server) handleFeedHTML(w http.ResponseWriter, r *http.Request) {
	if s.Feed == nil {
		s.writeError(w, r, notConfigured("feed"))
		return
	}
	res := s.Feed.LoadSync(r.Context())
	if res.Err != nil {
		s.Logger.Warn("feed load failed", "url", s.Feed.URL(), "err", res.Err)
	}
	var buf bytes.Buffer
	if err := feed.Render(&buf, res); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "render feed"))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
