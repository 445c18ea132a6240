package server

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/glyphclock/pkg/errors"
	"github.com/matzehuels/glyphclock/pkg/flash"
	"github.com/matzehuels/glyphclock/pkg/playlist"
)

type playlistResponse struct {
	playlist.State
	Queue []playlist.Track `json:"queue"`
}

func (s *Server) handlePlaylist(w http.ResponseWriter, r *http.Request) {
	if s.Player == nil {
		s.writeError(w, r, notConfigured("playlist"))
		return
	}
	writeJSON(w, http.StatusOK, playlistResponse{State: s.Player.State(), Queue: s.Player.Tracks()})
}

func (s *Server) playerAction(fn func(context.Context, *playlist.Player) playlist.State) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.Player == nil {
			s.writeError(w, r, notConfigured("playlist"))
			return
		}
		writeJSON(w, http.StatusOK, fn(r.Context(), s.Player))
	}
}

// handleTrack selects track n, counted from 1.
func (s *Server) handleTrack(w http.ResponseWriter, r *http.Request) {
	if s.Player == nil {
		s.writeError(w, r, notConfigured("playlist"))
		return
	}
	raw := chi.URLParam(r, "n")
	n, err := strconv.Atoi(raw)
	if err != nil {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "track must be a number, got %q", raw))
		return
	}
	st, err := s.Player.Select(r.Context(), n-1)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleFlash(w http.ResponseWriter, r *http.Request) {
	if s.Flash == nil || s.FlashState == nil {
		s.writeError(w, r, notConfigured("flash"))
		return
	}
	writeJSON(w, http.StatusOK, s.flashSnapshot())
}

func (s *Server) flashAction(fn func(*flash.Controller)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.Flash == nil || s.FlashState == nil {
			s.writeError(w, r, notConfigured("flash"))
			return
		}
		fn(s.Flash)
		writeJSON(w, http.StatusOK, s.flashSnapshot())
	}
}

type flashResponse struct {
	flash.Snapshot
	Active bool `json:"active"`
}

func (s *Server) flashSnapshot() flashResponse {
	return flashResponse{Snapshot: s.FlashState.Snapshot(), Active: s.Flash.Active()}
}

type viewsResponse struct {
	Views  []string `json:"views"`
	Active string   `json:"active"`
}

func (s *Server) handleViews(w http.ResponseWriter, r *http.Request) {
	if s.Views == nil {
		s.writeError(w, r, notConfigured("views"))
		return
	}
	writeJSON(w, http.StatusOK, viewsResponse{Views: s.Views.Names(), Active: s.Views.Active()})
}

func (s *Server) handleShowView(w http.ResponseWriter, r *http.Request) {
	if s.Views == nil {
		s.writeError(w, r, notConfigured("views"))
		return
	}
	if err := s.Views.Show(r.Context(), chi.URLParam(r, "name")); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewsResponse{Views: s.Views.Names(), Active: s.Views.Active()})
}
