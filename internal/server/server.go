// Package server serves the clock, the feed and the player state over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/glyphclock/pkg/feed"
	"github.com/matzehuels/glyphclock/pkg/flash"
	"github.com/matzehuels/glyphclock/pkg/pipeline"
	"github.com/matzehuels/glyphclock/pkg/playlist"
	"github.com/matzehuels/glyphclock/pkg/view"
)

// Deps holds the components the server exposes. Runner is required; nil
// components disable their routes with 404s.
type Deps struct {
	Runner *pipeline.Runner
	Feed   *feed.Loader
	Player *playlist.Player
	Views  *view.Switcher
	Flash  *flash.Controller
	// FlashState is the Target Flash drives, reported by GET /api/flash.
	FlashState *flash.State
	Logger     *log.Logger

	// Frame defaults for /clock.* requests without query overrides.
	Defaults pipeline.Options

	// Now defaults to time.Now.
	Now func() time.Time
}

// Server is an http.Handler.
type Server struct {
	Deps
	router chi.Router
}

// New builds the router.
func New(d Deps) *Server {
	if d.Logger == nil {
		d.Logger = log.Default()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Runner == nil {
		d.Runner = pipeline.NewRunner(nil, d.Logger)
	}
	s := &Server{Deps: d}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	for _, format := range pipeline.Formats {
		r.Get("/clock."+format, s.handleClock(format))
	}
	r.Get("/feed", s.handleFeedHTML)

	r.Route("/api", func(r chi.Router) {
		r.Get("/version", s.handleVersion)
		r.Get("/time", s.handleTime)
		r.Get("/glyphs", s.handleGlyphs)
		r.Get("/glyphs/{digit}", s.handleGlyph)
		r.Get("/feed", s.handleFeed)

		r.Route("/playlist", func(r chi.Router) {
			r.Get("/", s.handlePlaylist)
			r.Post("/next", s.playerAction(func(ctx context.Context, p *playlist.Player) playlist.State { return p.Next(ctx) }))
			r.Post("/prev", s.playerAction(func(ctx context.Context, p *playlist.Player) playlist.State { return p.Prev(ctx) }))
			r.Post("/toggle", s.playerAction(func(ctx context.Context, p *playlist.Player) playlist.State { return p.Toggle(ctx) }))
			r.Post("/ended", s.playerAction(func(ctx context.Context, p *playlist.Player) playlist.State { return p.Ended(ctx) }))
			r.Post("/track/{n}", s.handleTrack)
		})

		r.Route("/flash", func(r chi.Router) {
			r.Get("/", s.handleFlash)
			r.Post("/hover", s.flashAction((*flash.Controller).Hover))
			r.Post("/leave", s.flashAction((*flash.Controller).Leave))
		})

		r.Get("/views", s.handleViews)
		r.Post("/views/{name}", s.handleShowView)
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string, readTimeout, writeTimeout time.Duration) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.Logger.Info("listening", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.Logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"id", middleware.GetReqID(r.Context()))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
