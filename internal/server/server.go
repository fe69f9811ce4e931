// Package server serves the matrix forms over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"hoshin-matrix/internal/config"
	"hoshin-matrix/internal/hoshin"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
)

const maxUploadBytes = 10 << 20

// HTTPServer serves both workflows and keeps per-session state in memory.
type HTTPServer struct {
	generator *hoshin.Generator
	sessions  *SessionStore
	pages     *pages
	router    chi.Router
	config    config.ServerConfig
}

// NewHTTPServer creates the server and parses the embedded templates.
func NewHTTPServer(generator *hoshin.Generator, cfg config.ServerConfig) (*HTTPServer, error) {
	p, err := loadPages()
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}
	s := &HTTPServer{
		generator: generator,
		sessions:  NewSessionStore(cfg.SessionTTL),
		pages:     p,
		config:    cfg,
	}
	s.router = s.setupRouter()
	return s, nil
}

func (s *HTTPServer) setupRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(hlog.NewHandler(log.Logger))
	r.Use(accessLog)
	r.Use(middleware.Recoverer)

	r.Get("/", s.withSession(s.handleIndex))
	r.Post("/mode", s.withSession(s.handleMode))
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Route("/auto", func(r chi.Router) {
		r.Post("/generate", s.withSession(s.handleGenerate))
		r.Get("/download", s.withSession(s.handleDownload))
	})

	r.Post("/manual", s.withSession(s.handleManualUpdate))
	r.Post("/manual/export", s.withSession(s.handleManualExport))
	r.Post("/manual/import", s.withSession(s.handleManualImport))

	return r
}

func accessLog(next http.Handler) http.Handler {
	return hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("req_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request")
	})(next)
}

// Router returns the chi router, mostly for tests.
func (s *HTTPServer) Router() chi.Router {
	return s.router
}

func (s *HTTPServer) Addr() string {
	return s.config.Addr()
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.Addr(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	go s.sessions.Run(ctx)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Info().Msgf("HTTP server running at http://%s", ln.Addr())
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
