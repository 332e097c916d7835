// Package server exposes map generation over HTTP: deterministic one-shot
// previews rendered straight from query parameters, plus the stored-run
// index. Growth stays single-threaded per request; concurrency comes from
// the usual one-goroutine-per-request serving model.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/codebox/generative-city-map/internal/experiment"
	"github.com/codebox/generative-city-map/internal/storage"
)

// Server serves map previews. The base config fills in every parameter a
// request leaves out, so /map.svg with no query string renders the default
// city.
type Server struct {
	base   experiment.Config
	store  *storage.Store
	logger *log.Logger
}

func New(base experiment.Config, store *storage.Store, logger *log.Logger) *Server {
	if base.MaxTicks <= 0 {
		base.MaxTicks = experiment.DefaultMaxTicks
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{base: base, store: store, logger: logger}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/map.svg", s.handleSVG)
	r.Get("/map.png", s.handlePNG)
	r.Get("/runs", s.handleRuns)
	return r
}

// ListenAndServe blocks serving on addr until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	s.logger.Info("listening", "addr", addr)
	return srv.ListenAndServe()
}

// requestLogger logs one line per request and threads the logger through the
// request context for handlers.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(withLogger(r.Context(), s.logger)))
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"dur", time.Since(start).Round(time.Millisecond),
		)
	})
}

// ctxKey is the type for context keys used in this package.
type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, falling back to the
// default logger so handlers always have one.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
