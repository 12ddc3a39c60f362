// Package api exposes the watch analysis pipeline, the analysis history and
// the reference catalog over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/raine/watch-appraiser/internal/analysis"
	"github.com/raine/watch-appraiser/internal/catalog"
	"github.com/raine/watch-appraiser/internal/storage"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultMaxUploadSize bounds multipart image uploads.
	DefaultMaxUploadSize = 20 << 20
	// ClientIDHeader identifies the caller for history scoping.
	ClientIDHeader = "X-Client-ID"

	shutdownTimeout = 10 * time.Second
)

// Analyzer runs the analysis pipeline for an image reference.
type Analyzer interface {
	Analyze(ctx context.Context, src, language string) (*analysis.Result, error)
}

// Server holds the dependencies of the HTTP handlers.
type Server struct {
	analyzer  Analyzer
	store     storage.AnalysisStore
	catalog   *catalog.Catalog
	uploadDir string
	maxUpload int64
}

type Option func(*Server)

// WithUploadDir sets where uploaded images are spooled. Defaults to the
// system temp directory.
func WithUploadDir(dir string) Option {
	return func(s *Server) { s.uploadDir = dir }
}

// WithMaxUploadSize sets the multipart upload limit in bytes.
func WithMaxUploadSize(n int64) Option {
	return func(s *Server) { s.maxUpload = n }
}

// NewServer creates the API server.
func NewServer(analyzer Analyzer, store storage.AnalysisStore, cat *catalog.Catalog, opts ...Option) *Server {
	s := &Server{
		analyzer:  analyzer,
		store:     store,
		catalog:   cat,
		maxUpload: DefaultMaxUploadSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		requestLogger,
		middleware.Recoverer,
	)

	r.Get("/healthz", s.health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Route("/analyses", func(r chi.Router) {
			r.Post("/", s.createAnalysis)
			r.Get("/", s.listAnalyses)
			r.Get("/{id}", s.getAnalysis)
			r.Delete("/{id}", s.deleteAnalysis)
		})
		r.Route("/catalog", func(r chi.Router) {
			r.Get("/brands", s.listBrands)
			r.Get("/brands/{brand}", s.brandModels)
			r.Get("/references/{ref}", s.findReference)
		})
	})

	return r
}

// Run serves handler on addr until ctx is canceled, then shuts down gracefully.
func Run(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("http api listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	log.Info().Msg("shutting down http api")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			log.Info().
				Str("requestID", middleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Msg("http request")
		}()
		next.ServeHTTP(ww, r)
	})
}
