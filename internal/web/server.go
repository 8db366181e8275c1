// Package web serves the rendered lesson grid over HTTP.
package web

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/aulas/internal/domain"
	"github.com/mmcdole/aulas/internal/i18n"
	"github.com/mmcdole/aulas/internal/render"
)

// videoResolver turns a part id into a playable media URL
type videoResolver interface {
	Resolve(ctx context.Context, partID string) (string, error)
}

// Options configures the web handler
type Options struct {
	Lang    string
	Timeout time.Duration // per-request deadline, 0 uses 30s
	Logger  *slog.Logger
}

type server struct {
	grouped  *domain.GroupedLessons
	alert    string
	resolver videoResolver
	lang     string
	logger   *slog.Logger
}

// NewServer returns the router for a catalog loaded once at startup.
// loadErr, when set, is shown as a banner above whatever was loaded.
func NewServer(grouped *domain.GroupedLessons, loadErr error, resolver videoResolver, opts Options) http.Handler {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	s := &server{
		grouped:  grouped,
		resolver: resolver,
		lang:     opts.Lang,
		logger:   opts.Logger,
	}
	if loadErr != nil {
		s.alert = i18n.CatalogErrorText(opts.Lang, loadErr)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(opts.Timeout))

	r.Get("/healthz", HealthHandler().ServeHTTP)
	r.Get("/", s.handleIndex)
	r.Get("/parts/{partID}/video", s.handleVideo)
	return r
}

func (s *server) handleIndex(w http.ResponseWriter, r *http.Request) {
	grouped := s.grouped
	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		grouped = grouped.Filter(func(p domain.Part) bool {
			return fuzzy.MatchNormalizedFold(q, p.Title)
		})
	}

	out, err := render.PageWithAlert(grouped, s.lang, s.alert)
	if err != nil {
		s.logger.Error("render failed", "error", err)
		httpError(w, http.StatusInternalServerError, "render failed")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, out)
}

func (s *server) handleVideo(w http.ResponseWriter, r *http.Request) {
	partID := chi.URLParam(r, "partID")
	mediaURL, err := s.resolver.Resolve(r.Context(), partID)
	switch {
	case err == nil:
		http.Redirect(w, r, mediaURL, http.StatusFound)
	case errors.Is(err, domain.ErrVideoNotFound), errors.Is(err, domain.ErrItemNotFound):
		httpError(w, http.StatusNotFound, i18n.Text(s.lang, i18n.MsgVideoNotFound))
	default:
		s.logger.Error("video resolve failed", "partID", partID, "error", err)
		httpError(w, http.StatusBadGateway, i18n.ErrorText(s.lang, err, i18n.MsgLoadVideoFailed))
	}
}

// requestLogger logs each request through slog once it completes
func (s *server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// HealthHandler returns a simple health check endpoint.
func HealthHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, `{"status":"ok"}`)
	})
}

func httpError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write([]byte(msg))
}

// ListenAndServe serves handler on addr until ctx is canceled
func ListenAndServe(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("web listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
