package sink

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"path"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	errs "github.com/matzehuels/netviz/pkg/errors"
	"github.com/matzehuels/netviz/pkg/observability"
)

const shutdownTimeout = 5 * time.Second

// Artifact is one rendered output held in memory for serving.
type Artifact struct {
	Name        string // File name, e.g. "graph.html"
	ContentType string
	Data        []byte
}

// Server serves rendered artifacts for interactive display. Each server
// mounts its artifacts under a fresh random prefix, so a browser tab left
// open on an earlier run never shows stale content from a newer one.
type Server struct {
	id        uuid.UUID
	artifacts map[string]Artifact
	index     string
	logger    *log.Logger
	router    chi.Router
}

// NewServer creates a server for the given artifacts. The first artifact is
// the index the root URL redirects to.
func NewServer(logger *log.Logger, artifacts ...Artifact) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{
		id:        uuid.New(),
		artifacts: make(map[string]Artifact, len(artifacts)),
		logger:    logger,
	}
	for i, a := range artifacts {
		if i == 0 {
			s.index = a.Name
		}
		s.artifacts[a.Name] = a
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.observe)
	r.Get("/", s.handleRoot)
	r.Get("/{id}/{name}", s.handleArtifact)
	s.router = r
	return s
}

// Handler returns the HTTP handler serving the artifacts.
func (s *Server) Handler() http.Handler { return s.router }

// Path returns the URL path of the named artifact.
func (s *Server) Path(name string) string {
	return path.Join("/", s.id.String(), name)
}

// ListenAndServe binds addr and serves until ctx is cancelled, then shuts
// down gracefully. ready, if non-nil, receives the index URL once the
// listener is bound; an addr with port 0 reports the chosen port.
// A bind failure is returned as IO_ERROR.
func (s *Server) ListenAndServe(ctx context.Context, addr string, ready func(url string)) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return errs.Wrap(errs.ErrCodeIO, err, "listen on %s", addr)
	}

	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	url := fmt.Sprintf("http://%s%s", ln.Addr().String(), s.Path(s.index))
	s.logger.Debug("serving", "url", url, "artifacts", len(s.artifacts))
	if ready != nil {
		ready(url)
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errs.Wrap(errs.ErrCodeIO, err, "serve %s", addr)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if s.index == "" {
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, s.Path(s.index), http.StatusFound)
}

func (s *Server) handleArtifact(w http.ResponseWriter, r *http.Request) {
	if chi.URLParam(r, "id") != s.id.String() {
		http.NotFound(w, r)
		return
	}
	a, ok := s.artifacts[chi.URLParam(r, "name")]
	if !ok {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", a.ContentType)
	w.Header().Set("Cache-Control", "no-store")
	if _, err := w.Write(a.Data); err != nil {
		observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
		s.logger.Debug("write response", "path", r.URL.Path, "error", err)
	}
}

func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, time.Since(start))
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "status", status)
	})
}

// ContentType returns the MIME type served for an output format.
func ContentType(format string) string {
	switch format {
	case "html":
		return "text/html; charset=utf-8"
	case "svg":
		return "image/svg+xml"
	case "json":
		return "application/json"
	case "png":
		return "image/png"
	case "pdf":
		return "application/pdf"
	default:
		return "text/plain; charset=utf-8"
	}
}
