// Package web serves mkdf's JSON API.
package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Noziop/mkdf/internal/combo"
	"github.com/Noziop/mkdf/internal/ports"
	"github.com/Noziop/mkdf/internal/project"
	"github.com/Noziop/mkdf/internal/services"
	"github.com/Noziop/mkdf/internal/templates"
)

// Server exposes generation over HTTP. Every request runs its own
// generation; the registry and catalog are shared read-only.
type Server struct {
	root       string
	registry   *services.Registry
	catalog    *templates.Catalog
	combo      *combo.Factory
	scaffolder *project.Scaffolder
	finder     ports.Finder
	logger     *slog.Logger
	metrics    *Metrics
}

// Options configures a Server.
type Options struct {
	// Root is the directory projects and patterns are created under.
	Root     string
	Registry *services.Registry
	Finder   ports.Finder
	Logger   *slog.Logger
}

// NewServer creates a server. Registry, Finder and Logger default to the
// built-in registry, a host allocator and slog.Default.
func NewServer(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Registry == nil {
		opts.Registry = services.NewRegistry()
	}
	if opts.Finder == nil {
		opts.Finder = ports.NewAllocator(opts.Logger)
	}
	if opts.Root == "" {
		opts.Root = "."
	}
	sc := project.NewScaffolder(opts.Registry, opts.Finder, nil)
	return &Server{
		root:       opts.Root,
		registry:   opts.Registry,
		catalog:    sc.Catalog,
		combo:      sc.Combo,
		scaffolder: sc,
		finder:     opts.Finder,
		logger:     opts.Logger,
		metrics:    NewMetrics(),
	}
}

// Routes returns the router with all routes configured.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)
	r.Use(s.metrics.Middleware)

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(jsonContentType)

		r.Get("/components", s.handleListComponents)
		r.Get("/templates", s.handleListTemplates)
		r.Post("/pattern/preview", s.handlePatternPreview)
		r.Post("/pattern", s.handleCreatePattern)
		r.Post("/projects", s.handleCreateProject)
		r.Post("/docker/preview", s.handleDockerPreview)
	})

	return r
}

// ListenAndServe binds the first free port from portStart upward on host and
// serves until ctx is cancelled. ready, when non-nil, receives the address.
func (s *Server) ListenAndServe(ctx context.Context, host string, portStart int, ready func(addr string)) error {
	port, err := s.finder.FindFreePort(portStart)
	if err != nil {
		return fmt.Errorf("finding a port for the web server: %w", err)
	}
	addr := net.JoinHostPort(host, strconv.Itoa(port))

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	srv := &http.Server{
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.logger.Info("web server listening", "addr", ln.Addr().String(), "root", s.root)
	if ready != nil {
		ready(ln.Addr().String())
	}

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("web server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// requestLogger attaches a request-scoped logger and logs each request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		logger := s.logger.With("request_id", middleware.GetReqID(r.Context()))
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r.WithContext(WithLogger(r.Context(), logger)))

		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}
