// Package server exposes card generation over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	ogimage "github.com/phanu-phoo/og-image"
)

// CacheControl is sent with every successful render. Cards are a pure
// function of the URL, so CDNs may keep them for a year.
const CacheControl = "public, immutable, no-transform, s-maxage=31536000, max-age=31536000"

const internalErrorBody = "<h1>Internal Error</h1><p>Sorry, there was a problem</p>"

// Renderer produces a card for one parsed request.
type Renderer interface {
	Generate(ctx context.Context, in ogimage.Input) (*ogimage.Result, error)
}

// Compile-time interface check.
var _ Renderer = (*PoolRenderer)(nil)

// PoolRenderer runs each request on a generator borrowed from a pool.
type PoolRenderer struct {
	Pool *ogimage.GeneratorPool
}

// Generate acquires a generator, renders, and returns it to the pool.
func (p *PoolRenderer) Generate(ctx context.Context, in ogimage.Input) (*ogimage.Result, error) {
	g, err := p.Pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquiring generator: %w", err)
	}
	defer p.Pool.Release(g)
	return g.Generate(ctx, in)
}

// Server routes card requests to a Renderer.
type Server struct {
	router          chi.Router
	renderer        Renderer
	logger          *zap.Logger
	registry        *prometheus.Registry
	metrics         *metrics
	corsOrigins     []string
	defaultFontSize string
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the access and error logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCORSOrigins restricts cross-origin GETs. Empty allows any origin.
func WithCORSOrigins(origins []string) Option {
	return func(s *Server) {
		s.corsOrigins = origins
	}
}

// WithDefaultFontSize sets the font size used when a request has none.
func WithDefaultFontSize(size string) Option {
	return func(s *Server) {
		if size != "" {
			s.defaultFontSize = size
		}
	}
}

// WithRegistry exposes metrics on reg instead of a fresh registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) {
		if reg != nil {
			s.registry = reg
		}
	}
}

// New creates a Server rendering through r.
func New(r Renderer, opts ...Option) *Server {
	s := &Server{
		renderer:        r,
		logger:          zap.NewNop(),
		defaultFontSize: DefaultFontSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.registry == nil {
		s.registry = newRegistry()
	}
	s.metrics = newMetrics(s.registry)
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	origins := s.corsOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(accessLog(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	r.Get("/", s.handleCard)
	r.Get("/{name}", s.handleCard)

	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleCard(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	name := chi.URLParam(r, "name")
	if r.URL.RawPath != "" {
		// chi matched on the escaped path; decode the segment ourselves.
		if decoded, err := url.PathUnescape(name); err == nil {
			name = decoded
		}
	}

	in, err := parseRequest(name, r.URL.Query(), s.defaultFontSize)
	if err != nil {
		s.metrics.observe(typeUnknown, statusBadRequest, time.Since(start))
		writeBadRequest(w, err)
		return
	}
	fileType := string(in.FileType)

	res, err := s.renderer.Generate(r.Context(), in)
	if err != nil {
		s.metrics.observe(fileType, statusError, time.Since(start))
		s.logger.Error("render failed",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("type", fileType),
			zap.Error(err),
		)
		writeInternalError(w)
		return
	}
	s.metrics.observe(fileType, statusOK, time.Since(start))

	body := res.Image
	if in.FileType == ogimage.FileTypeHTML {
		body = res.HTML
	}

	w.Header().Set("Content-Type", res.ContentType)
	w.Header().Set("Cache-Control", CacheControl)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func writeBadRequest(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusBadRequest)
	_, _ = fmt.Fprintf(w, "<h1>Bad Request</h1><p>%s</p>", html.EscapeString(err.Error()))
}

func writeInternalError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte(internalErrorBody))
}

// HTTPConfig holds listener settings for ListenAndServe.
type HTTPConfig struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// ListenAndServe serves until ctx is done, then drains in-flight requests
// for at most cfg.ShutdownTimeout. Listen errors are returned immediately.
func (s *Server) ListenAndServe(ctx context.Context, cfg HTTPConfig) error {
	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("%w on %s: %v", ErrListen, cfg.Addr, err)
	}
	return s.Serve(ctx, ln, cfg)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener, cfg HTTPConfig) error {
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.logger.Info("listening", zap.String("addr", ln.Addr().String()))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx := context.Background()
	if cfg.ShutdownTimeout > 0 {
		var cancel context.CancelFunc
		shutdownCtx, cancel = context.WithTimeout(shutdownCtx, cfg.ShutdownTimeout)
		defer cancel()
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
