package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/luma-dev/luma/pkg/render"
	"github.com/luma-dev/luma/pkg/vdom"
)

// Server is the HTTP/WebSocket server for a Luma application.
type Server struct {
	// Root component factory
	root  vdom.Factory
	props vdom.Props

	// Configuration
	config *Config

	// WebSocket upgrader
	upgrader websocket.Upgrader

	// Live sessions
	mu       sync.Mutex
	sessions map[string]*Session
	nextID   uint64

	// HTTP server
	httpServer *http.Server

	// Observability
	logger  *slog.Logger
	metrics *metrics
	tracer  trace.Tracer
}

// New creates a new Server serving the given root component.
func New(root vdom.Factory, config *Config) *Server {
	config = withDefaults(config)

	s := &Server{
		root:   root,
		config: config,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
		sessions: make(map[string]*Session),
		logger:   slog.Default().With("component", "server"),
		metrics:  newMetrics(config.MetricsNamespace, config.Registry),
		tracer:   otel.Tracer("github.com/luma-dev/luma/pkg/server"),
	}
	return s
}

// SetRootProps sets the props passed to the root component factory.
func (s *Server) SetRootProps(props vdom.Props) {
	s.props = props
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)

	r.Get("/", s.handlePage)
	r.Get("/live", s.handleLive)
	r.Handle("/metrics", s.metricsHandler())

	return r
}

// metricsHandler exposes the configured registry, falling back to the
// default gatherer when the registry cannot gather.
func (s *Server) metricsHandler() http.Handler {
	if g, ok := s.config.Registry.(prometheus.Gatherer); ok {
		return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
	}
	return promhttp.Handler()
}

// handlePage serves the initial HTML page.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	renderer := render.NewRenderer(render.RendererConfig{})
	body, err := renderer.RenderToString(vdom.Comp(s.root, s.props))
	if err != nil {
		s.logger.Error("page render failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, pageTemplate, s.config.PageTitle, body)
}

const pageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
</head>
<body>
<div id="app">%s</div>
</body>
</html>
`

// ListenAndServe starts the HTTP server and blocks until ctx is cancelled
// or the listener fails.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.config.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
		ReadTimeout:       s.config.ReadTimeout,
		WriteTimeout:      s.config.WriteTimeout,
		IdleTimeout:       s.config.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "address", s.config.Address)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return s.Shutdown()
	}
}

// Shutdown gracefully stops the server, closing all live sessions.
func (s *Server) Shutdown() error {
	s.logger.Info("server shutting down")

	s.mu.Lock()
	for _, sess := range s.sessions {
		sess.Close()
	}
	s.mu.Unlock()

	if s.httpServer == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}

// SessionCount returns the number of active sessions.
func (s *Server) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// register adds a session to the live set.
func (s *Server) register(sess *Session) {
	s.mu.Lock()
	s.sessions[sess.ID()] = sess
	s.mu.Unlock()
	s.metrics.activeSessions.Inc()
	s.metrics.sessionsTotal.Inc()
}

// unregister removes a session from the live set.
func (s *Server) unregister(sess *Session) {
	s.mu.Lock()
	_, ok := s.sessions[sess.ID()]
	delete(s.sessions, sess.ID())
	s.mu.Unlock()
	if ok {
		s.metrics.activeSessions.Dec()
	}
}
