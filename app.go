// Package luma is a server-driven UI framework: components render virtual
// trees, an observable store drives recomputation, and a reconciler applies
// minimal mutations to a live document that is mirrored to the browser over
// WebSocket.
package luma

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/luma-dev/luma/pkg/server"
	"github.com/luma-dev/luma/pkg/vdom"
)

// App is a configured Luma application.
type App struct {
	root   vdom.Factory
	props  vdom.Props
	config *server.Config
	logger *slog.Logger
}

// Option configures an App.
type Option func(*App)

// WithAddress sets the listen address.
func WithAddress(addr string) Option {
	return func(a *App) { a.config.Address = addr }
}

// WithTitle sets the page title.
func WithTitle(title string) Option {
	return func(a *App) { a.config.PageTitle = title }
}

// WithProps sets the props passed to the root component.
func WithProps(props vdom.Props) Option {
	return func(a *App) { a.props = props }
}

// WithServerConfig replaces the whole server configuration.
func WithServerConfig(config *server.Config) Option {
	return func(a *App) { a.config = config }
}

// WithLogger sets the application logger. It is installed as the slog
// default when the app runs.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) { a.logger = logger }
}

// New creates an App serving the given root component.
func New(root vdom.Factory, opts ...Option) *App {
	a := &App{
		root:   root,
		config: server.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Server builds the underlying server without starting it.
func (a *App) Server() *server.Server {
	srv := server.New(a.root, a.config)
	if a.props != nil {
		srv.SetRootProps(a.props)
	}
	return srv
}

// Run starts the application and blocks until ctx is cancelled or SIGINT /
// SIGTERM arrives.
func (a *App) Run(ctx context.Context) error {
	if a.logger != nil {
		slog.SetDefault(a.logger)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return a.Server().ListenAndServe(ctx)
}
