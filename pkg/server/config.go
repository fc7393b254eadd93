package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Config configures the server.
type Config struct {
	// Address is the listen address (default ":8080").
	Address string

	// PageTitle is the title of the rendered page (default "Luma App").
	PageTitle string

	// ReadBufferSize is the WebSocket read buffer size in bytes.
	ReadBufferSize int

	// WriteBufferSize is the WebSocket write buffer size in bytes.
	WriteBufferSize int

	// CheckOrigin validates the Origin header on WebSocket upgrades.
	// The default accepts all origins.
	CheckOrigin func(r *http.Request) bool

	// ReadWait is how long a connection may stay silent before it is
	// considered dead. Pings are sent at ReadWait * 9 / 10.
	ReadWait time.Duration

	// WriteWait bounds each WebSocket write.
	WriteWait time.Duration

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration

	// ReadHeaderTimeout, ReadTimeout, WriteTimeout, and IdleTimeout are
	// passed through to the underlying http.Server.
	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration

	// MetricsNamespace is the Prometheus metrics namespace (default "luma").
	MetricsNamespace string

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer.
	Registry prometheus.Registerer
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Address:           ":8080",
		PageTitle:         "Luma App",
		ReadBufferSize:    4096,
		WriteBufferSize:   4096,
		CheckOrigin:       func(r *http.Request) bool { return true },
		ReadWait:          60 * time.Second,
		WriteWait:         10 * time.Second,
		ShutdownTimeout:   10 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		MetricsNamespace:  "luma",
		Registry:          prometheus.DefaultRegisterer,
	}
}

// withDefaults returns config with unset fields filled from DefaultConfig.
func withDefaults(config *Config) *Config {
	if config == nil {
		return DefaultConfig()
	}
	defaults := DefaultConfig()
	if config.Address == "" {
		config.Address = defaults.Address
	}
	if config.PageTitle == "" {
		config.PageTitle = defaults.PageTitle
	}
	if config.ReadBufferSize == 0 {
		config.ReadBufferSize = defaults.ReadBufferSize
	}
	if config.WriteBufferSize == 0 {
		config.WriteBufferSize = defaults.WriteBufferSize
	}
	if config.CheckOrigin == nil {
		config.CheckOrigin = defaults.CheckOrigin
	}
	if config.ReadWait == 0 {
		config.ReadWait = defaults.ReadWait
	}
	if config.WriteWait == 0 {
		config.WriteWait = defaults.WriteWait
	}
	if config.ShutdownTimeout == 0 {
		config.ShutdownTimeout = defaults.ShutdownTimeout
	}
	if config.ReadHeaderTimeout == 0 {
		config.ReadHeaderTimeout = defaults.ReadHeaderTimeout
	}
	if config.ReadTimeout == 0 {
		config.ReadTimeout = defaults.ReadTimeout
	}
	if config.WriteTimeout == 0 {
		config.WriteTimeout = defaults.WriteTimeout
	}
	if config.IdleTimeout == 0 {
		config.IdleTimeout = defaults.IdleTimeout
	}
	if config.MetricsNamespace == "" {
		config.MetricsNamespace = defaults.MetricsNamespace
	}
	if config.Registry == nil {
		config.Registry = defaults.Registry
	}
	return config
}
