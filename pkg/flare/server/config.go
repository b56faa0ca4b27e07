package server

import (
	"time"

	"github.com/rs/zerolog"
)

// Config holds server configuration
type Config struct {
	// Addr is the TCP address to listen on (e.g., ":8080")
	// Default: ":8080"
	Addr string

	// ReadTimeout is the maximum duration for reading the entire request
	// Default: 30 seconds
	ReadTimeout time.Duration

	// WriteTimeout is the maximum duration before timing out writes of the response
	// Default: 30 seconds
	WriteTimeout time.Duration

	// MaxHeaderBytes bounds the request line plus headers. Larger requests get 431.
	// Default: 64 KB
	MaxHeaderBytes int

	// MaxRequestBodySize bounds the declared Content-Length. Larger requests get 413.
	// Default: 10 MB
	MaxRequestBodySize int

	// ReadBufferSize is the size of each read from the connection
	// Default: 4096 bytes
	ReadBufferSize int

	// MaxConcurrentConnections is the maximum number of concurrent connections
	// 0 means unlimited
	MaxConcurrentConnections int

	// CompressMinSize enables brotli/gzip response compression for bodies of at
	// least this many bytes, negotiated by Accept-Encoding.
	// 0 disables compression.
	CompressMinSize int

	// MetricsAddr is the address of the Prometheus scrape endpoint.
	// Empty disables it.
	MetricsAddr string

	// Logger receives server and access log entries.
	// Default: disabled
	Logger *zerolog.Logger

	// AccessLog enables one log entry per request
	AccessLog bool

	// SkipPaths are paths excluded from the access log (e.g., /health)
	SkipPaths []string
}

// DefaultConfig returns the default server configuration
func DefaultConfig() Config {
	return Config{
		Addr:               ":8080",
		ReadTimeout:        30 * time.Second,
		WriteTimeout:       30 * time.Second,
		MaxHeaderBytes:     64 << 10, // 64 KB
		MaxRequestBodySize: 10 << 20, // 10 MB
		ReadBufferSize:     4096,
		MetricsAddr:        ":9090",
		AccessLog:          true,
	}
}

// withDefaults fills zero-valued limits.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Addr == "" {
		c.Addr = def.Addr
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = def.ReadTimeout
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = def.WriteTimeout
	}
	if c.MaxHeaderBytes <= 0 {
		c.MaxHeaderBytes = def.MaxHeaderBytes
	}
	if c.MaxRequestBodySize <= 0 {
		c.MaxRequestBodySize = def.MaxRequestBodySize
	}
	if c.ReadBufferSize <= 0 {
		c.ReadBufferSize = def.ReadBufferSize
	}
	if c.Logger == nil {
		nop := zerolog.Nop()
		c.Logger = &nop
	}
	return c
}
