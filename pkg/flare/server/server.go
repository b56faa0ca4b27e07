// Package server serves HTTP/1.1 requests over TCP using the http11 codec and
// a static router. Each connection carries exactly one request; every response
// is framed with Content-Length and closes the connection.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/watt-toolkit/flare/pkg/flare/router"
)

// Stats represents server statistics
type Stats struct {
	// Total number of connections accepted
	TotalConnections atomic.Uint64

	// Current number of active connections
	ActiveConnections atomic.Int64

	// Total number of requests answered, including rejected ones
	TotalRequests atomic.Uint64

	// Total number of bytes read
	BytesRead atomic.Uint64

	// Total number of bytes written
	BytesWritten atomic.Uint64

	// Number of accept, read and write failures
	ConnectionErrors atomic.Uint64

	// Number of requests rejected before reaching a handler
	RequestErrors atomic.Uint64

	// Server start time
	StartTime time.Time
}

// Duration returns the time since the server started
func (s *Stats) Duration() time.Duration {
	return time.Since(s.StartTime)
}

// RequestsPerSecond returns the average requests per second
func (s *Stats) RequestsPerSecond() float64 {
	duration := s.Duration().Seconds()
	if duration == 0 {
		return 0
	}
	return float64(s.TotalRequests.Load()) / duration
}

// StatsSnapshot is a point-in-time copy of Stats suitable for encoding.
type StatsSnapshot struct {
	UptimeSeconds     float64 `json:"uptime_seconds"`
	TotalConnections  uint64  `json:"total_connections"`
	ActiveConnections int64   `json:"active_connections"`
	TotalRequests     uint64  `json:"total_requests"`
	BytesRead         uint64  `json:"bytes_read"`
	BytesWritten      uint64  `json:"bytes_written"`
	ConnectionErrors  uint64  `json:"connection_errors"`
	RequestErrors     uint64  `json:"request_errors"`
	RequestsPerSecond float64 `json:"requests_per_second"`
}

// Snapshot loads every counter once.
func (s *Stats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		UptimeSeconds:     s.Duration().Seconds(),
		TotalConnections:  s.TotalConnections.Load(),
		ActiveConnections: s.ActiveConnections.Load(),
		TotalRequests:     s.TotalRequests.Load(),
		BytesRead:         s.BytesRead.Load(),
		BytesWritten:      s.BytesWritten.Load(),
		ConnectionErrors:  s.ConnectionErrors.Load(),
		RequestErrors:     s.RequestErrors.Load(),
		RequestsPerSecond: s.RequestsPerSecond(),
	}
}

// Server is the flare HTTP/1.1 server.
type Server struct {
	cfg     Config
	router  *router.Router
	metrics *Metrics
	log     zerolog.Logger
	access  accessLog
	stats   Stats

	// Shutdown coordination
	mu       sync.Mutex
	listener net.Listener
	shutdown atomic.Bool
	done     chan struct{}
	wg       sync.WaitGroup

	// Connection tracking
	conns   map[net.Conn]struct{}
	connsMu sync.Mutex

	// Connection semaphore (for limiting concurrent connections)
	connSem chan struct{}
}

// New creates a server dispatching to r. Zero-valued limits in cfg take their
// DefaultConfig values.
func New(cfg Config, r *router.Router) *Server {
	if r == nil {
		panic("server: router is required")
	}
	cfg = cfg.withDefaults()

	s := &Server{
		cfg:     cfg,
		router:  r,
		metrics: NewMetrics(),
		log:     cfg.Logger.With().Str("component", "server").Logger(),
		done:    make(chan struct{}),
		conns:   make(map[net.Conn]struct{}),
	}
	s.access = newAccessLog(*cfg.Logger, cfg.AccessLog, cfg.SkipPaths)
	s.stats.StartTime = time.Now()

	if cfg.MaxConcurrentConnections > 0 {
		s.connSem = make(chan struct{}, cfg.MaxConcurrentConnections)
	}

	return s
}

// Config returns the effective configuration.
func (s *Server) Config() Config {
	return s.cfg
}

// Stats returns server statistics
func (s *Server) Stats() *Stats {
	return &s.stats
}

// Metrics returns the server's Prometheus collectors.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Addr returns the listener address once Serve has started, or nil.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// ListenAndServe listens on the configured address and serves requests
func (s *Server) ListenAndServe() error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ln)
}

// Serve accepts connections on l until Shutdown or Close. It returns nil after
// a requested shutdown and the accept error otherwise.
func (s *Server) Serve(l net.Listener) error {
	s.mu.Lock()
	if s.shutdown.Load() {
		s.mu.Unlock()
		l.Close()
		return nil
	}
	s.listener = l
	s.mu.Unlock()
	defer l.Close()

	s.log.Info().Str("addr", l.Addr().String()).Msg("listening")

	var backoff time.Duration
	for {
		// Acquire connection slot if limit is set
		if s.connSem != nil {
			select {
			case s.connSem <- struct{}{}:
			case <-s.done:
				return nil
			}
		}

		conn, err := l.Accept()
		if err != nil {
			if s.connSem != nil {
				<-s.connSem
			}
			if s.shutdown.Load() {
				return nil
			}
			if errors.Is(err, net.ErrClosed) {
				return err
			}

			s.stats.ConnectionErrors.Add(1)
			backoff = nextBackoff(backoff)
			s.log.Warn().Err(err).Dur("retry_in", backoff).Msg("accept failed")
			select {
			case <-time.After(backoff):
			case <-s.done:
				return nil
			}
			continue
		}
		backoff = 0

		// Shutdown may begin between Accept and here. Checking under s.mu, which
		// beginShutdown also takes, keeps every wg.Add ahead of wg.Wait.
		s.mu.Lock()
		if s.shutdown.Load() {
			s.mu.Unlock()
			conn.Close()
			if s.connSem != nil {
				<-s.connSem
			}
			return nil
		}
		s.wg.Add(1)
		s.mu.Unlock()

		s.stats.TotalConnections.Add(1)
		go s.serveConn(conn)
	}
}

// nextBackoff doubles the accept retry delay from 5ms up to 1s.
func nextBackoff(d time.Duration) time.Duration {
	if d == 0 {
		return 5 * time.Millisecond
	}
	if d *= 2; d > time.Second {
		d = time.Second
	}
	return d
}

// Shutdown stops accepting connections and waits for in-flight requests.
// When ctx expires first, remaining connections are closed and ctx.Err() is
// returned.
func (s *Server) Shutdown(ctx context.Context) error {
	if !s.beginShutdown() {
		return nil
	}

	shutdownComplete := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(shutdownComplete)
	}()

	select {
	case <-shutdownComplete:
		s.log.Info().Msg("shutdown complete")
		return nil
	case <-ctx.Done():
		s.closeAllConnections()
		s.log.Warn().Err(ctx.Err()).Msg("shutdown deadline exceeded, connections closed")
		return ctx.Err()
	}
}

// Close immediately closes the listener and all active connections.
func (s *Server) Close() error {
	if !s.beginShutdown() {
		return nil
	}
	s.closeAllConnections()
	s.wg.Wait()
	return nil
}

// beginShutdown flips the shutdown flag once and stops the accept loop.
func (s *Server) beginShutdown() bool {
	if !s.shutdown.CompareAndSwap(false, true) {
		return false
	}

	s.mu.Lock()
	if s.listener != nil {
		s.listener.Close()
	}
	s.mu.Unlock()

	close(s.done)
	return true
}

func (s *Server) trackConnection(conn net.Conn) {
	s.connsMu.Lock()
	s.conns[conn] = struct{}{}
	s.connsMu.Unlock()

	s.stats.ActiveConnections.Add(1)
	s.metrics.active.Inc()
}

func (s *Server) untrackConnection(conn net.Conn) {
	s.connsMu.Lock()
	delete(s.conns, conn)
	s.connsMu.Unlock()

	s.stats.ActiveConnections.Add(-1)
	s.metrics.active.Dec()
}

func (s *Server) closeAllConnections() {
	s.connsMu.Lock()
	conns := make([]net.Conn, 0, len(s.conns))
	for conn := range s.conns {
		conns = append(conns, conn)
	}
	s.connsMu.Unlock()

	for _, conn := range conns {
		conn.Close()
	}
}
