// Command flared runs the flare HTTP/1.1 server with a small set of demo
// routes and a Prometheus scrape endpoint.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/watt-toolkit/flare/pkg/flare/server"
)

const shutdownTimeout = 10 * time.Second

type options struct {
	server    server.Config
	logLevel  string
	logFormat string
	skipPaths string
}

func parseFlags() (*options, error) {
	opts := &options{server: server.DefaultConfig()}
	cfg := &opts.server

	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "Address to serve HTTP on")
	flag.StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "Address of the Prometheus endpoint (empty disables it)")
	flag.DurationVar(&cfg.ReadTimeout, "read-timeout", cfg.ReadTimeout, "Maximum time to read a request")
	flag.DurationVar(&cfg.WriteTimeout, "write-timeout", cfg.WriteTimeout, "Maximum time to write a response")
	flag.IntVar(&cfg.MaxHeaderBytes, "max-header-bytes", cfg.MaxHeaderBytes, "Largest accepted request line plus headers")
	flag.IntVar(&cfg.MaxRequestBodySize, "max-body-bytes", cfg.MaxRequestBodySize, "Largest accepted Content-Length")
	flag.IntVar(&cfg.MaxConcurrentConnections, "max-conns", cfg.MaxConcurrentConnections, "Concurrent connection limit (0 = unlimited)")
	flag.IntVar(&cfg.CompressMinSize, "compress-min", cfg.CompressMinSize, "Compress bodies of at least this many bytes (0 = off)")
	flag.BoolVar(&cfg.AccessLog, "access-log", cfg.AccessLog, "Log one line per request")
	flag.StringVar(&opts.skipPaths, "access-log-skip", "/health", "Comma-separated paths left out of the access log")
	flag.StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.StringVar(&opts.logFormat, "log-format", "json", "Log format: json or console")

	flag.Parse()

	if opts.logFormat != "json" && opts.logFormat != "console" {
		return nil, fmt.Errorf("invalid log-format %q", opts.logFormat)
	}
	cfg.SkipPaths = splitList(opts.skipPaths)
	return opts, nil
}

func newLogger(opts *options) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(opts.logLevel)
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("invalid log-level: %w", err)
	}

	var logger zerolog.Logger
	if opts.logFormat == "console" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	} else {
		logger = zerolog.New(os.Stderr)
	}
	return logger.Level(level).With().Timestamp().Logger(), nil
}

func main() {
	opts, err := parseFlags()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger, err := newLogger(opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	opts.server.Logger = &logger

	if err := run(opts, logger); err != nil {
		logger.Fatal().Err(err).Msg("flared stopped")
	}
}

// run serves until SIGINT/SIGTERM, then shuts both listeners down.
func run(opts *options, logger zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var srv *server.Server
	r := newRouter(func() server.StatsSnapshot { return srv.Stats().Snapshot() })
	srv = server.New(opts.server, r)
	srv.Metrics().Registry().MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(srv.ListenAndServe)

	var admin *http.Server
	if addr := opts.server.MetricsAddr; addr != "" {
		admin = &http.Server{
			Addr:              addr,
			Handler:           metricsMux(srv.Metrics().Handler()),
			ReadHeaderTimeout: 5 * time.Second,
		}
		g.Go(func() error {
			logger.Info().Str("addr", addr).Msg("metrics listening")
			if err := admin.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-ctx.Done()
		logger.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		err := srv.Shutdown(shutdownCtx)
		if admin != nil {
			err = errors.Join(err, admin.Shutdown(shutdownCtx))
		}
		return err
	})

	return g.Wait()
}

func metricsMux(h http.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", h)
	return mux
}
