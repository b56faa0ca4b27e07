package server

import (
	"time"

	"github.com/rs/zerolog"
)

// accessLog writes one structured entry per request.
//
// Output:
//
//	{"level":"info","method":"GET","path":"/users","status":200,"duration_ms":0.15,"bytes":1234,"remote":"127.0.0.1:51234","message":"request"}
type accessLog struct {
	log     zerolog.Logger
	enabled bool

	// O(1) lookup of paths that are never logged
	skip map[string]struct{}
}

func newAccessLog(log zerolog.Logger, enabled bool, skipPaths []string) accessLog {
	skip := make(map[string]struct{}, len(skipPaths))
	for _, path := range skipPaths {
		skip[path] = struct{}{}
	}
	return accessLog{log: log, enabled: enabled, skip: skip}
}

// entry is what the connection loop knows about a finished request.
type entry struct {
	method   string
	path     string
	remote   string
	status   int
	bytes    int64
	duration time.Duration
	err      error
}

func (a accessLog) write(e entry) {
	if !a.enabled {
		return
	}
	if _, skip := a.skip[e.path]; skip {
		return
	}

	var ev *zerolog.Event
	switch {
	case e.status >= 500:
		ev = a.log.Error()
	case e.status >= 400:
		ev = a.log.Warn()
	default:
		ev = a.log.Info()
	}

	ev = ev.Str("method", e.method).
		Str("path", e.path).
		Int("status", e.status).
		Float64("duration_ms", float64(e.duration.Microseconds())/1000.0).
		Int64("bytes", e.bytes).
		Str("remote", e.remote)
	if e.err != nil {
		ev = ev.Err(e.err)
	}
	ev.Msg("request")
}
