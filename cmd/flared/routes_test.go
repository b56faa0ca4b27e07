package main

import (
	"reflect"
	"strings"
	"testing"

	"github.com/watt-toolkit/flare/pkg/flare/http11"
	"github.com/watt-toolkit/flare/pkg/flare/server"
)

func serve(t *testing.T, raw string) *http11.Response {
	t.Helper()

	req, err := http11.ParseRequestBytes([]byte(raw))
	if err != nil {
		t.Fatalf("ParseRequest(%q) failed: %v", raw, err)
	}

	r := newRouter(func() server.StatsSnapshot { return server.StatsSnapshot{TotalRequests: 42} })
	h, ok := r.Lookup(req.Route)
	if !ok {
		t.Fatalf("no route for %v", req.Route)
	}
	return h(req)
}

func TestRoutes(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		status   http11.Status
		contains string
		header   string
		value    string
	}{
		{"index", "GET / HTTP/1.1\r\n\r\n", http11.StatusOK, "Hello, world!", "Server", "flare"},
		{"index with name", "GET /?name=flare HTTP/1.1\r\n\r\n", http11.StatusOK, "Hello, flare!", "", ""},
		{"index escapes name", "GET /?name=<script>x</script> HTTP/1.1\r\n\r\n", http11.StatusOK, "Hello, &lt;script&gt;x&lt;/script&gt;!", "", ""},
		{"health", "GET /health HTTP/1.1\r\n\r\n", http11.StatusOK, "ok", "", ""},
		{"redirect", "GET /redirect HTTP/1.1\r\n\r\n", http11.StatusMovedPermanently, "", http11.HeaderLocation, "/"},
		{"new session", "GET /session HTTP/1.1\r\n\r\n", http11.StatusOK, "session started", http11.HeaderSetCookie, "flare_session=ok"},
		{"existing session", "GET /session HTTP/1.1\r\nCookie: flare_session=abc\r\n\r\n", http11.StatusOK, "session: abc", "", ""},
		{"stats", "GET /stats HTTP/1.1\r\n\r\n", http11.StatusOK, `"total_requests":42`, http11.HeaderContentType, "application/json"},
		{"echo", "POST /echo HTTP/1.1\r\nContent-Type: text/plain\r\n\r\nping", http11.StatusOK, "ping", http11.HeaderContentType, "text/plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := serve(t, tt.raw)
			if resp.Status != tt.status {
				t.Errorf("Status = %d, want %d", resp.Status, tt.status)
			}
			if !strings.Contains(resp.GetBodyString(), tt.contains) {
				t.Errorf("body %q missing %q", resp.GetBodyString(), tt.contains)
			}
			if tt.header != "" {
				if got, _ := resp.GetHeader(tt.header); got != tt.value {
					t.Errorf("%s = %q, want %q", tt.header, got, tt.value)
				}
			}
		})
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		in       string
		expected []string
	}{
		{"", nil},
		{"/health", []string{"/health"}},
		{" /health , /metrics ,", []string{"/health", "/metrics"}},
	}

	for _, tt := range tests {
		if got := splitList(tt.in); !reflect.DeepEqual(got, tt.expected) {
			t.Errorf("splitList(%q) = %v, want %v", tt.in, got, tt.expected)
		}
	}
}
