package http11

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/valyala/fasthttp"
)

// Comparison Benchmarks: flare vs fasthttp
//
// Run with: go test -bench=BenchmarkCompare -benchmem -benchtime=3s

var (
	compareSimpleGET = "GET /api/users?page=2&limit=50 HTTP/1.1\r\n" +
		"Host: example.com\r\n" +
		"User-Agent: Go-http-client/1.1\r\n" +
		"\r\n"

	compareMultipleHeaders = "GET /api/data HTTP/1.1\r\n" +
		"Host: example.com\r\n" +
		"User-Agent: Mozilla/5.0\r\n" +
		"Accept: application/json\r\n" +
		"Accept-Encoding: gzip, deflate\r\n" +
		"Accept-Language: en-US,en;q=0.9\r\n" +
		"Cache-Control: no-cache\r\n" +
		"Cookie: session=abc123; theme=dark\r\n" +
		"Referer: https://example.com\r\n" +
		"Authorization: Bearer token123\r\n" +
		"\r\n"
)

func BenchmarkCompare_ParseSimpleGET_Flare(b *testing.B) {
	raw := []byte(compareSimpleGET)
	b.ReportAllocs()
	b.SetBytes(int64(len(raw)))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ParseRequestBytes(raw); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCompare_ParseSimpleGET_FastHTTP(b *testing.B) {
	b.ReportAllocs()
	b.SetBytes(int64(len(compareSimpleGET)))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var req fasthttp.Request
		if err := req.Read(bufio.NewReader(strings.NewReader(compareSimpleGET))); err != nil {
			b.Fatal(err)
		}
		_ = req.URI().QueryArgs().Peek("page")
	}
}

func BenchmarkCompare_ParseMultipleHeaders_Flare(b *testing.B) {
	raw := []byte(compareMultipleHeaders)
	b.ReportAllocs()
	b.SetBytes(int64(len(raw)))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ParseRequestBytes(raw); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCompare_ParseMultipleHeaders_FastHTTP(b *testing.B) {
	b.ReportAllocs()
	b.SetBytes(int64(len(compareMultipleHeaders)))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var req fasthttp.Request
		if err := req.Read(bufio.NewReader(strings.NewReader(compareMultipleHeaders))); err != nil {
			b.Fatal(err)
		}
		_ = req.Header.Cookie("session")
	}
}

func BenchmarkCompare_WriteSimpleText_Flare(b *testing.B) {
	b.ReportAllocs()

	var buf bytes.Buffer

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf.Reset()

		resp := NewResponse(StatusOK)
		resp.AddHeader(HeaderContentType, "text/plain")
		resp.SetBodyString("Hello, World!")
		if _, err := resp.WriteTo(&buf); err != nil {
			b.Fatal(err)
		}
	}
	b.SetBytes(int64(buf.Len()))
}

func BenchmarkCompare_WriteSimpleText_FastHTTP(b *testing.B) {
	b.ReportAllocs()

	var buf bytes.Buffer

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf.Reset()

		var resp fasthttp.Response
		resp.SetStatusCode(200)
		resp.Header.SetContentType("text/plain")
		resp.SetBodyString("Hello, World!")
		if _, err := resp.WriteTo(&buf); err != nil {
			b.Fatal(err)
		}
	}
	b.SetBytes(int64(buf.Len()))
}

// TestCompareAgainstFastHTTP checks that both parsers agree on the request line,
// the query and the cookies of the shared fixtures.
func TestCompareAgainstFastHTTP(t *testing.T) {
	for _, raw := range []string{compareSimpleGET, compareMultipleHeaders} {
		ours, err := ParseRequest(raw)
		if err != nil {
			t.Fatalf("ParseRequest failed: %v", err)
		}

		var theirs fasthttp.Request
		if err := theirs.Read(bufio.NewReader(strings.NewReader(raw))); err != nil {
			t.Fatalf("fasthttp Read failed: %v", err)
		}

		if ours.Method().String() != string(theirs.Header.Method()) {
			t.Errorf("method = %q, fasthttp = %q", ours.Method(), theirs.Header.Method())
		}
		if ours.Path() != string(theirs.URI().PathOriginal()) &&
			!strings.HasPrefix(string(theirs.URI().PathOriginal()), ours.Path()+"?") {
			t.Errorf("path = %q, fasthttp = %q", ours.Path(), theirs.URI().PathOriginal())
		}
		for _, p := range ours.Query {
			if got := string(theirs.URI().QueryArgs().Peek(p.Key)); got != p.Value {
				t.Errorf("query %s = %q, fasthttp = %q", p.Key, p.Value, got)
			}
		}
		for name, value := range ours.Cookies {
			if got := string(theirs.Header.Cookie(name)); got != value {
				t.Errorf("cookie %s = %q, fasthttp = %q", name, value, got)
			}
		}
	}
}
