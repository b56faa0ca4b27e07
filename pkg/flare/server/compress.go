package server

import (
	"bytes"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/valyala/bytebufferpool"

	"github.com/watt-toolkit/flare/pkg/flare/http11"
)

// Content codings, in order of preference
const (
	encodingBrotli = "br"
	encodingGzip   = "gzip"
)

var (
	gzipWriterPool = sync.Pool{
		New: func() interface{} {
			w, _ := gzip.NewWriterLevel(io.Discard, gzip.DefaultCompression)
			return w
		},
	}

	brotliWriterPool = sync.Pool{
		New: func() interface{} {
			return brotli.NewWriterLevel(io.Discard, brotli.DefaultCompression)
		},
	}
)

// negotiateEncoding picks the coding for an Accept-Encoding value: brotli when
// acceptable, then gzip, otherwise "". A q-value of 0 refuses a coding, also
// when "*" is present.
func negotiateEncoding(accept string) string {
	var br, gz, wildcard, brRefused, gzRefused bool
	for _, part := range strings.Split(accept, ",") {
		coding, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		ok := acceptable(params)
		switch strings.ToLower(strings.TrimSpace(coding)) {
		case encodingBrotli:
			br, brRefused = ok, !ok
		case encodingGzip, "x-gzip":
			gz, gzRefused = ok, !ok
		case "*":
			wildcard = ok
		}
	}

	// "*" only covers codings the client did not name with q=0
	switch {
	case br || (wildcard && !brRefused):
		return encodingBrotli
	case gz || (wildcard && !gzRefused):
		return encodingGzip
	default:
		return ""
	}
}

// acceptable reports whether the parameters of a coding carry a non-zero q.
func acceptable(params string) bool {
	for _, p := range strings.Split(params, ";") {
		name, value, ok := strings.Cut(strings.TrimSpace(p), "=")
		if !ok || !strings.EqualFold(strings.TrimSpace(name), "q") {
			continue
		}
		q, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		return err == nil && q > 0
	}
	return true
}

// compressBody encodes body with the given coding.
func compressBody(encoding string, body []byte) ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	switch encoding {
	case encodingBrotli:
		w := brotliWriterPool.Get().(*brotli.Writer)
		defer brotliWriterPool.Put(w)
		w.Reset(buf)
		if _, err := w.Write(body); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
	case encodingGzip:
		w := gzipWriterPool.Get().(*gzip.Writer)
		defer gzipWriterPool.Put(w)
		w.Reset(buf)
		if _, err := w.Write(body); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
	default:
		return body, nil
	}

	return bytes.Clone(buf.B), nil
}

// compressResponse encodes the response body in place when the client accepts
// a supported coding and the body is large enough. Responses that already
// carry a Content-Encoding are left alone.
func (s *Server) compressResponse(req *http11.Request, resp *http11.Response) {
	if req == nil || len(resp.GetBody()) < s.cfg.CompressMinSize {
		return
	}
	if _, ok := lookupFold(resp.Headers(), http11.HeaderContentEncoding); ok {
		return
	}
	accept, ok := lookupFold(req.Headers(), http11.HeaderAcceptEncoding)
	if !ok {
		return
	}
	encoding := negotiateEncoding(accept)
	if encoding == "" {
		return
	}

	encoded, err := compressBody(encoding, resp.GetBody())
	if err != nil {
		s.log.Warn().Err(err).Str("encoding", encoding).Msg("compression failed, sending identity")
		return
	}

	resp.SetBody(encoded)
	resp.AddHeader(http11.HeaderContentEncoding, encoding)
	resp.AddHeader(http11.HeaderVary, http11.HeaderAcceptEncoding)

	// A length set by the handler describes the identity body.
	setFold(resp.Headers(), http11.HeaderContentLength, strconv.Itoa(len(encoded)))
}

// setFold overwrites the header matching name case-insensitively, or adds name.
func setFold(h *http11.Header, name, value string) {
	key := name
	h.VisitAll(func(k, _ string) bool {
		if strings.EqualFold(k, name) {
			key = k
			return false
		}
		return true
	})
	h.Set(key, value)
}

// lookupFold finds a header by case-insensitive name. Header maps are
// case-sensitive; framing and negotiation must not be.
func lookupFold(h *http11.Header, name string) (string, bool) {
	if v, ok := h.Get(name); ok {
		return v, true
	}
	var (
		value string
		found bool
	)
	h.VisitAll(func(k, v string) bool {
		if strings.EqualFold(k, name) {
			value, found = v, true
			return false
		}
		return true
	})
	return value, found
}
