package http11

import (
	"bytes"
	"strings"
)

// ParseRequestBytes parses a raw request that may carry a body.
//
// The input is split at the first header/body separator (CRLFCRLF is tried
// before LFLF), the header block is decoded as UTF-8 with invalid sequences
// replaced, and everything after the separator becomes the body exactly as
// received. Without a separator the whole input is the header block and the
// request has no body.
func ParseRequestBytes(raw []byte) (*Request, error) {
	header, body, _ := SplitHeaderBody(raw)

	req, err := parseHeaderBlock(decodeLossy(header))
	if err != nil {
		return nil, err
	}

	if len(body) > 0 {
		req.body = bytes.Clone(body)
	}
	return req, nil
}

// ParseRequest parses a request line and header block given as text.
// Parsing stops at the first empty line; anything after it is ignored.
func ParseRequest(input string) (*Request, error) {
	return parseHeaderBlock(input)
}

// SplitHeaderBody splits raw at the first separator found, trying each
// candidate in order. The separator itself is dropped. ok is false when no
// separator is present, in which case header is raw and body is nil.
func SplitHeaderBody(raw []byte) (header, body []byte, ok bool) {
	for _, sep := range headerBodySeparators {
		if idx := bytes.Index(raw, sep); idx != -1 {
			return raw[:idx], raw[idx+len(sep):], true
		}
	}
	return raw, nil, false
}

// parseHeaderBlock runs the request-line and header state machine:
// request line -> headers -> Cookie re-parse. Every step fails fast.
func parseHeaderBlock(input string) (*Request, error) {
	lines := lineReader{s: input}

	requestLine, ok := lines.next()
	if !ok {
		return nil, newRequestError(ErrInvalidRequest, input)
	}

	req, err := parseRequestLine(requestLine, input)
	if err != nil {
		return nil, err
	}

	if err := parseHeaders(req, &lines); err != nil {
		return nil, err
	}

	if v, ok := req.header.Get(HeaderCookie); ok {
		cookies, err := ParseCookies(v)
		if err != nil {
			return nil, err
		}
		req.Cookies = cookies
	}

	return req, nil
}

// parseRequestLine parses "METHOD target VERSION". Tokens are separated by any
// run of whitespace; tokens after the third are ignored.
//
// raw is the whole input, reported by InvalidRequest errors.
func parseRequestLine(line, raw string) (*Request, error) {
	tokens := strings.Fields(line)

	// Parse METHOD
	if len(tokens) < 1 {
		return nil, newRequestError(ErrInvalidRequest, raw)
	}
	method, err := ParseMethod(tokens[0])
	if err != nil {
		return nil, err
	}

	// Parse target (path + optional query)
	if len(tokens) < 2 {
		return nil, newRequestError(ErrNoURLFound, "")
	}
	target := tokens[1]

	path := target
	var query Query
	if p, qs, found := strings.Cut(target, "?"); found {
		if qs == "" {
			return nil, newRequestError(ErrQuery, target)
		}
		query, err = ParseQuery(qs)
		if err != nil {
			return nil, err
		}
		path = p
	}

	// Parse HTTP-Version
	if len(tokens) < 3 {
		return nil, newRequestError(ErrInvalidRequest, raw)
	}
	if version := tokens[2]; !strings.Contains(version, versionMarker) {
		return nil, newRequestError(ErrHTTPVersionNotSupported, version)
	}

	return NewRequest(method, path, query), nil
}

// parseHeaders reads "Name: value" lines up to the first empty line or the end
// of input. The name is kept as-is, the value is trimmed, and duplicate names
// overwrite earlier values.
func parseHeaders(req *Request, lines *lineReader) error {
	for {
		line, ok := lines.next()
		if !ok || line == "" {
			return nil
		}

		name, value, found := strings.Cut(line, ":")
		if !found {
			return newRequestError(ErrInvalidHeader, line)
		}

		req.header.Set(name, strings.TrimSpace(value))
	}
}

// lineReader yields lines terminated by "\n" or "\r\n" with the terminator
// removed. A final line without terminator is returned as well; an empty
// remainder is not.
type lineReader struct {
	s string
}

func (r *lineReader) next() (string, bool) {
	if r.s == "" {
		return "", false
	}

	line, rest, found := strings.Cut(r.s, "\n")
	if found {
		r.s = rest
	} else {
		r.s = ""
	}

	line = strings.TrimSuffix(line, "\r")
	return line, true
}
