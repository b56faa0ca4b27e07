package http11

import "errors"

// Parser error kinds. Every parse failure is a *RequestError wrapping one of these,
// so errors.Is(err, ErrQuery) selects the kind and errors.As recovers the raw text.
var (
	// ErrInvalidRequest indicates empty input or a request line missing a required token
	ErrInvalidRequest = errors.New("http11: invalid request")

	// ErrInvalidRequestMethod indicates a method token outside the supported set
	ErrInvalidRequestMethod = errors.New("http11: invalid request method")

	// ErrNoURLFound indicates the request line has no target token
	ErrNoURLFound = errors.New("http11: no URL found in request")

	// ErrHTTPVersionNotSupported indicates the version token lacks the "HTTP/" marker
	ErrHTTPVersionNotSupported = errors.New("http11: HTTP version not supported")

	// ErrInvalidHeader indicates a header line without a ':' separator
	ErrInvalidHeader = errors.New("http11: invalid header")

	// ErrQuery indicates a malformed query string
	ErrQuery = errors.New("http11: error parsing query")

	// ErrCookie indicates a malformed Cookie header segment
	ErrCookie = errors.New("http11: error parsing cookies")
)

// RequestError carries the kind of a parse failure together with the offending
// raw text.
type RequestError struct {
	Kind error
	Raw  string
}

func (e *RequestError) Error() string {
	if e.Raw == "" {
		return e.Kind.Error()
	}
	return e.Kind.Error() + ": " + e.Raw
}

func (e *RequestError) Unwrap() error {
	return e.Kind
}

func newRequestError(kind error, raw string) *RequestError {
	return &RequestError{Kind: kind, Raw: raw}
}
