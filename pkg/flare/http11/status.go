package http11

import "strconv"

// Status is an HTTP status code. Its reason phrase comes from Text.
type Status int

// Status codes
const (
	StatusContinue           Status = 100
	StatusSwitchingProtocols Status = 101
	StatusProcessing         Status = 102

	StatusOK                   Status = 200
	StatusCreated              Status = 201
	StatusAccepted             Status = 202
	StatusNonAuthoritativeInfo Status = 203
	StatusNoContent            Status = 204
	StatusResetContent         Status = 205
	StatusPartialContent       Status = 206

	StatusMultipleChoices   Status = 300
	StatusMovedPermanently  Status = 301
	StatusFound             Status = 302
	StatusSeeOther          Status = 303
	StatusNotModified       Status = 304
	StatusTemporaryRedirect Status = 307
	StatusPermanentRedirect Status = 308

	StatusBadRequest                  Status = 400
	StatusUnauthorized                Status = 401
	StatusForbidden                   Status = 403
	StatusNotFound                    Status = 404
	StatusMethodNotAllowed            Status = 405
	StatusNotAcceptable               Status = 406
	StatusRequestTimeout              Status = 408
	StatusConflict                    Status = 409
	StatusGone                        Status = 410
	StatusLengthRequired              Status = 411
	StatusPreconditionFailed          Status = 412
	StatusPayloadTooLarge             Status = 413
	StatusURITooLong                  Status = 414
	StatusUnsupportedMediaType        Status = 415
	StatusTeapot                      Status = 418
	StatusUnprocessableEntity         Status = 422
	StatusTooManyRequests             Status = 429
	StatusRequestHeaderFieldsTooLarge Status = 431

	StatusInternalServerError     Status = 500
	StatusNotImplemented          Status = 501
	StatusBadGateway              Status = 502
	StatusServiceUnavailable      Status = 503
	StatusGatewayTimeout          Status = 504
	StatusHTTPVersionNotSupported Status = 505
)

// Code returns the numeric status code.
func (s Status) Code() int {
	return int(s)
}

// Text returns the reason phrase (RFC 7231 Section 6), or "Unknown".
func (s Status) Text() string {
	switch s {
	// 1xx Informational
	case 100:
		return "Continue"
	case 101:
		return "Switching Protocols"
	case 102:
		return "Processing"

	// 2xx Success
	case 200:
		return "OK"
	case 201:
		return "Created"
	case 202:
		return "Accepted"
	case 203:
		return "Non-Authoritative Information"
	case 204:
		return "No Content"
	case 205:
		return "Reset Content"
	case 206:
		return "Partial Content"

	// 3xx Redirection
	case 300:
		return "Multiple Choices"
	case 301:
		return "Moved Permanently"
	case 302:
		return "Found"
	case 303:
		return "See Other"
	case 304:
		return "Not Modified"
	case 305:
		return "Use Proxy"
	case 307:
		return "Temporary Redirect"
	case 308:
		return "Permanent Redirect"

	// 4xx Client Error
	case 400:
		return "Bad Request"
	case 401:
		return "Unauthorized"
	case 402:
		return "Payment Required"
	case 403:
		return "Forbidden"
	case 404:
		return "Not Found"
	case 405:
		return "Method Not Allowed"
	case 406:
		return "Not Acceptable"
	case 407:
		return "Proxy Authentication Required"
	case 408:
		return "Request Timeout"
	case 409:
		return "Conflict"
	case 410:
		return "Gone"
	case 411:
		return "Length Required"
	case 412:
		return "Precondition Failed"
	case 413:
		return "Payload Too Large"
	case 414:
		return "URI Too Long"
	case 415:
		return "Unsupported Media Type"
	case 416:
		return "Range Not Satisfiable"
	case 417:
		return "Expectation Failed"
	case 418:
		return "I'm a teapot"
	case 422:
		return "Unprocessable Entity"
	case 426:
		return "Upgrade Required"
	case 428:
		return "Precondition Required"
	case 429:
		return "Too Many Requests"
	case 431:
		return "Request Header Fields Too Large"

	// 5xx Server Error
	case 500:
		return "Internal Server Error"
	case 501:
		return "Not Implemented"
	case 502:
		return "Bad Gateway"
	case 503:
		return "Service Unavailable"
	case 504:
		return "Gateway Timeout"
	case 505:
		return "HTTP Version Not Supported"

	default:
		return "Unknown"
	}
}

// String returns "<code> <reason>".
func (s Status) String() string {
	return strconv.Itoa(int(s)) + " " + s.Text()
}

// IsRedirect reports whether s is a 3xx status that carries a Location.
func (s Status) IsRedirect() bool {
	switch s {
	case StatusMovedPermanently, StatusFound, StatusSeeOther,
		StatusTemporaryRedirect, StatusPermanentRedirect:
		return true
	}
	return false
}

// statusLines holds pre-rendered "HTTP/1.1 <code> <reason>\r\n" lines for the
// common codes so serialization does not rebuild them.
var statusLines = func() map[Status][]byte {
	common := []Status{
		StatusContinue, StatusSwitchingProtocols, StatusProcessing,
		StatusOK, StatusCreated, StatusAccepted, StatusNoContent,
		StatusMovedPermanently, StatusFound, StatusSeeOther, StatusNotModified,
		StatusTemporaryRedirect, StatusPermanentRedirect,
		StatusBadRequest, StatusUnauthorized, StatusForbidden, StatusNotFound,
		StatusMethodNotAllowed, StatusRequestTimeout, StatusPayloadTooLarge,
		StatusRequestHeaderFieldsTooLarge,
		StatusInternalServerError, StatusNotImplemented, StatusBadGateway,
		StatusServiceUnavailable, StatusGatewayTimeout, StatusHTTPVersionNotSupported,
	}

	lines := make(map[Status][]byte, len(common))
	for _, s := range common {
		lines[s] = buildStatusLine(s)
	}
	return lines
}()

// Line returns the status line including the trailing CRLF. The version is
// always HTTP/1.1.
//
// Allocation behavior: 0 allocs/op for common codes, 1 alloc/op otherwise
func (s Status) Line() []byte {
	if line, ok := statusLines[s]; ok {
		return line
	}
	return buildStatusLine(s)
}

func buildStatusLine(s Status) []byte {
	line := make([]byte, 0, len(http11Prefix)+32)
	line = append(line, http11Prefix...)
	line = strconv.AppendInt(line, int64(s), 10)
	line = append(line, ' ')
	line = append(line, s.Text()...)
	line = append(line, crlfBytes...)
	return line
}
