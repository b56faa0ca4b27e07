// Package http11 implements the flare HTTP/1.1 message codec: request parsing from raw
// bytes and response serialization to the exact wire format.
package http11

// HTTP Method IDs for O(1) switching
// MethodUnknown is the zero value and is never produced by a successful parse.
const (
	MethodUnknown Method = 0
	MethodGET     Method = 1
	MethodPOST    Method = 2
	MethodPUT     Method = 3
	MethodDELETE  Method = 4
	MethodPATCH   Method = 5
	MethodHEAD    Method = 6
	MethodOPTIONS Method = 7
	MethodCONNECT Method = 8
	MethodTRACE   Method = 9
)

// HTTP Methods - Byte slices for serialization (zero allocations)
var (
	methodGETBytes     = []byte("GET")
	methodPOSTBytes    = []byte("POST")
	methodPUTBytes     = []byte("PUT")
	methodDELETEBytes  = []byte("DELETE")
	methodPATCHBytes   = []byte("PATCH")
	methodHEADBytes    = []byte("HEAD")
	methodOPTIONSBytes = []byte("OPTIONS")
	methodCONNECTBytes = []byte("CONNECT")
	methodTRACEBytes   = []byte("TRACE")
)

// HTTP Methods - Strings
const (
	methodGETString     = "GET"
	methodPOSTString    = "POST"
	methodPUTString     = "PUT"
	methodDELETEString  = "DELETE"
	methodPATCHString   = "PATCH"
	methodHEADString    = "HEAD"
	methodOPTIONSString = "OPTIONS"
	methodCONNECTString = "CONNECT"
	methodTRACEString   = "TRACE"
)

// Well-known header names. Lookups are exact-case.
const (
	HeaderCookie          = "Cookie"
	HeaderSetCookie       = "Set-Cookie"
	HeaderLocation        = "Location"
	HeaderContentLength   = "Content-Length"
	HeaderContentType     = "Content-Type"
	HeaderContentEncoding = "Content-Encoding"
	HeaderAcceptEncoding  = "Accept-Encoding"
	HeaderConnection      = "Connection"
	HeaderAllow           = "Allow"
	HeaderVary            = "Vary"
)

// Protocol constants
var (
	http11Prefix = []byte("HTTP/1.1 ")
	crlfBytes    = []byte("\r\n")
	colonSpace   = []byte(": ")
)

// versionMarker must appear in the version token of a request line.
const versionMarker = "HTTP/"

// headerBodySeparators are tried in order; the first one present in the input wins.
var headerBodySeparators = [][]byte{
	[]byte("\r\n\r\n"),
	[]byte("\n\n"),
}
