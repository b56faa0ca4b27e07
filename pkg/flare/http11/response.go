package http11

import (
	"bytes"
	"io"

	"github.com/valyala/bytebufferpool"
)

// Response is an HTTP/1.1 response built in memory and rendered with
// WireFormat or WriteTo.
//
// Rendering order is fixed:
//  1. status line, always "HTTP/1.1 <code> <reason>\r\n"
//  2. one "<name>: <value>\r\n" line per header, in insertion order
//  3. a blank "\r\n" line, present even with zero headers
//  4. the body bytes, if any, with no trailing terminator
//
// Cookies are not kept separately: SetCookie and SetSessionCookie write a
// Set-Cookie header directly.
type Response struct {
	Status Status

	message
}

// NewResponse creates a response with the given status, no headers and no body.
func NewResponse(status Status) *Response {
	return &Response{Status: status}
}

// SetSessionCookie sets a Set-Cookie header without an expiry attribute.
func (r *Response) SetSessionCookie(name, value string) {
	r.header.Set(HeaderSetCookie, RenderSetCookie(name, value))
}

// SetCookie sets a Set-Cookie header rendered from c.
func (r *Response) SetCookie(c Cookie) {
	r.header.Set(HeaderSetCookie, c.String())
}

// Redirect turns the response into a 301 Moved Permanently pointing at
// location, overwriting any earlier status and Location.
func (r *Response) Redirect(location string) {
	r.RedirectWith(StatusMovedPermanently, location)
}

// RedirectWith sets a redirect with an explicit status (302, 303, 307, 308...).
func (r *Response) RedirectWith(status Status, location string) {
	r.Status = status
	r.header.Set(HeaderLocation, location)
}

// WireFormat renders the response into a freshly allocated byte slice.
// Rendering goes through a pooled buffer; the returned slice is owned by the
// caller.
func (r *Response) WireFormat() []byte {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	r.appendTo(buf)
	return bytes.Clone(buf.B)
}

// String renders the response as text.
func (r *Response) String() string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	r.appendTo(buf)
	return buf.String()
}

// WriteTo writes the rendered response to w in a single Write call.
// Only errors from w are reported; rendering itself cannot fail.
func (r *Response) WriteTo(w io.Writer) (int64, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	r.appendTo(buf)
	n, err := w.Write(buf.B)
	return int64(n), err
}

// Size returns the number of bytes WireFormat would produce.
func (r *Response) Size() int {
	n := len(r.Status.Line())
	r.header.VisitAll(func(name, value string) bool {
		n += len(name) + len(colonSpace) + len(value) + len(crlfBytes)
		return true
	})
	return n + len(crlfBytes) + len(r.body)
}

// appendTo writes the status line, headers, blank line and body.
//
// Allocation behavior: 0 allocs/op for common status codes once the buffer has grown
func (r *Response) appendTo(buf *bytebufferpool.ByteBuffer) {
	buf.Write(r.Status.Line())

	r.header.VisitAll(func(name, value string) bool {
		buf.WriteString(name)
		buf.Write(colonSpace)
		buf.WriteString(value)
		buf.Write(crlfBytes)
		return true
	})

	buf.Write(crlfBytes)

	if len(r.body) > 0 {
		buf.Write(r.body)
	}
}
