package server

import (
	"errors"
	"fmt"
	"io"
	"net"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/watt-toolkit/flare/pkg/flare/http11"
)

// Rejections the server raises before the parser or router are involved
var (
	// ErrHeaderTooLarge indicates the request line and headers exceed MaxHeaderBytes
	ErrHeaderTooLarge = errors.New("server: request header too large")

	// ErrBodyTooLarge indicates a Content-Length above MaxRequestBodySize
	ErrBodyTooLarge = errors.New("server: request body too large")

	// ErrContentLength indicates a Content-Length that is not a non-negative integer
	ErrContentLength = errors.New("server: invalid Content-Length")
)

// serveConn reads one request, answers it and closes the connection.
func (s *Server) serveConn(conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()

	if s.connSem != nil {
		defer func() { <-s.connSem }()
	}

	s.trackConnection(conn)
	defer s.untrackConnection(conn)

	start := time.Now()
	if s.cfg.ReadTimeout > 0 {
		conn.SetReadDeadline(start.Add(s.cfg.ReadTimeout))
	}

	req, status, err := s.readRequest(conn)
	if err != nil && status == 0 {
		// Transport failure or a client that sent nothing: no one to answer.
		if !errors.Is(err, io.EOF) {
			s.stats.ConnectionErrors.Add(1)
			s.log.Debug().Err(err).Str("remote", remoteAddr(conn)).Msg("read failed")
		}
		return
	}

	var resp *http11.Response
	if status != 0 {
		s.stats.RequestErrors.Add(1)
		s.metrics.parseError(err)
		resp = errorResponse(status)
	} else {
		resp = s.dispatch(req)
	}
	s.finalize(req, resp)

	if s.cfg.WriteTimeout > 0 {
		conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
	}
	n, werr := resp.WriteTo(conn)
	s.stats.BytesWritten.Add(uint64(n))
	if werr != nil {
		s.stats.ConnectionErrors.Add(1)
		if err == nil {
			err = werr
		}
	}

	elapsed := time.Since(start)
	s.stats.TotalRequests.Add(1)

	e := entry{
		remote:   remoteAddr(conn),
		status:   resp.Status.Code(),
		bytes:    n,
		duration: elapsed,
		err:      err,
	}
	method := http11.MethodUnknown
	if req != nil {
		method = req.Method()
		e.method = method.String()
		e.path = req.Path()
	}
	s.metrics.observe(method, resp.Status, elapsed)
	s.access.write(e)
}

// readRequest reads until the header block is complete, parses it and then
// reads the remainder of a Content-Length body. A non-zero status means the
// request was rejected and err carries the cause. A zero status with an error
// means the connection failed and nothing should be written.
func (s *Server) readRequest(r io.Reader) (*http11.Request, http11.Status, error) {
	buf := make([]byte, 0, s.cfg.ReadBufferSize)
	chunk := make([]byte, s.cfg.ReadBufferSize)

	for {
		if header, _, ok := http11.SplitHeaderBody(buf); ok {
			if len(header) > s.cfg.MaxHeaderBytes {
				return nil, http11.StatusRequestHeaderFieldsTooLarge, ErrHeaderTooLarge
			}
			break
		}
		if len(buf) > s.cfg.MaxHeaderBytes {
			return nil, http11.StatusRequestHeaderFieldsTooLarge, ErrHeaderTooLarge
		}

		n, err := r.Read(chunk)
		buf = append(buf, chunk[:n]...)
		s.stats.BytesRead.Add(uint64(n))
		if err != nil {
			// A peer that half-closes after an incomplete request still gets an answer
			if errors.Is(err, io.EOF) && len(buf) > 0 {
				break
			}
			return nil, 0, err
		}
	}

	req, err := http11.ParseRequestBytes(buf)
	if err != nil {
		return nil, statusForError(err), err
	}

	declared, ok := lookupFold(req.Headers(), http11.HeaderContentLength)
	if !ok {
		return req, 0, nil
	}
	length, err := strconv.Atoi(strings.TrimSpace(declared))
	if err != nil || length < 0 {
		return nil, http11.StatusBadRequest, fmt.Errorf("%w: %q", ErrContentLength, declared)
	}
	if length > s.cfg.MaxRequestBodySize {
		return nil, http11.StatusPayloadTooLarge, ErrBodyTooLarge
	}

	body := req.GetBody()
	switch {
	case len(body) < length:
		rest := make([]byte, length-len(body))
		n, err := io.ReadFull(r, rest)
		s.stats.BytesRead.Add(uint64(n))
		if err != nil {
			return nil, 0, err
		}
		body = append(body, rest...)
	case len(body) > length:
		body = body[:length]
	}
	if length == 0 {
		body = nil
	}
	req.SetBody(body)

	return req, 0, nil
}

// statusForError maps a parse failure to the status the client receives.
func statusForError(err error) http11.Status {
	switch {
	case errors.Is(err, http11.ErrInvalidRequestMethod):
		return http11.StatusNotImplemented
	case errors.Is(err, http11.ErrHTTPVersionNotSupported):
		return http11.StatusHTTPVersionNotSupported
	default:
		return http11.StatusBadRequest
	}
}

// dispatch routes req to its handler. Unknown paths get 404, known paths under
// another method get 405 with Allow, and handler panics become 500.
func (s *Server) dispatch(req *http11.Request) (resp *http11.Response) {
	h, ok := s.router.Lookup(req.Route)
	if !ok {
		allowed := s.router.Allowed(req.Path())
		if allowed == nil {
			return errorResponse(http11.StatusNotFound)
		}
		resp = errorResponse(http11.StatusMethodNotAllowed)
		resp.AddHeader(http11.HeaderAllow, joinMethods(allowed))
		return resp
	}

	defer func() {
		if r := recover(); r != nil {
			s.log.Error().
				Str("route", req.Route.String()).
				Interface("panic", r).
				Bytes("stack", debug.Stack()).
				Msg("handler panic recovered")
			resp = errorResponse(http11.StatusInternalServerError)
		}
	}()

	resp = h(req)
	if resp == nil {
		s.log.Error().Str("route", req.Route.String()).Msg("handler returned no response")
		resp = errorResponse(http11.StatusInternalServerError)
	}
	return resp
}

// finalize applies compression and fills the framing headers the handler
// left out.
func (s *Server) finalize(req *http11.Request, resp *http11.Response) {
	if s.cfg.CompressMinSize > 0 {
		s.compressResponse(req, resp)
	}
	if _, ok := lookupFold(resp.Headers(), http11.HeaderContentLength); !ok {
		resp.AddHeader(http11.HeaderContentLength, strconv.Itoa(len(resp.GetBody())))
	}
	if _, ok := lookupFold(resp.Headers(), http11.HeaderConnection); !ok {
		resp.AddHeader(http11.HeaderConnection, "close")
	}
}

// errorResponse builds the JSON body the server sends for statuses it
// generates itself.
func errorResponse(status http11.Status) *http11.Response {
	resp := http11.NewResponse(status)
	if err := JSON(resp, status, errorBody{Error: status.Text()}); err != nil {
		resp.SetBodyString(status.Text())
	}
	return resp
}

func joinMethods(methods []http11.Method) string {
	names := make([]string, len(methods))
	for i, m := range methods {
		names[i] = m.String()
	}
	return strings.Join(names, ", ")
}

func remoteAddr(conn net.Conn) string {
	if addr := conn.RemoteAddr(); addr != nil {
		return addr.String()
	}
	return ""
}
