package http11

// Request represents a parsed HTTP/1.1 request.
//
// A Request is a value object: it is built once by ParseRequest /
// ParseRequestBytes (or NewRequest) and afterwards only changed through its
// header, cookie and body accessors. It holds no references to the input it was
// parsed from.
type Request struct {
	// Route is the method and path of the request line
	Route Route

	// Query is nil when the target had no '?'
	Query Query

	// Cookies is filled from the Cookie header, empty otherwise
	Cookies CookieList

	message
}

// NewRequest creates a request with empty headers, an empty cookie list and no body.
func NewRequest(m Method, path string, q Query) *Request {
	return &Request{
		Route:   NewRoute(m, path),
		Query:   q,
		Cookies: NewCookieList(),
	}
}

// NewRequestFromRoute creates a request for an already built route.
func NewRequestFromRoute(r Route) *Request {
	return NewRequest(r.Method, r.Path, nil)
}

// Method returns the request method.
func (r *Request) Method() Method {
	return r.Route.Method
}

// Path returns the request path without the query string.
func (r *Request) Path() string {
	return r.Route.Path
}

// HasQuery reports whether the target carried a query string.
func (r *Request) HasQuery() bool {
	return r.Query != nil
}

// Cookie returns the value of a cookie sent by the client.
func (r *Request) Cookie(name string) (string, bool) {
	return r.Cookies.Get(name)
}

// Equal reports whether two requests are structurally equal.
func (r *Request) Equal(other *Request) bool {
	if r.Route != other.Route {
		return false
	}
	if (r.Query == nil) != (other.Query == nil) || len(r.Query) != len(other.Query) {
		return false
	}
	for i := range r.Query {
		if r.Query[i] != other.Query[i] {
			return false
		}
	}
	if len(r.Cookies) != len(other.Cookies) {
		return false
	}
	for k, v := range r.Cookies {
		if ov, ok := other.Cookies[k]; !ok || ov != v {
			return false
		}
	}
	if (r.body == nil) != (other.body == nil) || string(r.body) != string(other.body) {
		return false
	}
	return r.header.Equal(&other.header)
}
