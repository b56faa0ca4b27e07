package http11

// Route identifies a request for dispatch: a method and a path.
// It is a comparable value and can be used directly as a map key.
type Route struct {
	Method Method
	Path   string
}

// NewRoute builds the route for a method and path.
func NewRoute(m Method, path string) Route {
	return Route{Method: m, Path: path}
}

// String returns "METHOD path".
func (r Route) String() string {
	return r.Method.String() + " " + r.Path
}
