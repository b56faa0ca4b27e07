// Package router maps request routes to handlers.
package router

import (
	"sync"

	"github.com/watt-toolkit/flare/pkg/flare/http11"
)

// Handler produces the response for a parsed request.
type Handler func(*http11.Request) *http11.Response

// Middleware wraps a Handler to provide cross-cutting functionality.
//
// Example:
//
//	func Timing() router.Middleware {
//	    return func(next router.Handler) router.Handler {
//	        return func(r *http11.Request) *http11.Response {
//	            start := time.Now()
//	            resp := next(r)
//	            resp.AddHeader("X-Elapsed", time.Since(start).String())
//	            return resp
//	        }
//	    }
//	}
type Middleware func(Handler) Handler

// Router is a static route table: a method and an exact path select one handler.
//
// Performance:
//   - Lookup: one map access keyed by the comparable http11.Route, 0 allocs/op
type Router struct {
	routes map[http11.Route]Handler

	// methods per path, in registration order, for 405 Allow headers
	paths map[string][]http11.Method

	middleware []Middleware

	mu sync.RWMutex
}

// New creates an empty router.
func New() *Router {
	return &Router{
		routes: make(map[http11.Route]Handler),
		paths:  make(map[string][]http11.Method),
	}
}

// Use appends middleware. Middleware applies to handlers registered after the call.
func (r *Router) Use(mw ...Middleware) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.middleware = append(r.middleware, mw...)
}

// Handle registers h for the method and exact path. Registering the same route
// again replaces the handler.
func (r *Router) Handle(m http11.Method, path string, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Apply middleware in reverse so the first registered runs outermost
	for i := len(r.middleware) - 1; i >= 0; i-- {
		h = r.middleware[i](h)
	}

	route := http11.NewRoute(m, path)
	if _, exists := r.routes[route]; !exists {
		r.paths[path] = append(r.paths[path], m)
	}
	r.routes[route] = h
}

func (r *Router) Get(path string, h Handler)    { r.Handle(http11.MethodGET, path, h) }
func (r *Router) Post(path string, h Handler)   { r.Handle(http11.MethodPOST, path, h) }
func (r *Router) Put(path string, h Handler)    { r.Handle(http11.MethodPUT, path, h) }
func (r *Router) Delete(path string, h Handler) { r.Handle(http11.MethodDELETE, path, h) }
func (r *Router) Patch(path string, h Handler)  { r.Handle(http11.MethodPATCH, path, h) }

// Lookup finds the handler registered for route.
func (r *Router) Lookup(route http11.Route) (Handler, bool) {
	r.mu.RLock()
	h, ok := r.routes[route]
	r.mu.RUnlock()
	return h, ok
}

// Allowed returns the methods registered for path, or nil if the path is unknown.
func (r *Router) Allowed(path string) []http11.Method {
	r.mu.RLock()
	defer r.mu.RUnlock()

	methods := r.paths[path]
	if len(methods) == 0 {
		return nil
	}
	out := make([]http11.Method, len(methods))
	copy(out, methods)
	return out
}

// Len returns the number of registered routes.
func (r *Router) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.routes)
}
