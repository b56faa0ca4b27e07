package router

import (
	"reflect"
	"testing"

	"github.com/watt-toolkit/flare/pkg/flare/http11"
)

// Test handler that answers with a fixed body
func testHandler(body string) Handler {
	return func(*http11.Request) *http11.Response {
		resp := http11.NewResponse(http11.StatusOK)
		resp.SetBodyString(body)
		return resp
	}
}

func TestLookupStaticRoute(t *testing.T) {
	r := New()
	r.Get("/users", testHandler("list"))
	r.Post("/users", testHandler("create"))

	tests := []struct {
		name   string
		route  http11.Route
		found  bool
		expect string
	}{
		{"GET", http11.NewRoute(http11.MethodGET, "/users"), true, "list"},
		{"POST", http11.NewRoute(http11.MethodPOST, "/users"), true, "create"},
		{"wrong method", http11.NewRoute(http11.MethodPUT, "/users"), false, ""},
		{"unknown path", http11.NewRoute(http11.MethodGET, "/nope"), false, ""},
		{"prefix is not a match", http11.NewRoute(http11.MethodGET, "/users/1"), false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, ok := r.Lookup(tt.route)
			if ok != tt.found {
				t.Fatalf("Lookup(%v) found = %v, want %v", tt.route, ok, tt.found)
			}
			if !ok {
				return
			}
			if got := h(nil).GetBodyString(); got != tt.expect {
				t.Errorf("handler body = %q, want %q", got, tt.expect)
			}
		})
	}
}

func TestLookupParsedRequest(t *testing.T) {
	r := New()
	r.Get("/a", testHandler("a"))

	req, err := http11.ParseRequest("GET /a?x=1 HTTP/1.1\r\n\r\n")
	if err != nil {
		t.Fatalf("ParseRequest failed: %v", err)
	}

	h, ok := r.Lookup(req.Route)
	if !ok {
		t.Fatalf("route %v not found", req.Route)
	}
	if h(req).GetBodyString() != "a" {
		t.Error("wrong handler selected")
	}
}

func TestHandleReplaces(t *testing.T) {
	r := New()
	r.Get("/x", testHandler("old"))
	r.Get("/x", testHandler("new"))

	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
	h, _ := r.Lookup(http11.NewRoute(http11.MethodGET, "/x"))
	if h(nil).GetBodyString() != "new" {
		t.Error("re-registering should replace the handler")
	}
	if got := r.Allowed("/x"); len(got) != 1 {
		t.Errorf("Allowed(/x) = %v, want one method", got)
	}
}

func TestAllowed(t *testing.T) {
	r := New()
	r.Get("/items", testHandler(""))
	r.Delete("/items", testHandler(""))
	r.Patch("/items", testHandler(""))
	r.Put("/other", testHandler(""))

	expected := []http11.Method{http11.MethodGET, http11.MethodDELETE, http11.MethodPATCH}
	if got := r.Allowed("/items"); !reflect.DeepEqual(got, expected) {
		t.Errorf("Allowed(/items) = %v, want %v", got, expected)
	}
	if got := r.Allowed("/missing"); got != nil {
		t.Errorf("Allowed(/missing) = %v, want nil", got)
	}
}

func TestMiddlewareOrder(t *testing.T) {
	r := New()

	var order []string
	tag := func(name string) Middleware {
		return func(next Handler) Handler {
			return func(req *http11.Request) *http11.Response {
				order = append(order, name)
				return next(req)
			}
		}
	}

	r.Use(tag("first"), tag("second"))
	r.Get("/", testHandler("ok"))

	h, _ := r.Lookup(http11.NewRoute(http11.MethodGET, "/"))
	h(nil)

	if !reflect.DeepEqual(order, []string{"first", "second"}) {
		t.Errorf("middleware order = %v, want [first second]", order)
	}
}

func BenchmarkLookup(b *testing.B) {
	r := New()
	r.Get("/api/users", testHandler(""))
	r.Get("/api/posts", testHandler(""))
	route := http11.NewRoute(http11.MethodGET, "/api/posts")

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = r.Lookup(route)
	}
}
