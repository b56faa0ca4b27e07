package main

import (
	"html"
	"strings"

	"github.com/watt-toolkit/flare/pkg/flare/http11"
	"github.com/watt-toolkit/flare/pkg/flare/router"
	"github.com/watt-toolkit/flare/pkg/flare/server"
)

const sessionCookie = "flare_session"

// serverHeader stamps every routed response.
func serverHeader(next router.Handler) router.Handler {
	return func(req *http11.Request) *http11.Response {
		resp := next(req)
		if resp != nil {
			resp.AddHeader("Server", "flare")
		}
		return resp
	}
}

func newRouter(stats func() server.StatsSnapshot) *router.Router {
	r := router.New()
	r.Use(serverHeader)

	r.Get("/", func(req *http11.Request) *http11.Response {
		resp := http11.NewResponse(http11.StatusOK)
		resp.AddHeader(http11.HeaderContentType, "text/html; charset=utf-8")

		name := "world"
		if v, ok := req.Query.Get("name"); ok && v != "" {
			name = v
		}
		resp.SetBodyString("<h1>Hello, " + html.EscapeString(name) + "!</h1>")
		return resp
	})

	r.Get("/health", func(*http11.Request) *http11.Response {
		resp := http11.NewResponse(http11.StatusOK)
		resp.SetBodyString("ok")
		return resp
	})

	r.Get("/redirect", func(*http11.Request) *http11.Response {
		resp := http11.NewResponse(http11.StatusOK)
		resp.Redirect("/")
		return resp
	})

	// Returns the session cookie the client sent, or issues one.
	r.Get("/session", func(req *http11.Request) *http11.Response {
		resp := http11.NewResponse(http11.StatusOK)
		if v, ok := req.Cookie(sessionCookie); ok {
			resp.SetBodyString("session: " + v)
			return resp
		}
		resp.SetSessionCookie(sessionCookie, "ok")
		resp.SetBodyString("session started")
		return resp
	})

	r.Post("/echo", func(req *http11.Request) *http11.Response {
		resp := http11.NewResponse(http11.StatusOK)
		if ct, ok := req.GetHeader(http11.HeaderContentType); ok {
			resp.AddHeader(http11.HeaderContentType, ct)
		}
		resp.SetBody(req.GetBody())
		return resp
	})

	r.Get("/stats", func(*http11.Request) *http11.Response {
		resp := http11.NewResponse(http11.StatusOK)
		if err := server.JSON(resp, http11.StatusOK, stats()); err != nil {
			resp.Status = http11.StatusInternalServerError
		}
		return resp
	})

	return r
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
