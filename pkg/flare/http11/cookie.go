package http11

import (
	"strconv"
	"strings"
	"time"
)

// CookieList holds the name/value pairs sent by a client in a Cookie header.
type CookieList map[string]string

// NewCookieList returns an empty list.
func NewCookieList() CookieList {
	return make(CookieList)
}

// ParseCookies parses a Cookie header value of the form "a=1; b=2".
// Segments are trimmed and split once on the first '='. A segment without '='
// fails with ErrCookie carrying that segment.
func ParseCookies(v string) (CookieList, error) {
	list := make(CookieList, strings.Count(v, ";")+1)

	for _, segment := range strings.Split(v, ";") {
		segment = strings.TrimSpace(segment)

		name, value, ok := strings.Cut(segment, "=")
		if !ok {
			return nil, newRequestError(ErrCookie, segment)
		}
		list[name] = value
	}

	return list, nil
}

// Get returns the value of the named cookie.
func (l CookieList) Get(name string) (string, bool) {
	v, ok := l[name]
	return v, ok
}

// Len returns the number of cookies.
func (l CookieList) Len() int {
	return len(l)
}

// SameSite is the value of the SameSite Set-Cookie attribute.
type SameSite uint8

const (
	SameSiteDefault SameSite = iota
	SameSiteLax
	SameSiteStrict
	SameSiteNone
)

func (s SameSite) String() string {
	switch s {
	case SameSiteLax:
		return "Lax"
	case SameSiteStrict:
		return "Strict"
	case SameSiteNone:
		return "None"
	default:
		return ""
	}
}

// Cookie is a cookie the server sets through a Set-Cookie header.
// A Cookie with neither Expires nor MaxAge is a session cookie.
type Cookie struct {
	Name     string
	Value    string
	Path     string
	Domain   string
	Expires  time.Time
	MaxAge   int // seconds; 0 omits the attribute, negative renders Max-Age=0
	Secure   bool
	HTTPOnly bool
	SameSite SameSite
}

// IsSession reports whether the cookie carries no expiry attribute.
func (c Cookie) IsSession() bool {
	return c.Expires.IsZero() && c.MaxAge == 0
}

// String renders the Set-Cookie header value: "name=value" followed by the
// attributes that are set.
func (c Cookie) String() string {
	var b strings.Builder
	b.Grow(len(c.Name) + len(c.Value) + 1)

	b.WriteString(c.Name)
	b.WriteByte('=')
	b.WriteString(c.Value)

	if c.Path != "" {
		b.WriteString("; Path=")
		b.WriteString(c.Path)
	}
	if c.Domain != "" {
		b.WriteString("; Domain=")
		b.WriteString(c.Domain)
	}
	if !c.Expires.IsZero() {
		b.WriteString("; Expires=")
		b.WriteString(c.Expires.UTC().Format(TimeFormat))
	}
	if c.MaxAge > 0 {
		b.WriteString("; Max-Age=")
		b.WriteString(strconv.Itoa(c.MaxAge))
	} else if c.MaxAge < 0 {
		b.WriteString("; Max-Age=0")
	}
	if c.Secure {
		b.WriteString("; Secure")
	}
	if c.HTTPOnly {
		b.WriteString("; HttpOnly")
	}
	if c.SameSite != SameSiteDefault {
		b.WriteString("; SameSite=")
		b.WriteString(c.SameSite.String())
	}

	return b.String()
}

// TimeFormat is the HTTP-date layout used for the Expires attribute.
const TimeFormat = "Mon, 02 Jan 2006 15:04:05 GMT"

// CookieOption sets one Set-Cookie attribute.
type CookieOption func(*Cookie)

func WithPath(path string) CookieOption {
	return func(c *Cookie) { c.Path = path }
}

func WithDomain(domain string) CookieOption {
	return func(c *Cookie) { c.Domain = domain }
}

func WithExpires(t time.Time) CookieOption {
	return func(c *Cookie) { c.Expires = t }
}

func WithMaxAge(seconds int) CookieOption {
	return func(c *Cookie) { c.MaxAge = seconds }
}

func WithSecure() CookieOption {
	return func(c *Cookie) { c.Secure = true }
}

func WithHTTPOnly() CookieOption {
	return func(c *Cookie) { c.HTTPOnly = true }
}

func WithSameSite(s SameSite) CookieOption {
	return func(c *Cookie) { c.SameSite = s }
}

// RenderSetCookie produces a single Set-Cookie header value.
// Without options the result is the bare "name=value" of a session cookie.
func RenderSetCookie(name, value string, opts ...CookieOption) string {
	c := Cookie{Name: name, Value: value}
	for _, opt := range opts {
		opt(&c)
	}
	return c.String()
}
