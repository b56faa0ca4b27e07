package http11

import (
	"net/url"
	"strings"
)

// Param is a single key/value pair of a query string.
type Param struct {
	Key   string
	Value string
}

// Query is an ordered list of query parameters. Duplicate keys are kept in the order
// they appeared. A nil Query means the request had no query at all.
type Query []Param

// ParseQuery parses "k1=v1&k2=v2" into a Query.
// Each pair is split once on the first '='; a pair without '=' fails the whole
// parse with ErrQuery carrying the original string. Values are stored as received,
// no percent-decoding is applied.
func ParseQuery(s string) (Query, error) {
	q := make(Query, 0, strings.Count(s, "&")+1)

	rest := s
	for {
		pair, tail, more := strings.Cut(rest, "&")

		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, newRequestError(ErrQuery, s)
		}
		q = append(q, Param{Key: key, Value: value})

		if !more {
			break
		}
		rest = tail
	}

	return q, nil
}

// Get returns the first value stored under key.
func (q Query) Get(key string) (string, bool) {
	for _, p := range q {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// Values returns every value stored under key, in order.
func (q Query) Values(key string) []string {
	var values []string
	for _, p := range q {
		if p.Key == key {
			values = append(values, p.Value)
		}
	}
	return values
}

// Len returns the number of pairs.
func (q Query) Len() int {
	return len(q)
}

// String re-encodes the query as "k1=v1&k2=v2" without escaping.
func (q Query) String() string {
	var b strings.Builder
	for i, p := range q {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(p.Key)
		b.WriteByte('=')
		b.WriteString(p.Value)
	}
	return b.String()
}

// Unescape returns a copy with keys and values percent-decoded
// ('+' is decoded as a space).
func (q Query) Unescape() (Query, error) {
	if q == nil {
		return nil, nil
	}

	out := make(Query, len(q))
	for i, p := range q {
		key, err := url.QueryUnescape(p.Key)
		if err != nil {
			return nil, newRequestError(ErrQuery, p.Key)
		}
		value, err := url.QueryUnescape(p.Value)
		if err != nil {
			return nil, newRequestError(ErrQuery, p.Value)
		}
		out[i] = Param{Key: key, Value: value}
	}
	return out, nil
}
