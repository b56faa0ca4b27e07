package http11

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseQuery(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Query
	}{
		{"single pair", "x=1", Query{{"x", "1"}}},
		{"two pairs", "a=1&b=2", Query{{"a", "1"}, {"b", "2"}}},
		{"duplicate keys kept in order", "a=1&a=2&b=3", Query{{"a", "1"}, {"a", "2"}, {"b", "3"}}},
		{"split on first equals", "expr=a=b", Query{{"expr", "a=b"}}},
		{"empty value", "flag=", Query{{"flag", ""}}},
		{"empty key", "=v", Query{{"", "v"}}},
		{"no percent decoding", "q=hello%20world+x", Query{{"q", "hello%20world+x"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := ParseQuery(tt.input)
			if err != nil {
				t.Fatalf("ParseQuery(%q) failed: %v", tt.input, err)
			}
			if !reflect.DeepEqual(q, tt.expected) {
				t.Errorf("ParseQuery(%q) = %v, want %v", tt.input, q, tt.expected)
			}
		})
	}
}

func TestParseQueryMalformed(t *testing.T) {
	inputs := []string{
		"novalue",
		"a=1&broken",
		"a=1&&b=2",
		"a=1&",
		"",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			q, err := ParseQuery(input)
			if err == nil {
				t.Fatalf("ParseQuery(%q) = %v, want error", input, q)
			}
			if q != nil {
				t.Errorf("ParseQuery(%q) returned partial query %v", input, q)
			}
			if !errors.Is(err, ErrQuery) {
				t.Errorf("error %v is not ErrQuery", err)
			}

			var reqErr *RequestError
			if !errors.As(err, &reqErr) || reqErr.Raw != input {
				t.Errorf("error raw = %+v, want original string %q", reqErr, input)
			}
		})
	}
}

func TestQueryAccessors(t *testing.T) {
	q := Query{{"a", "1"}, {"b", "2"}, {"a", "3"}}

	if v, ok := q.Get("a"); !ok || v != "1" {
		t.Errorf("Get(a) = %q, %v, want first value 1", v, ok)
	}
	if _, ok := q.Get("missing"); ok {
		t.Error("Get(missing) reported found")
	}
	if got := q.Values("a"); !reflect.DeepEqual(got, []string{"1", "3"}) {
		t.Errorf("Values(a) = %v", got)
	}
	if q.Len() != 3 {
		t.Errorf("Len() = %d, want 3", q.Len())
	}
	if q.String() != "a=1&b=2&a=3" {
		t.Errorf("String() = %q", q.String())
	}
}

func TestQueryUnescape(t *testing.T) {
	q := Query{{"q", "hello%20world"}, {"name", "a+b"}}

	decoded, err := q.Unescape()
	if err != nil {
		t.Fatalf("Unescape failed: %v", err)
	}

	expected := Query{{"q", "hello world"}, {"name", "a b"}}
	if !reflect.DeepEqual(decoded, expected) {
		t.Errorf("Unescape() = %v, want %v", decoded, expected)
	}

	// Original is untouched
	if q[0].Value != "hello%20world" {
		t.Errorf("Unescape modified receiver: %v", q)
	}

	if _, err := (Query{{"bad", "%zz"}}).Unescape(); !errors.Is(err, ErrQuery) {
		t.Errorf("Unescape of invalid escape = %v, want ErrQuery", err)
	}
}
