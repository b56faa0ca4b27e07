package http11

// Header stores message headers as an ordered name -> value map.
//
// Design:
// - Set overwrites an existing value in place, so the last write wins and the
//   entry keeps the position of its first insertion
// - Names are stored and matched exactly as given (no case-folding)
// - VisitAll walks entries in insertion order, which is the order a Response
//   renders them on the wire
//
// The zero value is an empty Header ready to use.
type Header struct {
	names  []string
	values map[string]string
}

// Set inserts or overwrites a header.
func (h *Header) Set(name, value string) {
	if h.values == nil {
		h.values = make(map[string]string, 8)
	}
	if _, ok := h.values[name]; !ok {
		h.names = append(h.names, name)
	}
	h.values[name] = value
}

// Get retrieves a header value by exact name.
func (h *Header) Get(name string) (string, bool) {
	v, ok := h.values[name]
	return v, ok
}

// Has checks if a header exists.
func (h *Header) Has(name string) bool {
	_, ok := h.values[name]
	return ok
}

// Del deletes a header by name.
func (h *Header) Del(name string) {
	if _, ok := h.values[name]; !ok {
		return
	}
	delete(h.values, name)

	for i, n := range h.names {
		if n == name {
			// Shift remaining names down to keep order
			h.names = append(h.names[:i], h.names[i+1:]...)
			break
		}
	}
}

// Len returns the number of headers.
func (h *Header) Len() int {
	return len(h.names)
}

// Reset clears all headers for reuse.
func (h *Header) Reset() {
	h.names = h.names[:0]
	clear(h.values)
}

// VisitAll calls the visitor for each header in insertion order.
// Iteration stops if visitor returns false.
func (h *Header) VisitAll(visitor func(name, value string) bool) {
	for _, name := range h.names {
		if !visitor(name, h.values[name]) {
			return
		}
	}
}

// Map returns a copy of the headers as a plain map.
func (h *Header) Map() map[string]string {
	m := make(map[string]string, len(h.values))
	for k, v := range h.values {
		m[k] = v
	}
	return m
}

// Equal reports whether both headers hold the same name/value pairs,
// ignoring order.
func (h *Header) Equal(other *Header) bool {
	if h.Len() != other.Len() {
		return false
	}
	for name, v := range h.values {
		if ov, ok := other.values[name]; !ok || ov != v {
			return false
		}
	}
	return true
}
