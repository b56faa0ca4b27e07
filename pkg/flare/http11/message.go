package http11

// Message is the header and body accessor surface shared by Request and Response.
type Message interface {
	GetHeader(key string) (string, bool)
	AddHeader(key, value string)
	Headers() *Header
	GetBody() []byte
	SetBody(body []byte)
	GetBodyString() string
	SetBodyString(s string)
}

var (
	_ Message = (*Request)(nil)
	_ Message = (*Response)(nil)
)

// message implements Message for both request and response.
type message struct {
	header Header
	body   []byte
}

// GetHeader retrieves a header value by exact name.
func (m *message) GetHeader(key string) (string, bool) {
	return m.header.Get(key)
}

// AddHeader inserts or overwrites a header.
func (m *message) AddHeader(key, value string) {
	m.header.Set(key, value)
}

// Headers returns the header map.
func (m *message) Headers() *Header {
	return &m.header
}

// GetBody returns the body, or nil when there is none.
func (m *message) GetBody() []byte {
	return m.body
}

// SetBody replaces the body. A nil slice removes it.
func (m *message) SetBody(body []byte) {
	m.body = body
}

// GetBodyString returns the body decoded as UTF-8, with invalid sequences
// replaced. An absent body yields "".
func (m *message) GetBodyString() string {
	if m.body == nil {
		return ""
	}
	return decodeLossy(m.body)
}

// SetBodyString replaces the body with the bytes of s.
func (m *message) SetBodyString(s string) {
	m.body = []byte(s)
}

// HasBody reports whether a body is present.
func (m *message) HasBody() bool {
	return m.body != nil
}
