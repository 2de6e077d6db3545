package wire

// Well-known header keys shared by both dialects.
const (
	HeaderOFX         = "OFXHEADER"
	HeaderData        = "DATA"
	HeaderVersion     = "VERSION"
	HeaderSecurity    = "SECURITY"
	HeaderEncoding    = "ENCODING"
	HeaderCharset     = "CHARSET"
	HeaderCompression = "COMPRESSION"
	HeaderOldFileUID  = "OLDFILEUID"
	HeaderNewFileUID  = "NEWFILEUID"
)

// Header is an insertion-ordered string map. Order matters to writers: the
// SGML header is emitted line by line in the order keys were first set.
type Header struct {
	keys []string
	vals map[string]string
}

// NewHeader builds a header from alternating key/value pairs.
func NewHeader(kv ...string) Header {
	var h Header
	for i := 0; i+1 < len(kv); i += 2 {
		h.Set(kv[i], kv[i+1])
	}
	return h
}

// Set stores v under k, keeping k's original position when it already exists.
func (h *Header) Set(k, v string) {
	if h.vals == nil {
		h.vals = map[string]string{}
	}
	if _, ok := h.vals[k]; !ok {
		h.keys = append(h.keys, k)
	}
	h.vals[k] = v
}

// Get returns the value stored under k.
func (h Header) Get(k string) (string, bool) {
	v, ok := h.vals[k]
	return v, ok
}

// Value returns the value stored under k or "".
func (h Header) Value(k string) string { return h.vals[k] }

// Keys returns keys in insertion order.
func (h Header) Keys() []string { return append([]string(nil), h.keys...) }

// Len returns the number of entries.
func (h Header) Len() int { return len(h.keys) }

// Range calls fn for each entry in order until fn returns false.
func (h Header) Range(fn func(k, v string) bool) {
	for _, k := range h.keys {
		if !fn(k, h.vals[k]) {
			return
		}
	}
}

// Clone returns an independent copy.
func (h Header) Clone() Header {
	var out Header
	h.Range(func(k, v string) bool {
		out.Set(k, v)
		return true
	})
	return out
}

// Merge returns a copy of base with every entry of over applied on top.
// Keys of base keep their positions; new keys from over are appended.
func Merge(base, over Header) Header {
	out := base.Clone()
	over.Range(func(k, v string) bool {
		out.Set(k, v)
		return true
	})
	return out
}

// Map returns the header as a plain map.
func (h Header) Map() map[string]string {
	m := make(map[string]string, len(h.keys))
	for k, v := range h.vals {
		m[k] = v
	}
	return m
}
