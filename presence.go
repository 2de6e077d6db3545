package ofxkit

// Presence is the bit flag collected by WithMeta APIs.
type Presence uint8

const (
	PresenceSeen    Presence = 1 << iota // Tag appeared in the input and was consumed.
	PresenceEmpty                        // Tag was a leaf with empty text.
	PresenceSkipped                      // Tag was skipped in lenient mode.
)

// PresenceMap maps tag-chain paths to Presence flags.
type PresenceMap map[string]Presence

// Has reports whether every bit of f is set for path.
func (pm PresenceMap) Has(path string, f Presence) bool {
	return pm[path]&f == f
}

// Decoded carries the unmarshalled value along with the warnings raised while
// producing it and the presence of each input path.
type Decoded[T any] struct {
	Value    T
	Warnings Issues
	Presence PresenceMap
}

func (pm PresenceMap) mark(path string, f Presence) {
	if pm == nil {
		return
	}
	pm[path] |= f
}
