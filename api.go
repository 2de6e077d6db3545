package ofxkit

import (
	"github.com/reoring/ofxkit/wire"
)

// Unmarshal populates a T from n. On any fatal issue it returns the zero T
// and the fatal Issues; warnings are dropped (use UnmarshalWithMeta to keep
// them).
func Unmarshal[T Describer](n *wire.Node, opts ...Options) (T, error) {
	dm, err := UnmarshalWithMeta[T](n, opts...)
	return dm.Value, err
}

// UnmarshalWithMeta is Unmarshal plus the warnings raised in lenient mode and
// the presence of each consumed path.
func UnmarshalWithMeta[T Describer](n *wire.Node, opts ...Options) (Decoded[T], error) {
	opt := resolveOptions(opts)
	pm := PresenceMap{}
	v, iss := unmarshalValue[T](n, opt, pm)
	if iss.HasFatal() {
		return Decoded[T]{Warnings: iss.Warnings()}, iss.Fatal()
	}
	return Decoded[T]{Value: v, Warnings: iss.Warnings(), Presence: pm}, nil
}

// UnmarshalInto populates target, which must be a non-nil pointer. target is
// left untouched when a fatal issue occurs. The returned Issues hold the
// warnings.
func UnmarshalInto(n *wire.Node, target Describer, opts ...Options) (Issues, error) {
	opt := resolveOptions(opts)
	iss := unmarshalInto(n, target, opt)
	if iss.HasFatal() {
		return iss.Warnings(), iss.Fatal()
	}
	return iss.Warnings(), nil
}

// Marshal emits the wire tree for v under its declared tag.
func Marshal(v Describer, opts ...Options) (*wire.Node, error) {
	return MarshalAs(v, "", opts...)
}

// MarshalAs emits v under tag, which overrides the declared tag. Types
// declared without a tag can only be marshalled this way.
func MarshalAs(v Describer, tag string, opts ...Options) (*wire.Node, error) {
	opt := resolveOptions(opts)
	n, iss := encodeRoot(v, tag, opt)
	if iss.HasFatal() {
		return nil, iss.Fatal()
	}
	return n, nil
}

// TagOf returns the declared wire tag of v's type.
func TagOf(v Describer) (string, error) {
	s, err := SchemaOf(v)
	if err != nil {
		return "", err
	}
	return s.Tag, nil
}
