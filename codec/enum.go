package codec

import (
	"fmt"
	"strings"
	"sync"
)

// Unrecognized is what an enumeration decodes to when the literal is not in
// its declared set. It is lower case so it can never collide with an OFX
// literal.
const Unrecognized = "unrecognized"

var enums sync.Map // Key -> *enumCodec

// Enum declares a closed literal set and returns its key. Declaring the same
// name twice replaces the earlier set.
func Enum(name string, literals ...string) Key {
	k := Key(enumPrefix + name)
	set := make(map[string]struct{}, len(literals))
	for _, l := range literals {
		set[l] = struct{}{}
	}
	enums.Store(k, &enumCodec{key: k, literals: append([]string(nil), literals...), set: set})
	return k
}

func lookupEnum(k Key) (*enumCodec, bool) {
	v, ok := enums.Load(k)
	if !ok {
		return nil, false
	}
	return v.(*enumCodec), true
}

// Literals returns the declared literals for an enumeration key.
func Literals(k Key) []string {
	e, ok := lookupEnum(k)
	if !ok {
		return nil
	}
	return append([]string(nil), e.literals...)
}

// IsEnum reports whether k was produced by Enum.
func IsEnum(k Key) bool { return strings.HasPrefix(string(k), enumPrefix) }

// IsUnrecognized reports whether v is the sentinel for an unknown literal.
func IsUnrecognized(v any) bool {
	s, ok := stringOf(v)
	return ok && s == Unrecognized
}

type enumCodec struct {
	key      Key
	literals []string
	set      map[string]struct{}
}

func (e *enumCodec) Encode(v any) (string, error) {
	s, ok := stringOf(v)
	if !ok {
		return "", convErr(e.key, "", fmt.Sprintf("expected string literal, got %T", v), nil)
	}
	if s == Unrecognized {
		return "", convErr(e.key, s, "cannot encode an unrecognized literal", nil)
	}
	if _, ok := e.set[s]; !ok {
		return "", convErr(e.key, s, "literal not in enumeration", nil)
	}
	return s, nil
}

func (e *enumCodec) Decode(text string) (any, error) {
	if _, ok := e.set[text]; ok {
		return text, nil
	}
	return Unrecognized, nil
}

func (e *enumCodec) IsZero(v any) bool {
	s, _ := stringOf(v)
	return s == ""
}
