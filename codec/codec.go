// Package codec converts between OFX wire text and typed scalar values.
//
// Every element member of a schema names a Key; the Registry maps keys to
// Codec implementations. Built-in keys cover strings, integers, dates,
// decimal amounts, Y/N booleans and closed enumerations. Registries are safe
// for concurrent use and may be extended with custom codecs.
package codec

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// Key identifies a codec inside a Registry.
type Key string

// Built-in codec keys.
const (
	KeyString   Key = "STRING"
	KeyInteger  Key = "INTEGER"
	KeyDateTime Key = "DATE_TIME"
	KeyAmount   Key = "DECIMAL_AMOUNT"
	KeyBoolYN   Key = "BOOLEAN_YN"
)

const enumPrefix = "ENUM:"

// Codec performs the two-way conversion for one value kind.
type Codec interface {
	// Encode renders v as wire text.
	Encode(v any) (string, error)
	// Decode parses wire text into the codec's value type.
	Decode(text string) (any, error)
	// IsZero reports whether v should be treated as absent when it is held
	// in a non-pointer field.
	IsZero(v any) bool
}

// ErrConversion is matched by every *ConversionError.
var ErrConversion = errors.New("codec: value conversion failed")

// ErrUnknownKey is returned when a registry has no codec for a key.
var ErrUnknownKey = errors.New("codec: unknown codec key")

// ConversionError describes a malformed literal or an unencodable value.
type ConversionError struct {
	Key    Key
	Text   string
	Reason string
	Cause  error
}

func (e *ConversionError) Error() string {
	b := &strings.Builder{}
	fmt.Fprintf(b, "codec %s: %s", e.Key, e.Reason)
	if e.Text != "" {
		fmt.Fprintf(b, " (%q)", e.Text)
	}
	if e.Cause != nil {
		fmt.Fprintf(b, ": %v", e.Cause)
	}
	return b.String()
}

func (e *ConversionError) Is(target error) bool { return target == ErrConversion }

func (e *ConversionError) Unwrap() error { return e.Cause }

func convErr(k Key, text, reason string, cause error) error {
	return &ConversionError{Key: k, Text: text, Reason: reason, Cause: cause}
}

// Registry maps keys to codecs.
type Registry struct {
	mu     sync.RWMutex
	codecs map[Key]Codec
}

// NewRegistry returns a registry holding the built-in codecs.
func NewRegistry() *Registry {
	r := &Registry{codecs: map[Key]Codec{}}
	r.codecs[KeyString] = stringCodec{}
	r.codecs[KeyInteger] = integerCodec{}
	r.codecs[KeyDateTime] = dateTimeCodec{}
	r.codecs[KeyAmount] = amountCodec{}
	r.codecs[KeyBoolYN] = boolYNCodec{}
	return r
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry used when callers pass none.
func Default() *Registry { return defaultRegistry }

// Register installs or replaces the codec for k; nil codecs are ignored.
func (r *Registry) Register(k Key, c Codec) {
	if c == nil {
		return
	}
	r.mu.Lock()
	r.codecs[k] = c
	r.mu.Unlock()
}

// Lookup returns the codec for k. Enumeration keys fall back to the
// declarations made through Enum.
func (r *Registry) Lookup(k Key) (Codec, bool) {
	r.mu.RLock()
	c, ok := r.codecs[k]
	r.mu.RUnlock()
	if ok {
		return c, true
	}
	if IsEnum(k) {
		if e, ok := lookupEnum(k); ok {
			return e, true
		}
	}
	return nil, false
}

// Encode renders v with the codec registered under k.
func (r *Registry) Encode(k Key, v any) (string, error) {
	c, ok := r.Lookup(k)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, k)
	}
	return c.Encode(v)
}

// Decode parses text with the codec registered under k.
func (r *Registry) Decode(k Key, text string) (any, error) {
	c, ok := r.Lookup(k)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKey, k)
	}
	return c.Decode(text)
}

// IsZero reports absence for v according to the codec under k. Unknown keys
// treat only nil as zero.
func (r *Registry) IsZero(k Key, v any) bool {
	if v == nil {
		return true
	}
	c, ok := r.Lookup(k)
	if !ok {
		return false
	}
	return c.IsZero(v)
}

// stringOf accepts string and string-kinded named types.
func stringOf(v any) (string, bool) {
	if s, ok := v.(string); ok {
		return s, true
	}
	rv := reflect.ValueOf(v)
	if rv.IsValid() && rv.Kind() == reflect.String {
		return rv.String(), true
	}
	return "", false
}
