package codec

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// stringCodec is the identity conversion.
type stringCodec struct{}

func (stringCodec) Encode(v any) (string, error) {
	s, ok := stringOf(v)
	if !ok {
		return "", convErr(KeyString, "", fmt.Sprintf("expected string, got %T", v), nil)
	}
	return s, nil
}

func (stringCodec) Decode(text string) (any, error) { return text, nil }

func (stringCodec) IsZero(v any) bool {
	s, _ := stringOf(v)
	return s == ""
}

// integerCodec handles signed decimal integers (status codes, counts, years).
type integerCodec struct{}

func (integerCodec) Encode(v any) (string, error) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), nil
	}
	return "", convErr(KeyInteger, "", fmt.Sprintf("expected integer, got %T", v), nil)
}

func (integerCodec) Decode(text string) (any, error) {
	s := strings.TrimPrefix(strings.TrimSpace(text), "+")
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, convErr(KeyInteger, text, "invalid integer", err)
	}
	return n, nil
}

// IsZero is always false: 0 is a legitimate status code.
func (integerCodec) IsZero(v any) bool { return false }

// boolYNCodec maps Y/N literals.
type boolYNCodec struct{}

func (boolYNCodec) Encode(v any) (string, error) {
	b, ok := v.(bool)
	if !ok {
		return "", convErr(KeyBoolYN, "", fmt.Sprintf("expected bool, got %T", v), nil)
	}
	if b {
		return "Y", nil
	}
	return "N", nil
}

func (boolYNCodec) Decode(text string) (any, error) {
	switch strings.TrimSpace(text) {
	case "Y":
		return true, nil
	case "N":
		return false, nil
	}
	return nil, convErr(KeyBoolYN, text, "expected Y or N", nil)
}

func (boolYNCodec) IsZero(v any) bool { return false }
