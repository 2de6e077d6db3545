package dialect

import (
	"fmt"
	"strings"

	semver "github.com/Masterminds/semver/v3"

	"github.com/reoring/ofxkit/wire"
)

// xmlRange selects the XML dialect; every older version is SGML.
var xmlRange = mustConstraint(">= 2.0.0")

func mustConstraint(s string) *semver.Constraints {
	c, err := semver.NewConstraint(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseVersion reads the VERSION header entry. OFX writes versions as three
// digits ("102", "220"); each digit becomes one semver component.
func ParseVersion(h wire.Header) (*semver.Version, error) {
	raw, ok := h.Get(wire.HeaderVersion)
	if !ok {
		return nil, fmt.Errorf("%w: missing %s", ErrMalformedHeader, wire.HeaderVersion)
	}
	return parseVersion(raw)
}

func parseVersion(raw string) (*semver.Version, error) {
	s := strings.TrimSpace(raw)
	if len(s) == 3 && strings.Trim(s, "0123456789") == "" {
		s = s[:1] + "." + s[1:2] + "." + s[2:]
	}
	v, err := semver.NewVersion(s)
	if err != nil {
		return nil, fmt.Errorf("%w: version %q: %v", ErrMalformedHeader, raw, err)
	}
	return v, nil
}

// FormatVersion renders v the way headers carry it ("2.2.0" -> "220").
func FormatVersion(v *semver.Version) string {
	return fmt.Sprintf("%d%d%d", v.Major(), v.Minor(), v.Patch())
}

// ForVersion maps a protocol version onto its dialect.
func ForVersion(v *semver.Version) (Dialect, error) {
	if v == nil {
		return nil, fmt.Errorf("%w: nil version", ErrUnknownDialect)
	}
	if xmlRange.Check(v) {
		return Lookup(XML)
	}
	return Lookup(SGML)
}

// ForVersionString parses raw ("102", "2.2.0") and maps it onto a dialect.
func ForVersionString(raw string) (Dialect, error) {
	v, err := parseVersion(raw)
	if err != nil {
		return nil, err
	}
	return ForVersion(v)
}
