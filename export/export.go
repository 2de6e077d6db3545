// Package export renders wire trees in formats other than OFX: JSON and YAML
// for inspection, CBOR for compact snapshots that can be read back.
package export

import (
	"bytes"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/reoring/ofxkit/wire"
)

// Format names accepted by Encode.
const (
	JSON = "json"
	YAML = "yaml"
	CBOR = "cbor"
)

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error

	// Deterministic output so equal trees give equal snapshots.
	encOpts := cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
	}
	encMode, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create node CBOR encoder mode: %v", err))
	}

	decOpts := cbor.DecOptions{
		DupMapKey:       cbor.DupMapKeyEnforcedAPF,
		IndefLength:     cbor.IndefLengthAllowed,
		MaxNestedLevels: 256,
	}
	decMode, err = decOpts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create node CBOR decoder mode: %v", err))
	}
}

// Encode renders n in the named format.
func Encode(n *wire.Node, format string) ([]byte, error) {
	switch format {
	case JSON:
		return EncodeJSON(n)
	case YAML:
		return EncodeYAML(n)
	case CBOR:
		return EncodeCBOR(n)
	}
	return nil, fmt.Errorf("export: unknown format %q", format)
}

// Decode is the inverse of Encode. The result is checked with
// wire.Node.Validate.
func Decode(data []byte, format string) (*wire.Node, error) {
	switch format {
	case JSON:
		return DecodeJSON(data)
	case YAML:
		return DecodeYAML(data)
	case CBOR:
		return DecodeCBOR(data)
	}
	return nil, fmt.Errorf("export: unknown format %q", format)
}

// EncodeJSON renders n as indented JSON.
func EncodeJSON(n *wire.Node) ([]byte, error) {
	if err := n.Validate(); err != nil {
		return nil, err
	}
	return json.MarshalIndent(n, "", "  ")
}

func DecodeJSON(data []byte) (*wire.Node, error) {
	var n wire.Node
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("export: decode json: %w", err)
	}
	return checked(&n)
}

// EncodeYAML renders n as a YAML document.
func EncodeYAML(n *wire.Node) ([]byte, error) {
	if err := n.Validate(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(n); err != nil {
		return nil, fmt.Errorf("export: encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func DecodeYAML(data []byte) (*wire.Node, error) {
	var n wire.Node
	if err := yaml.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("export: decode yaml: %w", err)
	}
	return checked(&n)
}

// EncodeCBOR renders n with integer map keys.
func EncodeCBOR(n *wire.Node) ([]byte, error) {
	if err := n.Validate(); err != nil {
		return nil, err
	}
	return encMode.Marshal(n)
}

func DecodeCBOR(data []byte) (*wire.Node, error) {
	var n wire.Node
	if err := decMode.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("export: decode cbor: %w", err)
	}
	return checked(&n)
}

func checked(n *wire.Node) (*wire.Node, error) {
	if err := n.Validate(); err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	return n, nil
}
