package xml

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/reoring/ofxkit/wire"
)

// legacyKeys only make sense in the SGML header.
var legacyKeys = map[string]bool{
	wire.HeaderData:        true,
	wire.HeaderEncoding:    true,
	wire.HeaderCharset:     true,
	wire.HeaderCompression: true,
}

const declaration = `<?xml version="1.0" encoding="UTF-8" standalone="no"?>`

// Write emits the XML declaration, the OFX instruction and an indented body.
func (d Dialect) Write(w io.Writer, h wire.Header, root *wire.Node) error {
	if err := root.Validate(); err != nil {
		return fmt.Errorf("xml: %w", err)
	}
	hdr := wire.Merge(d.DefaultHeader(), h)
	hdr.Set(wire.HeaderOFX, "200")

	var inst strings.Builder
	hdr.Range(func(k, v string) bool {
		if legacyKeys[k] {
			return true
		}
		if inst.Len() > 0 {
			inst.WriteByte(' ')
		}
		fmt.Fprintf(&inst, "%s=\"%s\"", k, strings.ReplaceAll(v, `"`, ""))
		return true
	})

	if _, err := fmt.Fprintf(w, "%s\n<?OFX %s?>\n", declaration, inst.String()); err != nil {
		return fmt.Errorf("xml: write header: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := writeNode(enc, root); err != nil {
		return fmt.Errorf("xml: write body: %w", err)
	}
	if err := enc.Flush(); err != nil {
		return fmt.Errorf("xml: write body: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func writeNode(enc *xml.Encoder, n *wire.Node) error {
	start := xml.StartElement{Name: xml.Name{Local: n.Tag}}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if n.IsLeaf() {
		if err := enc.EncodeToken(xml.CharData(n.Value())); err != nil {
			return err
		}
	}
	for _, c := range n.Children {
		if err := writeNode(enc, c); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}
