package sgml

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"

	"github.com/reoring/ofxkit/wire"
)

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// Write emits h and root. Header keys follow DefaultHeader order with any
// extra keys appended; OFXHEADER and DATA always identify this dialect.
// Leaves are written unclosed, aggregates get explicit end tags.
func (d Dialect) Write(w io.Writer, h wire.Header, root *wire.Node) error {
	if err := root.Validate(); err != nil {
		return fmt.Errorf("sgml: %w", err)
	}
	hdr := wire.Merge(d.DefaultHeader(), h)
	hdr.Set(wire.HeaderOFX, "100")
	hdr.Set(wire.HeaderData, "OFXSGML")

	bw := bufio.NewWriter(w)
	hdr.Range(func(k, v string) bool {
		fmt.Fprintf(bw, "%s:%s\n", k, v)
		return true
	})
	bw.WriteByte('\n')
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("sgml: write header: %w", err)
	}

	var body io.Writer = w
	var tw *transform.Writer
	if enc := charsetOf(hdr); enc != nil {
		tw = transform.NewWriter(w, encoding.ReplaceUnsupported(enc.NewEncoder()))
		body = tw
	}
	bw = bufio.NewWriter(body)
	writeNode(bw, root)
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("sgml: write body: %w", err)
	}
	if tw != nil {
		if err := tw.Close(); err != nil {
			return fmt.Errorf("sgml: write body: %w", err)
		}
	}
	return nil
}

func writeNode(bw *bufio.Writer, n *wire.Node) {
	bw.WriteString("<" + n.Tag + ">")
	if n.IsLeaf() {
		bw.WriteString(escaper.Replace(n.Value()))
		bw.WriteByte('\n')
		return
	}
	bw.WriteByte('\n')
	for _, c := range n.Children {
		writeNode(bw, c)
	}
	bw.WriteString("</" + n.Tag + ">\n")
}
