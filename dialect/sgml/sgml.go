// Package sgml implements the legacy OFX 1.x syntax: a colon-separated
// header block followed by an SGML body whose leaf elements are usually not
// closed.
//
// Importing the package registers the dialect under "sgml".
package sgml

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/reoring/ofxkit/dialect"
	"github.com/reoring/ofxkit/internal/engine"
	"github.com/reoring/ofxkit/wire"
)

func init() { dialect.Register(Dialect{}) }

var (
	ErrMissingHeader = fmt.Errorf("%w: missing OFXHEADER", dialect.ErrMalformedHeader)
	ErrNoBody        = errors.New("sgml: header not followed by a body")
)

// Dialect is the SGML reader/writer.
type Dialect struct{}

var _ dialect.Dialect = Dialect{}

func (Dialect) Name() string { return dialect.SGML }

func (Dialect) Match(peek []byte) bool { return bytes.HasPrefix(peek, []byte(wire.HeaderOFX+":")) }

// DefaultHeader returns the canonical 1.0.2 header.
func (Dialect) DefaultHeader() wire.Header {
	return wire.NewHeader(
		wire.HeaderOFX, "100",
		wire.HeaderData, "OFXSGML",
		wire.HeaderVersion, "102",
		wire.HeaderSecurity, "NONE",
		wire.HeaderEncoding, "USASCII",
		wire.HeaderCharset, "1252",
		wire.HeaderCompression, "NONE",
		wire.HeaderOldFileUID, "NONE",
		wire.HeaderNewFileUID, "NONE",
	)
}

// Read parses the header, decodes the body with the declared character set
// and assembles the element tree.
func (d Dialect) Read(r io.Reader, opts ...dialect.ReadOptions) (wire.Header, *wire.Node, error) {
	o := dialect.Resolve(opts...)
	br := bufio.NewReader(r)
	h, body, err := readHeader(br)
	if err != nil {
		return h, nil, err
	}
	if enc := charsetOf(h); enc != nil {
		body = transform.NewReader(body, enc.NewDecoder())
	}
	root, err := engine.Build(newTokenizer(body), engine.EnforceOptions{
		Repair:   true,
		MaxDepth: o.MaxDepth,
		MaxBytes: o.MaxBytes,
	})
	if err != nil {
		return h, nil, fmt.Errorf("sgml: %w", err)
	}
	return h, root, nil
}

func readHeader(br *bufio.Reader) (wire.Header, io.Reader, error) {
	var h wire.Header
	for lineNo := 1; ; lineNo++ {
		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return h, nil, fmt.Errorf("sgml: read header: %w", err)
		}
		if lineNo == 1 {
			line = strings.TrimPrefix(line, "\uFEFF")
		}
		trimmed := strings.TrimSpace(line)
		if errors.Is(err, io.EOF) && trimmed == "" {
			if h.Len() == 0 {
				return h, nil, ErrMissingHeader
			}
			return h, nil, ErrNoBody
		}
		switch {
		case trimmed == "" && h.Len() == 0:
			// leading blank lines
		case trimmed == "":
			return h, br, nil
		case strings.HasPrefix(trimmed, "<"):
			if h.Len() == 0 {
				return h, nil, ErrMissingHeader
			}
			return h, io.MultiReader(strings.NewReader(line), br), nil
		default:
			k, v, ok := strings.Cut(trimmed, ":")
			if !ok {
				return h, nil, fmt.Errorf("%w: line %d has no ':'", dialect.ErrMalformedHeader, lineNo)
			}
			k = strings.TrimSpace(k)
			if h.Len() == 0 && k != wire.HeaderOFX {
				return h, nil, ErrMissingHeader
			}
			h.Set(k, strings.TrimSpace(v))
		}
		if errors.Is(err, io.EOF) {
			return h, nil, ErrNoBody
		}
	}
}

// charsetOf maps the ENCODING/CHARSET pair onto a single-byte charmap. A nil
// result means the body is read as-is.
func charsetOf(h wire.Header) encoding.Encoding {
	if strings.EqualFold(h.Value(wire.HeaderEncoding), "UTF-8") {
		return nil
	}
	switch strings.ToUpper(h.Value(wire.HeaderCharset)) {
	case "1252", "WINDOWS-1252", "CP1252":
		return charmap.Windows1252
	case "ISO-8859-1", "8859-1", "LATIN1":
		return charmap.ISO8859_1
	case "ISO-8859-15", "8859-15":
		return charmap.ISO8859_15
	default:
		return nil
	}
}
