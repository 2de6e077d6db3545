// Package xml implements the OFX 2.x syntax: an XML declaration, an
// <?OFX ...?> processing instruction carrying the header, and a well-formed
// element body.
//
// Importing the package registers the dialect under "xml".
package xml

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/reoring/ofxkit/dialect"
	"github.com/reoring/ofxkit/internal/engine"
	"github.com/reoring/ofxkit/wire"
)

func init() { dialect.Register(Dialect{}) }

var ErrMissingHeader = fmt.Errorf("%w: missing <?OFX ...?> instruction", dialect.ErrMalformedHeader)

// Dialect is the XML reader/writer.
type Dialect struct{}

var _ dialect.Dialect = Dialect{}

func (Dialect) Name() string { return dialect.XML }

func (Dialect) Match(peek []byte) bool {
	return bytes.HasPrefix(peek, []byte("<?xml")) || bytes.HasPrefix(peek, []byte("<?OFX"))
}

// DefaultHeader returns the canonical 2.2.0 header.
func (Dialect) DefaultHeader() wire.Header {
	return wire.NewHeader(
		wire.HeaderOFX, "200",
		wire.HeaderVersion, "220",
		wire.HeaderSecurity, "NONE",
		wire.HeaderOldFileUID, "NONE",
		wire.HeaderNewFileUID, "NONE",
	)
}

// Read decodes the document. A leading byte order mark is skipped. Elements
// without child elements become leaves holding their trimmed text; every
// element must be closed.
func (Dialect) Read(r io.Reader, opts ...dialect.ReadOptions) (wire.Header, *wire.Node, error) {
	o := dialect.Resolve(opts...)
	dec := xml.NewDecoder(dialect.SkipBOM(r))
	dec.CharsetReader = charsetReader
	src := &tokenSource{dec: dec}
	root, err := engine.Build(src, engine.EnforceOptions{
		EmptyAsLeaf: true,
		MaxDepth:    o.MaxDepth,
		MaxBytes:    o.MaxBytes,
	})
	if src.headerErr != nil {
		return src.header, nil, src.headerErr
	}
	if err != nil {
		return src.header, nil, fmt.Errorf("xml: %w", err)
	}
	if !src.sawHeader {
		return src.header, nil, ErrMissingHeader
	}
	return src.header, root, nil
}

// tokenSource adapts encoding/xml tokens to engine events and collects the
// OFX processing instruction on the way.
type tokenSource struct {
	dec       *xml.Decoder
	header    wire.Header
	sawHeader bool
	headerErr error
}

func (s *tokenSource) Location() int64 { return s.dec.InputOffset() }

func (s *tokenSource) NextToken() (engine.Token, error) {
	for {
		off := s.dec.InputOffset()
		tok, err := s.dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return engine.Token{}, io.EOF
			}
			return engine.Token{}, fmt.Errorf("%w: %v", engine.ErrSyntax, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			return engine.Token{Kind: engine.KindOpen, Name: t.Name.Local, Offset: off}, nil
		case xml.EndElement:
			return engine.Token{Kind: engine.KindClose, Name: t.Name.Local, Offset: off}, nil
		case xml.CharData:
			return engine.Token{Kind: engine.KindText, Text: string(t), Offset: off}, nil
		case xml.ProcInst:
			if t.Target != "OFX" {
				continue
			}
			if err := parseInstruction(&s.header, t.Inst); err != nil {
				s.headerErr = err
				return engine.Token{}, err
			}
			s.sawHeader = true
		}
	}
}

// parseInstruction reads KEY="VALUE" pairs.
func parseInstruction(h *wire.Header, inst []byte) error {
	rest := strings.TrimSpace(string(inst))
	for rest != "" {
		k, after, ok := strings.Cut(rest, "=")
		if !ok {
			return fmt.Errorf("%w: %q is not KEY=\"VALUE\"", dialect.ErrMalformedHeader, rest)
		}
		after = strings.TrimSpace(after)
		if after == "" || (after[0] != '"' && after[0] != '\'') {
			return fmt.Errorf("%w: unquoted value for %s", dialect.ErrMalformedHeader, strings.TrimSpace(k))
		}
		q := after[0]
		end := strings.IndexByte(after[1:], q)
		if end < 0 {
			return fmt.Errorf("%w: unterminated value for %s", dialect.ErrMalformedHeader, strings.TrimSpace(k))
		}
		h.Set(strings.TrimSpace(k), after[1:end+1])
		rest = strings.TrimSpace(after[end+2:])
	}
	return nil
}

func charsetReader(label string, input io.Reader) (io.Reader, error) {
	switch strings.ToUpper(label) {
	case "WINDOWS-1252", "CP1252":
		return charmap.Windows1252.NewDecoder().Reader(input), nil
	case "ISO-8859-1", "LATIN1":
		return charmap.ISO8859_1.NewDecoder().Reader(input), nil
	case "US-ASCII", "ASCII":
		return input, nil
	}
	return nil, fmt.Errorf("xml: unsupported charset %q", label)
}
