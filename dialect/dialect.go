// Package dialect abstracts the two OFX surface syntaxes behind one
// interface.
//
// Concrete dialects live in sub-packages and register themselves on import,
// the way database/sql drivers do:
//
//	import (
//	    "github.com/reoring/ofxkit/dialect"
//	    _ "github.com/reoring/ofxkit/dialect/sgml"
//	    _ "github.com/reoring/ofxkit/dialect/xml"
//	)
//
//	d, r, err := dialect.Sniff(f)
//	hdr, root, err := d.Read(r)
package dialect

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/reoring/ofxkit/internal/engine"
	"github.com/reoring/ofxkit/wire"
)

// Names of the built-in dialects.
const (
	SGML = "sgml"
	XML  = "xml"
)

var (
	ErrUnknownDialect  = errors.New("dialect: unknown dialect")
	ErrUndetectable    = errors.New("dialect: cannot detect dialect")
	ErrMalformedHeader = errors.New("dialect: malformed header")
	// ErrSyntax and ErrMaxDepth classify body errors of every dialect.
	ErrSyntax   = engine.ErrSyntax
	ErrMaxDepth = engine.ErrMaxDepth
)

// Dialect reads and writes one surface syntax.
type Dialect interface {
	Name() string
	// Match reports whether peek looks like the start of a document in
	// this dialect.
	Match(peek []byte) bool
	Read(r io.Reader, opts ...ReadOptions) (wire.Header, *wire.Node, error)
	Write(w io.Writer, h wire.Header, root *wire.Node) error
	// DefaultHeader returns the header a writer emits when the caller
	// supplies none.
	DefaultHeader() wire.Header
}

// ReadOptions bounds reader resource use. Zero values mean no limit.
type ReadOptions struct {
	MaxDepth int
	MaxBytes int64
}

// Resolve merges opts, last wins.
func Resolve(opts ...ReadOptions) ReadOptions {
	var o ReadOptions
	if len(opts) > 0 {
		o = opts[len(opts)-1]
	}
	return o
}

var (
	mu       sync.RWMutex
	registry = map[string]Dialect{}
)

// Register makes d available under d.Name(). Registering the same name
// twice replaces the earlier dialect; a nil dialect is ignored.
func Register(d Dialect) {
	if d == nil {
		return
	}
	mu.Lock()
	registry[d.Name()] = d
	mu.Unlock()
}

// Lookup returns the dialect registered under name.
func Lookup(name string) (Dialect, error) {
	mu.RLock()
	d, ok := registry[name]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownDialect, name)
	}
	return d, nil
}

// Names returns the registered dialect names in sorted order.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(registry))
	for n := range registry {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Detect picks the dialect whose Match accepts peek. A leading UTF-8 byte
// order mark and whitespace are skipped first.
func Detect(peek []byte) (Dialect, error) {
	peek = bytes.TrimLeft(bytes.TrimPrefix(peek, bom), " \t\r\n")
	for _, n := range Names() {
		d, _ := Lookup(n)
		if d.Match(peek) {
			return d, nil
		}
	}
	return nil, ErrUndetectable
}

var bom = []byte{0xEF, 0xBB, 0xBF}

// SkipBOM returns a reader over r without a leading UTF-8 byte order mark.
func SkipBOM(r io.Reader) io.Reader {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	if peek, _ := br.Peek(len(bom)); bytes.Equal(peek, bom) {
		_, _ = br.Discard(len(bom))
	}
	return br
}

const sniffLen = 512

// Sniff detects the dialect of r without consuming it. The returned reader
// yields the full input, including the bytes inspected.
func Sniff(r io.Reader) (Dialect, io.Reader, error) {
	br := bufio.NewReaderSize(r, sniffLen)
	peek, err := br.Peek(sniffLen)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, br, fmt.Errorf("dialect: sniff: %w", err)
	}
	d, err := Detect(peek)
	return d, br, err
}
