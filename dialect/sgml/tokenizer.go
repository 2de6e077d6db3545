package sgml

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/reoring/ofxkit/internal/engine"
)

var unescaper = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&amp;", "&",
	"&nbsp;", " ",
	"&quot;", `"`,
	"&apos;", "'",
)

// tokenizer turns an SGML body into tag events. It does not track nesting;
// engine.Build does.
type tokenizer struct {
	r   *bufio.Reader
	off int64
}

func newTokenizer(r io.Reader) *tokenizer { return &tokenizer{r: bufio.NewReader(r)} }

func (t *tokenizer) Location() int64 { return t.off }

func (t *tokenizer) NextToken() (engine.Token, error) {
	for {
		start := t.off
		c, err := t.r.ReadByte()
		if err != nil {
			return engine.Token{}, err
		}
		t.off++
		if c != '<' {
			if err := t.r.UnreadByte(); err != nil {
				return engine.Token{}, err
			}
			t.off--
			text, err := t.until('<', false)
			if err != nil && !errors.Is(err, io.EOF) {
				return engine.Token{}, err
			}
			return engine.Token{Kind: engine.KindText, Text: unescaper.Replace(text), Offset: start}, nil
		}
		raw, err := t.until('>', true)
		if err != nil {
			return engine.Token{}, fmt.Errorf("%w: unterminated tag at offset %d", engine.ErrSyntax, start)
		}
		switch {
		case strings.HasPrefix(raw, "!--"):
			if err := t.skipComment(raw); err != nil {
				return engine.Token{}, fmt.Errorf("%w: unterminated comment at offset %d", engine.ErrSyntax, start)
			}
			continue
		case strings.HasPrefix(raw, "!"), strings.HasPrefix(raw, "?"):
			continue
		case strings.HasPrefix(raw, "/"):
			return engine.Token{Kind: engine.KindClose, Name: strings.TrimSpace(raw[1:]), Offset: start}, nil
		default:
			return engine.Token{Kind: engine.KindOpen, Name: strings.TrimSpace(raw), Offset: start}, nil
		}
	}
}

// until reads up to delim. With consume set the delimiter is dropped,
// otherwise it stays in the buffer for the next call.
func (t *tokenizer) until(delim byte, consume bool) (string, error) {
	s, err := t.r.ReadString(delim)
	t.off += int64(len(s))
	if err != nil {
		return s, err
	}
	if !consume {
		if err := t.r.UnreadByte(); err != nil {
			return "", err
		}
		t.off--
	}
	return s[:len(s)-1], nil
}

func (t *tokenizer) skipComment(raw string) error {
	for !strings.HasSuffix(raw, "--") || len(raw) < 5 {
		more, err := t.until('>', true)
		if err != nil {
			return err
		}
		raw += ">" + more
	}
	return nil
}
