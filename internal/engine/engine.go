package engine

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/reoring/ofxkit/wire"
)

// Kind represents tag-event kinds emitted by a dialect tokenizer.
type Kind int

const (
	KindOpen Kind = iota
	KindText
	KindClose
)

func (k Kind) String() string {
	switch k {
	case KindOpen:
		return "open"
	case KindText:
		return "text"
	case KindClose:
		return "close"
	default:
		return "unknown"
	}
}

// Token is one tag event with its approximate input offset.
type Token struct {
	Kind   Kind
	Name   string // tag name for open/close
	Text   string // already unescaped character data
	Offset int64
}

// TokenSource is the minimal interface the tree builder needs. NextToken
// returns io.EOF once the input is exhausted.
type TokenSource interface {
	NextToken() (Token, error)
	Location() int64
}

var (
	ErrSyntax    = errors.New("syntax error")
	ErrMaxDepth  = errors.New("max depth exceeded")
	ErrMaxBytes  = errors.New("max bytes exceeded")
	ErrNoContent = errors.New("no root element")
)

type frame struct {
	node *wire.Node
	text strings.Builder
}

func (f *frame) pending() string { return strings.TrimSpace(f.text.String()) }

// builder assembles tag events into a wire tree.
type builder struct {
	opt   EnforceOptions
	stack []*frame
	root  *wire.Node
}

// Build consumes src to completion and returns the single root element.
func Build(src TokenSource, opt EnforceOptions) (*wire.Node, error) {
	b := &builder{opt: opt}
	for {
		tok, err := src.NextToken()
		if errors.Is(err, io.EOF) {
			return b.finish(src.Location())
		}
		if err != nil {
			return nil, err
		}
		if err := b.checkBytes(src.Location()); err != nil {
			return nil, err
		}
		switch tok.Kind {
		case KindOpen:
			err = b.open(tok)
		case KindText:
			err = b.text(tok)
		case KindClose:
			err = b.close(tok)
		default:
			err = b.syntax(tok.Offset, "unexpected token kind %d", tok.Kind)
		}
		if err != nil {
			return nil, err
		}
	}
}

func (b *builder) open(tok Token) error {
	if tok.Name == "" {
		return b.syntax(tok.Offset, "empty tag name")
	}
	if b.root != nil && len(b.stack) == 0 {
		return b.syntax(tok.Offset, "content after root element </%s>", b.root.Tag)
	}
	if top := b.top(); top != nil {
		if txt := top.pending(); txt != "" {
			if !b.opt.Repair {
				return b.syntax(tok.Offset, "mixed content in <%s>", top.node.Tag)
			}
			// <TAG>text<NEXT>: the text closes TAG as a leaf
			b.pop()
			top.node.Text = &txt
			b.attach(top.node)
		} else {
			top.text.Reset()
		}
	}
	if err := b.checkDepth(len(b.stack)+1, b.path()+"/"+tok.Name); err != nil {
		return err
	}
	b.stack = append(b.stack, &frame{node: &wire.Node{Tag: tok.Name}})
	return nil
}

func (b *builder) text(tok Token) error {
	top := b.top()
	if top == nil {
		if strings.TrimSpace(tok.Text) == "" {
			return nil
		}
		return b.syntax(tok.Offset, "character data outside the root element")
	}
	if len(top.node.Children) > 0 && strings.TrimSpace(tok.Text) != "" {
		return b.syntax(tok.Offset, "mixed content in <%s>", top.node.Tag)
	}
	top.text.WriteString(tok.Text)
	return nil
}

func (b *builder) close(tok Token) error {
	at := -1
	for i := len(b.stack) - 1; i >= 0; i-- {
		if b.stack[i].node.Tag == tok.Name {
			at = i
			break
		}
	}
	if at < 0 {
		return b.syntax(tok.Offset, "unmatched </%s>", tok.Name)
	}
	if at != len(b.stack)-1 && !b.opt.Repair {
		return b.syntax(tok.Offset, "</%s> closes <%s>", tok.Name, b.top().node.Tag)
	}
	for len(b.stack)-1 > at {
		b.repair(b.pop())
	}
	f := b.pop()
	if txt := f.pending(); txt != "" {
		f.node.Text = &txt
	} else if len(f.node.Children) == 0 && b.opt.EmptyAsLeaf {
		empty := ""
		f.node.Text = &empty
	}
	b.attach(f.node)
	return nil
}

// repair finalizes a frame that was never explicitly closed. A frame
// holding text is a leaf. Otherwise it was an empty leaf and whatever it
// collected belongs to its parent as following siblings.
func (b *builder) repair(f *frame) {
	txt := f.pending()
	kids := f.node.Children
	f.node.Children = nil
	f.node.Text = &txt
	b.attach(f.node)
	for _, k := range kids {
		b.attach(k)
	}
}

func (b *builder) finish(offset int64) (*wire.Node, error) {
	if len(b.stack) > 0 {
		// the root must be closed explicitly even in repair mode
		return nil, b.syntax(offset, "unexpected end of input inside <%s>: %v", b.stack[0].node.Tag, io.ErrUnexpectedEOF)
	}
	if b.root == nil {
		return nil, ErrNoContent
	}
	return b.root, nil
}

func (b *builder) top() *frame {
	if len(b.stack) == 0 {
		return nil
	}
	return b.stack[len(b.stack)-1]
}

func (b *builder) pop() *frame {
	f := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	return f
}

func (b *builder) attach(n *wire.Node) {
	if p := b.top(); p != nil {
		p.node.Children = append(p.node.Children, n)
		p.text.Reset()
		return
	}
	b.root = n
}

func (b *builder) path() string {
	var sb strings.Builder
	for _, f := range b.stack {
		sb.WriteByte('/')
		sb.WriteString(f.node.Tag)
	}
	return sb.String()
}

func (b *builder) syntax(offset int64, format string, args ...any) error {
	return fmt.Errorf("%w at offset %d: %s", ErrSyntax, offset, fmt.Sprintf(format, args...))
}
