package engine

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/reoring/ofxkit/wire"
)

type sliceSource struct {
	toks []Token
	i    int
}

func (s *sliceSource) NextToken() (Token, error) {
	if s.i >= len(s.toks) {
		return Token{}, io.EOF
	}
	t := s.toks[s.i]
	t.Offset = int64(s.i)
	s.i++
	return t, nil
}

func (s *sliceSource) Location() int64 { return int64(s.i) }

func open(n string) Token { return Token{Kind: KindOpen, Name: n} }
func text(s string) Token { return Token{Kind: KindText, Text: s} }
func closed(n string) Token { return Token{Kind: KindClose, Name: n} }

func build(t *testing.T, opt EnforceOptions, toks ...Token) (*wire.Node, error) {
	t.Helper()
	return Build(&sliceSource{toks: toks}, opt)
}

func TestBuild_ImplicitLeafClose(t *testing.T) {
	// <STATUS><CODE>0<SEVERITY>INFO</STATUS>
	n, err := build(t, EnforceOptions{Repair: true},
		open("STATUS"), open("CODE"), text("0\n"), open("SEVERITY"), text("INFO\n"), closed("STATUS"))
	if err != nil {
		t.Fatalf("build err: %v", err)
	}
	want := wire.Aggregate("STATUS", wire.Leaf("CODE", "0"), wire.Leaf("SEVERITY", "INFO"))
	if n.String() != want.String() {
		t.Fatalf("unexpected tree:\n%s", n)
	}
}

func TestBuild_SiblingOpensRule(t *testing.T) {
	// <A><B><C>x</A>: B never closed and holds no text, so it is an empty
	// leaf and C becomes its following sibling
	n, err := build(t, EnforceOptions{Repair: true},
		open("A"), open("B"), open("C"), text("x"), closed("A"))
	if err != nil {
		t.Fatalf("build err: %v", err)
	}
	if len(n.Children) != 2 {
		t.Fatalf("unexpected tree:\n%s", n)
	}
	b, c := n.Children[0], n.Children[1]
	if !b.IsLeaf() || b.Value() != "" || b.Tag != "B" {
		t.Fatalf("B should be an empty leaf:\n%s", n)
	}
	if c.Tag != "C" || c.Value() != "x" {
		t.Fatalf("C should follow B:\n%s", n)
	}
	if err := n.Validate(); err != nil {
		t.Fatalf("invalid tree: %v", err)
	}
}

func TestBuild_ExplicitCloseKeepsAggregate(t *testing.T) {
	n, err := build(t, EnforceOptions{Repair: true},
		open("OFX"), open("LIST"), closed("LIST"), open("NAME"), text("x"), closed("NAME"), closed("OFX"))
	if err != nil {
		t.Fatalf("build err: %v", err)
	}
	list, _ := n.Child("LIST")
	if list.IsLeaf() || len(list.Children) != 0 {
		t.Fatalf("explicitly closed empty element should be an empty aggregate:\n%s", n)
	}
	name, _ := n.Child("NAME")
	if name.Value() != "x" {
		t.Fatalf("unexpected leaf %v", name)
	}
}

func TestBuild_StrictNesting(t *testing.T) {
	_, err := build(t, EnforceOptions{},
		open("A"), open("B"), text("x"), closed("A"))
	if !errors.Is(err, ErrSyntax) {
		t.Fatalf("expected syntax error, got %v", err)
	}
	_, err = build(t, EnforceOptions{},
		open("A"), open("B"), text("x"), closed("B"), text("y"), closed("A"))
	if !errors.Is(err, ErrSyntax) || !strings.Contains(err.Error(), "mixed content") {
		t.Fatalf("expected mixed content error, got %v", err)
	}
}

func TestBuild_EmptyAsLeaf(t *testing.T) {
	n, err := build(t, EnforceOptions{EmptyAsLeaf: true},
		open("A"), text("\n  "), open("MEMO"), closed("MEMO"), text("\n"), closed("A"))
	if err != nil {
		t.Fatalf("build err: %v", err)
	}
	memo, _ := n.Child("MEMO")
	if !memo.IsLeaf() || memo.Value() != "" || n.IsLeaf() {
		t.Fatalf("unexpected tree:\n%s", n)
	}
}

func TestBuild_Errors(t *testing.T) {
	cases := map[string][]Token{
		"unclosed root":  {open("A"), open("B"), text("x")},
		"unmatched":      {open("A"), closed("B")},
		"trailing":       {open("A"), closed("A"), open("B"), closed("B")},
		"text at top":    {text("stray"), open("A"), closed("A")},
		"empty tag name": {open("")},
	}
	for name, toks := range cases {
		if _, err := build(t, EnforceOptions{Repair: true}, toks...); !errors.Is(err, ErrSyntax) {
			t.Fatalf("%s: expected syntax error, got %v", name, err)
		}
	}
	if _, err := build(t, EnforceOptions{Repair: true}, text("  \n")); !errors.Is(err, ErrNoContent) {
		t.Fatalf("expected no content, got %v", err)
	}
}

func TestBuild_MaxDepth(t *testing.T) {
	var seen []SimpleIssue
	_, err := build(t, EnforceOptions{MaxDepth: 2, IssueSink: func(si SimpleIssue) { seen = append(seen, si) }},
		open("A"), open("B"), open("C"), closed("C"), closed("B"), closed("A"))
	if !errors.Is(err, ErrMaxDepth) {
		t.Fatalf("expected max depth, got %v", err)
	}
	var ie IssueError
	if !errors.As(err, &ie) || ie.Path != "/A/B/C" {
		t.Fatalf("unexpected issue %+v", ie)
	}
	if len(seen) != 1 || seen[0].Code != "max_depth" {
		t.Fatalf("sink not called: %+v", seen)
	}
}

func TestBuild_MaxBytes(t *testing.T) {
	_, err := build(t, EnforceOptions{MaxBytes: 2},
		open("A"), open("B"), text("x"), closed("B"), closed("A"))
	if !errors.Is(err, ErrMaxBytes) {
		t.Fatalf("expected max bytes, got %v", err)
	}
}
