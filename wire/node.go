// Package wire holds the dialect-neutral tree that readers produce and
// writers consume.
//
// A Node is either a leaf (Text set, no children) or an aggregate (Text nil,
// zero or more children). Both OFX dialects map onto the same shape, so the
// marshalling engine never sees SGML or XML syntax.
package wire

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyTag         = errors.New("wire: empty tag")
	ErrLeafWithChildren = errors.New("wire: leaf node has children")
	ErrNilNode          = errors.New("wire: nil node")
)

// Node is one element of the wire tree.
type Node struct {
	Tag      string  `json:"tag" yaml:"tag" cbor:"1,keyasint"`
	Text     *string `json:"text,omitempty" yaml:"text,omitempty" cbor:"2,keyasint,omitempty"`
	Children []*Node `json:"children,omitempty" yaml:"children,omitempty" cbor:"3,keyasint,omitempty"`
}

// Leaf returns a scalar node carrying text.
func Leaf(tag, text string) *Node {
	return &Node{Tag: tag, Text: &text}
}

// Aggregate returns a composite node with the given children.
func Aggregate(tag string, children ...*Node) *Node {
	n := &Node{Tag: tag}
	if len(children) > 0 {
		n.Children = append(make([]*Node, 0, len(children)), children...)
	}
	return n
}

// IsLeaf reports whether n carries a scalar value.
func (n *Node) IsLeaf() bool { return n != nil && n.Text != nil }

// Value returns the leaf text, or "" for aggregates.
func (n *Node) Value() string {
	if n == nil || n.Text == nil {
		return ""
	}
	return *n.Text
}

// Append adds children to an aggregate node.
func (n *Node) Append(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// Child returns the first direct child with the given tag.
func (n *Node) Child(tag string) (*Node, bool) {
	if n == nil {
		return nil, false
	}
	for _, c := range n.Children {
		if c != nil && c.Tag == tag {
			return c, true
		}
	}
	return nil, false
}

// Validate checks the leaf/aggregate invariant over the whole subtree.
func (n *Node) Validate() error {
	return n.validate("")
}

func (n *Node) validate(parent string) error {
	if n == nil {
		return fmt.Errorf("%w at %s", ErrNilNode, pathOr(parent))
	}
	if n.Tag == "" {
		return fmt.Errorf("%w at %s", ErrEmptyTag, pathOr(parent))
	}
	path := parent + "/" + n.Tag
	if n.Text != nil && len(n.Children) > 0 {
		return fmt.Errorf("%w at %s", ErrLeafWithChildren, path)
	}
	for _, c := range n.Children {
		if err := c.validate(path); err != nil {
			return err
		}
	}
	return nil
}

func pathOr(p string) string {
	if p == "" {
		return "/"
	}
	return p
}

// String renders an indented outline of the tree; used by the CLI and in
// test failure messages.
func (n *Node) String() string {
	b := &strings.Builder{}
	n.outline(b, 0)
	return b.String()
}

func (n *Node) outline(b *strings.Builder, depth int) {
	if n == nil {
		return
	}
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(n.Tag)
	if n.Text != nil {
		b.WriteString(" = ")
		b.WriteString(*n.Text)
	}
	b.WriteByte('\n')
	for _, c := range n.Children {
		c.outline(b, depth+1)
	}
}
