// Package envelope dispatches the children of the <OFX> root to message-set
// types through a closed registry, and ties the dialects to the marshalling
// engine.
//
// Decode and Encode work on wire trees; Read and Write add dialect
// detection, header handling and I/O on top.
package envelope

import (
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/reoring/ofxkit"
	"github.com/reoring/ofxkit/dialect"
	_ "github.com/reoring/ofxkit/dialect/sgml"
	_ "github.com/reoring/ofxkit/dialect/xml"
	"github.com/reoring/ofxkit/wire"
)

// RootTag is the tag of every OFX document root.
const RootTag = "OFX"

const rootPath = "/" + RootTag

// Envelope is a whole OFX document: header plus message sets in document
// order.
type Envelope struct {
	Header      wire.Header
	MessageSets []MessageSet
	// Warnings collects the non-fatal issues raised while decoding.
	Warnings ofxkit.Issues
	// Dialect is the name of the dialect the envelope was read from.
	Dialect string
}

// Add appends message sets and returns e.
func (e *Envelope) Add(sets ...MessageSet) *Envelope {
	e.MessageSets = append(e.MessageSets, sets...)
	return e
}

// Find returns the first message set of type t.
func (e *Envelope) Find(t Type) (MessageSet, bool) {
	for _, ms := range e.MessageSets {
		if ms.MessageSetType() == t {
			return ms, true
		}
	}
	return nil, false
}

// Transactions flattens the transactions of every message set in order.
func (e *Envelope) Transactions() []Transaction {
	var out []Transaction
	for _, ms := range e.MessageSets {
		out = append(out, ms.Transactions()...)
	}
	return out
}

// NewTransactionUID returns a fresh random TRNUID.
func NewTransactionUID() string { return uuid.NewString() }

// AssignTransactionUIDs gives every request transaction without a UID a
// fresh one and returns how many were assigned.
func (e *Envelope) AssignTransactionUIDs() int {
	n := 0
	for _, t := range e.Transactions() {
		if rq := t.Request(); rq != nil && rq.UID == "" {
			rq.UID = NewTransactionUID()
			n++
		}
	}
	return n
}

// StampFileUID sets NEWFILEUID to a fresh UUID and returns it.
func (e *Envelope) StampFileUID() string {
	id := uuid.NewString()
	e.Header.Set(wire.HeaderNewFileUID, id)
	return id
}

func lastOptions(opts []ofxkit.Options) ofxkit.Options {
	if len(opts) == 0 {
		return ofxkit.Options{}
	}
	return opts[len(opts)-1]
}

func loggerOf(o ofxkit.Options) *zerolog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	nop := zerolog.Nop()
	return &nop
}

// Decode resolves each child of root through reg. Children whose tag is not
// registered are reported as unknown_message_set regardless of mode.
func Decode(root *wire.Node, reg *Registry, opts ...ofxkit.Options) (*Envelope, error) {
	o := lastOptions(opts)
	log := loggerOf(o)
	if root == nil {
		return nil, ofxkit.Issues{ofxkit.NewIssue(ofxkit.CodeParseError, "/", wire.ErrNilNode)}
	}
	if err := root.Validate(); err != nil {
		return nil, ofxkit.Issues{ofxkit.NewIssue(ofxkit.CodeNodeInvariant, "/"+root.Tag, err)}
	}
	if root.Tag != RootTag {
		it := ofxkit.NewIssue(ofxkit.CodeUnknownTag, "/"+root.Tag, nil)
		it.Hint = RootTag
		return nil, ofxkit.Issues{it}
	}
	if root.IsLeaf() && root.Value() != "" {
		return nil, ofxkit.Issues{ofxkit.NewIssue(ofxkit.CodeKindMismatch, rootPath, nil)}
	}
	if reg == nil {
		return nil, nilRegistry()
	}

	env := &Envelope{}
	var fatal ofxkit.Issues
	sub := o
	sub.BasePath = rootPath
	for _, child := range root.Children {
		entry, ok := reg.Lookup(child.Tag)
		if !ok {
			it := ofxkit.NewIssue(ofxkit.CodeUnknownMessageSet, rootPath+"/"+child.Tag, nil)
			it.Hint = "registered: " + fmt.Sprint(reg.Tags())
			fatal = append(fatal, it)
			if o.FailFast {
				break
			}
			continue
		}
		ms := entry.New()
		warns, err := ofxkit.UnmarshalInto(child, ms, sub)
		env.Warnings = append(env.Warnings, warns...)
		if err != nil {
			iss, _ := ofxkit.AsIssues(err)
			fatal = append(fatal, iss...)
			if o.FailFast {
				break
			}
			continue
		}
		log.Debug().Str("tag", child.Tag).Stringer("type", entry.Type).Int("transactions", len(ms.Transactions())).Msg("message set decoded")
		env.MessageSets = append(env.MessageSets, ms)
	}
	if len(fatal) > 0 {
		return nil, fatal
	}
	return env, nil
}

// Encode marshals the message sets of env under an <OFX> root in slice
// order. Every set must be registered in reg.
func Encode(env *Envelope, reg *Registry, opts ...ofxkit.Options) (*wire.Node, error) {
	o := lastOptions(opts)
	if env == nil {
		return nil, ofxkit.Issues{ofxkit.NewIssue(ofxkit.CodeInvalidType, rootPath, errors.New("nil envelope"))}
	}
	if reg == nil {
		return nil, nilRegistry()
	}
	sub := o
	sub.BasePath = rootPath
	root := wire.Aggregate(RootTag)
	var fatal ofxkit.Issues
	for _, ms := range env.MessageSets {
		tag, ok := reg.TagOf(ms)
		if !ok {
			it := ofxkit.NewIssue(ofxkit.CodeUnregisteredType, rootPath, nil)
			it.Hint = fmt.Sprintf("%T", ms)
			fatal = append(fatal, it)
			if o.FailFast {
				break
			}
			continue
		}
		n, err := ofxkit.MarshalAs(ms, tag, sub)
		if err != nil {
			iss, _ := ofxkit.AsIssues(err)
			fatal = append(fatal, iss...)
			if o.FailFast {
				break
			}
			continue
		}
		root.Append(n)
	}
	if len(fatal) > 0 {
		return nil, fatal
	}
	return root, nil
}

// Read detects the dialect of r, parses it and decodes the envelope.
func Read(r io.Reader, reg *Registry, opts ...ofxkit.Options) (*Envelope, error) {
	o := lastOptions(opts)
	d, rr, err := dialect.Sniff(r)
	if err != nil {
		return nil, readIssue(err)
	}
	depth := o.MaxDepth
	if depth <= 0 {
		depth = ofxkit.DefaultMaxDepth
	}
	h, root, err := d.Read(rr, dialect.ReadOptions{MaxDepth: depth})
	if err != nil {
		return nil, readIssue(err)
	}
	env, err := Decode(root, reg, opts...)
	if err != nil {
		return nil, err
	}
	env.Header = h
	env.Dialect = d.Name()
	return env, nil
}

func nilRegistry() ofxkit.Issues {
	return ofxkit.Issues{ofxkit.NewIssue(ofxkit.CodeInvalidType, rootPath, errors.New("nil registry"))}
}

func readIssue(err error) ofxkit.Issues {
	code := ofxkit.CodeParseError
	switch {
	case errors.Is(err, dialect.ErrMalformedHeader), errors.Is(err, dialect.ErrUndetectable):
		code = ofxkit.CodeMalformedHeader
	case errors.Is(err, dialect.ErrMaxDepth):
		code = ofxkit.CodeMaxDepth
	}
	return ofxkit.Issues{ofxkit.NewIssue(code, "/", err)}
}

// Write encodes env and writes it in dialect d. The dialect's default
// header sits under env.Header; a VERSION that belongs to the other dialect
// is replaced by d's default.
func Write(w io.Writer, env *Envelope, d dialect.Dialect, reg *Registry, opts ...ofxkit.Options) error {
	root, err := Encode(env, reg, opts...)
	if err != nil {
		return err
	}
	def := d.DefaultHeader()
	h := wire.Merge(def, env.Header)
	if got, err := dialect.ForVersionString(h.Value(wire.HeaderVersion)); err != nil || got.Name() != d.Name() {
		h.Set(wire.HeaderVersion, def.Value(wire.HeaderVersion))
	}
	return d.Write(w, h, root)
}
