package dsl

import (
	"fmt"

	"github.com/reoring/ofxkit"
	"github.com/reoring/ofxkit/codec"
)

// Builder collects the fields of one aggregate type T.
type Builder[T any] struct {
	tag    string
	fields []*Field[T]
}

// Aggregate starts a declaration for a type that carries its own wire tag.
func Aggregate[T any](tag string, fields ...*Field[T]) *Builder[T] {
	return &Builder[T]{tag: tag, fields: fields}
}

// Embedded starts a declaration for a tagless type, one that is only ever
// embedded as a base or marshalled under a name chosen by its parent.
func Embedded[T any](fields ...*Field[T]) *Builder[T] {
	return &Builder[T]{fields: fields}
}

// Field is one declared member of T, or an embedded base.
type Field[T any] struct {
	m    ofxkit.Member
	base *ofxkit.Base
}

// Required marks the member as required and returns the field.
func (f *Field[T]) Required() *Field[T] {
	f.m.Required = true
	return f
}

// Named overrides the wire name taken from a nested type's tag.
func (f *Field[T]) Named(name string) *Field[T] {
	f.m.Name = name
	return f
}

// Build assembles the declaration.
func (b *Builder[T]) Build() (*ofxkit.Declaration, error) {
	d := &ofxkit.Declaration{Tag: b.tag}
	for i, f := range b.fields {
		if f == nil {
			return nil, fmt.Errorf("dsl: field %d of %s is nil", i, b.describe())
		}
		if f.base != nil {
			d.Bases = append(d.Bases, *f.base)
			continue
		}
		d.Members = append(d.Members, f.m)
	}
	return d, nil
}

// MustBuild is like Build but panics on error.
func (b *Builder[T]) MustBuild() *ofxkit.Declaration {
	d, err := b.Build()
	if err != nil {
		panic(err)
	}
	return d
}

func (b *Builder[T]) describe() string {
	var zero T
	if b.tag != "" {
		return fmt.Sprintf("%s (%T)", b.tag, zero)
	}
	return fmt.Sprintf("%T", zero)
}

// Element declares a scalar member held in a value field. Values the codec
// reports as zero are treated as absent when marshalling.
func Element[T, V any](name string, order int, key codec.Key, f func(*T) *V) *Field[T] {
	return &Field[T]{m: ofxkit.Member{
		Name: name, Order: order, Kind: ofxkit.KindElement, Cardinality: ofxkit.One,
		Codec: key, Access: valueAccess[T, V]{f: f},
	}}
}

// Optional declares a scalar member held in a pointer field; nil is absent.
func Optional[T, V any](name string, order int, key codec.Key, f func(*T) **V) *Field[T] {
	return &Field[T]{m: ofxkit.Member{
		Name: name, Order: order, Kind: ofxkit.KindElement, Cardinality: ofxkit.One,
		Codec: key, Pointer: true, Access: pointerAccess[T, V]{f: f},
	}}
}

// Elements declares a repeated scalar member.
func Elements[T, V any](name string, order int, key codec.Key, f func(*T) *[]V) *Field[T] {
	return &Field[T]{m: ofxkit.Member{
		Name: name, Order: order, Kind: ofxkit.KindElement, Cardinality: ofxkit.List,
		Codec: key, Access: sliceAccess[T, V]{f: f},
	}}
}

// Child declares a nested aggregate held by value. Its wire name is N's tag
// unless overridden with Named. An optional value child that marshals to no
// children is omitted.
func Child[T any, N ofxkit.Describer](order int, f func(*T) *N) *Field[T] {
	var zero N
	return &Field[T]{m: ofxkit.Member{
		Order: order, Kind: ofxkit.KindAggregate, Cardinality: ofxkit.One,
		Nested: zero, New: newOf[N], OmitEmpty: true, Access: childAccess[T, N]{f: f},
	}}
}

// NamedChild is Child under an explicit wire name, for tagless nested types
// or types that appear under several names (BANKACCTFROM, BANKACCTTO).
func NamedChild[T any, N ofxkit.Describer](name string, order int, f func(*T) *N) *Field[T] {
	return Child(order, f).Named(name)
}

// OptionalChild declares a nested aggregate held in a pointer field.
func OptionalChild[T any, N ofxkit.Describer](order int, f func(*T) **N) *Field[T] {
	var zero N
	return &Field[T]{m: ofxkit.Member{
		Order: order, Kind: ofxkit.KindAggregate, Cardinality: ofxkit.One,
		Nested: zero, New: newOf[N], Access: optionalChildAccess[T, N]{f: f},
	}}
}

// Children declares a repeated nested aggregate.
func Children[T any, N ofxkit.Describer](order int, f func(*T) *[]N) *Field[T] {
	var zero N
	return &Field[T]{m: ofxkit.Member{
		Order: order, Kind: ofxkit.KindAggregate, Cardinality: ofxkit.List,
		Nested: zero, New: newOf[N], Access: childrenAccess[T, N]{f: f},
	}}
}

// Variants declares a repeated member whose items are resolved by tag to one
// of the given concrete types, all implementing I.
func Variants[T, I any](order int, f func(*T) *[]I, choices ...ofxkit.Choice) *Field[T] {
	return &Field[T]{m: ofxkit.Member{
		Order: order, Kind: ofxkit.KindAggregate, Cardinality: ofxkit.List,
		Choices: choices, Access: variantsAccess[T, I]{f: f},
	}}
}

// Variant registers N as a choice of a variant member whose items are I. N's
// declared tag selects it on input; its dynamic type selects it on output.
// It panics when neither N nor *N implements I.
func Variant[I any, N ofxkit.Describer]() ofxkit.Choice {
	var zero N
	if _, ok := any(zero).(I); !ok {
		if _, ok := any(new(N)).(I); !ok {
			panic(fmt.Sprintf("dsl: %T does not implement the variant item type", zero))
		}
	}
	return ofxkit.Choice{
		Nested: zero,
		New:    newOf[N],
		Match: func(item any) (any, bool) {
			switch v := item.(type) {
			case N:
				c := v
				return &c, true
			case *N:
				return v, v != nil
			}
			return nil, false
		},
	}
}

// Embed flattens B's members into T ahead of T's own members. B is usually
// declared with Embedded.
func Embed[T any, B ofxkit.Describer](f func(*T) *B) *Field[T] {
	var zero B
	return &Field[T]{base: &ofxkit.Base{
		Decl:    zero,
		Project: func(holder any) any { return f(holder.(*T)) },
	}}
}

func newOf[N any]() any { return new(N) }
