package ofxkit

import (
	"github.com/reoring/ofxkit/codec"
)

// Describer is implemented by every type that takes part in the wire format.
// Describe must be callable on the zero value and return a fresh declaration;
// the schema cache calls it once per type.
type Describer interface {
	Describe() *Declaration
}

// Kind distinguishes scalar members from nested aggregates.
type Kind int

const (
	KindElement Kind = iota
	KindAggregate
)

func (k Kind) String() string {
	if k == KindAggregate {
		return "aggregate"
	}
	return "element"
}

// Cardinality is ONE or LIST.
type Cardinality int

const (
	One Cardinality = iota
	List
)

func (c Cardinality) String() string {
	if c == List {
		return "list"
	}
	return "one"
}

// Accessor reads and writes one member on a holder. Holders are always
// pointers to the declaring type.
//
// For elements Get yields scalar values and Set receives a decoded value. For
// aggregates Get yields pointers to the nested values and Set receives a
// pointer produced by Member.New (or Choice.New). List members append on Set.
type Accessor interface {
	Get(holder any) []any
	Set(holder any, v any) error
}

// Choice is one concrete type a variant member may hold, resolved by tag.
type Choice struct {
	Tag    string
	Nested Describer
	New    func() any
	// Match returns a pointer to item's concrete value when item is of this
	// choice's type.
	Match func(item any) (any, bool)
}

// Member is a MemberDescriptor: one declared field of a schema type.
type Member struct {
	Name        string
	Order       int
	Required    bool
	Cardinality Cardinality
	Kind        Kind
	// Codec names the value codec for elements.
	Codec codec.Key
	// Nested and New describe aggregate members with a single concrete type.
	Nested Describer
	New    func() any
	// Choices is set for variant members; Name is empty for them unless
	// declared explicitly.
	Choices []Choice
	// OmitEmpty drops an optional aggregate that marshals to no children.
	OmitEmpty bool
	// Pointer marks an element held by pointer: only nil is absent, so a
	// pointer to an empty string survives a round trip.
	Pointer bool
	Access  Accessor
}

// IsVariant reports whether the member resolves its concrete type by tag.
func (m *Member) IsVariant() bool { return len(m.Choices) > 0 }

// Matches reports whether a child tag belongs to this member.
func (m *Member) Matches(tag string) bool {
	if m.IsVariant() {
		_, ok := m.choice(tag)
		return ok
	}
	return m.Name == tag
}

// Tags lists the wire tags the member accepts.
func (m *Member) Tags() []string {
	if !m.IsVariant() {
		return []string{m.Name}
	}
	out := make([]string, 0, len(m.Choices))
	for _, c := range m.Choices {
		out = append(out, c.Tag)
	}
	return out
}

func (m *Member) choice(tag string) (*Choice, bool) {
	for i := range m.Choices {
		if m.Choices[i].Tag == tag {
			return &m.Choices[i], true
		}
	}
	return nil, false
}

// Base is an embedded struct whose members are flattened ahead of the
// owner's own.
type Base struct {
	Decl Describer
	// Project maps a holder of the owning type to a pointer to the base.
	Project func(holder any) any
}

// Declaration is what a type's Describe method returns: its tag, its bases
// and its own members.
type Declaration struct {
	Tag     string
	Bases   []Base
	Members []Member
}

// TypeSchema is the immutable, ordered member list of one type.
type TypeSchema struct {
	Tag     string
	Members []Member
	byName  map[string]int
}

// Member returns the member with the given wire name.
func (s *TypeSchema) Member(name string) (*Member, bool) {
	i, ok := s.byName[name]
	if !ok {
		return nil, false
	}
	return &s.Members[i], true
}

// Names returns the member wire names in match order. Variant members
// contribute their choice tags.
func (s *TypeSchema) Names() []string {
	out := make([]string, 0, len(s.Members))
	for i := range s.Members {
		out = append(out, s.Members[i].Tags()...)
	}
	return out
}

// projected re-targets a base member's accessor onto the owning type.
type projected struct {
	inner   Accessor
	project func(holder any) any
}

func (p projected) Get(holder any) []any { return p.inner.Get(p.project(holder)) }
func (p projected) Set(holder any, v any) error { return p.inner.Set(p.project(holder), v) }
