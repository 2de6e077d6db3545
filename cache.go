package ofxkit

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/rs/zerolog"
)

var schemas sync.Map // reflect.Type -> *TypeSchema

// SchemaOf returns the schema for d's type, building it on first use.
// Concurrent first calls may each build; LoadOrStore keeps exactly one and
// readers never observe a partial schema.
func SchemaOf(d Describer) (*TypeSchema, error) {
	return schemaFor(d, nil)
}

// MustSchemaOf is like SchemaOf but panics on an invalid declaration.
func MustSchemaOf(d Describer) *TypeSchema {
	s, err := SchemaOf(d)
	if err != nil {
		panic(err)
	}
	return s
}

func schemaFor(d Describer, log *zerolog.Logger) (*TypeSchema, error) {
	t := typeOf(d)
	if t == nil {
		return nil, Issues{schemaIssue("<nil>", "nil describer")}
	}
	if v, ok := schemas.Load(t); ok {
		return v.(*TypeSchema), nil
	}
	s, err := buildSchema(t, d)
	if err != nil {
		return nil, err
	}
	actual, loaded := schemas.LoadOrStore(t, s)
	if !loaded && log != nil {
		log.Debug().Str("type", t.String()).Str("tag", s.Tag).Int("members", len(s.Members)).Msg("schema built")
	}
	return actual.(*TypeSchema), nil
}

func typeOf(d Describer) reflect.Type {
	if d == nil {
		return nil
	}
	t := reflect.TypeOf(d)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

func buildSchema(t reflect.Type, d Describer) (*TypeSchema, error) {
	decl := d.Describe()
	if decl == nil {
		return nil, Issues{schemaIssue(t.String(), "Describe returned nil")}
	}
	var members []Member
	for _, b := range decl.Bases {
		if b.Decl == nil || b.Project == nil {
			return nil, Issues{schemaIssue(t.String(), "base without declaration or projection")}
		}
		bs, err := SchemaOf(b.Decl)
		if err != nil {
			return nil, err
		}
		for _, m := range bs.Members {
			m.Access = projected{inner: m.Access, project: b.Project}
			members = append(members, m)
		}
	}
	for _, m := range decl.Members {
		if err := resolveMember(&m); err != nil {
			return nil, Issues{schemaIssue(t.String(), err.Error())}
		}
		members = append(members, m)
	}
	// Ties on Order keep declaration sequence, bases first.
	sort.SliceStable(members, func(i, j int) bool { return members[i].Order < members[j].Order })

	s := &TypeSchema{Tag: decl.Tag, Members: members, byName: make(map[string]int, len(members))}
	for i := range s.Members {
		for _, tag := range s.Members[i].Tags() {
			if _, dup := s.byName[tag]; !dup {
				s.byName[tag] = i
			}
		}
	}
	return s, nil
}

// resolveMember fills derived names and checks that the member is usable.
func resolveMember(m *Member) error {
	if m.Access == nil {
		return fmt.Errorf("member %q has no accessor", m.Name)
	}
	switch m.Kind {
	case KindElement:
		if m.Name == "" {
			return fmt.Errorf("element at order %d has no name", m.Order)
		}
		if m.Codec == "" {
			return fmt.Errorf("element %s has no codec key", m.Name)
		}
	case KindAggregate:
		if len(m.Choices) > 0 {
			choices := make([]Choice, len(m.Choices))
			copy(choices, m.Choices)
			for i := range choices {
				c := &choices[i]
				if c.Tag == "" && c.Nested != nil {
					c.Tag = declaredTag(c.Nested)
				}
				if c.Tag == "" {
					return fmt.Errorf("variant choice %d at order %d has no tag", i, m.Order)
				}
				if c.New == nil || c.Match == nil {
					return fmt.Errorf("variant choice %s is incomplete", c.Tag)
				}
			}
			m.Choices = choices
			return nil
		}
		if m.Nested == nil || m.New == nil {
			return fmt.Errorf("aggregate %q has no nested type", m.Name)
		}
		if m.Name == "" {
			m.Name = declaredTag(m.Nested)
		}
		if m.Name == "" {
			return fmt.Errorf("aggregate at order %d has no resolvable tag", m.Order)
		}
	default:
		return fmt.Errorf("member %q has unknown kind %d", m.Name, m.Kind)
	}
	return nil
}

func declaredTag(d Describer) string {
	if decl := d.Describe(); decl != nil {
		return decl.Tag
	}
	return ""
}
