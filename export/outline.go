package export

import (
	"fmt"
	"reflect"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/reoring/ofxkit"
	"github.com/reoring/ofxkit/codec"
)

// Outline is a serializable view of a declared type's schema, used for
// documentation output.
type Outline struct {
	Tag     string          `json:"tag,omitempty" yaml:"tag,omitempty"`
	Members []MemberOutline `json:"members,omitempty" yaml:"members,omitempty"`
}

// MemberOutline describes one member. Exactly one of Codec, Nested or
// Choices is set.
type MemberOutline struct {
	Name     string     `json:"name,omitempty" yaml:"name,omitempty"`
	Order    int        `json:"order" yaml:"order"`
	Required bool       `json:"required,omitempty" yaml:"required,omitempty"`
	List     bool       `json:"list,omitempty" yaml:"list,omitempty"`
	Codec    string     `json:"codec,omitempty" yaml:"codec,omitempty"`
	Literals []string   `json:"literals,omitempty" yaml:"literals,omitempty"`
	Nested   *Outline   `json:"nested,omitempty" yaml:"nested,omitempty"`
	Choices  []*Outline `json:"choices,omitempty" yaml:"choices,omitempty"`
}

// OutlineOf builds the outline of d's type and every type reachable from it.
func OutlineOf(d ofxkit.Describer) (*Outline, error) {
	return outline(d, map[reflect.Type]bool{})
}

func outline(d ofxkit.Describer, active map[reflect.Type]bool) (*Outline, error) {
	t := reflect.TypeOf(d)
	if active[t] {
		return nil, fmt.Errorf("export: %v refers to itself", t)
	}
	active[t] = true
	defer delete(active, t)

	s, err := ofxkit.SchemaOf(d)
	if err != nil {
		return nil, err
	}
	o := &Outline{Tag: s.Tag, Members: make([]MemberOutline, 0, len(s.Members))}
	for i := range s.Members {
		m := &s.Members[i]
		mo := MemberOutline{
			Name:     m.Name,
			Order:    m.Order,
			Required: m.Required,
			List:     m.Cardinality == ofxkit.List,
		}
		switch {
		case m.Kind == ofxkit.KindElement:
			mo.Codec = string(m.Codec)
			if codec.IsEnum(m.Codec) {
				mo.Literals = codec.Literals(m.Codec)
			}
		case m.IsVariant():
			for _, c := range m.Choices {
				co, err := outline(c.Nested, active)
				if err != nil {
					return nil, err
				}
				mo.Choices = append(mo.Choices, co)
			}
		default:
			if mo.Nested, err = outline(m.Nested, active); err != nil {
				return nil, err
			}
		}
		o.Members = append(o.Members, mo)
	}
	return o, nil
}

// EncodeOutline renders o as JSON or YAML.
func EncodeOutline(o *Outline, format string) ([]byte, error) {
	switch format {
	case JSON:
		return json.MarshalIndent(o, "", "  ")
	case YAML:
		return yaml.Marshal(o)
	}
	return nil, fmt.Errorf("export: outlines support json and yaml, not %q", format)
}
