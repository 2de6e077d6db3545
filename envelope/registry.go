package envelope

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/reoring/ofxkit"
)

// Entry binds a message-set wire tag to its Go type.
type Entry struct {
	Tag  string
	Type Type
	New  func() MessageSet
}

// EntryFor derives an Entry from M's declaration. It panics when M has no
// usable schema, which is a programming error.
func EntryFor[M any, PM interface {
	*M
	MessageSet
}]() Entry {
	probe := PM(new(M))
	tag, err := ofxkit.TagOf(probe)
	if err != nil {
		panic(fmt.Sprintf("envelope: %T: %v", probe, err))
	}
	if tag == "" {
		panic(fmt.Sprintf("envelope: %T declares no tag", probe))
	}
	return Entry{
		Tag:  tag,
		Type: probe.MessageSetType(),
		New:  func() MessageSet { return PM(new(M)) },
	}
}

// Registry is a closed tag -> message-set table. It is immutable after
// construction and safe for concurrent use.
type Registry struct {
	byTag  map[string]Entry
	byType map[reflect.Type]string
}

// NewRegistry builds a registry. Duplicate tags are rejected.
func NewRegistry(entries ...Entry) (*Registry, error) {
	r := &Registry{byTag: map[string]Entry{}, byType: map[reflect.Type]string{}}
	for _, e := range entries {
		if e.Tag == "" || e.New == nil {
			return nil, fmt.Errorf("envelope: incomplete entry %+v", e)
		}
		if _, dup := r.byTag[e.Tag]; dup {
			return nil, fmt.Errorf("envelope: duplicate message set tag %s", e.Tag)
		}
		r.byTag[e.Tag] = e
		r.byType[goType(e.New())] = e.Tag
	}
	return r, nil
}

// MustRegistry is NewRegistry that panics on error.
func MustRegistry(entries ...Entry) *Registry {
	r, err := NewRegistry(entries...)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the entry registered under tag.
func (r *Registry) Lookup(tag string) (Entry, bool) {
	e, ok := r.byTag[tag]
	return e, ok
}

// TagOf returns the tag ms's type is registered under.
func (r *Registry) TagOf(ms MessageSet) (string, bool) {
	if ms == nil {
		return "", false
	}
	tag, ok := r.byType[goType(ms)]
	return tag, ok
}

// Tags lists registered tags in sorted order.
func (r *Registry) Tags() []string {
	out := make([]string, 0, len(r.byTag))
	for t := range r.byTag {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of entries.
func (r *Registry) Len() int { return len(r.byTag) }

func goType(v any) reflect.Type {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
