package ofxkit

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/reoring/ofxkit/codec"
	"github.com/reoring/ofxkit/wire"
)

type encodeState struct {
	opt    Options
	issues Issues
	fatal  int
}

func (st *encodeState) add(it Issue) {
	if it.Fatal() {
		st.fatal++
	}
	st.issues = append(st.issues, it)
}

func (st *encodeState) stop() bool { return st.opt.FailFast && st.fatal > 0 }

// holderOf returns a pointer holder for v, copying values into fresh storage.
func holderOf(v Describer) (any, error) {
	if v == nil {
		return nil, errors.New("nil value")
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, errors.New("nil pointer")
		}
		return v, nil
	}
	h := reflect.New(rv.Type())
	h.Elem().Set(rv)
	return h.Interface(), nil
}

func encodeRoot(v Describer, tag string, opt Options) (*wire.Node, Issues) {
	st := &encodeState{opt: opt}
	base := ParsePath(opt.BasePath)
	holder, err := holderOf(v)
	if err != nil {
		st.add(IssueAt(base, CodeInvalidType, Error, err))
		return nil, st.issues
	}
	s, err := schemaFor(v, opt.Logger)
	if err != nil {
		if iss, ok := AsIssues(err); ok {
			return nil, iss
		}
		st.add(IssueAt(base, CodeInvalidSchema, Error, err))
		return nil, st.issues
	}
	if tag == "" {
		tag = s.Tag
	}
	if tag == "" {
		st.add(IssueAt(base, CodeInvalidSchema, Error, fmt.Errorf("%T has no wire tag", v)))
		return nil, st.issues
	}
	path := base.Field(tag)
	n := st.encodeAggregate(holder, s, tag, path, 1)
	if st.fatal > 0 {
		return nil, st.issues
	}
	if err := n.Validate(); err != nil {
		st.add(IssueAt(path, CodeNodeInvariant, Error, err))
		return nil, st.issues
	}
	return n, st.issues
}

// encodeAggregate emits members in schema order.
func (st *encodeState) encodeAggregate(holder any, s *TypeSchema, tag string, path PathRef, depth int) *wire.Node {
	n := wire.Aggregate(tag)
	if depth > st.opt.MaxDepth {
		st.add(IssueAt(path, CodeMaxDepth, Error, nil))
		return n
	}
	for i := range s.Members {
		if st.stop() {
			return n
		}
		m := &s.Members[i]
		var emitted int
		switch {
		case m.Kind == KindElement:
			emitted = st.encodeElement(n, holder, m, path)
		case m.IsVariant():
			emitted = st.encodeVariants(n, holder, m, path, depth)
		default:
			emitted = st.encodeNested(n, holder, m, path, depth)
		}
		if emitted == 0 && m.Required {
			it := IssueAt(path.Field(m.Tags()[0]), CodeIncompleteAggregate, Error, nil)
			it.Params = map[string]any{"order": m.Order}
			st.add(it)
		}
	}
	return n
}

func (st *encodeState) encodeElement(n *wire.Node, holder any, m *Member, path PathRef) int {
	count := 0
	for _, v := range m.Access.Get(holder) {
		if st.opt.Codecs.IsZero(m.Codec, v) && !keepsEmpty(m, v) {
			continue
		}
		cp := path.Field(m.Name)
		if m.Cardinality == List {
			cp = cp.Index(count)
		}
		text, err := st.opt.Codecs.Encode(m.Codec, v)
		if err != nil {
			code := CodeInvalidFormat
			if errors.Is(err, codec.ErrUnknownKey) {
				code = CodeInvalidSchema
			}
			it := IssueAt(cp, code, Error, err)
			it.Hint = string(m.Codec)
			st.add(it)
			return count + 1
		}
		n.Append(wire.Leaf(m.Name, text))
		count++
		if m.Cardinality == One {
			break
		}
	}
	return count
}

// keepsEmpty reports whether v is an empty string held by a non-nil
// pointer. Enumerations have no empty literal and stay absent.
func keepsEmpty(m *Member, v any) bool {
	if !m.Pointer || codec.IsEnum(m.Codec) {
		return false
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.String && rv.Len() == 0
}

func (st *encodeState) encodeNested(n *wire.Node, holder any, m *Member, path PathRef, depth int) int {
	ns, err := schemaFor(m.Nested, st.opt.Logger)
	if err != nil {
		st.add(IssueAt(path.Field(m.Name), CodeInvalidSchema, Error, err))
		return 1
	}
	count := 0
	for _, p := range m.Access.Get(holder) {
		cp := path.Field(m.Name)
		if m.Cardinality == List {
			cp = cp.Index(count)
		}
		child := st.encodeAggregate(p, ns, m.Name, cp, depth+1)
		if m.OmitEmpty && !m.Required && len(child.Children) == 0 {
			continue
		}
		n.Append(child)
		count++
		if m.Cardinality == One {
			break
		}
	}
	return count
}

func (st *encodeState) encodeVariants(n *wire.Node, holder any, m *Member, path PathRef, depth int) int {
	count := 0
	for idx, item := range m.Access.Get(holder) {
		c, ptr, ok := m.resolve(item)
		if !ok {
			it := IssueAt(path.Field(m.Tags()[0]).Index(idx), CodeUnregisteredType, Error, nil)
			it.Hint = fmt.Sprintf("%T", item)
			st.add(it)
			count++
			continue
		}
		cp := path.Field(c.Tag)
		if m.Cardinality == List {
			cp = cp.Index(idx)
		}
		ns, err := schemaFor(c.Nested, st.opt.Logger)
		if err != nil {
			st.add(IssueAt(cp, CodeInvalidSchema, Error, err))
			count++
			continue
		}
		n.Append(st.encodeAggregate(ptr, ns, c.Tag, cp, depth+1))
		count++
		if m.Cardinality == One {
			break
		}
	}
	return count
}

// resolve finds the choice whose concrete type matches item.
func (m *Member) resolve(item any) (*Choice, any, bool) {
	for i := range m.Choices {
		if ptr, ok := m.Choices[i].Match(item); ok {
			return &m.Choices[i], ptr, true
		}
	}
	return nil, nil, false
}
