package ofxkit

import (
	"errors"
	"reflect"
	"strings"

	"github.com/reoring/ofxkit/codec"
	"github.com/reoring/ofxkit/wire"
)

// decodeState is per call; nothing here is shared between calls.
type decodeState struct {
	opt      Options
	issues   Issues
	fatal    int
	presence PresenceMap
}

func (st *decodeState) add(it Issue) {
	if it.Fatal() {
		st.fatal++
	}
	st.issues = append(st.issues, it)
}

func (st *decodeState) addErr(err error, p PathRef, code string) {
	if iss, ok := AsIssues(err); ok {
		for _, it := range iss {
			st.add(it)
		}
		return
	}
	st.add(IssueAt(p, code, Error, err))
}

func (st *decodeState) stop() bool { return st.opt.FailFast && st.fatal > 0 }

// decodeRoot populates holder (a pointer to d's type) from n.
func decodeRoot(n *wire.Node, holder any, d Describer, opt Options, pm PresenceMap) Issues {
	st := &decodeState{opt: opt, presence: pm}
	base := ParsePath(opt.BasePath)
	if n == nil {
		st.add(IssueAt(base, CodeParseError, Error, wire.ErrNilNode))
		return st.issues
	}
	path := base.Field(n.Tag)
	if err := n.Validate(); err != nil {
		st.add(IssueAt(path, CodeNodeInvariant, Error, err))
		return st.issues
	}
	s, err := schemaFor(d, opt.Logger)
	if err != nil {
		st.addErr(err, path, CodeInvalidSchema)
		return st.issues
	}
	if s.Tag != "" && n.Tag != s.Tag {
		it := IssueAt(path, CodeUnknownTag, Error, nil)
		it.Hint = s.Tag
		st.add(it)
		return st.issues
	}
	if n.IsLeaf() && n.Value() != "" {
		st.add(IssueAt(path, CodeKindMismatch, Error, nil))
		return st.issues
	}
	st.presence.mark(path.Pointer(), PresenceSeen)
	st.decodeAggregate(n, holder, s, path, 1)
	return st.issues
}

// decodeAggregate walks n's children once with a forward cursor over the
// schema members.
func (st *decodeState) decodeAggregate(n *wire.Node, holder any, s *TypeSchema, path PathRef, depth int) {
	if depth > st.opt.MaxDepth {
		st.add(IssueAt(path, CodeMaxDepth, Error, nil))
		return
	}
	pos := 0
	matched := make([]bool, len(s.Members))
	var counts map[int]int
	for _, child := range n.Children {
		if st.stop() {
			return
		}
		i := matchFrom(s, pos, child.Tag)
		if i < 0 {
			st.skip(s, child, path.Field(child.Tag))
			continue
		}
		m := &s.Members[i]
		cp := path.Field(child.Tag)
		if m.Cardinality == List {
			// Stay on the list so a run of the same tag keeps matching.
			pos = i
			if counts == nil {
				counts = map[int]int{}
			}
			cp = cp.Index(counts[i])
			counts[i]++
		} else {
			pos = i + 1
		}
		if st.decodeMember(child, holder, m, cp, depth) {
			matched[i] = true
		}
	}
	if st.stop() {
		return
	}
	for i := range s.Members {
		m := &s.Members[i]
		if m.Required && !matched[i] {
			st.add(IssueAt(path.Field(strings.Join(m.Tags(), "|")), CodeRequired, Error, nil))
			if st.stop() {
				return
			}
		}
	}
}

func matchFrom(s *TypeSchema, from int, tag string) int {
	for i := from; i < len(s.Members); i++ {
		if s.Members[i].Matches(tag) {
			return i
		}
	}
	return -1
}

// skip reports a child that matches no member at or after the cursor. A tag
// belonging to an earlier member is out of order, anything else unknown.
func (st *decodeState) skip(s *TypeSchema, child *wire.Node, cp PathRef) {
	code := CodeUnknownTag
	if _, known := s.byName[child.Tag]; known {
		code = CodeOutOfOrder
	}
	st.add(IssueAt(cp, code, st.opt.recoverable(), nil))
	st.presence.mark(cp.Pointer(), PresenceSkipped)
	st.opt.Logger.Debug().Str("path", cp.Pointer()).Str("code", code).Str("mode", st.opt.Mode.String()).Msg("child not matched")
}

// decodeMember reports whether the child counts as present for the required
// check. Present-but-invalid children count, so they are not reported twice.
func (st *decodeState) decodeMember(child *wire.Node, holder any, m *Member, cp PathRef, depth int) bool {
	if m.Kind == KindElement {
		return st.decodeElement(child, holder, m, cp)
	}

	nested, ptr := m.Nested, any(nil)
	if m.IsVariant() {
		c, _ := m.choice(child.Tag)
		nested, ptr = c.Nested, c.New()
	} else {
		ptr = m.New()
	}
	if child.IsLeaf() {
		if child.Value() != "" {
			st.add(IssueAt(cp, CodeKindMismatch, Error, nil))
			return true
		}
		// Both dialects can render an empty aggregate as an empty leaf.
		st.presence.mark(cp.Pointer(), PresenceEmpty)
	}
	ns, err := schemaFor(nested, st.opt.Logger)
	if err != nil {
		st.addErr(err, cp, CodeInvalidSchema)
		return true
	}
	st.presence.mark(cp.Pointer(), PresenceSeen)
	st.decodeAggregate(child, ptr, ns, cp, depth+1)
	if err := m.Access.Set(holder, ptr); err != nil {
		st.add(IssueAt(cp, CodeInvalidType, Error, err))
	}
	return true
}

func (st *decodeState) decodeElement(child *wire.Node, holder any, m *Member, cp PathRef) bool {
	if !child.IsLeaf() && len(child.Children) > 0 {
		st.add(IssueAt(cp, CodeKindMismatch, Error, nil))
		return true
	}
	text := child.Value()
	if text == "" {
		st.presence.mark(cp.Pointer(), PresenceEmpty)
		return st.decodeEmpty(holder, m, cp)
	}
	v, err := st.opt.Codecs.Decode(m.Codec, text)
	if err != nil {
		if errors.Is(err, codec.ErrUnknownKey) {
			st.add(IssueAt(cp, CodeInvalidSchema, Error, err))
			return true
		}
		sev := Error
		if !m.Required {
			sev = st.opt.recoverable()
		}
		it := IssueAt(cp, CodeInvalidFormat, sev, err)
		it.Hint = string(m.Codec)
		st.add(it)
		return true
	}
	if codec.IsEnum(m.Codec) && codec.IsUnrecognized(v) {
		it := IssueAt(cp, CodeUnrecognizedEnum, Warn, nil)
		it.Hint = text
		st.add(it)
		st.opt.Logger.Debug().Str("path", cp.Pointer()).Str("literal", text).Msg("unrecognized enum literal")
	}
	if err := m.Access.Set(holder, v); err != nil {
		st.add(IssueAt(cp, CodeInvalidType, Error, err))
		return true
	}
	st.presence.mark(cp.Pointer(), PresenceSeen)
	return true
}

// decodeEmpty keeps an empty leaf for pointer-held elements whose codec
// reads empty text as an empty string. Everything else stays absent.
func (st *decodeState) decodeEmpty(holder any, m *Member, cp PathRef) bool {
	if !m.Pointer || codec.IsEnum(m.Codec) {
		return false
	}
	v, err := st.opt.Codecs.Decode(m.Codec, "")
	if err != nil || !keepsEmpty(m, v) {
		return false
	}
	if err := m.Access.Set(holder, v); err != nil {
		st.add(IssueAt(cp, CodeInvalidType, Error, err))
	}
	return true
}

// newHolder allocates a pointer to the (dereferenced) type of d.
func newHolder(d Describer) reflect.Value {
	return reflect.New(typeOf(d))
}

func unmarshalValue[T Describer](n *wire.Node, opt Options, pm PresenceMap) (T, Issues) {
	var zero T
	t := reflect.TypeOf(&zero).Elem()
	if t.Kind() == reflect.Interface {
		return zero, Issues{IssueAt(ParsePath(opt.BasePath), CodeInvalidType, Error, errors.New("target type must be concrete"))}
	}
	base := t
	for base.Kind() == reflect.Pointer {
		base = base.Elem()
	}
	h := reflect.New(base)
	d, ok := h.Interface().(Describer)
	if !ok {
		return zero, Issues{IssueAt(ParsePath(opt.BasePath), CodeInvalidType, Error, errors.New("target type does not describe a schema"))}
	}
	iss := decodeRoot(n, h.Interface(), d, opt, pm)
	if iss.HasFatal() {
		return zero, iss
	}
	if t.Kind() == reflect.Pointer {
		return h.Interface().(T), iss
	}
	return h.Elem().Interface().(T), iss
}

func unmarshalInto(n *wire.Node, target Describer, opt Options) Issues {
	rv := reflect.ValueOf(target)
	if target == nil || rv.Kind() != reflect.Pointer || rv.IsNil() {
		return Issues{IssueAt(ParsePath(opt.BasePath), CodeInvalidType, Error, errors.New("target must be a non-nil pointer"))}
	}
	fresh := newHolder(target)
	iss := decodeRoot(n, fresh.Interface(), target, opt, nil)
	if iss.HasFatal() {
		return iss
	}
	rv.Elem().Set(fresh.Elem())
	return iss
}
