package ofxkit

import (
	"fmt"
	"strconv"
	"strings"
)

// PathRef builds tag-chain paths in a chain-safe way and creates Issues.
// Rendered paths look like /OFX/BANKMSGSRSV1/STMTTRNRS/STMTRS/BANKTRANLIST/STMTTRN[2]/TRNAMT.
type PathRef interface {
	Field(tag string) PathRef
	// Index marks the last segment as the i-th (zero based) item of a list.
	Index(i int) PathRef
	Pointer() string
	// Tag is the last segment's tag, Parent the one before it.
	Tag() string
	Parent() string
	Issue(code, msg string, kv ...any) Issue
}

// RootPath returns a path starting at the given tags.
func RootPath(tags ...string) PathRef {
	p := &pathRef{}
	for _, t := range tags {
		p = p.Field(t).(*pathRef)
	}
	return p
}

// ParsePath splits a rendered path back into segments. Index suffixes are
// kept as part of their segment.
func ParsePath(path string) PathRef {
	parts := []string{}
	for _, s := range strings.Split(path, "/") {
		if s == "" {
			continue
		}
		parts = append(parts, s)
	}
	return &pathRef{parts: parts}
}

type pathRef struct {
	parts []string
}

func (p *pathRef) Field(tag string) PathRef {
	if tag == "" {
		return p
	}
	return &pathRef{parts: append(append([]string{}, p.parts...), tag)}
}

func (p *pathRef) Index(i int) PathRef {
	if len(p.parts) == 0 {
		return p
	}
	parts := append([]string{}, p.parts...)
	last := len(parts) - 1
	parts[last] = bareTag(parts[last]) + "[" + strconv.Itoa(i) + "]"
	return &pathRef{parts: parts}
}

func (p *pathRef) Pointer() string {
	if len(p.parts) == 0 {
		return "/"
	}
	return "/" + strings.Join(p.parts, "/")
}

func (p *pathRef) Tag() string {
	if len(p.parts) == 0 {
		return ""
	}
	return bareTag(p.parts[len(p.parts)-1])
}

func (p *pathRef) Parent() string {
	if len(p.parts) < 2 {
		return ""
	}
	return bareTag(p.parts[len(p.parts)-2])
}

func (p *pathRef) Issue(code, msg string, kv ...any) Issue {
	m := map[string]any{}
	for i := 0; i+1 < len(kv); i += 2 {
		m[fmt.Sprint(kv[i])] = kv[i+1]
	}
	return Issue{Path: p.Pointer(), Tag: p.Tag(), Parent: p.Parent(), Code: code, Message: msg, Severity: Error, Params: m}
}

func bareTag(seg string) string {
	if i := strings.IndexByte(seg, '['); i >= 0 {
		return seg[:i]
	}
	return seg
}
