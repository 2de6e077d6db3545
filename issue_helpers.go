package ofxkit

import (
	"github.com/reoring/ofxkit/i18n"
)

// IssueAt creates an Issue at the given path with provided code, severity and
// cause. The message comes from the current i18n translator.
func IssueAt(p PathRef, code string, sev Severity, cause error) Issue {
	return Issue{
		Path:     p.Pointer(),
		Tag:      p.Tag(),
		Parent:   p.Parent(),
		Code:     code,
		Message:  i18n.T(code, map[string]string{"tag": p.Tag(), "parent": p.Parent()}),
		Cause:    cause,
		Severity: sev,
	}
}

// NewIssue builds a fatal issue outside any tree walk, used by the envelope
// and dialect layers.
func NewIssue(code, path string, cause error) Issue {
	return IssueAt(ParsePath(path), code, Error, cause)
}

func schemaIssue(typeName, reason string) Issue {
	it := IssueAt(RootPath(), CodeInvalidSchema, Error, nil)
	it.Path = typeName
	it.Hint = reason
	return it
}
