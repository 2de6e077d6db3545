package ofxkit

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeRequired            = "required"
	CodeIncompleteAggregate = "incomplete_aggregate"
	CodeUnknownTag          = "unknown_tag"
	CodeOutOfOrder          = "out_of_order"
	CodeKindMismatch        = "kind_mismatch"
	CodeInvalidFormat       = "invalid_format"
	CodeInvalidType         = "invalid_type"
	CodeUnknownMessageSet   = "unknown_message_set"
	CodeMalformedHeader     = "malformed_header"
	CodeNodeInvariant       = "node_invariant"
	CodeMaxDepth            = "max_depth"
	CodeParseError          = "parse_error"
	CodeUnrecognizedEnum    = "unrecognized_enum"
	CodeUnregisteredType    = "unregistered_type"
	CodeInvalidSchema       = "invalid_schema"
)

// Error classes. Issues match them through errors.Is.
var (
	// ErrStructural covers missing required members, unknown tags in strict
	// mode, malformed headers and leaf/aggregate violations.
	ErrStructural = errors.New("ofxkit: structural error")
	// ErrValueConversion covers malformed scalar literals and unencodable values.
	ErrValueConversion = errors.New("ofxkit: value conversion error")
)

// Issue represents a single diagnostic entry.
type Issue struct {
	Path     string // Tag chain (for example: /OFX/BANKMSGSRSV1/STMTTRNRS[1]/TRNUID).
	Tag      string // Offending wire tag.
	Parent   string // Enclosing aggregate tag.
	Code     string // One of the codes listed above.
	Message  string
	Hint     string // Optional: expected literal, codec key, etc.
	Cause    error  // Optional: underlying error.
	Severity Severity
	// Params carries structured parameters (e.g., {"order": 30}) for i18n and
	// observability.
	Params map[string]any
}

// Fatal reports whether the issue aborts the operation.
func (it Issue) Fatal() bool { return it.Severity >= Error }

// Class returns the error class sentinel the issue belongs to.
func (it Issue) Class() error {
	switch it.Code {
	case CodeInvalidFormat, CodeInvalidType, CodeUnrecognizedEnum:
		return ErrValueConversion
	}
	return ErrStructural
}

func (it Issue) String() string {
	b := &strings.Builder{}
	fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	if it.Message != "" && it.Message != it.Code {
		fmt.Fprintf(b, ": %s", it.Message)
	}
	if it.Cause != nil {
		fmt.Fprintf(b, " (%v)", it.Cause)
	}
	return b.String()
}

// Issues is a collection of diagnostics that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := min(n, maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. required at /OFX/SIGNONMSGSRSV1/SONRS/DTSERVER
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Is reports whether any fatal issue belongs to the target class, so
// errors.Is(err, ErrStructural) works on a returned Issues value.
func (iss Issues) Is(target error) bool {
	if target != ErrStructural && target != ErrValueConversion {
		return false
	}
	for _, it := range iss {
		if it.Fatal() && it.Class() == target {
			return true
		}
	}
	return false
}

// Unwrap exposes the causes of fatal issues to errors.Is and errors.As.
func (iss Issues) Unwrap() []error {
	var out []error
	for _, it := range iss {
		if it.Fatal() && it.Cause != nil {
			out = append(out, it.Cause)
		}
	}
	return out
}

// Fatal returns the issues that abort an operation.
func (iss Issues) Fatal() Issues {
	return iss.filter(func(it Issue) bool { return it.Fatal() })
}

// Warnings returns the non-fatal issues.
func (iss Issues) Warnings() Issues {
	return iss.filter(func(it Issue) bool { return !it.Fatal() })
}

// HasFatal reports whether at least one issue is fatal.
func (iss Issues) HasFatal() bool {
	for _, it := range iss {
		if it.Fatal() {
			return true
		}
	}
	return false
}

// WithCode returns the issues carrying code.
func (iss Issues) WithCode(code string) Issues {
	return iss.filter(func(it Issue) bool { return it.Code == code })
}

func (iss Issues) filter(keep func(Issue) bool) Issues {
	var out Issues
	for _, it := range iss {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}
