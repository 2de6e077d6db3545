package engine

// EnforceOptions controls tree assembly and runtime limits.
type EnforceOptions struct {
	// Repair enables the unclosed-element rules of the legacy dialect:
	// text followed by a tag closes the leaf, and elements left open when an
	// ancestor closes are turned into empty leaves followed by what they
	// collected. Without it every element must be closed in order.
	Repair bool
	// EmptyAsLeaf turns explicitly closed elements without text or children
	// into empty leaves instead of empty aggregates.
	EmptyAsLeaf bool
	MaxDepth    int
	MaxBytes    int64
	// IssueSink is an optional callback receiving limit violations before
	// they are returned as errors.
	IssueSink func(SimpleIssue)
}

// SimpleIssue is a minimal issue representation used by internal helpers.
type SimpleIssue struct {
	Code    string
	Path    string
	Message string
}

// IssueError is a lightweight error carrying a SimpleIssue. It unwraps to
// ErrMaxDepth or ErrMaxBytes.
type IssueError struct {
	SimpleIssue
	Err error
}

func (e IssueError) Error() string { return e.Message + " at " + e.Path }

func (e IssueError) Unwrap() error { return e.Err }

func (b *builder) checkDepth(depth int, path string) error {
	if b.opt.MaxDepth <= 0 || depth <= b.opt.MaxDepth {
		return nil
	}
	return b.report(SimpleIssue{Code: "max_depth", Path: path, Message: "max depth exceeded"}, ErrMaxDepth)
}

func (b *builder) checkBytes(off int64) error {
	if b.opt.MaxBytes <= 0 || off < 0 || off <= b.opt.MaxBytes {
		return nil
	}
	return b.report(SimpleIssue{Code: "parse_error", Path: normalizeIssuePath(b.path()), Message: "max bytes exceeded"}, ErrMaxBytes)
}

func (b *builder) report(si SimpleIssue, err error) error {
	if b.opt.IssueSink != nil {
		b.opt.IssueSink(si)
	}
	return IssueError{SimpleIssue: si, Err: err}
}

func normalizeIssuePath(p string) string {
	if p == "" {
		return "/"
	}
	return p
}
