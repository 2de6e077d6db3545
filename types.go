package ofxkit

import (
	"github.com/rs/zerolog"

	"github.com/reoring/ofxkit/codec"
)

// Mode controls how recoverable problems are handled.
type Mode int

const (
	// Lenient skips unknown or misplaced tags and drops optional values that
	// fail conversion, reporting each as a warning.
	Lenient Mode = iota
	// Strict turns every such problem into a fatal issue.
	Strict
)

func (m Mode) String() string {
	if m == Strict {
		return "strict"
	}
	return "lenient"
}

// Severity expresses the severity level for issues.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

func (s Severity) String() string {
	switch s {
	case Warn:
		return "warn"
	case Error:
		return "error"
	}
	return "ignore"
}

// DefaultMaxDepth bounds aggregate nesting when Options.MaxDepth is zero.
const DefaultMaxDepth = 64

// Options bundles engine options. Entry points take them variadically and the
// last one wins.
type Options struct {
	Mode     Mode
	FailFast bool // stop at the first fatal issue instead of collecting
	MaxDepth int
	// Codecs overrides codec.Default().
	Codecs *codec.Registry
	// Logger receives debug events; nil disables logging.
	Logger *zerolog.Logger
	// BasePath prefixes issue paths when a subtree is processed on its own,
	// e.g. "/OFX" for a message set.
	BasePath string
}

func resolveOptions(opts []Options) Options {
	var opt Options
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	if opt.MaxDepth <= 0 {
		opt.MaxDepth = DefaultMaxDepth
	}
	if opt.Codecs == nil {
		opt.Codecs = codec.Default()
	}
	if opt.Logger == nil {
		nop := zerolog.Nop()
		opt.Logger = &nop
	}
	return opt
}

// recoverable is the severity for problems lenient mode tolerates.
func (o Options) recoverable() Severity {
	if o.Mode == Strict {
		return Error
	}
	return Warn
}
