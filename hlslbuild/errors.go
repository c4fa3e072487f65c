package hlslbuild

import "fmt"

// ErrorKind categorizes generation faults.
type ErrorKind uint8

const (
	// ErrUnsupportedSourceMode indicates a function spec with a source mode
	// outside the closed enumeration. This is a programming fault, not an
	// authoring state: the editing surface can only produce file or inline.
	ErrUnsupportedSourceMode ErrorKind = iota

	// ErrDuplicateFunction indicates two distinct function definitions were
	// provided under the same identity. The first definition wins.
	ErrDuplicateFunction

	// ErrInvalidIdentifier indicates a name that cannot appear in generated
	// code even after sanitization.
	ErrInvalidIdentifier

	// ErrBadSnippet indicates an embedded function source that could not be
	// parsed into a name and definition.
	ErrBadSnippet

	// ErrGraph indicates the node graph itself is unusable, e.g. cyclic.
	ErrGraph
)

// String returns a short name for the error kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrUnsupportedSourceMode:
		return "UnsupportedSourceMode"
	case ErrDuplicateFunction:
		return "DuplicateFunction"
	case ErrInvalidIdentifier:
		return "InvalidIdentifier"
	case ErrBadSnippet:
		return "BadSnippet"
	case ErrGraph:
		return "Graph"
	default:
		return "Unknown"
	}
}

// Error is a typed generation fault.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("hlslbuild %s: %s", e.Kind, e.Message)
}

func newError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Severity grades a diagnostic. Warnings mark incomplete authoring that
// suppresses or degrades a node's code generation; Errors mark invalid
// authoring. Neither stops generation of sibling nodes.
type Severity uint8

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Diagnostic is a node-scoped authoring message surfaced by a generation pass.
type Diagnostic struct {
	Severity Severity
	// NodeID identifies the offending node, or -1 for graph-wide messages.
	NodeID  int
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("node %d: %s: %s", d.NodeID, d.Severity, d.Message)
}
