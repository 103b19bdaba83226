package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseRegistry Phase = "registry" // mixin/feature/type registration
	PhaseCompose  Phase = "compose"  // type transitions
	PhaseCopy     Phase = "copy"     // copy construction and assignment
	PhaseMove     Phase = "move"     // move and relocation operations
	PhaseAlloc    Phase = "alloc"    // slot and mixin storage allocation
	PhaseScene    Phase = "scene"    // scene file loading (cmd)
)

// Kind categorizes the error
type Kind string

const (
	KindUnsupportedAssign        Kind = "unsupported_assign"
	KindUnsupportedCopyConstruct Kind = "unsupported_copy_construct"
	KindUnsupportedMove          Kind = "unsupported_move"
	KindAllocation               Kind = "allocation"
	KindOutOfRange               Kind = "out_of_range"
	KindNotFound                 Kind = "not_found"
	KindRegistration             Kind = "registration"
	KindInvalidInput             Kind = "invalid_input"
)

// Error is the structured error type used throughout the library
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	Mixin  string
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Mixin != "" {
		b.WriteString(" at mixin ")
		b.WriteString(e.Mixin)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Mixin sets the name of the mixin the error concerns
func (b *Builder) Mixin(name string) *Builder {
	b.err.Mixin = name
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// UnsupportedAssign reports a mixin whose operation set has no copy-assign.
func UnsupportedAssign(phase Phase, mixin string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupportedAssign,
		Mixin:  mixin,
		Detail: "mixin does not support copy assignment",
	}
}

// UnsupportedCopyConstruct reports a mixin that could not be copy-constructed,
// either because its operation set has no copy-construct or because the
// operation itself failed.
func UnsupportedCopyConstruct(phase Phase, mixin string, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupportedCopyConstruct,
		Mixin:  mixin,
		Detail: "mixin could not be copy-constructed",
		Cause:  cause,
	}
}

// UnsupportedMove reports a mixin whose operation set lacks the move
// operation a relocation requires.
func UnsupportedMove(mixin string) *Error {
	return &Error{
		Phase:  PhaseMove,
		Kind:   KindUnsupportedMove,
		Mixin:  mixin,
		Detail: "mixin does not support move construction",
	}
}

// AllocationFailed reports exhausted or failed mixin storage allocation.
func AllocationFailed(phase Phase, mixin string, cause error) *Error {
	return &Error{
		Phase: phase,
		Kind:  KindAllocation,
		Mixin: mixin,
		Cause: cause,
	}
}

// OutOfRange reports an identifier outside the supported id space.
func OutOfRange(phase Phase, what string, id, max uint32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfRange,
		Detail: fmt.Sprintf("%s id %d out of range (max %d)", what, id, max),
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// Registration creates a registration error
func Registration(what, name string, cause error) *Error {
	return &Error{
		Phase:  PhaseRegistry,
		Kind:   KindRegistration,
		Detail: fmt.Sprintf("register %s %q", what, name),
		Cause:  cause,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
