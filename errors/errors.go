package errors

import (
	"fmt"
	"strings"
)

// Stage indicates where in the dispatch sequence the error occurred
type Stage string

const (
	StageValidate Stage = "validate" // precondition checks
	StageInvoke   Stage = "invoke"   // engine call
	StageResult   Stage = "result"   // writing results back
)

// Kind categorizes the error. These are the variants a host sees through
// the error record after a failed call.
type Kind string

const (
	// KindNone is the cleared state of an error record.
	KindNone Kind = ""

	// KindInvalidParameter: a precondition failed before any engine work
	// (null handle, nil out-pointer, out-of-range value).
	KindInvalidParameter Kind = "invalid_parameter"

	// KindRuntimeFailure: the engine raised a recoverable domain error.
	KindRuntimeFailure Kind = "runtime_failure"

	// KindUnknown: any failure signal that could not be classified.
	KindUnknown Kind = "unknown"
)

// Error is the structured error type used throughout the boundary layer.
type Error struct {
	Cause  error
	Stage  Stage
	Kind   Kind
	Op     string // entry-point name, e.g. "CreateSolarPosition"
	Param  string // offending parameter, if any
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Stage))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Op != "" {
		b.WriteString(" in ")
		b.WriteString(e.Op)
	}
	if e.Param != "" {
		b.WriteString(" (")
		b.WriteString(e.Param)
		b.WriteByte(')')
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

// Is reports whether target matches this error. Two boundary errors match
// when Stage and Kind agree, so callers can test categories with errors.Is.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Stage == t.Stage && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(stage Stage, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Stage: stage,
			Kind:  kind,
		},
	}
}

// Op sets the entry-point name
func (b *Builder) Op(op string) *Builder {
	b.err.Op = op
	return b
}

// Param sets the offending parameter name
func (b *Builder) Param(name string) *Builder {
	b.err.Param = name
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

// NullHandle creates an invalid-parameter error for a null or stale handle.
func NullHandle(op, param string) *Error {
	return &Error{
		Stage:  StageValidate,
		Kind:   KindInvalidParameter,
		Op:     op,
		Param:  param,
		Detail: "null or invalid handle",
	}
}

// WrongKind creates an invalid-parameter error for a handle of another kind.
func WrongKind(op, param, want string) *Error {
	return &Error{
		Stage:  StageValidate,
		Kind:   KindInvalidParameter,
		Op:     op,
		Param:  param,
		Detail: fmt.Sprintf("handle does not denote a %s", want),
	}
}

// NilPointer creates an invalid-parameter error for a nil out-pointer.
func NilPointer(op, param string) *Error {
	return &Error{
		Stage:  StageValidate,
		Kind:   KindInvalidParameter,
		Op:     op,
		Param:  param,
		Detail: "nil output pointer",
	}
}

// OutOfRange creates an invalid-parameter error for a value outside its
// documented range.
func OutOfRange(op, param string, value any, valid string) *Error {
	return &Error{
		Stage:  StageValidate,
		Kind:   KindInvalidParameter,
		Op:     op,
		Param:  param,
		Detail: fmt.Sprintf("value %v outside valid range %s", value, valid),
	}
}

// EngineFailure wraps a recoverable engine error.
func EngineFailure(op string, cause error) *Error {
	return &Error{
		Stage: StageInvoke,
		Kind:  KindRuntimeFailure,
		Op:    op,
		Cause: cause,
	}
}

// Unclassified wraps a failure signal that matched no known category.
func Unclassified(op string, cause error) *Error {
	return &Error{
		Stage: StageInvoke,
		Kind:  KindUnknown,
		Op:    op,
		Cause: cause,
	}
}

// Classify maps an arbitrary failure from the invoke stage into a boundary
// error. Boundary errors pass through unchanged; plain engine errors become
// RuntimeFailure; recovered panic values become Unknown.
func Classify(op string, v any) *Error {
	switch x := v.(type) {
	case nil:
		return nil
	case *Error:
		return x
	case error:
		return EngineFailure(op, x)
	default:
		return Unclassified(op, fmt.Errorf("panic: %v", x))
	}
}
