package valido

import (
	"fmt"
	"strconv"
	"strings"
)

// SchemaError reports that an object could not be compiled into a Validator.
// It is a setup-time programmer error, as opposed to ValidationError which is
// an expected runtime condition.
type SchemaError struct {
	msg string
}

func schemaErrorf(format string, args ...any) *SchemaError {
	return &SchemaError{msg: fmt.Sprintf(format, args...)}
}

func (e *SchemaError) Error() string { return e.msg }

// ValidationError reports that a value was rejected by a validator. It carries
// a human-readable message, optionally the offending value, and the error path
// accumulated while unwinding through nested validators (innermost item first).
type ValidationError struct {
	ctx       *Context
	msg       string
	value     any
	hasValue  bool
	pathItems []any
}

// NewValidationError creates a ValidationError without an attached value.
// The context is used only for rendering; it may be nil.
func NewValidationError(c *Context, msg string) *ValidationError {
	return &ValidationError{ctx: c, msg: msg}
}

// WithValue attaches the offending value and returns the receiver.
func (e *ValidationError) WithValue(value any) *ValidationError {
	e.value = value
	e.hasValue = true
	return e
}

// Message returns the raw failure message, without value or path rendering.
func (e *ValidationError) Message() string { return e.msg }

// AddErrorPathItem appends a path segment (a property name or a sequence
// index) and returns the receiver. Containers call this while re-raising a
// child failure, so segments accumulate innermost-first.
func (e *ValidationError) AddErrorPathItem(item any) *ValidationError {
	e.pathItems = append(e.pathItems, item)
	return e
}

// ToText renders the error for display. The exact layout is part of the public
// contract: "Invalid value {repr} ({type name}): {message} (at {path})", where
// the path renders the outermost segment as a plain name (or "value" when it is
// not a string) and every following segment as an indexer "[{repr}]".
func (e *ValidationError) ToText() string {
	msg := e.msg
	if e.hasValue {
		msg = fmt.Sprintf("Invalid value %s (%s): %s", e.repr(e.value), e.typeName(e.value), e.msg)
	}
	if len(e.pathItems) == 0 {
		return msg
	}
	items := make([]any, 0, len(e.pathItems))
	for i := len(e.pathItems) - 1; i >= 0; i-- {
		items = append(items, e.pathItems[i])
	}
	var b strings.Builder
	if s, ok := items[0].(string); ok {
		b.WriteString(s)
		items = items[1:]
	} else {
		b.WriteString("value")
	}
	for _, item := range items {
		b.WriteString("[")
		b.WriteString(e.repr(item))
		b.WriteString("]")
	}
	return msg + " (at " + b.String() + ")"
}

func (e *ValidationError) Error() string { return e.ToText() }

func (e *ValidationError) repr(v any) string {
	if e.ctx != nil {
		return e.ctx.Repr(v)
	}
	return defaultRepr(v)
}

func (e *ValidationError) typeName(v any) string {
	if e.ctx != nil {
		return e.ctx.TypeNames.NameForValue(v)
	}
	return NewTypeNames().NameForValue(v)
}

// defaultRepr is the representation function of plain contexts. Strings are
// quoted, everything else renders with the %v verb.
func defaultRepr(v any) string {
	if s, ok := v.(string); ok {
		return strconv.Quote(s)
	}
	return fmt.Sprintf("%v", v)
}
