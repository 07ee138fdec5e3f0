package valido

import (
	"errors"
	"reflect"
)

// Validator is the compiled, executable form of a schema.
//
// Validators are created by Context.Parse (or directly via the constructors in
// this package) and are logically immutable once resolved. A resolved validator
// tree is safe to share across goroutines for concurrent Validate calls;
// Context registries, however, must not be mutated concurrently.
type Validator interface {
	// Validate checks value and returns the adapted result. On rejection the
	// returned error is a *ValidationError; adaptor or predicate errors outside
	// the configured trap set propagate unchanged.
	Validate(value any) (any, error)

	// HumanizedName returns a human-friendly name used in diagnostics.
	HumanizedName() string

	// Bind attaches the validation context. The first bound context wins;
	// later calls are no-ops so a validator subtree can be shared across
	// contexts without rebinding.
	Bind(c *Context)

	// Context returns the bound context, or nil before Bind.
	Context() *Context

	// Resolve compiles any raw sub-schemas the validator was constructed with.
	// Context.Parse invokes it after Bind; a second call is a no-op.
	Resolve() error
}

// IsValid reports whether value conforms to v. Only *ValidationError is
// treated as rejection; any other error from Validate signals a programmer or
// environment problem and panics.
func IsValid(v Validator, value any) bool {
	_, err := v.Validate(value)
	if err == nil {
		return true
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return false
	}
	panic(err)
}

// base carries the state shared by every validator kind: the bound context and
// an optional registry/display name.
type base struct {
	ctx  *Context
	name string
}

func (b *base) Bind(c *Context) {
	if b.ctx == nil {
		b.ctx = c
	}
}

func (b *base) Context() *Context { return b.ctx }

func (b *base) Resolve() error { return nil }

func (b *base) invalid(msg string, value any) error {
	return NewValidationError(b.ctx, msg).WithValue(value)
}

func (b *base) mustBe(humanized string, value any) error {
	return b.invalid("must be "+humanized, value)
}

// typeNames returns the bound context's registry, or a throwaway default when
// the validator is used unbound.
func (b *base) typeNames() *TypeNames {
	if b.ctx != nil {
		return b.ctx.TypeNames
	}
	return NewTypeNames()
}

func (b *base) reprValue(v any) string {
	if b.ctx != nil {
		return b.ctx.Repr(v)
	}
	return defaultRepr(v)
}

func (b *base) mappingName() string  { return b.typeNames().NameForKind(reflect.Map) }
func (b *base) sequenceName() string { return b.typeNames().NameForKind(reflect.Slice) }

// resolveDefault produces a default value, invoking zero-argument callables.
func resolveDefault(def any) any {
	if fn, ok := def.(func() any); ok {
		return fn()
	}
	return def
}
