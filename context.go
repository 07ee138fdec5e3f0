package valido

import (
	"fmt"
	"reflect"
)

// Factory is a fallback schema-to-validator converter. It returns nil when it
// does not recognize the schema, letting the next factory in the chain try.
type Factory func(schema any) Validator

type factoryEntry struct {
	name    string
	factory Factory
}

// Context holds the registries used to compile schemas into validators: named
// validators (instances, or constructors instantiated lazily on first lookup),
// an ordered factory chain tried in reverse registration order, the type-name
// registry and the value-representation function used in diagnostics.
//
// A Context is mutated only during setup (Register, RegisterFactory, SetRepr);
// concurrent mutation is the caller's responsibility to serialize.
type Context struct {
	TypeNames *TypeNames

	named     map[any]any // Validator or func() Validator
	factories []factoryEntry
	objects   *ObjectFactory
	repr      func(any) string
}

// NewContext returns a context preloaded with the built-in named validators
// (boolean, integer, number, string, datetime, duration) and the default
// factory chain (homogeneous sequence, object, heterogeneous sequence, type,
// pattern, condition).
func NewContext() *Context {
	c := &Context{
		TypeNames: NewTypeNames(),
		named: map[any]any{
			"boolean":  Boolean,
			"integer":  Integer,
			"number":   Number,
			"string":   func() Validator { return String() },
			"datetime": Datetime,
			"duration": Duration,
		},
		objects: &ObjectFactory{AdditionalProperties: true},
		repr:    defaultRepr,
	}
	c.factories = []factoryEntry{
		{"HomogeneousSequence", homogeneousSequenceFactory},
		{"Object", c.objects.Parse},
		{"HeterogeneousSequence", heterogeneousSequenceFactory},
		{"Type", typeFactory},
		{"Pattern", patternFactory},
		{"Condition", conditionFactory},
	}
	return c
}

// Repr renders a value for diagnostics using the context's representation
// function.
func (c *Context) Repr(v any) string { return c.repr(v) }

// SetRepr replaces the representation function.
func (c *Context) SetRepr(fn func(any) string) {
	if fn != nil {
		c.repr = fn
	}
}

// ObjectDefaults exposes the default object factory so callers can toggle the
// additional-properties and ignore-optional-errors defaults applied to map
// schemas parsed by this context.
func (c *Context) ObjectDefaults() *ObjectFactory { return c.objects }

// Register associates name with a validator instance. Registering a name twice
// overwrites the earlier entry.
func (c *Context) Register(name any, v Validator) error {
	if v == nil {
		return fmt.Errorf("valido: validator instance expected, nil given")
	}
	c.named[name] = v
	return nil
}

// RegisterFactory appends a factory to the chain. Factories registered later
// take priority, since the chain is scanned in reverse; avoiding ambiguous
// factories is the caller's responsibility.
func (c *Context) RegisterFactory(name string, f Factory) {
	c.factories = append(c.factories, factoryEntry{name: name, factory: f})
}

// Parse resolves schema into a Validator.
//
// Resolution order: a Validator instance is used directly; a func() Validator
// constructor is invoked; otherwise the schema is looked up as a registered
// name (constructors found there are instantiated once and memoized back into
// the registry); otherwise the factory chain is scanned in reverse registration
// order and the first non-nil result wins. The resolved validator is bound to
// this context (a no-op if already bound elsewhere) and its Resolve hook is
// invoked to compile nested schemas.
func (c *Context) Parse(schema any) (Validator, error) {
	var v Validator
	switch s := schema.(type) {
	case Validator:
		v = s
	case func() Validator:
		v = s()
	default:
		v = c.lookup(schema)
	}
	if v == nil {
		return nil, schemaErrorf("%s cannot be parsed as a validator", c.Repr(schema))
	}
	v.Bind(c)
	if err := v.Resolve(); err != nil {
		return nil, err
	}
	return v, nil
}

// MustParse is Parse, panicking on SchemaError. Intended for statically known
// schemas.
func (c *Context) MustParse(schema any) Validator {
	v, err := c.Parse(schema)
	if err != nil {
		panic(err)
	}
	return v
}

func (c *Context) lookup(schema any) Validator {
	if isHashable(schema) {
		if entry, ok := c.named[schema]; ok {
			switch e := entry.(type) {
			case Validator:
				return e
			case func() Validator:
				v := e()
				c.named[schema] = v
				return v
			}
		}
	}
	for i := len(c.factories) - 1; i >= 0; i-- {
		if v := c.factories[i].factory(schema); v != nil {
			return v
		}
	}
	return nil
}

// isHashable reports whether v can be used as a registry key. Schemas such as
// maps and slices are valid factory inputs but not lookup keys. The check is
// value-level: an interface-typed array is only hashable when its elements are.
func isHashable(v any) bool {
	if v == nil {
		return true
	}
	return reflect.ValueOf(v).Comparable()
}
