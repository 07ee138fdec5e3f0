package valido

import (
	"errors"
	"strings"
)

// composite holds child validators constructed from raw schemas; the schemas
// are consumed on first Resolve and discarded so they cannot be re-resolved.
type composite struct {
	base
	schemas    []any
	validators []Validator
}

func (cmp *composite) Resolve() error {
	if cmp.schemas == nil {
		return nil
	}
	schemas := cmp.schemas
	cmp.schemas = nil
	cmp.validators = make([]Validator, 0, len(schemas))
	for _, s := range schemas {
		v, err := cmp.ctx.Parse(s)
		if err != nil {
			return err
		}
		cmp.validators = append(cmp.validators, v)
	}
	return nil
}

func (cmp *composite) joinNames(sep string) string {
	names := make([]string, len(cmp.validators))
	for i, v := range cmp.validators {
		names[i] = v.HumanizedName()
	}
	return strings.Join(names, sep)
}

type anyOfValidator struct {
	composite
}

// AnyOf accepts values accepted by any of the given schemas, trying them in
// declaration order; the first successful adaptation wins.
func AnyOf(schemas ...any) Validator {
	return &anyOfValidator{composite{schemas: schemas}}
}

func (a *anyOfValidator) Validate(value any) (any, error) {
	msgs := make([]string, 0, len(a.validators))
	for _, v := range a.validators {
		out, err := v.Validate(value)
		if err == nil {
			return out, nil
		}
		var ve *ValidationError
		if !errors.As(err, &ve) {
			return nil, err
		}
		msgs = append(msgs, ve.Message())
	}
	return nil, a.invalid(strings.Join(msgs, " or "), value)
}

func (a *anyOfValidator) HumanizedName() string { return a.joinNames(" or ") }

type allOfValidator struct {
	composite
}

// AllOf accepts values accepted by all of the given schemas. Every child
// validates the original input value; the adaptation of the last child wins,
// so cheap checks can run first and an adapting check last.
func AllOf(schemas ...any) Validator {
	return &allOfValidator{composite{schemas: schemas}}
}

func (a *allOfValidator) Validate(value any) (any, error) {
	result := value
	for _, v := range a.validators {
		out, err := v.Validate(value)
		if err != nil {
			return nil, err
		}
		result = out
	}
	return result, nil
}

func (a *allOfValidator) HumanizedName() string { return a.joinNames(" and ") }

type chainOfValidator struct {
	composite
}

// ChainOf pipes a value through the given schemas in order, each child
// receiving the previous child's output.
func ChainOf(schemas ...any) Validator {
	return &chainOfValidator{composite{schemas: schemas}}
}

func (c *chainOfValidator) Validate(value any) (any, error) {
	for _, v := range c.validators {
		out, err := v.Validate(value)
		if err != nil {
			return nil, err
		}
		value = out
	}
	return value, nil
}

func (c *chainOfValidator) HumanizedName() string { return c.joinNames(" chained to ") }

type noneValidator struct {
	base
	def any
}

// NoneValue accepts only nil, adapting it to def. def may be a zero-argument
// func() any, in which case nil adapts to def().
func NoneValue(def any) Validator {
	return &noneValidator{def: def}
}

func (n *noneValidator) Validate(value any) (any, error) {
	if value != nil {
		return nil, n.mustBe(n.HumanizedName(), value)
	}
	return resolveDefault(n.def), nil
}

func (n *noneValidator) HumanizedName() string { return n.typeNames().NameForType(nil) }

type nullableValidator struct {
	base
	schema    any
	def       any
	validator Validator
	resolved  bool
}

// Nullable accepts nil in addition to whatever schema accepts; nil is adapted
// to the optional default (or its result, when callable).
func Nullable(schema any, def ...any) Validator {
	n := &nullableValidator{schema: schema}
	if len(def) > 0 {
		n.def = def[0]
	}
	return n
}

func (n *nullableValidator) Resolve() error {
	if n.resolved {
		return nil
	}
	inner, err := n.ctx.Parse(n.schema)
	if err != nil {
		return err
	}
	none, err := n.ctx.Parse(NoneValue(n.def))
	if err != nil {
		return err
	}
	// Flatten into an existing disjunction so humanized names read as a single
	// flat "a or b or null" instead of nested ones.
	if ao, ok := inner.(*anyOfValidator); ok {
		ao.validators = append(ao.validators, none)
		n.validator = ao
	} else {
		n.validator, err = n.ctx.Parse(AnyOf(inner, none))
		if err != nil {
			return err
		}
	}
	n.schema = nil
	n.resolved = true
	return nil
}

func (n *nullableValidator) Validate(value any) (any, error) {
	return n.validator.Validate(value)
}

func (n *nullableValidator) HumanizedName() string { return n.validator.HumanizedName() }
