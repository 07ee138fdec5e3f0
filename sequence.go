package valido

import (
	"errors"
	"fmt"
	"reflect"
)

// Tuple marks a schema as a fixed-arity heterogeneous sequence: each element
// is the schema of the corresponding position. A plain []any of length 0 or 1
// is a homogeneous sequence schema instead.
type Tuple []any

// sequenceValue unwraps slice and array values; strings are not sequences.
func sequenceValue(value any) (reflect.Value, bool) {
	if value == nil {
		return reflect.Value{}, false
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return rv, true
	}
	return reflect.Value{}, false
}

// rebuildSequence reproduces the input's concrete sequence type when every
// adapted item remains assignable to its element type, falling back to []any
// otherwise.
func rebuildSequence(t reflect.Type, items []any) any {
	elem := t.Elem()
	for _, item := range items {
		if item == nil {
			if !nilAssignable(elem) {
				return items
			}
			continue
		}
		if !reflect.TypeOf(item).AssignableTo(elem) {
			return items
		}
	}
	var out reflect.Value
	if t.Kind() == reflect.Array {
		out = reflect.New(t).Elem()
	} else {
		out = reflect.MakeSlice(t, len(items), len(items))
	}
	for i, item := range items {
		if item == nil {
			continue
		}
		out.Index(i).Set(reflect.ValueOf(item))
	}
	return out.Interface()
}

func nilAssignable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Interface, reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return true
	}
	return false
}

// HomogeneousSequenceValidator accepts variable-size sequences whose items all
// share one schema.
type HomogeneousSequenceValidator struct {
	base
	itemSchema any
	item       Validator
	resolved   bool
	minLength  int
	maxLength  int
}

// HomogeneousSequence accepts slices and arrays (but not strings), validating
// every item against itemSchema when one is given (nil for none).
func HomogeneousSequence(itemSchema any) *HomogeneousSequenceValidator {
	return &HomogeneousSequenceValidator{itemSchema: itemSchema, minLength: -1, maxLength: -1}
}

// MinLength rejects sequences with fewer than n elements.
func (h *HomogeneousSequenceValidator) MinLength(n int) *HomogeneousSequenceValidator {
	h.minLength = n
	return h
}

// MaxLength rejects sequences with more than n elements.
func (h *HomogeneousSequenceValidator) MaxLength(n int) *HomogeneousSequenceValidator {
	h.maxLength = n
	return h
}

func (h *HomogeneousSequenceValidator) Resolve() error {
	if h.resolved {
		return nil
	}
	if h.itemSchema != nil {
		v, err := h.ctx.Parse(h.itemSchema)
		if err != nil {
			return err
		}
		h.item = v
		h.itemSchema = nil
	}
	h.resolved = true
	return nil
}

func (h *HomogeneousSequenceValidator) Validate(value any) (any, error) {
	rv, ok := sequenceValue(value)
	if !ok {
		return nil, h.mustBe(h.sequenceName(), value)
	}
	n := rv.Len()
	if h.minLength >= 0 && n < h.minLength {
		return nil, h.invalid(fmt.Sprintf("must contain at least %d elements", h.minLength), value)
	}
	if h.maxLength >= 0 && n > h.maxLength {
		return nil, h.invalid(fmt.Sprintf("must contain at most %d elements", h.maxLength), value)
	}
	if h.item == nil {
		return value, nil
	}
	items := make([]any, n)
	for i := 0; i < n; i++ {
		adapted, err := h.item.Validate(rv.Index(i).Interface())
		if err != nil {
			var ve *ValidationError
			if errors.As(err, &ve) {
				return nil, ve.AddErrorPathItem(i)
			}
			return nil, err
		}
		items[i] = adapted
	}
	return rebuildSequence(rv.Type(), items), nil
}

func (h *HomogeneousSequenceValidator) HumanizedName() string { return h.sequenceName() }

// homogeneousSequenceFactory parses an empty or 1-element []any schema as a
// HomogeneousSequence validator.
func homogeneousSequenceFactory(schema any) Validator {
	if s, ok := schema.([]any); ok && len(s) <= 1 {
		if len(s) == 0 {
			return HomogeneousSequence(nil)
		}
		return HomogeneousSequence(s[0])
	}
	return nil
}

type heterogeneousSequenceValidator struct {
	composite
}

// HeterogeneousSequence accepts fixed-size sequences whose items validate
// positionally against the given schemas.
func HeterogeneousSequence(itemSchemas ...any) Validator {
	return &heterogeneousSequenceValidator{composite{schemas: itemSchemas}}
}

func (h *heterogeneousSequenceValidator) Validate(value any) (any, error) {
	rv, ok := sequenceValue(value)
	if !ok {
		return nil, h.mustBe(h.sequenceName(), value)
	}
	if rv.Len() != len(h.validators) {
		return nil, h.invalid(fmt.Sprintf("%d items expected, %d found", len(h.validators), rv.Len()), value)
	}
	items := make([]any, rv.Len())
	for i, v := range h.validators {
		adapted, err := v.Validate(rv.Index(i).Interface())
		if err != nil {
			var ve *ValidationError
			if errors.As(err, &ve) {
				return nil, ve.AddErrorPathItem(i)
			}
			return nil, err
		}
		items[i] = adapted
	}
	return rebuildSequence(rv.Type(), items), nil
}

func (h *heterogeneousSequenceValidator) HumanizedName() string { return h.sequenceName() }

// heterogeneousSequenceFactory parses a Tuple schema as a
// HeterogeneousSequence validator.
func heterogeneousSequenceFactory(schema any) Validator {
	if s, ok := schema.(Tuple); ok {
		return HeterogeneousSequence([]any(s)...)
	}
	return nil
}
