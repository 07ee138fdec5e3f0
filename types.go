package valido

import (
	"reflect"
	"time"
)

// TypeValidator accepts values whose type matches one of the accept types and
// none of the reject types. Interface types match by implementation, concrete
// types by assignability.
type TypeValidator struct {
	base
	accept []reflect.Type
	reject []reflect.Type
}

// Type builds a validator over native types, e.g.
// Type(reflect.TypeOf(time.Time{})).
func Type(acceptTypes ...reflect.Type) *TypeValidator {
	return &TypeValidator{accept: acceptTypes}
}

// Rejecting excludes the given types even when an accept type matches.
func (t *TypeValidator) Rejecting(types ...reflect.Type) *TypeValidator {
	t.reject = append(t.reject, types...)
	return t
}

// Named sets the display name used in diagnostics.
func (t *TypeValidator) Named(name string) *TypeValidator {
	t.name = name
	return t
}

func (t *TypeValidator) Validate(value any) (any, error) {
	vt := reflect.TypeOf(value)
	if !matchesAny(vt, t.accept) || matchesAny(vt, t.reject) {
		return nil, t.mustBe(t.HumanizedName(), value)
	}
	return value, nil
}

func (t *TypeValidator) HumanizedName() string {
	if t.name != "" {
		return t.name
	}
	return t.typeNames().FormatTypes(t.accept...)
}

func matchesAny(t reflect.Type, targets []reflect.Type) bool {
	if t == nil {
		return false
	}
	for _, target := range targets {
		if target == nil {
			continue
		}
		if target.Kind() == reflect.Interface {
			if t.Implements(target) {
				return true
			}
		} else if t.AssignableTo(target) {
			return true
		}
	}
	return false
}

// typeFactory parses a reflect.Type schema as a Type validator.
func typeFactory(schema any) Validator {
	if t, ok := schema.(reflect.Type); ok {
		return Type(t)
	}
	return nil
}

// kindValidator accepts values of a fixed set of reflect kinds. The built-in
// boolean/integer/number/string validators are kind-based so that defined
// types with the same underlying kind validate too.
type kindValidator struct {
	base
	kinds map[reflect.Kind]bool
}

func newKindValidator(name string, kinds ...reflect.Kind) *kindValidator {
	v := &kindValidator{kinds: make(map[reflect.Kind]bool, len(kinds))}
	v.name = name
	for _, k := range kinds {
		v.kinds[k] = true
	}
	return v
}

func (k *kindValidator) Validate(value any) (any, error) {
	if value == nil || !k.kinds[reflect.TypeOf(value).Kind()] {
		return nil, k.mustBe(k.name, value)
	}
	return value, nil
}

func (k *kindValidator) HumanizedName() string { return k.name }

var integerKinds = []reflect.Kind{
	reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
	reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
}

// Boolean accepts bool values only.
func Boolean() Validator { return newKindValidator("boolean", reflect.Bool) }

// Integer accepts values of any integer kind.
func Integer() Validator { return newKindValidator("integer", integerKinds...) }

// Number accepts values of any integer or float kind.
func Number() Validator {
	kinds := append([]reflect.Kind{reflect.Float32, reflect.Float64}, integerKinds...)
	return newKindValidator("number", kinds...)
}

// Datetime accepts time.Time values.
func Datetime() Validator {
	return Type(reflect.TypeOf(time.Time{})).Named("datetime")
}

// Duration accepts time.Duration values.
func Duration() Validator {
	return Type(reflect.TypeOf(time.Duration(0))).Named("duration")
}
