package valido

import (
	"fmt"
	"reflect"
	"strconv"
)

type adaptByValidator struct {
	base
	adaptor func(any) (any, error)
	traps   Traps
}

// AdaptBy adapts a value using the adaptor callable. Adaptor errors are
// wrapped into ValidationErrors carrying the error's message when trapped;
// untrapped errors propagate unmodified.
func AdaptBy(adaptor func(any) (any, error), traps ...Traps) Validator {
	if adaptor == nil {
		panic("valido: AdaptBy requires a non-nil adaptor")
	}
	a := &adaptByValidator{adaptor: adaptor, traps: pickTraps(traps)}
	a.name = funcName(adaptor)
	return a
}

func (a *adaptByValidator) Validate(value any) (any, error) {
	out, err := a.adaptor(value)
	if err != nil {
		if !a.traps(err) {
			return nil, err
		}
		return nil, a.invalid(err.Error(), value)
	}
	return out, nil
}

func (a *adaptByValidator) HumanizedName() string { return a.name }

// AdaptToValidator adapts values to a target type, leaving values that already
// are of the target type (or share its underlying type, unless Exact)
// untouched to avoid needless reconstruction.
type AdaptToValidator struct {
	base
	target reflect.Type
	traps  Traps
	exact  bool
}

// AdaptTo adapts a value to target. A nil target is a construction-time error
// and panics.
func AdaptTo(target reflect.Type, traps ...Traps) *AdaptToValidator {
	if target == nil {
		panic("valido: AdaptTo requires a non-nil target type")
	}
	a := &AdaptToValidator{target: target, traps: pickTraps(traps)}
	a.name = target.String()
	return a
}

// Exact requires the value's type to equal the target exactly for the
// pass-through; defined types with the same underlying type get re-adapted.
func (a *AdaptToValidator) Exact() *AdaptToValidator {
	a.exact = true
	return a
}

func (a *AdaptToValidator) Validate(value any) (any, error) {
	if value != nil {
		t := reflect.TypeOf(value)
		if t == a.target {
			return value, nil
		}
		if !a.exact && t.Kind() == a.target.Kind() &&
			t.ConvertibleTo(a.target) && a.target.ConvertibleTo(t) {
			return value, nil
		}
	}
	out, err := coerceTo(value, a.target)
	if err != nil {
		if !a.traps(err) {
			return nil, err
		}
		return nil, a.invalid(err.Error(), value)
	}
	return out, nil
}

func (a *AdaptToValidator) HumanizedName() string { return a.name }

// coerceTo converts value to target, parsing strings via strconv and
// converting numerics via reflection.
func coerceTo(value any, target reflect.Type) (any, error) {
	if value == nil {
		return nil, fmt.Errorf("cannot adapt nil to %s", target)
	}
	rv := reflect.ValueOf(value)
	switch target.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		// Parse at the target's width so out-of-range strings fail instead of
		// wrapping in the final conversion.
		if s, ok := value.(string); ok {
			i, err := strconv.ParseInt(s, 10, target.Bits())
			if err != nil {
				return nil, err
			}
			rv = reflect.ValueOf(i)
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if s, ok := value.(string); ok {
			u, err := strconv.ParseUint(s, 10, target.Bits())
			if err != nil {
				return nil, err
			}
			rv = reflect.ValueOf(u)
		}
	case reflect.Float32, reflect.Float64:
		if s, ok := value.(string); ok {
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, err
			}
			rv = reflect.ValueOf(f)
		}
	case reflect.Bool:
		if s, ok := value.(string); ok {
			b, err := strconv.ParseBool(s)
			if err != nil {
				return nil, err
			}
			rv = reflect.ValueOf(b)
		}
	case reflect.String:
		// Numeric-to-string must render digits, not code points, so anything
		// that is not already string-kinded goes through fmt.
		if b, ok := value.([]byte); ok {
			rv = reflect.ValueOf(string(b))
		} else if rv.Kind() != reflect.String {
			rv = reflect.ValueOf(fmt.Sprint(value))
		}
	}
	if !rv.Type().ConvertibleTo(target) {
		return nil, fmt.Errorf("cannot adapt %s to %s", rv.Type(), target)
	}
	return rv.Convert(target).Interface(), nil
}
