package valido

import (
	"errors"
	"fmt"
	"reflect"
	"runtime"
	"strings"
	"time"
)

// Traps decides whether an error raised by an adaptor or predicate is
// converted into a ValidationError (trapped) or propagated unchanged. The
// escape is deliberate: anything outside the trapped set is a programmer or
// environment error.
type Traps func(err error) bool

// TrapOnly traps errors matching one of the targets via errors.Is.
func TrapOnly(targets ...error) Traps {
	return func(err error) bool {
		for _, t := range targets {
			if errors.Is(err, t) {
				return true
			}
		}
		return false
	}
}

// TrapNothing propagates every adaptor/predicate error unchanged.
func TrapNothing() Traps {
	return func(error) bool { return false }
}

func trapAll(error) bool { return true }

func pickTraps(traps []Traps) Traps {
	if len(traps) > 0 && traps[0] != nil {
		return traps[0]
	}
	return trapAll
}

// RangeValidator rejects values outside [min, max]; either bound may be
// absent. An inner schema, when given, validates and adapts the value first.
type RangeValidator struct {
	base
	schema   any
	inner    Validator
	resolved bool
	min      any
	max      any
}

// Range builds a range validator over an optional inner schema (nil for none).
func Range(schema any) *RangeValidator {
	return &RangeValidator{schema: schema}
}

// Min rejects values less than v.
func (r *RangeValidator) Min(v any) *RangeValidator {
	r.min = v
	return r
}

// Max rejects values larger than v.
func (r *RangeValidator) Max(v any) *RangeValidator {
	r.max = v
	return r
}

func (r *RangeValidator) Resolve() error {
	if r.resolved {
		return nil
	}
	if r.schema != nil {
		v, err := r.ctx.Parse(r.schema)
		if err != nil {
			return err
		}
		r.inner = v
		r.schema = nil
	}
	r.resolved = true
	return nil
}

func (r *RangeValidator) Validate(value any) (any, error) {
	if r.inner != nil {
		out, err := r.inner.Validate(value)
		if err != nil {
			return nil, err
		}
		value = out
	}
	if r.min != nil {
		c, err := compareValues(value, r.min)
		if err != nil {
			return nil, err
		}
		if c < 0 {
			return nil, r.invalid(fmt.Sprintf("must not be less than %v", r.min), value)
		}
	}
	if r.max != nil {
		c, err := compareValues(value, r.max)
		if err != nil {
			return nil, err
		}
		if c > 0 {
			return nil, r.invalid(fmt.Sprintf("must not be larger than %v", r.max), value)
		}
	}
	return value, nil
}

func (r *RangeValidator) HumanizedName() string {
	if r.inner != nil {
		return r.inner.HumanizedName()
	}
	return "range"
}

// compareValues orders two values of compatible kinds (cross-numeric, string,
// time.Time). Incomparable pairs yield a plain error that propagates past
// IsValid, mirroring the trap-free escape of Condition and AdaptBy.
func compareValues(a, b any) (int, error) {
	if af, ok := toFloat(a); ok {
		if bf, ok := toFloat(b); ok {
			switch {
			case af < bf:
				return -1, nil
			case af > bf:
				return 1, nil
			}
			return 0, nil
		}
	}
	if as, ok := a.(string); ok {
		if bs, ok := b.(string); ok {
			return strings.Compare(as, bs), nil
		}
	}
	if at, ok := a.(time.Time); ok {
		if bt, ok := b.(time.Time); ok {
			return at.Compare(bt), nil
		}
	}
	return 0, fmt.Errorf("valido: cannot compare %T with %T", a, b)
}

func toFloat(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

type enumValidator struct {
	base
	values []any
	set    map[any]bool
}

// Enum accepts only the given values. Hashable values get a set fast path;
// unhashable ones (maps, slices) fall back to a deep-equality scan.
func Enum(values ...any) Validator {
	e := &enumValidator{values: values}
	hashable := true
	for _, v := range values {
		if !isHashable(v) {
			hashable = false
			break
		}
	}
	if hashable {
		e.set = make(map[any]bool, len(values))
		for _, v := range values {
			e.set[v] = true
		}
	}
	return e
}

func (e *enumValidator) Validate(value any) (any, error) {
	if e.set != nil && isHashable(value) {
		if e.set[value] {
			return value, nil
		}
	} else {
		for _, v := range e.values {
			if reflect.DeepEqual(v, value) {
				return value, nil
			}
		}
	}
	return nil, e.mustBe(e.HumanizedName(), value)
}

func (e *enumValidator) HumanizedName() string {
	reprs := make([]string, len(e.values))
	for i, v := range e.values {
		reprs[i] = e.reprValue(v)
	}
	return "one of {" + strings.Join(reprs, ", ") + "}"
}

// Predicate decides whether a value is acceptable. A returned error is
// subject to the validator's trap policy.
type Predicate func(value any) (bool, error)

// ConditionValidator accepts values satisfying a predicate.
type ConditionValidator struct {
	base
	predicate Predicate
	traps     Traps
}

// Condition accepts values for which pred returns true. Predicate errors are
// trapped into rejections by default; pass TrapOnly/TrapNothing to narrow the
// policy. A nil predicate is a construction-time error and panics.
func Condition(pred Predicate, traps ...Traps) *ConditionValidator {
	if pred == nil {
		panic("valido: Condition requires a non-nil predicate")
	}
	c := &ConditionValidator{predicate: pred, traps: pickTraps(traps)}
	c.name = funcName(pred)
	return c
}

// Named sets the display name; useful for anonymous predicates.
func (c *ConditionValidator) Named(name string) *ConditionValidator {
	c.name = name
	return c
}

func (c *ConditionValidator) Validate(value any) (any, error) {
	ok, err := c.predicate(value)
	if err != nil {
		if !c.traps(err) {
			return nil, err
		}
		ok = false
	}
	if !ok {
		return nil, c.invalid("must satisfy predicate "+c.name, value)
	}
	return value, nil
}

func (c *ConditionValidator) HumanizedName() string { return c.name }

// conditionFactory parses plain bool predicates as Condition validators.
func conditionFactory(schema any) Validator {
	switch fn := schema.(type) {
	case Predicate:
		return Condition(fn)
	case func(any) (bool, error):
		return Condition(fn)
	case func(any) bool:
		return Condition(func(v any) (bool, error) { return fn(v), nil })
	}
	return nil
}

func funcName(fn any) string {
	pc := reflect.ValueOf(fn).Pointer()
	f := runtime.FuncForPC(pc)
	if f == nil {
		return "predicate"
	}
	name := f.Name()
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSuffix(name, "-fm")
}
