package valido_test

import (
	"errors"
	"fmt"
	"testing"

	valido "github.com/valido-go/valido"
)

func TestRange(t *testing.T) {
	c := valido.NewContext()
	v := mustParse(t, c, valido.Range("integer").Min(2).Max(10))
	mustValidate(t, v, 2)
	mustValidate(t, v, 10)
	ve := mustReject(t, v, 1)
	if want := "must not be less than 2"; ve.Message() != want {
		t.Fatalf("got %q, want %q", ve.Message(), want)
	}
	ve = mustReject(t, v, 11)
	if want := "must not be larger than 10"; ve.Message() != want {
		t.Fatalf("got %q, want %q", ve.Message(), want)
	}
	mustReject(t, v, "5")
}

func TestRangeWithoutInnerSchema(t *testing.T) {
	c := valido.NewContext()
	v := mustParse(t, c, valido.Range(nil).Min("b"))
	mustValidate(t, v, "c")
	mustReject(t, v, "a")
}

func TestRangeCrossNumericComparison(t *testing.T) {
	c := valido.NewContext()
	v := mustParse(t, c, valido.Range("number").Min(0.5))
	mustValidate(t, v, 1)
	mustReject(t, v, 0)
}

func TestRangeIncomparablePropagates(t *testing.T) {
	c := valido.NewContext()
	v := mustParse(t, c, valido.Range(nil).Min(2))
	_, err := v.Validate(struct{}{})
	if err == nil {
		t.Fatalf("expected error")
	}
	var ve *valido.ValidationError
	if errors.As(err, &ve) {
		t.Fatalf("incomparable values must not reject as ValidationError")
	}
}

func TestEnum(t *testing.T) {
	c := valido.NewContext()
	v := mustParse(t, c, valido.Enum(1, 2, "three"))
	mustValidate(t, v, 2)
	mustValidate(t, v, "three")
	ve := mustReject(t, v, 3)
	if want := `must be one of {1, 2, "three"}`; ve.Message() != want {
		t.Fatalf("got %q, want %q", ve.Message(), want)
	}
}

func TestEnumUnhashableValues(t *testing.T) {
	c := valido.NewContext()
	v := mustParse(t, c, valido.Enum([]any{1, 2}, map[string]any{"a": 1}))
	mustValidate(t, v, []any{1, 2})
	mustValidate(t, v, map[string]any{"a": 1})
	mustReject(t, v, []any{2, 1})
}

func TestEnumRuntimeIncomparableValues(t *testing.T) {
	c := valido.NewContext()

	// Candidate values that would panic under map hashing must use the scan.
	v := mustParse(t, c, valido.Enum(1, 2))
	mustReject(t, v, [2]any{[]int{1}, nil})

	// Same for enum members themselves.
	v = mustParse(t, c, valido.Enum(1, [2]any{[]int{1}, nil}))
	mustValidate(t, v, 1)
	mustValidate(t, v, [2]any{[]int{1}, nil})
	mustReject(t, v, 2)
}

func isEven(v any) (bool, error) {
	n, ok := v.(int)
	if !ok {
		return false, fmt.Errorf("not an int: %v", v)
	}
	return n%2 == 0, nil
}

func TestCondition(t *testing.T) {
	c := valido.NewContext()
	v := mustParse(t, c, valido.Condition(isEven))
	mustValidate(t, v, 4)
	ve := mustReject(t, v, 3)
	if want := "must satisfy predicate isEven"; ve.Message() != want {
		t.Fatalf("got %q, want %q", ve.Message(), want)
	}
	// Predicate errors are trapped into rejections by default.
	mustReject(t, v, "four")
}

func TestConditionFactory(t *testing.T) {
	c := valido.NewContext()
	v := mustParse(t, c, func(v any) bool { _, ok := v.(bool); return ok })
	mustValidate(t, v, true)
	mustReject(t, v, "true")
}

func TestConditionTrapOnly(t *testing.T) {
	sentinel := errors.New("sentinel")
	other := errors.New("other")
	c := valido.NewContext()

	v := mustParse(t, c, valido.Condition(func(any) (bool, error) {
		return false, sentinel
	}, valido.TrapOnly(sentinel)))
	mustReject(t, v, 1)

	v = mustParse(t, c, valido.Condition(func(any) (bool, error) {
		return false, other
	}, valido.TrapOnly(sentinel)))
	if _, err := v.Validate(1); !errors.Is(err, other) {
		t.Fatalf("untrapped error must propagate, got %v", err)
	}
}
