package valido_test

import (
	"reflect"
	"testing"

	valido "github.com/valido-go/valido"
)

func TestObjectRequiredAndOptional(t *testing.T) {
	c := valido.NewContext()
	v := mustParse(t, c, valido.Properties{
		"name":                "string",
		valido.Optional("age"): "integer",
	})
	got := mustValidate(t, v, map[string]any{"name": "bob"})
	if !reflect.DeepEqual(got, map[string]any{"name": "bob"}) {
		t.Fatalf("got %#v", got)
	}
	mustValidate(t, v, map[string]any{"name": "bob", "age": 42})
	mustReject(t, v, map[string]any{"age": 42})
	mustReject(t, v, map[string]any{"name": "bob", "age": "42"})
	mustReject(t, v, []any{})
	mustReject(t, v, nil)
}

func TestObjectMissingRequiredSorted(t *testing.T) {
	c := valido.NewContext()
	v := mustParse(t, c, valido.Properties{
		"b": "integer",
		"a": "integer",
		"c": "integer",
	})
	ve := mustReject(t, v, map[string]any{"b": 1})
	if want := `missing required properties: ["a", "c"]`; ve.Message() != want {
		t.Fatalf("got %q, want %q", ve.Message(), want)
	}
}

func TestObjectOptionalDefault(t *testing.T) {
	c := valido.NewContext()
	v := mustParse(t, c, valido.Properties{
		valido.Optional("retries").Default(3): "integer",
	})
	got := mustValidate(t, v, map[string]any{}).(map[string]any)
	if got["retries"] != 3 {
		t.Fatalf("got %#v", got)
	}
	got = mustValidate(t, v, map[string]any{"retries": 5}).(map[string]any)
	if got["retries"] != 5 {
		t.Fatalf("got %#v", got)
	}
}

func TestObjectOptionalDefaultCallable(t *testing.T) {
	c := valido.NewContext()
	calls := 0
	v := mustParse(t, c, valido.Properties{
		valido.Optional("seq").Default(func() any { calls++; return calls }): "integer",
	})
	got := mustValidate(t, v, map[string]any{}).(map[string]any)
	if got["seq"] != 1 {
		t.Fatalf("got %#v", got)
	}
	got = mustValidate(t, v, map[string]any{}).(map[string]any)
	if got["seq"] != 2 {
		t.Fatalf("callable default must be invoked per adaptation, got %#v", got)
	}
}

func TestObjectAdditionalFalse(t *testing.T) {
	c := valido.NewContext()
	v := mustParse(t, c, valido.Object(valido.Properties{"a": "integer"}).Additional(false))
	mustValidate(t, v, map[string]any{"a": 1})
	ve := mustReject(t, v, map[string]any{"a": 1, "x": 2, "y": 3})
	if want := `unexpected properties: ["x", "y"]`; ve.Message() != want {
		t.Fatalf("got %q, want %q", ve.Message(), want)
	}
}

func TestObjectAdditionalRemove(t *testing.T) {
	c := valido.NewContext()
	v := mustParse(t, c, valido.Object(valido.Properties{"a": "integer"}).Additional(valido.Remove))
	got := mustValidate(t, v, map[string]any{"a": 1, "x": 2})
	if !reflect.DeepEqual(got, map[string]any{"a": 1}) {
		t.Fatalf("got %#v", got)
	}
}

func TestObjectAdditionalSchema(t *testing.T) {
	c := valido.NewContext()
	v := mustParse(t, c, valido.Object(valido.Properties{"a": "integer"}).Additional("string"))
	mustValidate(t, v, map[string]any{"a": 1, "x": "two"})
	ve := mustReject(t, v, map[string]any{"a": 1, "x": 2})
	want := `Invalid value 2 (int): must be string (at x)`
	if got := ve.ToText(); got != want {
		t.Fatalf("got  %q\nwant %q", got, want)
	}
}

func TestObjectContextDefaultAdditional(t *testing.T) {
	c := valido.NewContext()
	c.ObjectDefaults().AdditionalProperties = false
	v := mustParse(t, c, valido.Properties{"a": "integer"})
	mustReject(t, v, map[string]any{"a": 1, "x": 2})
}

func TestObjectIgnoreOptionalErrors(t *testing.T) {
	c := valido.NewContext()
	v := mustParse(t, c, valido.Object(valido.Properties{
		"name":                "string",
		valido.Optional("age"): "integer",
	}).IgnoreOptionalErrors(true))
	got := mustValidate(t, v, map[string]any{"name": "bob", "age": "old"})
	if !reflect.DeepEqual(got, map[string]any{"name": "bob"}) {
		t.Fatalf("got %#v", got)
	}
	// Required properties still reject.
	mustReject(t, v, map[string]any{"name": 1, "age": 2})
}

func TestObjectPropertyRemoval(t *testing.T) {
	c := valido.NewContext()
	v := mustParse(t, c, valido.Properties{
		valido.Optional("secret"): valido.AdaptBy(func(any) (any, error) { return valido.Remove, nil }),
		"name":                    "string",
	})
	got := mustValidate(t, v, map[string]any{"name": "bob", "secret": "hunter2"})
	if !reflect.DeepEqual(got, map[string]any{"name": "bob"}) {
		t.Fatalf("got %#v", got)
	}
}

func TestObjectDoesNotMutateInput(t *testing.T) {
	c := valido.NewContext()
	v := mustParse(t, c, valido.Properties{
		"n": valido.AdaptTo(reflect.TypeOf(0)),
	})
	in := map[string]any{"n": "7"}
	got := mustValidate(t, v, in).(map[string]any)
	if got["n"] != 7 {
		t.Fatalf("got %#v", got)
	}
	if in["n"] != "7" {
		t.Fatalf("input mutated: %#v", in)
	}
}

func TestMapping(t *testing.T) {
	c := valido.NewContext()
	v := mustParse(t, c, valido.Mapping("string", "integer"))
	got := mustValidate(t, v, map[string]any{"a": 1, "b": 2})
	if !reflect.DeepEqual(got, map[string]any{"a": 1, "b": 2}) {
		t.Fatalf("got %#v", got)
	}
	ve := mustReject(t, v, map[string]any{"a": "one"})
	want := `Invalid value "one" (string): must be integer (at a)`
	if got := ve.ToText(); got != want {
		t.Fatalf("got  %q\nwant %q", got, want)
	}
	mustReject(t, v, []any{})
}

func TestMappingValidatesKeys(t *testing.T) {
	c := valido.NewContext()
	v := mustParse(t, c, valido.Mapping(valido.String().MinLength(2), nil))
	mustValidate(t, v, map[string]any{"ab": 1})
	mustReject(t, v, map[string]any{"a": 1})
}
