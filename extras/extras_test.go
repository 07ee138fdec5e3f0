package extras_test

import (
	"testing"

	valido "github.com/valido-go/valido"
	"github.com/valido-go/valido/extras"
)

func TestUUID(t *testing.T) {
	c := valido.NewContext()
	v := c.MustParse(extras.UUID())
	if _, err := v.Validate("6ba7b810-9dad-11d1-80b4-00c04fd430c8"); err != nil {
		t.Fatalf("valid uuid rejected: %v", err)
	}
	if valido.IsValid(v, "not-a-uuid") {
		t.Fatalf("invalid uuid accepted")
	}
	if valido.IsValid(v, 42) {
		t.Fatalf("non-string accepted")
	}
}

func TestEmail(t *testing.T) {
	c := valido.NewContext()
	v := c.MustParse(extras.Email())
	if !valido.IsValid(v, "bob@example.com") {
		t.Fatalf("valid email rejected")
	}
	for _, bad := range []any{"bob", "bob@", "@example.com", 7} {
		if valido.IsValid(v, bad) {
			t.Fatalf("%v accepted", bad)
		}
	}
}

func TestExprCondition(t *testing.T) {
	c := valido.NewContext()
	v := c.MustParse(extras.ExprCondition(`value > 0 && value < 100`))
	if !valido.IsValid(v, 50) {
		t.Fatalf("50 rejected")
	}
	if valido.IsValid(v, -1) {
		t.Fatalf("-1 accepted")
	}
	if valido.IsValid(v, "fifty") {
		t.Fatalf("non-number accepted")
	}
}

func TestExprConditionBadSourcePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for malformed expression")
		}
	}()
	extras.ExprCondition(`value >`)
}

func TestRegisterFormats(t *testing.T) {
	c := valido.NewContext()
	extras.RegisterFormats(c)
	v := c.MustParse(valido.Properties{
		"id":    "uuid",
		"email": "email",
	})
	ok := map[string]any{
		"id":    "6ba7b810-9dad-11d1-80b4-00c04fd430c8",
		"email": "bob@example.com",
	}
	if !valido.IsValid(v, ok) {
		t.Fatalf("valid object rejected")
	}
	if valido.IsValid(v, map[string]any{"id": "nope", "email": "bob@example.com"}) {
		t.Fatalf("invalid id accepted")
	}
}
