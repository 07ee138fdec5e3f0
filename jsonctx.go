package valido

import (
	"fmt"
	"reflect"

	"github.com/goccy/go-json"
)

// NewJSONContext returns a context whose diagnostics speak JSON: values render
// as JSON literals and type names follow the JSON data model (null, boolean,
// integer, number, string, array, object).
func NewJSONContext() *Context {
	c := NewContext()
	c.SetRepr(jsonRepr)
	tn := c.TypeNames
	tn.SetNameForTypes("null", nil)
	tn.SetNameForKinds("boolean", reflect.Bool)
	tn.SetNameForKinds("integer", integerKinds...)
	tn.SetNameForKinds("number", reflect.Float32, reflect.Float64)
	tn.SetNameForKinds("string", reflect.String)
	tn.SetNameForKinds("array", reflect.Slice, reflect.Array)
	tn.SetNameForKinds("object", reflect.Map)
	return c
}

// jsonRepr renders a value as its JSON literal, falling back to the %v verb
// for values JSON cannot encode.
func jsonRepr(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
