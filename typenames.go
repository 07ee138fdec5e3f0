package valido

import (
	"reflect"
	"strings"
)

// TypeNames associates native types with human-friendly display names. It is
// consumed only when rendering diagnostics; it never affects what a validator
// accepts or rejects.
type TypeNames struct {
	typeNames map[reflect.Type]string
	kindNames map[reflect.Kind]string
}

func NewTypeNames() *TypeNames {
	return &TypeNames{
		typeNames: make(map[reflect.Type]string),
		kindNames: make(map[reflect.Kind]string),
	}
}

// SetNameForTypes associates one or more types with an alternative name. A nil
// type stands for the nil value.
func (tn *TypeNames) SetNameForTypes(name string, types ...reflect.Type) {
	for _, t := range types {
		tn.typeNames[t] = name
	}
}

// SetNameForKinds associates one or more reflect kinds with an alternative
// name. Exact type names registered via SetNameForTypes take precedence.
func (tn *TypeNames) SetNameForKinds(name string, kinds ...reflect.Kind) {
	for _, k := range kinds {
		tn.kindNames[k] = name
	}
}

// NameForType returns the display name for t. Unregistered types fall back to
// their Go name; unnamed containers fall back to "mapping" and "sequence".
func (tn *TypeNames) NameForType(t reflect.Type) string {
	if t == nil {
		if name, ok := tn.typeNames[nil]; ok {
			return name
		}
		return "nil"
	}
	if name, ok := tn.typeNames[t]; ok {
		return name
	}
	if name, ok := tn.kindNames[t.Kind()]; ok {
		return name
	}
	switch t.Kind() {
	case reflect.Map:
		return "mapping"
	case reflect.Slice, reflect.Array:
		return "sequence"
	}
	return t.String()
}

// NameForValue returns the display name for the type of v.
func (tn *TypeNames) NameForValue(v any) string {
	if v == nil {
		return tn.NameForType(nil)
	}
	return tn.NameForType(reflect.TypeOf(v))
}

// NameForKind returns the display name registered for k, falling back to the
// container defaults and then to the kind's own name.
func (tn *TypeNames) NameForKind(k reflect.Kind) string {
	if name, ok := tn.kindNames[k]; ok {
		return name
	}
	switch k {
	case reflect.Map:
		return "mapping"
	case reflect.Slice, reflect.Array:
		return "sequence"
	}
	return k.String()
}

// FormatTypes renders a list of types as "a, b or c".
func (tn *TypeNames) FormatTypes(types ...reflect.Type) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = tn.NameForType(t)
	}
	if len(names) == 0 {
		return ""
	}
	if len(names) == 1 {
		return names[0]
	}
	return strings.Join(names[:len(names)-1], ", ") + " or " + names[len(names)-1]
}
