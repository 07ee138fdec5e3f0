package valido

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// Properties maps property keys to their value schemas. Plain keys are
// required; keys wrapped with Optional may be absent.
type Properties map[any]any

// OptionalKey marks an object property as optional, with an optional default
// applied when the property is absent.
type OptionalKey struct {
	Key        string
	def        any
	hasDefault bool
}

// Optional wraps a property key so its absence is not an error.
func Optional(key string) *OptionalKey {
	return &OptionalKey{Key: key}
}

// Default sets the value adapted in when the property is absent. def may be a
// zero-argument func() any, invoked per adaptation so mutable defaults are not
// shared.
func (o *OptionalKey) Default(def any) *OptionalKey {
	o.def = def
	o.hasDefault = true
	return o
}

type removeType struct{}

// Remove is a sentinel adaptation result: a property adapted to Remove is
// dropped from the output object. It also serves as an Additional policy that
// silently drops unknown properties.
var Remove removeType

type objectProperty struct {
	key        any
	schema     any
	validator  Validator
	optional   bool
	def        any
	hasDefault bool
}

// ObjectValidator accepts mappings with a fixed set of known properties.
type ObjectValidator struct {
	base
	props      []objectProperty
	additional any
	addlV      Validator
	ignoreOpt  bool
	resolved   bool
}

// Object accepts mappings whose properties validate against the given schemas.
// Keys wrapped with Optional may be absent; unknown properties are accepted
// unless Additional says otherwise.
func Object(properties Properties) *ObjectValidator {
	o := &ObjectValidator{additional: true}
	for key, schema := range properties {
		p := objectProperty{key: key, schema: schema}
		if opt, ok := key.(*OptionalKey); ok {
			p.key = opt.Key
			p.optional = true
			p.def = opt.def
			p.hasDefault = opt.hasDefault
		}
		o.props = append(o.props, p)
	}
	// Map iteration order is random; fix the property order so diagnostics and
	// adaptation sequence are reproducible.
	sort.Slice(o.props, func(i, j int) bool {
		return fmt.Sprint(o.props[i].key) < fmt.Sprint(o.props[j].key)
	})
	return o
}

// Additional sets the policy for properties not named in the schema: true
// keeps them as-is, false rejects them, Remove drops them, and any other
// schema validates and adapts their values.
func (o *ObjectValidator) Additional(policy any) *ObjectValidator {
	o.additional = policy
	return o
}

// IgnoreOptionalErrors drops optional properties whose values fail validation
// instead of rejecting the whole object.
func (o *ObjectValidator) IgnoreOptionalErrors(ignore bool) *ObjectValidator {
	o.ignoreOpt = ignore
	return o
}

func (o *ObjectValidator) Resolve() error {
	if o.resolved {
		return nil
	}
	for i := range o.props {
		v, err := o.ctx.Parse(o.props[i].schema)
		if err != nil {
			return err
		}
		o.props[i].validator = v
		o.props[i].schema = nil
	}
	switch o.additional.(type) {
	case nil, bool, removeType:
	default:
		v, err := o.ctx.Parse(o.additional)
		if err != nil {
			return err
		}
		o.addlV = v
	}
	o.resolved = true
	return nil
}

func (o *ObjectValidator) Validate(value any) (any, error) {
	rv, ok := mappingValue(value)
	if !ok {
		return nil, o.mustBe(o.mappingName(), value)
	}

	out := copyMapping(rv)
	known := make(map[any]bool, len(o.props))

	// Missing required properties reject before any property value is checked.
	var missing []string
	for _, p := range o.props {
		known[p.key] = true
		if _, present := mapGet(rv, p.key); !present && !p.optional {
			missing = append(missing, o.reprValue(p.key))
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, o.invalid(
			"missing required properties: ["+strings.Join(missing, ", ")+"]", value)
	}

	for _, p := range o.props {
		got, present := mapGet(rv, p.key)
		if !present {
			if p.hasDefault {
				out[p.key] = resolveDefault(p.def)
			}
			continue
		}
		adapted, err := p.validator.Validate(got)
		if err != nil {
			var ve *ValidationError
			if !errors.As(err, &ve) {
				return nil, err
			}
			if p.optional && o.ignoreOpt {
				delete(out, p.key)
				continue
			}
			return nil, ve.AddErrorPathItem(p.key)
		}
		if _, removed := adapted.(removeType); removed {
			delete(out, p.key)
		} else {
			out[p.key] = adapted
		}
	}

	if err := o.applyAdditional(rv, out, known, value); err != nil {
		return nil, err
	}
	return rebuildMapping(rv.Type(), out), nil
}

func (o *ObjectValidator) applyAdditional(rv reflect.Value, out map[any]any, known map[any]bool, value any) error {
	var unknown []any
	iter := rv.MapRange()
	for iter.Next() {
		k := iter.Key().Interface()
		if !known[k] {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	switch policy := o.additional.(type) {
	case nil:
		return nil
	case bool:
		if policy {
			return nil
		}
		reprs := make([]string, len(unknown))
		for i, k := range unknown {
			reprs[i] = o.reprValue(k)
		}
		sort.Strings(reprs)
		return o.invalid("unexpected properties: ["+strings.Join(reprs, ", ")+"]", value)
	case removeType:
		for _, k := range unknown {
			delete(out, k)
		}
		return nil
	}
	for _, k := range unknown {
		adapted, err := o.addlV.Validate(out[k])
		if err != nil {
			var ve *ValidationError
			if errors.As(err, &ve) {
				return ve.AddErrorPathItem(k)
			}
			return err
		}
		if _, removed := adapted.(removeType); removed {
			delete(out, k)
		} else {
			out[k] = adapted
		}
	}
	return nil
}

func (o *ObjectValidator) HumanizedName() string { return o.mappingName() }

// ObjectFactory parses map schemas into Object validators and carries the
// context-wide defaults applied to them.
type ObjectFactory struct {
	// AdditionalProperties is the default unknown-property policy: true, false,
	// Remove, or a schema.
	AdditionalProperties any

	// IgnoreOptionalPropertyErrors drops failing optional properties instead of
	// rejecting the object.
	IgnoreOptionalPropertyErrors bool
}

// Parse recognizes Properties and plain map schemas.
func (f *ObjectFactory) Parse(schema any) Validator {
	var props Properties
	switch s := schema.(type) {
	case Properties:
		props = s
	case map[any]any:
		props = Properties(s)
	case map[string]any:
		props = make(Properties, len(s))
		for k, v := range s {
			props[k] = v
		}
	default:
		return nil
	}
	return Object(props).
		Additional(f.AdditionalProperties).
		IgnoreOptionalErrors(f.IgnoreOptionalPropertyErrors)
}

// MappingValidator accepts arbitrary mappings, optionally validating every key
// and value against uniform schemas.
type MappingValidator struct {
	base
	keySchema   any
	valueSchema any
	keyV        Validator
	valueV      Validator
	resolved    bool
}

// Mapping accepts map values. keySchema and valueSchema (either may be nil)
// validate and adapt every key and value.
func Mapping(keySchema, valueSchema any) *MappingValidator {
	return &MappingValidator{keySchema: keySchema, valueSchema: valueSchema}
}

func (m *MappingValidator) Resolve() error {
	if m.resolved {
		return nil
	}
	if m.keySchema != nil {
		v, err := m.ctx.Parse(m.keySchema)
		if err != nil {
			return err
		}
		m.keyV = v
		m.keySchema = nil
	}
	if m.valueSchema != nil {
		v, err := m.ctx.Parse(m.valueSchema)
		if err != nil {
			return err
		}
		m.valueV = v
		m.valueSchema = nil
	}
	m.resolved = true
	return nil
}

func (m *MappingValidator) Validate(value any) (any, error) {
	rv, ok := mappingValue(value)
	if !ok {
		return nil, m.mustBe(m.mappingName(), value)
	}
	out := make(map[any]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		k := iter.Key().Interface()
		v := iter.Value().Interface()
		if m.valueV != nil {
			adapted, err := m.valueV.Validate(v)
			if err != nil {
				var ve *ValidationError
				if errors.As(err, &ve) {
					return nil, ve.AddErrorPathItem(k)
				}
				return nil, err
			}
			v = adapted
		}
		if m.keyV != nil {
			// A key failure has no position to point at, so no path item.
			adapted, err := m.keyV.Validate(k)
			if err != nil {
				return nil, err
			}
			k = adapted
		}
		out[k] = v
	}
	return rebuildMapping(rv.Type(), out), nil
}

func (m *MappingValidator) HumanizedName() string { return m.mappingName() }

func mappingValue(value any) (reflect.Value, bool) {
	if value == nil {
		return reflect.Value{}, false
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Map {
		return reflect.Value{}, false
	}
	return rv, true
}

func copyMapping(rv reflect.Value) map[any]any {
	out := make(map[any]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().Interface()] = iter.Value().Interface()
	}
	return out
}

// mapGet reads key from a reflected map, converting the key to the map's key
// type when needed.
func mapGet(rv reflect.Value, key any) (any, bool) {
	kt := rv.Type().Key()
	kv := reflect.ValueOf(key)
	if !kv.IsValid() {
		return nil, false
	}
	if !kv.Type().AssignableTo(kt) {
		if !kv.Type().ConvertibleTo(kt) {
			return nil, false
		}
		kv = kv.Convert(kt)
	}
	v := rv.MapIndex(kv)
	if !v.IsValid() {
		return nil, false
	}
	return v.Interface(), true
}

// rebuildMapping reproduces the input's concrete map type when every adapted
// entry remains assignable, falling back to map[any]any otherwise.
func rebuildMapping(t reflect.Type, entries map[any]any) any {
	kt, et := t.Key(), t.Elem()
	for k, v := range entries {
		if k == nil || !reflect.TypeOf(k).AssignableTo(kt) {
			return entries
		}
		if v == nil {
			if !nilAssignable(et) {
				return entries
			}
			continue
		}
		if !reflect.TypeOf(v).AssignableTo(et) {
			return entries
		}
	}
	out := reflect.MakeMapWithSize(t, len(entries))
	for k, v := range entries {
		vv := reflect.ValueOf(v)
		if v == nil {
			vv = reflect.Zero(et)
		}
		out.SetMapIndex(reflect.ValueOf(k), vv)
	}
	return out.Interface()
}
