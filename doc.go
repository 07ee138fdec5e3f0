// Package valido provides:
//
// - Schema-driven value validation and adaptation (Context.Parse -> Validator.Validate)
// - A two-phase resolution model: validators are constructed with raw sub-schemas
//   and resolved exactly once under a Context
// - A stable error model via ValidationError (message, offending value, error path)
// - Schemaless input helpers for JSON and YAML (DecodeJSON/DecodeYAML)
//
// Design policy:
// - Keep the public engine in the root package; collaborators live under extras/
//   and middleware/.
// - Schemas are in-memory object graphs (validators, constructors, registered
//   names, reflect types, regexps, predicates, sequences, maps), never a textual
//   schema language.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	c := valido.NewContext()
//	v, err := c.Parse(map[string]any{"name": "string", "age": "integer"})
//	adapted, err := v.Validate(value)
//	ok := valido.IsValid(v, value)
package valido
