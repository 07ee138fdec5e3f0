package valido

import (
	"bytes"
	"io"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// DecodeJSON decodes a JSON document into the generic value shapes the
// validators operate on: map[string]any, []any, string, bool, int64, float64
// and nil. Numbers without a fraction or exponent decode as int64 so that
// integer schemas accept them.
func DecodeJSON(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return normalizeJSON(v), nil
}

// DecodeJSONBytes is DecodeJSON over an in-memory document.
func DecodeJSONBytes(data []byte) (any, error) {
	return DecodeJSON(bytes.NewReader(data))
}

func normalizeJSON(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case map[string]any:
		for k, e := range t {
			t[k] = normalizeJSON(e)
		}
		return t
	case []any:
		for i, e := range t {
			t[i] = normalizeJSON(e)
		}
		return t
	}
	return v
}

// DecodeYAML decodes a YAML document into generic values (map[string]any,
// []any and scalars).
func DecodeYAML(data []byte) (any, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}
