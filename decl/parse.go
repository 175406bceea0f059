package decl

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Parse decodes a multi-document YAML stream. Empty documents are skipped.
func Parse(data []byte) ([]Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var out []Document
	for i := 0; ; i++ {
		var node any
		if err := dec.Decode(&node); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("decl: yaml document %d: %w", i, err)
		}
		if node == nil {
			continue
		}
		m, ok := normalizeValue(node).(map[string]any)
		if !ok {
			return nil, fmt.Errorf("decl: yaml document %d: want a mapping, got %T", i, node)
		}
		doc, err := fromMap(m)
		if err != nil {
			return nil, fmt.Errorf("decl: yaml document %d: %w", i, err)
		}
		out = append(out, doc)
	}
	return out, nil
}

// ParseJSON decodes a single declaration object or an array of them.
func ParseJSON(data []byte) ([]Document, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("decl: json: %w", err)
	}
	var list []any
	switch t := v.(type) {
	case []any:
		list = t
	case map[string]any:
		list = []any{t}
	default:
		return nil, fmt.Errorf("decl: json: want an object or array, got %T", v)
	}
	out := make([]Document, 0, len(list))
	for i, e := range list {
		m, ok := e.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("decl: json document %d: want an object, got %T", i, e)
		}
		doc, err := fromMap(m)
		if err != nil {
			return nil, fmt.Errorf("decl: json document %d: %w", i, err)
		}
		out = append(out, doc)
	}
	return out, nil
}

// normalizeValue converts YAML-decoded values (which may contain map[any]any)
// into JSON-like values recursively.
func normalizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = normalizeValue(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[fmt.Sprint(k)] = normalizeValue(vv)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = normalizeValue(t[i])
		}
		return out
	default:
		return v
	}
}

func fromMap(m map[string]any) (Document, error) {
	var (
		d   Document
		err error
	)
	if d.Name, err = str(m, "name"); err != nil {
		return d, err
	}
	if d.Name == "" {
		return d, errors.New("name is required")
	}
	if d.Title, err = str(m, "title"); err != nil {
		return d, err
	}
	if d.Extends, err = str(m, "extends"); err != nil {
		return d, err
	}
	if d.Representation, err = str(m, "representation"); err != nil {
		return d, err
	}
	if d.Description, err = str(m, "description"); err != nil {
		return d, err
	}
	d.Example = m["example"]
	if d.Required, err = optBool(m, "required"); err != nil {
		return d, err
	}
	inline, err := optBool(m, "inline")
	if err != nil {
		return d, err
	}
	d.Inline = inline != nil && *inline

	raw, hasProps := m["properties"]
	_, hasType := m["type"]
	switch {
	case hasProps && hasType:
		return d, fmt.Errorf("%s: properties and type are exclusive", d.Name)
	case hasType:
		p, err := property(m, false)
		if err != nil {
			return d, fmt.Errorf("%s: %w", d.Name, err)
		}
		p.Required = nil
		d.Value = &p
		return d, nil
	}
	if hasProps && raw != nil {
		list, ok := raw.([]any)
		if !ok {
			return d, fmt.Errorf("%s: properties must be a list", d.Name)
		}
		for i, e := range list {
			pm, ok := e.(map[string]any)
			if !ok {
				return d, fmt.Errorf("%s: property %d must be a mapping", d.Name, i)
			}
			p, err := property(pm, true)
			if err != nil {
				return d, fmt.Errorf("%s: property %d: %w", d.Name, i, err)
			}
			d.Properties = append(d.Properties, p)
		}
	}
	if a, ok := m["additional"]; ok && a != nil {
		am, ok := a.(map[string]any)
		if !ok {
			return d, fmt.Errorf("%s: additional must be a mapping", d.Name)
		}
		p, err := property(am, false)
		if err != nil {
			return d, fmt.Errorf("%s: additional: %w", d.Name, err)
		}
		d.Additional = &p
	}
	return d, nil
}

func property(m map[string]any, named bool) (Property, error) {
	var (
		p   Property
		err error
	)
	if named {
		if p.Name, err = str(m, "name"); err != nil {
			return p, err
		}
		if p.Name == "" {
			return p, errors.New("name is required")
		}
	}
	p.Type = m["type"]
	if p.Type == nil {
		return p, errors.New("type is required")
	}
	if p.Required, err = optBool(m, "required"); err != nil {
		return p, err
	}
	if p.Inline, err = optBool(m, "inline"); err != nil {
		return p, err
	}
	nullable, err := optBool(m, "nullable")
	if err != nil {
		return p, err
	}
	p.Nullable = nullable != nil && *nullable
	// presence decides; an explicit null default is legal for nullable properties
	p.Default, p.HasDefault = m["default"]
	if p.Description, err = str(m, "description"); err != nil {
		return p, err
	}
	p.Example = m["example"]
	if e, ok := m["enum"]; ok && e != nil {
		list, ok := e.([]any)
		if !ok {
			return p, errors.New("enum must be a list")
		}
		p.Enum = list
	}
	if p.Pattern, err = str(m, "pattern"); err != nil {
		return p, err
	}
	if p.Format, err = str(m, "format"); err != nil {
		return p, err
	}
	return p, nil
}

func str(m map[string]any, key string) (string, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string, got %T", key, v)
	}
	return s, nil
}

func optBool(m map[string]any, key string) (*bool, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, nil
	}
	b, ok := v.(bool)
	if !ok {
		return nil, fmt.Errorf("%s must be a boolean, got %T", key, v)
	}
	return &b, nil
}
