package jsonschema

import (
	"bytes"
	"sort"

	json "github.com/goccy/go-json"

	goshape "github.com/reoring/goshape"
)

// DraftURI is emitted as "$schema" on Document roots.
const DraftURI = "http://json-schema.org/draft-07/schema#"

// member is one key/value of an ordered JSON object.
type member struct {
	key   string
	value any
}

// object marshals its members in insertion order.
type object []member

func (o object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(m.key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(m.value)
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalJSON renders n as a JSON Schema object with a stable key order.
func (n *Node) MarshalJSON() ([]byte, error) {
	if n == nil {
		return []byte("null"), nil
	}
	return json.Marshal(n.members())
}

func (n *Node) members() object {
	var o object
	add := func(k string, v any) { o = append(o, member{key: k, value: v}) }

	if n.Title != "" {
		add("title", n.Title)
	}
	if n.Description != "" {
		add("description", n.Description)
	}
	switch n.Kind {
	case KindRef:
		add("$ref", n.Ref)
	case KindNull:
		add("type", "null")
	case KindUnion:
		members := make([]*Node, 0, len(n.OneOf)+1)
		members = append(members, n.OneOf...)
		if n.Nullable {
			members = append(members, Null())
		}
		add("oneOf", members)
	default:
		if n.Nullable {
			add("type", []string{n.Kind.String(), "null"})
		} else {
			add("type", n.Kind.String())
		}
	}
	if len(n.Enum) > 0 {
		add("enum", n.Enum)
	}
	if n.Pattern != "" {
		add("pattern", n.Pattern)
	}
	if n.Format != "" {
		add("format", n.Format)
	}
	if n.Items != nil {
		add("items", n.Items)
	}
	if n.Kind == KindObject {
		if len(n.Properties) > 0 {
			props := make(object, 0, len(n.Properties))
			for _, p := range n.Properties {
				props = append(props, member{key: p.Name, value: p.Schema})
			}
			add("properties", props)
		}
		if len(n.Required) > 0 {
			add("required", n.Required)
		}
		if n.AdditionalProperties != nil {
			add("additionalProperties", n.AdditionalProperties)
		}
		if !n.IsMap() {
			add("x-representation", n.Representation.String())
		}
	}
	if n.HasDefault {
		add("default", n.Default)
	}
	if n.Example != nil {
		add("example", n.Example)
	}
	return o
}

// Document bundles a root node with the definitions its reference markers
// point at.
type Document struct {
	Root        *Node
	Definitions map[string]*Node // title -> node
}

// MarshalJSON renders {"$schema", ...root, "definitions"} with definitions
// sorted by title.
func (d Document) MarshalJSON() ([]byte, error) {
	o := object{{key: "$schema", value: DraftURI}}
	if d.Root != nil {
		o = append(o, d.Root.members()...)
	}
	if len(d.Definitions) > 0 {
		titles := make([]string, 0, len(d.Definitions))
		for t := range d.Definitions {
			titles = append(titles, t)
		}
		sort.Strings(titles)
		defs := make(object, 0, len(titles))
		for _, t := range titles {
			defs = append(defs, member{key: t, value: d.Definitions[t]})
		}
		o = append(o, member{key: "definitions", value: defs})
	}
	return json.Marshal(o)
}

// MarshalIndent renders v (a *Node or Document) with two-space indentation.
func MarshalIndent(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// Titles returns the titles referenced anywhere below n, in first-seen order.
func Titles(n *Node) []string {
	var out []string
	seen := map[string]struct{}{}
	var walk func(*Node)
	walk = func(x *Node) {
		if x == nil {
			return
		}
		if x.Kind == KindRef {
			if t, ok := goshape.TitleFromRef(x.Ref); ok {
				if _, dup := seen[t]; !dup {
					seen[t] = struct{}{}
					out = append(out, t)
				}
			}
		}
		for _, p := range x.Properties {
			walk(p.Schema)
		}
		walk(x.AdditionalProperties)
		walk(x.Items)
		for _, m := range x.OneOf {
			walk(m)
		}
	}
	walk(n)
	return out
}
