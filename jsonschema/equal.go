package jsonschema

import "reflect"

// Equal reports structural equality. Default, Enum and Example values are
// compared with reflect.DeepEqual.
func (n *Node) Equal(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}
	if n.Kind != o.Kind || n.Title != o.Title || n.Ref != o.Ref || n.Nullable != o.Nullable ||
		n.Representation != o.Representation || n.HasDefault != o.HasDefault ||
		n.Pattern != o.Pattern || n.Format != o.Format || n.Description != o.Description {
		return false
	}
	if n.HasDefault && !reflect.DeepEqual(n.Default, o.Default) {
		return false
	}
	if !reflect.DeepEqual(n.Example, o.Example) || !equalAnys(n.Enum, o.Enum) {
		return false
	}
	if !equalStrings(n.Required, o.Required) {
		return false
	}
	if len(n.Properties) != len(o.Properties) {
		return false
	}
	for i := range n.Properties {
		if n.Properties[i].Name != o.Properties[i].Name || !n.Properties[i].Schema.Equal(o.Properties[i].Schema) {
			return false
		}
	}
	if !n.AdditionalProperties.Equal(o.AdditionalProperties) || !n.Items.Equal(o.Items) {
		return false
	}
	if len(n.OneOf) != len(o.OneOf) {
		return false
	}
	for i := range n.OneOf {
		if !n.OneOf[i].Equal(o.OneOf[i]) {
			return false
		}
	}
	return true
}

// Dedupe removes structurally equal nodes, keeping the first occurrence.
func Dedupe(nodes []*Node) []*Node {
	out := make([]*Node, 0, len(nodes))
next:
	for _, n := range nodes {
		for _, seen := range out {
			if seen.Equal(n) {
				continue next
			}
		}
		out = append(out, n)
	}
	return out
}

// Clone returns a deep copy of n. Default, Enum and Example values are
// shared; they are treated as immutable.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := *n
	if n.Properties != nil {
		c.Properties = make(Properties, len(n.Properties))
		for i, p := range n.Properties {
			c.Properties[i] = Property{Name: p.Name, Schema: p.Schema.Clone()}
		}
	}
	if n.Required != nil {
		c.Required = append([]string(nil), n.Required...)
	}
	if n.Enum != nil {
		c.Enum = append([]any(nil), n.Enum...)
	}
	c.AdditionalProperties = n.AdditionalProperties.Clone()
	c.Items = n.Items.Clone()
	if n.OneOf != nil {
		c.OneOf = make([]*Node, len(n.OneOf))
		for i, m := range n.OneOf {
			c.OneOf[i] = m.Clone()
		}
	}
	return &c
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalAnys(a, b []any) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !reflect.DeepEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}
