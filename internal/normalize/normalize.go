// Package normalize rewrites assembled schema nodes for type-signature
// generation: nullability becomes an explicit absent union member and nested
// unions are flattened. The validation schema itself is never touched.
package normalize

import (
	js "github.com/reoring/goshape/jsonschema"
)

// Normalize returns the normalized form of n. The input is not modified.
func Normalize(n *js.Node) *js.Node {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case js.KindUnion:
		return union(n)
	case js.KindArray:
		out := n.Clone()
		out.Items = Normalize(n.Items)
		return nullable(out)
	case js.KindNull:
		return js.Null()
	default:
		// scalars, objects, maps and reference markers are leaves here
		return nullable(n.Clone())
	}
}

// nullable wraps n in a 2-member union with the absent value when n is
// nullable, dropping the flag from n.
func nullable(n *js.Node) *js.Node {
	if !n.Nullable {
		return n
	}
	n.Nullable = false
	return &js.Node{Kind: js.KindUnion, OneOf: []*js.Node{n, js.Null()}}
}

// union normalizes members, splices nested unions in place, removes
// duplicates and appends a single absent member when needed.
func union(n *js.Node) *js.Node {
	absent := n.Nullable
	flat := make([]*js.Node, 0, len(n.OneOf))
	var splice func(ms []*js.Node)
	splice = func(ms []*js.Node) {
		for _, m := range ms {
			switch m.Kind {
			case js.KindUnion:
				splice(m.OneOf)
			case js.KindNull:
				absent = true
			default:
				flat = append(flat, m)
			}
		}
	}
	for _, m := range n.OneOf {
		nm := Normalize(m)
		if nm.Kind == js.KindUnion {
			splice(nm.OneOf)
			continue
		}
		splice([]*js.Node{nm})
	}

	out := n.Clone()
	out.Nullable = false
	out.OneOf = js.Dedupe(flat)
	if absent {
		out.OneOf = append(out.OneOf, js.Null())
	}
	return out
}
