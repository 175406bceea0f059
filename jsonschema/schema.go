package jsonschema

import (
	goshape "github.com/reoring/goshape"
)

// Kind identifies a schema node type.
type Kind int

const (
	KindObject Kind = iota
	KindInteger
	KindNumber
	KindString
	KindBoolean
	KindArray
	KindUnion
	KindRef  // reference marker pointing at "#/definitions/<title>"
	KindNull // the absent value; only produced by normalization
)

// String returns the JSON Schema type name for the kind.
func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindInteger:
		return "integer"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBoolean:
		return "boolean"
	case KindArray:
		return "array"
	case KindUnion:
		return "union"
	case KindRef:
		return "ref"
	case KindNull:
		return "null"
	default:
		return "unknown"
	}
}

// ScalarKind maps a descriptor scalar kind to the node kind.
func ScalarKind(k goshape.ScalarKind) Kind {
	switch k {
	case goshape.ScalarInteger:
		return KindInteger
	case goshape.ScalarNumber:
		return KindNumber
	case goshape.ScalarBoolean:
		return KindBoolean
	default:
		return KindString
	}
}

// Node is the assembled validation schema of one shape or property.
// Nodes are treated as immutable once returned by the engine; use Clone
// before modifying.
type Node struct {
	// Core
	Kind     Kind
	Title    string
	Ref      string
	Nullable bool

	// Object
	Properties           Properties
	Required             []string
	AdditionalProperties *Node
	Representation       goshape.Representation

	// Array
	Items *Node

	// Union
	OneOf []*Node

	// Constraints and annotations
	Default     any
	HasDefault  bool
	Enum        []any
	Pattern     string
	Format      string
	Description string
	Example     any
}

// Property is a named child of an object node.
type Property struct {
	Name   string
	Schema *Node
}

// Properties keeps object properties in declaration order.
type Properties []Property

// Get returns the schema of the named property.
func (ps Properties) Get(name string) (*Node, bool) {
	for _, p := range ps {
		if p.Name == name {
			return p.Schema, true
		}
	}
	return nil, false
}

// Has reports whether a property with the given name exists.
func (ps Properties) Has(name string) bool {
	_, ok := ps.Get(name)
	return ok
}

// Names returns property names in order.
func (ps Properties) Names() []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Name)
	}
	return out
}

// Set replaces the named property in place or appends it, returning the new slice.
func (ps Properties) Set(name string, n *Node) Properties {
	for i := range ps {
		if ps[i].Name == name {
			out := append(Properties(nil), ps...)
			out[i].Schema = n
			return out
		}
	}
	return append(ps, Property{Name: name, Schema: n})
}

// Scalar returns a leaf node of the given kind.
func Scalar(k Kind) *Node { return &Node{Kind: k} }

// Null returns the absent-value node.
func Null() *Node { return &Node{Kind: KindNull} }

// RefTo returns a reference marker node.
func RefTo(path string) *Node { return &Node{Kind: KindRef, Ref: path} }

// Union returns a union node over members.
func Union(members ...*Node) *Node { return &Node{Kind: KindUnion, OneOf: members} }

// IsMap reports whether n is an object whose only content is
// additionalProperties, as assembled from a map descriptor.
func (n *Node) IsMap() bool {
	return n != nil && n.Kind == KindObject && len(n.Properties) == 0 && n.AdditionalProperties != nil
}

// IsRequired reports whether name is listed in the required set.
func (n *Node) IsRequired(name string) bool {
	for _, r := range n.Required {
		if r == name {
			return true
		}
	}
	return false
}
