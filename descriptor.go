package goshape

import "strings"

// DescriptorKind identifies the category of a type descriptor.
type DescriptorKind int

const (
	KindScalar DescriptorKind = iota
	KindArray
	KindMap
	KindUnion
	KindNamed
)

// String returns the string representation of the descriptor kind.
func (k DescriptorKind) String() string {
	switch k {
	case KindScalar:
		return "Scalar"
	case KindArray:
		return "Array"
	case KindMap:
		return "Map"
	case KindUnion:
		return "Union"
	case KindNamed:
		return "Named"
	default:
		return "Unknown"
	}
}

// ScalarKind identifies a scalar descriptor.
type ScalarKind int

const (
	ScalarInteger ScalarKind = iota
	ScalarNumber
	ScalarString
	ScalarBoolean
)

// String returns the JSON-compatible name of the scalar kind.
func (k ScalarKind) String() string {
	switch k {
	case ScalarInteger:
		return "integer"
	case ScalarNumber:
		return "number"
	case ScalarString:
		return "string"
	case ScalarBoolean:
		return "boolean"
	default:
		return "unknown"
	}
}

// Descriptor is a declarative description of a value's shape.
// The set of implementations is closed: Scalar, ArrayOf, MapOf, UnionOf and NamedShape.
type Descriptor interface {
	// Kind returns the descriptor kind for type switching.
	Kind() DescriptorKind

	// Ensure only types in this package can implement Descriptor.
	sealed()
}

// Scalar describes an integer, number, string or boolean value.
type Scalar struct {
	Scalar ScalarKind
}

func (Scalar) Kind() DescriptorKind { return KindScalar }
func (Scalar) sealed()              {}

// ArrayOf describes an ordered sequence whose elements conform to Elem.
type ArrayOf struct {
	Elem Descriptor
}

func (ArrayOf) Kind() DescriptorKind { return KindArray }
func (ArrayOf) sealed()              {}

// MapOf describes an open map whose values all conform to Value.
type MapOf struct {
	Value Descriptor
}

func (MapOf) Kind() DescriptorKind { return KindMap }
func (MapOf) sealed()              {}

// UnionOf describes a value conforming to at least one of Members.
type UnionOf struct {
	Members []Descriptor
}

func (UnionOf) Kind() DescriptorKind { return KindUnion }
func (UnionOf) sealed()              {}

// NamedShape references another, independently defined shape by its identifier.
type NamedShape struct {
	ID string
}

func (NamedShape) Kind() DescriptorKind { return KindNamed }
func (NamedShape) sealed()              {}

// Integer returns the integer scalar descriptor.
func Integer() Descriptor { return Scalar{Scalar: ScalarInteger} }

// Number returns the number scalar descriptor.
func Number() Descriptor { return Scalar{Scalar: ScalarNumber} }

// String returns the string scalar descriptor.
func String() Descriptor { return Scalar{Scalar: ScalarString} }

// Boolean returns the boolean scalar descriptor.
func Boolean() Descriptor { return Scalar{Scalar: ScalarBoolean} }

// Array returns an array descriptor for the given element descriptor.
func Array(elem Descriptor) Descriptor { return ArrayOf{Elem: elem} }

// Map returns a map descriptor whose values conform to value.
func Map(value Descriptor) Descriptor { return MapOf{Value: value} }

// Union returns a union descriptor over members, in declaration order.
func Union(members ...Descriptor) Descriptor {
	return UnionOf{Members: append([]Descriptor(nil), members...)}
}

// Named returns a reference to the shape defined under id.
func Named(id string) Descriptor { return NamedShape{ID: id} }

// IsStringScalar reports whether d is Scalar(string).
func IsStringScalar(d Descriptor) bool {
	s, ok := d.(Scalar)
	return ok && s.Scalar == ScalarString
}

// DescriptorString renders d for diagnostics, e.g. "[]string", "map[string]integer",
// "number|string" or "@Node".
func DescriptorString(d Descriptor) string {
	switch t := d.(type) {
	case nil:
		return "<nil>"
	case Scalar:
		return t.Scalar.String()
	case ArrayOf:
		return "[]" + DescriptorString(t.Elem)
	case MapOf:
		return "map[string]" + DescriptorString(t.Value)
	case UnionOf:
		parts := make([]string, 0, len(t.Members))
		for _, m := range t.Members {
			parts = append(parts, DescriptorString(m))
		}
		return "(" + strings.Join(parts, "|") + ")"
	case NamedShape:
		return "@" + t.ID
	default:
		return "<unknown>"
	}
}
