package typesig

import (
	"strings"

	goshape "github.com/reoring/goshape"
)

// Expr is a structural type expression derived from a schema node.
// The set of implementations is closed.
type Expr interface {
	String() string
	typeExpr()
}

// PrimitiveKind identifies a primitive type.
type PrimitiveKind int

const (
	PrimitiveInteger PrimitiveKind = iota
	PrimitiveNumber
	PrimitiveString
	PrimitiveBoolean
)

func (k PrimitiveKind) String() string {
	switch k {
	case PrimitiveInteger:
		return "integer"
	case PrimitiveNumber:
		return "number"
	case PrimitiveString:
		return "string"
	case PrimitiveBoolean:
		return "boolean"
	default:
		return "unknown"
	}
}

// Primitive represents integer, number, string or boolean.
type Primitive struct {
	Kind PrimitiveKind
}

func (Primitive) typeExpr()        {}
func (p Primitive) String() string { return p.Kind.String() }

// Absent is the "no value" type.
type Absent struct{}

func (Absent) typeExpr()      {}
func (Absent) String() string { return "null" }

// Sequence represents []T.
type Sequence struct {
	Elem Expr
}

func (Sequence) typeExpr() {}
func (s Sequence) String() string {
	if _, ok := s.Elem.(Alternation); ok {
		return "[](" + s.Elem.String() + ")"
	}
	return "[]" + s.Elem.String()
}

// Dict is keyed by string with optional presence and valued by Value.
type Dict struct {
	Value Expr
}

func (Dict) typeExpr() {}
func (d Dict) String() string {
	return "{ " + indexEntry(d.Value) + " }"
}

// Alternation is an ordered union of member types.
type Alternation struct {
	Members []Expr
}

func (Alternation) typeExpr() {}
func (a Alternation) String() string {
	parts := make([]string, 0, len(a.Members))
	for _, m := range a.Members {
		parts = append(parts, m.String())
	}
	return strings.Join(parts, " | ")
}

// Named refers to a defined shape by name. Recursive shapes refer to
// themselves through Named rather than by expansion.
type Named struct {
	Name string
}

func (Named) typeExpr()        {}
func (n Named) String() string { return n.Name }

// Field is one property of a Record.
type Field struct {
	Name       string
	Type       Expr
	Optional   bool // may be missing from a value
	Default    any
	HasDefault bool
}

// Record is an object type, wrapped as a fixed record or an open map.
type Record struct {
	Title          string
	Fields         []Field
	Representation goshape.Representation
	// Index types additional keys of an open map; nil when none are declared.
	Index Expr
}

func (*Record) typeExpr() {}

// Field returns the named field.
func (r *Record) Field(name string) (Field, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

func (r *Record) String() string {
	parts := make([]string, 0, len(r.Fields)+1)
	for _, f := range r.Fields {
		sep := ": "
		if f.Optional {
			sep = "?: "
		}
		parts = append(parts, f.Name+sep+f.Type.String())
	}
	if r.Index != nil {
		parts = append(parts, indexEntry(r.Index))
	}
	body := "{}"
	if len(parts) > 0 {
		body = "{ " + strings.Join(parts, "; ") + " }"
	}
	if r.Representation == goshape.FixedRecord {
		return "record " + body
	}
	return body
}

func indexEntry(v Expr) string { return "[key: string]?: " + v.String() }

// Signature is the named type expression of a defined shape.
type Signature struct {
	Name string
	Expr Expr
}

// String renders "type Name = expr".
func (s Signature) String() string {
	if s.Expr == nil {
		return "type " + s.Name
	}
	return "type " + s.Name + " = " + s.Expr.String()
}
