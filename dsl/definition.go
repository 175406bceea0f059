package dsl

import (
	goshape "github.com/reoring/goshape"
	"github.com/reoring/goshape/internal/engine"
	js "github.com/reoring/goshape/jsonschema"
	"github.com/reoring/goshape/typesig"
)

// Property declares one property of an object shape.
type Property struct {
	Name       string
	Descriptor goshape.Descriptor
	Options    goshape.PropertyOptions
}

// Request is the input of Catalog.Define.
type Request struct {
	ID    string
	Title string // defaults to Object.Title, then ID

	// Non-object shapes.
	Descriptor goshape.Descriptor
	Options    goshape.PropertyOptions

	// Object shapes.
	Properties []Property
	Additional *Property // Name is ignored.
	Extends    string    // id of an already defined object shape
	ExtendsDef *Definition
	Object     goshape.ObjectOptions
}

// IsObject reports whether the request defines an object shape.
func (r Request) IsObject() bool {
	return r.Properties != nil || r.Descriptor == nil
}

// Definition is a successfully assembled shape. It is immutable.
type Definition struct {
	ID             string
	Title          string
	Representation goshape.Representation

	node      *js.Node
	registry  *goshape.Registry
	signature typesig.Signature
	finalized engine.Finalized
	object    bool
}

// Schema returns a copy of the validation schema.
func (d *Definition) Schema() *js.Node { return d.node.Clone() }

// Registry returns the sealed reference registry of the definition.
func (d *Definition) Registry() *goshape.Registry { return d.registry }

// Signature returns the structural type signature.
func (d *Definition) Signature() typesig.Signature { return d.signature }

// IsObject reports whether the definition is an object shape.
func (d *Definition) IsObject() bool { return d.object }

// RequiredNames returns the required property names in order.
func (d *Definition) RequiredNames() []string {
	return append([]string(nil), d.node.Required...)
}

// DefaultValue is a declared property default.
type DefaultValue struct {
	Name  string
	Value any
}

// Defaults returns the declared property defaults in property order.
func (d *Definition) Defaults() []DefaultValue {
	var out []DefaultValue
	for _, p := range d.node.Properties {
		if p.Schema.HasDefault {
			out = append(out, DefaultValue{Name: p.Name, Value: p.Schema.Default})
		}
	}
	return out
}
