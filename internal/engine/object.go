package engine

import (
	goshape "github.com/reoring/goshape"
	js "github.com/reoring/goshape/jsonschema"
)

// PropertySpec is one declared property of an object shape.
type PropertySpec struct {
	Name       string
	Descriptor goshape.Descriptor
	Options    goshape.PropertyOptions
}

// ObjectSpec describes an object shape to assemble.
type ObjectSpec struct {
	Properties []PropertySpec
	Additional *PropertySpec // Name is ignored.
	Options    goshape.ObjectOptions
	Extends    *Finalized
}

// Finalized is a completed object schema. Only AssembleObject produces
// values of this type, so an extension source is always fully assembled.
type Finalized struct {
	node     *js.Node
	own      []string
	registry *goshape.Registry
}

// Schema returns the assembled node. Callers must not modify it.
func (f Finalized) Schema() *js.Node { return f.node }

// OwnProperties returns the property names the shape declared itself.
func (f Finalized) OwnProperties() []string { return append([]string(nil), f.own...) }

// Registry returns the sealed registry built while assembling the shape.
func (f Finalized) Registry() *goshape.Registry { return f.registry }

// IsZero reports whether f was never assembled.
func (f Finalized) IsZero() bool { return f.node == nil }

// AssembleObject assembles an object shape and seals the context registry.
func AssembleObject(ctx *Context, spec ObjectSpec) (Finalized, error) {
	n, own, err := assembleObject(ctx, spec)
	if err != nil {
		return Finalized{}, goshape.InShape(err, ctx.Name)
	}
	ctx.Registry.Seal()
	return Finalized{node: n, own: own, registry: ctx.Registry}, nil
}

func assembleObject(ctx *Context, spec ObjectSpec) (*js.Node, []string, error) {
	oo := spec.Options
	fixed := oo.Representation == goshape.FixedRecord

	// 1. property names are unique; object defaults fill unset options
	seen := make(map[string]struct{}, len(spec.Properties))
	props := make([]PropertySpec, 0, len(spec.Properties))
	for _, p := range spec.Properties {
		if _, dup := seen[p.Name]; dup {
			return nil, nil, goshape.NewError(goshape.CodeDuplicateProperty, goshape.Pointer(p.Name),
				"property "+p.Name+" is declared more than once", "property", p.Name)
		}
		seen[p.Name] = struct{}{}
		if p.Options.Required == nil {
			p.Options.Required = goshape.Bool(oo.RequiredDefault())
		}
		if p.Options.Inline == nil {
			p.Options.Inline = goshape.Bool(oo.DefaultInline)
		}
		props = append(props, p)
	}

	// 2. fixed-record compatibility
	if fixed {
		if spec.Additional != nil {
			return nil, nil, goshape.NewError(goshape.CodeStructCompatibility, "/",
				"fixed-record shapes cannot declare additional properties")
		}
		for _, p := range props {
			if !p.Options.IsRequired() && !p.Options.Nullable && !p.Options.HasDefault {
				return nil, nil, structIncompatible(p.Name)
			}
		}
	}

	// 3. properties in declaration order
	node := &js.Node{Kind: js.KindObject, Title: ctx.Title, Representation: oo.Representation}
	own := make([]string, 0, len(props))
	for _, p := range props {
		path := goshape.Pointer(p.Name)
		if err := ctx.checker().Property(path, p.Descriptor, p.Options); err != nil {
			return nil, nil, err
		}
		child, err := Assemble(ctx, p.Name, p.Descriptor, p.Options)
		if err != nil {
			return nil, nil, err
		}
		node.Properties = append(node.Properties, js.Property{Name: p.Name, Schema: child})
		if p.Options.IsRequired() {
			node.Required = append(node.Required, p.Name)
		}
		own = append(own, p.Name)
		ctx.log().Debug().Str("shape", ctx.Name).Str("property", p.Name).
			Str("kind", child.Kind.String()).Bool("required", p.Options.IsRequired()).Msg("property assembled")
	}

	// 4. inheritance
	if spec.Extends != nil {
		if spec.Extends.IsZero() {
			return nil, nil, goshape.NewError(goshape.CodeUnresolvedDependency, "/", "extension source is not assembled")
		}
		if spec.Extends.registry != nil {
			ctx.absorb(spec.Extends.registry)
		}
		node = Extend(node, *spec.Extends)
		if fixed {
			for _, p := range node.Properties {
				if !node.IsRequired(p.Name) && !p.Schema.Nullable && !p.Schema.HasDefault {
					return nil, nil, structIncompatible(p.Name)
				}
			}
		}
		ctx.log().Debug().Str("shape", ctx.Name).Str("parent", spec.Extends.node.Title).
			Strs("required", node.Required).Msg("extended")
	}

	// 5. object-level annotations
	node.Description = oo.Description
	node.Example = oo.Example
	if spec.Additional != nil {
		a := *spec.Additional
		if err := ctx.checker().Property("/additionalProperties", a.Descriptor, a.Options); err != nil {
			return nil, nil, err
		}
		an, err := Assemble(ctx, "additionalProperties", a.Descriptor, a.Options)
		if err != nil {
			return nil, nil, err
		}
		node.AdditionalProperties = an
	}
	return node, own, nil
}

func structIncompatible(name string) error {
	return goshape.NewError(goshape.CodeStructCompatibility, goshape.Pointer(name),
		"property "+name+" is optional, not nullable and has no default; a fixed record needs a value",
		"property", name)
}
