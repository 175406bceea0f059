package engine

import (
	goshape "github.com/reoring/goshape"
	js "github.com/reoring/goshape/jsonschema"
)

// Assemble translates a descriptor and its options into a schema node.
// name is the property being assembled and only shapes error paths.
func Assemble(ctx *Context, name string, d goshape.Descriptor, opts goshape.PropertyOptions) (*js.Node, error) {
	path := goshape.Pointer(name)
	switch t := d.(type) {
	case goshape.Scalar:
		n := js.Scalar(js.ScalarKind(t.Scalar))
		annotate(n, opts)
		return n, nil

	case goshape.ArrayOf:
		// element options never inherit nullable/default/description/enum
		item, err := Assemble(ctx, name, t.Elem, opts.Nested())
		if err != nil {
			return nil, err
		}
		n := &js.Node{Kind: js.KindArray, Items: item}
		annotate(n, opts)
		return n, nil

	case goshape.MapOf:
		val, err := Assemble(ctx, name, t.Value, opts.Nested())
		if err != nil {
			return nil, err
		}
		n := &js.Node{Kind: js.KindObject, AdditionalProperties: val}
		annotate(n, opts)
		return n, nil

	case goshape.UnionOf:
		if len(t.Members) == 0 {
			return nil, goshape.NewError(goshape.CodeInvalidConstraint, path, "union has no members")
		}
		members := make([]*js.Node, 0, len(t.Members))
		for _, m := range t.Members {
			mn, err := Assemble(ctx, name, m, opts.Nested())
			if err != nil {
				return nil, err
			}
			members = append(members, mn)
		}
		// declared nesting is kept; flattening belongs to normalization
		n := js.Union(js.Dedupe(members)...)
		annotate(n, opts)
		return n, nil

	case goshape.NamedShape:
		return assembleNamed(ctx, path, t, opts)

	case nil:
		return nil, goshape.NewError(goshape.CodeInvalidConstraint, path, "missing descriptor")

	default:
		return nil, goshape.NewError(goshape.CodeInvalidConstraint, path, "unsupported descriptor "+goshape.DescriptorString(d))
	}
}

// assembleNamed embeds the target schema by value when inline, otherwise
// emits a reference marker and records it in the registry.
func assembleNamed(ctx *Context, path string, t goshape.NamedShape, opts goshape.PropertyOptions) (*js.Node, error) {
	var (
		ref  string
		unit string
	)
	if t.ID == ctx.Name {
		if opts.IsInline() {
			return nil, goshape.NewError(goshape.CodeUnresolvedDependency, path,
				"shape "+t.ID+" cannot inline itself", "shape", t.ID)
		}
		ref, unit = goshape.RefPath(ctx.Title), ctx.Name
	} else {
		sh, err := ctx.lookup(path, t.ID)
		if err != nil {
			return nil, err
		}
		if opts.IsInline() {
			n := sh.Schema.Clone()
			if sh.Registry != nil {
				ctx.absorb(sh.Registry)
			}
			if opts.Nullable {
				n.Nullable = true
			}
			if opts.HasDefault {
				n.Default, n.HasDefault = opts.Default, true
			}
			if opts.Description != "" {
				n.Description = opts.Description
			}
			if opts.Example != nil {
				n.Example = opts.Example
			}
			ctx.log().Debug().Str("shape", ctx.Name).Str("target", sh.ID).Msg("inlined named shape")
			return n, nil
		}
		ref, unit = goshape.RefPath(sh.Title), sh.ID
	}

	ctx.Registry.Record(ref, unit)
	ctx.log().Debug().Str("shape", ctx.Name).Str("ref", ref).Str("unit", unit).Msg("reference recorded")

	marker := js.RefTo(ref)
	if !opts.Nullable && !opts.HasDefault {
		marker.Description = opts.Description
		return marker, nil
	}
	// a bare marker cannot carry default or nullability
	u := js.Union(marker)
	u.Nullable = opts.Nullable
	u.Default, u.HasDefault = opts.Default, opts.HasDefault
	u.Description = opts.Description
	u.Example = opts.Example
	return u, nil
}

// annotate copies value-level options onto n.
func annotate(n *js.Node, opts goshape.PropertyOptions) {
	n.Nullable = opts.Nullable
	if opts.HasDefault {
		n.Default, n.HasDefault = opts.Default, true
	}
	n.Description = opts.Description
	n.Example = opts.Example
	if len(opts.Enum) > 0 {
		n.Enum = append([]any(nil), opts.Enum...)
	}
	n.Pattern = opts.Pattern
	n.Format = opts.Format
}

// AssembleValue assembles a top-level, non-object shape: rules first, then
// the node, titled with the shape's declared name.
func AssembleValue(ctx *Context, d goshape.Descriptor, opts goshape.PropertyOptions) (*js.Node, error) {
	if err := ctx.checker().Property("/", d, opts); err != nil {
		return nil, goshape.InShape(err, ctx.Name)
	}
	n, err := Assemble(ctx, "", d, opts)
	if err != nil {
		return nil, goshape.InShape(err, ctx.Name)
	}
	if n.Kind != js.KindRef {
		n.Title = ctx.Title
	}
	ctx.Registry.Seal()
	return n, nil
}
