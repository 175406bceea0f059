package decl

import (
	"fmt"

	goshape "github.com/reoring/goshape"
	"github.com/reoring/goshape/dsl"
)

// Property is a declared property, or the value options of a non-object shape.
type Property struct {
	Name        string
	Type        any // type expression as decoded
	Required    *bool
	Nullable    bool
	Default     any
	HasDefault  bool
	Description string
	Example     any
	Enum        []any
	Pattern     string
	Format      string
	Inline      *bool
}

// Document is one shape declaration.
type Document struct {
	Name           string
	Title          string
	Extends        string
	Representation string
	Required       *bool // object default for properties
	Inline         bool  // object default for named properties
	Description    string
	Example        any
	Properties     []Property
	Additional     *Property

	// Value is set instead of Properties for non-object shapes.
	Value *Property
}

// IsObject reports whether the document declares an object shape.
func (d Document) IsObject() bool { return d.Value == nil }

// Request converts the document into a catalog request.
func (d Document) Request() (dsl.Request, error) {
	req := dsl.Request{ID: d.Name, Title: d.Title}
	if !d.IsObject() {
		desc, opts, err := d.Value.convert()
		if err != nil {
			return dsl.Request{}, fmt.Errorf("decl: %s: %w", d.Name, err)
		}
		req.Descriptor, req.Options = desc, opts
		return req, nil
	}

	rep, ok := goshape.ParseRepresentation(d.Representation)
	if !ok {
		return dsl.Request{}, fmt.Errorf("decl: %s: %w", d.Name, goshape.NewError(goshape.CodeInvalidConstraint,
			"/representation", "unknown representation "+d.Representation))
	}
	req.Object = goshape.ObjectOptions{
		Title:           d.Title,
		Description:     d.Description,
		Example:         d.Example,
		Representation:  rep,
		DefaultRequired: d.Required,
		DefaultInline:   d.Inline,
	}
	req.Extends = d.Extends
	req.Properties = make([]dsl.Property, 0, len(d.Properties))
	for _, p := range d.Properties {
		desc, opts, err := p.convert()
		if err != nil {
			return dsl.Request{}, fmt.Errorf("decl: %s: %w", d.Name, err)
		}
		req.Properties = append(req.Properties, dsl.Property{Name: p.Name, Descriptor: desc, Options: opts})
	}
	if d.Additional != nil {
		desc, opts, err := d.Additional.convert()
		if err != nil {
			return dsl.Request{}, fmt.Errorf("decl: %s: additional: %w", d.Name, err)
		}
		req.Additional = &dsl.Property{Descriptor: desc, Options: opts}
	}
	return req, nil
}

func (p Property) convert() (goshape.Descriptor, goshape.PropertyOptions, error) {
	path := goshape.Pointer(p.Name)
	if p.Name == "" {
		path = "/"
	}
	d, err := Descriptor(p.Type)
	if err != nil {
		return nil, goshape.PropertyOptions{}, goshape.NewError(goshape.CodeInvalidConstraint, path, err.Error())
	}
	return d, goshape.PropertyOptions{
		Required:    p.Required,
		Nullable:    p.Nullable,
		Default:     p.Default,
		HasDefault:  p.HasDefault,
		Description: p.Description,
		Example:     p.Example,
		Enum:        p.Enum,
		Pattern:     p.Pattern,
		Format:      p.Format,
		Inline:      p.Inline,
	}, nil
}

// Descriptor converts a decoded type expression. Accepted forms:
//
//	integer | number | string | boolean
//	<ShapeName>
//	{array: T} | {map: T} | {union: [T, ...]} | {ref: ShapeName}
func Descriptor(v any) (goshape.Descriptor, error) {
	switch t := v.(type) {
	case nil:
		return nil, fmt.Errorf("missing type")
	case string:
		switch t {
		case "integer":
			return goshape.Integer(), nil
		case "number":
			return goshape.Number(), nil
		case "string":
			return goshape.String(), nil
		case "boolean":
			return goshape.Boolean(), nil
		case "":
			return nil, fmt.Errorf("empty type name")
		default:
			return goshape.Named(t), nil
		}
	case map[string]any:
		if len(t) != 1 {
			return nil, fmt.Errorf("type expression must have exactly one key, got %d", len(t))
		}
		for k, inner := range t {
			switch k {
			case "array":
				e, err := Descriptor(inner)
				if err != nil {
					return nil, fmt.Errorf("array: %w", err)
				}
				return goshape.Array(e), nil
			case "map":
				e, err := Descriptor(inner)
				if err != nil {
					return nil, fmt.Errorf("map: %w", err)
				}
				return goshape.Map(e), nil
			case "union":
				list, ok := inner.([]any)
				if !ok || len(list) == 0 {
					return nil, fmt.Errorf("union needs a non-empty list of members")
				}
				members := make([]goshape.Descriptor, 0, len(list))
				for i, m := range list {
					md, err := Descriptor(m)
					if err != nil {
						return nil, fmt.Errorf("union member %d: %w", i, err)
					}
					members = append(members, md)
				}
				return goshape.Union(members...), nil
			case "ref":
				id, ok := inner.(string)
				if !ok || id == "" {
					return nil, fmt.Errorf("ref needs a shape name")
				}
				return goshape.Named(id), nil
			default:
				return nil, fmt.Errorf("unknown type constructor %q", k)
			}
		}
	}
	return nil, fmt.Errorf("unsupported type expression %T", v)
}

// dependencies returns the shape names the document needs, in first-seen
// order, excluding itself.
func (d Document) dependencies() []string {
	var out []string
	seen := map[string]struct{}{d.Name: {}}
	add := func(id string) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	if d.Extends != "" {
		add(d.Extends)
	}
	var walk func(goshape.Descriptor)
	walk = func(x goshape.Descriptor) {
		switch t := x.(type) {
		case goshape.ArrayOf:
			walk(t.Elem)
		case goshape.MapOf:
			walk(t.Value)
		case goshape.UnionOf:
			for _, m := range t.Members {
				walk(m)
			}
		case goshape.NamedShape:
			add(t.ID)
		}
	}
	props := append([]Property(nil), d.Properties...)
	if d.Additional != nil {
		props = append(props, *d.Additional)
	}
	if d.Value != nil {
		props = append(props, *d.Value)
	}
	for _, p := range props {
		if desc, err := Descriptor(p.Type); err == nil {
			walk(desc)
		}
	}
	return out
}
