package dsl

import (
	goshape "github.com/reoring/goshape"
)

type objectBuilder struct {
	id         string
	props      []Property
	additional *Property
	extends    string
	extendsDef *Definition
	opts       goshape.ObjectOptions
}

type fieldStep struct {
	b   *objectBuilder
	idx int
}

// Object creates a builder for the object shape named id. Properties default
// to required and referenced, the representation to open map.
func Object(id string) *objectBuilder {
	return &objectBuilder{id: id, props: []Property{}}
}

// Field declares a property. Declaration order is kept.
func (b *objectBuilder) Field(name string, d goshape.Descriptor) *fieldStep {
	b.props = append(b.props, Property{Name: name, Descriptor: d})
	return &fieldStep{b: b, idx: len(b.props) - 1}
}

func (f *fieldStep) opts() *goshape.PropertyOptions { return &f.b.props[f.idx].Options }

// Required marks the field as required.
func (f *fieldStep) Required() *fieldStep {
	f.opts().Required = goshape.Bool(true)
	return f
}

// Optional marks the field as optional.
func (f *fieldStep) Optional() *fieldStep {
	f.opts().Required = goshape.Bool(false)
	return f
}

// Nullable permits the absent value.
func (f *fieldStep) Nullable() *fieldStep {
	f.opts().Nullable = true
	return f
}

// Default sets an explicit default. nil is accepted for nullable fields.
func (f *fieldStep) Default(v any) *fieldStep {
	o := f.opts()
	o.Default, o.HasDefault = v, true
	return f
}

// Enum restricts a string field to the listed values.
func (f *fieldStep) Enum(vs ...any) *fieldStep {
	f.opts().Enum = append([]any(nil), vs...)
	return f
}

func (f *fieldStep) Pattern(p string) *fieldStep {
	f.opts().Pattern = p
	return f
}

func (f *fieldStep) Format(s string) *fieldStep {
	f.opts().Format = s
	return f
}

func (f *fieldStep) Description(s string) *fieldStep {
	f.opts().Description = s
	return f
}

func (f *fieldStep) Example(v any) *fieldStep {
	f.opts().Example = v
	return f
}

// Inline embeds a named shape by value instead of referencing it.
func (f *fieldStep) Inline() *fieldStep {
	f.opts().Inline = goshape.Bool(true)
	return f
}

// Reference forces a reference marker even when the object inlines by default.
func (f *fieldStep) Reference() *fieldStep {
	f.opts().Inline = goshape.Bool(false)
	return f
}

// Options replaces all options of the field.
func (f *fieldStep) Options(o goshape.PropertyOptions) *fieldStep {
	*f.opts() = o
	return f
}

func (f *fieldStep) Field(name string, d goshape.Descriptor) *fieldStep { return f.b.Field(name, d) }
func (f *fieldStep) Build(c *Catalog) (*Definition, error)            { return f.b.Build(c) }
func (f *fieldStep) MustBuild(c *Catalog) *Definition                 { return f.b.MustBuild(c) }
func (f *fieldStep) End() *objectBuilder                              { return f.b }
func (f *fieldStep) FixedRecord() *objectBuilder                      { return f.b.FixedRecord() }
func (f *fieldStep) OpenMap() *objectBuilder                          { return f.b.OpenMap() }
func (f *fieldStep) Extends(def *Definition) *objectBuilder           { return f.b.Extends(def) }
func (f *fieldStep) ExtendsNamed(id string) *objectBuilder            { return f.b.ExtendsNamed(id) }
func (f *fieldStep) AdditionalProperties(d goshape.Descriptor, opts goshape.PropertyOptions) *objectBuilder {
	return f.b.AdditionalProperties(d, opts)
}

// Title sets the title used by reference markers. Defaults to the id.
func (b *objectBuilder) Title(t string) *objectBuilder {
	b.opts.Title = t
	return b
}

func (b *objectBuilder) Description(s string) *objectBuilder {
	b.opts.Description = s
	return b
}

func (b *objectBuilder) Example(v any) *objectBuilder {
	b.opts.Example = v
	return b
}

// FixedRecord selects the fixed-record representation.
func (b *objectBuilder) FixedRecord() *objectBuilder {
	b.opts.Representation = goshape.FixedRecord
	return b
}

// OpenMap selects the open-map representation (default).
func (b *objectBuilder) OpenMap() *objectBuilder {
	b.opts.Representation = goshape.OpenMap
	return b
}

// DefaultRequired sets the required-ness of fields that do not choose.
func (b *objectBuilder) DefaultRequired(v bool) *objectBuilder {
	b.opts.DefaultRequired = goshape.Bool(v)
	return b
}

// DefaultInline sets the inlining of named fields that do not choose.
func (b *objectBuilder) DefaultInline(v bool) *objectBuilder {
	b.opts.DefaultInline = v
	return b
}

// Extends inherits the properties of an already defined object shape.
func (b *objectBuilder) Extends(def *Definition) *objectBuilder {
	b.extendsDef = def
	return b
}

// ExtendsNamed is like Extends but looks the parent up by id at build time.
func (b *objectBuilder) ExtendsNamed(id string) *objectBuilder {
	b.extends = id
	return b
}

// AdditionalProperties types undeclared keys. Not allowed on fixed records.
func (b *objectBuilder) AdditionalProperties(d goshape.Descriptor, opts goshape.PropertyOptions) *objectBuilder {
	b.additional = &Property{Descriptor: d, Options: opts}
	return b
}

// Request returns the definition request the builder describes.
func (b *objectBuilder) Request() Request {
	props := make([]Property, len(b.props))
	copy(props, b.props)
	return Request{
		ID:         b.id,
		Title:      b.opts.Title,
		Properties: props,
		Additional: b.additional,
		Extends:    b.extends,
		ExtendsDef: b.extendsDef,
		Object:     b.opts,
	}
}

// Build defines the shape in c.
func (b *objectBuilder) Build(c *Catalog) (*Definition, error) { return c.Define(b.Request()) }

// MustBuild is like Build but panics on error.
func (b *objectBuilder) MustBuild(c *Catalog) *Definition {
	d, err := b.Build(c)
	if err != nil {
		panic(err)
	}
	return d
}

// Value defines a non-object shape, for example a named string enum or a
// union alias.
func Value(c *Catalog, id string, d goshape.Descriptor, opts goshape.PropertyOptions) (*Definition, error) {
	if d == nil {
		return nil, goshape.NewError(goshape.CodeInvalidConstraint, "/", "missing descriptor", "shape", id)
	}
	return c.Define(Request{ID: id, Descriptor: d, Options: opts})
}
