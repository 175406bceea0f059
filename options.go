package goshape

// PropertyOptions configures a single property (or a top-level value shape).
type PropertyOptions struct {
	Required    *bool // nil inherits the enclosing object's DefaultRequired.
	Nullable    bool
	Default     any
	HasDefault  bool // distinguishes an explicit nil default from no default.
	Description string
	Example     any
	Enum        []any
	Pattern     string
	Format      string
	Inline      *bool // nil inherits the enclosing object's DefaultInline.
}

// Bool returns a pointer to b, for tri-state option fields.
func Bool(b bool) *bool { return &b }

// WithDefault returns a copy of o carrying the default value v.
func (o PropertyOptions) WithDefault(v any) PropertyOptions {
	o.Default = v
	o.HasDefault = true
	return o
}

// IsRequired reports the effective required flag (true when unset).
func (o PropertyOptions) IsRequired() bool {
	if o.Required == nil {
		return true
	}
	return *o.Required
}

// IsInline reports the effective inline flag (false when unset).
func (o PropertyOptions) IsInline() bool {
	if o.Inline == nil {
		return false
	}
	return *o.Inline
}

// Nested returns the options that continue into an element, value or member
// descriptor. Options describing the container itself are erased.
func (o PropertyOptions) Nested() PropertyOptions {
	return PropertyOptions{Required: o.Required, Inline: o.Inline}
}

// ObjectOptions configures an object shape.
type ObjectOptions struct {
	Title          string // declared name used in reference markers; defaults to the shape id.
	Description    string
	Example        any
	Representation Representation
	// DefaultRequired applies to properties that do not set Required (nil means true).
	DefaultRequired *bool
	// DefaultInline applies to properties that do not set Inline.
	DefaultInline bool
}

// RequiredDefault reports the effective object-level required default.
func (o ObjectOptions) RequiredDefault() bool {
	if o.DefaultRequired == nil {
		return true
	}
	return *o.DefaultRequired
}
