package engine_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	goshape "github.com/reoring/goshape"
	"github.com/reoring/goshape/internal/engine"
	js "github.com/reoring/goshape/jsonschema"
)

// shapeSet is an in-memory engine.Resolver.
type shapeSet map[string]engine.Shape

func (s shapeSet) Shape(id string) (engine.Shape, bool) {
	sh, ok := s[id]
	return sh, ok
}

func (s shapeSet) SchemaOf(id string) (*js.Node, bool) {
	sh, ok := s[id]
	return sh.Schema, ok
}

func (s shapeSet) SchemaAt(ref string) (*js.Node, bool) {
	for _, sh := range s {
		if goshape.RefPath(sh.Title) == ref {
			return sh.Schema, true
		}
	}
	return nil, false
}

func (s shapeSet) add(f engine.Finalized, id string) {
	s[id] = engine.Shape{ID: id, Title: f.Schema().Title, Schema: f.Schema(), Registry: f.Registry()}
}

func prop(name string, d goshape.Descriptor, o goshape.PropertyOptions) engine.PropertySpec {
	return engine.PropertySpec{Name: name, Descriptor: d, Options: o}
}

func optional() goshape.PropertyOptions { return goshape.PropertyOptions{Required: goshape.Bool(false)} }

func definePerson(t *testing.T, shapes shapeSet) engine.Finalized {
	t.Helper()
	ctx := engine.NewContext("Person", "", shapes, nil)
	f, err := engine.AssembleObject(ctx, engine.ObjectSpec{Properties: []engine.PropertySpec{
		prop("name", goshape.String(), goshape.PropertyOptions{}),
	}})
	require.NoError(t, err)
	shapes.add(f, "Person")
	return f
}

func TestAssemble_Scalars(t *testing.T) {
	ctx := engine.NewContext("X", "", nil, nil)
	n, err := engine.Assemble(ctx, "level", goshape.String(), goshape.PropertyOptions{
		Nullable: true, Enum: []any{"a"}, Pattern: "^a$", Format: "f", Description: "d",
	}.WithDefault("a"))
	require.NoError(t, err)
	assert.Equal(t, js.KindString, n.Kind)
	assert.True(t, n.Nullable)
	assert.Equal(t, "a", n.Default)
	assert.Equal(t, []any{"a"}, n.Enum)
	assert.Equal(t, "^a$", n.Pattern)
	assert.Equal(t, "d", n.Description)
}

func TestAssemble_ContainersEraseNestedOptions(t *testing.T) {
	ctx := engine.NewContext("X", "", nil, nil)
	o := goshape.PropertyOptions{Nullable: true, Description: "tags"}.WithDefault([]any{})

	n, err := engine.Assemble(ctx, "tags", goshape.Array(goshape.String()), o)
	require.NoError(t, err)
	assert.True(t, n.Nullable)
	assert.True(t, n.HasDefault)
	require.NotNil(t, n.Items)
	assert.False(t, n.Items.Nullable)
	assert.False(t, n.Items.HasDefault)
	assert.Empty(t, n.Items.Description)

	m, err := engine.Assemble(ctx, "scores", goshape.Map(goshape.Number()), o)
	require.NoError(t, err)
	assert.True(t, m.IsMap())
	assert.False(t, m.AdditionalProperties.Nullable)
}

func TestAssemble_UnionKeepsNestingAndDedupes(t *testing.T) {
	ctx := engine.NewContext("X", "", nil, nil)
	d := goshape.Union(
		goshape.String(),
		goshape.Union(goshape.Number(), goshape.Boolean()),
		goshape.String(),
	)
	n, err := engine.Assemble(ctx, "v", d, goshape.PropertyOptions{Nullable: true})
	require.NoError(t, err)
	require.Len(t, n.OneOf, 2)
	assert.Equal(t, js.KindString, n.OneOf[0].Kind)
	assert.Equal(t, js.KindUnion, n.OneOf[1].Kind, "nested union is kept")
	assert.True(t, n.Nullable)
	assert.False(t, n.OneOf[1].Nullable)
}

func TestAssemble_NamedReferenceAndInline(t *testing.T) {
	shapes := shapeSet{}
	definePerson(t, shapes)

	ctx := engine.NewContext("Team", "", shapes, nil)
	ref, err := engine.Assemble(ctx, "lead", goshape.Named("Person"), goshape.PropertyOptions{})
	require.NoError(t, err)
	assert.Equal(t, js.KindRef, ref.Kind)
	assert.Equal(t, "#/definitions/Person", ref.Ref)
	unit, ok := ctx.Registry.Resolve(ref.Ref)
	require.True(t, ok)
	assert.Equal(t, "Person", unit)

	wrapped, err := engine.Assemble(ctx, "backup", goshape.Named("Person"), goshape.PropertyOptions{Nullable: true}.WithDefault(nil))
	require.NoError(t, err)
	assert.Equal(t, js.KindUnion, wrapped.Kind)
	require.Len(t, wrapped.OneOf, 1)
	assert.Equal(t, js.KindRef, wrapped.OneOf[0].Kind)
	assert.True(t, wrapped.Nullable)
	assert.True(t, wrapped.HasDefault)

	inl, err := engine.Assemble(ctx, "owner", goshape.Named("Person"), goshape.PropertyOptions{Inline: goshape.Bool(true)})
	require.NoError(t, err)
	assert.Equal(t, js.KindObject, inl.Kind)
	assert.Equal(t, []string{"name"}, inl.Properties.Names())
}

func TestAssemble_Unresolved(t *testing.T) {
	ctx := engine.NewContext("Team", "", shapeSet{}, nil)
	_, err := engine.Assemble(ctx, "lead", goshape.Named("Person"), goshape.PropertyOptions{})
	assert.True(t, errors.Is(err, goshape.ErrUnresolvedDependency))

	// a shape cannot embed itself
	ctx = engine.NewContext("Node", "", shapeSet{}, nil)
	_, err = engine.Assemble(ctx, "next", goshape.Named("Node"), goshape.PropertyOptions{Inline: goshape.Bool(true)})
	assert.True(t, errors.Is(err, goshape.ErrUnresolvedDependency))
}

func TestAssembleObject_SelfReference(t *testing.T) {
	ctx := engine.NewContext("Node", "LinkedNode", shapeSet{}, nil)
	f, err := engine.AssembleObject(ctx, engine.ObjectSpec{Properties: []engine.PropertySpec{
		prop("value", goshape.Integer(), goshape.PropertyOptions{}),
		prop("next", goshape.Named("Node"), goshape.PropertyOptions{Required: goshape.Bool(false), Nullable: true}),
	}})
	require.NoError(t, err)
	next, _ := f.Schema().Properties.Get("next")
	require.Equal(t, js.KindUnion, next.Kind)
	assert.Equal(t, "#/definitions/LinkedNode", next.OneOf[0].Ref)

	unit, ok := f.Registry().Resolve("#/definitions/LinkedNode")
	require.True(t, ok)
	assert.Equal(t, "Node", unit)
	assert.True(t, f.Registry().Sealed())
	assert.Equal(t, []string{"value"}, f.Schema().Required)
}

func TestAssembleObject_Errors(t *testing.T) {
	cases := []struct {
		name string
		spec engine.ObjectSpec
		want error
	}{
		{
			name: "duplicate",
			spec: engine.ObjectSpec{Properties: []engine.PropertySpec{
				prop("a", goshape.String(), goshape.PropertyOptions{}),
				prop("a", goshape.Integer(), goshape.PropertyOptions{}),
			}},
			want: goshape.ErrDuplicateProperty,
		},
		{
			name: "enum on integer",
			spec: engine.ObjectSpec{Properties: []engine.PropertySpec{
				prop("a", goshape.Integer(), goshape.PropertyOptions{Enum: []any{1}}),
			}},
			want: goshape.ErrInvalidConstraint,
		},
		{
			name: "default mismatch",
			spec: engine.ObjectSpec{Properties: []engine.PropertySpec{
				prop("a", goshape.Array(goshape.Integer()), goshape.PropertyOptions{}.WithDefault([]any{1, "2"})),
			}},
			want: goshape.ErrDefaultTypeMismatch,
		},
		{
			name: "fixed record optional without default",
			spec: engine.ObjectSpec{
				Options:    goshape.ObjectOptions{Representation: goshape.FixedRecord},
				Properties: []engine.PropertySpec{prop("a", goshape.String(), optional())},
			},
			want: goshape.ErrStructCompatibility,
		},
		{
			name: "fixed record with additional properties",
			spec: engine.ObjectSpec{
				Options:    goshape.ObjectOptions{Representation: goshape.FixedRecord},
				Additional: &engine.PropertySpec{Descriptor: goshape.String()},
			},
			want: goshape.ErrStructCompatibility,
		},
		{
			name: "empty union",
			spec: engine.ObjectSpec{Properties: []engine.PropertySpec{
				prop("u", goshape.Union(), goshape.PropertyOptions{}),
			}},
			want: goshape.ErrInvalidConstraint,
		},
		{
			name: "empty union nested in array",
			spec: engine.ObjectSpec{Properties: []engine.PropertySpec{
				prop("u", goshape.Array(goshape.Union()), goshape.PropertyOptions{}),
			}},
			want: goshape.ErrInvalidConstraint,
		},
		{
			name: "unresolved reference",
			spec: engine.ObjectSpec{Properties: []engine.PropertySpec{
				prop("a", goshape.Named("Ghost"), goshape.PropertyOptions{}),
			}},
			want: goshape.ErrUnresolvedDependency,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := engine.NewContext("Shape", "", shapeSet{}, nil)
			_, err := engine.AssembleObject(ctx, tc.spec)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
			de, ok := goshape.AsDefinitionError(err)
			require.True(t, ok)
			assert.Equal(t, "Shape", de.Shape)
		})
	}
}

func TestAssembleObject_FixedRecordAcceptsNullableOrDefaulted(t *testing.T) {
	ctx := engine.NewContext("Cfg", "", shapeSet{}, nil)
	f, err := engine.AssembleObject(ctx, engine.ObjectSpec{
		Options: goshape.ObjectOptions{Representation: goshape.FixedRecord, DefaultRequired: goshape.Bool(false)},
		Properties: []engine.PropertySpec{
			prop("port", goshape.Integer(), goshape.PropertyOptions{}.WithDefault(8080)),
			prop("host", goshape.String(), goshape.PropertyOptions{Nullable: true}),
		},
	})
	require.NoError(t, err)
	assert.Empty(t, f.Schema().Required)
	assert.Equal(t, goshape.FixedRecord, f.Schema().Representation)
}

func TestAssembleObject_Idempotent(t *testing.T) {
	spec := engine.ObjectSpec{Properties: []engine.PropertySpec{
		prop("id", goshape.Union(goshape.Integer(), goshape.String()), goshape.PropertyOptions{}),
		prop("tags", goshape.Array(goshape.String()), optional()),
		prop("next", goshape.Named("N"), goshape.PropertyOptions{Nullable: true}),
	}}
	a, err := engine.AssembleObject(engine.NewContext("N", "", shapeSet{}, nil), spec)
	require.NoError(t, err)
	b, err := engine.AssembleObject(engine.NewContext("N", "", shapeSet{}, nil), spec)
	require.NoError(t, err)
	assert.True(t, a.Schema().Equal(b.Schema()))
	assert.Equal(t, a.Registry().Paths(), b.Registry().Paths())
}

func TestExtend_ParentThenChild(t *testing.T) {
	shapes := shapeSet{}
	person := definePerson(t, shapes)

	ctx := engine.NewContext("Employee", "", shapes, nil)
	f, err := engine.AssembleObject(ctx, engine.ObjectSpec{
		Extends: &person,
		Properties: []engine.PropertySpec{
			prop("level", goshape.String(), goshape.PropertyOptions{}),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "level"}, f.Schema().Properties.Names())
	assert.Equal(t, []string{"name", "level"}, f.Schema().Required)
	assert.Equal(t, []string{"level"}, f.OwnProperties())
	assert.Equal(t, "Employee", f.Schema().Title)
}

func TestExtend_ChildWinsOnCollision(t *testing.T) {
	shapes := shapeSet{}
	ctx := engine.NewContext("Base", "", shapes, nil)
	base, err := engine.AssembleObject(ctx, engine.ObjectSpec{Properties: []engine.PropertySpec{
		prop("id", goshape.String(), goshape.PropertyOptions{}),
		prop("name", goshape.String(), goshape.PropertyOptions{}),
	}})
	require.NoError(t, err)

	ctx = engine.NewContext("Derived", "", shapes, nil)
	f, err := engine.AssembleObject(ctx, engine.ObjectSpec{
		Extends: &base,
		Properties: []engine.PropertySpec{
			prop("extra", goshape.Boolean(), goshape.PropertyOptions{}),
			prop("id", goshape.Integer(), optional()),
		},
	})
	require.NoError(t, err)
	n := f.Schema()
	assert.Equal(t, []string{"id", "name", "extra"}, n.Properties.Names())
	id, _ := n.Properties.Get("id")
	assert.Equal(t, js.KindInteger, id.Kind)
	assert.Equal(t, []string{"name", "extra"}, n.Required)

	// the parent is untouched
	pid, _ := base.Schema().Properties.Get("id")
	assert.Equal(t, js.KindString, pid.Kind)
}

func TestExtend_FixedRecordChecksInheritedProperties(t *testing.T) {
	shapes := shapeSet{}
	ctx := engine.NewContext("Base", "", shapes, nil)
	base, err := engine.AssembleObject(ctx, engine.ObjectSpec{Properties: []engine.PropertySpec{
		prop("note", goshape.String(), optional()),
	}})
	require.NoError(t, err)

	ctx = engine.NewContext("Strict", "", shapes, nil)
	_, err = engine.AssembleObject(ctx, engine.ObjectSpec{
		Extends: &base,
		Options: goshape.ObjectOptions{Representation: goshape.FixedRecord},
	})
	assert.True(t, errors.Is(err, goshape.ErrStructCompatibility))
}

func TestExtend_ZeroFinalized(t *testing.T) {
	ctx := engine.NewContext("Child", "", shapeSet{}, nil)
	_, err := engine.AssembleObject(ctx, engine.ObjectSpec{Extends: &engine.Finalized{}})
	assert.True(t, errors.Is(err, goshape.ErrUnresolvedDependency))
}

func TestAssembleValue(t *testing.T) {
	ctx := engine.NewContext("Level", "", nil, nil)
	n, err := engine.AssembleValue(ctx, goshape.String(), goshape.PropertyOptions{Enum: []any{"junior", "senior"}})
	require.NoError(t, err)
	assert.Equal(t, "Level", n.Title)
	assert.True(t, ctx.Registry.Sealed())

	ctx = engine.NewContext("Bad", "", nil, nil)
	_, err = engine.AssembleValue(ctx, goshape.Boolean(), goshape.PropertyOptions{Pattern: "x"})
	assert.True(t, errors.Is(err, goshape.ErrInvalidConstraint))
}
