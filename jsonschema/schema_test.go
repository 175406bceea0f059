package jsonschema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	goshape "github.com/reoring/goshape"
	js "github.com/reoring/goshape/jsonschema"
)

func person() *js.Node {
	return &js.Node{
		Kind:  js.KindObject,
		Title: "Person",
		Properties: js.Properties{
			{Name: "name", Schema: js.Scalar(js.KindString)},
			{Name: "tags", Schema: &js.Node{Kind: js.KindArray, Items: js.Scalar(js.KindString)}},
		},
		Required: []string{"name"},
	}
}

func TestEqualAndClone(t *testing.T) {
	a := person()
	b := a.Clone()
	require.True(t, a.Equal(b))

	b.Properties[1].Schema.Items.Kind = js.KindInteger
	assert.False(t, a.Equal(b))
	assert.Equal(t, js.KindString, a.Properties[1].Schema.Items.Kind, "clone must not share children")

	c := a.Clone()
	c.Default, c.HasDefault = map[string]any{"name": "x"}, true
	assert.False(t, a.Equal(c))

	var nilNode *js.Node
	assert.True(t, nilNode.Equal(nil))
	assert.False(t, nilNode.Equal(a))
	assert.Nil(t, nilNode.Clone())
}

func TestDedupe_KeepsFirstOccurrence(t *testing.T) {
	s1 := js.Scalar(js.KindString)
	n := js.Scalar(js.KindNumber)
	s2 := js.Scalar(js.KindString)
	out := js.Dedupe([]*js.Node{s1, n, s2, js.RefTo("#/definitions/A"), js.RefTo("#/definitions/A")})
	require.Len(t, out, 3)
	assert.Same(t, s1, out[0])
	assert.Same(t, n, out[1])
	assert.Equal(t, js.KindRef, out[2].Kind)
}

func TestProperties(t *testing.T) {
	p := person().Properties
	assert.Equal(t, []string{"name", "tags"}, p.Names())
	assert.True(t, p.Has("tags"))
	_, ok := p.Get("missing")
	assert.False(t, ok)

	replaced := p.Set("name", js.Scalar(js.KindInteger))
	assert.Equal(t, []string{"name", "tags"}, replaced.Names())
	got, _ := replaced.Get("name")
	assert.Equal(t, js.KindInteger, got.Kind)
	orig, _ := p.Get("name")
	assert.Equal(t, js.KindString, orig.Kind, "Set must not modify the receiver")
}

func TestIsMap(t *testing.T) {
	m := &js.Node{Kind: js.KindObject, AdditionalProperties: js.Scalar(js.KindNumber)}
	assert.True(t, m.IsMap())
	m.Title = "Scores"
	assert.True(t, m.IsMap())
	assert.False(t, person().IsMap())
}

func TestMarshal_KeyOrder(t *testing.T) {
	n := person()
	n.Description = "a person"
	b, err := n.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t,
		`{"title":"Person","description":"a person","type":"object","properties":{"name":{"type":"string"},"tags":{"type":"array","items":{"type":"string"}}},"required":["name"],"x-representation":"open-map"}`,
		string(b))
}

func TestMarshal_Nullability(t *testing.T) {
	s := js.Scalar(js.KindString)
	s.Nullable, s.HasDefault = true, true
	b, err := s.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":["string","null"],"default":null}`, string(b))

	u := js.Union(js.Scalar(js.KindNumber), js.Scalar(js.KindString))
	u.Nullable = true
	b, err = u.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"oneOf":[{"type":"number"},{"type":"string"},{"type":"null"}]}`, string(b))

	ref := js.Union(js.RefTo(goshape.RefPath("Node")))
	ref.Nullable = true
	b, err = ref.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"oneOf":[{"$ref":"#/definitions/Node"},{"type":"null"}]}`, string(b))

	m := &js.Node{Kind: js.KindObject, AdditionalProperties: js.Scalar(js.KindInteger)}
	b, err = m.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"object","additionalProperties":{"type":"integer"}}`, string(b))
}

func TestDocument(t *testing.T) {
	root := &js.Node{
		Kind:           js.KindObject,
		Title:          "Employee",
		Representation: goshape.FixedRecord,
		Properties: js.Properties{
			{Name: "boss", Schema: js.RefTo(goshape.RefPath("Person"))},
			{Name: "next", Schema: js.RefTo(goshape.RefPath("Employee"))},
		},
		Required: []string{"boss", "next"},
	}
	assert.Equal(t, []string{"Person", "Employee"}, js.Titles(root))

	doc := js.Document{Root: root, Definitions: map[string]*js.Node{"Person": person()}}
	b, err := js.MarshalIndent(doc)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"title": "Employee",
		"type": "object",
		"properties": {
			"boss": {"$ref": "#/definitions/Person"},
			"next": {"$ref": "#/definitions/Employee"}
		},
		"required": ["boss", "next"],
		"x-representation": "fixed-record",
		"definitions": {
			"Person": {
				"title": "Person",
				"type": "object",
				"properties": {"name": {"type": "string"}, "tags": {"type": "array", "items": {"type": "string"}}},
				"required": ["name"],
				"x-representation": "open-map"
			}
		}
	}`, string(b))
}
