// Package openapi exports defined shapes as OpenAPI 3 component schemas.
package openapi

import (
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	goshape "github.com/reoring/goshape"
	"github.com/reoring/goshape/dsl"
	js "github.com/reoring/goshape/jsonschema"
)

// ComponentsPrefix is the reference prefix of exported schemas.
const ComponentsPrefix = "#/components/schemas/"

// RepresentationExtension carries the object representation.
const RepresentationExtension = "x-representation"

// Schema converts a schema node. Reference markers are rewritten from
// #/definitions/<title> to #/components/schemas/<title>.
func Schema(n *js.Node) *openapi3.SchemaRef {
	if n == nil {
		return nil
	}
	if n.Kind == js.KindRef {
		return openapi3.NewSchemaRef(componentRef(n.Ref), nil)
	}
	s := &openapi3.Schema{
		Title:       n.Title,
		Description: n.Description,
		Nullable:    n.Nullable,
		Pattern:     n.Pattern,
		Format:      n.Format,
		Example:     n.Example,
	}
	if n.HasDefault {
		s.Default = n.Default
	}
	if len(n.Enum) > 0 {
		s.Enum = append([]any(nil), n.Enum...)
	}
	switch n.Kind {
	case js.KindInteger:
		s.Type = openapi3.TypeInteger
	case js.KindNumber:
		s.Type = openapi3.TypeNumber
	case js.KindString:
		s.Type = openapi3.TypeString
	case js.KindBoolean:
		s.Type = openapi3.TypeBoolean
	case js.KindArray:
		s.Type = openapi3.TypeArray
		s.Items = Schema(n.Items)
	case js.KindObject:
		s.Type = openapi3.TypeObject
		if len(n.Properties) > 0 {
			s.Properties = make(openapi3.Schemas, len(n.Properties))
			for _, p := range n.Properties {
				s.Properties[p.Name] = Schema(p.Schema)
			}
		}
		if len(n.Required) > 0 {
			s.Required = append([]string(nil), n.Required...)
		}
		if n.AdditionalProperties != nil {
			s.AdditionalProperties = openapi3.AdditionalProperties{Schema: Schema(n.AdditionalProperties)}
		} else if n.Representation == goshape.FixedRecord {
			no := false
			s.AdditionalProperties = openapi3.AdditionalProperties{Has: &no}
		}
		if !n.IsMap() {
			s.Extensions = map[string]any{RepresentationExtension: n.Representation.String()}
		}
	case js.KindUnion:
		for _, m := range n.OneOf {
			if m.Kind == js.KindNull {
				s.Nullable = true
				continue
			}
			s.OneOf = append(s.OneOf, Schema(m))
		}
	case js.KindNull:
		s.Nullable = true
	}
	return openapi3.NewSchemaRef("", s)
}

func componentRef(ref string) string {
	if t, ok := goshape.TitleFromRef(ref); ok {
		return ComponentsPrefix + t
	}
	return strings.Replace(ref, goshape.DefinitionsPrefix, ComponentsPrefix, 1)
}

// Components converts definitions into component schemas keyed by title.
func Components(defs ...*dsl.Definition) *openapi3.Components {
	c := &openapi3.Components{Schemas: make(openapi3.Schemas, len(defs))}
	for _, d := range defs {
		c.Schemas[d.Title] = Schema(d.Schema())
	}
	return c
}

// Document wraps the components of defs in an OpenAPI 3.0 document without paths.
func Document(title, version string, defs ...*dsl.Definition) *openapi3.T {
	return &openapi3.T{
		OpenAPI:    "3.0.3",
		Info:       &openapi3.Info{Title: title, Version: version},
		Paths:      openapi3.Paths{},
		Components: Components(defs...),
	}
}
