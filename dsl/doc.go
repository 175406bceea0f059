// Package dsl is the Go front end for declaring shapes.
//
// Overview
//   - Catalog: the arena of definitions. Shapes are defined one at a time; a
//     shape can reference itself or any shape defined before it.
//   - Builder API: Object(id).Field(name, descriptor).Required()/Optional()/Nullable()/Default(v)
//     then Build(cat)/MustBuild(cat).
//   - Value(cat, id, descriptor, opts): named non-object shapes (string enums, unions, aliases).
//   - Definition: the validation schema (Schema), reference registry (Registry) and structural
//     type signature (Signature) of a defined shape.
//
// Entry points
//   - NewCatalog(WithLogger(l)): create a catalog; assembly is traced at debug level.
//   - Object(id): create an object builder; chain Field/Extends/FixedRecord then MustBuild(cat).
//   - Catalog.Define(Request): the builder-free entry point used by package decl.
//   - Catalog.Document(id): JSON Schema bundle with every referenced definition.
//
// File layout (roles)
//   - catalog.go: Catalog, Define and the resolver handed to the assembly engine.
//   - definition.go: Request, Property and Definition.
//   - object_builder.go: objectBuilder/fieldStep, Value.
//
// Errors
//
// Every failure is a *goshape.DefinitionError; match with errors.Is against the
// goshape.Err* sentinels. A failed definition is not registered.
//
// Example
//
//	cat := dsl.NewCatalog()
//	dsl.Object("Node").
//	    Field("value", goshape.Integer()).
//	    Field("next", goshape.Named("Node")).Optional().Nullable().
//	    MustBuild(cat)
//	fmt.Println(cat.MustLookup("Node").Signature())
//	// type Node = { value: integer; next?: Node | null }
package dsl
