// Package goshape provides:
//
// - A closed Type Descriptor language (scalars, arrays, maps, unions, named shapes)
// - Property and object options (required/nullable/default/enum/pattern/format/inline)
// - A per-definition Reference Registry mapping reference markers to defining shapes
// - A stable definition-time error model (DefinitionError with codes and sentinels)
//
// Given a declared shape, the engine produces two artifacts that stay consistent:
// a validation schema tree (see package jsonschema) and a structural type
// signature (see package typesig). Both are built through a Catalog in package dsl.
//
// Design policy:
// - Keep only the shared vocabulary in the root package; assembly lives under internal/.
// - Place the builder and catalog under dsl/, document loading under decl/, and the CLI under cmd/goshape.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	cat := dsl.NewCatalog()
//	person := dsl.Object("Person").
//	    Field("name", goshape.String()).Required().
//	    MustBuild(cat)
//	employee := dsl.Object("Employee").
//	    Extends(person).
//	    Field("level", goshape.String()).
//	    MustBuild(cat)
//	fmt.Println(employee.Signature())
package goshape
