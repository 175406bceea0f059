// Package engine assembles declared shapes into validation schema nodes.
// This package is internal and not part of the public API.
package engine

import (
	"github.com/rs/zerolog"

	goshape "github.com/reoring/goshape"
	js "github.com/reoring/goshape/jsonschema"
	"github.com/reoring/goshape/rules"
)

// Shape is an already-assembled named shape visible to the definition in progress.
type Shape struct {
	ID       string
	Title    string
	Schema   *js.Node
	Registry *goshape.Registry
}

// Resolver looks up assembled shapes by id and by reference marker path.
type Resolver interface {
	Shape(id string) (Shape, bool)
	rules.Shapes
}

// Context carries the state of one top-level definition through nested
// assembly calls.
type Context struct {
	Name     string // id of the shape being defined
	Title    string // declared title of the shape being defined
	Registry *goshape.Registry
	Shapes   Resolver
	Logger   *zerolog.Logger
}

// NewContext returns a Context with a fresh registry. title defaults to name.
func NewContext(name, title string, shapes Resolver, logger *zerolog.Logger) *Context {
	if title == "" {
		title = name
	}
	return &Context{Name: name, Title: title, Registry: goshape.NewRegistry(), Shapes: shapes, Logger: logger}
}

func (c *Context) log() *zerolog.Logger {
	if c.Logger == nil {
		nop := zerolog.Nop()
		return &nop
	}
	return c.Logger
}

func (c *Context) checker() rules.Checker {
	var shapes rules.Shapes
	if c.Shapes != nil {
		shapes = c.Shapes
	}
	return rules.Checker{Shapes: shapes, Self: c.Name}
}

// lookup returns the named shape or an unresolved dependency error.
func (c *Context) lookup(path, id string) (Shape, error) {
	if c.Shapes != nil {
		if sh, ok := c.Shapes.Shape(id); ok {
			return sh, nil
		}
	}
	return Shape{}, goshape.NewError(goshape.CodeUnresolvedDependency, path,
		"shape "+id+" must be defined before it is referenced", "shape", id)
}

// absorb copies the entries of another definition's registry into the
// current one, so references inside embedded or inherited nodes resolve.
func (c *Context) absorb(r *goshape.Registry) {
	for _, p := range r.Paths() {
		u, _ := r.Resolve(p)
		c.Registry.Record(p, u)
	}
}
