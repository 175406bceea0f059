package dsl

import (
	"sync"

	"github.com/rs/zerolog"

	goshape "github.com/reoring/goshape"
	"github.com/reoring/goshape/internal/engine"
	"github.com/reoring/goshape/internal/normalize"
	js "github.com/reoring/goshape/jsonschema"
	"github.com/reoring/goshape/typesig"
)

// Catalog is the arena of definitions, indexed by declared name. A shape
// must be defined before another shape can reference or extend it, except
// for references to itself.
type Catalog struct {
	mu      sync.RWMutex
	defs    map[string]*Definition
	byTitle map[string]*Definition
	order   []string
	logger  zerolog.Logger
}

// CatalogOption configures a Catalog.
type CatalogOption func(*Catalog)

// WithLogger sets the logger used for assembly tracing.
func WithLogger(l zerolog.Logger) CatalogOption {
	return func(c *Catalog) { c.logger = l }
}

// NewCatalog returns an empty catalog. Logging is disabled by default.
func NewCatalog(opts ...CatalogOption) *Catalog {
	c := &Catalog{
		defs:    map[string]*Definition{},
		byTitle: map[string]*Definition{},
		logger:  zerolog.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Define assembles a shape and registers it. On error the catalog is left
// unchanged.
func (c *Catalog) Define(req Request) (*Definition, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if req.ID == "" {
		return nil, goshape.NewError(goshape.CodeInvalidConstraint, "/", "shape name is empty")
	}
	title := req.Title
	if title == "" {
		title = req.Object.Title
	}
	if title == "" {
		title = req.ID
	}
	if _, dup := c.defs[req.ID]; dup {
		return nil, goshape.InShape(goshape.NewError(goshape.CodeInvalidConstraint, "/",
			"shape "+req.ID+" is already defined", "shape", req.ID), req.ID)
	}
	if other, dup := c.byTitle[title]; dup {
		return nil, goshape.InShape(goshape.NewError(goshape.CodeInvalidConstraint, "/",
			"title "+title+" is already used by "+other.ID, "title", title), req.ID)
	}

	ctx := engine.NewContext(req.ID, title, shapes{c}, &c.logger)
	var (
		def *Definition
		err error
	)
	if req.IsObject() {
		def, err = c.defineObject(ctx, req)
	} else {
		def, err = c.defineValue(ctx, req)
	}
	if err != nil {
		c.logger.Debug().Err(err).Str("shape", req.ID).Msg("definition rejected")
		return nil, err
	}
	def.ID, def.Title = req.ID, title

	c.defs[def.ID] = def
	c.byTitle[def.Title] = def
	c.order = append(c.order, def.ID)
	c.logger.Debug().Str("shape", def.ID).Str("signature", def.signature.String()).
		Int("references", def.registry.Len()).Msg("shape defined")
	return def, nil
}

func (c *Catalog) defineObject(ctx *engine.Context, req Request) (*Definition, error) {
	spec := engine.ObjectSpec{Options: req.Object}
	spec.Options.Title = ctx.Title
	for _, p := range req.Properties {
		spec.Properties = append(spec.Properties, engine.PropertySpec{Name: p.Name, Descriptor: p.Descriptor, Options: p.Options})
	}
	if req.Additional != nil {
		spec.Additional = &engine.PropertySpec{Descriptor: req.Additional.Descriptor, Options: req.Additional.Options}
	}

	parent := req.ExtendsDef
	if parent == nil && req.Extends != "" {
		p, ok := c.defs[req.Extends]
		if !ok {
			return nil, goshape.InShape(goshape.NewError(goshape.CodeUnresolvedDependency, "/",
				"extended shape "+req.Extends+" must be defined first", "shape", req.Extends), req.ID)
		}
		parent = p
	}
	if parent != nil {
		if !parent.IsObject() {
			return nil, goshape.InShape(goshape.NewError(goshape.CodeInvalidConstraint, "/",
				"only object shapes can be extended", "shape", parent.ID), req.ID)
		}
		fin := parent.finalized
		spec.Extends = &fin
	}

	fin, err := engine.AssembleObject(ctx, spec)
	if err != nil {
		return nil, err
	}
	opts := typesig.ObjectOptions{
		Name:           req.ID,
		Representation: req.Object.Representation,
		Own:            fin.OwnProperties(),
	}
	if parent != nil {
		base := parent.signature
		opts.Base = &base
	}
	sig, err := typesig.GenerateObject(normalize.Normalize(fin.Schema()), fin.Registry(), opts)
	if err != nil {
		return nil, err
	}
	return &Definition{
		Representation: req.Object.Representation,
		node:           fin.Schema(),
		registry:       fin.Registry(),
		signature:      sig,
		finalized:      fin,
		object:         true,
	}, nil
}

func (c *Catalog) defineValue(ctx *engine.Context, req Request) (*Definition, error) {
	n, err := engine.AssembleValue(ctx, req.Descriptor, req.Options)
	if err != nil {
		return nil, err
	}
	expr, err := typesig.Generate(normalize.Normalize(n), ctx.Registry)
	if err != nil {
		return nil, goshape.InShape(err, req.ID)
	}
	return &Definition{
		node:      n,
		registry:  ctx.Registry,
		signature: typesig.Signature{Name: req.ID, Expr: expr},
	}, nil
}

// Lookup returns the definition registered under id.
func (c *Catalog) Lookup(id string) (*Definition, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	d, ok := c.defs[id]
	return d, ok
}

// MustLookup is like Lookup but panics when id is not defined.
func (c *Catalog) MustLookup(id string) *Definition {
	d, ok := c.Lookup(id)
	if !ok {
		panic("goshape: shape " + id + " is not defined")
	}
	return d
}

// Definitions returns all definitions in definition order.
func (c *Catalog) Definitions() []*Definition {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*Definition, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.defs[id])
	}
	return out
}

// Document bundles the schema of id with every definition it references,
// directly or transitively.
func (c *Catalog) Document(id string) (js.Document, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	root, ok := c.defs[id]
	if !ok {
		return js.Document{}, goshape.NewError(goshape.CodeUnresolvedDependency, "/", "shape "+id+" is not defined", "shape", id)
	}
	doc := js.Document{Root: root.node.Clone(), Definitions: map[string]*js.Node{}}
	queue := js.Titles(root.node)
	for len(queue) > 0 {
		t := queue[0]
		queue = queue[1:]
		if _, done := doc.Definitions[t]; done {
			continue
		}
		d, ok := c.byTitle[t]
		if !ok {
			return js.Document{}, goshape.InShape(goshape.NewError(goshape.CodeUnresolvedDependency, "/",
				"referenced title "+t+" is not defined", "title", t), id)
		}
		doc.Definitions[t] = d.node.Clone()
		queue = append(queue, js.Titles(d.node)...)
	}
	return doc, nil
}

// shapes adapts the catalog to engine.Resolver. It reads the maps without
// locking and is only used while Define holds the write lock.
type shapes struct{ c *Catalog }

var _ engine.Resolver = shapes{}

func (s shapes) Shape(id string) (engine.Shape, bool) {
	d, ok := s.c.defs[id]
	if !ok {
		return engine.Shape{}, false
	}
	return engine.Shape{ID: d.ID, Title: d.Title, Schema: d.node, Registry: d.registry}, true
}

func (s shapes) SchemaOf(id string) (*js.Node, bool) {
	d, ok := s.c.defs[id]
	if !ok {
		return nil, false
	}
	return d.node, true
}

func (s shapes) SchemaAt(ref string) (*js.Node, bool) {
	t, ok := goshape.TitleFromRef(ref)
	if !ok {
		return nil, false
	}
	d, ok := s.c.byTitle[t]
	if !ok {
		return nil, false
	}
	return d.node, true
}
