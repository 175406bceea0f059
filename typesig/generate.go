package typesig

import (
	goshape "github.com/reoring/goshape"
	"github.com/reoring/goshape/internal/normalize"
	js "github.com/reoring/goshape/jsonschema"
)

// Resolver maps reference marker paths to the shape that defines them.
// *goshape.Registry satisfies it.
type Resolver interface {
	Resolve(path string) (string, bool)
}

var _ Resolver = (*goshape.Registry)(nil)

// Normalize exposes the normalization pass applied before generation.
func Normalize(n *js.Node) *js.Node { return normalize.Normalize(n) }

// Generate converts a normalized schema node into a type expression.
// Object properties are normalized on descent.
func Generate(n *js.Node, r Resolver) (Expr, error) {
	if n == nil {
		return Absent{}, nil
	}
	switch n.Kind {
	case js.KindInteger:
		return Primitive{Kind: PrimitiveInteger}, nil
	case js.KindNumber:
		return Primitive{Kind: PrimitiveNumber}, nil
	case js.KindString:
		return Primitive{Kind: PrimitiveString}, nil
	case js.KindBoolean:
		return Primitive{Kind: PrimitiveBoolean}, nil
	case js.KindNull:
		return Absent{}, nil
	case js.KindArray:
		elem, err := Generate(n.Items, r)
		if err != nil {
			return nil, err
		}
		return Sequence{Elem: elem}, nil
	case js.KindObject:
		if n.IsMap() {
			v, err := Generate(normalize.Normalize(n.AdditionalProperties), r)
			if err != nil {
				return nil, err
			}
			return Dict{Value: v}, nil
		}
		return record(n, r, n.Representation, nil, nil)
	case js.KindUnion:
		members := make([]Expr, 0, len(n.OneOf))
		for _, m := range n.OneOf {
			e, err := Generate(m, r)
			if err != nil {
				return nil, err
			}
			members = append(members, e)
		}
		if len(members) == 1 {
			return members[0], nil
		}
		return Alternation{Members: members}, nil
	case js.KindRef:
		unit, ok := r.Resolve(n.Ref)
		if !ok {
			return nil, goshape.NewError(goshape.CodeUnresolvedDependency, "/", "reference "+n.Ref+" is not in the registry", "ref", n.Ref)
		}
		return Named{Name: unit}, nil
	default:
		return nil, goshape.NewError(goshape.CodeInvalidConstraint, "/", "unsupported node kind "+n.Kind.String())
	}
}

// ObjectOptions configures GenerateObject.
type ObjectOptions struct {
	Name           string
	Representation goshape.Representation
	// Base is the signature of the extended shape; its fields are reused for
	// inherited properties the shape does not redeclare.
	Base *Signature
	// Own lists the properties the shape declared itself.
	Own []string
}

// GenerateObject builds the signature of a top-level object shape.
func GenerateObject(n *js.Node, r Resolver, opts ObjectOptions) (Signature, error) {
	var base *Record
	if opts.Base != nil {
		base, _ = opts.Base.Expr.(*Record)
	}
	var own map[string]struct{}
	if base != nil {
		own = make(map[string]struct{}, len(opts.Own))
		for _, name := range opts.Own {
			own[name] = struct{}{}
		}
	}
	rec, err := record(n, r, opts.Representation, base, own)
	if err != nil {
		return Signature{}, goshape.InShape(err, opts.Name)
	}
	return Signature{Name: opts.Name, Expr: rec}, nil
}

func record(n *js.Node, r Resolver, rep goshape.Representation, base *Record, own map[string]struct{}) (*Record, error) {
	rec := &Record{Title: n.Title, Representation: rep}
	for _, p := range n.Properties {
		f := Field{
			Name:       p.Name,
			Optional:   rep != goshape.FixedRecord && !n.IsRequired(p.Name),
			Default:    p.Schema.Default,
			HasDefault: p.Schema.HasDefault,
		}
		if base != nil {
			if _, declared := own[p.Name]; !declared {
				if bf, ok := base.Field(p.Name); ok {
					f.Type = bf.Type
					rec.Fields = append(rec.Fields, f)
					continue
				}
			}
		}
		t, err := Generate(normalize.Normalize(p.Schema), r)
		if err != nil {
			return nil, err
		}
		f.Type = t
		rec.Fields = append(rec.Fields, f)
	}
	if n.AdditionalProperties != nil {
		idx, err := Generate(normalize.Normalize(n.AdditionalProperties), r)
		if err != nil {
			return nil, err
		}
		rec.Index = idx
	}
	return rec, nil
}
