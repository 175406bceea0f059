package engine

import (
	js "github.com/reoring/goshape/jsonschema"
)

// Extend merges the parent's properties and required names into child.
// Parent properties keep their order, child entries win on name collision,
// and properties only the child declares follow in declaration order.
// Parent nullability and representation do not travel.
func Extend(child *js.Node, parent Finalized) *js.Node {
	p := parent.node
	out := child.Clone()

	merged := make(js.Properties, 0, len(p.Properties)+len(child.Properties))
	for _, pp := range p.Properties {
		if cn, ok := child.Properties.Get(pp.Name); ok {
			merged = append(merged, js.Property{Name: pp.Name, Schema: cn.Clone()})
			continue
		}
		merged = append(merged, js.Property{Name: pp.Name, Schema: pp.Schema.Clone()})
	}
	for _, cp := range child.Properties {
		if !p.Properties.Has(cp.Name) {
			merged = append(merged, js.Property{Name: cp.Name, Schema: cp.Schema.Clone()})
		}
	}

	required := make([]string, 0, len(p.Required)+len(child.Required))
	listed := map[string]struct{}{}
	add := func(name string) {
		if _, ok := listed[name]; ok {
			return
		}
		listed[name] = struct{}{}
		required = append(required, name)
	}
	for _, r := range p.Required {
		// a redeclaring child decides the required-ness
		if child.Properties.Has(r) && !child.IsRequired(r) {
			continue
		}
		add(r)
	}
	for _, r := range child.Required {
		add(r)
	}

	out.Properties = merged
	out.Required = required
	return out
}
