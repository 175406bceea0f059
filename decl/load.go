package decl

import (
	"fmt"
	"strings"

	goshape "github.com/reoring/goshape"
	"github.com/reoring/goshape/dsl"
)

// Order sorts documents so every shape follows the shapes it extends or
// references. Input order is kept where dependencies allow. Dependencies on
// names outside docs are left for the catalog to resolve. Cycles between
// distinct shapes cannot be assembled and are reported as unresolved.
func Order(docs []Document) ([]Document, error) {
	index := make(map[string]int, len(docs))
	for i, d := range docs {
		if _, dup := index[d.Name]; dup {
			return nil, goshape.NewError(goshape.CodeInvalidConstraint, "/",
				"shape "+d.Name+" is declared more than once", "shape", d.Name)
		}
		index[d.Name] = i
	}

	const (
		unvisited = iota
		visiting
		done
	)
	state := make([]int, len(docs))
	out := make([]Document, 0, len(docs))
	var stack []string
	var visit func(i int) error
	visit = func(i int) error {
		switch state[i] {
		case done:
			return nil
		case visiting:
			cycle := append(append([]string(nil), stack[indexOf(stack, docs[i].Name):]...), docs[i].Name)
			return goshape.InShape(goshape.NewError(goshape.CodeUnresolvedDependency, "/",
				"dependency cycle "+strings.Join(cycle, " -> "), "cycle", cycle), docs[i].Name)
		}
		state[i] = visiting
		stack = append(stack, docs[i].Name)
		for _, dep := range docs[i].dependencies() {
			j, ok := index[dep]
			if !ok {
				continue
			}
			if err := visit(j); err != nil {
				return err
			}
		}
		stack = stack[:len(stack)-1]
		state[i] = done
		out = append(out, docs[i])
		return nil
	}
	for i := range docs {
		if err := visit(i); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func indexOf(xs []string, s string) int {
	for i, x := range xs {
		if x == s {
			return i
		}
	}
	return 0
}

// Load orders docs and defines them in cat. It stops at the first failure;
// shapes defined before it stay in the catalog.
func Load(cat *dsl.Catalog, docs []Document) ([]*dsl.Definition, error) {
	ordered, err := Order(docs)
	if err != nil {
		return nil, fmt.Errorf("decl: %w", err)
	}
	defs := make([]*dsl.Definition, 0, len(ordered))
	for _, d := range ordered {
		req, err := d.Request()
		if err != nil {
			return defs, err
		}
		def, err := cat.Define(req)
		if err != nil {
			return defs, fmt.Errorf("decl: %s: %w", d.Name, err)
		}
		defs = append(defs, def)
	}
	return defs, nil
}
