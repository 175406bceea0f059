package rules

import (
	"encoding/json"
	"math"
	"reflect"
	"regexp"

	goshape "github.com/reoring/goshape"
	js "github.com/reoring/goshape/jsonschema"
)

// Shapes resolves already-assembled shapes for default conformance.
type Shapes interface {
	// SchemaOf returns the schema of the shape defined under id.
	SchemaOf(id string) (*js.Node, bool)
	// SchemaAt returns the schema a reference marker path points at.
	SchemaAt(ref string) (*js.Node, bool)
}

// Checker runs the rule set for one definition.
type Checker struct {
	Shapes Shapes
	// Self is the id of the shape being defined. Its schema does not exist
	// yet, so defaults for self references are only checked for being objects.
	Self string
}

// Conforms reports whether v conforms to d. Arrays are checked element-wise,
// maps value-wise and unions accept v when any member does.
func (c Checker) Conforms(d goshape.Descriptor, v any) bool {
	switch t := d.(type) {
	case goshape.Scalar:
		return conformsScalar(js.ScalarKind(t.Scalar), v)
	case goshape.ArrayOf:
		elems, ok := sliceValues(v)
		if !ok {
			return false
		}
		for _, e := range elems {
			if !c.Conforms(t.Elem, e) {
				return false
			}
		}
		return true
	case goshape.MapOf:
		m, ok := stringMap(v)
		if !ok {
			return false
		}
		for _, e := range m {
			if !c.Conforms(t.Value, e) {
				return false
			}
		}
		return true
	case goshape.UnionOf:
		for _, m := range t.Members {
			if c.Conforms(m, v) {
				return true
			}
		}
		return false
	case goshape.NamedShape:
		if t.ID == c.Self {
			_, ok := stringMap(v)
			return ok
		}
		if c.Shapes == nil {
			return false
		}
		n, ok := c.Shapes.SchemaOf(t.ID)
		if !ok {
			return false
		}
		return c.conformsNode(n, v, nil)
	default:
		return false
	}
}

// conformsNode checks v against an assembled schema node. seen holds the
// reference paths already followed for this same v; it is reset whenever the
// check descends into an element, map value or property.
func (c Checker) conformsNode(n *js.Node, v any, seen map[string]bool) bool {
	if n == nil {
		return false
	}
	if v == nil {
		return n.Nullable || n.Kind == js.KindNull || (n.HasDefault && n.Default == nil)
	}
	if n.HasDefault && reflect.DeepEqual(n.Default, v) {
		return true
	}
	switch n.Kind {
	case js.KindNull:
		return false
	case js.KindInteger, js.KindNumber, js.KindString, js.KindBoolean:
		if !conformsScalar(n.Kind, v) {
			return false
		}
		if len(n.Enum) > 0 && !inEnum(n.Enum, v) {
			return false
		}
		if n.Pattern != "" {
			re, err := regexp.Compile(n.Pattern)
			return err != nil || re.MatchString(v.(string))
		}
		return true
	case js.KindArray:
		elems, ok := sliceValues(v)
		if !ok {
			return false
		}
		for _, e := range elems {
			if !c.conformsNode(n.Items, e, nil) {
				return false
			}
		}
		return true
	case js.KindObject:
		return c.conformsObject(n, v)
	case js.KindUnion:
		for _, m := range n.OneOf {
			if c.conformsNode(m, v, seen) {
				return true
			}
		}
		return false
	case js.KindRef:
		if c.Shapes == nil {
			return false
		}
		if seen[n.Ref] {
			return false
		}
		target, ok := c.Shapes.SchemaAt(n.Ref)
		if !ok {
			// self reference of a shape still being assembled
			_, isMap := stringMap(v)
			return isMap
		}
		next := make(map[string]bool, len(seen)+1)
		for r := range seen {
			next[r] = true
		}
		next[n.Ref] = true
		return c.conformsNode(target, v, next)
	default:
		return false
	}
}

func (c Checker) conformsObject(n *js.Node, v any) bool {
	m, ok := stringMap(v)
	if !ok {
		return false
	}
	for _, r := range n.Required {
		if _, present := m[r]; !present {
			return false
		}
	}
	for k, e := range m {
		if ps, declared := n.Properties.Get(k); declared {
			if !c.conformsNode(ps, e, nil) {
				return false
			}
			continue
		}
		if n.AdditionalProperties != nil {
			if !c.conformsNode(n.AdditionalProperties, e, nil) {
				return false
			}
			continue
		}
		if n.Representation == goshape.FixedRecord {
			return false
		}
	}
	return true
}

func conformsScalar(k js.Kind, v any) bool {
	switch k {
	case js.KindString:
		_, ok := v.(string)
		return ok
	case js.KindBoolean:
		_, ok := v.(bool)
		return ok
	case js.KindInteger:
		return isInteger(v)
	case js.KindNumber:
		return isNumber(v)
	default:
		return false
	}
}

func isInteger(v any) bool {
	switch t := v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	case float32:
		return isIntegral(float64(t))
	case float64:
		return isIntegral(t)
	case json.Number:
		if _, err := t.Int64(); err == nil {
			return true
		}
		f, err := t.Float64()
		return err == nil && isIntegral(f)
	default:
		return false
	}
}

func isNumber(v any) bool {
	switch t := v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	case float32:
		return !math.IsNaN(float64(t)) && !math.IsInf(float64(t), 0)
	case float64:
		return !math.IsNaN(t) && !math.IsInf(t, 0)
	case json.Number:
		_, err := t.Float64()
		return err == nil
	default:
		return false
	}
}

func isIntegral(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0) && f == math.Trunc(f)
}

// sliceValues returns the elements of any slice or array value.
func sliceValues(v any) ([]any, bool) {
	if s, ok := v.([]any); ok {
		return s, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// stringMap returns the entries of any string-keyed map value.
func stringMap(v any) (map[string]any, bool) {
	if m, ok := v.(map[string]any); ok {
		return m, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	for _, k := range rv.MapKeys() {
		out[k.String()] = rv.MapIndex(k).Interface()
	}
	return out, true
}
