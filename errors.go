package goshape

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/goshape/i18n"
)

// Error codes (exported consts for IDE completion and type safety by convention)
const (
	CodeDuplicateProperty    = "duplicate_property"
	CodeInvalidConstraint    = "invalid_constraint"
	CodeDefaultTypeMismatch  = "default_type_mismatch"
	CodeStructCompatibility  = "struct_compatibility"
	CodeUnresolvedDependency = "unresolved_dependency"
)

// Sentinels matched by errors.Is against a *DefinitionError of the same code.
var (
	ErrDuplicateProperty    = errors.New("goshape: duplicate property")
	ErrInvalidConstraint    = errors.New("goshape: invalid constraint")
	ErrDefaultTypeMismatch  = errors.New("goshape: default type mismatch")
	ErrStructCompatibility  = errors.New("goshape: struct compatibility")
	ErrUnresolvedDependency = errors.New("goshape: unresolved dependency")
)

var sentinels = map[string]error{
	CodeDuplicateProperty:    ErrDuplicateProperty,
	CodeInvalidConstraint:    ErrInvalidConstraint,
	CodeDefaultTypeMismatch:  ErrDefaultTypeMismatch,
	CodeStructCompatibility:  ErrStructCompatibility,
	CodeUnresolvedDependency: ErrUnresolvedDependency,
}

// DefinitionError reports a fatal, definition-time failure. A shape that fails
// to assemble is never registered.
type DefinitionError struct {
	Code    string // One of the codes listed above.
	Shape   string // Shape being defined.
	Path    string // JSON Pointer into the shape (for example: /items/tags).
	Message string
	Hint    string // Optional: remediation hint.
	// Params carries structured parameters (e.g., {"property":"x","descriptor":"[]string"}).
	Params map[string]any
	Cause  error
}

// Error renders "code at /path in Shape: message (hint)".
func (e *DefinitionError) Error() string {
	b := &strings.Builder{}
	b.WriteString(e.Code)
	if e.Path != "" {
		fmt.Fprintf(b, " at %s", e.Path)
	}
	if e.Shape != "" {
		fmt.Fprintf(b, " in %s", e.Shape)
	}
	msg := e.Message
	if msg == "" {
		msg = i18n.T(e.Code, nil)
	}
	if msg != "" {
		b.WriteString(": ")
		b.WriteString(msg)
	}
	if e.Hint != "" {
		fmt.Fprintf(b, " (%s)", e.Hint)
	}
	return b.String()
}

// Is matches the sentinel of the same code.
func (e *DefinitionError) Is(target error) bool {
	s, ok := sentinels[e.Code]
	return ok && s == target
}

// Unwrap returns the underlying cause, if any.
func (e *DefinitionError) Unwrap() error { return e.Cause }

// NewError creates a DefinitionError with the localized message for code.
func NewError(code, path, hint string, kv ...any) *DefinitionError {
	var params map[string]any
	if len(kv) > 1 {
		params = make(map[string]any, len(kv)/2)
		for i := 0; i+1 < len(kv); i += 2 {
			params[fmt.Sprint(kv[i])] = kv[i+1]
		}
	}
	return &DefinitionError{Code: code, Path: path, Message: i18n.T(code, nil), Hint: hint, Params: params}
}

// InShape returns err with Shape set when err is a *DefinitionError without one.
func InShape(err error, shape string) error {
	var de *DefinitionError
	if errors.As(err, &de) && de.Shape == "" {
		de.Shape = shape
	}
	return err
}

// AsDefinitionError extracts a *DefinitionError using errors.As internally.
func AsDefinitionError(err error) (*DefinitionError, bool) {
	if err == nil {
		return nil, false
	}
	var de *DefinitionError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// Pointer joins property names into a JSON Pointer, escaping per RFC6901.
func Pointer(parts ...string) string {
	if len(parts) == 0 {
		return "/"
	}
	esc := make([]string, 0, len(parts))
	for _, p := range parts {
		esc = append(esc, strings.ReplaceAll(strings.ReplaceAll(p, "~", "~0"), "/", "~1"))
	}
	return "/" + strings.Join(esc, "/")
}
