package rules

import (
	"fmt"
	"regexp"

	goshape "github.com/reoring/goshape"
)

// CheckEnum verifies that enum is only declared on Scalar(string) and that
// every enum value is a string.
func CheckEnum(path string, d goshape.Descriptor, enum []any) error {
	if len(enum) == 0 {
		return nil
	}
	if !goshape.IsStringScalar(d) {
		return goshape.NewError(goshape.CodeInvalidConstraint, path,
			"enum is only allowed on string, got "+goshape.DescriptorString(d),
			"constraint", "enum", "descriptor", goshape.DescriptorString(d))
	}
	for i, v := range enum {
		if _, ok := v.(string); !ok {
			return goshape.NewError(goshape.CodeInvalidConstraint, path,
				fmt.Sprintf("enum value #%d is %T, want string", i, v),
				"constraint", "enum", "index", i)
		}
	}
	return nil
}

// CheckStringConstraint verifies that a string-only constraint (pattern or
// format) is declared on Scalar(string). Patterns must compile.
func CheckStringConstraint(path string, d goshape.Descriptor, name, value string) error {
	if value == "" {
		return nil
	}
	if !goshape.IsStringScalar(d) {
		return goshape.NewError(goshape.CodeInvalidConstraint, path,
			name+" is only allowed on string, got "+goshape.DescriptorString(d),
			"constraint", name, "descriptor", goshape.DescriptorString(d))
	}
	if name == "pattern" {
		if _, err := compilePattern(value); err != nil {
			de := goshape.NewError(goshape.CodeInvalidConstraint, path, "pattern does not compile", "constraint", name, "pattern", value)
			de.Cause = err
			return de
		}
	}
	return nil
}

// Property runs every rule for one property: enum, pattern, format and
// default conformance, in that order.
func (c Checker) Property(path string, d goshape.Descriptor, o goshape.PropertyOptions) error {
	if err := CheckEnum(path, d, o.Enum); err != nil {
		return err
	}
	if err := CheckStringConstraint(path, d, "pattern", o.Pattern); err != nil {
		return err
	}
	if err := CheckStringConstraint(path, d, "format", o.Format); err != nil {
		return err
	}
	if o.HasDefault {
		return c.CheckDefault(path, d, o.Default, o.Nullable, o.Enum, o.Pattern)
	}
	return nil
}

// CheckDefault verifies that v conforms to d. A nil default is accepted only
// when nullable. When enum or pattern are declared the default must satisfy
// them too.
func (c Checker) CheckDefault(path string, d goshape.Descriptor, v any, nullable bool, enum []any, pattern string) error {
	mismatch := func(hint string) error {
		return goshape.NewError(goshape.CodeDefaultTypeMismatch, path, hint,
			"descriptor", goshape.DescriptorString(d), "default", v)
	}
	if v == nil {
		if nullable {
			return nil
		}
		return mismatch("nil default on a non-nullable " + goshape.DescriptorString(d))
	}
	if !c.Conforms(d, v) {
		return mismatch(fmt.Sprintf("default %v (%T) does not conform to %s", v, v, goshape.DescriptorString(d)))
	}
	if len(enum) > 0 && !inEnum(enum, v) {
		return mismatch(fmt.Sprintf("default %v is not one of the enum values", v))
	}
	if pattern != "" {
		s, _ := v.(string)
		if re, err := compilePattern(pattern); err == nil && !re.MatchString(s) {
			return mismatch(fmt.Sprintf("default %q does not match pattern %q", s, pattern))
		}
	}
	return nil
}

func inEnum(enum []any, v any) bool {
	for _, e := range enum {
		if e == v {
			return true
		}
	}
	return false
}

func compilePattern(p string) (*regexp.Regexp, error) {
	return regexp.Compile(p)
}
