package schema

import (
	"fmt"
	"reflect"
	"strings"
)

// Type checks a single attribute value.
type Type interface {
	// Name is the type string accepted by ParseType.
	Name() string
	Validate(value any) error
}

type scalar struct {
	name  string
	check func(any) bool
}

func (s scalar) Name() string { return s.name }

func (s scalar) Validate(value any) error {
	if !s.check(value) {
		return fmt.Errorf("expected %s, got %T", s.name, value)
	}
	return nil
}

func isString(v any) bool {
	_, ok := v.(string)
	return ok
}

func isBool(v any) bool {
	_, ok := v.(bool)
	return ok
}

// isInt accepts Go integers and whole floats, since JSON numbers decode as float64.
func isInt(v any) bool {
	switch n := v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	case float64:
		return n == float64(int64(n))
	case float32:
		return n == float32(int64(n))
	}
	return false
}

func isNumber(v any) bool {
	switch v.(type) {
	case float32, float64:
		return true
	}
	return isInt(v)
}

// String accepts strings.
func String() Type { return scalar{name: "string", check: isString} }

// Int accepts integers, including whole floats.
func Int() Type { return scalar{name: "int", check: isInt} }

// Float accepts any number.
func Float() Type { return scalar{name: "float", check: isNumber} }

// Bool accepts booleans.
func Bool() Type { return scalar{name: "bool", check: isBool} }

type list struct {
	elem Type
}

// List accepts slices whose elements all satisfy elem.
func List(elem Type) Type { return list{elem: elem} }

func (l list) Name() string { return "[" + l.elem.Name() + "]" }

func (l list) Validate(value any) error {
	rv := reflect.ValueOf(value)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return fmt.Errorf("expected %s, got %T", l.Name(), value)
	}
	for i := 0; i < rv.Len(); i++ {
		if err := l.elem.Validate(rv.Index(i).Interface()); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return nil
}

// ParseType converts a type string ("string", "int", "float", "number", "bool",
// or a bracketed list such as "[string]") into a Type.
func ParseType(s string) (Type, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") && len(s) > 2 {
		elem, err := ParseType(s[1 : len(s)-1])
		if err != nil {
			return nil, err
		}
		return List(elem), nil
	}

	switch strings.ToLower(s) {
	case "string":
		return String(), nil
	case "int", "integer":
		return Int(), nil
	case "float", "number":
		return Float(), nil
	case "bool", "boolean":
		return Bool(), nil
	}
	return nil, fmt.Errorf("unsupported type: %q", s)
}

// ParseTypeMap builds a Schema from attribute -> type string pairs.
func ParseTypeMap(m map[string]string) (Schema, error) {
	s := make(Schema, len(m))
	for key, name := range m {
		t, err := ParseType(name)
		if err != nil {
			return nil, fmt.Errorf("attribute %s: %w", key, err)
		}
		s[key] = t
	}
	return s, nil
}
