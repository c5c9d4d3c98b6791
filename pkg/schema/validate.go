package schema

import "sort"

// Schema maps attribute names to their types.
type Schema map[string]Type

// Keys returns the attribute names in lexical order.
func (s Schema) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Validate checks the attributes present in data against s.
// Absent attributes and attributes unknown to s are accepted.
// Failures are reported in key order.
func Validate(s Schema, data map[string]any) error {
	var errs []error
	for _, key := range s.Keys() {
		value, ok := data[key]
		if !ok {
			continue
		}
		if err := s[key].Validate(value); err != nil {
			errs = append(errs, &ValidationError{Key: key, Reason: err.Error(), Value: value})
		}
	}
	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}

// Require checks that every key is present in data and satisfies s when s types it.
func Require(s Schema, data map[string]any, keys ...string) error {
	var errs []error
	for _, key := range keys {
		value, ok := data[key]
		if !ok {
			errs = append(errs, &ValidationError{Key: key, Reason: "required"})
			continue
		}
		t, typed := s[key]
		if !typed {
			continue
		}
		if err := t.Validate(value); err != nil {
			errs = append(errs, &ValidationError{Key: key, Reason: err.Error(), Value: value})
		}
	}
	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}
