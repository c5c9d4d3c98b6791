package environment

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"

	"github.com/aretw0/spacetask/pkg/domain"
	"github.com/aretw0/spacetask/pkg/schema"
)

var validate = validator.New()

// RequiredArrays are the top-level keys every environment file must carry.
var RequiredArrays = []string{"places", "edges", "logicalPlaces", "views"}

// Parse decodes and validates environment file bytes.
func Parse(raw []byte) (Data, error) {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return Data{}, fmt.Errorf("%w: failed to parse JSON file: %v", domain.ErrInvalidEnvironment, err)
	}
	return Decode(m)
}

// Decode validates an already unmarshalled environment object and converts it to Data.
//
// All four arrays must be present, possibly empty. When places is non-empty its first
// element must be an object with a non-empty id and name. Numeric ids are accepted and
// stored as strings. Any other entry that does not fit its typed shape is left out of
// the catalog and listed in Data.Dropped.
func Decode(m map[string]any) (Data, error) {
	if m == nil {
		return Data{}, fmt.Errorf("%w: expected an object", domain.ErrInvalidEnvironment)
	}
	arrays := make(map[string][]any, len(RequiredArrays))
	for _, key := range RequiredArrays {
		list, ok := m[key].([]any)
		if !ok {
			return Data{}, fmt.Errorf("%w: missing or invalid %s array", domain.ErrInvalidEnvironment, key)
		}
		arrays[key] = list
	}

	if places := arrays["places"]; len(places) > 0 {
		var first Place
		if err := decodeWeak(places[0], &first); err != nil {
			return Data{}, fmt.Errorf("%w: places must have id and name properties", domain.ErrInvalidEnvironment)
		}
		if err := validate.Struct(first); err != nil {
			return Data{}, fmt.Errorf("%w: places must have id and name properties", domain.ErrInvalidEnvironment)
		}
	}

	var data Data
	data.Places = decodeEach[Place](arrays["places"], "places", &data.Dropped)
	data.Edges = decodeEach[Edge](arrays["edges"], "edges", &data.Dropped)
	data.LogicalPlaces = decodeEach[LogicalPlace](arrays["logicalPlaces"], "logicalPlaces", &data.Dropped)
	data.Views = arrays["views"]
	return data.normalized(), nil
}

// decodeEach converts every item of list to T. Items that do not convert are recorded in dropped.
func decodeEach[T any](list []any, key string, dropped *[]string) []T {
	out := make([]T, 0, len(list))
	for i, item := range list {
		var v T
		if err := decodeWeak(item, &v); err != nil {
			*dropped = append(*dropped, fmt.Sprintf("%s[%d]: %v", key, i, err))
			continue
		}
		out = append(out, v)
	}
	return out
}

func decodeWeak(item any, result any) error {
	if _, ok := item.(map[string]any); !ok {
		return fmt.Errorf("expected an object, got %T", item)
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           result,
	})
	if err != nil {
		return err
	}
	return dec.Decode(item)
}

// normalized replaces nil arrays with empty ones so they encode as [].
func (d Data) normalized() Data {
	if d.Places == nil {
		d.Places = []Place{}
	}
	if d.Edges == nil {
		d.Edges = []Edge{}
	}
	if d.LogicalPlaces == nil {
		d.LogicalPlaces = []LogicalPlace{}
	}
	if d.Views == nil {
		d.Views = []any{}
	}
	return d
}

// CheckAttributes validates the attributes of every place against s.
func CheckAttributes(data Data, s schema.Schema) error {
	if len(s) == 0 {
		return nil
	}
	for _, p := range data.Places {
		if err := schema.Validate(s, p.Attributes); err != nil {
			return fmt.Errorf("%w: place %q: %w", domain.ErrInvalidEnvironment, p.ID, err)
		}
	}
	return nil
}
