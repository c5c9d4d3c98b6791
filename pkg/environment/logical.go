package environment

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Operators are the comparison operators understood by logical places and assignments.
var Operators = []string{"=", "!=", ">", ">=", "<", "<="}

// IsOperator reports whether op is one of Operators.
func IsOperator(op string) bool {
	for _, o := range Operators {
		if o == op {
			return true
		}
	}
	return false
}

// Compare evaluates left op right. Values compare numerically when both sides are
// numbers or numeric strings; otherwise only = and != apply, on their text form.
func Compare(left any, op string, right any) bool {
	if l, ok := toFloat(left); ok {
		if r, ok := toFloat(right); ok {
			switch op {
			case "=":
				return l == r
			case "!=":
				return l != r
			case ">":
				return l > r
			case ">=":
				return l >= r
			case "<":
				return l < r
			case "<=":
				return l <= r
			}
			return false
		}
	}

	ls, rs := text(left), text(right)
	switch op {
	case "=":
		return ls == rs
	case "!=":
		return ls != rs
	}
	return false
}

// Matches reports whether p satisfies every condition. A missing attribute fails its condition.
func (lp LogicalPlace) Matches(p Place) bool {
	for _, cond := range lp.Conditions {
		v, ok := p.Attribute(cond.Attribute)
		if !ok || !Compare(v, strings.TrimSpace(cond.Operator), cond.Value) {
			return false
		}
	}
	return true
}

// ResolveLogical returns the places matching the logical place with the given id or name.
func (c *Catalog) ResolveLogical(id string) ([]Place, bool) {
	if id == "" {
		return nil, false
	}
	d := c.data()
	for _, lp := range d.LogicalPlaces {
		if lp.ID != id && lp.Name != id {
			continue
		}
		out := []Place{}
		for _, p := range d.Places {
			if lp.Matches(p) {
				out = append(out, p)
			}
		}
		return out, true
	}
	return nil, false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}

func text(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(s)
	}
	return fmt.Sprint(v)
}
