package assignment

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/aretw0/spacetask/pkg/domain"
	"github.com/aretw0/spacetask/pkg/environment"
)

var expression = regexp.MustCompile(`^([^.]+)\.([^=<>!]+)\s*([=<>!]+)\s*(.+)$`)

// Validation error messages.
const (
	MsgInvalidCondition  = "Invalid condition format. Use: place.attribute = value"
	MsgInvalidAssignment = "Invalid assignment format. Use: place.attribute = value"
)

// Parse matches `place.attribute operator value`. The operator must be one of
// = != > >= < <=.
func Parse(text string) (domain.Expression, bool) {
	m := expression.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return domain.Expression{}, false
	}
	expr := domain.Expression{
		Place:     strings.TrimSpace(m[1]),
		Attribute: strings.TrimSpace(m[2]),
		Operator:  strings.TrimSpace(m[3]),
		Value:     strings.TrimSpace(m[4]),
	}
	if expr.Place == "" || expr.Attribute == "" || !environment.IsOperator(expr.Operator) {
		return domain.Expression{}, false
	}
	return expr, true
}

// PlaceLookup resolves place ids. *environment.Catalog implements it.
type PlaceLookup interface {
	HasData() bool
	FindPlaceByID(id string) (environment.Place, bool)
}

// Validation is the structured outcome of Validate.
type Validation struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// Validate checks both sides of a pair. Empty sides are skipped. A non-empty side
// must parse, and when places holds data its place must exist.
func Validate(condition, value string, places PlaceLookup) Validation {
	errs := []string{}
	errs = check(errs, condition, MsgInvalidCondition, places)
	errs = check(errs, value, MsgInvalidAssignment, places)
	return Validation{Valid: len(errs) == 0, Errors: errs}
}

func check(errs []string, text, invalid string, places PlaceLookup) []string {
	if strings.TrimSpace(text) == "" {
		return errs
	}
	expr, ok := Parse(text)
	if !ok {
		return append(errs, invalid)
	}
	if places == nil || !places.HasData() {
		return errs
	}
	if _, found := places.FindPlaceByID(expr.Place); !found {
		errs = append(errs, fmt.Sprintf("Place '%s' not found in environment", expr.Place))
	}
	return errs
}
