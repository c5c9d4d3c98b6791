// Package assignment manages the conditional place-attribute updates of a task.
//
// A node stores its assignments as two attributes, Assignment (conditions) and
// AssignmentValue (values), each a list joined by Separator. Pairs are formed
// positionally; a side missing from the shorter list reads as "".
package assignment

import (
	"strings"

	"github.com/aretw0/spacetask/pkg/attributes"
	"github.com/aretw0/spacetask/pkg/domain"
)

// Separator joins the entries of a serialized list. It never appears in stored entries.
const Separator = "␞"

// List returns the node's assignments in order.
func List(node *domain.Node) []domain.Assignment {
	conds := decode(node, domain.KindAssignment)
	vals := decode(node, domain.KindAssignmentValue)

	n := max(len(conds), len(vals))
	out := make([]domain.Assignment, 0, n)
	for i := 0; i < n; i++ {
		var a domain.Assignment
		if i < len(conds) {
			a.Condition = conds[i]
		}
		if i < len(vals) {
			a.Value = vals[i]
		}
		out = append(out, a)
	}
	return out
}

// Add appends a pair.
func Add(node *domain.Node, condition, value string) {
	list := List(node)
	list = append(list, domain.Assignment{Condition: condition, Value: value})
	write(node, list)
}

// Update replaces the pair at index. Out of range indexes are ignored.
func Update(node *domain.Node, index int, condition, value string) bool {
	list := List(node)
	if index < 0 || index >= len(list) {
		return false
	}
	list[index] = domain.Assignment{Condition: condition, Value: value}
	write(node, list)
	return true
}

// RemoveAt deletes the pair at index. Removing the last pair removes both attributes.
func RemoveAt(node *domain.Node, index int) bool {
	list := List(node)
	if index < 0 || index >= len(list) {
		return false
	}
	list = append(list[:index], list[index+1:]...)
	write(node, list)
	return true
}

// Clear removes both attributes.
func Clear(node *domain.Node) {
	attributes.Remove(node, attributes.OfKind(domain.KindAssignment, domain.KindAssignmentValue))
}

// Count returns the number of pairs with at least one non-empty side.
func Count(node *domain.Node) int {
	n := 0
	for _, a := range List(node) {
		if !a.Empty() {
			n++
		}
	}
	return n
}

// Format renders a pair for display.
func Format(a domain.Assignment) string {
	if a.Empty() {
		return "(Empty assignment)"
	}
	var parts []string
	if a.Condition != "" {
		parts = append(parts, "When: "+a.Condition)
	}
	if a.Value != "" {
		parts = append(parts, "Set: "+a.Value)
	}
	return strings.Join(parts, " → ")
}

// decode splits a stored list. An absent attribute is an empty list;
// a present but empty one holds a single empty entry.
func decode(node *domain.Node, kind domain.Kind) []string {
	a, ok := attributes.Get(node, kind)
	if !ok {
		return nil
	}
	return strings.Split(a.Value, Separator)
}

func write(node *domain.Node, list []domain.Assignment) {
	if len(list) == 0 {
		Clear(node)
		return
	}
	conds := make([]string, len(list))
	vals := make([]string, len(list))
	for i, a := range list {
		conds[i] = sanitize(a.Condition)
		vals[i] = sanitize(a.Value)
	}
	attributes.Set(node, domain.KindAssignment, strings.Join(conds, Separator))
	attributes.Set(node, domain.KindAssignmentValue, strings.Join(vals, Separator))
}

func sanitize(s string) string {
	return strings.ReplaceAll(s, Separator, " ")
}
