// Package attributes reads and writes the extension attributes of a node.
//
// All functions act on the node passed in only and treat a missing container
// as an empty attribute list.
package attributes

import "github.com/aretw0/spacetask/pkg/domain"

// Predicate selects attributes for removal.
type Predicate func(domain.Attribute) bool

// Get returns the first attribute whose kind matches.
func Get(node *domain.Node, kind domain.Kind) (domain.Attribute, bool) {
	for _, a := range All(node) {
		if a.Kind.Is(kind) {
			return a, true
		}
	}
	return domain.Attribute{}, false
}

// Value returns the value of the first matching attribute, or "".
func Value(node *domain.Node, kind domain.Kind) string {
	a, _ := Get(node, kind)
	return a.Value
}

// All returns the node's attributes in insertion order.
// The returned slice is a copy.
func All(node *domain.Node) []domain.Attribute {
	if node == nil || node.Extensions == nil {
		return nil
	}
	out := make([]domain.Attribute, len(node.Extensions.Values))
	copy(out, node.Extensions.Values)
	return out
}

// EnsureContainer creates the extension container if the node has none.
// A nil node has no container and yields nil.
func EnsureContainer(node *domain.Node) *domain.Extensions {
	if node == nil {
		return nil
	}
	if node.Extensions == nil {
		node.Extensions = &domain.Extensions{}
	}
	return node.Extensions
}

// Set writes value under kind.
// An existing attribute is updated in place and keeps its original kind spelling;
// later duplicates of the same kind are dropped. Otherwise a new attribute is appended.
func Set(node *domain.Node, kind domain.Kind, value string) {
	if node == nil {
		return
	}
	current := All(node)
	next := make([]domain.Attribute, 0, len(current)+1)
	found := false
	for _, a := range current {
		if !a.Kind.Is(kind) {
			next = append(next, a)
			continue
		}
		if found {
			continue
		}
		a.Value = value
		next = append(next, a)
		found = true
	}
	if !found {
		next = append(next, domain.Attribute{Kind: domain.CanonicalKind(string(kind)), Value: value})
	}
	// The list is replaced in a single assignment.
	ext := EnsureContainer(node)
	ext.Values = next
}

// Remove deletes every attribute matching pred.
func Remove(node *domain.Node, pred Predicate) int {
	if node == nil || node.Extensions == nil {
		return 0
	}
	kept := make([]domain.Attribute, 0, len(node.Extensions.Values))
	for _, a := range node.Extensions.Values {
		if !pred(a) {
			kept = append(kept, a)
		}
	}
	removed := len(node.Extensions.Values) - len(kept)
	if removed > 0 {
		node.Extensions.Values = kept
	}
	return removed
}

// OfKind matches attributes of any of the given kinds.
func OfKind(kinds ...domain.Kind) Predicate {
	return func(a domain.Attribute) bool {
		for _, k := range kinds {
			if a.Kind.Is(k) {
				return true
			}
		}
		return false
	}
}

// Has reports whether an attribute of the given kind exists.
func Has(node *domain.Node, kind domain.Kind) bool {
	_, ok := Get(node, kind)
	return ok
}
