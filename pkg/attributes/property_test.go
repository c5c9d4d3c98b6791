package attributes_test

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/aretw0/spacetask/pkg/attributes"
	"github.com/aretw0/spacetask/pkg/domain"
)

var kindPool = []domain.Kind{
	domain.KindType,
	domain.KindDestination,
	domain.KindBinding,
	"space:Type",
	"space:destination",
	"Custom",
}

// TestAttributeInvariants checks properties that must hold after any sequence of writes.
func TestAttributeInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("at most one attribute per kind", prop.ForAll(
		func(picks []int, values []string) bool {
			node := &domain.Node{ID: "n"}
			for i, p := range picks {
				v := ""
				if i < len(values) {
					v = values[i]
				}
				attributes.Set(node, kindPool[p%len(kindPool)], v)
			}

			seen := make(map[domain.Kind]bool)
			for _, a := range attributes.All(node) {
				c := domain.CanonicalKind(string(a.Kind))
				if seen[c] {
					return false
				}
				seen[c] = true
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 100)),
		gen.SliceOf(gen.AlphaString()),
	))

	properties.Property("last write is visible", prop.ForAll(
		func(picks []int, last string) bool {
			node := &domain.Node{ID: "n"}
			for _, p := range picks {
				attributes.Set(node, kindPool[p%len(kindPool)], "x")
			}
			attributes.Set(node, domain.KindDestination, last)
			return attributes.Value(node, domain.KindDestination) == last
		},
		gen.SliceOf(gen.IntRange(0, 100)),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
