package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/spacetask/pkg/domain"
)

func TestNormalizeRole(t *testing.T) {
	cases := map[string]domain.Role{
		"":           domain.RoleNone,
		"  ":         domain.RoleNone,
		"movement":   domain.RoleMovement,
		"Movement":   domain.RoleMovement,
		"bind":       domain.RoleBinding,
		"BINDING":    domain.RoleBinding,
		"unbind":     domain.RoleUnbinding,
		" Unbinding": domain.RoleUnbinding,
		"Teleport":   domain.Role("teleport"),
	}
	for raw, want := range cases {
		assert.Equal(t, want, domain.NormalizeRole(raw), "raw=%q", raw)
	}
}

func TestParseRole(t *testing.T) {
	r, err := domain.ParseRole("bind")
	assert.NoError(t, err)
	assert.Equal(t, domain.RoleBinding, r)

	_, err = domain.ParseRole("teleport")
	assert.ErrorIs(t, err, domain.ErrUnknownRole)

	_, err = domain.ParseRole("")
	assert.ErrorIs(t, err, domain.ErrUnknownRole)
}

func TestCanonicalKind(t *testing.T) {
	assert.Equal(t, domain.KindType, domain.CanonicalKind("space:Type"))
	assert.Equal(t, domain.KindDestination, domain.CanonicalKind("destination"))
	assert.Equal(t, domain.KindAssignmentValue, domain.CanonicalKind("SPACE:assignmentvalue"))
	assert.Equal(t, domain.Kind("camunda:Properties"), domain.CanonicalKind("camunda:Properties"))

	assert.True(t, domain.Kind("space:Binding").Known())
	assert.False(t, domain.Kind("Foo").Known())
	assert.True(t, domain.Kind("space:Type").Is(domain.KindType))
}

func TestDiagram_Clone(t *testing.T) {
	d := &domain.Diagram{
		ID: "d1",
		Nodes: []*domain.Node{
			{ID: "a", Extensions: &domain.Extensions{Values: []domain.Attribute{{Kind: domain.KindType, Value: "bind"}}}},
		},
		Flows: []domain.Flow{{ID: "f", Source: "a", Target: "a"}},
	}
	c := d.Clone()
	c.Nodes[0].Extensions.Values[0].Value = "unbind"

	assert.Equal(t, "bind", d.Nodes[0].Extensions.Values[0].Value)
	n, ok := c.Node("a")
	assert.True(t, ok)
	assert.Equal(t, "unbind", n.Extensions.Values[0].Value)
	_, ok = c.Node("missing")
	assert.False(t, ok)
}
