package loam_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/spacetask/internal/testutils"
	"github.com/aretw0/spacetask/pkg/adapters/loam"
	"github.com/aretw0/spacetask/pkg/attributes"
	"github.com/aretw0/spacetask/pkg/diagram"
	"github.com/aretw0/spacetask/pkg/domain"
	"github.com/aretw0/spacetask/pkg/ports"
	"github.com/aretw0/spacetask/pkg/roles"
)

var _ ports.DiagramLoader = (*loam.Loader)(nil)

func TestLoader_Load(t *testing.T) {
	dir := testutils.SeedDir(t, map[string]string{
		"robot.md": `---
kind: participant
name: Delivery robot
---
The mobile unit.`,
		"pick.md": `---
name: Pick parcel
participant: robot
type: bind
binding: station
next: [move]
messages:
  - to: dock
    participant1: robot
    participant2: station
---
Grab the parcel from the shelf.`,
		"move.yaml": `name: Move
participant: robot
type: movement
destination: Lab A
next: [drop.md]
`,
		"drop.json": `{"name": "Drop", "participant": "robot", "type": "unbinding",
  "attributes": [{"kind": "space:Custom", "value": "kept"}]}`,
		"dock.md": `---
participant: station
---
Docking bay.`,
	})

	loader, err := loam.Open(dir)
	require.NoError(t, err)

	d, err := loader.Load(context.Background())
	require.NoError(t, err)
	require.NoError(t, diagram.Check(d))

	assert.Equal(t, filepath.Base(dir), d.ID)
	require.Len(t, d.Nodes, 4)
	assert.Equal(t, []string{"dock", "drop", "move", "pick"}, []string{d.Nodes[0].ID, d.Nodes[1].ID, d.Nodes[2].ID, d.Nodes[3].ID})

	t.Run("Participants from documents and tasks", func(t *testing.T) {
		require.Len(t, d.Participants, 2)
		assert.Equal(t, domain.Participant{ID: "robot", Name: "Delivery robot"}, d.Participants[0])
		assert.Equal(t, "station", d.Participants[1].ID)
	})

	t.Run("Role shortcuts become attributes", func(t *testing.T) {
		pick, _ := d.Node("pick")
		assert.Equal(t, domain.RoleBinding, roles.Of(pick))
		assert.Equal(t, "station", attributes.Value(pick, domain.KindBinding))

		move, _ := d.Node("move")
		assert.Equal(t, domain.RoleMovement, roles.Of(move))
		assert.Equal(t, "Lab A", attributes.Value(move, domain.KindDestination))

		drop, _ := d.Node("drop")
		assert.Equal(t, domain.RoleUnbinding, roles.Of(drop))
		assert.Equal(t, "kept", attributes.Value(drop, "space:Custom"))
	})

	t.Run("Flows", func(t *testing.T) {
		g := diagram.NewGraph(d)
		out := g.Outgoing("pick")
		require.Len(t, out, 1, "message flows are not part of the process graph")
		assert.Equal(t, "move", out[0].ID)

		in := g.Incoming("drop")
		require.Len(t, in, 1)
		assert.Equal(t, "move", in[0].ID)

		bindings := diagram.Bindings(d)
		require.Len(t, bindings, 1)
		assert.Equal(t, "robot", bindings[0].Participant1)
		assert.Equal(t, "station", bindings[0].Participant2)
	})
}

func TestLoader_DetectsCollisions(t *testing.T) {
	dir := testutils.SeedDir(t, map[string]string{
		"foo.md": `---
id: foo
---
Explicit ID`,
		"foo.json": `{"id": "foo"}`,
	})

	loader, err := loam.Open(dir)
	require.NoError(t, err)

	_, err = loader.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collision detected")
	assert.Contains(t, err.Error(), "foo")
}

func TestLoader_UnknownKind(t *testing.T) {
	dir := testutils.SeedDir(t, map[string]string{
		"odd.md": `---
kind: gateway
---
`,
	})

	loader, err := loam.Open(dir)
	require.NoError(t, err)

	_, err = loader.Load(context.Background())
	assert.ErrorContains(t, err, "unknown kind")
}
