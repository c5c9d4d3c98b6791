package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/spacetask/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contractDiagram(id string) *domain.Diagram {
	return &domain.Diagram{
		ID:           id,
		Name:         "Contract",
		Participants: []domain.Participant{{ID: "pool_a", Name: "Robot"}},
		Nodes: []*domain.Node{
			{ID: "bind", Participant: "pool_a", Extensions: &domain.Extensions{Values: []domain.Attribute{
				{Kind: domain.KindType, Value: "binding"},
				{Kind: "custom:Opaque", Value: "keep"},
			}}},
			{ID: "unbind", Participant: "pool_a"},
		},
		Flows: []domain.Flow{{ID: "f1", Source: "bind", Target: "unbind"}},
	}
}

// RunDiagramStoreContract runs a suite of tests to verify that a DiagramStore implementation
// adheres to the defined interface contract.
func RunDiagramStoreContract(t *testing.T, store DiagramStore) {
	ctx := context.Background()
	id := "contract-test-diagram-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		d := contractDiagram(id)

		err := store.Save(ctx, id, d)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, d.Name, loaded.Name)
		require.Len(t, loaded.Nodes, 2)
		assert.Equal(t, d.Nodes[0].Extensions.Values, loaded.Nodes[0].Extensions.Values, "unknown kinds must round-trip")
		assert.Equal(t, d.Flows, loaded.Flows)
	})

	t.Run("Load returns a copy", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, id, contractDiagram(id)))

		first, err := store.Load(ctx, id)
		require.NoError(t, err)
		first.Nodes[0].Extensions.Values[0].Value = "unbinding"

		second, err := store.Load(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "binding", second.Nodes[0].Extensions.Values[0].Value)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+id)
		assert.ErrorIs(t, err, domain.ErrDiagramNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, id, contractDiagram(id)))

		err := store.Delete(ctx, id)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, id)
		assert.ErrorIs(t, err, domain.ErrDiagramNotFound, "Load after Delete should return ErrDiagramNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := id + "-1"
		id2 := id + "-2"
		_ = store.Save(ctx, id1, contractDiagram(id1))
		_ = store.Save(ctx, id2, contractDiagram(id2))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})
}
