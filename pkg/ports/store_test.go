package ports_test

import (
	"context"
	"testing"

	"github.com/aretw0/spacetask/pkg/domain"
	"github.com/aretw0/spacetask/pkg/ports"
)

// MockStore is an in-memory implementation of DiagramStore for testing purposes.
type MockStore struct {
	data map[string]*domain.Diagram
}

func NewMockStore() *MockStore {
	return &MockStore{
		data: make(map[string]*domain.Diagram),
	}
}

func (m *MockStore) Save(ctx context.Context, id string, d *domain.Diagram) error {
	m.data[id] = d.Clone()
	return nil
}

func (m *MockStore) Load(ctx context.Context, id string) (*domain.Diagram, error) {
	d, ok := m.data[id]
	if !ok {
		return nil, domain.ErrDiagramNotFound
	}
	return d.Clone(), nil
}

func (m *MockStore) Delete(ctx context.Context, id string) error {
	delete(m.data, id)
	return nil
}

func (m *MockStore) List(ctx context.Context) ([]string, error) {
	ids := make([]string, 0, len(m.data))
	for id := range m.data {
		ids = append(ids, id)
	}
	return ids, nil
}

func TestDiagramStore_Contract(t *testing.T) {
	ports.RunDiagramStoreContract(t, NewMockStore())
}
