package workspace

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/spacetask/internal/logging"
	"github.com/aretw0/spacetask/pkg/diagram"
	"github.com/aretw0/spacetask/pkg/domain"
	"github.com/aretw0/spacetask/pkg/ports"
)

// DefaultLockTTL bounds how long a distributed lock survives a crashed holder.
const DefaultLockTTL = 30 * time.Second

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates diagram access.
// Per-diagram mutexes are reference counted and dropped when unused.
type Manager struct {
	store ports.DiagramStore

	mu    sync.Mutex
	locks map[string]*lockEntry

	locker  ports.Locker
	lockTTL time.Duration
	logger  *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables cross-process locking.
func WithLocker(locker ports.Locker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL sets the expiry of distributed locks.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.lockTTL = ttl
		}
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a Manager over store.
func NewManager(store ports.DiagramStore, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		locks:   make(map[string]*lockEntry),
		lockTTL: DefaultLockTTL,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller must lock entry.mu and call release(id) after unlocking.
func (m *Manager) acquire(id string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[id]
	if !exists {
		entry = &lockEntry{}
		m.locks[id] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry at zero.
func (m *Manager) release(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[id]
	if !exists {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, id)
	}
}

// WithLock runs fn while holding the lock for id.
func (m *Manager) WithLock(ctx context.Context, id string, fn func(context.Context) error) error {
	entry := m.acquire(id)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(id)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, id, m.lockTTL)
		if err != nil {
			return fmt.Errorf("diagram %s: %w", id, err)
		}
		defer func() {
			if err := unlock(context.WithoutCancel(ctx)); err != nil {
				m.logger.Warn("failed to release diagram lock, it will expire",
					"diagram_id", id,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}

// Load returns the stored diagram.
func (m *Manager) Load(ctx context.Context, id string) (*domain.Diagram, error) {
	var d *domain.Diagram
	err := m.WithLock(ctx, id, func(ctx context.Context) error {
		var err error
		d, err = m.store.Load(ctx, id)
		return err
	})
	return d, err
}

// Create stores d, assigning a random ID when it has none. An existing diagram
// with the same ID is replaced.
func (m *Manager) Create(ctx context.Context, d *domain.Diagram) (string, error) {
	if err := diagram.Check(d); err != nil {
		return "", err
	}
	id := diagram.EnsureID(d)
	return id, m.Save(ctx, id, d)
}

// Save persists d under id.
func (m *Manager) Save(ctx context.Context, id string, d *domain.Diagram) error {
	return m.WithLock(ctx, id, func(ctx context.Context) error {
		return m.store.Save(ctx, id, d)
	})
}

// Update loads the diagram, applies fn and saves the result. Nothing is saved when fn fails.
func (m *Manager) Update(ctx context.Context, id string, fn func(context.Context, *domain.Diagram) error) (*domain.Diagram, error) {
	var d *domain.Diagram
	err := m.WithLock(ctx, id, func(ctx context.Context) error {
		loaded, err := m.store.Load(ctx, id)
		if err != nil {
			return err
		}
		if err := fn(ctx, loaded); err != nil {
			return err
		}
		if err := m.store.Save(ctx, id, loaded); err != nil {
			return fmt.Errorf("failed to save diagram %s: %w", id, err)
		}
		d = loaded
		return nil
	})
	return d, err
}

// Delete removes the diagram.
func (m *Manager) Delete(ctx context.Context, id string) error {
	return m.WithLock(ctx, id, func(ctx context.Context) error {
		return m.store.Delete(ctx, id)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Exists reports whether id is stored.
func (m *Manager) Exists(ctx context.Context, id string) (bool, error) {
	_, err := m.Load(ctx, id)
	if errors.Is(err, domain.ErrDiagramNotFound) {
		return false, nil
	}
	return err == nil, err
}

// Store returns the underlying store.
func (m *Manager) Store() ports.DiagramStore {
	return m.store
}
