package cart

import (
	"sync"

	"github.com/google/uuid"
)

// Manager keeps one cart per sales rep, keyed by user id. Carts are only
// touched while the manager lock is held; the raw *Cart never escapes, so
// readers cannot observe a half-applied mutation.
type Manager struct {
	mu    sync.RWMutex
	carts map[uuid.UUID]*Cart
}

func NewManager() *Manager {
	return &Manager{
		carts: make(map[uuid.UUID]*Cart),
	}
}

// Mutate runs fn against the user's cart under the manager lock. The cart is
// resolved, creating it on first use, inside the same critical section, so a
// concurrent Drop cannot leave fn mutating an orphaned cart.
func (m *Manager) Mutate(userID uuid.UUID, fn func(c *Cart)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.carts[userID]
	if !ok {
		c = New()
		m.carts[userID] = c
	}
	fn(c)
}

// Snapshot returns a copy of the user's cart lines, read under the manager
// lock. A missing cart yields nil.
func (m *Manager) Snapshot(userID uuid.UUID) []Item {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.carts[userID]
	if !ok {
		return nil
	}
	return c.Items()
}

// Drop discards the cart of the given user.
func (m *Manager) Drop(userID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, userID)
}
