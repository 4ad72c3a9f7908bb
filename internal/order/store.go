package order

import (
	"context"

	"github.com/google/uuid"
)

// Store is an interface for order storage operations.
// It abstracts the underlying data store, allowing for different implementations (e.g., in-memory, database).
type Store interface {
	// FindByID retrieves a single order by its unique identifier.
	// Returns ErrOrderNotFound if no order exists with the given ID.
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByNumber retrieves a single order by its immutable order number.
	// Returns ErrOrderNotFound if no order carries the given number.
	FindByNumber(ctx context.Context, number string) (*Order, error)

	// FindBySalesRep returns the orders of one sales rep, newest first.
	// Returns an empty slice if no orders exist.
	FindBySalesRep(ctx context.Context, salesRepID uuid.UUID, offset, limit int32) ([]Order, error)

	// FindAll returns all orders, newest first, with pagination support.
	FindAll(ctx context.Context, offset, limit int32) ([]Order, error)

	// Create adds a new order to the system.
	// Returns error if the order cannot be created.
	Create(ctx context.Context, o *Order) (*Order, error)

	// UpdateStatus overwrites the order status.
	// Returns ErrOrderNotFound or ErrOptimisticLock on version mismatch.
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status, version int32) (*Order, error)

	// Replace overwrites the order's items, totals, previous version and edit
	// log after an explicit edit operation.
	Replace(ctx context.Context, o *Order) (*Order, error)
}
