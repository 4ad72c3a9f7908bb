package customer

import (
	"context"

	"github.com/google/uuid"
)

// Store is an interface for customer storage operations.
type Store interface {
	// FindByID retrieves a customer by its unique identifier.
	// Returns ErrCustomerNotFound if no customer exists with the given ID.
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)

	// FindAll returns customers with pagination support.
	FindAll(ctx context.Context, offset, limit int32) ([]Customer, error)

	// Create adds a new customer.
	Create(ctx context.Context, c *Customer) (*Customer, error)

	// Update modifies an existing customer.
	// Returns ErrCustomerNotFound or ErrOptimisticLock on version mismatch.
	Update(ctx context.Context, c *Customer) (*Customer, error)

	// DeleteByID removes a customer by its unique identifier.
	DeleteByID(ctx context.Context, id uuid.UUID, version int32) error
}
