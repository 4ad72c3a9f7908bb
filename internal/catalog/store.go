package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ProductStore is an interface for product storage operations.
// It abstracts the underlying data store, allowing for different implementations (e.g., in-memory, database).
type ProductStore interface {
	// FindByID retrieves a single product by its unique identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindBySKU retrieves a single product by its SKU.
	// Returns ErrProductNotFound if no product carries the given SKU.
	FindBySKU(ctx context.Context, sku string) (*Product, error)

	// FindBySKUs returns every product whose own SKU, or the SKU of one of
	// its variation options, is in the given set. Used by batch reconciliation.
	FindBySKUs(ctx context.Context, skus []string) ([]Product, error)

	// FindAll returns products with pagination support.
	// Returns an empty slice if no products exist.
	FindAll(ctx context.Context, offset, limit int32) ([]Product, error)

	// FindActive returns active products with pagination support.
	FindActive(ctx context.Context, offset, limit int32) ([]Product, error)

	// Create adds a new product to the system.
	// Returns ErrDuplicateSKU if the SKU is already taken.
	Create(ctx context.Context, p *Product) (*Product, error)

	// Update modifies an existing product's details.
	// Returns ErrProductNotFound if no product exists with the given ID and version.
	Update(ctx context.Context, p *Product) (*Product, error)

	// UpsertByExternalID creates or replaces a product matched by its
	// storefront-assigned external id. Used by the catalog import.
	UpsertByExternalID(ctx context.Context, p *Product) (*Product, error)

	// SaveAll persists stock and variation changes for the given products
	// in a single transaction.
	SaveAll(ctx context.Context, products []*Product) error

	// DeleteByID removes a product by its unique identifier.
	// Returns ErrProductNotFound if no product exists with the given ID and version.
	DeleteByID(ctx context.Context, id uuid.UUID, version int32) error
}

// CategoryStore is an interface for category storage operations.
// Method names are prefixed so a single store can implement both interfaces.
type CategoryStore interface {
	// FindAllCategories returns all categories.
	FindAllCategories(ctx context.Context) ([]Category, error)

	// FindCategoryByID retrieves a category by its unique identifier.
	// Returns ErrCategoryNotFound if no category exists with the given ID.
	FindCategoryByID(ctx context.Context, id uuid.UUID) (*Category, error)

	// CreateCategory adds a new category.
	CreateCategory(ctx context.Context, c *Category) (*Category, error)

	// UpsertCategoryByExternalID creates or replaces a category matched by its
	// storefront-assigned external id.
	UpsertCategoryByExternalID(ctx context.Context, c *Category) (*Category, error)

	// DeleteCategoryByID removes a category by its unique identifier.
	DeleteCategoryByID(ctx context.Context, id uuid.UUID) error
}
