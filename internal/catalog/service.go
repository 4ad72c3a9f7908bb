package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service implements catalog business logic over the product and category
// stores.
type Service struct {
	products   ProductStore
	categories CategoryStore
	logger     *slog.Logger
}

// NewService creates a new catalog Service with the provided stores.
func NewService(products ProductStore, categories CategoryStore, logger *slog.Logger) *Service {
	return &Service{
		products:   products,
		categories: categories,
		logger:     logger.With("component", "catalog"),
	}
}

// ProductCreateDto represents the data transfer object for creating a new product.
type ProductCreateDto struct {
	Name        string          `json:"name" validate:"required,max=200"`
	SKU         string          `json:"sku" validate:"required,max=100"`
	Description string          `json:"description" validate:"omitempty,max=5000"`
	BasePrice   decimal.Decimal `json:"base_price" validate:"required"`
	Stock       int32           `json:"stock" validate:"min=0"`
	MOQ         int32           `json:"moq" validate:"min=0"`
	Ribbon      string          `json:"ribbon" validate:"omitempty,max=50"`
	CategoryID  *uuid.UUID      `json:"category_id"`
	Variations  []Variation     `json:"variations"`
}

// ProductUpdateDto represents the data transfer object for updating a product.
// Version is required for optimistic concurrency control.
type ProductUpdateDto struct {
	Name        string          `json:"name" validate:"required,max=200"`
	SKU         string          `json:"sku" validate:"required,max=100"`
	Description string          `json:"description" validate:"omitempty,max=5000"`
	BasePrice   decimal.Decimal `json:"base_price" validate:"required"`
	Stock       int32           `json:"stock" validate:"min=0"`
	MOQ         int32           `json:"moq" validate:"min=0"`
	Ribbon      string          `json:"ribbon" validate:"omitempty,max=50"`
	IsActive    bool            `json:"is_active"`
	CategoryID  *uuid.UUID      `json:"category_id"`
	Variations  []Variation     `json:"variations"`
	Version     int32           `json:"version" validate:"required,min=1"`
}

// CategoryCreateDto represents the data transfer object for creating a category.
type CategoryCreateDto struct {
	Name     string     `json:"name" validate:"required,max=200"`
	ParentID *uuid.UUID `json:"parent_id"`
	Enabled  bool       `json:"enabled"`
}

// FindByID retrieves a product by its ID.
func (s *Service) FindByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	return s.products.FindByID(ctx, id)
}

// FindAll retrieves all products with pagination. Sales reps browse only
// active products; admins pass includeInactive true.
func (s *Service) FindAll(ctx context.Context, includeInactive bool, offset, limit int32) ([]Product, error) {
	if includeInactive {
		return s.products.FindAll(ctx, offset, limit)
	}
	return s.products.FindActive(ctx, offset, limit)
}

// Create adds a new product. The store assigns the id, version and
// timestamps.
func (s *Service) Create(ctx context.Context, dto ProductCreateDto) (*Product, error) {
	p := &Product{
		Name:        dto.Name,
		SKU:         dto.SKU,
		Description: dto.Description,
		BasePrice:   dto.BasePrice,
		Stock:       dto.Stock,
		MOQ:         dto.MOQ,
		Ribbon:      dto.Ribbon,
		IsActive:    true,
		CategoryID:  dto.CategoryID,
		Variations:  dto.Variations,
	}
	created, err := s.products.Create(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	s.logger.InfoContext(ctx, "Product created", "product_id", created.ID, "sku", created.SKU)
	return created, nil
}

// Update modifies an existing product.
// Returns ErrOptimisticLock if the version does not match.
func (s *Service) Update(ctx context.Context, id uuid.UUID, dto ProductUpdateDto) (*Product, error) {
	current, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	current.Name = dto.Name
	current.SKU = dto.SKU
	current.Description = dto.Description
	current.BasePrice = dto.BasePrice
	current.Stock = dto.Stock
	current.MOQ = dto.MOQ
	current.Ribbon = dto.Ribbon
	current.IsActive = dto.IsActive
	current.CategoryID = dto.CategoryID
	current.Variations = dto.Variations
	current.Version = dto.Version
	return s.products.Update(ctx, current)
}

// DeleteByID removes a product.
func (s *Service) DeleteByID(ctx context.Context, id uuid.UUID, version int32) error {
	return s.products.DeleteByID(ctx, id, version)
}

// Categories retrieves all categories.
func (s *Service) Categories(ctx context.Context) ([]Category, error) {
	return s.categories.FindAllCategories(ctx)
}

// CreateCategory adds a new category.
func (s *Service) CreateCategory(ctx context.Context, dto CategoryCreateDto) (*Category, error) {
	return s.categories.CreateCategory(ctx, &Category{
		Name:     dto.Name,
		ParentID: dto.ParentID,
		Enabled:  dto.Enabled,
	})
}

// DeleteCategoryByID removes a category.
func (s *Service) DeleteCategoryByID(ctx context.Context, id uuid.UUID) error {
	return s.categories.DeleteCategoryByID(ctx, id)
}
