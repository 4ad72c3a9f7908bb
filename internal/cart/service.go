package cart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/baigojahanzaib/ajj-sales/internal/catalog"
	"github.com/baigojahanzaib/ajj-sales/internal/pricing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrUnknownSelection is returned when a selected variation or option id
	// does not exist on the product.
	ErrUnknownSelection = errors.New("unknown variation selection")
	// ErrProductInactive is returned when the product is disabled in the catalog.
	ErrProductInactive = errors.New("product is not active")
)

// Service validates cart mutations against the catalog and applies them to
// the per-user carts.
type Service struct {
	carts    *Manager
	products catalog.ProductStore
	logger   *slog.Logger
}

// NewService creates a new cart Service with the provided manager and product store.
func NewService(carts *Manager, products catalog.ProductStore, logger *slog.Logger) *Service {
	return &Service{
		carts:    carts,
		products: products,
		logger:   logger.With("component", "cart"),
	}
}

// AddItemDto represents the data transfer object for adding a line to the cart.
type AddItemDto struct {
	ProductID  uuid.UUID                   `json:"product_id" validate:"required"`
	Selections []catalog.SelectedVariation `json:"selections,omitempty" validate:"omitempty,dive"`
	Quantity   int32                       `json:"quantity" validate:"required,min=1"`
}

// QuantityDto represents the data transfer object for a quantity change.
// A quantity of zero removes the line.
type QuantityDto struct {
	Quantity int32 `json:"quantity" validate:"min=0"`
}

// View is the cart as returned to the client: lines plus computed totals.
type View struct {
	Items    []Item          `json:"items"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// AddItem resolves the product, checks every selection against its variation
// list and merges the line into the user's cart.
func (s *Service) AddItem(ctx context.Context, userID uuid.UUID, dto AddItemDto) (*View, error) {
	product, err := s.products.FindByID(ctx, dto.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, ErrProductInactive
	}
	for _, sel := range dto.Selections {
		if _, ok := product.Option(sel.VariationID, sel.OptionID); !ok {
			return nil, fmt.Errorf("%w: %s/%s", ErrUnknownSelection, sel.VariationID, sel.OptionID)
		}
	}

	s.carts.Mutate(userID, func(c *Cart) {
		c.AddItem(product, dto.Selections, dto.Quantity)
	})
	s.logger.DebugContext(ctx, "Cart line added", "user_id", userID, "product_id", product.ID, "quantity", dto.Quantity)
	return s.viewOf(userID), nil
}

// UpdateQuantity overwrites the quantity of one line; zero removes it.
func (s *Service) UpdateQuantity(userID, itemID uuid.UUID, dto QuantityDto) *View {
	s.carts.Mutate(userID, func(c *Cart) {
		c.UpdateQuantity(itemID, dto.Quantity)
	})
	return s.viewOf(userID)
}

// RemoveItem deletes one line from the user's cart.
func (s *Service) RemoveItem(userID, itemID uuid.UUID) *View {
	s.carts.Mutate(userID, func(c *Cart) {
		c.RemoveItem(itemID)
	})
	return s.viewOf(userID)
}

// Clear empties the user's cart.
func (s *Service) Clear(userID uuid.UUID) *View {
	s.carts.Mutate(userID, func(c *Cart) {
		c.Clear()
	})
	return s.viewOf(userID)
}

// Get returns the current cart view for the user.
func (s *Service) Get(userID uuid.UUID) *View {
	return s.viewOf(userID)
}

func (s *Service) viewOf(userID uuid.UUID) *View {
	var items []Item
	var totals pricing.Totals
	s.carts.Mutate(userID, func(c *Cart) {
		items = c.Items()
		totals = c.Totals()
	})
	if items == nil {
		items = []Item{}
	}
	return &View{
		Items:    items,
		Subtotal: totals.Subtotal,
		Tax:      totals.Tax,
		Total:    totals.Total,
	}
}
