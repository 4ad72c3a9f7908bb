package customer

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Service provides customer-related business logic over a Store.
type Service struct {
	store Store
}

// NewService creates a new customer Service with the provided store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// CreateDto represents the data transfer object for creating a new customer.
type CreateDto struct {
	Name       string     `json:"name" validate:"required,max=200"`
	Phone      string     `json:"phone" validate:"omitempty,max=40"`
	Email      string     `json:"email" validate:"omitempty,email"`
	Address    string     `json:"address" validate:"omitempty,max=500"`
	SalesRepID *uuid.UUID `json:"sales_rep_id"`
}

// UpdateDto represents the data transfer object for updating an existing customer.
type UpdateDto struct {
	Name       string     `json:"name" validate:"required,max=200"`
	Phone      string     `json:"phone" validate:"omitempty,max=40"`
	Email      string     `json:"email" validate:"omitempty,email"`
	Address    string     `json:"address" validate:"omitempty,max=500"`
	SalesRepID *uuid.UUID `json:"sales_rep_id"`
	Version    int32      `json:"version" validate:"required,min=1"`
}

// FindByID retrieves a customer by its ID.
func (s *Service) FindByID(ctx context.Context, id uuid.UUID) (*Customer, error) {
	c, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch customer by ID %s: %w", id, err)
	}
	return c, nil
}

// FindAll retrieves customers with pagination support.
func (s *Service) FindAll(ctx context.Context, offset, limit int32) ([]Customer, error) {
	customers, err := s.store.FindAll(ctx, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch customers: %w", err)
	}
	return customers, nil
}

// Create adds a new customer.
func (s *Service) Create(ctx context.Context, dto CreateDto) (*Customer, error) {
	return s.store.Create(ctx, &Customer{
		Name:       dto.Name,
		Phone:      dto.Phone,
		Email:      dto.Email,
		Address:    dto.Address,
		SalesRepID: dto.SalesRepID,
	})
}

// Update modifies an existing customer. The order history is unaffected:
// orders keep the snapshot taken at creation time.
func (s *Service) Update(ctx context.Context, id uuid.UUID, dto UpdateDto) (*Customer, error) {
	return s.store.Update(ctx, &Customer{
		ID:         id,
		Name:       dto.Name,
		Phone:      dto.Phone,
		Email:      dto.Email,
		Address:    dto.Address,
		SalesRepID: dto.SalesRepID,
		Version:    dto.Version,
	})
}

// DeleteByID removes a customer.
func (s *Service) DeleteByID(ctx context.Context, id uuid.UUID, version int32) error {
	return s.store.DeleteByID(ctx, id, version)
}
