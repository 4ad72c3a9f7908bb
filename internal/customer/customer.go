// Package customer provides customer management for the sales force.
package customer

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrCustomerNotFound = errors.New("customer not found")
var ErrOptimisticLock = errors.New("optimistic lock error: the record has been modified by another transaction")

// Customer is a buyer managed by a sales rep. Orders copy the contact
// fields at creation time rather than referencing this record.
type Customer struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	Phone      string     `json:"phone,omitempty"`
	Email      string     `json:"email,omitempty"`
	Address    string     `json:"address,omitempty"`
	SalesRepID *uuid.UUID `json:"sales_rep_id,omitempty"`
	Version    int32      `json:"version"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
