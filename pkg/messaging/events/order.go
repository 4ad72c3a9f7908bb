package events

import (
	"encoding/json"
	"time"

	"github.com/baigojahanzaib/ajj-sales/pkg/messaging"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderCreatedEvent is published after an order has been persisted.
type OrderCreatedEvent struct {
	OrderID     uuid.UUID       `json:"order_id"`
	OrderNumber string          `json:"order_number"`
	SalesRepID  uuid.UUID       `json:"sales_rep_id"`
	Total       decimal.Decimal `json:"total"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (o OrderCreatedEvent) Subject() string {
	return messaging.OrdersCreatedSubject
}

func (o OrderCreatedEvent) Payload() ([]byte, error) {
	return json.Marshal(o)
}

// OrdersSyncedEvent is published after a pending-order sync pass finishes.
type OrdersSyncedEvent struct {
	Synced     int       `json:"synced"`
	Remaining  int       `json:"remaining"`
	FinishedAt time.Time `json:"finished_at"`
}

func (o OrdersSyncedEvent) Subject() string {
	return messaging.OrdersSyncedSubject
}

func (o OrdersSyncedEvent) Payload() ([]byte, error) {
	return json.Marshal(o)
}
