package messaging

import (
	"context"
)

const (
	OrdersCreatedSubject = "orders.created"
	OrdersSyncedSubject  = "orders.synced"
)

type Event interface {
	Subject() string
	Payload() ([]byte, error)
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}
