// Package order provides the implementation of order lifecycle business logic.
package order

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/baigojahanzaib/ajj-sales/internal/cart"
	"github.com/baigojahanzaib/ajj-sales/internal/catalog"
	"github.com/baigojahanzaib/ajj-sales/internal/customer"
	"github.com/baigojahanzaib/ajj-sales/internal/pricing"
	"github.com/baigojahanzaib/ajj-sales/pkg/messaging"
	"github.com/baigojahanzaib/ajj-sales/pkg/messaging/events"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// CustomerSource resolves the customer whose contact data is snapshotted
// onto a new order.
type CustomerSource interface {
	FindByID(ctx context.Context, id uuid.UUID) (*customer.Customer, error)
}

// PendingQueue buffers orders that could not be persisted to the remote
// store, for replay when connectivity is restored.
type PendingQueue interface {
	Enqueue(o *Order)
}

// Service implements the order lifecycle: creation from a cart, status
// transitions through the enforced state machine, and audited edits.
type Service struct {
	store         Store
	customers     CustomerSource
	carts         *cart.Manager
	queue         PendingQueue
	publisher     messaging.Publisher
	logger        *slog.Logger
	ordersCounter metric.Int64Counter
}

// NewService creates a new order Service with the provided collaborators.
func NewService(store Store, customers CustomerSource, carts *cart.Manager, queue PendingQueue, publisher messaging.Publisher, logger *slog.Logger) *Service {
	meter := otel.Meter("ajj-sales")
	ordersCounter, err := meter.Int64Counter("orders_created", metric.WithDescription("Total number of created orders"))
	if err != nil {
		panic(fmt.Sprintf("failed to create orders_created counter: %v", err))
	}
	return &Service{
		store:         store,
		customers:     customers,
		carts:         carts,
		queue:         queue,
		publisher:     publisher,
		logger:        logger.With("component", "order"),
		ordersCounter: ordersCounter,
	}
}

// CreateDto represents the data transfer object for creating a new order.
type CreateDto struct {
	CustomerID uuid.UUID       `json:"customer_id" validate:"required"`
	Discount   decimal.Decimal `json:"discount"`
}

// StatusUpdateDto represents the data transfer object for a status transition.
type StatusUpdateDto struct {
	Status  string `json:"status" validate:"required"`
	Version int32  `json:"version" validate:"required,min=1"`
}

// ItemEditDto names one line of an edited order by product and variation
// selections. A quantity of zero removes the line.
type ItemEditDto struct {
	ProductID  uuid.UUID                   `json:"product_id" validate:"required"`
	Selections []catalog.SelectedVariation `json:"selections,omitempty"`
	Quantity   int32                       `json:"quantity" validate:"min=0"`
}

// EditDto represents the data transfer object for an explicit post-submission edit.
type EditDto struct {
	Items    []ItemEditDto    `json:"items" validate:"required,gt=0,dive"`
	Discount *decimal.Decimal `json:"discount"`
	Note     string           `json:"note" validate:"omitempty,max=500"`
	Version  int32            `json:"version" validate:"required,min=1"`
}

// CreateResult carries the created order and whether it was queued for a
// later sync instead of being persisted immediately.
type CreateResult struct {
	Order  *Order `json:"order"`
	Queued bool   `json:"queued"`
}

// CreateFromCart turns the sales rep's current cart into an order: customer
// contact data is copied, cart lines are frozen into item snapshots and the
// totals are computed and fixed. On success the cart is cleared. If the
// store is unreachable the order is placed on the pending queue instead and
// the cart is cleared as well, so the rep can keep working offline.
func (s *Service) CreateFromCart(ctx context.Context, salesRepID uuid.UUID, dto CreateDto) (*CreateResult, error) {
	cartItems := s.carts.Snapshot(salesRepID)
	if len(cartItems) == 0 {
		return nil, ErrEmptyCart
	}

	cust, err := s.customers.FindByID(ctx, dto.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve customer %s: %w", dto.CustomerID, err)
	}

	o := build(salesRepID, cust, cartItems, dto.Discount)

	created, err := s.store.Create(ctx, o)
	if err != nil {
		if !retriable(err) {
			// The store answered and rejected the order. Replaying it later
			// would fail the same way, so the cart is kept for correction.
			return nil, fmt.Errorf("failed to persist order %s: %w", o.OrderNumber, err)
		}
		// Remote store unreachable: keep the order locally and replay later.
		s.logger.WarnContext(ctx, "Order store unavailable, queueing order", "order_number", o.OrderNumber, "error", err)
		s.queue.Enqueue(o)
		s.carts.Drop(salesRepID)
		return &CreateResult{Order: o, Queued: true}, nil
	}
	s.carts.Drop(salesRepID)

	event := events.OrderCreatedEvent{
		OrderID:     created.ID,
		OrderNumber: created.OrderNumber,
		SalesRepID:  created.SalesRepID,
		Total:       created.Total,
		CreatedAt:   created.CreatedAt,
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish OrderCreatedEvent", "error", err)
	}
	// increase the number of created orders
	s.ordersCounter.Add(ctx, 1)

	return &CreateResult{Order: created}, nil
}

// FindByID retrieves an order by its ID. A sales rep can only read their own
// orders; admins pass isAdmin true.
func (s *Service) FindByID(ctx context.Context, userID uuid.UUID, isAdmin bool, id uuid.UUID) (*Order, error) {
	o, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && o.SalesRepID != userID {
		return nil, ErrAccessDenied
	}
	return o, nil
}

// FindBySalesRep retrieves the orders of one sales rep, newest first.
func (s *Service) FindBySalesRep(ctx context.Context, salesRepID uuid.UUID, offset, limit int32) ([]Order, error) {
	return s.store.FindBySalesRep(ctx, salesRepID, offset, limit)
}

// FindAll retrieves all orders for the admin panel.
func (s *Service) FindAll(ctx context.Context, offset, limit int32) ([]Order, error) {
	return s.store.FindAll(ctx, offset, limit)
}

// UpdateStatus applies a status transition through the state machine.
// Returns ErrInvalidTransition for moves the table does not allow.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, dto StatusUpdateDto) (*Order, error) {
	next, err := ParseStatus(dto.Status)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTransition, err)
	}
	current, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !current.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, next)
	}
	return s.store.UpdateStatus(ctx, id, next, dto.Version)
}

// Edit applies an explicit post-submission edit: line quantities are
// adjusted (unit prices stay frozen), totals are recomputed, the prior item
// and money state is kept as PreviousVersion and an entry is appended to the
// edit log.
func (s *Service) Edit(ctx context.Context, editorID uuid.UUID, id uuid.UUID, dto EditDto) (*Order, error) {
	o, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: order is %s", ErrInvalidTransition, o.Status)
	}

	prev := Snapshot{
		Items:    o.Items,
		Subtotal: o.Subtotal,
		Tax:      o.Tax,
		Discount: o.Discount,
		Total:    o.Total,
	}

	edited := make([]Item, 0, len(o.Items))
	for _, item := range o.Items {
		quantity := item.Quantity
		for _, e := range dto.Items {
			if e.ProductID == item.ProductID && sameSelections(e.Selections, item.Selections) {
				quantity = e.Quantity
				break
			}
		}
		if quantity <= 0 {
			continue
		}
		item.Quantity = quantity
		item.TotalPrice = item.UnitPrice.Mul(decimal.NewFromInt32(quantity))
		edited = append(edited, item)
	}
	if len(edited) == 0 {
		return nil, ErrEmptyCart
	}

	o.Items = edited
	if dto.Discount != nil {
		o.Discount = *dto.Discount
	}
	recomputeTotals(o)
	o.PreviousVersion = &prev
	o.EditLog = append(o.EditLog, EditEntry{
		EditedBy: editorID,
		EditedAt: time.Now().UTC(),
		Note:     dto.Note,
	})
	o.Version = dto.Version

	return s.store.Replace(ctx, o)
}

// retriable reports whether a create failure is worth replaying later. An
// error response from the database, a constraint violation for example, is
// permanent; anything else is treated as lost connectivity.
func retriable(err error) bool {
	var pgErr *pgconn.PgError
	return !errors.As(err, &pgErr)
}

// build assembles a new Order from the cart state. Totals obey
// total = subtotal + tax - discount.
func build(salesRepID uuid.UUID, cust *customer.Customer, cartItems []cart.Item, discount decimal.Decimal) *Order {
	items := make([]Item, len(cartItems))
	for i, ci := range cartItems {
		items[i] = Item{
			ProductID:      ci.Product.ID,
			ProductName:    ci.Product.Name,
			SKU:            ci.Product.SKU,
			Selections:     ci.Selections,
			SelectionNames: selectionNames(&ci.Product, ci.Selections),
			Quantity:       ci.Quantity,
			UnitPrice:      ci.UnitPrice,
			TotalPrice:     ci.TotalPrice,
		}
	}

	now := time.Now().UTC()
	o := &Order{
		ID:          uuid.New(),
		OrderNumber: newOrderNumber(now),
		SalesRepID:  salesRepID,
		CustomerID:  cust.ID,
		Customer: CustomerSnapshot{
			Name:    cust.Name,
			Phone:   cust.Phone,
			Email:   cust.Email,
			Address: cust.Address,
		},
		Items:     items,
		Discount:  discount,
		Status:    StatusPending,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	recomputeTotals(o)
	return o
}

func recomputeTotals(o *Order) {
	lines := make([]decimal.Decimal, len(o.Items))
	for i, item := range o.Items {
		lines[i] = item.TotalPrice
	}
	t := pricing.FromLines(lines)
	o.Subtotal = t.Subtotal
	o.Tax = t.Tax
	o.Total = pricing.OrderTotal(t, o.Discount)
}

// newOrderNumber builds an immutable human-readable order number.
func newOrderNumber(now time.Time) string {
	suffix := strings.Split(uuid.NewString(), "-")[0]
	return fmt.Sprintf("AJJ-%s-%s", now.Format("20060102150405"), suffix)
}

func sameSelections(a, b []catalog.SelectedVariation) bool {
	return cart.Signature(a) == cart.Signature(b)
}

// selectionNames resolves "Variation: Option" labels against the product
// snapshot. Selections that no longer resolve keep their raw ids.
func selectionNames(p *catalog.Product, selections []catalog.SelectedVariation) []string {
	if len(selections) == 0 {
		return nil
	}
	names := make([]string, len(selections))
	for i, sel := range selections {
		names[i] = sel.VariationID + ": " + sel.OptionID
		for _, v := range p.Variations {
			if v.ID != sel.VariationID {
				continue
			}
			if opt, ok := p.Option(sel.VariationID, sel.OptionID); ok {
				names[i] = v.Name + ": " + opt.Name
			}
		}
	}
	return names
}
