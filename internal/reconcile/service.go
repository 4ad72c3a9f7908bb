package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/baigojahanzaib/ajj-sales/internal/catalog"
	"github.com/baigojahanzaib/ajj-sales/internal/order"
)

// Service loads the local records a batch refers to, applies the patches and
// persists whatever changed.
type Service struct {
	products catalog.ProductStore
	orders   order.Store
	logger   *slog.Logger
}

// NewService creates a new reconciliation Service.
func NewService(products catalog.ProductStore, orders order.Store, logger *slog.Logger) *Service {
	return &Service{
		products: products,
		orders:   orders,
		logger:   logger.With("component", "reconcile"),
	}
}

// ApplyStockBatch applies a batch of stock/MOQ updates against the catalog.
// The returned report has exactly one outcome per input record.
func (s *Service) ApplyStockBatch(ctx context.Context, updates []StockUpdate) (*Report, error) {
	skus := make([]string, 0, len(updates))
	for _, u := range updates {
		if u.SKU != "" {
			skus = append(skus, u.SKU)
		}
	}
	found, err := s.products.FindBySKUs(ctx, skus)
	if err != nil {
		return nil, fmt.Errorf("failed to load products for batch: %w", err)
	}
	products := make([]*catalog.Product, len(found))
	for i := range found {
		products[i] = &found[i]
	}

	report, modified := ApplyStockUpdates(products, updates)
	if len(modified) > 0 {
		if err := s.products.SaveAll(ctx, modified); err != nil {
			return nil, fmt.Errorf("failed to persist batch result: %w", err)
		}
	}
	s.logger.InfoContext(ctx, "Stock batch applied",
		"records", len(updates), "succeeded", report.Succeeded(), "failed", report.Failed())
	return &report, nil
}

// ApplyOrderBatch applies a batch of externally-triggered status changes.
// Each record is matched by order number and routed through the status
// transition table; an illegal move or unknown number is reported per
// record and never aborts the batch.
func (s *Service) ApplyOrderBatch(ctx context.Context, updates []OrderUpdate) (*Report, error) {
	report := Report{Outcomes: make([]Outcome, 0, len(updates))}
	for _, u := range updates {
		outcome := Outcome{Key: u.OrderNumber}
		if err := s.applyOrderUpdate(ctx, u); err != nil {
			outcome.Reason = reason(err)
		} else {
			outcome.Matched = MatchOrder
			outcome.OK = true
		}
		report.Outcomes = append(report.Outcomes, outcome)
	}
	s.logger.InfoContext(ctx, "Order batch applied",
		"records", len(updates), "succeeded", report.Succeeded(), "failed", report.Failed())
	return &report, nil
}

func (s *Service) applyOrderUpdate(ctx context.Context, u OrderUpdate) error {
	next, err := order.ParseStatus(u.Status)
	if err != nil {
		return err
	}
	o, err := s.orders.FindByNumber(ctx, u.OrderNumber)
	if err != nil {
		return err
	}
	if o.Status == next {
		// Idempotent: re-applying the same status is a no-op, not a failure.
		return nil
	}
	if !o.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", order.ErrInvalidTransition, o.Status, next)
	}
	_, err = s.orders.UpdateStatus(ctx, o.ID, next, o.Version)
	return err
}

func reason(err error) string {
	if errors.Is(err, order.ErrOrderNotFound) {
		return "not found"
	}
	return err.Error()
}
