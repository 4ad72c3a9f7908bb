package reconcile

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/baigojahanzaib/ajj-sales/internal/catalog"
	"github.com/baigojahanzaib/ajj-sales/internal/order"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockOrderStore is a mock implementation of the order.Store interface.
type mockOrderStore struct {
	byNumber      map[string]*order.Order
	statusUpdates []order.Status
}

func (m *mockOrderStore) FindByID(_ context.Context, _ uuid.UUID) (*order.Order, error) {
	return nil, order.ErrOrderNotFound
}

func (m *mockOrderStore) FindByNumber(_ context.Context, number string) (*order.Order, error) {
	o, ok := m.byNumber[number]
	if !ok {
		return nil, order.ErrOrderNotFound
	}
	return o, nil
}

func (m *mockOrderStore) FindBySalesRep(_ context.Context, _ uuid.UUID, _, _ int32) ([]order.Order, error) {
	return nil, nil
}

func (m *mockOrderStore) FindAll(_ context.Context, _, _ int32) ([]order.Order, error) {
	return nil, nil
}

func (m *mockOrderStore) Create(_ context.Context, o *order.Order) (*order.Order, error) {
	return o, nil
}

func (m *mockOrderStore) UpdateStatus(_ context.Context, _ uuid.UUID, status order.Status, _ int32) (*order.Order, error) {
	m.statusUpdates = append(m.statusUpdates, status)
	return &order.Order{Status: status}, nil
}

func (m *mockOrderStore) Replace(_ context.Context, o *order.Order) (*order.Order, error) {
	return o, nil
}

// mockProductStore implements catalog.ProductStore for batch tests.
type mockProductStore struct {
	products []catalog.Product
	saved    []*catalog.Product
}

func (m *mockProductStore) FindByID(_ context.Context, _ uuid.UUID) (*catalog.Product, error) {
	return nil, catalog.ErrProductNotFound
}

func (m *mockProductStore) FindBySKU(_ context.Context, _ string) (*catalog.Product, error) {
	return nil, catalog.ErrProductNotFound
}

func (m *mockProductStore) FindBySKUs(_ context.Context, _ []string) ([]catalog.Product, error) {
	return m.products, nil
}

func (m *mockProductStore) FindAll(_ context.Context, _, _ int32) ([]catalog.Product, error) {
	return m.products, nil
}

func (m *mockProductStore) FindActive(_ context.Context, _, _ int32) ([]catalog.Product, error) {
	return m.products, nil
}

func (m *mockProductStore) Create(_ context.Context, p *catalog.Product) (*catalog.Product, error) {
	return p, nil
}

func (m *mockProductStore) Update(_ context.Context, p *catalog.Product) (*catalog.Product, error) {
	return p, nil
}

func (m *mockProductStore) UpsertByExternalID(_ context.Context, p *catalog.Product) (*catalog.Product, error) {
	return p, nil
}

func (m *mockProductStore) SaveAll(_ context.Context, products []*catalog.Product) error {
	m.saved = products
	return nil
}

func (m *mockProductStore) DeleteByID(_ context.Context, _ uuid.UUID, _ int32) error {
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func Test_Service_ApplyStockBatch_PersistsOnlyModified(t *testing.T) {
	// given
	store := &mockProductStore{products: []catalog.Product{
		{Name: "Jacket", SKU: "JACKET-1", Stock: 10},
		{Name: "Scarf", SKU: "SCARF-1", Stock: 20},
	}}
	svc := NewService(store, &mockOrderStore{}, testLogger())

	// when: one record changes a product, one is already in the target state
	report, err := svc.ApplyStockBatch(context.Background(), []StockUpdate{
		{SKU: "JACKET-1", Stock: int32p(5)},
		{SKU: "SCARF-1", Stock: int32p(20)},
	})

	// then
	require.NoError(t, err)
	assert.Equal(t, 2, report.Succeeded())
	require.Len(t, store.saved, 1, "only the modified product is persisted")
	assert.Equal(t, "Jacket", store.saved[0].Name)
}

func Test_Service_ApplyOrderBatch(t *testing.T) {
	pendingOrder := &order.Order{ID: uuid.New(), OrderNumber: "AJJ-1", Status: order.StatusPending, Version: 1}
	deliveredOrder := &order.Order{ID: uuid.New(), OrderNumber: "AJJ-2", Status: order.StatusDelivered, Version: 1}

	testCases := []struct {
		name            string
		updates         []OrderUpdate
		expectSucceeded int
		expectFailed    int
		expectReasons   []string
	}{
		{
			name:            "Valid transition",
			updates:         []OrderUpdate{{OrderNumber: "AJJ-1", Status: "confirmed"}},
			expectSucceeded: 1,
		},
		{
			name:            "Same status is idempotent success",
			updates:         []OrderUpdate{{OrderNumber: "AJJ-1", Status: "pending"}},
			expectSucceeded: 1,
		},
		{
			name:          "Unknown order number",
			updates:       []OrderUpdate{{OrderNumber: "NOPE", Status: "confirmed"}},
			expectFailed:  1,
			expectReasons: []string{"not found"},
		},
		{
			name:         "Illegal transition from terminal status",
			updates:      []OrderUpdate{{OrderNumber: "AJJ-2", Status: "pending"}},
			expectFailed: 1,
		},
		{
			name: "Failing record does not abort the batch",
			updates: []OrderUpdate{
				{OrderNumber: "NOPE", Status: "confirmed"},
				{OrderNumber: "AJJ-1", Status: "confirmed"},
			},
			expectSucceeded: 1,
			expectFailed:    1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			store := &mockOrderStore{byNumber: map[string]*order.Order{
				"AJJ-1": pendingOrder,
				"AJJ-2": deliveredOrder,
			}}
			svc := NewService(&mockProductStore{}, store, testLogger())

			// when
			report, err := svc.ApplyOrderBatch(context.Background(), tc.updates)

			// then
			require.NoError(t, err)
			require.Len(t, report.Outcomes, len(tc.updates), "one outcome per record")
			assert.Equal(t, tc.expectSucceeded, report.Succeeded())
			assert.Equal(t, tc.expectFailed, report.Failed())
			for i, reason := range tc.expectReasons {
				assert.Equal(t, reason, report.Outcomes[i].Reason)
			}
		})
	}
}
