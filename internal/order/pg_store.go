package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const orderColumns = `id, order_number, sales_rep_id, customer_id, customer, items,
	subtotal, tax, discount, total, status, previous_version, edit_log,
	version, created_at, updated_at`

// PgStore implements Store using PostgreSQL as the data store. Nested item,
// snapshot and audit data live in JSONB columns.
type PgStore struct {
	db *pgxpool.Pool
}

// NewPgStore creates a new instance of PgStore using a PostgreSQL connection pool.
func NewPgStore(dbp *pgxpool.Pool) *PgStore {
	return &PgStore{db: dbp}
}

func (p *PgStore) FindByID(ctx context.Context, id uuid.UUID) (*Order, error) {
	row := p.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to find order by ID: %w", err)
	}
	return o, nil
}

func (p *PgStore) FindByNumber(ctx context.Context, number string) (*Order, error) {
	row := p.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE order_number = $1`, number)
	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to find order by number: %w", err)
	}
	return o, nil
}

func (p *PgStore) FindBySalesRep(ctx context.Context, salesRepID uuid.UUID, offset, limit int32) ([]Order, error) {
	rows, err := p.db.Query(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE sales_rep_id = $1 ORDER BY created_at DESC OFFSET $2 LIMIT $3`,
		salesRepID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to find sales rep orders: %w", err)
	}
	defer rows.Close()
	return scanOrders(rows)
}

func (p *PgStore) FindAll(ctx context.Context, offset, limit int32) ([]Order, error) {
	rows, err := p.db.Query(ctx,
		`SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC OFFSET $1 LIMIT $2`, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to find all orders: %w", err)
	}
	defer rows.Close()
	return scanOrders(rows)
}

func (p *PgStore) Create(ctx context.Context, o *Order) (*Order, error) {
	customer, items, prev, editLog, err := encodeDocuments(o)
	if err != nil {
		return nil, err
	}
	row := p.db.QueryRow(ctx, `
		INSERT INTO orders (id, order_number, sales_rep_id, customer_id, customer, items,
		                    subtotal, tax, discount, total, status, previous_version, edit_log)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING `+orderColumns,
		o.ID, o.OrderNumber, o.SalesRepID, o.CustomerID, customer, items,
		o.Subtotal, o.Tax, o.Discount, o.Total, o.Status, prev, editLog)
	created, err := scanOrder(row)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCreateOrder, err)
	}
	return created, nil
}

func (p *PgStore) UpdateStatus(ctx context.Context, id uuid.UUID, status Status, version int32) (*Order, error) {
	row := p.db.QueryRow(ctx, `
		UPDATE orders
		SET status = $3, version = version + 1, updated_at = now()
		WHERE id = $1 AND version = $2
		RETURNING `+orderColumns,
		id, version, status)
	updated, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Check if the order exists, or it's an optimistic lock error.
			if _, findErr := p.FindByID(ctx, id); findErr != nil {
				return nil, findErr
			}
			return nil, ErrOptimisticLock
		}
		return nil, fmt.Errorf("%w: %w", ErrUpdateOrder, err)
	}
	return updated, nil
}

func (p *PgStore) Replace(ctx context.Context, o *Order) (*Order, error) {
	customer, items, prev, editLog, err := encodeDocuments(o)
	if err != nil {
		return nil, err
	}
	row := p.db.QueryRow(ctx, `
		UPDATE orders
		SET customer = $3, items = $4, subtotal = $5, tax = $6, discount = $7, total = $8,
		    previous_version = $9, edit_log = $10, version = version + 1, updated_at = now()
		WHERE id = $1 AND version = $2
		RETURNING `+orderColumns,
		o.ID, o.Version, customer, items, o.Subtotal, o.Tax, o.Discount, o.Total, prev, editLog)
	updated, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			if _, findErr := p.FindByID(ctx, o.ID); findErr != nil {
				return nil, findErr
			}
			return nil, ErrOptimisticLock
		}
		return nil, fmt.Errorf("%w: %w", ErrUpdateOrder, err)
	}
	return updated, nil
}

func encodeDocuments(o *Order) (customer, items, prev, editLog []byte, err error) {
	if customer, err = json.Marshal(o.Customer); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to encode customer snapshot: %w", err)
	}
	if items, err = json.Marshal(o.Items); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to encode order items: %w", err)
	}
	if o.PreviousVersion != nil {
		if prev, err = json.Marshal(o.PreviousVersion); err != nil {
			return nil, nil, nil, nil, fmt.Errorf("failed to encode previous version: %w", err)
		}
	}
	if len(o.EditLog) > 0 {
		if editLog, err = json.Marshal(o.EditLog); err != nil {
			return nil, nil, nil, nil, fmt.Errorf("failed to encode edit log: %w", err)
		}
	}
	return customer, items, prev, editLog, nil
}

func scanOrder(row pgx.Row) (*Order, error) {
	var o Order
	var customer, items, prev, editLog []byte
	err := row.Scan(&o.ID, &o.OrderNumber, &o.SalesRepID, &o.CustomerID, &customer, &items,
		&o.Subtotal, &o.Tax, &o.Discount, &o.Total, &o.Status, &prev, &editLog,
		&o.Version, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(customer, &o.Customer); err != nil {
		return nil, fmt.Errorf("failed to decode customer snapshot: %w", err)
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("failed to decode order items: %w", err)
	}
	if len(prev) > 0 {
		if err := json.Unmarshal(prev, &o.PreviousVersion); err != nil {
			return nil, fmt.Errorf("failed to decode previous version: %w", err)
		}
	}
	if len(editLog) > 0 {
		if err := json.Unmarshal(editLog, &o.EditLog); err != nil {
			return nil, fmt.Errorf("failed to decode edit log: %w", err)
		}
	}
	return &o, nil
}

func scanOrders(rows pgx.Rows) ([]Order, error) {
	var orders []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}
