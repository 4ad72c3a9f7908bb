package customer

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const customerColumns = `id, name, phone, email, address, sales_rep_id, version, created_at, updated_at`

// PgStore implements Store using PostgreSQL as the data store.
type PgStore struct {
	db *pgxpool.Pool
}

// NewPgStore creates a new instance of PgStore using a PostgreSQL connection pool.
func NewPgStore(dbp *pgxpool.Pool) *PgStore {
	return &PgStore{db: dbp}
}

func (p *PgStore) FindByID(ctx context.Context, id uuid.UUID) (*Customer, error) {
	row := p.db.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id)
	c, err := scanCustomer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to find customer by ID: %w", err)
	}
	return c, nil
}

func (p *PgStore) FindAll(ctx context.Context, offset, limit int32) ([]Customer, error) {
	rows, err := p.db.Query(ctx,
		`SELECT `+customerColumns+` FROM customers ORDER BY name OFFSET $1 LIMIT $2`, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to find all customers: %w", err)
	}
	defer rows.Close()

	var customers []Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, *c)
	}
	return customers, rows.Err()
}

func (p *PgStore) Create(ctx context.Context, customer *Customer) (*Customer, error) {
	row := p.db.QueryRow(ctx, `
		INSERT INTO customers (name, phone, email, address, sales_rep_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+customerColumns,
		customer.Name, customer.Phone, customer.Email, customer.Address, customer.SalesRepID)
	created, err := scanCustomer(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	return created, nil
}

func (p *PgStore) Update(ctx context.Context, customer *Customer) (*Customer, error) {
	row := p.db.QueryRow(ctx, `
		UPDATE customers
		SET name = $3, phone = $4, email = $5, address = $6, sales_rep_id = $7,
		    version = version + 1, updated_at = now()
		WHERE id = $1 AND version = $2
		RETURNING `+customerColumns,
		customer.ID, customer.Version, customer.Name, customer.Phone, customer.Email,
		customer.Address, customer.SalesRepID)
	updated, err := scanCustomer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Check if the customer exists, or it's an optimistic lock error.
			if _, findErr := p.FindByID(ctx, customer.ID); findErr != nil {
				return nil, findErr
			}
			return nil, ErrOptimisticLock
		}
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}
	return updated, nil
}

func (p *PgStore) DeleteByID(ctx context.Context, id uuid.UUID, version int32) error {
	tag, err := p.db.Exec(ctx, `DELETE FROM customers WHERE id = $1 AND version = $2`, id, version)
	if err != nil {
		return fmt.Errorf("failed to delete customer by ID: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCustomerNotFound
	}
	return nil
}

func scanCustomer(row pgx.Row) (*Customer, error) {
	var c Customer
	err := row.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.Address, &c.SalesRepID,
		&c.Version, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
