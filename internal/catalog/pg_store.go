package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

const productColumns = `id, external_id, name, sku, description, base_price, stock, moq,
	ribbon, is_active, category_id, variations, version, created_at, updated_at`

// PgStore implements ProductStore and CategoryStore using PostgreSQL as the data store.
type PgStore struct {
	db *pgxpool.Pool
}

// NewPgStore creates a new instance of PgStore using a PostgreSQL connection pool.
func NewPgStore(dbp *pgxpool.Pool) *PgStore {
	return &PgStore{db: dbp}
}

func (p *PgStore) FindByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	row := p.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	return product, nil
}

func (p *PgStore) FindBySKU(ctx context.Context, sku string) (*Product, error) {
	row := p.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE sku = $1`, sku)
	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by SKU: %w", err)
	}
	return product, nil
}

func (p *PgStore) FindBySKUs(ctx context.Context, skus []string) ([]Product, error) {
	rows, err := p.db.Query(ctx, `
		SELECT `+productColumns+` FROM products
		WHERE sku = ANY($1)
		   OR EXISTS (
			SELECT 1
			FROM jsonb_array_elements(variations) AS v,
			     jsonb_array_elements(v->'options') AS o
			WHERE o->>'sku' = ANY($1)
		   )`, skus)
	if err != nil {
		return nil, fmt.Errorf("failed to find products by SKUs: %w", err)
	}
	defer rows.Close()
	return scanProducts(rows)
}

func (p *PgStore) FindAll(ctx context.Context, offset, limit int32) ([]Product, error) {
	rows, err := p.db.Query(ctx,
		`SELECT `+productColumns+` FROM products ORDER BY name OFFSET $1 LIMIT $2`, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to find all products: %w", err)
	}
	defer rows.Close()
	return scanProducts(rows)
}

func (p *PgStore) FindActive(ctx context.Context, offset, limit int32) ([]Product, error) {
	rows, err := p.db.Query(ctx,
		`SELECT `+productColumns+` FROM products WHERE is_active ORDER BY name OFFSET $1 LIMIT $2`, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to find active products: %w", err)
	}
	defer rows.Close()
	return scanProducts(rows)
}

func (p *PgStore) Create(ctx context.Context, product *Product) (*Product, error) {
	variations, err := json.Marshal(product.Variations)
	if err != nil {
		return nil, fmt.Errorf("failed to encode variations: %w", err)
	}
	row := p.db.QueryRow(ctx, `
		INSERT INTO products (external_id, name, sku, description, base_price, stock, moq, ribbon, is_active, category_id, variations)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+productColumns,
		product.ExternalID, product.Name, product.SKU, product.Description, product.BasePrice,
		product.Stock, product.MOQ, product.Ribbon, product.IsActive, product.CategoryID, variations)
	created, err := scanProduct(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateSKU
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return created, nil
}

func (p *PgStore) Update(ctx context.Context, product *Product) (*Product, error) {
	variations, err := json.Marshal(product.Variations)
	if err != nil {
		return nil, fmt.Errorf("failed to encode variations: %w", err)
	}
	row := p.db.QueryRow(ctx, `
		UPDATE products
		SET name = $3, sku = $4, description = $5, base_price = $6, stock = $7, moq = $8,
		    ribbon = $9, is_active = $10, category_id = $11, variations = $12,
		    version = version + 1, updated_at = now()
		WHERE id = $1 AND version = $2
		RETURNING `+productColumns,
		product.ID, product.Version, product.Name, product.SKU, product.Description, product.BasePrice,
		product.Stock, product.MOQ, product.Ribbon, product.IsActive, product.CategoryID, variations)
	updated, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Check if the product exists, or it's an optimistic lock error.
			if _, findErr := p.FindByID(ctx, product.ID); findErr != nil {
				return nil, findErr
			}
			return nil, ErrOptimisticLock
		}
		if isUniqueViolation(err) {
			return nil, ErrDuplicateSKU
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return updated, nil
}

func (p *PgStore) UpsertByExternalID(ctx context.Context, product *Product) (*Product, error) {
	variations, err := json.Marshal(product.Variations)
	if err != nil {
		return nil, fmt.Errorf("failed to encode variations: %w", err)
	}
	row := p.db.QueryRow(ctx, `
		INSERT INTO products (id, external_id, name, sku, description, base_price, stock, moq, ribbon, is_active, category_id, variations)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (external_id) WHERE external_id <> 0 DO UPDATE
		SET name = EXCLUDED.name, sku = EXCLUDED.sku, description = EXCLUDED.description,
		    base_price = EXCLUDED.base_price, stock = EXCLUDED.stock, moq = EXCLUDED.moq,
		    ribbon = EXCLUDED.ribbon, is_active = EXCLUDED.is_active,
		    category_id = EXCLUDED.category_id, variations = EXCLUDED.variations,
		    version = products.version + 1, updated_at = now()
		RETURNING `+productColumns,
		product.ID, product.ExternalID, product.Name, product.SKU, product.Description, product.BasePrice,
		product.Stock, product.MOQ, product.Ribbon, product.IsActive, product.CategoryID, variations)
	upserted, err := scanProduct(row)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert product: %w", err)
	}
	return upserted, nil
}

func (p *PgStore) SaveAll(ctx context.Context, products []*Product) error {
	// Use transaction to ensure the batch is applied atomically
	return p.withTransaction(ctx, func(tx pgx.Tx) error {
		for _, product := range products {
			variations, err := json.Marshal(product.Variations)
			if err != nil {
				return fmt.Errorf("failed to encode variations: %w", err)
			}
			tag, err := tx.Exec(ctx, `
				UPDATE products
				SET stock = $2, moq = $3, variations = $4, version = version + 1, updated_at = now()
				WHERE id = $1`,
				product.ID, product.Stock, product.MOQ, variations)
			if err != nil {
				return fmt.Errorf("failed to save product %s: %w", product.ID, err)
			}
			if tag.RowsAffected() == 0 {
				return ErrProductNotFound
			}
		}
		return nil
	})
}

func (p *PgStore) DeleteByID(ctx context.Context, id uuid.UUID, version int32) error {
	tag, err := p.db.Exec(ctx, `DELETE FROM products WHERE id = $1 AND version = $2`, id, version)
	if err != nil {
		return fmt.Errorf("failed to delete product by ID: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProductNotFound
	}
	return nil
}

// Category operations

func (p *PgStore) FindAllCategories(ctx context.Context) ([]Category, error) {
	rows, err := p.db.Query(ctx,
		`SELECT id, external_id, name, parent_id, enabled, created_at, updated_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to find categories: %w", err)
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.ExternalID, &c.Name, &c.ParentID, &c.Enabled, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (p *PgStore) FindCategoryByID(ctx context.Context, id uuid.UUID) (*Category, error) {
	var c Category
	err := p.db.QueryRow(ctx,
		`SELECT id, external_id, name, parent_id, enabled, created_at, updated_at FROM categories WHERE id = $1`, id).
		Scan(&c.ID, &c.ExternalID, &c.Name, &c.ParentID, &c.Enabled, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to find category by ID: %w", err)
	}
	return &c, nil
}

func (p *PgStore) CreateCategory(ctx context.Context, category *Category) (*Category, error) {
	var c Category
	err := p.db.QueryRow(ctx, `
		INSERT INTO categories (external_id, name, parent_id, enabled)
		VALUES ($1, $2, $3, $4)
		RETURNING id, external_id, name, parent_id, enabled, created_at, updated_at`,
		category.ExternalID, category.Name, category.ParentID, category.Enabled).
		Scan(&c.ID, &c.ExternalID, &c.Name, &c.ParentID, &c.Enabled, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return &c, nil
}

func (p *PgStore) UpsertCategoryByExternalID(ctx context.Context, category *Category) (*Category, error) {
	var c Category
	err := p.db.QueryRow(ctx, `
		INSERT INTO categories (id, external_id, name, parent_id, enabled)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (external_id) WHERE external_id <> 0 DO UPDATE
		SET name = EXCLUDED.name, parent_id = EXCLUDED.parent_id, enabled = EXCLUDED.enabled, updated_at = now()
		RETURNING id, external_id, name, parent_id, enabled, created_at, updated_at`,
		category.ID, category.ExternalID, category.Name, category.ParentID, category.Enabled).
		Scan(&c.ID, &c.ExternalID, &c.Name, &c.ParentID, &c.Enabled, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert category: %w", err)
	}
	return &c, nil
}

func (p *PgStore) DeleteCategoryByID(ctx context.Context, id uuid.UUID) error {
	tag, err := p.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category by ID: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (p *PgStore) withTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := p.db.Begin(ctx)
	if err != nil {
		return ErrTransactionBegin
	}

	err = fn(tx)
	if err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			return ErrTransactionRollback
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return ErrTransactionCommit
	}

	return nil
}

func scanProduct(row pgx.Row) (*Product, error) {
	var prod Product
	var variations []byte
	err := row.Scan(&prod.ID, &prod.ExternalID, &prod.Name, &prod.SKU, &prod.Description,
		&prod.BasePrice, &prod.Stock, &prod.MOQ, &prod.Ribbon, &prod.IsActive,
		&prod.CategoryID, &variations, &prod.Version, &prod.CreatedAt, &prod.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(variations) > 0 {
		if err := json.Unmarshal(variations, &prod.Variations); err != nil {
			return nil, fmt.Errorf("failed to decode variations: %w", err)
		}
	}
	return &prod, nil
}

func scanProducts(rows pgx.Rows) ([]Product, error) {
	var products []Product
	for rows.Next() {
		prod, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *prod)
	}
	return products, rows.Err()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
