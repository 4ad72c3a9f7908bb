package ecwid

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/baigojahanzaib/ajj-sales/internal/catalog"
)

// Fetcher is the part of the Ecwid client the importer needs.
type Fetcher interface {
	FetchCategories(ctx context.Context) ([]CategoryItem, error)
	FetchProducts(ctx context.Context) ([]ProductItem, error)
}

// ImportReport summarizes one import run.
type ImportReport struct {
	Categories int `json:"categories"`
	Products   int `json:"products"`
}

// Importer pulls the remote catalog and upserts it into local storage.
// Categories go first so products can reference them.
type Importer struct {
	fetcher    Fetcher
	products   catalog.ProductStore
	categories catalog.CategoryStore
	logger     *slog.Logger
}

// NewImporter creates a new catalog Importer.
func NewImporter(fetcher Fetcher, products catalog.ProductStore, categories catalog.CategoryStore, logger *slog.Logger) *Importer {
	return &Importer{
		fetcher:    fetcher,
		products:   products,
		categories: categories,
		logger:     logger.With("component", "ecwid_import"),
	}
}

// Run executes a full import and returns the counts of records written.
// The run stops at the first storage error so a partial import is visible
// in the logs rather than silently swallowed.
func (i *Importer) Run(ctx context.Context) (*ImportReport, error) {
	report := &ImportReport{}

	cats, err := i.fetcher.FetchCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	for _, c := range MapCategories(cats) {
		if _, err := i.categories.UpsertCategoryByExternalID(ctx, c); err != nil {
			return nil, fmt.Errorf("failed to upsert category %d: %w", c.ExternalID, err)
		}
		report.Categories++
	}

	items, err := i.fetcher.FetchProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	for _, p := range MapProducts(items) {
		if _, err := i.products.UpsertByExternalID(ctx, p); err != nil {
			return nil, fmt.Errorf("failed to upsert product %d: %w", p.ExternalID, err)
		}
		report.Products++
	}

	i.logger.InfoContext(ctx, "Catalog import finished",
		"categories", report.Categories, "products", report.Products)
	return report, nil
}
