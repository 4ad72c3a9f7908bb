package catalog

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const skipIntegrationTests = "SALES_SKIP_INTEGRATION_TESTS"

// CatalogStoreSuite is a test suite for the PgStore implementation.
type CatalogStoreSuite struct {
	suite.Suite
	pgContainer *postgres.PostgresContainer
	dbPool      *pgxpool.Pool
	store       *PgStore
	logger      *slog.Logger
	ctx         context.Context
}

// SetupSuite starts a PostgreSQL container and applies the migrations.
func (s *CatalogStoreSuite) SetupSuite() {
	s.ctx = context.Background()
	var err error
	s.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

	dbName := "sales_db"
	dbUser := "user"
	dbPassword := "password"

	s.pgContainer, err = postgres.Run(s.ctx,
		"postgres:17.5-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Minute),
		),
		testcontainers.WithWaitStrategy(
			wait.ForListeningPort("5432/tcp"),
		),
	)
	require.NoError(s.T(), err, "Failed to run PostgreSQL container")

	connStr, err := s.pgContainer.ConnectionString(s.ctx, "sslmode=disable")
	require.NoError(s.T(), err, "Failed to get connection string from container")

	s.dbPool, err = pgxpool.New(s.ctx, connStr)
	require.NoError(s.T(), err, "Failed to create pgxpool")

	for i := range 10 {
		s.logger.Info("Pinging PostgreSQL database", "attempt", i+1)
		err = s.dbPool.Ping(s.ctx)
		if err == nil {
			break
		}
		time.Sleep(time.Second * 2)
	}
	require.NoError(s.T(), err, "Failed to connect to PostgreSQL after retries")

	wd, _ := os.Getwd()
	sourceURL := "file://" + filepath.Join(wd, "../../migrations")
	m, err := migrate.New(sourceURL, connStr)
	require.NoError(s.T(), err, "Failed to create migrate instance")
	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		_, _ = m.Close()
		require.NoError(s.T(), err, "Failed to apply migrations")
	}
	s.logger.Info("Migrations applied for E2E tests")

	s.store = NewPgStore(s.dbPool)
	s.logger.Info("Initialization complete for CatalogStoreSuite")
}

// TearDownSuite cleans up resources after all tests in the suite have run.
func (s *CatalogStoreSuite) TearDownSuite() {
	s.logger.Info("Tearing down suite...")
	if s.dbPool != nil {
		s.dbPool.Close()
	}
	if s.pgContainer != nil {
		if err := s.pgContainer.Terminate(s.ctx); err != nil {
			s.logger.Warn("failed to terminate PostgreSQL container", "error", err)
		}
	}
}

// SetupTest prepares the database for each test by truncating the catalog tables.
func (s *CatalogStoreSuite) SetupTest() {
	_, err := s.dbPool.Exec(s.ctx, "TRUNCATE TABLE products, categories RESTART IDENTITY CASCADE")
	require.NoError(s.T(), err, "Failed to truncate catalog tables")
}

// TestCatalogStoreIntegration runs the catalog store integration tests.
func TestCatalogStoreIntegration(t *testing.T) {
	if os.Getenv(skipIntegrationTests) == "1" {
		t.Skip("Skipping integration tests based on " + skipIntegrationTests + " env var")
	}
	suite.Run(t, new(CatalogStoreSuite))
}

func (s *CatalogStoreSuite) sampleProduct() *Product {
	return &Product{
		ExternalID: 42,
		Name:       "Wool Jacket",
		SKU:        "JACKET-1",
		BasePrice:  decimal.RequireFromString("149.99"),
		Stock:      10,
		MOQ:        2,
		IsActive:   true,
		Variations: []Variation{{
			ID:   "size",
			Name: "Size",
			Options: []VariationOption{
				{ID: "m", Name: "M"},
				{ID: "xl", Name: "XL", PriceModifier: decimal.RequireFromString("10"), SKU: "JACKET-1-XL", Stock: 4},
			},
		}},
	}
}

func (s *CatalogStoreSuite) createSampleProduct() *Product {
	s.T().Helper()
	created, err := s.store.Create(s.ctx, s.sampleProduct())
	require.NoError(s.T(), err, "helper failed to create product")
	return created
}

func (s *CatalogStoreSuite) TestCreateAndFindByID() {
	s.SetupTest()
	// given
	created := s.createSampleProduct()
	require.NotEqual(s.T(), uuid.Nil, created.ID)
	require.Equal(s.T(), int32(1), created.Version)

	// when
	found, err := s.store.FindByID(s.ctx, created.ID)

	// then
	require.NoError(s.T(), err)
	require.Equal(s.T(), "JACKET-1", found.SKU)
	require.True(s.T(), decimal.RequireFromString("149.99").Equal(found.BasePrice))
	require.Len(s.T(), found.Variations, 1, "variations survive the JSONB round trip")
	require.Equal(s.T(), "JACKET-1-XL", found.Variations[0].Options[1].SKU)
}

func (s *CatalogStoreSuite) TestFindByID_NotFound() {
	s.SetupTest()
	// when
	_, err := s.store.FindByID(s.ctx, uuid.New())

	// then
	require.ErrorIs(s.T(), err, ErrProductNotFound)
}

func (s *CatalogStoreSuite) TestCreate_DuplicateSKU() {
	s.SetupTest()
	// given
	s.createSampleProduct()
	duplicate := s.sampleProduct()
	duplicate.ExternalID = 0

	// when
	_, err := s.store.Create(s.ctx, duplicate)

	// then
	require.ErrorIs(s.T(), err, ErrDuplicateSKU)
}

func (s *CatalogStoreSuite) TestFindBySKUs_MatchesOptionSKU() {
	s.SetupTest()
	// given
	created := s.createSampleProduct()

	// when: looked up by the SKU of a variation option, not the product SKU
	found, err := s.store.FindBySKUs(s.ctx, []string{"JACKET-1-XL"})

	// then
	require.NoError(s.T(), err)
	require.Len(s.T(), found, 1)
	require.Equal(s.T(), created.ID, found[0].ID)
}

func (s *CatalogStoreSuite) TestFindActive_ExcludesInactive() {
	s.SetupTest()
	// given
	active := s.createSampleProduct()
	inactive := s.sampleProduct()
	inactive.SKU = "SCARF-1"
	inactive.ExternalID = 0
	inactive.IsActive = false
	_, err := s.store.Create(s.ctx, inactive)
	require.NoError(s.T(), err)

	// when
	found, err := s.store.FindActive(s.ctx, 0, 10)

	// then
	require.NoError(s.T(), err)
	require.Len(s.T(), found, 1)
	require.Equal(s.T(), active.ID, found[0].ID)

	all, err := s.store.FindAll(s.ctx, 0, 10)
	require.NoError(s.T(), err)
	require.Len(s.T(), all, 2)
}

func (s *CatalogStoreSuite) TestUpdate() {
	s.SetupTest()
	// given
	created := s.createSampleProduct()
	created.Stock = 7
	created.Name = "Wool Jacket v2"

	// when
	updated, err := s.store.Update(s.ctx, created)

	// then
	require.NoError(s.T(), err)
	require.Equal(s.T(), int32(2), updated.Version)
	require.Equal(s.T(), "Wool Jacket v2", updated.Name)
	require.Equal(s.T(), int32(7), updated.Stock)
}

func (s *CatalogStoreSuite) TestUpdate_OptimisticLock() {
	s.SetupTest()
	// given
	created := s.createSampleProduct()
	stale := *created
	_, err := s.store.Update(s.ctx, created)
	require.NoError(s.T(), err)

	// when: a second writer updates with the stale version
	_, err = s.store.Update(s.ctx, &stale)

	// then
	require.ErrorIs(s.T(), err, ErrOptimisticLock)
}

func (s *CatalogStoreSuite) TestUpsertByExternalID() {
	s.SetupTest()
	// given
	first := s.sampleProduct()
	first.ID = uuid.New()
	created, err := s.store.UpsertByExternalID(s.ctx, first)
	require.NoError(s.T(), err)

	// when: a re-import of the same external record with new data
	second := s.sampleProduct()
	second.ID = uuid.New()
	second.Name = "Wool Jacket 2026"
	second.Stock = 3
	upserted, err := s.store.UpsertByExternalID(s.ctx, second)

	// then: the existing row is updated in place
	require.NoError(s.T(), err)
	require.Equal(s.T(), created.ID, upserted.ID)
	require.Equal(s.T(), "Wool Jacket 2026", upserted.Name)
	require.Equal(s.T(), int32(3), upserted.Stock)
	require.Equal(s.T(), int32(2), upserted.Version)
}

func (s *CatalogStoreSuite) TestSaveAll() {
	s.SetupTest()
	// given
	created := s.createSampleProduct()
	created.Stock = 1
	created.Variations[0].Options[1].Stock = 2

	// when
	err := s.store.SaveAll(s.ctx, []*Product{created})

	// then
	require.NoError(s.T(), err)
	found, err := s.store.FindByID(s.ctx, created.ID)
	require.NoError(s.T(), err)
	require.Equal(s.T(), int32(1), found.Stock)
	require.Equal(s.T(), int32(2), found.Variations[0].Options[1].Stock)
}

func (s *CatalogStoreSuite) TestSaveAll_RollsBackOnMissingProduct() {
	s.SetupTest()
	// given
	created := s.createSampleProduct()
	created.Stock = 1
	ghost := s.sampleProduct()
	ghost.ID = uuid.New()

	// when: one product in the batch does not exist
	err := s.store.SaveAll(s.ctx, []*Product{created, ghost})

	// then: the whole batch is rolled back
	require.ErrorIs(s.T(), err, ErrProductNotFound)
	found, err := s.store.FindByID(s.ctx, created.ID)
	require.NoError(s.T(), err)
	require.Equal(s.T(), int32(10), found.Stock)
}

func (s *CatalogStoreSuite) TestDeleteByID() {
	s.SetupTest()
	// given
	created := s.createSampleProduct()

	// when
	err := s.store.DeleteByID(s.ctx, created.ID, created.Version)

	// then
	require.NoError(s.T(), err)
	_, err = s.store.FindByID(s.ctx, created.ID)
	require.ErrorIs(s.T(), err, ErrProductNotFound)
}

func (s *CatalogStoreSuite) TestDeleteByID_VersionMismatch() {
	s.SetupTest()
	// given
	created := s.createSampleProduct()

	// when
	err := s.store.DeleteByID(s.ctx, created.ID, created.Version+1)

	// then
	require.ErrorIs(s.T(), err, ErrProductNotFound)
}

func (s *CatalogStoreSuite) TestCategories() {
	s.SetupTest()
	// given
	root, err := s.store.CreateCategory(s.ctx, &Category{ExternalID: 7, Name: "Winter", Enabled: true})
	require.NoError(s.T(), err)
	child, err := s.store.CreateCategory(s.ctx, &Category{Name: "Jackets", ParentID: &root.ID, Enabled: true})
	require.NoError(s.T(), err)

	// when
	all, err := s.store.FindAllCategories(s.ctx)

	// then
	require.NoError(s.T(), err)
	require.Len(s.T(), all, 2)

	found, err := s.store.FindCategoryByID(s.ctx, child.ID)
	require.NoError(s.T(), err)
	require.Equal(s.T(), root.ID, *found.ParentID)

	// upsert by external id updates in place
	upserted, err := s.store.UpsertCategoryByExternalID(s.ctx, &Category{ID: uuid.New(), ExternalID: 7, Name: "Winter 2026", Enabled: false})
	require.NoError(s.T(), err)
	require.Equal(s.T(), root.ID, upserted.ID)
	require.Equal(s.T(), "Winter 2026", upserted.Name)

	// delete
	require.NoError(s.T(), s.store.DeleteCategoryByID(s.ctx, child.ID))
	require.ErrorIs(s.T(), s.store.DeleteCategoryByID(s.ctx, child.ID), ErrCategoryNotFound)
}
