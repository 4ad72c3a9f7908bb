// Package app contains the application setup for the sales service.
package app

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/baigojahanzaib/ajj-sales/internal/auth"
	"github.com/baigojahanzaib/ajj-sales/internal/cart"
	"github.com/baigojahanzaib/ajj-sales/internal/catalog"
	"github.com/baigojahanzaib/ajj-sales/internal/config"
	"github.com/baigojahanzaib/ajj-sales/internal/customer"
	"github.com/baigojahanzaib/ajj-sales/internal/ecwid"
	"github.com/baigojahanzaib/ajj-sales/internal/order"
	"github.com/baigojahanzaib/ajj-sales/internal/reconcile"
	"github.com/baigojahanzaib/ajj-sales/internal/syncqueue"
	"github.com/baigojahanzaib/ajj-sales/internal/transport/rest"
	"github.com/baigojahanzaib/ajj-sales/pkg/messaging"
	"github.com/baigojahanzaib/ajj-sales/pkg/server"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Dependencies struct {
	AuthService     *auth.Service
	TokenIssuer     *auth.TokenIssuer
	CatalogService  *catalog.Service
	CartService     *cart.Service
	CustomerService *customer.Service
	OrderService    *order.Service
	Importer        *ecwid.Importer
	Reconciler      *reconcile.Service
	Queue           *syncqueue.Queue
	Logger          *slog.Logger
}

// storeRemote adapts the order store to the pending queue's remote interface.
type storeRemote struct {
	store order.Store
}

func (s storeRemote) CreateOrder(ctx context.Context, o *order.Order) error {
	_, err := s.store.Create(ctx, o)
	return err
}

func SetupDependencies(dbPool *pgxpool.Pool, publisher messaging.Publisher, cfg *config.Config, logger *slog.Logger) *Dependencies {
	catalogStore := catalog.NewPgStore(dbPool)
	orderStore := order.NewPgStore(dbPool)
	customerStore := customer.NewPgStore(dbPool)

	tokens := auth.NewTokenIssuer(cfg.Token)
	authService := auth.NewService(auth.NewPgStore(dbPool), tokens, logger)
	catalogService := catalog.NewService(catalogStore, catalogStore, logger)
	customerService := customer.NewService(customerStore)

	carts := cart.NewManager()
	cartService := cart.NewService(carts, catalogStore, logger)

	queue := syncqueue.New(storeRemote{store: orderStore}, publisher, logger)
	orderService := order.NewService(orderStore, customerService, carts, queue, publisher, logger)

	ecwidClient := ecwid.NewClient(cfg.Ecwid, logger)
	importer := ecwid.NewImporter(ecwidClient, catalogStore, catalogStore, logger)
	reconciler := reconcile.NewService(catalogStore, orderStore, logger)

	return &Dependencies{
		AuthService:     authService,
		TokenIssuer:     tokens,
		CatalogService:  catalogService,
		CartService:     cartService,
		CustomerService: customerService,
		OrderService:    orderService,
		Importer:        importer,
		Reconciler:      reconciler,
		Queue:           queue,
		Logger:          logger,
	}
}

// SetupHttpHandler initializes the HTTP routes for the application.
// Used by E2E tests to set up the HTTP server with the necessary routes and middleware.
func SetupHttpHandler(deps *Dependencies) http.Handler {
	mux := server.NewChiRouter(deps.Logger)
	wireRoutes(mux, deps)
	return mux
}

// wireRoutes sets up the HTTP routes for the application.
func wireRoutes(mux *chi.Mux, deps *Dependencies) {
	handler := rest.NewHandler(
		deps.AuthService,
		deps.TokenIssuer,
		deps.CatalogService,
		deps.CartService,
		deps.CustomerService,
		deps.OrderService,
		deps.Importer,
		deps.Reconciler,
		deps.Queue,
		deps.Logger,
	)
	handler.RegisterRoutes(mux)
}

// SetupHttpServer creates and configures an HTTP server for the application.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {
	mux := SetupHttpHandler(deps)

	httpCfg := server.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.ReadTimeout,
		WriteTimeout:   cfg.HTTPServer.WriteTimeout,
		IdleTimeout:    cfg.HTTPServer.IdleTimeout,
		ReadHeader:     cfg.HTTPServer.ReadHeaderTimeout,
	}

	return server.NewHTTPServer(httpCfg, mux)
}
