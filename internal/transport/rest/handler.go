// Package rest provides the HTTP API: authentication, catalog browsing,
// cart mutations, the order lifecycle and the admin panel.
package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/baigojahanzaib/ajj-sales/internal/auth"
	"github.com/baigojahanzaib/ajj-sales/internal/cart"
	"github.com/baigojahanzaib/ajj-sales/internal/catalog"
	"github.com/baigojahanzaib/ajj-sales/internal/customer"
	"github.com/baigojahanzaib/ajj-sales/internal/ecwid"
	"github.com/baigojahanzaib/ajj-sales/internal/order"
	"github.com/baigojahanzaib/ajj-sales/internal/reconcile"
	"github.com/baigojahanzaib/ajj-sales/internal/syncqueue"
	"github.com/baigojahanzaib/ajj-sales/pkg/web"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type Handler struct {
	auth       *auth.Service
	tokens     *auth.TokenIssuer
	catalog    *catalog.Service
	carts      *cart.Service
	customers  *customer.Service
	orders     *order.Service
	importer   *ecwid.Importer
	reconciler *reconcile.Service
	queue      *syncqueue.Queue
	validate   *validator.Validate
	logger     *slog.Logger
}

// NewHandler creates a new Handler with the provided services.
func NewHandler(
	authSvc *auth.Service,
	tokens *auth.TokenIssuer,
	catalogSvc *catalog.Service,
	carts *cart.Service,
	customers *customer.Service,
	orders *order.Service,
	importer *ecwid.Importer,
	reconciler *reconcile.Service,
	queue *syncqueue.Queue,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		auth:       authSvc,
		tokens:     tokens,
		catalog:    catalogSvc,
		carts:      carts,
		customers:  customers,
		orders:     orders,
		importer:   importer,
		reconciler: reconciler,
		queue:      queue,
		validate:   validator.New(),
		logger:     logger.With("component", "rest"),
	}
}

// RegisterRoutes registers the HTTP routes.
func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Post("/api/v1/auth/login", h.Login)

	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(h.tokens, h.logger))

		r.Route("/api/v1/products", func(r chi.Router) {
			r.Get("/", h.FindProducts)
			r.Get("/{id}", h.FindProductByID)
		})
		r.Get("/api/v1/categories", h.FindCategories)

		r.Route("/api/v1/cart", func(r chi.Router) {
			r.Get("/", h.GetCart)
			r.Delete("/", h.ClearCart)
			r.Post("/items", h.AddCartItem)
			r.Put("/items/{id}", h.UpdateCartItem)
			r.Delete("/items/{id}", h.RemoveCartItem)
		})

		r.Route("/api/v1/customers", func(r chi.Router) {
			r.Get("/", h.FindCustomers)
			r.Post("/", h.CreateCustomer)
			r.Get("/{id}", h.FindCustomerByID)
			r.Put("/{id}", h.UpdateCustomer)
			r.Delete("/{id}", h.DeleteCustomer)
		})

		r.Route("/api/v1/orders", func(r chi.Router) {
			r.Get("/", h.FindMyOrders)
			r.Post("/", h.CreateOrder)
			r.Get("/{id}", h.FindOrderByID)
			r.Get("/{id}/export", h.ExportOrder)
			r.Put("/{id}", h.EditOrder)
			r.Put("/{id}/status", h.UpdateOrderStatus)
		})

		r.Route("/api/v1/admin", func(r chi.Router) {
			r.Use(auth.RequireAdmin(h.logger))

			r.Get("/users", h.FindUsers)
			r.Post("/users", h.CreateUser)

			r.Post("/products", h.CreateProduct)
			r.Put("/products/{id}", h.UpdateProduct)
			r.Delete("/products/{id}", h.DeleteProduct)
			r.Post("/categories", h.CreateCategory)
			r.Delete("/categories/{id}", h.DeleteCategory)

			r.Get("/orders", h.FindAllOrders)

			r.Post("/import", h.RunImport)
			r.Post("/reconcile/stock", h.ReconcileStock)
			r.Post("/reconcile/orders", h.ReconcileOrders)

			r.Get("/sync", h.SyncStatus)
			r.Post("/sync", h.TriggerSync)
		})
	})

	r.Get("/healthz", h.HealthCheck)
}

// HealthCheck is a simple health check endpoint.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// loggerWithReqID creates a logger with the request ID from the context.
func (h *Handler) loggerWithReqID(r *http.Request) *slog.Logger {
	reqID, _ := web.GetRequestID(r.Context())
	return h.logger.With("request_id", reqID)
}

// decodeValid decodes the request body into dto and runs struct validation.
// Validation failures produce a field-to-rule map in the response.
func decodeValid[T any](h *Handler, w http.ResponseWriter, r *http.Request, logger *slog.Logger, dto *T) bool {
	if err := json.NewDecoder(r.Body).Decode(dto); err != nil {
		logger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, logger, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := h.validate.Struct(dto); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			errorResponse := make(map[string]string)
			for _, fieldErr := range validationErrors {
				errorResponse[fieldErr.Field()] = "failed on rule: " + fieldErr.Tag()
			}
			logger.WarnContext(r.Context(), "Validation errors occurred", "errors", errorResponse)
			web.RespondJSON(w, logger, http.StatusBadRequest, map[string]any{"validation_errors": errorResponse})
			return false
		}
		logger.ErrorContext(r.Context(), "Error validating request body", "error", err)
		web.RespondError(w, logger, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// isAdmin reports whether the authenticated request carries the admin role.
func isAdmin(r *http.Request) bool {
	role, ok := web.RoleFrom(r.Context())
	return ok && role == auth.RoleAdmin
}
