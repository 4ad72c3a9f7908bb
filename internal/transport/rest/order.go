package rest

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/baigojahanzaib/ajj-sales/internal/customer"
	"github.com/baigojahanzaib/ajj-sales/internal/export"
	"github.com/baigojahanzaib/ajj-sales/internal/order"
	"github.com/baigojahanzaib/ajj-sales/pkg/web"
	"github.com/google/uuid"
)

// CreateOrder turns the caller's cart into an order. A 202 means the remote
// store was unreachable and the order was queued for a later sync.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	userID, ok := web.GetUserID(w, r, mLogger)
	if !ok {
		return
	}
	var dto order.CreateDto
	if !decodeValid(h, w, r, mLogger, &dto) {
		return
	}

	result, err := h.orders.CreateFromCart(r.Context(), userID, dto)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrEmptyCart):
			web.RespondError(w, mLogger, http.StatusBadRequest, "Cart is empty")
		case errors.Is(err, customer.ErrCustomerNotFound):
			web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Customer with ID %s not found", dto.CustomerID))
		default:
			mLogger.ErrorContext(r.Context(), "Error creating order", "error", err)
			web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to create order")
		}
		return
	}
	status := http.StatusCreated
	if result.Queued {
		status = http.StatusAccepted
	}
	mLogger.InfoContext(r.Context(), "Order created", "order_number", result.Order.OrderNumber, "queued", result.Queued)
	web.RespondJSON(w, mLogger, status, result)
}

// FindMyOrders lists the caller's own orders.
func (h *Handler) FindMyOrders(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	limit, ok := web.ParseValidateGt(r, w, mLogger, "limit", 0)
	if !ok {
		return
	}
	offset, ok := web.ParseValidateGte(r, w, mLogger, "offset", 0)
	if !ok {
		return
	}
	userID, ok := web.GetUserID(w, r, mLogger)
	if !ok {
		return
	}

	list, err := h.orders.FindBySalesRep(r.Context(), userID, offset, limit)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error retrieving orders", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, list)
}

// FindAllOrders lists every order for the admin panel.
func (h *Handler) FindAllOrders(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	limit, ok := web.ParseValidateGt(r, w, mLogger, "limit", 0)
	if !ok {
		return
	}
	offset, ok := web.ParseValidateGte(r, w, mLogger, "offset", 0)
	if !ok {
		return
	}

	list, err := h.orders.FindAll(r.Context(), offset, limit)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error retrieving orders", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, list)
}

// FindOrderByID retrieves an order. Sales reps can only read their own.
func (h *Handler) FindOrderByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	found, ok := h.fetchOrder(w, r, mLogger)
	if !ok {
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, found)
}

// ExportOrder renders the order as a CSV attachment.
func (h *Handler) ExportOrder(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	found, ok := h.fetchOrder(w, r, mLogger)
	if !ok {
		return
	}

	doc, err := export.OrderCSV(found)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error exporting order", "ID", found.ID, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to export order")
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName(found)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}

// UpdateOrderStatus applies a status transition through the state machine.
func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	var dto order.StatusUpdateDto
	if !decodeValid(h, w, r, mLogger, &dto) {
		return
	}

	updated, err := h.orders.UpdateStatus(r.Context(), id, dto)
	if err != nil {
		h.respondOrderError(w, r, mLogger, id, err)
		return
	}
	mLogger.InfoContext(r.Context(), "Order status updated", "ID", id, "status", updated.Status)
	web.RespondJSON(w, mLogger, http.StatusOK, updated)
}

// EditOrder applies an explicit post-submission edit.
func (h *Handler) EditOrder(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	userID, ok := web.GetUserID(w, r, mLogger)
	if !ok {
		return
	}
	var dto order.EditDto
	if !decodeValid(h, w, r, mLogger, &dto) {
		return
	}

	updated, err := h.orders.Edit(r.Context(), userID, id, dto)
	if err != nil {
		if errors.Is(err, order.ErrEmptyCart) {
			web.RespondError(w, mLogger, http.StatusBadRequest, "Edit would leave the order without items")
			return
		}
		h.respondOrderError(w, r, mLogger, id, err)
		return
	}
	mLogger.InfoContext(r.Context(), "Order edited", "ID", id)
	web.RespondJSON(w, mLogger, http.StatusOK, updated)
}

func (h *Handler) fetchOrder(w http.ResponseWriter, r *http.Request, mLogger *slog.Logger) (*order.Order, bool) {
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return nil, false
	}
	userID, ok := web.GetUserID(w, r, mLogger)
	if !ok {
		return nil, false
	}

	found, err := h.orders.FindByID(r.Context(), userID, isAdmin(r), id)
	if err != nil {
		h.respondOrderError(w, r, mLogger, id, err)
		return nil, false
	}
	return found, true
}

func (h *Handler) respondOrderError(w http.ResponseWriter, r *http.Request, mLogger *slog.Logger, id uuid.UUID, err error) {
	switch {
	case errors.Is(err, order.ErrOrderNotFound):
		web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Order with ID %s not found", id))
	case errors.Is(err, order.ErrAccessDenied):
		web.RespondError(w, mLogger, http.StatusForbidden, fmt.Sprintf("Access denied to order with ID %s", id))
	case errors.Is(err, order.ErrInvalidTransition):
		web.RespondError(w, mLogger, http.StatusConflict, err.Error())
	case errors.Is(err, order.ErrOptimisticLock):
		web.RespondError(w, mLogger, http.StatusConflict, fmt.Sprintf("Order with ID %s has been modified by another user", id))
	default:
		mLogger.ErrorContext(r.Context(), "Error handling order request", "ID", id, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to process order request")
	}
}
