package rest

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/baigojahanzaib/ajj-sales/internal/customer"
	"github.com/baigojahanzaib/ajj-sales/pkg/web"
)

// FindCustomers lists customers with pagination.
func (h *Handler) FindCustomers(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	limit, ok := web.ParseValidateGt(r, w, mLogger, "limit", 0)
	if !ok {
		return
	}
	offset, ok := web.ParseValidateGte(r, w, mLogger, "offset", 0)
	if !ok {
		return
	}

	list, err := h.customers.FindAll(r.Context(), offset, limit)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error retrieving customers", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to fetch customers")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, list)
}

// FindCustomerByID retrieves a customer by its ID.
func (h *Handler) FindCustomerByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}

	found, err := h.customers.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, customer.ErrCustomerNotFound) {
			web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Customer with ID %s not found", id))
			return
		}
		mLogger.ErrorContext(r.Context(), "Error retrieving customer", "ID", id, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to retrieve customer with ID %s", id))
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, found)
}

// CreateCustomer adds a new customer.
func (h *Handler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	var dto customer.CreateDto
	if !decodeValid(h, w, r, mLogger, &dto) {
		return
	}

	created, err := h.customers.Create(r.Context(), dto)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error creating customer", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to create customer")
		return
	}
	mLogger.InfoContext(r.Context(), "Customer created", "ID", created.ID)
	web.RespondJSON(w, mLogger, http.StatusCreated, created)
}

// UpdateCustomer modifies an existing customer. Order snapshots are untouched.
func (h *Handler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	var dto customer.UpdateDto
	if !decodeValid(h, w, r, mLogger, &dto) {
		return
	}

	updated, err := h.customers.Update(r.Context(), id, dto)
	if err != nil {
		switch {
		case errors.Is(err, customer.ErrCustomerNotFound):
			web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Customer with ID %s not found", id))
		case errors.Is(err, customer.ErrOptimisticLock):
			web.RespondError(w, mLogger, http.StatusConflict, fmt.Sprintf("Customer with ID %s has been modified by another user", id))
		default:
			mLogger.ErrorContext(r.Context(), "Error updating customer", "ID", id, "error", err)
			web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to update customer with ID %s", id))
		}
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, updated)
}

// DeleteCustomer removes a customer. The expected version comes from the
// version query parameter.
func (h *Handler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	version, ok := web.ParseValidateGt(r, w, mLogger, "version", 0)
	if !ok {
		return
	}

	if err := h.customers.DeleteByID(r.Context(), id, version); err != nil {
		if errors.Is(err, customer.ErrCustomerNotFound) {
			web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Customer with ID %s not found", id))
			return
		}
		mLogger.ErrorContext(r.Context(), "Error deleting customer", "ID", id, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to delete customer with ID %s", id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
