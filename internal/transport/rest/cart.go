package rest

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/baigojahanzaib/ajj-sales/internal/cart"
	"github.com/baigojahanzaib/ajj-sales/internal/catalog"
	"github.com/baigojahanzaib/ajj-sales/pkg/web"
)

// GetCart returns the caller's current cart with computed totals.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	userID, ok := web.GetUserID(w, r, mLogger)
	if !ok {
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, h.carts.Get(userID))
}

// AddCartItem adds a product line to the caller's cart.
func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	userID, ok := web.GetUserID(w, r, mLogger)
	if !ok {
		return
	}
	var dto cart.AddItemDto
	if !decodeValid(h, w, r, mLogger, &dto) {
		return
	}

	view, err := h.carts.AddItem(r.Context(), userID, dto)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrProductNotFound):
			web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Product with ID %s not found", dto.ProductID))
		case errors.Is(err, cart.ErrProductInactive), errors.Is(err, cart.ErrUnknownSelection):
			web.RespondError(w, mLogger, http.StatusBadRequest, err.Error())
		default:
			mLogger.ErrorContext(r.Context(), "Error adding cart item", "error", err)
			web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to add item to cart")
		}
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, view)
}

// UpdateCartItem overwrites a line's quantity; zero removes the line.
func (h *Handler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	userID, ok := web.GetUserID(w, r, mLogger)
	if !ok {
		return
	}
	itemID, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	var dto cart.QuantityDto
	if !decodeValid(h, w, r, mLogger, &dto) {
		return
	}

	web.RespondJSON(w, mLogger, http.StatusOK, h.carts.UpdateQuantity(userID, itemID, dto))
}

// RemoveCartItem deletes one line from the caller's cart.
func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	userID, ok := web.GetUserID(w, r, mLogger)
	if !ok {
		return
	}
	itemID, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}

	web.RespondJSON(w, mLogger, http.StatusOK, h.carts.RemoveItem(userID, itemID))
}

// ClearCart empties the caller's cart.
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	userID, ok := web.GetUserID(w, r, mLogger)
	if !ok {
		return
	}

	web.RespondJSON(w, mLogger, http.StatusOK, h.carts.Clear(userID))
}
