package rest

import (
	"net/http"

	"github.com/baigojahanzaib/ajj-sales/internal/reconcile"
	"github.com/baigojahanzaib/ajj-sales/pkg/web"
)

// RunImport pulls the remote catalog and upserts it into local storage.
func (h *Handler) RunImport(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	mLogger.InfoContext(r.Context(), "Catalog import requested")

	report, err := h.importer.Run(r.Context())
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Catalog import failed", "error", err)
		web.RespondError(w, mLogger, http.StatusBadGateway, "Catalog import failed")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, report)
}

// stockBatchDto wraps a batch of stock/MOQ update records.
type stockBatchDto struct {
	Updates []reconcile.StockUpdate `json:"updates" validate:"required,gt=0,dive"`
}

// orderBatchDto wraps a batch of externally-sourced status changes.
type orderBatchDto struct {
	Updates []reconcile.OrderUpdate `json:"updates" validate:"required,gt=0,dive"`
}

// ReconcileStock applies a batch of stock/MOQ updates and returns the
// per-record report.
func (h *Handler) ReconcileStock(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	var dto stockBatchDto
	if !decodeValid(h, w, r, mLogger, &dto) {
		return
	}

	report, err := h.reconciler.ApplyStockBatch(r.Context(), dto.Updates)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Stock batch failed", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to apply stock batch")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, report)
}

// ReconcileOrders applies a batch of external status changes and returns the
// per-record report.
func (h *Handler) ReconcileOrders(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	var dto orderBatchDto
	if !decodeValid(h, w, r, mLogger, &dto) {
		return
	}

	report, err := h.reconciler.ApplyOrderBatch(r.Context(), dto.Updates)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Order batch failed", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to apply order batch")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, report)
}

// SyncStatus reports the pending-order queue state.
func (h *Handler) SyncStatus(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	web.RespondJSON(w, mLogger, http.StatusOK, map[string]any{
		"pending":    h.queue.PendingCount(),
		"is_syncing": h.queue.IsSyncing(),
		"entries":    h.queue.Pending(),
	})
}

// TriggerSync starts a sync pass over the pending-order queue. A pass
// already in flight yields 409 and the new request is dropped.
func (h *Handler) TriggerSync(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	result, ok := h.queue.SyncPending(r.Context())
	if !ok {
		web.RespondError(w, mLogger, http.StatusConflict, "Sync already in progress")
		return
	}
	mLogger.InfoContext(r.Context(), "Sync pass finished",
		"synced", result.Synced, "failed", result.Failed, "remaining", result.Remaining)
	web.RespondJSON(w, mLogger, http.StatusOK, result)
}
