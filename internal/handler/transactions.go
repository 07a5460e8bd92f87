package handler

import (
	"net/http"

	"github.com/Dan9191/finance-tracker/internal/models"
	"github.com/Dan9191/finance-tracker/internal/service"
)

const transactionNotFound = "Transaction not found"

type transactionsResponse struct {
	Transactions []models.Transaction `json:"transactions"`
}

type groupedTransactionsResponse struct {
	Groups []models.TransactionsByDate `json:"groups"`
}

// ListTransactions supports month+year, date, start_date and end_date filters
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	f, invalid, conflict := transactionFilter(r.URL.Query(), true)
	if invalid != "" {
		writeError(w, http.StatusUnprocessableEntity, invalid)
		return
	}
	if conflict != "" {
		writeError(w, http.StatusBadRequest, conflict)
		return
	}
	txs, err := h.svc.ListTransactions(r.Context(), userID, f)
	if err != nil {
		h.handleError(w, r, err, transactionNotFound)
		return
	}
	writeJSON(w, http.StatusOK, transactionsResponse{Transactions: txs})
}

// GroupedTransactions buckets the filtered transactions by day
func (h *Handler) GroupedTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	f, invalid, conflict := transactionFilter(r.URL.Query(), false)
	if invalid != "" {
		writeError(w, http.StatusUnprocessableEntity, invalid)
		return
	}
	if conflict != "" {
		writeError(w, http.StatusBadRequest, conflict)
		return
	}
	groups, err := h.svc.GroupedTransactions(r.Context(), userID, f)
	if err != nil {
		h.handleError(w, r, err, transactionNotFound)
		return
	}
	writeJSON(w, http.StatusOK, groupedTransactionsResponse{Groups: groups})
}

func (h *Handler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, transactionNotFound)
		return
	}
	tx, err := h.svc.GetTransaction(r.Context(), userID, id)
	if err != nil {
		h.handleError(w, r, err, transactionNotFound)
		return
	}
	writeJSON(w, http.StatusOK, tx)
}

func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req transactionRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	tx, err := h.svc.CreateTransaction(r.Context(), userID, service.TransactionInput{
		Type:       models.TransactionType(req.Type),
		Name:       req.Name,
		CategoryID: req.CategoryID,
		Amount:     req.Amount,
		Date:       req.Date,
		Note:       req.Note,
	})
	if err != nil {
		h.handleError(w, r, err, transactionNotFound)
		return
	}
	writeJSON(w, http.StatusOK, tx)
}

func (h *Handler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, transactionNotFound)
		return
	}
	var req transactionUpdateRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	tx, err := h.svc.UpdateTransaction(r.Context(), userID, id, service.TransactionUpdate{
		Name:       req.Name,
		CategoryID: req.CategoryID,
		Amount:     req.Amount,
		Date:       req.Date,
		Note:       req.Note,
	})
	if err != nil {
		h.handleError(w, r, err, transactionNotFound)
		return
	}
	writeJSON(w, http.StatusOK, tx)
}

func (h *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, transactionNotFound)
		return
	}
	if err := h.svc.DeleteTransaction(r.Context(), userID, id); err != nil {
		h.handleError(w, r, err, transactionNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
