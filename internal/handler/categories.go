package handler

import (
	"net/http"

	"github.com/Dan9191/finance-tracker/internal/models"
	"github.com/Dan9191/finance-tracker/internal/service"
)

type categoriesResponse struct {
	Categories []models.Category `json:"categories"`
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	categories, err := h.svc.ListCategories(r.Context(), userID)
	if err != nil {
		h.handleError(w, r, err, "Category not found")
		return
	}
	writeJSON(w, http.StatusOK, categoriesResponse{Categories: categories})
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req categoryRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	category, err := h.svc.CreateCategory(r.Context(), userID, service.CategoryInput{
		Name:  req.Name,
		Icon:  req.Icon,
		Color: req.Color,
	})
	if err != nil {
		h.handleError(w, r, err, "Category not found")
		return
	}
	writeJSON(w, http.StatusOK, category)
}

func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Category not found")
		return
	}
	if err := h.svc.DeleteCategory(r.Context(), userID, id); err != nil {
		h.handleError(w, r, err, "Category not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
