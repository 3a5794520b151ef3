package expenses

import (
	"errors"
	"net/http"
	"strings"

	expensesdomain "orbit-expenses/internal/domain/expenses"
	"github.com/go-chi/chi/v5"
)

type createCategoryRequest struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Color    string `json:"color"`
	IconName string `json:"icon_name"`
}

type updateCategoryRequest struct {
	Label    string `json:"label"`
	Color    string `json:"color"`
	IconName string `json:"icon_name"`
}

type deleteCategoryResponse struct {
	DeletedExpenses int64 `json:"deleted_expenses"`
}

func (h *Handlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Expenses.ListCategories(r.Context())
	if err != nil {
		h.requestLog(r).InternalError("categories.list: list categories failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, categories)
}

func (h *Handlers) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if len([]rune(strings.TrimSpace(req.Label))) > 50 {
		writeError(w, http.StatusBadRequest, "invalid_request", "label must be at most 50 characters")
		return
	}

	created, err := h.Expenses.CreateCategory(r.Context(), expensesdomain.SaveCategoryInput{
		ID:       req.ID,
		Label:    req.Label,
		Color:    req.Color,
		IconName: req.IconName,
	})
	if err != nil {
		switch {
		case errors.Is(err, expensesdomain.ErrCategoryExists):
			h.requestLog(r).BusinessError("categories.create: category already exists", err, "category_id", req.ID, "label", req.Label)
			writeError(w, http.StatusConflict, "category_exists", "Category already exists")
		case writeValidationError(w, err):
			h.requestLog(r).BusinessError("categories.create: validation failed", err)
		default:
			h.requestLog(r).InternalError("categories.create: create category failed", err)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (h *Handlers) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := strings.TrimSpace(chi.URLParam(r, "id"))
	if categoryID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "id is required")
		return
	}

	var req updateCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if len([]rune(strings.TrimSpace(req.Label))) > 50 {
		writeError(w, http.StatusBadRequest, "invalid_request", "label must be at most 50 characters")
		return
	}

	updated, err := h.Expenses.UpdateCategory(r.Context(), expensesdomain.SaveCategoryInput{
		ID:       categoryID,
		Label:    req.Label,
		Color:    req.Color,
		IconName: req.IconName,
	})
	if err != nil {
		switch {
		case errors.Is(err, expensesdomain.ErrCategoryNotFound):
			h.requestLog(r).BusinessError("categories.update: category not found", err, "category_id", categoryID)
			writeError(w, http.StatusNotFound, "category_not_found", "category not found")
		case writeValidationError(w, err):
			h.requestLog(r).BusinessError("categories.update: validation failed", err, "category_id", categoryID)
		default:
			h.requestLog(r).InternalError("categories.update: update category failed", err, "category_id", categoryID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// DeleteCategory removes an unused category. With ?cascade=true the
// category's expenses are removed with it.
func (h *Handlers) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := strings.TrimSpace(chi.URLParam(r, "id"))
	if categoryID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "id is required")
		return
	}

	if parseBoolParam(r.URL.Query().Get("cascade")) {
		removed, err := h.Expenses.DeleteCategoryCascade(r.Context(), categoryID)
		if err != nil {
			if errors.Is(err, expensesdomain.ErrCategoryNotFound) {
				h.requestLog(r).BusinessError("categories.delete: category not found", err, "category_id", categoryID)
				writeError(w, http.StatusNotFound, "category_not_found", "category not found")
				return
			}
			h.requestLog(r).InternalError("categories.delete: cascade delete failed", err, "category_id", categoryID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
			return
		}

		h.requestLog(r).Info("categories.delete: cascade removed expenses", "category_id", categoryID, "expenses", removed)
		writeJSON(w, http.StatusOK, deleteCategoryResponse{DeletedExpenses: removed})
		return
	}

	if err := h.Expenses.DeleteCategory(r.Context(), categoryID); err != nil {
		switch {
		case errors.Is(err, expensesdomain.ErrCategoryNotFound):
			h.requestLog(r).BusinessError("categories.delete: category not found", err, "category_id", categoryID)
			writeError(w, http.StatusNotFound, "category_not_found", "category not found")
		case errors.Is(err, expensesdomain.ErrCategoryInUse):
			h.requestLog(r).BusinessError("categories.delete: category is in use", err, "category_id", categoryID)
			writeError(w, http.StatusConflict, "category_in_use", "Category is used by expenses")
		default:
			h.requestLog(r).InternalError("categories.delete: delete category failed", err, "category_id", categoryID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
