package expenses

import (
	"errors"
	"net/http"

	expensesdomain "orbit-expenses/internal/domain/expenses"
	"github.com/go-chi/chi/v5"
)

type createIconRequest struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

func (h *Handlers) ListIcons(w http.ResponseWriter, r *http.Request) {
	icons, err := h.Expenses.ListIcons(r.Context())
	if err != nil {
		h.requestLog(r).InternalError("icons.list: list icons failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, icons)
}

func (h *Handlers) CreateIcon(w http.ResponseWriter, r *http.Request) {
	var req createIconRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	icon, err := h.Expenses.AddIcon(r.Context(), req.Name, req.Label)
	if err != nil {
		if writeValidationError(w, err) {
			h.requestLog(r).BusinessError("icons.create: validation failed", err)
			return
		}
		h.requestLog(r).InternalError("icons.create: add icon failed", err, "name", req.Name)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, icon)
}

func (h *Handlers) DeleteIcon(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := h.Expenses.DeleteIcon(r.Context(), name); err != nil {
		if errors.Is(err, expensesdomain.ErrIconNotFound) {
			h.requestLog(r).BusinessError("icons.delete: icon not found", err, "name", name)
			writeError(w, http.StatusNotFound, "icon_not_found", "icon not found")
			return
		}
		h.requestLog(r).InternalError("icons.delete: delete icon failed", err, "name", name)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
