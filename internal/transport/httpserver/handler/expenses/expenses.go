package expenses

import (
	"errors"
	"net/http"

	expensesdomain "orbit-expenses/internal/domain/expenses"
	"github.com/go-chi/chi/v5"
)

type expenseRequest struct {
	Title      string  `json:"title"`
	Amount     float64 `json:"amount"`
	Date       string  `json:"date"`
	CategoryID string  `json:"category_id"`
	Note       *string `json:"note"`
}

func (h *Handlers) ListExpenses(w http.ResponseWriter, r *http.Request) {
	items, err := h.Expenses.ListExpenses(r.Context())
	if err != nil {
		h.requestLog(r).InternalError("expenses.list: list expenses failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, items)
}

func (h *Handlers) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	created, err := h.Expenses.CreateExpense(r.Context(), expensesdomain.CreateExpenseInput{
		Title:      req.Title,
		Amount:     req.Amount,
		Date:       req.Date,
		CategoryID: req.CategoryID,
		Note:       req.Note,
	})
	if err != nil {
		switch {
		case errors.Is(err, expensesdomain.ErrCategoryNotFound):
			h.requestLog(r).BusinessError("expenses.create: category not found", err, "category_id", req.CategoryID)
			writeError(w, http.StatusBadRequest, "category_not_found", "category not found")
		case writeValidationError(w, err):
			h.requestLog(r).BusinessError("expenses.create: validation failed", err)
		default:
			h.requestLog(r).InternalError("expenses.create: create expense failed", err)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (h *Handlers) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid id")
		return
	}

	var req expenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	updated, err := h.Expenses.UpdateExpense(r.Context(), expensesdomain.UpdateExpenseInput{
		ID:         id,
		Title:      req.Title,
		Amount:     req.Amount,
		Date:       req.Date,
		CategoryID: req.CategoryID,
		Note:       req.Note,
	})
	if err != nil {
		switch {
		case errors.Is(err, expensesdomain.ErrExpenseNotFound):
			h.requestLog(r).BusinessError("expenses.update: expense not found", err, "expense_id", id)
			writeError(w, http.StatusNotFound, "expense_not_found", "expense not found")
		case errors.Is(err, expensesdomain.ErrCategoryNotFound):
			h.requestLog(r).BusinessError("expenses.update: category not found", err, "expense_id", id, "category_id", req.CategoryID)
			writeError(w, http.StatusBadRequest, "category_not_found", "category not found")
		case writeValidationError(w, err):
			h.requestLog(r).BusinessError("expenses.update: validation failed", err, "expense_id", id)
		default:
			h.requestLog(r).InternalError("expenses.update: update expense failed", err, "expense_id", id)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (h *Handlers) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid id")
		return
	}

	if err := h.Expenses.DeleteExpense(r.Context(), id); err != nil {
		if errors.Is(err, expensesdomain.ErrExpenseNotFound) {
			h.requestLog(r).BusinessError("expenses.delete: expense not found", err, "expense_id", id)
			writeError(w, http.StatusNotFound, "expense_not_found", "expense not found")
			return
		}
		h.requestLog(r).InternalError("expenses.delete: delete expense failed", err, "expense_id", id)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
