package expenses

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"

	"orbit-expenses/internal/domain/csvio"
	"orbit-expenses/internal/domain/dashboard"
	expensesdomain "orbit-expenses/internal/domain/expenses"
)

const maxImportBytes = 5 << 20

type importResponse struct {
	Imported int                      `json:"imported"`
	Skipped  int                      `json:"skipped"`
	DryRun   bool                     `json:"dry_run"`
	Expenses []expensesdomain.Expense `json:"expenses"`
}

func (h *Handlers) ExportExpenses(w http.ResponseWriter, r *http.Request) {
	items, err := h.Expenses.ListExpenses(r.Context())
	if err != nil {
		h.requestLog(r).InternalError("expenses.export: list expenses failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	var buf bytes.Buffer
	if err := csvio.Export(&buf, items); err != nil {
		h.requestLog(r).InternalError("expenses.export: encode csv failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	filename := fmt.Sprintf("orbit_export_%s.csv", h.now().Format(expensesdomain.DateLayout))
	writeCSV(w, filename, buf.Bytes())
}

func (h *Handlers) ImportTemplate(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := csvio.Template(&buf); err != nil {
		h.requestLog(r).InternalError("expenses.template: encode csv failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeCSV(w, "orbit_import_template.csv", buf.Bytes())
}

// ImportExpenses reads a CSV request body and stores every usable row.
// With ?dry_run=true the parsed rows are returned without being stored.
func (h *Handlers) ImportExpenses(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "failed to read body")
		return
	}
	if len(body) > maxImportBytes {
		writeError(w, http.StatusRequestEntityTooLarge, "payload_too_large", "csv file is too large")
		return
	}

	categories, err := h.Expenses.ListCategories(r.Context())
	if err != nil {
		h.requestLog(r).InternalError("expenses.import: list categories failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	parsed, err := csvio.Parse(bytes.NewReader(body), dashboard.NewDictionary(categories), h.now())
	if err != nil {
		if errors.Is(err, csvio.ErrEmptyFile) {
			h.requestLog(r).BusinessError("expenses.import: empty file", err)
			writeError(w, http.StatusBadRequest, "empty_file", "csv file has no data rows")
			return
		}
		h.requestLog(r).BusinessError("expenses.import: parse failed", err)
		writeError(w, http.StatusBadRequest, "invalid_csv", "invalid csv file")
		return
	}

	if parseBoolParam(r.URL.Query().Get("dry_run")) {
		preview := make([]expensesdomain.Expense, 0, len(parsed.Rows))
		for _, row := range parsed.Rows {
			preview = append(preview, expensesdomain.Expense{
				Title:      row.Title,
				Amount:     row.Amount,
				Date:       row.Date,
				CategoryID: row.CategoryID,
				Note:       row.Note,
			})
		}
		writeJSON(w, http.StatusOK, importResponse{
			Imported: 0,
			Skipped:  parsed.Skipped,
			DryRun:   true,
			Expenses: preview,
		})
		return
	}

	created, err := h.Expenses.ImportExpenses(r.Context(), parsed.Rows, nil)
	if err != nil {
		if errors.Is(err, expensesdomain.ErrCategoryNotFound) {
			h.requestLog(r).BusinessError("expenses.import: category not found", err)
			writeError(w, http.StatusBadRequest, "category_not_found", err.Error())
			return
		}
		if writeValidationError(w, err) {
			h.requestLog(r).BusinessError("expenses.import: validation failed", err)
			return
		}
		h.requestLog(r).InternalError("expenses.import: store rows failed", err, "rows", len(parsed.Rows))
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	h.requestLog(r).Info("expenses.import: imported", "rows", len(created), "skipped", parsed.Skipped)
	writeJSON(w, http.StatusCreated, importResponse{
		Imported: len(created),
		Skipped:  parsed.Skipped,
		Expenses: created,
	})
}
