package common

import "net/http"

type healthResponse struct {
	Status string `json:"status"`
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

// Reset wipes expenses and categories and restores the default categories.
func (h *Handlers) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.Expenses.Reset(r.Context()); err != nil {
		h.requestLog(r).InternalError("reset: reset data failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	h.requestLog(r).Info("reset: data restored to defaults")
	w.WriteHeader(http.StatusNoContent)
}
