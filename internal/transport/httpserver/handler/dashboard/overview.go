package dashboard

import (
	"net/http"
	"net/url"
	"strings"

	dashboarddomain "orbit-expenses/internal/domain/dashboard"
)

type toggleRequest struct {
	Selected   []string `json:"selected"`
	CategoryID string   `json:"category_id"`
}

type toggleResponse struct {
	Selected []string `json:"selected"`
}

// Overview serves the derived dashboard views for the requested period and
// filters.
func (h *Handlers) Overview(w http.ResponseWriter, r *http.Request) {
	query, err := h.parseQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	overview, err := h.Dashboard.Overview(r.Context(), query)
	if err != nil {
		h.requestLog(r).InternalError("dashboard.overview: build overview failed", err, "scope", query.Scope.Kind)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, overview)
}

// Toggle applies one click on a category to the caller's selection.
func (h *Handlers) Toggle(w http.ResponseWriter, r *http.Request) {
	var req toggleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	categoryID := strings.TrimSpace(req.CategoryID)
	if categoryID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "category_id is required")
		return
	}

	writeJSON(w, http.StatusOK, toggleResponse{
		Selected: dashboarddomain.Toggle(req.Selected, categoryID),
	})
}

func (h *Handlers) parseQuery(values url.Values) (dashboarddomain.Query, error) {
	kind, err := dashboarddomain.ParseScopeKind(values.Get("scope"))
	if err != nil {
		return dashboarddomain.Query{}, err
	}
	anchor, err := dashboarddomain.ParseAnchor(values.Get("anchor"), h.now())
	if err != nil {
		return dashboarddomain.Query{}, err
	}
	field, err := dashboarddomain.ParseSortField(values.Get("sort"))
	if err != nil {
		return dashboarddomain.Query{}, err
	}
	direction, err := dashboarddomain.ParseSortDirection(values.Get("dir"))
	if err != nil {
		return dashboarddomain.Query{}, err
	}

	return dashboarddomain.Query{
		Scope: dashboarddomain.PeriodScope{Anchor: anchor, Kind: kind},
		Filters: dashboarddomain.ScopeFilters{
			Title:               values.Get("title"),
			SelectedCategoryIDs: parseCSV(values.Get("categories")),
			DateStart:           strings.TrimSpace(values.Get("date_start")),
			DateEnd:             strings.TrimSpace(values.Get("date_end")),
			AmountMin:           values.Get("amount_min"),
			AmountMax:           values.Get("amount_max"),
		},
		Sort:      field,
		Direction: direction,
	}, nil
}
