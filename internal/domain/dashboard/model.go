package dashboard

import (
	"time"

	"orbit-expenses/internal/domain/expenses"
)

type ScopeKind string

const (
	ScopeMonth ScopeKind = "MONTH"
	ScopeYear  ScopeKind = "YEAR"
	ScopeAll   ScopeKind = "ALL"
)

// PeriodScope is the implicit calendar window layered on top of ScopeFilters.
// Only the year and month of Anchor are significant.
type PeriodScope struct {
	Anchor time.Time `json:"anchor"`
	Kind   ScopeKind `json:"kind"`
}

// ScopeFilters holds the user's filter inputs as typed. Amount bounds stay raw
// so that unparseable input can degrade to "no constraint".
type ScopeFilters struct {
	Title               string   `json:"title"`
	SelectedCategoryIDs []string `json:"selected_category_ids"`
	DateStart           string   `json:"date_start,omitempty"`
	DateEnd             string   `json:"date_end,omitempty"`
	AmountMin           string   `json:"amount_min,omitempty"`
	AmountMax           string   `json:"amount_max,omitempty"`
}

type ChartDataPoint struct {
	CategoryID string  `json:"category_id"`
	Label      string  `json:"label"`
	Color      string  `json:"color"`
	Value      float64 `json:"value"`
	Share      float64 `json:"share"`
}

type MonthlyBucket struct {
	MonthKey    string             `json:"month"`
	Total       float64            `json:"total"`
	PerCategory map[string]float64 `json:"per_category"`
}

// Amount returns the month's sum for categoryID, or 0 when the category had no
// expenses that month.
func (b MonthlyBucket) Amount(categoryID string) float64 {
	return b.PerCategory[categoryID]
}

type Input struct {
	Expenses   []expenses.Expense
	Categories []expenses.Category
	Scope      PeriodScope
	Filters    ScopeFilters
}

type Result struct {
	BaseSet           []expenses.Expense  `json:"base_set"`
	DisplaySet        []expenses.Expense  `json:"display_set"`
	ChartData         []ChartDataPoint    `json:"chart_data"`
	TotalSpent        float64             `json:"total_spent"`
	BaseTimeSeries    []MonthlyBucket     `json:"base_time_series"`
	DisplayTimeSeries []MonthlyBucket     `json:"display_time_series"`
	ActiveCategories  []expenses.Category `json:"active_categories"`
}

type SortField string

const (
	SortByDate     SortField = "date"
	SortByAmount   SortField = "amount"
	SortByTitle    SortField = "title"
	SortByCategory SortField = "category"
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)
