package dashboard

import (
	"math"
	"strconv"
	"strings"
	"time"

	"orbit-expenses/internal/domain/expenses"
)

// FilterScope returns the base set: expenses in the period that match every
// non-category filter. The input slice is not modified.
func FilterScope(items []expenses.Expense, scope PeriodScope, filters ScopeFilters) []expenses.Expense {
	match := newScopeMatcher(scope, filters)

	base := make([]expenses.Expense, 0, len(items))
	for _, expense := range items {
		if match(expense) {
			base = append(base, expense)
		}
	}
	return base
}

func newScopeMatcher(scope PeriodScope, filters ScopeFilters) func(expenses.Expense) bool {
	query := strings.ToLower(filters.Title)
	minAmount, hasMin := parseAmountBound(filters.AmountMin)
	maxAmount, hasMax := parseAmountBound(filters.AmountMax)
	dateStart := strings.TrimSpace(filters.DateStart)
	dateEnd := strings.TrimSpace(filters.DateEnd)

	return func(expense expenses.Expense) bool {
		if !inPeriod(expense.Date, scope) {
			return false
		}
		if filters.Title != "" && !strings.Contains(strings.ToLower(expense.Title), query) {
			return false
		}
		if hasMin && expense.Amount < minAmount {
			return false
		}
		if hasMax && expense.Amount > maxAmount {
			return false
		}
		if dateStart != "" && expense.Date < dateStart {
			return false
		}
		if dateEnd != "" && expense.Date > dateEnd {
			return false
		}
		return true
	}
}

// inPeriod matches on the YYYY-MM prefix, the same key MonthlySeries buckets by.
func inPeriod(date string, scope PeriodScope) bool {
	switch scope.Kind {
	case ScopeMonth, ScopeYear:
	default:
		return true
	}

	parsed, err := time.Parse(monthKeyLayout, monthKey(date))
	if err != nil {
		return false
	}
	if parsed.Year() != scope.Anchor.Year() {
		return false
	}
	return scope.Kind == ScopeYear || parsed.Month() == scope.Anchor.Month()
}

// parseAmountBound reports ok=false for empty, non-numeric or infinite input, which the
// filter treats as an absent bound.
func parseAmountBound(raw string) (float64, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return 0, false
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return 0, false
	}
	return parsed, true
}
