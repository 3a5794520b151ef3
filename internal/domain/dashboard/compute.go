package dashboard

import "orbit-expenses/internal/domain/expenses"

// Compute derives every dashboard view from one snapshot of the input.
// Identical input always yields identical output.
func Compute(input Input) Result {
	snapshot := cloneInput(input)
	dict := NewDictionary(snapshot.Categories)
	selected := snapshot.Filters.SelectedCategoryIDs

	base := FilterScope(snapshot.Expenses, snapshot.Scope, snapshot.Filters)
	display := FilterSelection(base, selected)

	return Result{
		BaseSet:           base,
		DisplaySet:        display,
		ChartData:         AggregateByCategory(base, dict),
		TotalSpent:        TotalSpent(base),
		BaseTimeSeries:    MonthlySeries(base),
		DisplayTimeSeries: MonthlySeries(display),
		ActiveCategories:  ActiveCategories(base, dict, selected),
	}
}

func cloneInput(input Input) Input {
	return Input{
		Expenses:   append([]expenses.Expense(nil), input.Expenses...),
		Categories: append([]expenses.Category(nil), input.Categories...),
		Scope:      input.Scope,
		Filters:    cloneFilters(input.Filters),
	}
}

func cloneFilters(filters ScopeFilters) ScopeFilters {
	cloned := filters
	cloned.SelectedCategoryIDs = append([]string(nil), filters.SelectedCategoryIDs...)
	return cloned
}
