package dashboard

import "orbit-expenses/internal/domain/expenses"

// FilterSelection narrows the base set to the selected categories. An empty
// selection keeps everything.
func FilterSelection(base []expenses.Expense, selected []string) []expenses.Expense {
	display := make([]expenses.Expense, 0, len(base))
	if len(selected) == 0 {
		return append(display, base...)
	}

	wanted := make(map[string]struct{}, len(selected))
	for _, id := range selected {
		wanted[id] = struct{}{}
	}
	for _, expense := range base {
		if _, ok := wanted[expense.CategoryID]; ok {
			display = append(display, expense)
		}
	}
	return display
}

// Toggle removes categoryID from the selection when present and appends it
// otherwise. It always returns a new slice.
func Toggle(selection []string, categoryID string) []string {
	next := make([]string, 0, len(selection)+1)
	removed := false
	for _, id := range selection {
		if id == categoryID {
			removed = true
			continue
		}
		next = append(next, id)
	}
	if !removed {
		next = append(next, categoryID)
	}
	return next
}
