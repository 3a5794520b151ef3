package dashboard

import "orbit-expenses/internal/domain/expenses"

// ActiveCategories returns the categories that have at least one expense in
// the base set. Without a selection they come in dictionary order; with one,
// they are the selected and active categories in click order.
func ActiveCategories(base []expenses.Expense, dict Dictionary, selected []string) []expenses.Category {
	active := make(map[string]struct{})
	for _, expense := range base {
		active[expense.CategoryID] = struct{}{}
	}

	result := make([]expenses.Category, 0)
	if len(selected) == 0 {
		for _, category := range dict.Categories() {
			if _, ok := active[category.ID]; ok {
				result = append(result, category)
			}
		}
		return result
	}

	for _, id := range selected {
		if _, ok := active[id]; !ok {
			continue
		}
		if category, ok := dict.Lookup(id); ok {
			result = append(result, category)
		}
	}
	return result
}
