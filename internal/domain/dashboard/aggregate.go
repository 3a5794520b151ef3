package dashboard

import (
	"sort"

	"orbit-expenses/internal/domain/expenses"
)

// AggregateByCategory sums the base set per category, largest first. Expenses
// whose category is missing from dict are left out of the slices but still
// count towards TotalSpent.
func AggregateByCategory(base []expenses.Expense, dict Dictionary) []ChartDataPoint {
	sums := make(map[string]float64)
	order := make([]string, 0)
	for _, expense := range base {
		if _, seen := sums[expense.CategoryID]; !seen {
			order = append(order, expense.CategoryID)
		}
		sums[expense.CategoryID] += expense.Amount
	}

	total := TotalSpent(base)
	points := make([]ChartDataPoint, 0, len(order))
	for _, id := range order {
		category, ok := dict.Lookup(id)
		if !ok {
			continue
		}
		point := ChartDataPoint{
			CategoryID: id,
			Label:      category.Label,
			Color:      category.Color,
			Value:      sums[id],
		}
		if total != 0 {
			point.Share = point.Value / total
		}
		points = append(points, point)
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Value > points[j].Value
	})
	return points
}

func TotalSpent(base []expenses.Expense) float64 {
	total := 0.0
	for _, expense := range base {
		total += expense.Amount
	}
	return total
}

// CategoryUsage counts expenses per category over the whole collection.
func CategoryUsage(items []expenses.Expense) map[string]int {
	counts := make(map[string]int)
	for _, expense := range items {
		counts[expense.CategoryID]++
	}
	return counts
}
