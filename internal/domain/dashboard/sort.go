package dashboard

import (
	"sort"
	"strings"

	"orbit-expenses/internal/domain/expenses"
)

// SortExpenses returns a sorted copy for table display. Equal keys keep their
// input order. An empty field sorts by date, newest first.
func SortExpenses(items []expenses.Expense, field SortField, direction SortDirection, dict Dictionary) []expenses.Expense {
	sorted := append([]expenses.Expense(nil), items...)
	if field == "" {
		field = SortByDate
		if direction == "" {
			direction = SortDesc
		}
	}
	if direction == "" {
		direction = SortAsc
	}

	var compare func(a, b expenses.Expense) int
	switch field {
	case SortByAmount:
		compare = func(a, b expenses.Expense) int { return compareFloat(a.Amount, b.Amount) }
	case SortByTitle:
		compare = func(a, b expenses.Expense) int {
			return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
		}
	case SortByCategory:
		compare = func(a, b expenses.Expense) int {
			return strings.Compare(strings.ToLower(dict.LabelOf(a.CategoryID)), strings.ToLower(dict.LabelOf(b.CategoryID)))
		}
	default:
		compare = func(a, b expenses.Expense) int { return strings.Compare(a.Date, b.Date) }
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		cmp := compare(sorted[i], sorted[j])
		if direction == SortDesc {
			return cmp > 0
		}
		return cmp < 0
	})
	return sorted
}

func ParseSortField(value string) (SortField, error) {
	switch field := SortField(strings.ToLower(strings.TrimSpace(value))); field {
	case "":
		return SortByDate, nil
	case SortByDate, SortByAmount, SortByTitle, SortByCategory:
		return field, nil
	default:
		return "", ErrInvalidSort
	}
}

func ParseSortDirection(value string) (SortDirection, error) {
	switch direction := SortDirection(strings.ToLower(strings.TrimSpace(value))); direction {
	case "":
		return SortDesc, nil
	case SortAsc, SortDesc:
		return direction, nil
	default:
		return "", ErrInvalidDirection
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
