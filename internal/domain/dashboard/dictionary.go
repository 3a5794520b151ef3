package dashboard

import "orbit-expenses/internal/domain/expenses"

// Dictionary is a read-only category lookup that remembers fetch order.
type Dictionary struct {
	order []string
	byID  map[string]expenses.Category
}

// NewDictionary indexes categories by ID. A repeated ID keeps its first
// position and takes the last value.
func NewDictionary(categories []expenses.Category) Dictionary {
	dict := Dictionary{
		order: make([]string, 0, len(categories)),
		byID:  make(map[string]expenses.Category, len(categories)),
	}
	for _, category := range categories {
		if _, exists := dict.byID[category.ID]; !exists {
			dict.order = append(dict.order, category.ID)
		}
		dict.byID[category.ID] = category
	}
	return dict
}

func (d Dictionary) Lookup(id string) (expenses.Category, bool) {
	category, ok := d.byID[id]
	return category, ok
}

func (d Dictionary) Len() int {
	return len(d.order)
}

// Categories returns the categories in fetch order.
func (d Dictionary) Categories() []expenses.Category {
	items := make([]expenses.Category, 0, len(d.order))
	for _, id := range d.order {
		items = append(items, d.byID[id])
	}
	return items
}

// LabelOf returns the category label, or the raw ID for a dangling reference.
func (d Dictionary) LabelOf(id string) string {
	if category, ok := d.byID[id]; ok {
		return category.Label
	}
	return id
}
