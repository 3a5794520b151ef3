package expenses

const (
	DefaultColorName = "Blue"
	DefaultColorHex  = "#64748b"
	DefaultIconName  = "CircleDashed"
	OtherCategoryID  = "OTHER"
)

var Palette = []PaletteColor{
	{Name: "Red", Hex: "#ef4444"},
	{Name: "Orange", Hex: "#f97316"},
	{Name: "Amber", Hex: "#f59e0b"},
	{Name: "Yellow", Hex: "#eab308"},
	{Name: "Lime", Hex: "#84cc16"},
	{Name: "Green", Hex: "#22c55e"},
	{Name: "Emerald", Hex: "#10b981"},
	{Name: "Teal", Hex: "#14b8a6"},
	{Name: "Cyan", Hex: "#06b6d4"},
	{Name: "Sky", Hex: "#0ea5e9"},
	{Name: "Blue", Hex: "#3b82f6"},
	{Name: "Indigo", Hex: "#6366f1"},
	{Name: "Violet", Hex: "#8b5cf6"},
	{Name: "Purple", Hex: "#a855f7"},
	{Name: "Fuchsia", Hex: "#d946ef"},
	{Name: "Pink", Hex: "#ec4899"},
	{Name: "Rose", Hex: "#f43f5e"},
	{Name: "Slate", Hex: "#64748b"},
}

// DefaultCategories is the dictionary a fresh or reset account starts with.
var DefaultCategories = []Category{
	{ID: "FOOD", Label: "Food & Dining", ColorName: "Blue", Color: "#3b82f6", IconName: "Utensils"},
	{ID: "TRANSPORT", Label: "Transport", ColorName: "Amber", Color: "#f59e0b", IconName: "Car"},
	{ID: "SHOPPING", Label: "Shopping", ColorName: "Pink", Color: "#ec4899", IconName: "ShoppingBag"},
	{ID: "HOUSING", Label: "Housing", ColorName: "Indigo", Color: "#6366f1", IconName: "Home"},
	{ID: "ENTERTAINMENT", Label: "Entertainment", ColorName: "Violet", Color: "#8b5cf6", IconName: "Film"},
	{ID: "HEALTH", Label: "Health", ColorName: "Emerald", Color: "#10b981", IconName: "HeartPulse"},
	{ID: "INVESTMENT", Label: "Investments", ColorName: "Cyan", Color: "#06b6d4", IconName: "TrendingUp"},
	{ID: OtherCategoryID, Label: "Other", ColorName: "Slate", Color: "#64748b", IconName: DefaultIconName},
}

func cloneDefaultCategories() []Category {
	cloned := make([]Category, len(DefaultCategories))
	copy(cloned, DefaultCategories)
	return cloned
}
