package expenses

const DateLayout = "2006-01-02"

type Expense struct {
	ID         int64   `json:"id"`
	Title      string  `json:"title"`
	Amount     float64 `json:"amount"`
	Date       string  `json:"date"`
	CategoryID string  `json:"category_id"`
	Note       *string `json:"note,omitempty"`
}

type Category struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	ColorName string `json:"color_name"`
	Color     string `json:"color"`
	IconName  string `json:"icon_name"`
}

type Icon struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

type PaletteColor struct {
	Name string
	Hex  string
}

type CreateExpenseInput struct {
	Title      string
	Amount     float64
	Date       string
	CategoryID string
	Note       *string
}

type UpdateExpenseInput struct {
	ID         int64
	Title      string
	Amount     float64
	Date       string
	CategoryID string
	Note       *string
}

type SaveCategoryInput struct {
	ID       string
	Label    string
	Color    string
	IconName string
}
