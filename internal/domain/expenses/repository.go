package expenses

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	ListExpenses(ctx context.Context) ([]Expense, error)
	GetExpenseByID(ctx context.Context, id int64) (*Expense, error)
	CreateExpense(ctx context.Context, expense *Expense) error
	UpdateExpense(ctx context.Context, expense *Expense) error
	DeleteExpense(ctx context.Context, id int64) (bool, error)
	DeleteExpensesByCategory(ctx context.Context, categoryID string) (int64, error)
	DeleteAllExpenses(ctx context.Context) error
	CountExpensesByCategory(ctx context.Context, categoryID string) (int64, error)

	ListCategories(ctx context.Context) ([]Category, error)
	GetCategoryByID(ctx context.Context, id string) (*Category, error)
	CreateCategory(ctx context.Context, category *Category) error
	UpdateCategory(ctx context.Context, category *Category) error
	DeleteCategory(ctx context.Context, id string) (bool, error)
	DeleteAllCategories(ctx context.Context) error

	ColorNameByHex(ctx context.Context, hex string) (string, bool, error)
	EnsurePalette(ctx context.Context, colors []PaletteColor) error
	ListIcons(ctx context.Context) ([]Icon, error)
	EnsureIcon(ctx context.Context, icon Icon) error
	DeleteIcon(ctx context.Context, name string) (bool, error)
}
