package expenses

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	expensesdomain "orbit-expenses/internal/domain/expenses"
)

const foreignKeyViolationCode = "23503"

// PostgresRepository stores expenses through gorm. It is written against the
// postgres schema and also runs on the sqlite dialect.
type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(expensesdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) ListExpenses(ctx context.Context) ([]expensesdomain.Expense, error) {
	var rows []expenseRow
	if err := r.db.WithContext(ctx).
		Order("date desc, id desc").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]expensesdomain.Expense, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toDomain())
	}
	return items, nil
}

func (r *PostgresRepository) GetExpenseByID(ctx context.Context, id int64) (*expensesdomain.Expense, error) {
	var row expenseRow
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, expensesdomain.ErrExpenseNotFound
		}
		return nil, err
	}
	expense := row.toDomain()
	return &expense, nil
}

func (r *PostgresRepository) CreateExpense(ctx context.Context, expense *expensesdomain.Expense) error {
	row, err := newExpenseRow(expense)
	if err != nil {
		return err
	}
	row.ID = 0
	if err := r.db.WithContext(ctx).Omit("Category").Create(&row).Error; err != nil {
		return translateForeignKey(err, expensesdomain.ErrCategoryNotFound)
	}
	expense.ID = row.ID
	return nil
}

func (r *PostgresRepository) UpdateExpense(ctx context.Context, expense *expensesdomain.Expense) error {
	row, err := newExpenseRow(expense)
	if err != nil {
		return err
	}
	err = r.db.WithContext(ctx).
		Model(&expenseRow{}).
		Where("id = ?", expense.ID).
		Updates(map[string]interface{}{
			"title":       row.Title,
			"amount":      row.Amount,
			"date":        row.Date,
			"category_id": row.CategoryID,
			"note":        row.Note,
		}).Error
	return translateForeignKey(err, expensesdomain.ErrCategoryNotFound)
}

func (r *PostgresRepository) DeleteExpense(ctx context.Context, id int64) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&expenseRow{}, "id = ?", id)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) DeleteExpensesByCategory(ctx context.Context, categoryID string) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&expenseRow{}, "category_id = ?", categoryID)
	return result.RowsAffected, result.Error
}

func (r *PostgresRepository) DeleteAllExpenses(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&expenseRow{}).Error
}

func (r *PostgresRepository) CountExpensesByCategory(ctx context.Context, categoryID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&expenseRow{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresRepository) ListCategories(ctx context.Context) ([]expensesdomain.Category, error) {
	var rows []categoryView
	if err := r.categoriesQuery(ctx).
		Order("categories.created_at asc, categories.id asc").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	categories := make([]expensesdomain.Category, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, row.toDomain())
	}
	return categories, nil
}

func (r *PostgresRepository) GetCategoryByID(ctx context.Context, id string) (*expensesdomain.Category, error) {
	var rows []categoryView
	if err := r.categoriesQuery(ctx).
		Where("categories.id = ?", id).
		Limit(1).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, expensesdomain.ErrCategoryNotFound
	}
	category := rows[0].toDomain()
	return &category, nil
}

func (r *PostgresRepository) CreateCategory(ctx context.Context, category *expensesdomain.Category) error {
	row := categoryRow{
		ID:        category.ID,
		Label:     category.Label,
		ColorName: category.ColorName,
		IconName:  category.IconName,
	}
	err := r.db.WithContext(ctx).Create(&row).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return expensesdomain.ErrCategoryExists
	}
	return err
}

func (r *PostgresRepository) UpdateCategory(ctx context.Context, category *expensesdomain.Category) error {
	return r.db.WithContext(ctx).
		Model(&categoryRow{}).
		Where("id = ?", category.ID).
		Updates(map[string]interface{}{
			"label":      category.Label,
			"color_name": category.ColorName,
			"icon_name":  category.IconName,
		}).Error
}

func (r *PostgresRepository) DeleteCategory(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&categoryRow{}, "id = ?", id)
	if result.Error != nil {
		return false, translateForeignKey(result.Error, expensesdomain.ErrCategoryInUse)
	}
	return result.RowsAffected > 0, nil
}

func (r *PostgresRepository) DeleteAllCategories(ctx context.Context) error {
	err := r.db.WithContext(ctx).Where("1 = 1").Delete(&categoryRow{}).Error
	return translateForeignKey(err, expensesdomain.ErrCategoryInUse)
}

func (r *PostgresRepository) ColorNameByHex(ctx context.Context, hex string) (string, bool, error) {
	var rows []colorRow
	if err := r.db.WithContext(ctx).
		Where("lower(hex_code) = ?", strings.ToLower(hex)).
		Order("name asc").
		Limit(1).
		Find(&rows).Error; err != nil {
		return "", false, err
	}
	if len(rows) == 0 {
		return "", false, nil
	}
	return rows[0].Name, true, nil
}

func (r *PostgresRepository) EnsurePalette(ctx context.Context, colors []expensesdomain.PaletteColor) error {
	if len(colors) == 0 {
		return nil
	}
	rows := make([]colorRow, 0, len(colors))
	for _, color := range colors {
		rows = append(rows, colorRow{Name: color.Name, HexCode: color.Hex})
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&rows).Error
}

func (r *PostgresRepository) ListIcons(ctx context.Context) ([]expensesdomain.Icon, error) {
	var rows []iconRow
	if err := r.db.WithContext(ctx).Order("name asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	icons := make([]expensesdomain.Icon, 0, len(rows))
	for _, row := range rows {
		icons = append(icons, expensesdomain.Icon{Name: row.Name, Label: row.Label})
	}
	return icons, nil
}

func (r *PostgresRepository) EnsureIcon(ctx context.Context, icon expensesdomain.Icon) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&iconRow{Name: icon.Name, Label: icon.Label}).Error
}

func (r *PostgresRepository) DeleteIcon(ctx context.Context, name string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&iconRow{}, "name = ?", name)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) categoriesQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("categories").
		Select("categories.id, categories.label, categories.color_name, categories.icon_name, COALESCE(master_colors.hex_code, ?) AS color", expensesdomain.DefaultColorHex).
		Joins("LEFT JOIN master_colors ON master_colors.name = categories.color_name")
}

// translateForeignKey maps a violation of expenses.category_id to target.
// Both the translated gorm error and the raw postgres SQLSTATE are recognised.
func translateForeignKey(err, target error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return target
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolationCode {
		return target
	}
	return err
}
