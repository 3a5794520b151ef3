package expenses

import (
	"time"

	expensesdomain "orbit-expenses/internal/domain/expenses"
)

type expenseRow struct {
	ID         int64        `gorm:"column:id;primaryKey;autoIncrement"`
	Title      string       `gorm:"column:title;not null"`
	Amount     float64      `gorm:"column:amount;not null"`
	Date       time.Time    `gorm:"column:date;type:date;not null;index"`
	CategoryID string       `gorm:"column:category_id;not null;index"`
	Category   *categoryRow `gorm:"foreignKey:CategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Note       *string      `gorm:"column:note"`
	CreatedAt  time.Time    `gorm:"column:created_at"`
}

func (expenseRow) TableName() string {
	return "expenses"
}

type categoryRow struct {
	ID        string    `gorm:"column:id;primaryKey;size:32"`
	Label     string    `gorm:"column:label;not null"`
	ColorName string    `gorm:"column:color_name;not null"`
	IconName  string    `gorm:"column:icon_name;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (categoryRow) TableName() string {
	return "categories"
}

type colorRow struct {
	Name    string `gorm:"column:name;primaryKey"`
	HexCode string `gorm:"column:hex_code;not null"`
}

func (colorRow) TableName() string {
	return "master_colors"
}

type iconRow struct {
	Name  string `gorm:"column:name;primaryKey"`
	Label string `gorm:"column:label;not null"`
}

func (iconRow) TableName() string {
	return "master_icons"
}

// categoryView is a category joined with its palette hex.
type categoryView struct {
	ID        string `gorm:"column:id"`
	Label     string `gorm:"column:label"`
	ColorName string `gorm:"column:color_name"`
	Color     string `gorm:"column:color"`
	IconName  string `gorm:"column:icon_name"`
}

// Models lists the tables this repository needs, in dependency order.
func Models() []any {
	return []any{&colorRow{}, &iconRow{}, &categoryRow{}, &expenseRow{}}
}

func newExpenseRow(expense *expensesdomain.Expense) (expenseRow, error) {
	date, err := time.Parse(expensesdomain.DateLayout, expense.Date)
	if err != nil {
		return expenseRow{}, expensesdomain.ErrInvalidDate
	}
	return expenseRow{
		ID:         expense.ID,
		Title:      expense.Title,
		Amount:     expense.Amount,
		Date:       date,
		CategoryID: expense.CategoryID,
		Note:       expense.Note,
	}, nil
}

func (r expenseRow) toDomain() expensesdomain.Expense {
	return expensesdomain.Expense{
		ID:         r.ID,
		Title:      r.Title,
		Amount:     r.Amount,
		Date:       r.Date.Format(expensesdomain.DateLayout),
		CategoryID: r.CategoryID,
		Note:       r.Note,
	}
}

func (v categoryView) toDomain() expensesdomain.Category {
	return expensesdomain.Category{
		ID:        v.ID,
		Label:     v.Label,
		ColorName: v.ColorName,
		Color:     v.Color,
		IconName:  v.IconName,
	}
}
