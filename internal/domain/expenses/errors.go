package expenses

import "errors"

var (
	ErrExpenseNotFound   = errors.New("expense not found")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrCategoryInUse     = errors.New("category in use")
	ErrCategoryExists    = errors.New("category already exists")
	ErrInvalidDate       = errors.New("date must be YYYY-MM-DD")
	ErrInvalidColor      = errors.New("color must be #RRGGBB")
	ErrIconNotFound      = errors.New("icon not found")
	ErrTitleRequired     = errors.New("title is required")
	ErrCategoryRequired  = errors.New("category is required")
	ErrLabelRequired     = errors.New("label is required")
	ErrIconNameRequired  = errors.New("icon name is required")
	ErrCategoryIDInvalid = errors.New("category id must be non-empty and at most 32 characters")
)
