package expenses

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

type Service struct {
	repo     Repository
	cache    CategoriesCache
	cacheTTL time.Duration
}

func NewService(repo Repository) *Service {
	return NewServiceWithCache(repo, noopCategoriesCache{}, 0)
}

func NewServiceWithCache(repo Repository, cache CategoriesCache, ttl time.Duration) *Service {
	if cache == nil {
		cache = noopCategoriesCache{}
	}
	return &Service{
		repo:     repo,
		cache:    cache,
		cacheTTL: ttl,
	}
}

func (s *Service) ListExpenses(ctx context.Context) ([]Expense, error) {
	items, err := s.repo.ListExpenses(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		return []Expense{}, nil
	}
	return items, nil
}

func (s *Service) CreateExpense(ctx context.Context, input CreateExpenseInput) (*Expense, error) {
	expense, err := normalizeExpense(input.Title, input.Amount, input.Date, input.CategoryID, input.Note)
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateExpense(ctx, &expense); err != nil {
		return nil, err
	}
	return &expense, nil
}

func (s *Service) UpdateExpense(ctx context.Context, input UpdateExpenseInput) (*Expense, error) {
	normalized, err := normalizeExpense(input.Title, input.Amount, input.Date, input.CategoryID, input.Note)
	if err != nil {
		return nil, err
	}

	var updated Expense
	err = s.repo.Transaction(ctx, func(tx Repository) error {
		expense, err := tx.GetExpenseByID(ctx, input.ID)
		if err != nil {
			return err
		}

		normalized.ID = expense.ID
		if err := tx.UpdateExpense(ctx, &normalized); err != nil {
			return err
		}

		updated = normalized
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// ImportExpenses stores rows in one transaction. Any invalid row aborts the
// whole import. progress, when set, is called after each stored row.
func (s *Service) ImportExpenses(ctx context.Context, rows []CreateExpenseInput, progress func(done int)) ([]Expense, error) {
	normalized := make([]Expense, 0, len(rows))
	for i, row := range rows {
		expense, err := normalizeExpense(row.Title, row.Amount, row.Date, row.CategoryID, row.Note)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		normalized = append(normalized, expense)
	}

	err := s.repo.Transaction(ctx, func(tx Repository) error {
		for i := range normalized {
			if err := tx.CreateExpense(ctx, &normalized[i]); err != nil {
				return fmt.Errorf("row %d: %w", i+1, err)
			}
			if progress != nil {
				progress(i + 1)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return normalized, nil
}

func (s *Service) DeleteExpense(ctx context.Context, id int64) error {
	deleted, err := s.repo.DeleteExpense(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrExpenseNotFound
	}
	return nil
}

func (s *Service) ListCategories(ctx context.Context) ([]Category, error) {
	if cached, ok := s.cache.Get(); ok {
		return cached, nil
	}

	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []Category{}
	}

	if s.cacheTTL > 0 {
		s.cache.Set(categories, s.cacheTTL)
	}
	return categories, nil
}

func (s *Service) CreateCategory(ctx context.Context, input SaveCategoryInput) (*Category, error) {
	label := strings.TrimSpace(input.Label)
	if label == "" {
		return nil, ErrLabelRequired
	}

	id := strings.TrimSpace(input.ID)
	if id == "" {
		id = CategoryIDFromLabel(label)
	}
	if id == "" || len(id) > 32 {
		return nil, ErrCategoryIDInvalid
	}

	var created Category
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		if _, err := tx.GetCategoryByID(ctx, id); err == nil {
			return ErrCategoryExists
		} else if !errors.Is(err, ErrCategoryNotFound) {
			return err
		}

		category, err := resolveCategory(ctx, tx, id, label, input.Color, input.IconName)
		if err != nil {
			return err
		}
		if err := tx.CreateCategory(ctx, &category); err != nil {
			return err
		}

		created = category
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate()
	return &created, nil
}

func (s *Service) UpdateCategory(ctx context.Context, input SaveCategoryInput) (*Category, error) {
	label := strings.TrimSpace(input.Label)
	if label == "" {
		return nil, ErrLabelRequired
	}

	var updated Category
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		existing, err := tx.GetCategoryByID(ctx, strings.TrimSpace(input.ID))
		if err != nil {
			return err
		}

		category, err := resolveCategory(ctx, tx, existing.ID, label, input.Color, input.IconName)
		if err != nil {
			return err
		}
		if err := tx.UpdateCategory(ctx, &category); err != nil {
			return err
		}

		updated = category
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate()
	return &updated, nil
}

// DeleteCategory refuses to remove a category that still has expenses.
// Use DeleteCategoryCascade to remove both.
func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	inUse, err := s.repo.CountExpensesByCategory(ctx, id)
	if err != nil {
		return err
	}
	if inUse > 0 {
		return ErrCategoryInUse
	}

	deleted, err := s.repo.DeleteCategory(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrCategoryNotFound
	}

	s.cache.Invalidate()
	return nil
}

func (s *Service) DeleteCategoryCascade(ctx context.Context, id string) (int64, error) {
	var removed int64
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		if _, err := tx.GetCategoryByID(ctx, id); err != nil {
			return err
		}

		count, err := tx.DeleteExpensesByCategory(ctx, id)
		if err != nil {
			return err
		}

		deleted, err := tx.DeleteCategory(ctx, id)
		if err != nil {
			return err
		}
		if !deleted {
			return ErrCategoryNotFound
		}

		removed = count
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.cache.Invalidate()
	return removed, nil
}

func (s *Service) ListIcons(ctx context.Context) ([]Icon, error) {
	icons, err := s.repo.ListIcons(ctx)
	if err != nil {
		return nil, err
	}
	if icons == nil {
		return []Icon{}, nil
	}
	return icons, nil
}

func (s *Service) AddIcon(ctx context.Context, name, label string) (*Icon, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrIconNameRequired
	}
	label = strings.TrimSpace(label)
	if label == "" {
		label = name
	}

	icon := Icon{Name: name, Label: label}
	if err := s.repo.EnsureIcon(ctx, icon); err != nil {
		return nil, err
	}
	return &icon, nil
}

func (s *Service) DeleteIcon(ctx context.Context, name string) error {
	deleted, err := s.repo.DeleteIcon(ctx, strings.TrimSpace(name))
	if err != nil {
		return err
	}
	if !deleted {
		return ErrIconNotFound
	}
	return nil
}

// SeedDefaults installs the palette, the default icons and the default
// categories when the account has no categories yet. It reports whether
// anything was seeded.
func (s *Service) SeedDefaults(ctx context.Context) (bool, error) {
	seeded := false
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		existing, err := tx.ListCategories(ctx)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return nil
		}

		if err := seedCategories(ctx, tx); err != nil {
			return err
		}
		seeded = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if seeded {
		s.cache.Invalidate()
	}
	return seeded, nil
}

// Reset deletes every expense and category and re-seeds the defaults.
func (s *Service) Reset(ctx context.Context) error {
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		if err := tx.DeleteAllExpenses(ctx); err != nil {
			return err
		}
		if err := tx.DeleteAllCategories(ctx); err != nil {
			return err
		}
		return seedCategories(ctx, tx)
	})
	s.cache.Invalidate()
	return err
}

func seedCategories(ctx context.Context, tx Repository) error {
	if err := tx.EnsurePalette(ctx, Palette); err != nil {
		return err
	}
	for _, category := range cloneDefaultCategories() {
		if err := tx.EnsureIcon(ctx, Icon{Name: category.IconName, Label: category.IconName}); err != nil {
			return err
		}
		if err := tx.CreateCategory(ctx, &category); err != nil {
			return err
		}
	}
	return nil
}

func resolveCategory(ctx context.Context, tx Repository, id, label, color, iconName string) (Category, error) {
	hex, err := normalizeColor(color)
	if err != nil {
		return Category{}, err
	}

	colorName := DefaultColorName
	if hex != "" {
		name, ok, err := tx.ColorNameByHex(ctx, hex)
		if err != nil {
			return Category{}, err
		}
		if ok {
			colorName = name
		}
	}
	if hex == "" || colorName == DefaultColorName {
		hex = paletteHex(colorName)
	}

	iconName = strings.TrimSpace(iconName)
	if iconName == "" {
		iconName = DefaultIconName
	}
	if err := tx.EnsureIcon(ctx, Icon{Name: iconName, Label: iconName}); err != nil {
		return Category{}, err
	}

	return Category{
		ID:        id,
		Label:     label,
		ColorName: colorName,
		Color:     hex,
		IconName:  iconName,
	}, nil
}

func normalizeExpense(title string, amount float64, date, categoryID string, note *string) (Expense, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Expense{}, ErrTitleRequired
	}
	date = strings.TrimSpace(date)
	if _, err := time.Parse(DateLayout, date); err != nil {
		return Expense{}, ErrInvalidDate
	}
	categoryID = strings.TrimSpace(categoryID)
	if categoryID == "" {
		return Expense{}, ErrCategoryRequired
	}

	var normalizedNote *string
	if note != nil {
		value := strings.TrimSpace(*note)
		if value != "" {
			normalizedNote = &value
		}
	}

	return Expense{
		Title:      title,
		Amount:     amount,
		Date:       date,
		CategoryID: categoryID,
		Note:       normalizedNote,
	}, nil
}

var colorRegex = regexp.MustCompile(`^#[0-9a-f]{6}$`)

func normalizeColor(value string) (string, error) {
	color := strings.ToLower(strings.TrimSpace(value))
	if color == "" {
		return "", nil
	}
	if !colorRegex.MatchString(color) {
		return "", ErrInvalidColor
	}
	return color, nil
}

func paletteHex(name string) string {
	for _, color := range Palette {
		if color.Name == name {
			return color.Hex
		}
	}
	return DefaultColorHex
}

var nonIDChars = regexp.MustCompile(`[^A-Z0-9]+`)

// CategoryIDFromLabel derives a stable identifier such as "EATING_OUT" from a
// display label.
func CategoryIDFromLabel(label string) string {
	id := nonIDChars.ReplaceAllString(strings.ToUpper(strings.TrimSpace(label)), "_")
	return strings.Trim(id, "_")
}
