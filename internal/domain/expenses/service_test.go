package expenses

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"
)

type fakeExpensesRepo struct {
	nextID     int64
	expenses   map[int64]*Expense
	categories map[string]*Category
	order      []string
	icons      map[string]Icon
	palette    map[string]string
}

func newFakeExpensesRepo() *fakeExpensesRepo {
	return &fakeExpensesRepo{
		expenses:   make(map[int64]*Expense),
		categories: make(map[string]*Category),
		icons:      make(map[string]Icon),
		palette:    make(map[string]string),
	}
}

func (r *fakeExpensesRepo) Transaction(ctx context.Context, fn func(Repository) error) error {
	return fn(r)
}

func (r *fakeExpensesRepo) ListExpenses(ctx context.Context) ([]Expense, error) {
	items := make([]Expense, 0, len(r.expenses))
	for _, expense := range r.expenses {
		items = append(items, *expense)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Date != items[j].Date {
			return items[i].Date > items[j].Date
		}
		return items[i].ID > items[j].ID
	})
	return items, nil
}

func (r *fakeExpensesRepo) GetExpenseByID(ctx context.Context, id int64) (*Expense, error) {
	expense, ok := r.expenses[id]
	if !ok {
		return nil, ErrExpenseNotFound
	}
	copied := *expense
	return &copied, nil
}

func (r *fakeExpensesRepo) CreateExpense(ctx context.Context, expense *Expense) error {
	r.nextID++
	expense.ID = r.nextID
	copied := *expense
	r.expenses[expense.ID] = &copied
	return nil
}

func (r *fakeExpensesRepo) UpdateExpense(ctx context.Context, expense *Expense) error {
	if _, ok := r.expenses[expense.ID]; !ok {
		return ErrExpenseNotFound
	}
	copied := *expense
	r.expenses[expense.ID] = &copied
	return nil
}

func (r *fakeExpensesRepo) DeleteExpense(ctx context.Context, id int64) (bool, error) {
	if _, ok := r.expenses[id]; !ok {
		return false, nil
	}
	delete(r.expenses, id)
	return true, nil
}

func (r *fakeExpensesRepo) DeleteExpensesByCategory(ctx context.Context, categoryID string) (int64, error) {
	var removed int64
	for id, expense := range r.expenses {
		if expense.CategoryID == categoryID {
			delete(r.expenses, id)
			removed++
		}
	}
	return removed, nil
}

func (r *fakeExpensesRepo) DeleteAllExpenses(ctx context.Context) error {
	r.expenses = make(map[int64]*Expense)
	return nil
}

func (r *fakeExpensesRepo) CountExpensesByCategory(ctx context.Context, categoryID string) (int64, error) {
	var count int64
	for _, expense := range r.expenses {
		if expense.CategoryID == categoryID {
			count++
		}
	}
	return count, nil
}

func (r *fakeExpensesRepo) ListCategories(ctx context.Context) ([]Category, error) {
	items := make([]Category, 0, len(r.order))
	for _, id := range r.order {
		items = append(items, *r.categories[id])
	}
	return items, nil
}

func (r *fakeExpensesRepo) GetCategoryByID(ctx context.Context, id string) (*Category, error) {
	category, ok := r.categories[id]
	if !ok {
		return nil, ErrCategoryNotFound
	}
	copied := *category
	return &copied, nil
}

func (r *fakeExpensesRepo) CreateCategory(ctx context.Context, category *Category) error {
	copied := *category
	r.categories[category.ID] = &copied
	r.order = append(r.order, category.ID)
	return nil
}

func (r *fakeExpensesRepo) UpdateCategory(ctx context.Context, category *Category) error {
	if _, ok := r.categories[category.ID]; !ok {
		return ErrCategoryNotFound
	}
	copied := *category
	r.categories[category.ID] = &copied
	return nil
}

func (r *fakeExpensesRepo) DeleteCategory(ctx context.Context, id string) (bool, error) {
	if _, ok := r.categories[id]; !ok {
		return false, nil
	}
	delete(r.categories, id)
	order := r.order[:0]
	for _, existing := range r.order {
		if existing != id {
			order = append(order, existing)
		}
	}
	r.order = order
	return true, nil
}

func (r *fakeExpensesRepo) DeleteAllCategories(ctx context.Context) error {
	r.categories = make(map[string]*Category)
	r.order = nil
	return nil
}

func (r *fakeExpensesRepo) ColorNameByHex(ctx context.Context, hex string) (string, bool, error) {
	for name, value := range r.palette {
		if strings.EqualFold(value, hex) {
			return name, true, nil
		}
	}
	return "", false, nil
}

func (r *fakeExpensesRepo) EnsurePalette(ctx context.Context, colors []PaletteColor) error {
	for _, color := range colors {
		r.palette[color.Name] = color.Hex
	}
	return nil
}

func (r *fakeExpensesRepo) ListIcons(ctx context.Context) ([]Icon, error) {
	items := make([]Icon, 0, len(r.icons))
	for _, icon := range r.icons {
		items = append(items, icon)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

func (r *fakeExpensesRepo) EnsureIcon(ctx context.Context, icon Icon) error {
	if _, ok := r.icons[icon.Name]; !ok {
		r.icons[icon.Name] = icon
	}
	return nil
}

func (r *fakeExpensesRepo) DeleteIcon(ctx context.Context, name string) (bool, error) {
	if _, ok := r.icons[name]; !ok {
		return false, nil
	}
	delete(r.icons, name)
	return true, nil
}

type countingCache struct {
	items       []Category
	ok          bool
	sets        int
	invalidates int
}

func (c *countingCache) Get() ([]Category, bool) {
	return c.items, c.ok
}

func (c *countingCache) Set(categories []Category, ttl time.Duration) {
	c.items = categories
	c.ok = true
	c.sets++
}

func (c *countingCache) Invalidate() {
	c.items = nil
	c.ok = false
	c.invalidates++
}

func TestCreateExpenseNormalizesInput(t *testing.T) {
	repo := newFakeExpensesRepo()
	svc := NewService(repo)

	blank := "   "
	created, err := svc.CreateExpense(context.Background(), CreateExpenseInput{
		Title:      "  Groceries ",
		Amount:     42.5,
		Date:       "2025-03-05",
		CategoryID: " FOOD ",
		Note:       &blank,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("expected assigned id")
	}
	if created.Title != "Groceries" || created.CategoryID != "FOOD" {
		t.Fatalf("expected trimmed fields, got %+v", created)
	}
	if created.Note != nil {
		t.Fatalf("expected blank note to be dropped, got %q", *created.Note)
	}
}

func TestCreateExpenseValidation(t *testing.T) {
	svc := NewService(newFakeExpensesRepo())

	cases := []struct {
		name  string
		input CreateExpenseInput
		want  error
	}{
		{"missing title", CreateExpenseInput{Date: "2025-03-05", CategoryID: "FOOD"}, ErrTitleRequired},
		{"bad date", CreateExpenseInput{Title: "x", Date: "05/03/2025", CategoryID: "FOOD"}, ErrInvalidDate},
		{"missing category", CreateExpenseInput{Title: "x", Date: "2025-03-05"}, ErrCategoryRequired},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateExpense(context.Background(), tc.input)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestUpdateExpenseNotFound(t *testing.T) {
	svc := NewService(newFakeExpensesRepo())

	_, err := svc.UpdateExpense(context.Background(), UpdateExpenseInput{
		ID:         99,
		Title:      "Taxi",
		Amount:     12,
		Date:       "2025-03-05",
		CategoryID: "TRANSPORT",
	})
	if !errors.Is(err, ErrExpenseNotFound) {
		t.Fatalf("expected ErrExpenseNotFound, got %v", err)
	}
}

func TestUpdateExpenseReplacesFields(t *testing.T) {
	repo := newFakeExpensesRepo()
	svc := NewService(repo)

	created, err := svc.CreateExpense(context.Background(), CreateExpenseInput{
		Title: "Taxi", Amount: 12, Date: "2025-03-05", CategoryID: "TRANSPORT",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := svc.UpdateExpense(context.Background(), UpdateExpenseInput{
		ID: created.ID, Title: "Train", Amount: 30, Date: "2025-03-06", CategoryID: "TRANSPORT",
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.ID != created.ID || updated.Title != "Train" || updated.Amount != 30 {
		t.Fatalf("unexpected update result: %+v", updated)
	}
	if repo.expenses[created.ID].Date != "2025-03-06" {
		t.Fatalf("expected stored date to change, got %s", repo.expenses[created.ID].Date)
	}
}

func TestDeleteExpenseNotFound(t *testing.T) {
	svc := NewService(newFakeExpensesRepo())

	if err := svc.DeleteExpense(context.Background(), 7); !errors.Is(err, ErrExpenseNotFound) {
		t.Fatalf("expected ErrExpenseNotFound, got %v", err)
	}
}

func TestCreateCategoryDerivesIDAndResolvesColor(t *testing.T) {
	repo := newFakeExpensesRepo()
	_ = repo.EnsurePalette(context.Background(), Palette)
	svc := NewService(repo)

	created, err := svc.CreateCategory(context.Background(), SaveCategoryInput{
		Label: "Eating out!",
		Color: "#EC4899",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if created.ID != "EATING_OUT" {
		t.Fatalf("expected derived id EATING_OUT, got %s", created.ID)
	}
	if created.ColorName != "Pink" || created.Color != "#ec4899" {
		t.Fatalf("expected Pink #ec4899, got %s %s", created.ColorName, created.Color)
	}
	if created.IconName != DefaultIconName {
		t.Fatalf("expected default icon, got %s", created.IconName)
	}
	if _, ok := repo.icons[DefaultIconName]; !ok {
		t.Fatalf("expected icon to be ensured in registry")
	}
}

func TestCreateCategoryUnknownColorFallsBackToBlue(t *testing.T) {
	repo := newFakeExpensesRepo()
	_ = repo.EnsurePalette(context.Background(), Palette)
	svc := NewService(repo)

	created, err := svc.CreateCategory(context.Background(), SaveCategoryInput{
		Label: "Gym",
		Color: "#123456",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if created.ColorName != DefaultColorName || created.Color != "#3b82f6" {
		t.Fatalf("expected Blue fallback, got %s %s", created.ColorName, created.Color)
	}
}

func TestCreateCategoryRejectsDuplicatesAndBadColor(t *testing.T) {
	repo := newFakeExpensesRepo()
	svc := NewService(repo)

	if _, err := svc.CreateCategory(context.Background(), SaveCategoryInput{Label: "Gym"}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := svc.CreateCategory(context.Background(), SaveCategoryInput{Label: "gym"}); !errors.Is(err, ErrCategoryExists) {
		t.Fatalf("expected ErrCategoryExists, got %v", err)
	}
	if _, err := svc.CreateCategory(context.Background(), SaveCategoryInput{Label: "Pets", Color: "red"}); !errors.Is(err, ErrInvalidColor) {
		t.Fatalf("expected ErrInvalidColor, got %v", err)
	}
	if _, err := svc.CreateCategory(context.Background(), SaveCategoryInput{Label: "!!!"}); !errors.Is(err, ErrCategoryIDInvalid) {
		t.Fatalf("expected ErrCategoryIDInvalid, got %v", err)
	}
}

func TestDeleteCategoryInUse(t *testing.T) {
	repo := newFakeExpensesRepo()
	svc := NewService(repo)
	ctx := context.Background()

	if _, err := svc.CreateCategory(ctx, SaveCategoryInput{ID: "FOOD", Label: "Food"}); err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	if _, err := svc.CreateExpense(ctx, CreateExpenseInput{Title: "Lunch", Amount: 9, Date: "2025-03-05", CategoryID: "FOOD"}); err != nil {
		t.Fatalf("create expense failed: %v", err)
	}

	if err := svc.DeleteCategory(ctx, "FOOD"); !errors.Is(err, ErrCategoryInUse) {
		t.Fatalf("expected ErrCategoryInUse, got %v", err)
	}

	removed, err := svc.DeleteCategoryCascade(ctx, "FOOD")
	if err != nil {
		t.Fatalf("cascade failed: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 expense removed, got %d", removed)
	}
	if len(repo.expenses) != 0 || len(repo.categories) != 0 {
		t.Fatalf("expected empty repo after cascade, got %d expenses %d categories", len(repo.expenses), len(repo.categories))
	}
}

func TestDeleteCategoryCascadeNotFound(t *testing.T) {
	svc := NewService(newFakeExpensesRepo())

	if _, err := svc.DeleteCategoryCascade(context.Background(), "GHOST"); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestListCategoriesUsesCacheAndInvalidatesOnWrite(t *testing.T) {
	repo := newFakeExpensesRepo()
	cache := &countingCache{}
	svc := NewServiceWithCache(repo, cache, time.Minute)
	ctx := context.Background()

	if _, err := svc.ListCategories(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if cache.sets != 1 {
		t.Fatalf("expected cache fill, got %d sets", cache.sets)
	}

	repo.categories["X"] = &Category{ID: "X", Label: "X"}
	repo.order = append(repo.order, "X")

	cached, err := svc.ListCategories(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(cached) != 0 {
		t.Fatalf("expected cached empty list, got %+v", cached)
	}

	if _, err := svc.CreateCategory(ctx, SaveCategoryInput{Label: "Gym"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if cache.invalidates != 1 {
		t.Fatalf("expected cache invalidation on create, got %d", cache.invalidates)
	}

	fresh, err := svc.ListCategories(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(fresh) != 2 {
		t.Fatalf("expected fresh list of 2, got %+v", fresh)
	}
}

func TestSeedDefaultsOnlyWhenEmpty(t *testing.T) {
	repo := newFakeExpensesRepo()
	svc := NewService(repo)
	ctx := context.Background()

	seeded, err := svc.SeedDefaults(ctx)
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if !seeded {
		t.Fatalf("expected seeding on empty account")
	}
	if len(repo.order) != len(DefaultCategories) {
		t.Fatalf("expected %d categories, got %d", len(DefaultCategories), len(repo.order))
	}
	if repo.order[0] != "FOOD" || repo.order[len(repo.order)-1] != OtherCategoryID {
		t.Fatalf("expected default order, got %v", repo.order)
	}
	if len(repo.palette) != len(Palette) {
		t.Fatalf("expected palette to be seeded, got %d colors", len(repo.palette))
	}

	seeded, err = svc.SeedDefaults(ctx)
	if err != nil {
		t.Fatalf("second seed failed: %v", err)
	}
	if seeded {
		t.Fatalf("expected no seeding on populated account")
	}
}

func TestResetRemovesEverythingAndReseeds(t *testing.T) {
	repo := newFakeExpensesRepo()
	svc := NewService(repo)
	ctx := context.Background()

	if _, err := svc.CreateCategory(ctx, SaveCategoryInput{ID: "PETS", Label: "Pets"}); err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	if _, err := svc.CreateExpense(ctx, CreateExpenseInput{Title: "Vet", Amount: 80, Date: "2025-03-05", CategoryID: "PETS"}); err != nil {
		t.Fatalf("create expense failed: %v", err)
	}

	if err := svc.Reset(ctx); err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	if len(repo.expenses) != 0 {
		t.Fatalf("expected no expenses after reset, got %d", len(repo.expenses))
	}
	if _, ok := repo.categories["PETS"]; ok {
		t.Fatalf("expected custom category to be removed")
	}
	if len(repo.categories) != len(DefaultCategories) {
		t.Fatalf("expected defaults after reset, got %d", len(repo.categories))
	}
}

func TestCategoryIDFromLabel(t *testing.T) {
	cases := map[string]string{
		"Food & Dining":   "FOOD_DINING",
		"  subscriptions": "SUBSCRIPTIONS",
		"--Kids 2--":      "KIDS_2",
		"":                "",
	}
	for label, want := range cases {
		if got := CategoryIDFromLabel(label); got != want {
			t.Fatalf("CategoryIDFromLabel(%q): expected %q, got %q", label, want, got)
		}
	}
}

func TestImportExpensesIsAllOrNothing(t *testing.T) {
	repo := newFakeExpensesRepo()
	svc := NewService(repo)

	_, err := svc.ImportExpenses(context.Background(), []CreateExpenseInput{
		{Title: "Lunch", Amount: 12, Date: "2025-03-05", CategoryID: "FOOD"},
		{Title: "", Amount: 3, Date: "2025-03-05", CategoryID: "FOOD"},
	}, nil)
	if !errors.Is(err, ErrTitleRequired) {
		t.Fatalf("expected ErrTitleRequired, got %v", err)
	}
	if len(repo.expenses) != 0 {
		t.Fatalf("expected nothing stored, got %d", len(repo.expenses))
	}

	var seen []int
	created, err := svc.ImportExpenses(context.Background(), []CreateExpenseInput{
		{Title: "Lunch", Amount: 12, Date: "2025-03-05", CategoryID: "FOOD"},
		{Title: "Bus", Amount: 3, Date: "2025-03-06", CategoryID: "TRANSPORT"},
	}, func(done int) { seen = append(seen, done) })
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if len(created) != 2 || created[0].ID == 0 || created[1].ID == 0 {
		t.Fatalf("expected two stored expenses with ids, got %+v", created)
	}
	if len(seen) != 2 || seen[1] != 2 {
		t.Fatalf("expected progress 1,2 got %v", seen)
	}
}
