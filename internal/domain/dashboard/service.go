package dashboard

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"orbit-expenses/internal/domain/expenses"
	"orbit-expenses/pkg/logger"
)

// Source supplies the expense collection and category dictionary.
type Source interface {
	ListExpenses(ctx context.Context) ([]expenses.Expense, error)
	ListCategories(ctx context.Context) ([]expenses.Category, error)
}

type Query struct {
	Scope     PeriodScope
	Filters   ScopeFilters
	Sort      SortField
	Direction SortDirection
}

type Overview struct {
	Result
	ScopeLabel string              `json:"scope_label"`
	Selected   []string            `json:"selected"`
	Categories []expenses.Category `json:"categories"`
	Usage      map[string]int      `json:"usage"`
}

type Service struct {
	source Source
	log    logger.Logger
	now    func() time.Time
}

func NewService(source Source, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		source: source,
		log:    log,
		now:    time.Now,
	}
}

// Load fetches expenses and categories concurrently.
func (s *Service) Load(ctx context.Context) (State, error) {
	var (
		items      []expenses.Expense
		categories []expenses.Category
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		items, err = s.source.ListExpenses(groupCtx)
		if err != nil {
			return fmt.Errorf("list expenses: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		var err error
		categories, err = s.source.ListCategories(groupCtx)
		if err != nil {
			return fmt.Errorf("list categories: %w", err)
		}
		return nil
	})
	if err := group.Wait(); err != nil {
		s.log.InternalError("dashboard.load: fetch failed", err)
		return State{}, err
	}

	s.log.Debug("dashboard.load: fetched", "expenses", len(items), "categories", len(categories))
	return State{Expenses: items, Categories: categories}, nil
}

// Overview loads fresh data and computes the dashboard for query. The display
// set is ordered by the query's sort settings.
func (s *Service) Overview(ctx context.Context, query Query) (Overview, error) {
	state, err := s.Load(ctx)
	if err != nil {
		return Overview{}, err
	}
	if query.Scope.Anchor.IsZero() {
		query.Scope.Anchor = dayStart(s.now())
	}
	if query.Scope.Kind == "" {
		query.Scope.Kind = ScopeMonth
	}
	state.Scope = query.Scope
	state.Filters = query.Filters

	return BuildOverview(state, query.Sort, query.Direction), nil
}

// BuildOverview computes the dashboard for an already loaded state.
func BuildOverview(state State, field SortField, direction SortDirection) Overview {
	result := Compute(state.Input())
	dict := NewDictionary(state.Categories)
	result.DisplaySet = SortExpenses(result.DisplaySet, field, direction, dict)

	return Overview{
		Result:     result,
		ScopeLabel: state.Scope.Label(),
		Selected:   append([]string{}, state.Filters.SelectedCategoryIDs...),
		Categories: dict.Categories(),
		Usage:      CategoryUsage(state.Expenses),
	}
}
