package dashboard

import (
	"context"
	"sync"

	"orbit-expenses/internal/domain/expenses"
)

// State is everything the dashboard is computed from.
type State struct {
	Expenses   []expenses.Expense
	Categories []expenses.Category
	Scope      PeriodScope
	Filters    ScopeFilters
}

func (s State) Input() Input {
	return Input{
		Expenses:   s.Expenses,
		Categories: s.Categories,
		Scope:      s.Scope,
		Filters:    s.Filters,
	}
}

// Action is a state transition applied by Reduce.
type Action interface {
	isAction()
}

type ToggleCategory struct {
	CategoryID string
}

type ClearSelection struct{}

// SetFilters replaces every filter except the category selection, which only
// changes through ToggleCategory and ClearSelection.
type SetFilters struct {
	Filters ScopeFilters
}

type SetScope struct {
	Scope PeriodScope
}

type ShiftPeriod struct {
	Step int
}

type ReplaceData struct {
	Expenses   []expenses.Expense
	Categories []expenses.Category
}

// UpsertExpense replaces the expense with the same ID or prepends it.
type UpsertExpense struct {
	Expense expenses.Expense
}

type RemoveExpense struct {
	ID int64
}

func (ToggleCategory) isAction() {}
func (ClearSelection) isAction() {}
func (SetFilters) isAction()     {}
func (SetScope) isAction()       {}
func (ShiftPeriod) isAction()    {}
func (ReplaceData) isAction()    {}
func (UpsertExpense) isAction()  {}
func (RemoveExpense) isAction()  {}

// Reduce returns the state after applying action. The given state is never
// modified.
func Reduce(state State, action Action) State {
	next := cloneState(state)

	switch a := action.(type) {
	case ToggleCategory:
		next.Filters.SelectedCategoryIDs = Toggle(next.Filters.SelectedCategoryIDs, a.CategoryID)
	case ClearSelection:
		next.Filters.SelectedCategoryIDs = []string{}
	case SetFilters:
		selected := next.Filters.SelectedCategoryIDs
		next.Filters = cloneFilters(a.Filters)
		next.Filters.SelectedCategoryIDs = selected
	case SetScope:
		next.Scope = a.Scope
	case ShiftPeriod:
		next.Scope = next.Scope.Shift(a.Step)
	case ReplaceData:
		next.Expenses = append([]expenses.Expense(nil), a.Expenses...)
		next.Categories = append([]expenses.Category(nil), a.Categories...)
	case UpsertExpense:
		next.Expenses = upsertExpense(next.Expenses, a.Expense)
	case RemoveExpense:
		next.Expenses = removeExpense(next.Expenses, a.ID)
	}

	return next
}

// Session is the mutable holder of dashboard state. Reads work on a snapshot
// so a concurrent Dispatch is never observed halfway.
type Session struct {
	mu     sync.RWMutex
	state  State
	tempID int64
}

func NewSession(state State) *Session {
	return &Session{state: cloneState(state)}
}

func (s *Session) Dispatch(actions ...Action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, action := range actions {
		s.state = Reduce(s.state, action)
	}
}

func (s *Session) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneState(s.state)
}

func (s *Session) View() Result {
	return Compute(s.Snapshot().Input())
}

// AddPending inserts an unsaved expense under a temporary negative ID and
// returns that ID.
func (s *Session) AddPending(expense expenses.Expense) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tempID--
	expense.ID = s.tempID
	s.state = Reduce(s.state, UpsertExpense{Expense: expense})
	return expense.ID
}

// Confirm swaps the pending expense for the stored one.
func (s *Session) Confirm(tempID int64, saved expenses.Expense) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, expense := range s.state.Expenses {
		if expense.ID == tempID {
			next := cloneState(s.state)
			next.Expenses[i] = saved
			s.state = next
			return
		}
	}
	s.state = Reduce(s.state, UpsertExpense{Expense: saved})
}

func (s *Session) Rollback(tempID int64) {
	s.Dispatch(RemoveExpense{ID: tempID})
}

// StoreFunc persists an expense and returns the stored copy.
type StoreFunc func(ctx context.Context, expense expenses.Expense) (expenses.Expense, error)

// Save writes expense optimistically: it is visible in the session under a
// temporary ID while store runs, then replaced by the stored copy or removed
// if store fails.
func (s *Session) Save(ctx context.Context, expense expenses.Expense, store StoreFunc) (expenses.Expense, error) {
	tempID := s.AddPending(expense)

	saved, err := store(ctx, expense)
	if err != nil {
		s.Rollback(tempID)
		return expenses.Expense{}, err
	}
	s.Confirm(tempID, saved)
	return saved, nil
}

func upsertExpense(items []expenses.Expense, expense expenses.Expense) []expenses.Expense {
	for i, existing := range items {
		if existing.ID == expense.ID {
			items[i] = expense
			return items
		}
	}
	return append([]expenses.Expense{expense}, items...)
}

func removeExpense(items []expenses.Expense, id int64) []expenses.Expense {
	kept := items[:0]
	for _, expense := range items {
		if expense.ID != id {
			kept = append(kept, expense)
		}
	}
	return kept
}

func cloneState(state State) State {
	return State{
		Expenses:   append([]expenses.Expense(nil), state.Expenses...),
		Categories: append([]expenses.Category(nil), state.Categories...),
		Scope:      state.Scope,
		Filters:    cloneFilters(state.Filters),
	}
}
