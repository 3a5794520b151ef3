package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"orbit-expenses/internal/domain/dashboard"
	"orbit-expenses/internal/domain/expenses"
)

type addOptions struct {
	title    string
	amount   float64
	date     string
	category string
	note     string
}

func (c *cli) addCmd() *cobra.Command {
	var opts addOptions

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an expense and print its month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			application, err := c.openApp()
			if err != nil {
				return err
			}
			defer application.Close()

			state, err := application.Dashboard().Load(cmd.Context())
			if err != nil {
				return err
			}

			expense, err := opts.expense(state.Categories, time.Now())
			if err != nil {
				return err
			}
			anchor, err := dashboard.ParseAnchor(expense.Date, time.Now())
			if err != nil {
				return err
			}

			session := dashboard.NewSession(state)
			session.Dispatch(dashboard.SetScope{Scope: dashboard.PeriodScope{Anchor: anchor, Kind: dashboard.ScopeMonth}})

			saved, err := session.Save(cmd.Context(), expense, func(ctx context.Context, pending expenses.Expense) (expenses.Expense, error) {
				created, err := application.Expenses().CreateExpense(ctx, expenses.CreateExpenseInput{
					Title:      pending.Title,
					Amount:     pending.Amount,
					Date:       pending.Date,
					CategoryID: pending.CategoryID,
					Note:       pending.Note,
				})
				if err != nil {
					return expenses.Expense{}, err
				}
				return *created, nil
			})
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), errorStyle.Render("Expense not saved."))
				return fmt.Errorf("add expense: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("Saved #%d %s (%s)", saved.ID, saved.Title, formatAmount(saved.Amount))))
			fmt.Fprintln(out)
			overview := dashboard.BuildOverview(session.Snapshot(), dashboard.SortByDate, dashboard.SortDesc)
			return renderSummary(out, overview, 5)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.title, "title", "", "expense title")
	flags.Float64Var(&opts.amount, "amount", 0, "amount spent")
	flags.StringVar(&opts.date, "date", "", "date as YYYY-MM-DD (default today)")
	flags.StringVar(&opts.category, "category", "", "category id or label")
	flags.StringVar(&opts.note, "note", "", "optional note")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

// expense resolves the category by id or label and fills the default date.
func (o addOptions) expense(categories []expenses.Category, now time.Time) (expenses.Expense, error) {
	categoryID, ok := resolveCategory(categories, o.category)
	if !ok {
		return expenses.Expense{}, fmt.Errorf("%w: %q", expenses.ErrCategoryNotFound, o.category)
	}

	date := strings.TrimSpace(o.date)
	if date == "" {
		date = now.Format(expenses.DateLayout)
	}

	expense := expenses.Expense{
		Title:      o.title,
		Amount:     o.amount,
		Date:       date,
		CategoryID: categoryID,
	}
	if note := strings.TrimSpace(o.note); note != "" {
		expense.Note = &note
	}
	return expense, nil
}

func resolveCategory(categories []expenses.Category, value string) (string, bool) {
	value = strings.TrimSpace(value)
	dict := dashboard.NewDictionary(categories)
	if category, ok := dict.Lookup(strings.ToUpper(value)); ok {
		return category.ID, true
	}
	for _, category := range categories {
		if strings.EqualFold(category.Label, value) {
			return category.ID, true
		}
	}
	return "", false
}
