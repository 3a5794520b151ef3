package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"orbit-expenses/internal/domain/dashboard"
)

type summaryOptions struct {
	scope      string
	anchor     string
	shift      int
	categories []string
	title      string
	min        string
	max        string
	from       string
	to         string
	sort       string
	dir        string
	limit      int
}

func (c *cli) summaryCmd() *cobra.Command {
	var opts summaryOptions

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the dashboard for a period",
		Long: `Print category totals, the monthly trend and the matching expenses for a
month, a year or all time. Each --category flag toggles that category in the
selection, so repeating a category removes it again.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			actions, err := opts.actions(time.Now())
			if err != nil {
				return err
			}
			field, err := dashboard.ParseSortField(opts.sort)
			if err != nil {
				return err
			}
			direction, err := dashboard.ParseSortDirection(opts.dir)
			if err != nil {
				return err
			}

			application, err := c.openApp()
			if err != nil {
				return err
			}
			defer application.Close()

			state, err := application.Dashboard().Load(cmd.Context())
			if err != nil {
				return err
			}

			session := dashboard.NewSession(state)
			session.Dispatch(actions...)
			overview := dashboard.BuildOverview(session.Snapshot(), field, direction)

			return renderSummary(cmd.OutOrStdout(), overview, opts.limit)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.scope, "scope", "MONTH", "period kind (MONTH, YEAR, ALL)")
	flags.StringVar(&opts.anchor, "anchor", "", "period anchor as YYYY-MM-DD, YYYY-MM or YYYY (default today)")
	flags.IntVar(&opts.shift, "shift", 0, "move the period by this many months or years")
	flags.StringArrayVar(&opts.categories, "category", nil, "toggle a category id in the selection (repeatable)")
	flags.StringVar(&opts.title, "title", "", "case-insensitive title substring")
	flags.StringVar(&opts.min, "min", "", "minimum amount")
	flags.StringVar(&opts.max, "max", "", "maximum amount")
	flags.StringVar(&opts.from, "from", "", "first date YYYY-MM-DD")
	flags.StringVar(&opts.to, "to", "", "last date YYYY-MM-DD")
	flags.StringVar(&opts.sort, "sort", "date", "sort expenses by date, amount, title or category")
	flags.StringVar(&opts.dir, "dir", "desc", "sort direction (asc, desc)")
	flags.IntVar(&opts.limit, "limit", 20, "maximum expenses to list (0 for all)")

	return cmd
}

// actions turns the flags into the dashboard actions a user would have
// performed by hand.
func (o summaryOptions) actions(now time.Time) ([]dashboard.Action, error) {
	kind, err := dashboard.ParseScopeKind(o.scope)
	if err != nil {
		return nil, err
	}
	anchor, err := dashboard.ParseAnchor(o.anchor, now)
	if err != nil {
		return nil, err
	}

	actions := []dashboard.Action{
		dashboard.SetScope{Scope: dashboard.PeriodScope{Anchor: anchor, Kind: kind}},
		dashboard.SetFilters{Filters: dashboard.ScopeFilters{
			Title:     o.title,
			DateStart: o.from,
			DateEnd:   o.to,
			AmountMin: o.min,
			AmountMax: o.max,
		}},
	}
	if o.shift != 0 {
		actions = append(actions, dashboard.ShiftPeriod{Step: o.shift})
	}
	for _, id := range o.categories {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		actions = append(actions, dashboard.ToggleCategory{CategoryID: id})
	}
	return actions, nil
}

func renderSummary(w io.Writer, overview dashboard.Overview, limit int) error {
	fmt.Fprintln(w, titleStyle.Render(overview.ScopeLabel))
	fmt.Fprintf(w, "%s %s\n\n", subtleStyle.Render("Total spent:"), totalStyle.Render(formatAmount(overview.TotalSpent)))

	if len(overview.BaseSet) == 0 {
		fmt.Fprintln(w, subtleStyle.Render("No expenses in this period."))
		return nil
	}

	selected := make(map[string]bool, len(overview.Selected))
	for _, id := range overview.Selected {
		selected[id] = true
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\n", headerStyle.Render("Category"), headerStyle.Render("Amount"), headerStyle.Render("Share"))
	for _, point := range overview.ChartData {
		label := point.Label
		if selected[point.CategoryID] {
			label = selectedStyle.Render(label)
		}
		fmt.Fprintf(tw, "%s %s\t%s\t%5.1f%%\n", swatch(point.Color), label, formatAmount(point.Value), point.Share*100)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(overview.DisplayTimeSeries) > 1 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, headerStyle.Render("Monthly trend"))
		tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, bucket := range dashboard.FillMonthGaps(overview.DisplayTimeSeries) {
			fmt.Fprintf(tw, "%s\t%s\n", bucket.MonthKey, formatAmount(bucket.Total))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("Expenses (%d)", len(overview.DisplaySet))))
	labels := make(map[string]string, len(overview.Categories))
	for _, category := range overview.Categories {
		labels[category.ID] = category.Label
	}

	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i, expense := range overview.DisplaySet {
		if limit > 0 && i == limit {
			fmt.Fprintf(tw, "%s\n", subtleStyle.Render(fmt.Sprintf("... %d more", len(overview.DisplaySet)-limit)))
			break
		}
		label, ok := labels[expense.CategoryID]
		if !ok {
			label = expense.CategoryID
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", expense.Date, expense.Title, label, formatAmount(expense.Amount))
	}
	return tw.Flush()
}

func formatAmount(value float64) string {
	return fmt.Sprintf("$%.2f", value)
}
