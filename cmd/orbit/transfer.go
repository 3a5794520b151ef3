package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"orbit-expenses/internal/domain/csvio"
	"orbit-expenses/internal/domain/dashboard"
)

func (c *cli) importCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import expenses from a CSV file",
		Long: `Import expenses from a CSV file. Columns are matched by header keywords
(date, title, amount, category, note) and fall back to position when the
header is not recognised. Rows without a title or a numeric amount are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open %s: %w", args[0], err)
			}
			defer file.Close()

			application, err := c.openApp()
			if err != nil {
				return err
			}
			defer application.Close()

			ctx := cmd.Context()
			categories, err := application.Expenses().ListCategories(ctx)
			if err != nil {
				return fmt.Errorf("list categories: %w", err)
			}

			parsed, err := csvio.Parse(file, dashboard.NewDictionary(categories), time.Now())
			if err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}

			out := cmd.OutOrStdout()
			if dryRun {
				fmt.Fprintf(out, "%d rows ready to import, %d skipped\n", len(parsed.Rows), parsed.Skipped)
				return nil
			}

			bar := newImportBar(cmd.ErrOrStderr(), len(parsed.Rows))
			created, err := application.Expenses().ImportExpenses(ctx, parsed.Rows, func(done int) {
				_ = bar.Set(done)
			})
			if err != nil {
				return fmt.Errorf("import: %w", err)
			}

			c.log.Info("import: done", "file", args[0], "rows", len(created), "skipped", parsed.Skipped)
			fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("Imported %d expenses", len(created))),
				subtleStyle.Render(fmt.Sprintf("(%d skipped)", parsed.Skipped)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "parse the file without storing anything")
	return cmd
}

func newImportBar(w io.Writer, total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Importing expenses...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			_, _ = fmt.Fprintln(w)
		}),
	)
}

func (c *cli) exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [FILE]",
		Short: "Export all expenses as CSV",
		Long:  `Export all expenses as CSV to FILE, or to standard output when FILE is omitted.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := c.openApp()
			if err != nil {
				return err
			}
			defer application.Close()

			items, err := application.Expenses().ListExpenses(cmd.Context())
			if err != nil {
				return fmt.Errorf("list expenses: %w", err)
			}

			if len(args) == 0 {
				return csvio.Export(cmd.OutOrStdout(), items)
			}

			file, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("create %s: %w", args[0], err)
			}
			if err := csvio.Export(file, items); err != nil {
				_ = file.Close()
				return fmt.Errorf("write %s: %w", args[0], err)
			}
			if err := file.Close(); err != nil {
				return fmt.Errorf("close %s: %w", args[0], err)
			}

			fmt.Fprintln(cmd.ErrOrStderr(), successStyle.Render(fmt.Sprintf("Exported %d expenses to %s", len(items), args[0])))
			return nil
		},
	}
}
