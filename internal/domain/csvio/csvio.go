package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"orbit-expenses/internal/domain/dashboard"
	"orbit-expenses/internal/domain/expenses"
)

var ErrEmptyFile = errors.New("csv file has no data rows")

var (
	exportHeader   = []string{"ID", "Date", "Title", "Amount", "Category", "Note"}
	templateHeader = []string{"Date (YYYY-MM-DD)", "Title", "Amount", "Category Name", "Note"}
	templateRow    = []string{"2025-01-30", "Lunch", "12.50", "Food & Dining", "Business meal"}
)

// Export writes one row per expense in the order given.
func Export(w io.Writer, items []expenses.Expense) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeader); err != nil {
		return err
	}
	for _, expense := range items {
		note := ""
		if expense.Note != nil {
			note = *expense.Note
		}
		record := []string{
			strconv.FormatInt(expense.ID, 10),
			expense.Date,
			expense.Title,
			fmt.Sprintf("%.2f", expense.Amount),
			expense.CategoryID,
			note,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func Template(w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.WriteAll([][]string{templateHeader, templateRow}); err != nil {
		return err
	}
	return writer.Error()
}

type ParseResult struct {
	Rows    []expenses.CreateExpenseInput
	Skipped int
}

type columns struct {
	date, title, amount, category, note int
}

// Parse reads a loosely formatted CSV export from a bank or spreadsheet.
// Columns are found by header keywords, falling back to the export and
// template layouts. Rows without a title or a numeric amount are skipped.
// Unknown categories map to OTHER and unreadable dates to today.
func Parse(r io.Reader, dict dashboard.Dictionary, today time.Time) (ParseResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return ParseResult{}, fmt.Errorf("read csv: %w", err)
	}
	records = dropBlank(records)
	if len(records) < 2 {
		return ParseResult{}, ErrEmptyFile
	}

	cols := detectColumns(records[0])
	resolve := newCategoryResolver(dict)
	fallbackDate := today.Format(expenses.DateLayout)

	result := ParseResult{Rows: make([]expenses.CreateExpenseInput, 0, len(records)-1)}
	for _, record := range records[1:] {
		title := field(record, cols.title)
		rawAmount := field(record, cols.amount)
		if title == "" || rawAmount == "" {
			result.Skipped++
			continue
		}
		amount, ok := parseAmount(rawAmount)
		if !ok {
			result.Skipped++
			continue
		}

		row := expenses.CreateExpenseInput{
			Title:      title,
			Amount:     amount,
			Date:       parseDate(field(record, cols.date), fallbackDate),
			CategoryID: resolve(field(record, cols.category)),
		}
		if note := field(record, cols.note); note != "" {
			row.Note = &note
		}
		result.Rows = append(result.Rows, row)
	}
	return result, nil
}

func detectColumns(header []string) columns {
	normalized := make([]string, len(header))
	for i, h := range header {
		normalized[i] = strings.ToLower(strings.Trim(strings.TrimSpace(h), `"`))
	}

	find := func(keywords ...string) int {
		for i, h := range normalized {
			for _, keyword := range keywords {
				if strings.Contains(h, keyword) {
					return i
				}
			}
		}
		return -1
	}

	cols := columns{
		date:     find("date", "day", "time"),
		title:    find("title", "description", "name", "merchant"),
		amount:   find("amount", "price", "cost", "value"),
		category: find("category", "type"),
		note:     find("note", "details", "comment"),
	}
	if cols.title != -1 && cols.amount != -1 {
		return cols
	}

	offset := 0
	if len(normalized) > 0 && normalized[0] == "id" {
		offset = 1
	}
	return columns{date: offset, title: offset + 1, amount: offset + 2, category: offset + 3, note: offset + 4}
}

type categoryKey struct {
	key string
	id  string
}

func newCategoryResolver(dict dashboard.Dictionary) func(string) string {
	keys := make([]categoryKey, 0, dict.Len()*2)
	exact := make(map[string]string, dict.Len()*2)
	for _, category := range dict.Categories() {
		for _, key := range []string{strings.ToLower(category.Label), strings.ToLower(category.ID)} {
			if _, ok := exact[key]; !ok {
				keys = append(keys, categoryKey{key: key, id: category.ID})
			}
			exact[key] = category.ID
		}
	}

	return func(label string) string {
		search := strings.ToLower(strings.TrimSpace(label))
		if search == "" {
			return expenses.OtherCategoryID
		}
		if id, ok := exact[search]; ok {
			return id
		}
		for _, candidate := range keys {
			if strings.Contains(search, candidate.key) || strings.Contains(candidate.key, search) {
				return candidate.id
			}
		}
		return expenses.OtherCategoryID
	}
}

var nonNumeric = regexp.MustCompile(`[^0-9.\-]+`)

func parseAmount(raw string) (float64, bool) {
	cleaned := nonNumeric.ReplaceAllString(raw, "")
	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return amount, true
}

var dateLayouts = []string{
	expenses.DateLayout,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

func parseDate(raw, fallback string) string {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed.Format(expenses.DateLayout)
		}
	}
	return fallback
}

func field(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func dropBlank(records [][]string) [][]string {
	kept := records[:0]
	for _, record := range records {
		for _, value := range record {
			if strings.TrimSpace(value) != "" {
				kept = append(kept, record)
				break
			}
		}
	}
	return kept
}
