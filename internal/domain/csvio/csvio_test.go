package csvio

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orbit-expenses/internal/domain/dashboard"
	"orbit-expenses/internal/domain/expenses"
)

var today = time.Date(2025, time.March, 20, 0, 0, 0, 0, time.UTC)

func testDictionary() dashboard.Dictionary {
	return dashboard.NewDictionary(expenses.DefaultCategories)
}

func TestExport(t *testing.T) {
	note := `said "hi"`
	var buf bytes.Buffer

	err := Export(&buf, []expenses.Expense{
		{ID: 7, Title: "Lunch, team", Amount: 12.5, Date: "2025-03-05", CategoryID: "FOOD", Note: &note},
		{ID: 8, Title: "Bus", Amount: 2, Date: "2025-03-06", CategoryID: "TRANSPORT"},
	})
	require.NoError(t, err)

	want := "ID,Date,Title,Amount,Category,Note\n" +
		"7,2025-03-05,\"Lunch, team\",12.50,FOOD,\"said \"\"hi\"\"\"\n" +
		"8,2025-03-06,Bus,2.00,TRANSPORT,\n"
	assert.Equal(t, want, buf.String())
}

func TestExportRoundTripsThroughParse(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, []expenses.Expense{
		{ID: 1, Title: "Rent", Amount: 1200, Date: "2025-03-01", CategoryID: "HOUSING"},
	}))

	result, err := Parse(&buf, testDictionary(), today)
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, "Rent", result.Rows[0].Title)
	assert.Equal(t, 1200.0, result.Rows[0].Amount)
	assert.Equal(t, "2025-03-01", result.Rows[0].Date)
	assert.Equal(t, "HOUSING", result.Rows[0].CategoryID)
	assert.Nil(t, result.Rows[0].Note)
}

func TestTemplateParses(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Template(&buf))

	result, err := Parse(&buf, testDictionary(), today)
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)
	row := result.Rows[0]
	assert.Equal(t, "Lunch", row.Title)
	assert.Equal(t, 12.5, row.Amount)
	assert.Equal(t, "FOOD", row.CategoryID)
	require.NotNil(t, row.Note)
	assert.Equal(t, "Business meal", *row.Note)
}

func TestParseHeaderKeywords(t *testing.T) {
	input := "Merchant,Notes,Spent Value,Day,Type\n" +
		"Corner Shop,milk,$4.20,2025-02-11,food\n" +
		"Cinema,,€ 11.00,2025-02-12,Entertainment\n"

	result, err := Parse(strings.NewReader(input), testDictionary(), today)
	require.NoError(t, err)
	require.Len(t, result.Rows, 2)

	assert.Equal(t, "Corner Shop", result.Rows[0].Title)
	assert.Equal(t, 4.2, result.Rows[0].Amount)
	assert.Equal(t, "2025-02-11", result.Rows[0].Date)
	assert.Equal(t, "FOOD", result.Rows[0].CategoryID)
	require.NotNil(t, result.Rows[0].Note)
	assert.Equal(t, "milk", *result.Rows[0].Note)

	assert.Equal(t, 11.0, result.Rows[1].Amount)
	assert.Equal(t, "ENTERTAINMENT", result.Rows[1].CategoryID)
	assert.Nil(t, result.Rows[1].Note)
}

func TestParsePositionalFallback(t *testing.T) {
	input := "a,b,c,d,e\n2025-01-02,Taxi,15,Transport,late\n"

	result, err := Parse(strings.NewReader(input), testDictionary(), today)
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, "Taxi", result.Rows[0].Title)
	assert.Equal(t, 15.0, result.Rows[0].Amount)
	assert.Equal(t, "TRANSPORT", result.Rows[0].CategoryID)
}

func TestParsePositionalFallbackWithIDColumn(t *testing.T) {
	input := "id,x,y,z,w,v\n99,2025-01-02,Pharmacy,8.5,health,\n"

	result, err := Parse(strings.NewReader(input), testDictionary(), today)
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, "Pharmacy", result.Rows[0].Title)
	assert.Equal(t, 8.5, result.Rows[0].Amount)
	assert.Equal(t, "HEALTH", result.Rows[0].CategoryID)
}

func TestParseSkipsBadRowsAndDefaults(t *testing.T) {
	input := "Date,Title,Amount,Category\n" +
		"2025-01-02,,10,Food\n" +
		"2025-01-02,Nothing,,Food\n" +
		"2025-01-02,Words,abc,Food\n" +
		"\n" +
		"someday,Gift,30,Presents\n" +
		"03/04/2025,Snack,2.5,dining\n"

	result, err := Parse(strings.NewReader(input), testDictionary(), today)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Skipped)
	require.Len(t, result.Rows, 2)

	assert.Equal(t, "2025-03-20", result.Rows[0].Date)
	assert.Equal(t, expenses.OtherCategoryID, result.Rows[0].CategoryID)

	assert.Equal(t, "2025-03-04", result.Rows[1].Date)
	assert.Equal(t, "FOOD", result.Rows[1].CategoryID)
}

func TestParseEmptyFile(t *testing.T) {
	_, err := Parse(strings.NewReader("Date,Title,Amount\n"), testDictionary(), today)
	assert.True(t, errors.Is(err, ErrEmptyFile))
}
