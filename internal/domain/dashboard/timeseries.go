package dashboard

import (
	"sort"
	"time"

	"orbit-expenses/internal/domain/expenses"
)

const monthKeyLayout = "2006-01"

// MonthlySeries buckets expenses by the "YYYY-MM" prefix of their date, in
// ascending month order. Months without expenses are not emitted.
func MonthlySeries(items []expenses.Expense) []MonthlyBucket {
	byMonth := make(map[string]*MonthlyBucket)
	for _, expense := range items {
		key := monthKey(expense.Date)
		bucket, ok := byMonth[key]
		if !ok {
			bucket = &MonthlyBucket{
				MonthKey:    key,
				PerCategory: make(map[string]float64),
			}
			byMonth[key] = bucket
		}
		bucket.Total += expense.Amount
		bucket.PerCategory[expense.CategoryID] += expense.Amount
	}

	buckets := make([]MonthlyBucket, 0, len(byMonth))
	for _, bucket := range byMonth {
		buckets = append(buckets, *bucket)
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].MonthKey < buckets[j].MonthKey
	})
	return buckets
}

// FillMonthGaps inserts empty buckets for the months missing between the
// first and last bucket. Input whose keys are not "YYYY-MM" is returned as a
// copy, unchanged.
func FillMonthGaps(buckets []MonthlyBucket) []MonthlyBucket {
	if len(buckets) < 2 {
		return append([]MonthlyBucket(nil), buckets...)
	}

	first, errFirst := time.Parse(monthKeyLayout, buckets[0].MonthKey)
	last, errLast := time.Parse(monthKeyLayout, buckets[len(buckets)-1].MonthKey)
	if errFirst != nil || errLast != nil || last.Before(first) {
		return append([]MonthlyBucket(nil), buckets...)
	}

	existing := make(map[string]MonthlyBucket, len(buckets))
	for _, bucket := range buckets {
		existing[bucket.MonthKey] = bucket
	}

	filled := make([]MonthlyBucket, 0, len(buckets))
	for month := first; !month.After(last); month = month.AddDate(0, 1, 0) {
		key := month.Format(monthKeyLayout)
		if bucket, ok := existing[key]; ok {
			filled = append(filled, bucket)
			continue
		}
		filled = append(filled, MonthlyBucket{
			MonthKey:    key,
			PerCategory: map[string]float64{},
		})
	}
	return filled
}

func monthKey(date string) string {
	if len(date) < len(monthKeyLayout) {
		return date
	}
	return date[:len(monthKeyLayout)]
}
