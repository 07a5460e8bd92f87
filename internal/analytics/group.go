package analytics

import (
	"sort"

	"github.com/Dan9191/finance-tracker/internal/models"
)

// GroupTransactionsByDate buckets transactions by exact date with per-day
// income and expense totals. Buckets are ordered newest date first; within a
// bucket transactions keep the order they were given in.
func GroupTransactionsByDate(txs []models.Transaction) []models.TransactionsByDate {
	var dates []string
	buckets := make(map[string][]models.Transaction)
	for _, t := range txs {
		if _, ok := buckets[t.Date]; !ok {
			dates = append(dates, t.Date)
		}
		buckets[t.Date] = append(buckets[t.Date], t)
	}

	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	groups := make([]models.TransactionsByDate, 0, len(dates))
	for _, d := range dates {
		bucket := buckets[d]
		groups = append(groups, models.TransactionsByDate{
			Date:         d,
			Transactions: bucket,
			TotalIncome:  sumByType(bucket, models.Income).InexactFloat64(),
			TotalExpense: sumByType(bucket, models.Expense).InexactFloat64(),
		})
	}
	return groups
}
