package analytics

import (
	"sort"

	"github.com/Dan9191/finance-tracker/internal/models"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ComputeMonthlySummary totals income and expense over the given
// transactions, which the caller has already restricted to (month, year).
func ComputeMonthlySummary(userID string, txs []models.Transaction, month, year int) models.BalanceSummary {
	income := sumByType(txs, models.Income)
	expense := sumByType(txs, models.Expense)

	return models.BalanceSummary{
		UserID:            userID,
		Month:             month,
		Year:              year,
		Balance:           income.Sub(expense).InexactFloat64(),
		TotalIncome:       income.InexactFloat64(),
		TotalExpense:      expense.InexactFloat64(),
		IncomeByCategory:  breakdown(txs, models.Income, income),
		ExpenseByCategory: breakdown(txs, models.Expense, expense),
	}
}

// CategoryBreakdown groups transactions of the given type by category and
// reports each group's total and share of totalAmount, largest first.
//
// It returns nil when totalAmount is zero. Transactions without a resolved
// category still count toward totalAmount but get no entry, so the entries
// may sum to less than totalAmount.
func CategoryBreakdown(txs []models.Transaction, typ models.TransactionType, totalAmount float64) []models.CategorySummary {
	return breakdown(txs, typ, decimal.NewFromFloat(totalAmount))
}

type categoryTotal struct {
	category *models.Category
	total    decimal.Decimal
}

func breakdown(txs []models.Transaction, typ models.TransactionType, totalAmount decimal.Decimal) []models.CategorySummary {
	if totalAmount.IsZero() {
		return nil
	}

	// Insertion-ordered so that equal totals keep first-seen order.
	var groups []*categoryTotal
	index := make(map[string]*categoryTotal)
	for _, t := range txs {
		if t.Type != typ || t.Category == nil {
			continue
		}
		g, ok := index[t.Category.ID]
		if !ok {
			g = &categoryTotal{category: t.Category}
			index[t.Category.ID] = g
			groups = append(groups, g)
		}
		g.total = g.total.Add(decimal.NewFromFloat(t.Amount))
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].total.GreaterThan(groups[j].total)
	})

	result := make([]models.CategorySummary, 0, len(groups))
	for _, g := range groups {
		result = append(result, models.CategorySummary{
			CategoryID:    g.category.ID,
			CategoryName:  g.category.Name,
			CategoryIcon:  g.category.Icon,
			CategoryColor: g.category.Color,
			Total:         g.total.InexactFloat64(),
			Percentage:    g.total.Div(totalAmount).Mul(hundred).InexactFloat64(),
		})
	}
	return result
}

// SummaryRange builds one summary per month from `from` through `to`
// inclusive, oldest first. Transactions outside the range are ignored.
func SummaryRange(userID string, txs []models.Transaction, from, to Period) []models.BalanceSummary {
	n := from.MonthsUntil(to)
	summaries := make([]models.BalanceSummary, 0, n)
	if n == 0 {
		return summaries
	}

	byMonth := make(map[string][]models.Transaction, n)
	for _, t := range txs {
		if len(t.Date) < 7 {
			continue
		}
		key := t.Date[:7]
		byMonth[key] = append(byMonth[key], t)
	}

	for p, i := from, 0; i < n; p, i = p.Next(), i+1 {
		summaries = append(summaries, ComputeMonthlySummary(userID, byMonth[p.String()], p.Month, p.Year))
	}
	return summaries
}

func sumByType(txs []models.Transaction, typ models.TransactionType) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range txs {
		if t.Type == typ {
			sum = sum.Add(decimal.NewFromFloat(t.Amount))
		}
	}
	return sum
}
