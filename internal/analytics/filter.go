package analytics

import (
	"sort"
	"strings"

	"github.com/Dan9191/finance-tracker/internal/models"
)

// DateLayout is the storage format of transaction dates
const DateLayout = "2006-01-02"

// FilterMode is the date restriction a Filter resolves to
type FilterMode int

const (
	FilterNone FilterMode = iota
	FilterMonth
	FilterDate
	FilterRange
	FilterFrom
	FilterUntil
)

// Filter restricts the transactions of a user by date. Zero values mean
// "not given". Only one restriction applies, see Resolve.
type Filter struct {
	Month     int
	Year      int
	Date      string
	StartDate string
	EndDate   string
}

// Resolve picks the restriction to apply, in order of precedence:
// month and year together, exact date, inclusive start..end range, a single
// lower or upper bound, nothing. A month without a year (or a year without a
// month) is not a month restriction and falls through to the next rule.
func (f Filter) Resolve() FilterMode {
	switch {
	case f.Month != 0 && f.Year != 0:
		return FilterMonth
	case f.Date != "":
		return FilterDate
	case f.StartDate != "" && f.EndDate != "":
		return FilterRange
	case f.StartDate != "":
		return FilterFrom
	case f.EndDate != "":
		return FilterUntil
	default:
		return FilterNone
	}
}

// Period returns the month restriction; meaningful only for FilterMonth
func (f Filter) Period() Period {
	return Period{Year: f.Year, Month: f.Month}
}

// Match reports whether a YYYY-MM-DD date passes the filter.
// Comparisons are lexical, which is chronological for this layout.
func (f Filter) Match(date string) bool {
	switch f.Resolve() {
	case FilterMonth:
		return strings.HasPrefix(date, f.Period().Prefix())
	case FilterDate:
		return date == f.Date
	case FilterRange:
		return date >= f.StartDate && date <= f.EndDate
	case FilterFrom:
		return date >= f.StartDate
	case FilterUntil:
		return date <= f.EndDate
	default:
		return true
	}
}

// FilterTransactions returns the transactions matching f, newest first:
// by date descending, then by creation time descending.
func FilterTransactions(all []models.Transaction, f Filter) []models.Transaction {
	out := make([]models.Transaction, 0, len(all))
	for _, t := range all {
		if f.Match(t.Date) {
			out = append(out, t)
		}
	}
	SortNewestFirst(out)
	return out
}

// SortNewestFirst orders transactions by date then creation time, both descending
func SortNewestFirst(txs []models.Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		if txs[i].Date != txs[j].Date {
			return txs[i].Date > txs[j].Date
		}
		return txs[i].CreatedAt.After(txs[j].CreatedAt)
	})
}
