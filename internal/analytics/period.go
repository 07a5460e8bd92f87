package analytics

import (
	"fmt"
	"time"
)

// Period is a calendar month
type Period struct {
	Year  int
	Month int // 1-12
}

// PeriodOf returns the period containing t
func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: int(t.Month())}
}

// Next returns the following month
func (p Period) Next() Period {
	if p.Month == 12 {
		return Period{Year: p.Year + 1, Month: 1}
	}
	return Period{Year: p.Year, Month: p.Month + 1}
}

// Prev returns the preceding month
func (p Period) Prev() Period {
	if p.Month == 1 {
		return Period{Year: p.Year - 1, Month: 12}
	}
	return Period{Year: p.Year, Month: p.Month - 1}
}

// Before reports whether p is strictly earlier than o
func (p Period) Before(o Period) bool {
	if p.Year != o.Year {
		return p.Year < o.Year
	}
	return p.Month < o.Month
}

// MonthsUntil returns the number of months from p to o, inclusive of both ends.
// It is zero when o is before p.
func (p Period) MonthsUntil(o Period) int {
	n := (o.Year-p.Year)*12 + (o.Month - p.Month) + 1
	if n < 0 {
		return 0
	}
	return n
}

// FirstDay returns the first date of the month as YYYY-MM-DD
func (p Period) FirstDay() string {
	return fmt.Sprintf("%04d-%02d-01", p.Year, p.Month)
}

// LastDay returns the last date of the month as YYYY-MM-DD
func (p Period) LastDay() string {
	return time.Date(p.Year, time.Month(p.Month)+1, 0, 0, 0, 0, 0, time.UTC).Format(DateLayout)
}

// Prefix is the "YYYY-MM-" prefix shared by every date in the month
func (p Period) Prefix() string {
	return fmt.Sprintf("%04d-%02d-", p.Year, p.Month)
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

// ParseDate returns the period of a YYYY-MM-DD date
func ParseDate(date string) (Period, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return Period{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return PeriodOf(t), nil
}
