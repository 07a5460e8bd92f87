package handler

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/Dan9191/finance-tracker/internal/analytics"
)

const (
	minYear = 2000
	maxYear = 2100
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// queryParser collects every problem with the query string so one response
// can report them all
type queryParser struct {
	values   url.Values
	problems []string
}

func newQueryParser(values url.Values) *queryParser {
	return &queryParser{values: values}
}

// intParam returns the parameter, or 0 when it is absent
func (p *queryParser) intParam(name string, min, max int) int {
	raw := p.values.Get(name)
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < min || v > max {
		p.problems = append(p.problems, fmt.Sprintf("%s must be an integer between %d and %d", name, min, max))
		return 0
	}
	return v
}

func (p *queryParser) dateParam(name string) string {
	raw := p.values.Get(name)
	if raw == "" {
		return ""
	}
	if !datePattern.MatchString(raw) {
		p.problems = append(p.problems, name+" must be a date in YYYY-MM-DD format")
		return ""
	}
	return raw
}

func (p *queryParser) require(names ...string) {
	for _, name := range names {
		if p.values.Get(name) == "" {
			p.problems = append(p.problems, name+" is required")
		}
	}
}

func (p *queryParser) err() string {
	return strings.Join(p.problems, "; ")
}

// transactionFilter reads the list filters. A month must come with a year
// and a year with a month; a lone one is reported as a pairing problem.
func transactionFilter(values url.Values, allowDate bool) (analytics.Filter, string, string) {
	p := newQueryParser(values)
	f := analytics.Filter{
		Month:     p.intParam("month", 1, 12),
		Year:      p.intParam("year", minYear, maxYear),
		StartDate: p.dateParam("start_date"),
		EndDate:   p.dateParam("end_date"),
	}
	if allowDate {
		f.Date = p.dateParam("date")
	}
	if len(p.problems) > 0 {
		return f, p.err(), ""
	}
	if (values.Get("month") == "") != (values.Get("year") == "") {
		return f, "", "month and year must be given together"
	}
	return f, "", ""
}

// periodParams reads an optional month/year pair such as start_month and
// start_year. It returns nil when neither is given.
func periodParams(p *queryParser, monthName, yearName string) (*analytics.Period, string) {
	month := p.intParam(monthName, 1, 12)
	year := p.intParam(yearName, minYear, maxYear)
	hasMonth, hasYear := p.values.Get(monthName) != "", p.values.Get(yearName) != ""
	switch {
	case !hasMonth && !hasYear:
		return nil, ""
	case hasMonth != hasYear:
		return nil, fmt.Sprintf("%s and %s must be given together", monthName, yearName)
	case month == 0 || year == 0:
		return nil, ""
	}
	return &analytics.Period{Year: year, Month: month}, ""
}
