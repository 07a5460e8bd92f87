// Package export renders monthly summaries for download.
package export

import (
	"fmt"
	"strconv"

	"github.com/Dan9191/finance-tracker/internal/models"
	"github.com/beevik/etree"
)

// ContentType is the media type of SummaryXML output
const ContentType = "application/xml; charset=utf-8"

// SummaryXML renders a monthly summary as an indented XML document
func SummaryXML(s *models.BalanceSummary) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("monthlySummary")
	root.CreateAttr("userId", s.UserID)
	root.CreateAttr("month", strconv.Itoa(s.Month))
	root.CreateAttr("year", strconv.Itoa(s.Year))

	root.CreateElement("balance").SetText(formatAmount(s.Balance))
	root.CreateElement("totalIncome").SetText(formatAmount(s.TotalIncome))
	root.CreateElement("totalExpense").SetText(formatAmount(s.TotalExpense))

	writeBreakdown(root, "incomeByCategory", s.IncomeByCategory)
	writeBreakdown(root, "expenseByCategory", s.ExpenseByCategory)

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("failed to render summary: %w", err)
	}
	return out, nil
}

// writeBreakdown omits the element entirely for an absent breakdown
func writeBreakdown(parent *etree.Element, name string, items []models.CategorySummary) {
	if items == nil {
		return
	}
	list := parent.CreateElement(name)
	for _, item := range items {
		c := list.CreateElement("category")
		c.CreateAttr("id", item.CategoryID)
		c.CreateAttr("name", item.CategoryName)
		c.CreateAttr("icon", item.CategoryIcon)
		c.CreateAttr("color", item.CategoryColor)
		c.CreateElement("total").SetText(formatAmount(item.Total))
		c.CreateElement("percentage").SetText(formatAmount(item.Percentage))
	}
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
