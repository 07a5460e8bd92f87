package models

// CategorySummary is the share of one category in a period's income or expense
type CategorySummary struct {
	CategoryID    string  `json:"categoryId"`
	CategoryName  string  `json:"categoryName"`
	CategoryIcon  string  `json:"categoryIcon"`
	CategoryColor string  `json:"categoryColor"`
	Total         float64 `json:"total"`
	Percentage    float64 `json:"percentage"`
}

// BalanceSummary represents monthly income and expense statistics.
// A nil breakdown means there was nothing of that type in the month.
type BalanceSummary struct {
	UserID            string            `json:"userId"`
	Month             int               `json:"month"`
	Year              int               `json:"year"`
	Balance           float64           `json:"balance"` // TotalIncome - TotalExpense
	TotalIncome       float64           `json:"totalIncome"`
	TotalExpense      float64           `json:"totalExpense"`
	IncomeByCategory  []CategorySummary `json:"incomeByCategory"`
	ExpenseByCategory []CategorySummary `json:"expenseByCategory"`
}

// TransactionsByDate holds the transactions of a single day
type TransactionsByDate struct {
	Date         string        `json:"date"` // Format: YYYY-MM-DD
	Transactions []Transaction `json:"transactions"`
	TotalIncome  float64       `json:"totalIncome"`
	TotalExpense float64       `json:"totalExpense"`
}
