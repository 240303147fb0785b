package models

// CategoryAmount is the total of one category or source, formatted as a
// decimal string with two fraction digits.
type CategoryAmount struct {
	Amount string `json:"amount"`
}

// CategorySummary maps a category (expenses) or source (income) to its
// total over the summary window. Labels without records in the window are
// absent, never zero.
type CategorySummary map[string]CategoryAmount

// ExpenseSummaryResponse is the body of GET /userstats/expense-category-data/.
type ExpenseSummaryResponse struct {
	CategoryData CategorySummary `json:"category_data"`
}

// IncomeSummaryResponse is the body of GET /userstats/income-category-data/.
type IncomeSummaryResponse struct {
	SourceData CategorySummary `json:"source_data"`
}
