package model

// Layouts used for the textual date and time fields of an Expense.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

// Expense is a single recorded expense.
// It carries no store-specific tags; each repository maps it to its own representation.
// Date and Time stay textual so values round-trip exactly as submitted.
type Expense struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
	Date     string  `json:"date"`
	Time     string  `json:"time"`
}
