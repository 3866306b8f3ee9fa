package model

type Expense struct {
	ID          any     `json:"id"`
	Year        int     `json:"year"`
	Month       int     `json:"month"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
}
