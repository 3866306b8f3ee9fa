package model

import (
	"fmt"
	"strconv"
)

// BreakdownItem is the receipt view of one breakdown line.
type BreakdownItem struct {
	Name   string
	Amount float64
}

type Payment struct {
	ID        any     `json:"id"`
	HouseID   string  `json:"houseId"`
	Year      int     `json:"year"`
	Month     int     `json:"month"`
	PayerName string  `json:"payerName"`
	Amount    float64 `json:"amount"`
	// Breakdown holds the lines exactly as the client stored them, extra keys
	// included.
	Breakdown []any   `json:"breakdown"`
	Date      string  `json:"date,omitempty"`
	Receiver  any     `json:"receiver,omitempty"`
	VoucherID string  `json:"voucherId"`
	Type      string  `json:"type"`
}

// BreakdownItems reads the name and amount of every object line, skipping
// anything else.
func (p Payment) BreakdownItems() []BreakdownItem {
	items := make([]BreakdownItem, 0, len(p.Breakdown))
	for _, el := range p.Breakdown {
		m, ok := el.(map[string]any)
		if !ok {
			continue
		}
		item := BreakdownItem{Amount: lineAmount(m["amount"])}
		if name, ok := m["name"]; ok && name != nil {
			item.Name = fmt.Sprint(name)
		}
		items = append(items, item)
	}
	return items
}

func lineAmount(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case int64:
		return float64(t)
	case int:
		return float64(t)
	case string:
		f, _ := strconv.ParseFloat(t, 64)
		return f
	}
	return 0
}
