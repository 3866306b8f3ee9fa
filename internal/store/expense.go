package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/condomaster/condomaster-api/internal/gateway"
	"github.com/condomaster/condomaster-api/internal/model"
)

const expensesTable = "expenses"

func expenseFromRow(r gateway.Row) model.Expense {
	return model.Expense{
		ID:          r["id"],
		Year:        asInt(r["year"]),
		Month:       asInt(r["month"]),
		Description: asString(firstTruthy(r, "description")),
		Amount:      asNumber(firstTruthy(r, "amount")),
		Category:    stringOr(firstTruthy(r, "category"), "General"),
	}
}

// expenseToRow always writes every column: text is trimmed, the amount and
// period are parsed from whatever the client sent.
func expenseToRow(body map[string]any) gateway.Row {
	return gateway.Row{
		"description": strings.TrimSpace(asString(firstTruthy(body, "description"))),
		"amount":      parseFloatPrefix(firstTruthy(body, "amount")),
		"category":    strings.TrimSpace(stringOr(firstTruthy(body, "category"), "General")),
		"year":        parseIntPrefix(body["year"]),
		"month":       parseIntPrefix(body["month"]),
	}
}

type ExpenseStore struct {
	gw gateway.Gateway
}

func NewExpenseStore(gw gateway.Gateway) *ExpenseStore {
	return &ExpenseStore{gw: gw}
}

// List returns expenses newest period first.
func (s *ExpenseStore) List(ctx context.Context) ([]model.Expense, error) {
	q := gateway.From(expensesTable).OrderBy(gateway.Desc("year"), gateway.Desc("month"))
	rows, err := s.gw.Select(ctx, q)
	if err != nil {
		return nil, err
	}
	expenses := make([]model.Expense, 0, len(rows))
	for _, r := range rows {
		expenses = append(expenses, expenseFromRow(r))
	}
	return expenses, nil
}

func (s *ExpenseStore) Create(ctx context.Context, body map[string]any) (*model.Expense, error) {
	rows, err := s.gw.Insert(ctx, expensesTable, expenseToRow(body))
	if err != nil {
		return nil, fmt.Errorf("insert expense: %w", err)
	}
	r := gateway.First(rows)
	if r == nil {
		return nil, nil
	}
	e := expenseFromRow(r)
	return &e, nil
}

func (s *ExpenseStore) Delete(ctx context.Context, id string) error {
	if err := s.gw.Delete(ctx, expensesTable, gateway.Eq("id", id)); err != nil {
		return fmt.Errorf("delete expense %s: %w", id, err)
	}
	return nil
}
