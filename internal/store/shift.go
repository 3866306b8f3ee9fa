package store

import (
	"context"
	"fmt"

	"github.com/condomaster/condomaster-api/internal/gateway"
)

const shiftsTable = "shift_schedules"

// ShiftStore keeps one assignment map per period, keyed by the period's
// start date.
type ShiftStore struct {
	gw gateway.Gateway
}

func NewShiftStore(gw gateway.Gateway) *ShiftStore {
	return &ShiftStore{gw: gw}
}

// Assignments returns the assignments stored for startDate, or an empty map
// when the period has no schedule. An empty startDate matches every period,
// which only succeeds while at most one exists.
func (s *ShiftStore) Assignments(ctx context.Context, startDate string) (any, error) {
	q := gateway.From(shiftsTable)
	if startDate != "" {
		q = q.Where(gateway.Eq("start_date", startDate))
	}
	rows, err := s.gw.Select(ctx, q)
	if err != nil {
		return nil, err
	}
	row, err := gateway.MaybeSingle(rows)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return map[string]any{}, nil
	}
	return row["assignments"], nil
}

// Save replaces the assignments of the period starting at startDate,
// creating the period if needed.
//
// The lookup and the write are separate round trips with nothing holding
// them together: two concurrent saves for a new period can both miss the
// lookup and both insert. Later lookups of that period then fail with
// gateway.ErrMultipleRows.
func (s *ShiftStore) Save(ctx context.Context, startDate string, assignments any) error {
	rows, err := s.gw.Select(ctx, gateway.From(shiftsTable).
		Select("id").
		Where(gateway.Eq("start_date", startDate)))
	if err != nil {
		return fmt.Errorf("find shift schedule %s: %w", startDate, err)
	}
	existing, err := gateway.MaybeSingle(rows)
	if err != nil {
		return fmt.Errorf("find shift schedule %s: %w", startDate, err)
	}

	if existing != nil {
		_, err = s.gw.Update(ctx, shiftsTable,
			gateway.Row{"assignments": assignments},
			gateway.Eq("id", existing["id"]))
		if err != nil {
			return fmt.Errorf("update shift schedule %s: %w", startDate, err)
		}
		return nil
	}

	_, err = s.gw.Insert(ctx, shiftsTable, gateway.Row{
		"start_date":  startDate,
		"assignments": assignments,
	})
	if err != nil {
		return fmt.Errorf("insert shift schedule %s: %w", startDate, err)
	}
	return nil
}
