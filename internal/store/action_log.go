package store

import (
	"context"

	"github.com/condomaster/condomaster-api/internal/gateway"
)

const actionLogsTable = "action_logs"

// ActionLogStore reads the append-only action log. Rows are returned as
// stored, without renaming.
type ActionLogStore struct {
	gw gateway.Gateway
}

func NewActionLogStore(gw gateway.Gateway) *ActionLogStore {
	return &ActionLogStore{gw: gw}
}

// List returns the newest entries first, limited to employeeID when it is
// not empty.
func (s *ActionLogStore) List(ctx context.Context, employeeID string) ([]gateway.Row, error) {
	q := gateway.From(actionLogsTable).OrderBy(gateway.Desc("timestamp"))
	if employeeID != "" {
		q = q.Where(gateway.Eq("employee_id", employeeID))
	}
	rows, err := s.gw.Select(ctx, q)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []gateway.Row{}
	}
	return rows, nil
}
