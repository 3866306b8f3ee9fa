package store

import (
	"context"
	"fmt"

	"github.com/condomaster/condomaster-api/internal/gateway"
	"github.com/condomaster/condomaster-api/internal/model"
)

var activityFields = []field{
	{api: "employeeId", store: "employee_id"},
	{api: "startDate", store: "start_date"},
	{api: "endDate", store: "end_date"},
	{api: "createdBy", store: "created_by"},
}

func activityFromRow(r gateway.Row) model.Activity {
	return model.Activity{
		ID:         r["id"],
		EmployeeID: firstTruthy(r, "employee_id", "employeeId"),
		StartDate:  asString(firstTruthy(r, "start_date", "startDate")),
		EndDate:    asString(firstTruthy(r, "end_date", "endDate")),
		Days:       asNumber(firstTruthy(r, "days")),
		Status:     asString(r["status"]),
		Type:       asString(r["type"]),
		CreatedAt:  asString(firstTruthy(r, "created_at", "createdAt")),
		CreatedBy:  asString(firstTruthy(r, "created_by", "createdBy")),
	}
}

// ActivityStore keeps one kind of employee absence. Vacations and medical
// leaves share the shape and differ in their table and in the column that
// classifies them.
type ActivityStore struct {
	gw          gateway.Gateway
	table       string
	kindCol     string
	kindDefault string
}

// NewVacationStore stores vacation requests; status defaults to "approved".
func NewVacationStore(gw gateway.Gateway) *ActivityStore {
	return &ActivityStore{gw: gw, table: "vacation_requests", kindCol: "status", kindDefault: "approved"}
}

// NewLeaveStore stores medical leaves; type defaults to "medical".
func NewLeaveStore(gw gateway.Gateway) *ActivityStore {
	return &ActivityStore{gw: gw, table: "medical_leaves", kindCol: "type", kindDefault: "medical"}
}

func (s *ActivityStore) toRow(body map[string]any) gateway.Row {
	row := toRow(body, activityFields)
	row["days"] = asNumber(firstTruthy(body, "days"))
	row[s.kindCol] = stringOr(firstTruthy(body, s.kindCol), s.kindDefault)
	return row
}

func (s *ActivityStore) List(ctx context.Context) ([]model.Activity, error) {
	rows, err := s.gw.Select(ctx, gateway.From(s.table).OrderBy(gateway.Desc("start_date")))
	if err != nil {
		return nil, err
	}
	out := make([]model.Activity, 0, len(rows))
	for _, r := range rows {
		out = append(out, activityFromRow(r))
	}
	return out, nil
}

func (s *ActivityStore) Create(ctx context.Context, body map[string]any) (*model.Activity, error) {
	rows, err := s.gw.Insert(ctx, s.table, s.toRow(body))
	if err != nil {
		return nil, fmt.Errorf("insert into %s: %w", s.table, err)
	}
	r := gateway.First(rows)
	if r == nil {
		return nil, nil
	}
	a := activityFromRow(r)
	return &a, nil
}

func (s *ActivityStore) Delete(ctx context.Context, id string) error {
	if err := s.gw.Delete(ctx, s.table, gateway.Eq("id", id)); err != nil {
		return fmt.Errorf("delete from %s %s: %w", s.table, id, err)
	}
	return nil
}
