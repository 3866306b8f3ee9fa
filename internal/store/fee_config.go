package store

import (
	"context"
	"fmt"

	"github.com/condomaster/condomaster-api/internal/gateway"
	"github.com/condomaster/condomaster-api/internal/model"
)

const feesTable = "fees_config"

var feeFields = []field{
	{api: "name", store: "name"},
	{api: "defaultAmount", store: "default_amount"},
	{api: "startMonth", store: "start_month"},
	{api: "startYear", store: "start_year"},
	{api: "endMonth", store: "end_month"},
	{api: "endYear", store: "end_year"},
	{api: "applicableMonths", store: "applicable_months"},
	{api: "category", store: "category"},
	{api: "targetHouseIds", store: "target_house_ids"},
}

func feeFromRow(r gateway.Row) model.FeeConfig {
	f := model.FeeConfig{
		ID:               r["id"],
		Name:             asString(firstTruthy(r, "name")),
		DefaultAmount:    asNumber(firstSet(r, "default_amount", "defaultAmount")),
		StartMonth:       asInt(firstSet(r, "start_month", "startMonth")),
		StartYear:        2024,
		ApplicableMonths: firstSet(r, "applicable_months", "applicableMonths"),
		Category:         stringOr(firstTruthy(r, "category"), "monthly"),
		TargetHouseIDs:   firstSet(r, "target_house_ids", "targetHouseIds"),
	}
	if v := firstSet(r, "start_year", "startYear"); v != nil {
		f.StartYear = asInt(v)
	}
	if v := firstSet(r, "end_month", "endMonth"); v != nil {
		n := asInt(v)
		f.EndMonth = &n
	}
	if v := firstSet(r, "end_year", "endYear"); v != nil {
		n := asInt(v)
		f.EndYear = &n
	}
	return f
}

func feeToRow(body map[string]any) gateway.Row {
	return toRow(body, feeFields)
}

type FeeStore struct {
	gw gateway.Gateway
}

func NewFeeStore(gw gateway.Gateway) *FeeStore {
	return &FeeStore{gw: gw}
}

func (s *FeeStore) List(ctx context.Context) ([]model.FeeConfig, error) {
	rows, err := s.gw.Select(ctx, gateway.From(feesTable).OrderBy(gateway.Asc("name")))
	if err != nil {
		return nil, err
	}
	fees := make([]model.FeeConfig, 0, len(rows))
	for _, r := range rows {
		fees = append(fees, feeFromRow(r))
	}
	return fees, nil
}

// Create inserts a fee and returns it as stored, or nil if the store
// returned no row.
func (s *FeeStore) Create(ctx context.Context, body map[string]any) (*model.FeeConfig, error) {
	rows, err := s.gw.Insert(ctx, feesTable, feeToRow(body))
	if err != nil {
		return nil, fmt.Errorf("insert fee: %w", err)
	}
	return firstFee(rows), nil
}

func (s *FeeStore) Update(ctx context.Context, id string, body map[string]any) (*model.FeeConfig, error) {
	rows, err := s.gw.Update(ctx, feesTable, feeToRow(body), gateway.Eq("id", id))
	if err != nil {
		return nil, fmt.Errorf("update fee %s: %w", id, err)
	}
	return firstFee(rows), nil
}

func (s *FeeStore) Delete(ctx context.Context, id string) error {
	if err := s.gw.Delete(ctx, feesTable, gateway.Eq("id", id)); err != nil {
		return fmt.Errorf("delete fee %s: %w", id, err)
	}
	return nil
}

func firstFee(rows []gateway.Row) *model.FeeConfig {
	r := gateway.First(rows)
	if r == nil {
		return nil
	}
	f := feeFromRow(r)
	return &f
}
