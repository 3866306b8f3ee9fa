package store

import (
	"context"
	"fmt"

	"github.com/condomaster/condomaster-api/internal/gateway"
	"github.com/condomaster/condomaster-api/internal/model"
)

const housesTable = "houses"

var houseFields = []field{
	{api: "number", store: "number"},
	{api: "ownerName", store: "owner_name"},
	{api: "rut", store: "rut"},
	{api: "phone", store: "phone"},
	{api: "email", store: "email"},
	{api: "hasParking", store: "has_parking"},
	{api: "residentType", store: "resident_type"},
	{api: "isBoardMember", store: "is_board_member"},
}

func houseFromRow(r gateway.Row) model.House {
	return model.House{
		ID:            r["id"],
		Number:        asString(firstTruthy(r, "number")),
		OwnerName:     stringOr(firstTruthy(r, "owner_name", "ownerName"), "Sin Nombre"),
		Rut:           asString(firstTruthy(r, "rut")),
		Phone:         asString(firstTruthy(r, "phone")),
		Email:         asString(firstTruthy(r, "email")),
		HasParking:    asBool(firstSet(r, "has_parking", "hasParking")),
		ResidentType:  stringOr(firstSet(r, "resident_type", "residentType"), "propietario"),
		IsBoardMember: asBool(firstSet(r, "is_board_member", "isBoardMember")),
	}
}

func houseToRow(body map[string]any) gateway.Row {
	return toRow(body, houseFields)
}

type HouseStore struct {
	gw gateway.Gateway
}

func NewHouseStore(gw gateway.Gateway) *HouseStore {
	return &HouseStore{gw: gw}
}

func (s *HouseStore) List(ctx context.Context) ([]model.House, error) {
	rows, err := s.gw.Select(ctx, gateway.From(housesTable).OrderBy(gateway.Asc("number")))
	if err != nil {
		return nil, err
	}
	houses := make([]model.House, 0, len(rows))
	for _, r := range rows {
		houses = append(houses, houseFromRow(r))
	}
	return houses, nil
}

// Update applies the fields present in body to the house. The id inside the
// body is ignored in favor of the path id. It returns nil when no house
// matched.
func (s *HouseStore) Update(ctx context.Context, id string, body map[string]any) (*model.House, error) {
	fields := make(map[string]any, len(body))
	for k, v := range body {
		if k == "id" {
			continue
		}
		fields[k] = v
	}

	rows, err := s.gw.Update(ctx, housesTable, houseToRow(fields), gateway.Eq("id", id))
	if err != nil {
		return nil, fmt.Errorf("update house %s: %w", id, err)
	}
	r := gateway.First(rows)
	if r == nil {
		return nil, nil
	}
	h := houseFromRow(r)
	return &h, nil
}
