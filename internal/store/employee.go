package store

import (
	"context"
	"fmt"

	"github.com/condomaster/condomaster-api/internal/gateway"
	"github.com/condomaster/condomaster-api/internal/model"
)

const employeesTable = "employees"

var employeeFields = []field{
	{api: "name", store: "name"},
	{api: "rut", store: "rut"},
	{api: "entryDate", store: "entry_date"},
	{api: "role", store: "role"},
	{api: "grossSalary", store: "gross_salary"},
	{api: "afpPercentage", store: "afp_percentage"},
	{api: "fonasaPercentage", store: "fonasa_percentage"},
	{api: "cesantiaPercentage", store: "cesantia_percentage"},
}

func employeeFromRow(r gateway.Row) model.Employee {
	return model.Employee{
		ID:                 r["id"],
		Name:               asString(firstTruthy(r, "name")),
		Rut:                asString(firstTruthy(r, "rut")),
		EntryDate:          asString(firstTruthy(r, "entry_date", "entryDate")),
		Role:               asString(firstTruthy(r, "role")),
		GrossSalary:        asNumber(firstTruthy(r, "gross_salary", "grossSalary")),
		AfpPercentage:      asNumber(firstTruthy(r, "afp_percentage", "afpPercentage")),
		FonasaPercentage:   asNumber(firstTruthy(r, "fonasa_percentage", "fonasaPercentage")),
		CesantiaPercentage: asNumber(firstTruthy(r, "cesantia_percentage", "cesantiaPercentage")),
	}
}

func employeeToRow(body map[string]any) gateway.Row {
	return toRow(body, employeeFields)
}

type EmployeeStore struct {
	gw gateway.Gateway
}

func NewEmployeeStore(gw gateway.Gateway) *EmployeeStore {
	return &EmployeeStore{gw: gw}
}

func (s *EmployeeStore) List(ctx context.Context) ([]model.Employee, error) {
	rows, err := s.gw.Select(ctx, gateway.From(employeesTable).OrderBy(gateway.Asc("name")))
	if err != nil {
		return nil, err
	}
	employees := make([]model.Employee, 0, len(rows))
	for _, r := range rows {
		employees = append(employees, employeeFromRow(r))
	}
	return employees, nil
}

func (s *EmployeeStore) Create(ctx context.Context, body map[string]any) (*model.Employee, error) {
	rows, err := s.gw.Insert(ctx, employeesTable, employeeToRow(body))
	if err != nil {
		return nil, fmt.Errorf("insert employee: %w", err)
	}
	return firstEmployee(rows), nil
}

func (s *EmployeeStore) Update(ctx context.Context, id string, body map[string]any) (*model.Employee, error) {
	rows, err := s.gw.Update(ctx, employeesTable, employeeToRow(body), gateway.Eq("id", id))
	if err != nil {
		return nil, fmt.Errorf("update employee %s: %w", id, err)
	}
	return firstEmployee(rows), nil
}

func firstEmployee(rows []gateway.Row) *model.Employee {
	r := gateway.First(rows)
	if r == nil {
		return nil
	}
	e := employeeFromRow(r)
	return &e
}
