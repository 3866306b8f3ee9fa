package model

type Employee struct {
	ID                 any     `json:"id"`
	Name               string  `json:"name"`
	Rut                string  `json:"rut"`
	EntryDate          string  `json:"entryDate"`
	Role               string  `json:"role"`
	GrossSalary        float64 `json:"grossSalary"`
	AfpPercentage      float64 `json:"afpPercentage"`
	FonasaPercentage   float64 `json:"fonasaPercentage"`
	CesantiaPercentage float64 `json:"cesantiaPercentage"`
}

// Activity is a vacation request or a medical leave. Vacations carry Status,
// leaves carry Type.
type Activity struct {
	ID         any     `json:"id"`
	EmployeeID any     `json:"employeeId,omitempty"`
	StartDate  string  `json:"startDate,omitempty"`
	EndDate    string  `json:"endDate,omitempty"`
	Days       float64 `json:"days"`
	Status     string  `json:"status,omitempty"`
	Type       string  `json:"type,omitempty"`
	CreatedAt  string  `json:"createdAt,omitempty"`
	CreatedBy  string  `json:"createdBy,omitempty"`
}
