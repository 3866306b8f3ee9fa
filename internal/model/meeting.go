package model

// Meeting is an assembly with per-house attendance.
type Meeting struct {
	ID         any    `json:"id"`
	Name       string `json:"name"`
	Date       string `json:"date"`
	Attendance any    `json:"attendance"`
	CreatedBy  string `json:"createdBy,omitempty"`
	UpdatedBy  string `json:"updatedBy,omitempty"`
	CreatedAt  string `json:"createdAt,omitempty"`
	UpdatedAt  string `json:"updatedAt,omitempty"`
}
