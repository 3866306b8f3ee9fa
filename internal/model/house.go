package model

// House is a unit of the condominium together with its resident.
type House struct {
	ID            any    `json:"id"`
	Number        string `json:"number"`
	OwnerName     string `json:"ownerName"`
	Rut           string `json:"rut"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	HasParking    bool   `json:"hasParking"`
	ResidentType  string `json:"residentType"`
	IsBoardMember bool   `json:"isBoardMember"`
}
