package model

// FeeConfig is a charge applied to houses over a range of months. The API
// calls these "products".
type FeeConfig struct {
	ID               any     `json:"id"`
	Name             string  `json:"name"`
	DefaultAmount    float64 `json:"defaultAmount"`
	StartMonth       int     `json:"startMonth"`
	StartYear        int     `json:"startYear"`
	EndMonth         *int    `json:"endMonth,omitempty"`
	EndYear          *int    `json:"endYear,omitempty"`
	ApplicableMonths any     `json:"applicableMonths"`
	Category         string  `json:"category"`
	TargetHouseIDs   any     `json:"targetHouseIds"`
}
