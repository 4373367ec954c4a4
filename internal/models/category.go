package models

// Category represents an item classification with its depreciation policy.
type Category struct {
	ID                 int    `json:"id"`
	Name               string `json:"name"`
	DepreciationMonths int    `json:"depreciation_months,omitempty"`
}
