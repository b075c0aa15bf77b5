package model

import "github.com/google/uuid"

// Calculation is the full result handed to a display layer.
type Calculation struct {
	ID             uuid.UUID           `json:"id"`
	Class          InsulinClass        `json:"class"`
	Record         InsulinRecord       `json:"record"`
	Recommendation *DoseRecommendation `json:"recommendation,omitempty"`
	Supply         *SupplyPlan         `json:"supply,omitempty"`
	Text           string              `json:"text,omitempty"`
	// NoPolicy is set when the insulin has no dosing class; no recommendation
	// is produced in that case.
	NoPolicy bool `json:"no_policy"`
}
