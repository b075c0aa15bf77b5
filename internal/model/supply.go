package model

// SupplyPlan is the dispense quantity for a prescription.
type SupplyPlan struct {
	RequiredUnits int `json:"required_units"`
	DeviceCount   int `json:"device_count"`
	// BoxCount equals DeviceCount when Boxed is false (devices dispensed
	// individually).
	BoxCount     int  `json:"box_count"`
	Boxed        bool `json:"boxed"`
	DurationDays int  `json:"duration_days"`
}
