package model

// DosePeriod is the period a dose is expressed over.
type DosePeriod string

const (
	PeriodDaily  DosePeriod = "daily"
	PeriodWeekly DosePeriod = "weekly"
)

// PatientInputs are the per-calculation patient parameters. Optional values
// are pointers; which ones are required depends on the insulin class and
// whether this is a new prescription.
type PatientInputs struct {
	NewPrescription bool `json:"new_prescription"`

	WeightKg *float64 `json:"weight_kg,omitempty"` // new prescriptions, 10-200

	// ExistingDose is the dose of the current regimen (>= 1). DoseBasis says
	// whether it is per day or per week; empty means the class default.
	ExistingDose *float64  `json:"existing_dose,omitempty"`
	DoseBasis    DosePeriod `json:"dose_basis,omitempty"`

	FastingBGMmolL    *float64 `json:"fasting_bg_mmol_l,omitempty"` // 3.0-20.0
	PriorHypoglycemia *bool    `json:"prior_hypoglycemia,omitempty"`
}

// OnExistingTherapy reports whether the patient is transitioning from an
// existing insulin regimen.
func (p PatientInputs) OnExistingTherapy() bool {
	return !p.NewPrescription
}
