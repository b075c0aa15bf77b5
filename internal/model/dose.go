package model

// Range is an inclusive dose range in units.
type Range struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// DoseRecommendation is the output of a dose policy.
type DoseRecommendation struct {
	// Dose is the maintenance dose: a total daily dose for daily insulins, a
	// weekly dose for once-weekly insulins.
	Dose   float64    `json:"dose"`
	Period DosePeriod `json:"period"`

	TitrationIncrement int `json:"titration_increment"`

	// LoadingDose is the first-week dose when a loading dose applies.
	LoadingDose *float64 `json:"loading_dose,omitempty"`

	MealDose   *float64 `json:"meal_dose,omitempty"`
	MealRange  *Range   `json:"meal_range,omitempty"`
	SnackRange *Range   `json:"snack_range,omitempty"`

	Guidance string `json:"guidance"`
}

// FirstWeekDose returns the loading dose if one applies, else Dose.
func (d DoseRecommendation) FirstWeekDose() float64 {
	if d.LoadingDose != nil {
		return *d.LoadingDose
	}
	return d.Dose
}
