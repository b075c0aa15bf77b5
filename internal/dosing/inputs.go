package dosing

import (
	"math"

	"github.com/michaelmindrum/insulin-prescription-app/internal/model"
)

// Input bounds.
const (
	MinWeightKg     = 10.0
	MaxWeightKg     = 200.0
	MinExistingDose = 1.0
	MinFastingBG    = 3.0
	MaxFastingBG    = 20.0
)

func requireWeight(in model.PatientInputs) (float64, error) {
	if in.WeightKg == nil {
		return 0, invalid("weight_kg", nil, "required for a new prescription")
	}
	w := *in.WeightKg
	if !(w >= MinWeightKg && w <= MaxWeightKg) {
		return 0, invalid("weight_kg", in.WeightKg, "must be between %g and %g kg", MinWeightKg, MaxWeightKg)
	}
	return w, nil
}

func requireExistingDose(in model.PatientInputs) (float64, error) {
	if in.ExistingDose == nil {
		return 0, invalid("existing_dose", nil, "required when continuing existing therapy")
	}
	d := *in.ExistingDose
	if !(d >= MinExistingDose) || math.IsInf(d, 1) {
		return 0, invalid("existing_dose", in.ExistingDose, "must be a finite number of at least %g unit", MinExistingDose)
	}
	return d, nil
}

func requireFastingBG(in model.PatientInputs) (float64, error) {
	if in.FastingBGMmolL == nil {
		return 0, invalid("fasting_bg_mmol_l", nil, "required when transitioning to a weekly insulin")
	}
	bg := *in.FastingBGMmolL
	if !(bg >= MinFastingBG && bg <= MaxFastingBG) {
		return 0, invalid("fasting_bg_mmol_l", in.FastingBGMmolL, "must be between %g and %g mmol/L", MinFastingBG, MaxFastingBG)
	}
	return bg, nil
}

// checkOptionalFastingBG validates fasting BG when one was supplied.
func checkOptionalFastingBG(in model.PatientInputs) error {
	if in.FastingBGMmolL == nil {
		return nil
	}
	_, err := requireFastingBG(in)
	return err
}

func checkDoseBasis(in model.PatientInputs) error {
	switch in.DoseBasis {
	case "", model.PeriodDaily, model.PeriodWeekly:
		return nil
	}
	return invalid("dose_basis", nil, "must be %q or %q, got %q", model.PeriodDaily, model.PeriodWeekly, in.DoseBasis)
}
