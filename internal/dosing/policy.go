// Package dosing computes starting doses and titration guidance for each
// insulin class.
package dosing

import (
	"fmt"

	"github.com/michaelmindrum/insulin-prescription-app/internal/model"
)

// Dosing constants shared by the policies.
const (
	WeightThresholdKg   = 50.0
	WeightFactor        = 0.2  // units/kg/day for patients under the threshold
	DefaultBasalDose    = 70.0 // units/day
	UltraStartingDose   = 70.0 // units/week for insulin-naive patients
	LoadingBGThreshold  = 10.0 // mmol/L
	LoadingFactor       = 1.5
	UltraTitrationStep  = 20 // units/week
	DaysPerWeek         = 7
	MealsPerDay         = 3.0
	DefaultIncrement    = 1
	OverriddenIncrement = 2
)

// Policy is the capability set every insulin class provides.
type Policy interface {
	Class() model.InsulinClass
	// StartingDose returns the maintenance dose and the period it is
	// expressed over.
	StartingDose(in model.PatientInputs) (float64, model.DosePeriod, error)
	// Titrate completes the recommendation for a product.
	Titrate(rec model.InsulinRecord, dose float64, in model.PatientInputs) (model.DoseRecommendation, error)
}

// Engine dispatches to the policy for an insulin class.
type Engine struct {
	policies map[model.InsulinClass]Policy
}

// NewEngine returns an engine with the standard titration overrides plus any
// extra ones supplied.
func NewEngine(extra ...TitrationOverride) *Engine {
	overrides := append(DefaultTitrationOverrides(), extra...)
	return &Engine{
		policies: map[model.InsulinClass]Policy{
			model.ClassStandardLongActing: standardLongPolicy{overrides: overrides},
			model.ClassUltraLongActing:    ultraLongPolicy{},
			model.ClassRapidActing:        rapidPolicy{},
		},
	}
}

// PolicyFor returns the policy for class, or false for unclassified insulins.
func (e *Engine) PolicyFor(class model.InsulinClass) (Policy, bool) {
	p, ok := e.policies[class]
	return p, ok
}

// Recommend runs the starting-dose and titration steps for one product.
func (e *Engine) Recommend(class model.InsulinClass, rec model.InsulinRecord, in model.PatientInputs) (model.DoseRecommendation, error) {
	p, ok := e.PolicyFor(class)
	if !ok {
		return model.DoseRecommendation{}, fmt.Errorf("%w: %s", ErrNoPolicy, rec.Name)
	}
	if err := checkDoseBasis(in); err != nil {
		return model.DoseRecommendation{}, err
	}
	if err := checkOptionalFastingBG(in); err != nil {
		return model.DoseRecommendation{}, err
	}

	dose, _, err := p.StartingDose(in)
	if err != nil {
		return model.DoseRecommendation{}, err
	}
	if dose <= 0 {
		return model.DoseRecommendation{}, invalid("weight_kg", in.WeightKg,
			"weight-based starting dose rounds to %g units; enter an existing dose instead", dose)
	}
	return p.Titrate(rec, dose, in)
}

// NewPatientDose is the weight-based starting total daily dose for daily
// insulins: RoundToTen(weight*0.2) under 50 kg, otherwise the 70 unit default.
func NewPatientDose(weightKg float64) float64 {
	if weightKg < WeightThresholdKg {
		return RoundToTen(weightKg * WeightFactor)
	}
	return DefaultBasalDose
}

// dailyStartingDose is shared by the daily classes.
func dailyStartingDose(in model.PatientInputs) (float64, model.DosePeriod, error) {
	if in.NewPrescription {
		w, err := requireWeight(in)
		if err != nil {
			return 0, "", err
		}
		return NewPatientDose(w), model.PeriodDaily, nil
	}
	d, err := requireExistingDose(in)
	if err != nil {
		return 0, "", err
	}
	if in.DoseBasis == model.PeriodWeekly {
		return 0, "", invalid("dose_basis", nil, "daily insulins take a total daily dose")
	}
	return d, model.PeriodDaily, nil
}
