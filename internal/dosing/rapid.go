package dosing

import (
	"math"

	"github.com/michaelmindrum/insulin-prescription-app/internal/model"
)

type rapidPolicy struct{}

func (rapidPolicy) Class() model.InsulinClass { return model.ClassRapidActing }

func (rapidPolicy) StartingDose(in model.PatientInputs) (float64, model.DosePeriod, error) {
	return dailyStartingDose(in)
}

func (rapidPolicy) Titrate(_ model.InsulinRecord, tdd float64, _ model.PatientInputs) (model.DoseRecommendation, error) {
	meal, mealRange, snackRange := MealDoses(tdd)
	return model.DoseRecommendation{
		Dose:               tdd,
		Period:             model.PeriodDaily,
		TitrationIncrement: DefaultIncrement,
		MealDose:           &meal,
		MealRange:          &mealRange,
		SnackRange:         &snackRange,
		Guidance:           RapidGuidance(),
	}, nil
}

// MealDoses splits a total daily dose across three meals and derives the
// meal and snack ranges. Range bounds never drop below 1 unit.
func MealDoses(tdd float64) (meal float64, mealRange, snackRange model.Range) {
	meal = RoundToTen(tdd / MealsPerDay)
	low := math.Max(1, RoundToTen(meal*0.5))
	mealRange = model.Range{Low: low, High: meal + low}
	snackRange = model.Range{
		Low:  math.Max(1, RoundToTen(meal*0.25)),
		High: math.Max(1, RoundToTen(meal*0.75)),
	}
	return meal, mealRange, snackRange
}
