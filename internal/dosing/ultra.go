package dosing

import "github.com/michaelmindrum/insulin-prescription-app/internal/model"

type ultraLongPolicy struct{}

func (ultraLongPolicy) Class() model.InsulinClass { return model.ClassUltraLongActing }

// StartingDose returns a weekly dose. Insulin-naive patients always start at
// 70 units/week. An existing dose is taken as weekly unless DoseBasis says
// daily, in which case it is multiplied by 7.
func (ultraLongPolicy) StartingDose(in model.PatientInputs) (float64, model.DosePeriod, error) {
	if in.NewPrescription {
		return UltraStartingDose, model.PeriodWeekly, nil
	}
	d, err := requireExistingDose(in)
	if err != nil {
		return 0, "", err
	}
	if in.DoseBasis == model.PeriodDaily {
		d *= DaysPerWeek
	}
	return d, model.PeriodWeekly, nil
}

// Titrate applies the 1.5x first-week loading dose when switching from
// existing basal therapy with fasting BG above 10 mmol/L and no recent
// hypoglycemia.
func (ultraLongPolicy) Titrate(_ model.InsulinRecord, weekly float64, in model.PatientInputs) (model.DoseRecommendation, error) {
	out := model.DoseRecommendation{
		Dose:               weekly,
		Period:             model.PeriodWeekly,
		TitrationIncrement: DefaultIncrement,
		Guidance:           UltraLongGuidance(),
	}
	if !in.OnExistingTherapy() {
		return out, nil
	}

	bg, err := requireFastingBG(in)
	if err != nil {
		return model.DoseRecommendation{}, err
	}
	if in.PriorHypoglycemia == nil {
		return model.DoseRecommendation{}, invalid("prior_hypoglycemia", nil, "required when transitioning to a weekly insulin")
	}
	if loadingApplies(bg, *in.PriorHypoglycemia) {
		loading := RoundToTen(weekly * LoadingFactor)
		out.LoadingDose = &loading
	}
	return out, nil
}

func loadingApplies(fastingBG float64, priorHypo bool) bool {
	return fastingBG > LoadingBGThreshold && !priorHypo
}
