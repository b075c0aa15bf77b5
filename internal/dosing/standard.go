package dosing

import "github.com/michaelmindrum/insulin-prescription-app/internal/model"

type standardLongPolicy struct {
	overrides []TitrationOverride
}

func (standardLongPolicy) Class() model.InsulinClass { return model.ClassStandardLongActing }

func (standardLongPolicy) StartingDose(in model.PatientInputs) (float64, model.DosePeriod, error) {
	return dailyStartingDose(in)
}

func (p standardLongPolicy) Titrate(rec model.InsulinRecord, dose float64, _ model.PatientInputs) (model.DoseRecommendation, error) {
	inc := TitrationIncrement(rec, p.overrides)
	return model.DoseRecommendation{
		Dose:               dose,
		Period:             model.PeriodDaily,
		TitrationIncrement: inc,
		Guidance:           StandardLongGuidance(inc),
	}, nil
}
