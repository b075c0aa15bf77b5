package rxtext

import (
	"strings"
	"testing"

	"github.com/michaelmindrum/insulin-prescription-app/internal/dosing"
	"github.com/michaelmindrum/insulin-prescription-app/internal/model"
)

func f64(v float64) *float64 { return &v }

func TestFormat_StandardLongPen(t *testing.T) {
	rec := model.InsulinRecord{Name: "Lantus", Concentration: "U-100", DeviceForm: "Pen", UnitsPerDevice: 300}
	dose := model.DoseRecommendation{
		Dose:               50,
		Period:             model.PeriodDaily,
		TitrationIncrement: 1,
		Guidance:           dosing.StandardLongGuidance(1),
	}
	plan := model.SupplyPlan{RequiredUnits: 4500, DeviceCount: 15, BoxCount: 3, Boxed: true, DurationDays: 90}

	want := strings.Join([]string{
		"Rx: Lantus U-100",
		"Sig: Inject 50 units subcutaneously once daily.",
		"Quantity: 4500 units (15 x 300 units/pen)",
		"Dispense: 15 x Pen (3 boxes of 5)",
		"Duration: 90 days",
		"",
		"Titration:",
		"- Increase by 1 unit once daily until fasting BG is in the target range of 4-7 mmol/L.",
		"",
	}, "\n")

	if got := Format(model.ClassStandardLongActing, rec, dose, plan); got != want {
		t.Errorf("Format mismatch\n got:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormat_Idempotent(t *testing.T) {
	rec := model.InsulinRecord{Name: "NovoRapid", Concentration: "U-100", DeviceForm: "Cartridge", UnitsPerDevice: 300}
	dose := model.DoseRecommendation{
		Dose:       60,
		Period:     model.PeriodDaily,
		MealDose:   f64(20),
		MealRange:  &model.Range{Low: 10, High: 30},
		SnackRange: &model.Range{Low: 10, High: 20},
		Guidance:   dosing.RapidGuidance(),
	}
	plan := model.SupplyPlan{RequiredUnits: 5400, DeviceCount: 18, BoxCount: 4, Boxed: true, DurationDays: 90}

	a := Format(model.ClassRapidActing, rec, dose, plan)
	b := Format(model.ClassRapidActing, rec, dose, plan)
	if a != b {
		t.Fatalf("Format is not deterministic:\n%s\n---\n%s", a, b)
	}
	for _, want := range []string{
		"Total daily dose: 60 units.",
		"with each meal, up to 3 times daily",
		"Inject 10-30 units",
		"Snacks: 10-20 units as needed.",
		"Dispense: 18 x Cartridge (4 boxes of 5)",
	} {
		if !strings.Contains(a, want) {
			t.Errorf("text missing %q:\n%s", want, a)
		}
	}
}

func TestFormat_UltraLoading(t *testing.T) {
	rec := model.InsulinRecord{Name: "Awiqli", Concentration: "U-700", DeviceForm: "Pen (3 mL)", UnitsPerDevice: 2100}
	dose := model.DoseRecommendation{
		Dose:        350,
		Period:      model.PeriodWeekly,
		LoadingDose: f64(530),
		Guidance:    dosing.UltraLongGuidance(),
	}
	plan := model.SupplyPlan{RequiredUnits: 4680, DeviceCount: 3, BoxCount: 1, Boxed: true, DurationDays: 90}

	got := Format(model.ClassUltraLongActing, rec, dose, plan)
	for _, want := range []string{
		"Rx: Awiqli U-700\n",
		"Week 1: inject 530 units",
		"Then inject 350 units subcutaneously once weekly.",
		"(1 box of 5)",
		"- Increase by 20 units/week if fasting BG is above 10 mmol/L.",
		"- Reduce by 20 units/week if fasting BG is below 4 mmol/L.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("text missing %q:\n%s", want, got)
		}
	}
}

func TestFormat_VialIndividually(t *testing.T) {
	rec := model.InsulinRecord{Name: "Humalog", Concentration: "U-100", DeviceForm: "Vial", UnitsPerDevice: 1000}
	dose := model.DoseRecommendation{Dose: 40, Period: model.PeriodDaily}
	plan := model.SupplyPlan{RequiredUnits: 3600, DeviceCount: 4, BoxCount: 4, DurationDays: 90}

	got := Format(model.ClassRapidActing, rec, dose, plan)
	if !strings.Contains(got, "Dispense: 4 x Vial, dispensed individually\n") {
		t.Errorf("unexpected dispense line:\n%s", got)
	}
	if strings.Contains(got, "Titration:") {
		t.Errorf("empty guidance should not print a titration block:\n%s", got)
	}
}

func TestNum(t *testing.T) {
	for in, want := range map[float64]string{70: "70", 12.5: "12.5", 0: "0", 530: "530"} {
		if got := Num(in); got != want {
			t.Errorf("Num(%v) = %q, want %q", in, got, want)
		}
	}
}
