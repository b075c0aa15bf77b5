package calc

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/michaelmindrum/insulin-prescription-app/internal/catalog"
	"github.com/michaelmindrum/insulin-prescription-app/internal/dosing"
	"github.com/michaelmindrum/insulin-prescription-app/internal/model"
	"github.com/michaelmindrum/insulin-prescription-app/internal/supply"
)

func f64(v float64) *float64 { return &v }
func str(s string) *string    { return &s }
func boolp(b bool) *bool      { return &b }

func row(name string, conc float64, form string, amount float64) model.CatalogRow {
	return model.CatalogRow{
		InsulinType:         str(name),
		ConcentrationUPerML: f64(conc),
		Form:                str(form),
		AmountPerDevice:     f64(amount),
	}
}

func newCalculator(t *testing.T) *Calculator {
	t.Helper()
	cat, _ := catalog.Build([]model.CatalogRow{
		row("Lantus", 100, "Pen", 300),
		row("Lantus", 100, "Vial", 1000),
		row("Tresiba", 200, "Pen", 600),
		row("Awiqli", 700, "Pen (3 mL)", 2100),
		row("NovoRapid", 100, "Cartridge", 300),
		row("Humulin N", 100, "Vial", 1000),
		row("Basaglar", 100, "KwikPen", 0),
	})
	return New(cat, nil)
}

func TestCalculate_StandardLongPen(t *testing.T) {
	c := newCalculator(t)

	res, err := c.Calculate(Request{
		Category:      "standard-long-acting",
		Insulin:       "lantus",
		Concentration: "U-100",
		DeviceForm:    "pen",
		Patient:       model.PatientInputs{ExistingDose: f64(50)},
	})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if res.ID == uuid.Nil {
		t.Error("expected a calculation ID")
	}
	if res.NoPolicy {
		t.Error("unexpected NoPolicy")
	}
	if res.Record.Name != "Lantus" || res.Record.DeviceForm != "Pen" {
		t.Errorf("record = %+v, want canonical Lantus Pen", res.Record)
	}
	want := model.SupplyPlan{RequiredUnits: 4500, DeviceCount: 15, BoxCount: 3, Boxed: true, DurationDays: supply.DefaultDurationDays}
	if *res.Supply != want {
		t.Errorf("supply = %+v, want %+v", *res.Supply, want)
	}
	if !strings.HasPrefix(res.Text, "Rx: Lantus U-100\n") {
		t.Errorf("unexpected text:\n%s", res.Text)
	}
}

func TestCalculate_NewPatientByWeight(t *testing.T) {
	c := newCalculator(t)

	res, err := c.Calculate(Request{
		Insulin:       "Tresiba",
		Concentration: "200",
		DeviceForm:    "Pen",
		Patient:       model.PatientInputs{NewPrescription: true, WeightKg: f64(40)},
	})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if res.Recommendation.Dose != 10 {
		t.Errorf("dose = %v, want 10", res.Recommendation.Dose)
	}
	if res.Recommendation.TitrationIncrement != 2 {
		t.Errorf("increment = %d, want 2", res.Recommendation.TitrationIncrement)
	}
}

func TestCalculate_UltraLoading(t *testing.T) {
	c := newCalculator(t)

	res, err := c.Calculate(Request{
		Category:      "ultra",
		Insulin:       "Awiqli",
		Concentration: "U-700",
		DeviceForm:    "Pen (3 mL)",
		Patient: model.PatientInputs{
			ExistingDose:      f64(350),
			DoseBasis:         model.PeriodWeekly,
			FastingBGMmolL:    f64(11),
			PriorHypoglycemia: boolp(false),
		},
	})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if res.Recommendation.LoadingDose == nil || *res.Recommendation.LoadingDose != 530 {
		t.Fatalf("loading dose = %v, want 530", res.Recommendation.LoadingDose)
	}
	if res.Supply.RequiredUnits != 4680 {
		t.Errorf("required units = %d, want 4680", res.Supply.RequiredUnits)
	}
}

func TestCalculate_NoPolicy(t *testing.T) {
	c := newCalculator(t)

	res, err := c.Calculate(Request{
		Insulin:       "Humulin N",
		Concentration: "U-100",
		DeviceForm:    "Vial",
		Patient:       model.PatientInputs{ExistingDose: f64(40)},
	})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if !res.NoPolicy {
		t.Error("expected NoPolicy for an unclassified insulin")
	}
	if res.Recommendation != nil || res.Supply != nil || res.Text != "" {
		t.Errorf("unexpected output for unclassified insulin: %+v", res)
	}
}

func TestCalculate_Errors(t *testing.T) {
	c := newCalculator(t)

	tests := []struct {
		name    string
		req     Request
		phase   string
		wantErr error
	}{
		{
			name:    "unknown concentration",
			req:     Request{Insulin: "Lantus", Concentration: "U-500", DeviceForm: "Pen", Patient: model.PatientInputs{ExistingDose: f64(50)}},
			phase:   PhaseSelect,
			wantErr: catalog.ErrInvalidSelection,
		},
		{
			name:    "unparseable concentration",
			req:     Request{Insulin: "Lantus", Concentration: "strong", DeviceForm: "Pen", Patient: model.PatientInputs{ExistingDose: f64(50)}},
			phase:   PhaseSelect,
			wantErr: catalog.ErrInvalidSelection,
		},
		{
			name:    "category mismatch",
			req:     Request{Category: "rapid", Insulin: "Lantus", Concentration: "U-100", DeviceForm: "Pen", Patient: model.PatientInputs{ExistingDose: f64(50)}},
			phase:   PhaseSelect,
			wantErr: catalog.ErrInvalidSelection,
		},
		{
			name:    "unknown category",
			req:     Request{Category: "intermediate", Insulin: "Lantus", Concentration: "U-100", DeviceForm: "Pen", Patient: model.PatientInputs{ExistingDose: f64(50)}},
			phase:   PhaseSelect,
			wantErr: catalog.ErrInvalidSelection,
		},
		{
			name:    "weight out of range",
			req:     Request{Insulin: "Lantus", Concentration: "U-100", DeviceForm: "Vial", Patient: model.PatientInputs{NewPrescription: true, WeightKg: f64(250)}},
			phase:   PhaseDose,
			wantErr: dosing.ErrValidation,
		},
		{
			name:    "zero capacity",
			req:     Request{Insulin: "Basaglar", Concentration: "U-100", DeviceForm: "KwikPen", Patient: model.PatientInputs{ExistingDose: f64(50)}},
			phase:   PhaseSupply,
			wantErr: supply.ErrInvalidCapacity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Calculate(tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			var pe *PhaseError
			if !errors.As(err, &pe) {
				t.Fatalf("err = %T, want *PhaseError", err)
			}
			if pe.Phase != tt.phase {
				t.Errorf("phase = %q, want %q", pe.Phase, tt.phase)
			}
		})
	}
}
