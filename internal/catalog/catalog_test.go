package catalog

import (
	"errors"
	"reflect"
	"testing"

	"github.com/michaelmindrum/insulin-prescription-app/internal/model"
)

func f64(v float64) *float64 { return &v }
func str(s string) *string    { return &s }

func row(name string, conc float64, form string, amount float64) model.CatalogRow {
	return model.CatalogRow{
		InsulinType:         str(name),
		ConcentrationUPerML: f64(conc),
		Form:                str(form),
		AmountPerDevice:     f64(amount),
	}
}

func testRows() []model.CatalogRow {
	return []model.CatalogRow{
		row("Tresiba", 100, "Pen", 300),
		row("Tresiba", 200, "Pen", 600),
		row("Toujeo", 300, "SoloSTAR Pen", 450),
		row("Toujeo", 300, "DoubleStar Pen", 900),
		row("Lantus", 100, "Vial", 1000),
		row("Awiqli", 700, "Pen (1 mL)", 700),
		row("NovoRapid", 100, "Cartridge", 300),
		row("Humulin N", 100, "Vial", 1000),
	}
}

func TestBuild_Views(t *testing.T) {
	c, stats := Build(testRows())

	if stats.RowsRead != 8 || stats.RowsUsed != 8 || stats.RowsDropped != 0 {
		t.Errorf("unexpected stats: %+v", stats)
	}

	if got := c.Names(model.ClassStandardLongActing); !reflect.DeepEqual(got, []string{"Lantus", "Toujeo", "Tresiba"}) {
		t.Errorf("standard names = %v", got)
	}
	if got := c.Names(model.ClassUltraLongActing); !reflect.DeepEqual(got, []string{"Awiqli"}) {
		t.Errorf("ultra names = %v", got)
	}
	if got := c.Names(model.ClassRapidActing); !reflect.DeepEqual(got, []string{"NovoRapid"}) {
		t.Errorf("rapid names = %v", got)
	}

	concs, err := c.Concentrations("Tresiba")
	if err != nil {
		t.Fatalf("Concentrations: %v", err)
	}
	if !reflect.DeepEqual(concs, []string{"U-100", "U-200"}) {
		t.Errorf("Tresiba concentrations = %v", concs)
	}

	forms, err := c.Forms("Toujeo", "U-300")
	if err != nil {
		t.Fatalf("Forms: %v", err)
	}
	if !reflect.DeepEqual(forms, []string{"DoubleStar Pen", "SoloSTAR Pen"}) {
		t.Errorf("Toujeo forms = %v", forms)
	}
}

func TestBuild_UnclassifiedKeptOutOfViews(t *testing.T) {
	c, _ := Build(testRows())

	class, err := c.Class("Humulin N")
	if err != nil {
		t.Fatalf("Class: %v", err)
	}
	if class != model.ClassUnclassified {
		t.Errorf("class = %v, want unclassified", class)
	}
	for _, cl := range model.AllClasses {
		for _, name := range c.Names(cl) {
			if name == "Humulin N" {
				t.Errorf("unclassified insulin listed under %v", cl)
			}
		}
	}
	if c.Len() != 6 {
		t.Errorf("Len = %d, want 6", c.Len())
	}
}

func TestBuild_DropsIncompleteRows(t *testing.T) {
	rows := []model.CatalogRow{
		row("Lantus", 100, "Pen", 300),
		// missing concentration
		{InsulinType: str("Lantus"), Form: str("Cartridge"), AmountPerDevice: f64(300)},
		// missing name
		{ConcentrationUPerML: f64(100), Form: str("Pen"), AmountPerDevice: f64(300)},
		// missing form
		{InsulinType: str("Basaglar"), ConcentrationUPerML: f64(100), AmountPerDevice: f64(300)},
		// missing capacity
		{InsulinType: str("Basaglar"), ConcentrationUPerML: f64(100), Form: str("Pen")},
		// corrupt concentration
		{InsulinType: str("Toujeo"), ConcentrationUPerML: f64(1e30), Form: str("Pen"), AmountPerDevice: f64(450)},
		// blank name
		{InsulinType: str("  "), ConcentrationUPerML: f64(100), Form: str("Pen"), AmountPerDevice: f64(300)},
	}

	c, stats := Build(rows)
	if stats.RowsUsed != 1 || stats.RowsDropped != 6 {
		t.Errorf("stats = %+v", stats)
	}
	if got := c.AllNames(); !reflect.DeepEqual(got, []string{"Lantus"}) {
		t.Errorf("names = %v", got)
	}
}

func TestBuild_LastWriteWins(t *testing.T) {
	rows := []model.CatalogRow{
		row("Lantus", 100, "Pen", 300),
		row("Lantus", 100, "Pen", 450),
	}
	c, stats := Build(rows)
	if stats.Overwrites != 1 {
		t.Errorf("Overwrites = %d, want 1", stats.Overwrites)
	}
	rec, err := c.Lookup("Lantus", "U-100", "Pen")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if rec.UnitsPerDevice != 450 {
		t.Errorf("UnitsPerDevice = %v, want 450", rec.UnitsPerDevice)
	}
}

func TestLookup(t *testing.T) {
	c, _ := Build(testRows())

	rec, err := c.Lookup("tresiba", "U-200", "pen")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	want := model.InsulinRecord{Name: "Tresiba", Concentration: "U-200", DeviceForm: "Pen", UnitsPerDevice: 600}
	if rec != want {
		t.Errorf("Lookup = %+v, want %+v", rec, want)
	}
}

func TestLookup_InvalidSelection(t *testing.T) {
	c, _ := Build(testRows())

	tests := []struct {
		name, insulin, conc, form string
	}{
		{"unknown insulin", "Insulatard", "U-100", "Pen"},
		{"unknown concentration", "Tresiba", "U-500", "Pen"},
		{"unknown form", "Tresiba", "U-100", "Vial"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Lookup(tt.insulin, tt.conc, tt.form)
			if !errors.Is(err, ErrInvalidSelection) {
				t.Errorf("err = %v, want ErrInvalidSelection", err)
			}
		})
	}

	if _, err := c.Forms("Tresiba", "U-500"); !errors.Is(err, ErrInvalidSelection) {
		t.Errorf("Forms err = %v, want ErrInvalidSelection", err)
	}
	if _, err := c.Concentrations("Insulatard"); !errors.Is(err, ErrInvalidSelection) {
		t.Errorf("Concentrations err = %v, want ErrInvalidSelection", err)
	}
}
