// Package calc runs one prescription calculation: catalog selection, dose
// policy, supply and prescription text.
package calc

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/michaelmindrum/insulin-prescription-app/internal/catalog"
	"github.com/michaelmindrum/insulin-prescription-app/internal/dosing"
	"github.com/michaelmindrum/insulin-prescription-app/internal/model"
	"github.com/michaelmindrum/insulin-prescription-app/internal/normalize"
	"github.com/michaelmindrum/insulin-prescription-app/internal/rxtext"
	"github.com/michaelmindrum/insulin-prescription-app/internal/supply"
)

// Calculation phases reported by PhaseError.
const (
	PhaseSelect = "select"
	PhaseDose   = "dose"
	PhaseSupply = "supply"
)

// PhaseError wraps an error with the phase where it occurred.
type PhaseError struct {
	Phase string
	Err   error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Phase, e.Err)
}

func (e *PhaseError) Unwrap() error {
	return e.Err
}

// Request is one calculation request. Category is optional; when set the
// insulin must belong to it.
type Request struct {
	Category      string
	Insulin       string
	Concentration string
	DeviceForm    string
	Patient       model.PatientInputs
}

// Calculator is safe for concurrent use: the catalog and engine are never
// mutated after construction.
type Calculator struct {
	catalog *catalog.Catalog
	engine  *dosing.Engine
}

// New returns a Calculator over cat. A nil engine uses dosing.NewEngine().
func New(cat *catalog.Catalog, engine *dosing.Engine) *Calculator {
	if engine == nil {
		engine = dosing.NewEngine()
	}
	return &Calculator{catalog: cat, engine: engine}
}

// Catalog returns the catalog the calculator was built over.
func (c *Calculator) Catalog() *catalog.Catalog {
	return c.catalog
}

// Select resolves the requested product and its dosing class.
func (c *Calculator) Select(req Request) (model.InsulinRecord, model.InsulinClass, error) {
	conc, err := normalize.ParseConcentration(req.Concentration)
	if err != nil {
		return model.InsulinRecord{}, model.ClassUnclassified, fmt.Errorf("%w: %v", catalog.ErrInvalidSelection, err)
	}
	rec, err := c.catalog.Lookup(req.Insulin, conc, strings.TrimSpace(req.DeviceForm))
	if err != nil {
		return model.InsulinRecord{}, model.ClassUnclassified, err
	}
	class, err := c.catalog.Class(rec.Name)
	if err != nil {
		return model.InsulinRecord{}, model.ClassUnclassified, err
	}

	if req.Category != "" {
		want, err := model.ParseClass(req.Category)
		if err != nil {
			return model.InsulinRecord{}, model.ClassUnclassified, fmt.Errorf("%w: %v", catalog.ErrInvalidSelection, err)
		}
		if class != want {
			return model.InsulinRecord{}, model.ClassUnclassified,
				fmt.Errorf("%w: %s is not a %s insulin", catalog.ErrInvalidSelection, rec.Name, want.Label())
		}
	}
	return rec, class, nil
}

// Calculate runs the full calculation. Insulins without a dosing class yield
// a result with NoPolicy set and no error.
func (c *Calculator) Calculate(req Request) (*model.Calculation, error) {
	rec, class, err := c.Select(req)
	if err != nil {
		return nil, &PhaseError{Phase: PhaseSelect, Err: err}
	}

	result := &model.Calculation{
		ID:     uuid.New(),
		Class:  class,
		Record: rec,
	}

	dose, err := c.engine.Recommend(class, rec, req.Patient)
	if errors.Is(err, dosing.ErrNoPolicy) {
		result.NoPolicy = true
		return result, nil
	}
	if err != nil {
		return nil, &PhaseError{Phase: PhaseDose, Err: err}
	}

	plan, err := supply.ForRecommendation(dose, rec, supply.DefaultDurationDays)
	if err != nil {
		return nil, &PhaseError{Phase: PhaseSupply, Err: err}
	}

	result.Recommendation = &dose
	result.Supply = &plan
	result.Text = rxtext.Format(class, rec, dose, plan)
	return result, nil
}
