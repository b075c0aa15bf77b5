// Package supply turns a dose into a dispense quantity.
//
// Weekly doses are converted to a daily equivalent (weekly / 7) before being
// multiplied by the duration, so a 70 unit/week insulin needs 900 units for
// 90 days. When a first-week loading dose applies, the first week is counted
// at the loading dose and the remaining days at the maintenance dose.
package supply

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/michaelmindrum/insulin-prescription-app/internal/model"
)

const (
	// DefaultDurationDays is the supply period for every prescription.
	DefaultDurationDays = 90
	// DevicesPerBox applies to pens and cartridges.
	DevicesPerBox = 5

	daysPerWeek = 7
	// epsilon absorbs float noise before rounding up, e.g. 4500.0000000001.
	epsilon = 1e-9
)

var (
	// ErrInvalidCapacity is a catalog data error: a device holding no insulin.
	ErrInvalidCapacity = errors.New("invalid units per device")
	ErrInvalidDose     = errors.New("invalid dose")
	ErrInvalidDuration = errors.New("invalid duration")
)

// boxedForms are matched as case-insensitive substrings of the device form.
var boxedForms = []string{"pen", "cartridge"}

// IsBoxed reports whether a device form is dispensed in boxes of five.
// Anything else (vials) is dispensed individually.
func IsBoxed(deviceForm string) bool {
	f := strings.ToLower(deviceForm)
	for _, b := range boxedForms {
		if strings.Contains(f, b) {
			return true
		}
	}
	return false
}

// RequiredUnits returns the units needed for durationDays at dose per period.
func RequiredUnits(dose float64, period model.DosePeriod, durationDays int) (int, error) {
	if err := checkDose(dose); err != nil {
		return 0, err
	}
	if durationDays <= 0 {
		return 0, fmt.Errorf("%w: %d days", ErrInvalidDuration, durationDays)
	}
	total := dose * float64(durationDays)
	if period == model.PeriodWeekly {
		total /= daysPerWeek
	}
	return ceilInt(total), nil
}

// RequiredUnitsWithLoading counts the first week at firstWeek units and the
// rest of the period at weekly units per week.
func RequiredUnitsWithLoading(firstWeek, weekly float64, durationDays int) (int, error) {
	if err := checkDose(firstWeek); err != nil {
		return 0, err
	}
	if err := checkDose(weekly); err != nil {
		return 0, err
	}
	if durationDays < daysPerWeek {
		return 0, fmt.Errorf("%w: %d days is shorter than the loading week", ErrInvalidDuration, durationDays)
	}
	rest := weekly * float64(durationDays-daysPerWeek) / daysPerWeek
	return ceilInt(firstWeek + rest), nil
}

// DeviceCount returns ceil(required / unitsPerDevice).
func DeviceCount(required int, unitsPerDevice float64) (int, error) {
	if !(unitsPerDevice > 0) || math.IsInf(unitsPerDevice, 1) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidCapacity, unitsPerDevice)
	}
	return ceilInt(float64(required) / unitsPerDevice), nil
}

// Plan builds a SupplyPlan from a required unit count.
func Plan(required int, rec model.InsulinRecord, durationDays int) (model.SupplyPlan, error) {
	devices, err := DeviceCount(required, rec.UnitsPerDevice)
	if err != nil {
		return model.SupplyPlan{}, fmt.Errorf("%s %s %s: %w", rec.Name, rec.Concentration, rec.DeviceForm, err)
	}
	plan := model.SupplyPlan{
		RequiredUnits: required,
		DeviceCount:   devices,
		BoxCount:      devices,
		DurationDays:  durationDays,
	}
	if IsBoxed(rec.DeviceForm) {
		plan.Boxed = true
		plan.BoxCount = ceilInt(float64(devices) / DevicesPerBox)
	}
	return plan, nil
}

// Compute is the supply for a constant dose.
func Compute(dose float64, period model.DosePeriod, durationDays int, rec model.InsulinRecord) (model.SupplyPlan, error) {
	required, err := RequiredUnits(dose, period, durationDays)
	if err != nil {
		return model.SupplyPlan{}, err
	}
	return Plan(required, rec, durationDays)
}

// ForRecommendation is the supply for a dose recommendation, honouring a
// first-week loading dose when present.
func ForRecommendation(d model.DoseRecommendation, rec model.InsulinRecord, durationDays int) (model.SupplyPlan, error) {
	if d.LoadingDose == nil {
		return Compute(d.Dose, d.Period, durationDays, rec)
	}
	required, err := RequiredUnitsWithLoading(*d.LoadingDose, d.Dose, durationDays)
	if err != nil {
		return model.SupplyPlan{}, err
	}
	return Plan(required, rec, durationDays)
}

func checkDose(dose float64) error {
	if !(dose > 0) || math.IsInf(dose, 1) {
		return fmt.Errorf("%w: %v", ErrInvalidDose, dose)
	}
	return nil
}

func ceilInt(x float64) int {
	return int(math.Ceil(x - epsilon))
}
