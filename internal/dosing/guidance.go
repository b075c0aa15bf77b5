package dosing

import (
	"fmt"
	"strings"
)

// Fasting BG target bands, mmol/L.
const (
	DailyTargetLow   = 4.0
	DailyTargetHigh  = 7.0
	WeeklyTargetLow  = 4.0
	WeeklyTargetHigh = 10.0
)

// RapidGuidance is the titration text for mealtime insulin.
func RapidGuidance() string {
	return "Adjust each dose based on blood glucose readings and carbohydrate intake."
}

// StandardLongGuidance is the titration text for daily basal insulin.
func StandardLongGuidance(increment int) string {
	unit := "unit"
	if increment != 1 {
		unit = "units"
	}
	return fmt.Sprintf("Increase by %d %s once daily until fasting BG is in the target range of %g-%g mmol/L.",
		increment, unit, DailyTargetLow, DailyTargetHigh)
}

// UltraLongGuidance is the weekly titration text.
func UltraLongGuidance() string {
	lines := []string{
		fmt.Sprintf("Increase by %d units/week if fasting BG is above %g mmol/L.", UltraTitrationStep, WeeklyTargetHigh),
		fmt.Sprintf("Maintain the current dose if fasting BG is between %g-%g mmol/L.", WeeklyTargetLow, WeeklyTargetHigh),
		fmt.Sprintf("Reduce by %d units/week if fasting BG is below %g mmol/L.", UltraTitrationStep, WeeklyTargetLow),
	}
	return strings.Join(lines, "\n")
}
