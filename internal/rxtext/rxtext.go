// Package rxtext renders prescription wording. Format is pure: the same
// inputs always produce the same text.
package rxtext

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/michaelmindrum/insulin-prescription-app/internal/dosing"
	"github.com/michaelmindrum/insulin-prescription-app/internal/model"
	"github.com/michaelmindrum/insulin-prescription-app/internal/supply"
)

const (
	Disclaimer = "This tool is intended for informational purposes only and is not a substitute for " +
		"professional medical advice, diagnosis, or treatment. Always consult a qualified healthcare " +
		"provider before making any medical decisions. The authors of this tool assume no responsibility " +
		"for any clinical decisions made based on the generated prescription guidance."

	GuideURL = "https://www.diabetes.ca/DiabetesCanadaWebsite/media/Managing-My-Diabetes/Tools%20and%20Resources/Insulin_Prescription_03_22.pdf?ext=.pdf"
)

// Format renders the prescription for one product.
func Format(class model.InsulinClass, rec model.InsulinRecord, dose model.DoseRecommendation, plan model.SupplyPlan) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Rx: %s %s\n", rec.Name, rec.Concentration)
	for _, line := range Directives(class, dose) {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "Quantity: %d units (%d x %s units/%s)\n",
		plan.RequiredUnits, plan.DeviceCount, Num(rec.UnitsPerDevice), strings.ToLower(rec.DeviceForm))
	fmt.Fprintf(&b, "Dispense: %s\n", dispense(rec, plan))
	fmt.Fprintf(&b, "Duration: %d days\n", plan.DurationDays)
	if dose.Guidance != "" {
		b.WriteString("\nTitration:\n")
		for _, line := range strings.Split(dose.Guidance, "\n") {
			fmt.Fprintf(&b, "- %s\n", line)
		}
	}
	return b.String()
}

// Directives returns the dosing lines for a class.
func Directives(class model.InsulinClass, dose model.DoseRecommendation) []string {
	switch class {
	case model.ClassStandardLongActing:
		return []string{
			fmt.Sprintf("Sig: Inject %s units subcutaneously once daily.", Num(dose.Dose)),
		}
	case model.ClassUltraLongActing:
		if dose.LoadingDose != nil {
			return []string{
				fmt.Sprintf("Sig: Week 1: inject %s units subcutaneously once (loading dose).", Num(*dose.LoadingDose)),
				fmt.Sprintf("Then inject %s units subcutaneously once weekly.", Num(dose.Dose)),
			}
		}
		return []string{
			fmt.Sprintf("Sig: Inject %s units subcutaneously once weekly.", Num(dose.Dose)),
		}
	case model.ClassRapidActing:
		lines := []string{fmt.Sprintf("Total daily dose: %s units.", Num(dose.Dose))}
		if dose.MealRange != nil {
			lines = append(lines, fmt.Sprintf("Sig: Inject %s units subcutaneously with each meal, up to %d times daily.",
				rangeText(*dose.MealRange), int(dosing.MealsPerDay)))
		}
		if dose.SnackRange != nil {
			lines = append(lines, fmt.Sprintf("Snacks: %s units as needed.", rangeText(*dose.SnackRange)))
		}
		return lines
	default:
		return nil
	}
}

func dispense(rec model.InsulinRecord, plan model.SupplyPlan) string {
	devices := fmt.Sprintf("%d x %s", plan.DeviceCount, rec.DeviceForm)
	if !plan.Boxed {
		return devices + ", dispensed individually"
	}
	return fmt.Sprintf("%s (%s of %d)", devices, boxes(plan.BoxCount), supply.DevicesPerBox)
}

func boxes(n int) string {
	if n == 1 {
		return "1 box"
	}
	return fmt.Sprintf("%d boxes", n)
}

func rangeText(r model.Range) string {
	if r.Low == r.High {
		return Num(r.Low)
	}
	return Num(r.Low) + "-" + Num(r.High)
}

// Num prints a dose without a trailing ".0".
func Num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
