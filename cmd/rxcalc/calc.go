package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/michaelmindrum/insulin-prescription-app/internal/api"
	"github.com/michaelmindrum/insulin-prescription-app/internal/calc"
	"github.com/michaelmindrum/insulin-prescription-app/internal/exitcode"
	"github.com/michaelmindrum/insulin-prescription-app/internal/model"
	"github.com/michaelmindrum/insulin-prescription-app/internal/rxtext"
)

var calcFlags struct {
	category      string
	insulin       string
	concentration string
	form          string
	newRx         bool
	weight        float64
	dose          float64
	daily         bool
	weekly        bool
	fbg           float64
	priorHypo     bool
	json          bool
}

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Calculate a dose, supply and prescription text",
	RunE:  runCalc,
}

func init() {
	bindCalcFlags(calcCmd)
	rootCmd.AddCommand(calcCmd)
}

func bindCalcFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&calcFlags.category, "category", "", "Insulin category: standard-long-acting, ultra-long-acting or rapid-acting")
	f.StringVar(&calcFlags.insulin, "insulin", "", "Insulin name (required)")
	f.StringVar(&calcFlags.concentration, "concentration", "", "Concentration, e.g. U-100 or 100 (required)")
	f.StringVar(&calcFlags.form, "form", "", "Device form, e.g. Pen, Vial, Cartridge (required)")
	f.BoolVar(&calcFlags.newRx, "new", false, "New prescription (dose from --weight)")
	f.Float64Var(&calcFlags.weight, "weight", 0, "Patient weight in kg, 10-200 (with --new)")
	f.Float64Var(&calcFlags.dose, "dose", 0, "Existing dose in units: daily for daily insulins, weekly for once-weekly insulins")
	f.BoolVar(&calcFlags.daily, "daily", false, "--dose is a total daily dose (converted x7 for once-weekly insulins)")
	f.BoolVar(&calcFlags.weekly, "weekly", false, "--dose is a weekly dose")
	f.Float64Var(&calcFlags.fbg, "fbg", 0, "Fasting blood glucose in mmol/L, 3.0-20.0")
	f.BoolVar(&calcFlags.priorHypo, "prior-hypo", false, "History of hypoglycemia")
	f.BoolVar(&calcFlags.json, "json", false, "Print the result as JSON")
	_ = cmd.MarkFlagRequired("insulin")
	_ = cmd.MarkFlagRequired("concentration")
	_ = cmd.MarkFlagRequired("form")
	cmd.MarkFlagsMutuallyExclusive("daily", "weekly")
}

func runCalc(cmd *cobra.Command, args []string) error {
	log := setup()
	ctx := context.Background()

	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.DataFileMissing)
	}

	c := newCalculator(ctx, log)
	req := calc.Request{
		Category:      calcFlags.category,
		Insulin:       calcFlags.insulin,
		Concentration: calcFlags.concentration,
		DeviceForm:    calcFlags.form,
		Patient:       patientInputs(cmd),
	}

	result, err := c.Calculate(req)
	if err != nil {
		var pe *calc.PhaseError
		if errors.As(err, &pe) {
			log.Error().Err(pe.Err).Str("phase", pe.Phase).Msg("calculation failed")
			switch pe.Phase {
			case calc.PhaseSelect:
				os.Exit(exitcode.InvalidSelection)
			case calc.PhaseDose:
				os.Exit(exitcode.ValidationError)
			default:
				os.Exit(exitcode.DataError)
			}
		}
		log.Error().Err(err).Msg("calculation failed")
		os.Exit(exitcode.DataError)
	}

	if calcFlags.json {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(api.CalculationResponse{
			Calculation: result,
			Disclaimer:  rxtext.Disclaimer,
			GuideURL:    rxtext.GuideURL,
		})
	}

	if result.NoPolicy {
		fmt.Printf("No dosing policy for %s (%s %s). Dose manually.\n",
			result.Record.Name, result.Record.Concentration, result.Record.DeviceForm)
	} else {
		fmt.Println(result.Text)
	}
	fmt.Println()
	fmt.Println(rxtext.Disclaimer)
	fmt.Printf("Guide: %s\n", rxtext.GuideURL)
	return nil
}

// patientInputs maps flags to PatientInputs; unset optional flags stay nil.
// Without --daily or --weekly the dose basis is left to the insulin class.
func patientInputs(cmd *cobra.Command) model.PatientInputs {
	f := cmd.Flags()
	in := model.PatientInputs{NewPrescription: calcFlags.newRx}
	if f.Changed("weight") {
		in.WeightKg = &calcFlags.weight
	}
	if f.Changed("dose") {
		in.ExistingDose = &calcFlags.dose
		switch {
		case calcFlags.weekly:
			in.DoseBasis = model.PeriodWeekly
		case calcFlags.daily:
			in.DoseBasis = model.PeriodDaily
		}
	}
	if f.Changed("fbg") {
		in.FastingBGMmolL = &calcFlags.fbg
	}
	if f.Changed("prior-hypo") {
		in.PriorHypoglycemia = &calcFlags.priorHypo
	}
	return in
}
