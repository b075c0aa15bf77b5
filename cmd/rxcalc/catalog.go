package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/michaelmindrum/insulin-prescription-app/internal/exitcode"
	"github.com/michaelmindrum/insulin-prescription-app/internal/model"
	"github.com/michaelmindrum/insulin-prescription-app/internal/supply"
)

var catalogCategory string

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List insulins by category with their concentrations and devices",
	RunE:  runCatalog,
}

func init() {
	catalogCmd.Flags().StringVar(&catalogCategory, "category", "", "Only list this category")
	rootCmd.AddCommand(catalogCmd)
}

func runCatalog(cmd *cobra.Command, args []string) error {
	log := setup()
	ctx := context.Background()

	classes := model.AllClasses
	if catalogCategory != "" {
		class, err := model.ParseClass(catalogCategory)
		if err != nil {
			log.Error().Err(err).Msg("invalid category")
			os.Exit(exitcode.UsageError)
		}
		classes = []model.InsulinClass{class}
	}

	cat := loadCatalog(ctx, log)
	for i, class := range classes {
		if i > 0 {
			fmt.Println()
		}
		fmt.Printf("== %s ==\n", class.Label())
		names := cat.Names(class)
		if len(names) == 0 {
			fmt.Println("  (none)")
			continue
		}
		for _, name := range names {
			fmt.Printf("%s\n", name)
			concs, _ := cat.Concentrations(name)
			for _, conc := range concs {
				forms, _ := cat.Forms(name, conc)
				for _, form := range forms {
					rec, err := cat.Lookup(name, conc, form)
					if err != nil {
						continue
					}
					dispense := "individual"
					if supply.IsBoxed(form) {
						dispense = fmt.Sprintf("box of %d", supply.DevicesPerBox)
					}
					fmt.Printf("  %-6s %-24s %6g units/device  (%s)\n", conc, form, rec.UnitsPerDevice, dispense)
				}
			}
		}
	}
	return nil
}
