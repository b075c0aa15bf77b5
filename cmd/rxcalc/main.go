package main

import (
	"os"

	"github.com/michaelmindrum/insulin-prescription-app/internal/exitcode"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitcode.UsageError)
	}
}
