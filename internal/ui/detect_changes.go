package ui

import (
	"github.com/urbanwatch/urban-change-cli/internal/delivery"
)

// DetectChanges handles the UI for the change detection phase
func DetectChanges() {
	PrintWarning("- Index rasters for both years should be present in data/processed (run the index phase first).")

	years, err := ReadYears("Enter the baseline and latest year (e.g. 2018,2024): ")
	if err != nil {
		PrintError(err.Error())
		return
	}

	if err := delivery.RunChangeDetection(years); err != nil {
		PrintError(err.Error())
		return
	}

	PrintSuccess("Change detection completed, rasters and statistics written to data/processed!")
}
