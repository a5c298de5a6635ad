package ui

import (
	"github.com/urbanwatch/urban-change-cli/internal/delivery"
	"github.com/urbanwatch/urban-change-cli/internal/zonal"
)

// RunFullPipeline handles the UI for the end to end run
func RunFullPipeline() {
	PrintWarning("- The full run downloads imagery, computes indices, detects changes and aggregates zones.\n- Phases with artifacts already on disk are reused, delete data/ to start fresh.")

	years, err := ReadYears("Enter the years to analyze (e.g. 2018-2024, empty for all): ")
	if err != nil {
		PrintError(err.Error())
		return
	}

	if err := delivery.RunFullPipeline(years, zonal.DefaultGridCells, zonal.DefaultHotspotCount); err != nil {
		PrintError(err.Error())
		return
	}

	PrintSuccess("Full pipeline completed!")
}
